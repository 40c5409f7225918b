package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/Skotchmaster/shop_cart/pkg/middleware/auth"
)

type Deps struct {
	CartHandler  *CartHTTP
	ItemHandler  *ItemHTTP
	OrderHandler *OrderHTTP
	JWTSecret    []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	cart := e.Group("/cart")
	cart.Use(authmw.RequireLogin(d.JWTSecret))

	cart.POST("", d.CartHandler.CreateCart)
	cart.GET("", d.CartHandler.GetCart)
	cart.DELETE("", d.CartHandler.DeleteCart)
	cart.GET("/total", d.CartHandler.GetTotal)
	cart.POST("/items", d.CartHandler.AddToCart)
	cart.POST("/checkout", d.CartHandler.Checkout)

	orders := e.Group("/orders")
	orders.Use(authmw.RequireLogin(d.JWTSecret))
	orders.GET("", d.OrderHandler.ListOrders)
	orders.GET("/:id/items", d.OrderHandler.GetOrderItems)

	items := e.Group("/items")
	items.GET("", d.ItemHandler.GetItems)
	items.GET("/:id", d.ItemHandler.GetItem)

	admin := items.Group("", authmw.RequireAdmin(d.JWTSecret))
	admin.POST("", d.ItemHandler.CreateItem)
	admin.PATCH("/:id", d.ItemHandler.PatchItem)
	admin.DELETE("/:id", d.ItemHandler.DeleteItem)
}
