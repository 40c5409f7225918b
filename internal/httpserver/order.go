package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_cart/internal/service"
	"github.com/Skotchmaster/shop_cart/internal/util"
	"github.com/Skotchmaster/shop_cart/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) GetID(c echo.Context) (uint, error) {
	v := c.Get("user_id")
	userID, ok := v.(uint)
	if !ok || userID == 0 {
		return 0, errors.New("unauthorized")
	}
	return userID, nil
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	userID, err := h.GetID(c)
	if err != nil {
		l.Error("list_orders_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	orders, err := h.Svc.ListOrders(ctx, userID, limit, offset)
	if err != nil {
		l.Error("list_orders_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) GetOrderItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.items")

	userID, err := h.GetID(c)
	if err != nil {
		l.Error("order_items_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		l.Warn("order_items_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid id")
	}

	items, err := h.Svc.OrderItems(ctx, userID, uint(id))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("order_items_error", "status", 404, "error", err)
			return c.JSON(http.StatusNotFound, "order not found")
		}
		l.Error("order_items_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, items)
}
