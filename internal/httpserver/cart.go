package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_cart/internal/mykafka"
	"github.com/Skotchmaster/shop_cart/internal/service"
	"github.com/Skotchmaster/shop_cart/internal/transport"
	"github.com/Skotchmaster/shop_cart/pkg/logging"
)

type CartHTTP struct {
	Svc      *service.CartService
	Producer *mykafka.Producer
}

func (h *CartHTTP) GetID(c echo.Context) (uint, error) {
	v := c.Get("user_id")
	userID, ok := v.(uint)
	if !ok || userID == 0 {
		return 0, errors.New("unauthorized")
	}
	return userID, nil
}

func (h *CartHTTP) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "cart_events", fmt.Sprint(event["userID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *CartHTTP) CreateCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.create")

	userID, err := h.GetID(c)
	if err != nil {
		l.Error("create_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := h.Svc.CreateCart(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_cart_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, err.Error())
		}
		l.Error("create_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	l.Info("cart created")
	return c.JSON(http.StatusCreated, cart)
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID, err := h.GetID(c)
	if err != nil {
		l.Error("get_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	items, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_cart_error", "status", 404, "error", err)
			return c.JSON(http.StatusNotFound, "cart not found")
		}
		l.Error("get_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")

	userID, err := h.GetID(c)
	if err != nil {
		l.Error("add_to_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.AddItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	li, err := h.Svc.AddItem(ctx, userID, req.ItemID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("add_to_cart_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNotFound):
			l.Warn("add_to_cart_error", "status", 404, "error", err)
			return c.JSON(http.StatusNotFound, "item not found")
		default:
			l.Error("add_to_cart_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, "internal error")
		}
	}

	if li == nil {
		l.Info("item sold out, cart unchanged", "itemID", req.ItemID)
		return c.JSON(http.StatusOK, transport.AddItemResponse{Added: false})
	}

	h.publish(c, map[string]any{
		"type":     "cart_item_added",
		"userID":   userID,
		"itemID":   li.ItemID,
		"quantity": li.Quantity,
	})

	l.Info("item added to cart", "itemID", li.ItemID, "quantity", li.Quantity)
	return c.JSON(http.StatusCreated, transport.AddItemResponse{Added: true, LineItem: li})
}

func (h *CartHTTP) GetTotal(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.total")

	userID, err := h.GetID(c)
	if err != nil {
		l.Error("get_total_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	total, err := h.Svc.Total(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_total_error", "status", 404, "error", err)
			return c.JSON(http.StatusNotFound, "cart not found")
		}
		l.Error("get_total_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, transport.TotalResponse{Total: total})
}

func (h *CartHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.checkout")

	userID, err := h.GetID(c)
	if err != nil {
		l.Error("checkout_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	order, orderItems, err := h.Svc.Checkout(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("checkout_error", "status", 404, "error", err)
			return c.JSON(http.StatusNotFound, "cart not found")
		}
		l.Error("checkout_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, map[string]any{
		"type":    "order_created",
		"userID":  userID,
		"orderID": order.ID,
		"items":   orderItems,
	})

	l.Info("checkout_success", "orderID", order.ID, "items", len(orderItems))
	return c.JSON(http.StatusCreated, transport.CheckoutResponse{
		OrderID: order.ID,
		Total:   order.Total,
		Status:  order.Status,
		Items:   orderItems,
	})
}

func (h *CartHTTP) DeleteCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.delete")

	userID, err := h.GetID(c)
	if err != nil {
		l.Error("delete_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, "unauthorized")
	}

	if err := h.Svc.DeleteCart(ctx, userID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_cart_error", "status", 404, "error", err)
			return c.JSON(http.StatusNotFound, "cart not found")
		}
		l.Error("delete_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, map[string]any{
		"type":   "cart_deleted",
		"userID": userID,
	})

	l.Info("cart deleted")
	return c.JSON(http.StatusOK, "cart deleted")
}
