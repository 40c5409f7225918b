package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_cart/internal/models"
	"github.com/Skotchmaster/shop_cart/internal/service"
	"github.com/Skotchmaster/shop_cart/internal/transport"
	"github.com/Skotchmaster/shop_cart/internal/util"
	"github.com/Skotchmaster/shop_cart/pkg/logging"
)

type ItemHTTP struct {
	Svc *service.ItemService
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func (h *ItemHTTP) GetItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "item.get")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		l.Warn("get_item_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid id")
	}

	item, err := h.Svc.GetItem(ctx, uint(id))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_item_error", "status", 404, "error", err)
			return c.JSON(http.StatusNotFound, "item not found")
		}
		l.Error("get_item_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, item)
}

func (h *ItemHTTP) GetItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "item.list")

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.GetItems(ctx, offset, limit)
	if err != nil {
		l.Error("get_items_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *ItemHTTP) CreateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "item.create")

	var req transport.CreateItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_item_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	item := models.Item{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Inventory:   req.Inventory,
	}
	if err := h.Svc.CreateItem(ctx, &item); err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_item_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, err.Error())
		}
		l.Error("create_item_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	l.Info("item created", "itemID", item.ID)
	return c.JSON(http.StatusCreated, item)
}

func (h *ItemHTTP) PatchItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "item.patch")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		l.Warn("patch_item_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid id")
	}

	var req transport.PatchItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_item_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.PatchItem(ctx, req, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("patch_item_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNotFound):
			l.Warn("patch_item_error", "status", 404, "error", err)
			return c.JSON(http.StatusNotFound, "item not found")
		default:
			l.Error("patch_item_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, "internal error")
		}
	}

	l.Info("item patched", "itemID", item.ID)
	return c.JSON(http.StatusOK, item)
}

func (h *ItemHTTP) DeleteItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "item.delete")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		l.Warn("delete_item_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.DeleteItem(ctx, uint(id)); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_item_error", "status", 404, "error", err)
			return c.JSON(http.StatusNotFound, "item not found")
		}
		l.Error("delete_item_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	l.Info("item deleted", "itemID", id)
	return c.JSON(http.StatusOK, map[string]any{"deleted_item": id})
}
