package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_cart/internal/models"
)

type OrderRepo interface {
	ListOrders(ctx context.Context, userID uint, limit, offset int) ([]models.Order, error)
	Order(ctx context.Context, orderID uint) (*models.Order, error)
	OrderItems(ctx context.Context, orderID uint) ([]models.OrderItem, error)
}

type OrderService struct {
	Repo OrderRepo
}

func (s *OrderService) ListOrders(ctx context.Context, userID uint, limit, offset int) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx, userID, limit, offset)
}

// OrderItems returns the rows of one of the user's orders. Orders that do not
// exist or belong to another user both come back as ErrNotFound.
func (s *OrderService) OrderItems(ctx context.Context, userID, orderID uint) ([]models.OrderItem, error) {
	order, err := s.Repo.Order(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("order not found: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("order not found: %w", ErrNotFound)
	}
	return s.Repo.OrderItems(ctx, orderID)
}
