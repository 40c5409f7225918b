package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_cart/internal/models"
	"github.com/Skotchmaster/shop_cart/internal/transport"
)

type ItemRepo interface {
	Item(ctx context.Context, id uint) (*models.Item, error)
	Items(ctx context.Context, offset, limit int) (int64, []models.Item, error)
	CreateItem(ctx context.Context, item *models.Item) error
	PatchItem(ctx context.Context, req transport.PatchItemRequest, id uint) (*models.Item, error)
	DeleteItem(ctx context.Context, id uint) error
}

type ItemService struct {
	Repo ItemRepo
}

func (s *ItemService) GetItem(ctx context.Context, id uint) (*models.Item, error) {
	item, err := s.Repo.Item(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("item not found: %w", ErrNotFound)
	}
	return item, err
}

func (s *ItemService) GetItems(ctx context.Context, offset, limit int) (int64, []models.Item, error) {
	return s.Repo.Items(ctx, offset, limit)
}

func (s *ItemService) CreateItem(ctx context.Context, item *models.Item) error {
	if item.Name == "" {
		return fmt.Errorf("name required: %w", ErrValidation)
	}
	if item.Price < 0 {
		return fmt.Errorf("price cannot be negative: %w", ErrValidation)
	}
	return s.Repo.CreateItem(ctx, item)
}

func (s *ItemService) PatchItem(ctx context.Context, req transport.PatchItemRequest, id uint) (*models.Item, error) {
	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative: %w", ErrValidation)
	}

	item, err := s.Repo.PatchItem(ctx, req, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("item not found: %w", ErrNotFound)
	}
	return item, err
}

func (s *ItemService) DeleteItem(ctx context.Context, id uint) error {
	err := s.Repo.DeleteItem(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("item not found: %w", ErrNotFound)
	}
	return err
}
