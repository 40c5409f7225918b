package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_cart/internal/models"
)

func (r *GormRepo) CreateCart(ctx context.Context, cart *models.Cart) error {
	return r.DB.WithContext(ctx).Create(cart).Error
}

func (r *GormRepo) CartByUser(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// DeleteCart removes the cart together with all of its line items. Both
// deletes succeed or fail as one unit.
func (r *GormRepo) DeleteCart(ctx context.Context, cartID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&models.LineItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Cart{}, cartID).Error
	})
}

func (r *GormRepo) LineItems(ctx context.Context, cartID uint) ([]models.LineItem, error) {
	var items []models.LineItem
	if err := r.DB.WithContext(ctx).Where("cart_id = ?", cartID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) LineItemByItem(ctx context.Context, cartID, itemID uint) (*models.LineItem, error) {
	var li models.LineItem
	if err := r.DB.WithContext(ctx).Where("cart_id = ? AND item_id = ?", cartID, itemID).First(&li).Error; err != nil {
		return nil, err
	}
	return &li, nil
}

func (r *GormRepo) CreateLineItem(ctx context.Context, li *models.LineItem) error {
	return r.DB.WithContext(ctx).Create(li).Error
}

func (r *GormRepo) SaveLineItem(ctx context.Context, li *models.LineItem) error {
	return r.DB.WithContext(ctx).Save(li).Error
}

// CartItems returns the items linked through the cart's line items, one row
// per link, in line-item insertion order.
func (r *GormRepo) CartItems(ctx context.Context, cartID uint) ([]models.Item, error) {
	var items []models.Item
	err := r.DB.WithContext(ctx).
		Model(&models.Item{}).
		Joins("JOIN line_items ON line_items.item_id = items.id").
		Where("line_items.cart_id = ?", cartID).
		Order("line_items.id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
