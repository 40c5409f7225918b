package repo

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_cart/internal/models"
)

// CreateOrderFromCart converts the cart's line items into an order in one
// transaction: the order, its order items (in line-item insertion order) and
// the line-item deletion succeed or fail together. When decrementInventory is
// set, ordered quantities are subtracted from item stock, floored at zero.
func (r *GormRepo) CreateOrderFromCart(ctx context.Context, cart *models.Cart, decrementInventory bool) (*models.Order, []models.OrderItem, error) {
	var (
		order      models.Order
		orderItems []models.OrderItem
	)

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lineItems []models.LineItem
		if err := tx.Where("cart_id = ?", cart.ID).Order("id ASC").Find(&lineItems).Error; err != nil {
			return err
		}

		total := decimal.Zero
		prices := make(map[uint]float64, len(lineItems))
		for _, li := range lineItems {
			var item models.Item
			if err := tx.First(&item, li.ItemID).Error; err != nil {
				return err
			}
			prices[li.ItemID] = item.Price
			total = total.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(li.Quantity))))

			if decrementInventory {
				remaining := uint(0)
				if li.Quantity < item.Inventory {
					remaining = item.Inventory - li.Quantity
				}
				if err := tx.Model(&item).Update("inventory", remaining).Error; err != nil {
					return err
				}
			}
		}

		orderTotal, _ := total.Round(2).Float64()
		order = models.Order{
			UserID:    cart.UserID,
			CreatedAt: time.Now().Unix(),
			Total:     orderTotal,
			Status:    models.OrderStatusNew,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		orderItems = make([]models.OrderItem, 0, len(lineItems))
		for _, li := range lineItems {
			oi := models.OrderItem{
				OrderID:   order.ID,
				ItemID:    li.ItemID,
				Quantity:  li.Quantity,
				UnitPrice: prices[li.ItemID],
			}
			if err := tx.Create(&oi).Error; err != nil {
				return err
			}
			orderItems = append(orderItems, oi)
		}

		return tx.Where("cart_id = ?", cart.ID).Delete(&models.LineItem{}).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return &order, orderItems, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, userID uint, limit, offset int) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) Order(ctx context.Context, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).First(&order, orderID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) OrderItems(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := r.DB.WithContext(ctx).Where("order_id = ?", orderID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
