package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_cart/internal/models"
)

var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
)

// CartRepo is the storage surface the cart rules run against.
type CartRepo interface {
	CreateCart(ctx context.Context, cart *models.Cart) error
	CartByUser(ctx context.Context, userID uint) (*models.Cart, error)
	DeleteCart(ctx context.Context, cartID uint) error

	LineItems(ctx context.Context, cartID uint) ([]models.LineItem, error)
	LineItemByItem(ctx context.Context, cartID, itemID uint) (*models.LineItem, error)
	CreateLineItem(ctx context.Context, li *models.LineItem) error
	SaveLineItem(ctx context.Context, li *models.LineItem) error
	CartItems(ctx context.Context, cartID uint) ([]models.Item, error)

	Item(ctx context.Context, id uint) (*models.Item, error)
	CreateOrderFromCart(ctx context.Context, cart *models.Cart, decrementInventory bool) (*models.Order, []models.OrderItem, error)
}

type CartService struct {
	Repo CartRepo

	// DecrementInventory makes Checkout subtract ordered quantities from
	// item stock.
	DecrementInventory bool
}

// InitialQuantity is the quantity stored for a brand-new line item: the
// requested amount, capped at the item's inventory.
func (s *CartService) InitialQuantity(item *models.Item, quantity uint) uint {
	if item.InventoryAvailable(quantity) {
		return quantity
	}
	return item.Inventory
}

// IncrementQuantity is the quantity stored when an item is added again: the
// line item's quantity plus the requested amount, capped at the item's
// inventory. The comparison avoids computing a sum that could wrap.
func (s *CartService) IncrementQuantity(li *models.LineItem, item *models.Item, quantity uint) uint {
	if quantity > item.Inventory || li.Quantity > item.Inventory-quantity {
		return item.Inventory
	}
	return li.Quantity + quantity
}

func (s *CartService) CreateCart(ctx context.Context, userID uint) (*models.Cart, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user must exist: %w", ErrValidation)
	}

	cart := &models.Cart{UserID: userID}
	if err := s.Repo.CreateCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) ensureCart(ctx context.Context, userID uint) (*models.Cart, error) {
	cart, err := s.Repo.CartByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return s.CreateCart(ctx, userID)
}

func (s *CartService) cartFor(ctx context.Context, userID uint) (*models.Cart, error) {
	cart, err := s.Repo.CartByUser(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("cart not found: %w", ErrNotFound)
	}
	return cart, err
}

// AddItem puts quantity units of an item into the user's cart, creating the
// cart on first use. A sold-out item leaves the cart untouched and returns a
// nil line item. Repeated adds of the same item merge into a single line item;
// the stored quantity never exceeds the item's inventory, over-requests are
// clamped rather than rejected.
func (s *CartService) AddItem(ctx context.Context, userID, itemID, quantity uint) (*models.LineItem, error) {
	if itemID == 0 {
		return nil, fmt.Errorf("item id required: %w", ErrValidation)
	}
	if quantity == 0 {
		return nil, fmt.Errorf("quantity must be more than zero: %w", ErrValidation)
	}

	item, err := s.Repo.Item(ctx, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("item not found: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if item.Inventory == 0 {
		return nil, nil
	}

	cart, err := s.ensureCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	li, err := s.Repo.LineItemByItem(ctx, cart.ID, itemID)
	if err == nil {
		li.Quantity = s.IncrementQuantity(li, item, quantity)
		if err := s.Repo.SaveLineItem(ctx, li); err != nil {
			return nil, err
		}
		return li, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	newLi := &models.LineItem{
		CartID:   cart.ID,
		ItemID:   itemID,
		Quantity: s.InitialQuantity(item, quantity),
	}
	if err := s.Repo.CreateLineItem(ctx, newLi); err != nil {
		return nil, err
	}
	return newLi, nil
}

func (s *CartService) GetCart(ctx context.Context, userID uint) ([]models.LineItem, error) {
	cart, err := s.cartFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Repo.LineItems(ctx, cart.ID)
}

// Total sums the price of every item row linked through the cart's line items,
// one term per link regardless of quantity, rounded to two decimal places.
func (s *CartService) Total(ctx context.Context, userID uint) (float64, error) {
	cart, err := s.cartFor(ctx, userID)
	if err != nil {
		return 0, err
	}

	items, err := s.Repo.CartItems(ctx, cart.ID)
	if err != nil {
		return 0, err
	}

	total := decimal.Zero
	for i := range items {
		total = total.Add(decimal.NewFromFloat(items[i].Price))
	}
	f, _ := total.Round(2).Float64()
	return f, nil
}

// Checkout converts the cart's line items into an order for the cart's user
// and empties the cart. The cart row itself survives for reuse.
func (s *CartService) Checkout(ctx context.Context, userID uint) (*models.Order, []models.OrderItem, error) {
	cart, err := s.cartFor(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return s.Repo.CreateOrderFromCart(ctx, cart, s.DecrementInventory)
}

func (s *CartService) DeleteCart(ctx context.Context, userID uint) error {
	cart, err := s.cartFor(ctx, userID)
	if err != nil {
		return err
	}
	return s.Repo.DeleteCart(ctx, cart.ID)
}
