package transport

import "github.com/Skotchmaster/shop_cart/internal/models"

type AddItemRequest struct {
	ItemID   uint `json:"item_id"`
	Quantity uint `json:"quantity"`
}

// Added is false when the item was sold out and the cart was left untouched.
type AddItemResponse struct {
	Added    bool             `json:"added"`
	LineItem *models.LineItem `json:"line_item,omitempty"`
}

type TotalResponse struct {
	Total float64 `json:"total"`
}

type CheckoutResponse struct {
	OrderID uint               `json:"order_id"`
	Total   float64            `json:"total"`
	Status  string             `json:"status"`
	Items   []models.OrderItem `json:"items"`
}

type CreateItemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Inventory   uint    `json:"inventory"`
}

type PatchItemRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Inventory   *uint    `json:"inventory"`
}
