package models

const OrderStatusNew = "new"

type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"unique;not null"          json:"username"`
	Role     string `gorm:"not null;default:user"    json:"role"`
}

type Item struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name        string  `gorm:"not null"                  json:"name"`
	Description string  `gorm:"not null"                  json:"description"`
	Price       float64 `gorm:"not null"                  json:"price"`
	Inventory   uint    `json:"inventory"`
}

// InventoryAvailable reports whether quantity can be covered by the current
// stock. Equality with the inventory count is allowed.
func (i *Item) InventoryAvailable(quantity uint) bool {
	return quantity <= i.Inventory
}

type Cart struct {
	ID     uint `gorm:"primaryKey"           json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
}

type LineItem struct {
	ID       uint `gorm:"primaryKey"                          json:"id"`
	CartID   uint `gorm:"uniqueIndex:idx_cart_item;not null"  json:"cart_id"`
	ItemID   uint `gorm:"uniqueIndex:idx_cart_item;not null"  json:"item_id"`
	Quantity uint `gorm:"default:1;check:quantity>0"          json:"quantity"`
}

type Order struct {
	ID        uint    `gorm:"primaryKey"     json:"id"`
	UserID    uint    `gorm:"index;not null" json:"user_id"`
	CreatedAt int64   `gorm:"not null"       json:"created_at"`
	Total     float64 `gorm:"not null"       json:"total"`
	Status    string  `gorm:"not null"       json:"status"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey"                  json:"id"`
	OrderID   uint    `gorm:"index;not null"              json:"order_id"`
	ItemID    uint    `gorm:"not null"                    json:"item_id"`
	Quantity  uint    `gorm:"default:1;check:quantity>0"  json:"quantity"`
	UnitPrice float64 `gorm:"not null"                    json:"unit_price"`
}
