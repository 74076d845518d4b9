package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order statuses. "delivered" and "cancelled" are terminal: once an order
// reaches either, no further status transitions are permitted and the order
// can no longer be edited.
const (
	OrderStatusProcessing = "processing"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Order represents a purchase order placed with a supplier
type Order struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderDate   time.Time       `gorm:"not null" json:"order_date"`
	SupplierID  uint            `gorm:"not null;index" json:"supplier_id"`
	Supplier    Supplier        `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	Status      string          `gorm:"not null;default:'processing'" json:"status"` // processing, delivered, cancelled
	Items       []OrderItem     `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// IsTerminal reports whether the order has reached a terminal status
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusDelivered || o.Status == OrderStatusCancelled
}

// OrderItem represents one line of a purchase order. Items are owned by their
// parent order: created with it, replaced wholesale on edit, never mutated
// individually.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	ProductID uint            `gorm:"not null;index" json:"product_id"`
	Product   Product         `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	LineTotal decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"line_total"`
	CreatedAt time.Time       `json:"created_at"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
