package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the order lifecycle state.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// Order is a customer order. The uuid ID is the internal identifier; Number
// is the short human-facing one shown in the WhatsApp message. The unique
// index on Number is the authority for uniqueness — generation alone cannot
// be, two concurrent submissions may draw the same candidate.
type Order struct {
	ID        uuid.UUID `gorm:"type:char(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Number        string      `gorm:"size:8;uniqueIndex;not null" json:"order_number"`
	CustomerName  string      `gorm:"size:200;not null" json:"customer_name"`
	CustomerPhone string      `gorm:"size:20;not null" json:"customer_phone"`
	Status        OrderStatus `gorm:"size:20;not null;default:PENDING" json:"status"`

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

func (Order) TableName() string { return "orders" }

// OrderItem is one line of an order. PriceAtTime and ProductName are
// snapshots taken at submission; later catalog edits never touch them.
type OrderItem struct {
	ID      uint      `gorm:"primarykey" json:"id"`
	OrderID uuid.UUID `gorm:"type:char(36);not null;index" json:"-"`

	ProductID   uint            `gorm:"not null;index" json:"product_id"`
	ProductName string          `gorm:"size:200;not null" json:"product_name"`
	Quantity    int             `gorm:"not null;default:1" json:"quantity"`
	PriceAtTime decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_at_time"`
}

func (OrderItem) TableName() string { return "order_items" }
