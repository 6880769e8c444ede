package models

import (
	"time"

	"gorm.io/datatypes"
)

type OrderModel struct {
	ID               uint   `gorm:"primarykey"`
	TenantID         uint   `gorm:"index;not null"`
	EventID          uint   `gorm:"index;not null"`
	BuyerEmail       string `gorm:"index;not null;size:254"`
	BuyerName        string `gorm:"not null;size:200"`
	TotalAmount      int64  `gorm:"not null"`
	DiscountAmount   int64  `gorm:"not null;default:0"`
	Currency         string `gorm:"not null;size:3;default:BDT"`
	Status           string `gorm:"not null;size:20;default:pending;index"`
	PaymentReference *string `gorm:"size:128"`
	LookupToken      string  `gorm:"uniqueIndex;not null;size:32"`
	Metadata         datatypes.JSON
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Items []OrderItemModel `gorm:"foreignKey:OrderID"`
}

func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is immutable after creation: one row per distinct ticket
// type in a checkout.
type OrderItemModel struct {
	ID           uint  `gorm:"primarykey"`
	OrderID      uint  `gorm:"index;not null"`
	TicketTypeID uint  `gorm:"index;not null"`
	UnitPrice    int64 `gorm:"not null"`
	Quantity     int   `gorm:"not null"`
	Subtotal     int64 `gorm:"not null"`
	CreatedAt    time.Time
}

func (OrderItemModel) TableName() string {
	return "order_items"
}
