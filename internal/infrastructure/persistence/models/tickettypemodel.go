package models

import "time"

// TicketTypeModel is the stock-bearing row that the inventory ledger's
// conditional updates guard. The invariant 0 <= quantity_sold <=
// quantity_total is enforced by those updates, never by application reads.
type TicketTypeModel struct {
	ID            uint   `gorm:"primarykey"`
	EventID       uint   `gorm:"index;not null"`
	Name          string `gorm:"not null;size:100"`
	Description   string `gorm:"size:500"`
	Price         int64  `gorm:"not null"`
	Currency      string `gorm:"not null;size:3;default:BDT"`
	QuantityTotal int    `gorm:"not null"`
	QuantitySold  int    `gorm:"not null;default:0"`
	SalesStart    time.Time `gorm:"not null"`
	SalesEnd      time.Time `gorm:"not null"`
	Status        string    `gorm:"not null;size:20;default:active;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (TicketTypeModel) TableName() string {
	return "ticket_types"
}
