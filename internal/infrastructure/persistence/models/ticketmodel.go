package models

import "time"

// TicketModel is the GORM model for individual admission tickets.
type TicketModel struct {
	ID            uint   `gorm:"primarykey"`
	OrderID       uint   `gorm:"index;not null"`
	TicketTypeID  uint   `gorm:"index;not null"`
	AttendeeName  string `gorm:"not null;size:200"`
	AttendeeEmail string `gorm:"size:254"`
	QRPayload     string `gorm:"type:text"`
	QRSignature   string `gorm:"size:64"`
	Status        string `gorm:"not null;size:20;default:valid;index"`
	CheckedInAt   *time.Time
	SeatLabel     *string `gorm:"size:40"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the table name for TicketModel.
func (TicketModel) TableName() string {
	return "tickets"
}
