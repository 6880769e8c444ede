package models

import "time"

type DiscountCodeModel struct {
	ID             uint   `gorm:"primarykey"`
	EventID        uint   `gorm:"index:idx_discount_codes_event_code,unique;not null"`
	Code           string `gorm:"index:idx_discount_codes_event_code,unique;not null;size:50"`
	DiscountType   string `gorm:"not null;size:20"`
	DiscountValue  int64  `gorm:"not null"`
	StartsAt       time.Time `gorm:"not null"`
	ExpiresAt      time.Time `gorm:"not null"`
	MaxRedemptions int       `gorm:"not null"`
	TimesRedeemed  int       `gorm:"not null;default:0"`
	Status         string    `gorm:"not null;size:20;default:active"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (DiscountCodeModel) TableName() string {
	return "discount_codes"
}
