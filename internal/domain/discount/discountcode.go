// Package discount implements discount code validation and amount
// computation. Codes are scoped to one event, matched case-insensitively,
// and capped by a redemption counter that only moves through the
// repository's atomic conditional increment.
package discount

import (
	"fmt"
	"strings"
	"time"

	vo "gately/internal/domain/discount/valueobjects"
	"gately/internal/shared/biztime"
)

type DiscountCode struct {
	id             uint
	eventID        uint
	code           string
	discountType   vo.DiscountType
	discountValue  int64
	startsAt       time.Time
	expiresAt      time.Time
	maxRedemptions int
	timesRedeemed  int
	status         vo.DiscountCodeStatus

	createdAt time.Time
	updatedAt time.Time
}

// NewDiscountCode validates and creates a discount code. The code is
// normalized to upper case so lookups are case-insensitive.
func NewDiscountCode(eventID uint, code string, discountType vo.DiscountType, discountValue int64, startsAt, expiresAt time.Time, maxRedemptions int) (*DiscountCode, error) {
	if eventID == 0 {
		return nil, fmt.Errorf("event ID is required")
	}
	code = NormalizeCode(code)
	if code == "" {
		return nil, fmt.Errorf("code is required")
	}
	if !discountType.IsValid() {
		return nil, fmt.Errorf("invalid discount type: %s", discountType)
	}
	if discountValue <= 0 {
		return nil, fmt.Errorf("discount value must be positive")
	}
	if discountType == vo.DiscountTypePercentage && discountValue > 100 {
		return nil, fmt.Errorf("percentage discount cannot exceed 100")
	}
	if !expiresAt.After(startsAt) {
		return nil, fmt.Errorf("expiry must be after start")
	}
	if maxRedemptions <= 0 {
		return nil, fmt.Errorf("max redemptions must be positive")
	}

	now := biztime.NowUTC()
	return &DiscountCode{
		eventID:        eventID,
		code:           code,
		discountType:   discountType,
		discountValue:  discountValue,
		startsAt:       startsAt,
		expiresAt:      expiresAt,
		maxRedemptions: maxRedemptions,
		status:         vo.DiscountCodeStatusActive,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// NormalizeCode upper-cases and trims a user-supplied code for matching.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Verdict is the soft-fail validation outcome. Invalid codes are a normal
// response, never an error.
type Verdict struct {
	Valid         bool
	Reason        string
	DiscountType  vo.DiscountType
	DiscountValue int64
}

// Validate checks the code's time window and redemption cap at the given
// instant.
func (d *DiscountCode) Validate(now time.Time) Verdict {
	if d.status != vo.DiscountCodeStatusActive {
		return Verdict{Valid: false, Reason: "Discount code not found or invalid"}
	}
	if d.startsAt.After(now) {
		return Verdict{Valid: false, Reason: "Discount code has not started yet"}
	}
	if d.expiresAt.Before(now) {
		return Verdict{Valid: false, Reason: "Discount code has expired"}
	}
	if d.timesRedeemed >= d.maxRedemptions {
		return Verdict{Valid: false, Reason: "Discount code has reached maximum redemptions"}
	}
	return Verdict{
		Valid:         true,
		DiscountType:  d.discountType,
		DiscountValue: d.discountValue,
	}
}

// ComputeDiscount returns the discount amount for a subtotal in minor
// units: floor(subtotal*value/100) for percentage codes, the fixed value
// otherwise. The result is capped at the subtotal so totals never go
// negative.
func (d *DiscountCode) ComputeDiscount(subtotal int64) int64 {
	var amount int64
	switch d.discountType {
	case vo.DiscountTypePercentage:
		amount = subtotal * d.discountValue / 100
	case vo.DiscountTypeFixedAmount:
		amount = d.discountValue
	}
	if amount > subtotal {
		amount = subtotal
	}
	if amount < 0 {
		amount = 0
	}
	return amount
}

func (d *DiscountCode) ID() uint                      { return d.id }
func (d *DiscountCode) EventID() uint                 { return d.eventID }
func (d *DiscountCode) Code() string                  { return d.code }
func (d *DiscountCode) DiscountType() vo.DiscountType { return d.discountType }
func (d *DiscountCode) DiscountValue() int64          { return d.discountValue }
func (d *DiscountCode) StartsAt() time.Time           { return d.startsAt }
func (d *DiscountCode) ExpiresAt() time.Time          { return d.expiresAt }
func (d *DiscountCode) MaxRedemptions() int           { return d.maxRedemptions }
func (d *DiscountCode) TimesRedeemed() int            { return d.timesRedeemed }
func (d *DiscountCode) Status() vo.DiscountCodeStatus { return d.status }
func (d *DiscountCode) CreatedAt() time.Time          { return d.createdAt }
func (d *DiscountCode) UpdatedAt() time.Time          { return d.updatedAt }

// SetID sets the discount code ID after persistence.
func (d *DiscountCode) SetID(id uint) {
	d.id = id
}

// DiscountCodeReconstructParams carries a persisted code's state.
type DiscountCodeReconstructParams struct {
	ID             uint
	EventID        uint
	Code           string
	DiscountType   vo.DiscountType
	DiscountValue  int64
	StartsAt       time.Time
	ExpiresAt      time.Time
	MaxRedemptions int
	TimesRedeemed  int
	Status         vo.DiscountCodeStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ReconstructDiscountCode recreates a discount code from persistence.
func ReconstructDiscountCode(p DiscountCodeReconstructParams) *DiscountCode {
	return &DiscountCode{
		id:             p.ID,
		eventID:        p.EventID,
		code:           p.Code,
		discountType:   p.DiscountType,
		discountValue:  p.DiscountValue,
		startsAt:       p.StartsAt,
		expiresAt:      p.ExpiresAt,
		maxRedemptions: p.MaxRedemptions,
		timesRedeemed:  p.TimesRedeemed,
		status:         p.Status,
		createdAt:      p.CreatedAt,
		updatedAt:      p.UpdatedAt,
	}
}
