package valueobjects

import "fmt"

type DiscountType string

const (
	DiscountTypePercentage  DiscountType = "percentage"
	DiscountTypeFixedAmount DiscountType = "fixed_amount"
)

func NewDiscountType(s string) (DiscountType, error) {
	dt := DiscountType(s)
	if !dt.IsValid() {
		return "", fmt.Errorf("invalid discount type: %s", s)
	}
	return dt, nil
}

func (t DiscountType) IsValid() bool {
	return t == DiscountTypePercentage || t == DiscountTypeFixedAmount
}

func (t DiscountType) String() string {
	return string(t)
}

type DiscountCodeStatus string

const (
	DiscountCodeStatusActive   DiscountCodeStatus = "active"
	DiscountCodeStatusDisabled DiscountCodeStatus = "disabled"
)

func (s DiscountCodeStatus) IsValid() bool {
	return s == DiscountCodeStatusActive || s == DiscountCodeStatusDisabled
}

func (s DiscountCodeStatus) String() string {
	return string(s)
}
