// Package money holds the currency amount value object shared by the
// catalog and order contexts. Amounts are integer minor units; the platform
// default currency is BDT.
package money

import "fmt"

const DefaultCurrency = "BDT"

type Money struct {
	amount   int64
	currency string
}

// New creates a Money value. Amount is in the currency's minor unit.
func New(amount int64, currency string) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{amount: amount, currency: currency}
}

func (m Money) Amount() int64 {
	return m.amount
}

func (m Money) Currency() string {
	return m.currency
}

func (m Money) IsPositive() bool {
	return m.amount > 0
}

func (m Money) IsNegative() bool {
	return m.amount < 0
}

// Add returns the sum of two amounts. Currencies must match; the checkout
// path guarantees this because every ticket type of an event shares the
// event's currency.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("currency mismatch: %s vs %s", m.currency, other.currency)
	}
	return Money{amount: m.amount + other.amount, currency: m.currency}, nil
}

// MulQuantity returns the amount multiplied by a line-item quantity.
func (m Money) MulQuantity(qty int) Money {
	return Money{amount: m.amount * int64(qty), currency: m.currency}
}

func (m Money) Equals(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}

func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.amount, m.currency)
}
