package discount

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "gately/internal/domain/discount/valueobjects"
)

func newTestCode(t *testing.T, discountType vo.DiscountType, value int64) *DiscountCode {
	now := time.Now().UTC()
	code, err := NewDiscountCode(1, "EARLYBIRD", discountType, value, now.Add(-time.Hour), now.Add(time.Hour), 100)
	require.NoError(t, err)
	return code
}

func TestNewDiscountCode(t *testing.T) {
	now := time.Now().UTC()

	t.Run("normalizes code to upper case", func(t *testing.T) {
		code, err := NewDiscountCode(1, "  earlybird ", vo.DiscountTypePercentage, 10, now, now.Add(time.Hour), 5)
		require.NoError(t, err)
		assert.Equal(t, "EARLYBIRD", code.Code())
	})

	t.Run("rejects missing event", func(t *testing.T) {
		_, err := NewDiscountCode(0, "X", vo.DiscountTypePercentage, 10, now, now.Add(time.Hour), 5)
		assert.Error(t, err)
	})

	t.Run("rejects percentage over 100", func(t *testing.T) {
		_, err := NewDiscountCode(1, "X", vo.DiscountTypePercentage, 101, now, now.Add(time.Hour), 5)
		assert.Error(t, err)
	})

	t.Run("rejects expiry before start", func(t *testing.T) {
		_, err := NewDiscountCode(1, "X", vo.DiscountTypePercentage, 10, now.Add(time.Hour), now, 5)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive value", func(t *testing.T) {
		_, err := NewDiscountCode(1, "X", vo.DiscountTypeFixedAmount, 0, now, now.Add(time.Hour), 5)
		assert.Error(t, err)
	})
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "SUMMER25", NormalizeCode("  summer25 "))
	assert.Equal(t, "", NormalizeCode("   "))
}

func TestDiscountCode_Validate(t *testing.T) {
	now := time.Now().UTC()

	t.Run("valid within window", func(t *testing.T) {
		code := newTestCode(t, vo.DiscountTypePercentage, 25)
		verdict := code.Validate(now)
		assert.True(t, verdict.Valid)
		assert.Empty(t, verdict.Reason)
		assert.Equal(t, vo.DiscountTypePercentage, verdict.DiscountType)
		assert.Equal(t, int64(25), verdict.DiscountValue)
	})

	t.Run("not started yet", func(t *testing.T) {
		code, err := NewDiscountCode(1, "SOON", vo.DiscountTypePercentage, 10, now.Add(time.Hour), now.Add(2*time.Hour), 5)
		require.NoError(t, err)
		verdict := code.Validate(now)
		assert.False(t, verdict.Valid)
		assert.Equal(t, "Discount code has not started yet", verdict.Reason)
	})

	t.Run("expired", func(t *testing.T) {
		code := ReconstructDiscountCode(DiscountCodeReconstructParams{
			ID: 1, EventID: 1, Code: "OLD",
			DiscountType: vo.DiscountTypePercentage, DiscountValue: 10,
			StartsAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour),
			MaxRedemptions: 5, Status: vo.DiscountCodeStatusActive,
		})
		verdict := code.Validate(now)
		assert.False(t, verdict.Valid)
		assert.Equal(t, "Discount code has expired", verdict.Reason)
	})

	t.Run("redemption cap reached", func(t *testing.T) {
		code := ReconstructDiscountCode(DiscountCodeReconstructParams{
			ID: 1, EventID: 1, Code: "FULL",
			DiscountType: vo.DiscountTypePercentage, DiscountValue: 10,
			StartsAt: now.Add(-time.Hour), ExpiresAt: now.Add(time.Hour),
			MaxRedemptions: 3, TimesRedeemed: 3, Status: vo.DiscountCodeStatusActive,
		})
		verdict := code.Validate(now)
		assert.False(t, verdict.Valid)
		assert.Equal(t, "Discount code has reached maximum redemptions", verdict.Reason)
	})

	t.Run("inactive code", func(t *testing.T) {
		code := ReconstructDiscountCode(DiscountCodeReconstructParams{
			ID: 1, EventID: 1, Code: "GONE",
			DiscountType: vo.DiscountTypePercentage, DiscountValue: 10,
			StartsAt: now.Add(-time.Hour), ExpiresAt: now.Add(time.Hour),
			MaxRedemptions: 3, Status: vo.DiscountCodeStatusDisabled,
		})
		verdict := code.Validate(now)
		assert.False(t, verdict.Valid)
		assert.Equal(t, "Discount code not found or invalid", verdict.Reason)
	})
}

func TestDiscountCode_ComputeDiscount(t *testing.T) {
	t.Run("percentage floors the result", func(t *testing.T) {
		code := newTestCode(t, vo.DiscountTypePercentage, 25)
		// 25% of 999 is 249.75, floored to 249.
		assert.Equal(t, int64(249), code.ComputeDiscount(999))
	})

	t.Run("fixed amount capped at subtotal", func(t *testing.T) {
		code := newTestCode(t, vo.DiscountTypeFixedAmount, 5000)
		assert.Equal(t, int64(3000), code.ComputeDiscount(3000))
		assert.Equal(t, int64(5000), code.ComputeDiscount(12000))
	})

	t.Run("zero subtotal yields zero", func(t *testing.T) {
		code := newTestCode(t, vo.DiscountTypePercentage, 50)
		assert.Equal(t, int64(0), code.ComputeDiscount(0))
	})
}
