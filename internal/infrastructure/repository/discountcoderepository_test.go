package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gately/internal/domain/discount"
)

func TestDiscountCodeRepository_FindByEventAndCode(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewDiscountCodeRepository(gdb, testLogger())
	ctx := context.Background()

	event := createTestEvent(t, gdb, "discount-event")
	createTestDiscountCode(t, gdb, event.ID(), "EARLYBIRD", 10)

	t.Run("finds by normalized code", func(t *testing.T) {
		dc, err := repo.FindByEventAndCode(ctx, event.ID(), "EARLYBIRD")
		require.NoError(t, err)
		require.NotNil(t, dc)
		assert.Equal(t, "EARLYBIRD", dc.Code())
	})

	t.Run("unknown code reads as nil", func(t *testing.T) {
		dc, err := repo.FindByEventAndCode(ctx, event.ID(), "NOPE")
		require.NoError(t, err)
		assert.Nil(t, dc)
	})

	t.Run("code is scoped to its event", func(t *testing.T) {
		other := createTestEvent(t, gdb, "other-event")
		dc, err := repo.FindByEventAndCode(ctx, other.ID(), "EARLYBIRD")
		require.NoError(t, err)
		assert.Nil(t, dc)
	})
}

func TestDiscountCodeRepository_Redeem(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewDiscountCodeRepository(gdb, testLogger())
	ctx := context.Background()

	event := createTestEvent(t, gdb, "redeem-event")

	t.Run("increments until the cap then refuses", func(t *testing.T) {
		dc := createTestDiscountCode(t, gdb, event.ID(), "CAPPED", 2)

		require.NoError(t, repo.Redeem(ctx, dc.ID()))
		require.NoError(t, repo.Redeem(ctx, dc.ID()))

		err := repo.Redeem(ctx, dc.ID())
		assert.ErrorIs(t, err, discount.ErrRedemptionCapReached)

		reloaded, err := repo.FindByEventAndCode(ctx, event.ID(), "CAPPED")
		require.NoError(t, err)
		assert.Equal(t, 2, reloaded.TimesRedeemed())
	})

	t.Run("unknown code reads as cap reached", func(t *testing.T) {
		err := repo.Redeem(ctx, 99999)
		assert.ErrorIs(t, err, discount.ErrRedemptionCapReached)
	})
}
