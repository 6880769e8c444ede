package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "gately/internal/domain/catalog/valueobjects"
	"gately/internal/domain/shared/money"
)

func TestNewTicketType(t *testing.T) {
	now := time.Now().UTC()
	price := money.New(150000, "BDT")

	t.Run("creates active ticket type", func(t *testing.T) {
		tt, err := NewTicketType(1, "General Admission", price, 500, now, now.Add(30*24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, vo.TicketTypeStatusActive, tt.Status())
		assert.Equal(t, 500, tt.Available())
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewTicketType(1, "Empty", price, 0, now, now.Add(time.Hour))
		assert.Error(t, err)
	})

	t.Run("rejects sales end before start", func(t *testing.T) {
		_, err := NewTicketType(1, "Backwards", price, 10, now.Add(time.Hour), now)
		assert.Error(t, err)
	})
}

func TestTicketType_Available(t *testing.T) {
	tt := ReconstructTicketType(TicketTypeReconstructParams{
		ID: 1, EventID: 1, Name: "VIP",
		Price:         money.New(500000, "BDT"),
		QuantityTotal: 100, QuantitySold: 97,
		Status: vo.TicketTypeStatusActive,
	})
	assert.Equal(t, 3, tt.Available())
}

func TestTicketType_IsOnSale(t *testing.T) {
	now := time.Now().UTC()

	build := func(status vo.TicketTypeStatus, start, end time.Time) *TicketType {
		return ReconstructTicketType(TicketTypeReconstructParams{
			ID: 1, EventID: 1, Name: "GA",
			Price:         money.New(100000, "BDT"),
			QuantityTotal: 100,
			SalesStart:    start, SalesEnd: end,
			Status: status,
		})
	}

	t.Run("active inside window", func(t *testing.T) {
		tt := build(vo.TicketTypeStatusActive, now.Add(-time.Hour), now.Add(time.Hour))
		assert.True(t, tt.IsOnSale(now))
	})

	t.Run("before sales start", func(t *testing.T) {
		tt := build(vo.TicketTypeStatusActive, now.Add(time.Hour), now.Add(2*time.Hour))
		assert.False(t, tt.IsOnSale(now))
	})

	t.Run("after sales end", func(t *testing.T) {
		tt := build(vo.TicketTypeStatusActive, now.Add(-2*time.Hour), now.Add(-time.Hour))
		assert.False(t, tt.IsOnSale(now))
	})

	t.Run("paused type is not on sale", func(t *testing.T) {
		tt := build(vo.TicketTypeStatusPaused, now.Add(-time.Hour), now.Add(time.Hour))
		assert.False(t, tt.IsOnSale(now))
	})

	t.Run("window boundaries are inclusive", func(t *testing.T) {
		tt := build(vo.TicketTypeStatusActive, now, now.Add(time.Hour))
		assert.True(t, tt.IsOnSale(now))
	})
}
