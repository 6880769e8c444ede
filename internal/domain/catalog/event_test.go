package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "gately/internal/domain/catalog/valueobjects"
)

func TestNewEvent(t *testing.T) {
	start := time.Now().UTC().Add(24 * time.Hour)
	end := start.Add(4 * time.Hour)

	t.Run("creates draft event", func(t *testing.T) {
		event, err := NewEvent(1, "Dhaka Tech Summit", "dhaka-tech-summit", start, end)
		require.NoError(t, err)
		assert.Equal(t, vo.EventStatusDraft, event.Status())
		assert.False(t, event.IsPublic())
		assert.False(t, event.IsPurchasable())
	})

	t.Run("rejects end before start", func(t *testing.T) {
		_, err := NewEvent(1, "Backwards", "backwards", end, start)
		assert.Error(t, err)
	})

	t.Run("rejects missing tenant", func(t *testing.T) {
		_, err := NewEvent(0, "No Tenant", "no-tenant", start, end)
		assert.Error(t, err)
	})
}

func TestEvent_Publish(t *testing.T) {
	start := time.Now().UTC().Add(24 * time.Hour)

	t.Run("draft becomes active and public", func(t *testing.T) {
		event, err := NewEvent(1, "Summit", "summit", start, start.Add(time.Hour))
		require.NoError(t, err)

		require.NoError(t, event.Publish())
		assert.Equal(t, vo.EventStatusActive, event.Status())
		assert.True(t, event.IsPublic())
		assert.True(t, event.IsPurchasable())
	})

	t.Run("cancelled event cannot be published", func(t *testing.T) {
		event := ReconstructEvent(EventReconstructParams{
			ID: 1, TenantID: 1, Name: "Gone", Slug: "gone",
			Status:  vo.EventStatusCancelled,
			StartAt: start, EndAt: start.Add(time.Hour),
		})
		assert.Error(t, event.Publish())
	})
}

func TestEvent_IsPurchasable(t *testing.T) {
	start := time.Now().UTC().Add(24 * time.Hour)

	tests := []struct {
		name     string
		status   vo.EventStatus
		isPublic bool
		want     bool
	}{
		{"active public", vo.EventStatusActive, true, true},
		{"active private", vo.EventStatusActive, false, false},
		{"draft public", vo.EventStatusDraft, true, false},
		{"cancelled public", vo.EventStatusCancelled, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := ReconstructEvent(EventReconstructParams{
				ID: 1, TenantID: 1, Name: "E", Slug: "e",
				Status: tt.status, IsPublic: tt.isPublic,
				StartAt: start, EndAt: start.Add(time.Hour),
			})
			assert.Equal(t, tt.want, event.IsPurchasable())
		})
	}
}

func TestEvent_StartsWithin(t *testing.T) {
	t.Run("inside the cutoff window", func(t *testing.T) {
		start := time.Now().UTC().Add(12 * time.Hour)
		event := ReconstructEvent(EventReconstructParams{
			ID: 1, TenantID: 1, Name: "Soon", Slug: "soon",
			StartAt: start, EndAt: start.Add(time.Hour),
		})
		assert.True(t, event.StartsWithin(24*time.Hour))
	})

	t.Run("outside the cutoff window", func(t *testing.T) {
		start := time.Now().UTC().Add(72 * time.Hour)
		event := ReconstructEvent(EventReconstructParams{
			ID: 1, TenantID: 1, Name: "Later", Slug: "later",
			StartAt: start, EndAt: start.Add(time.Hour),
		})
		assert.False(t, event.StartsWithin(24*time.Hour))
	})
}
