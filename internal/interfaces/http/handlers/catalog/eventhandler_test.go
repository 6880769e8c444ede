package catalog

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gately/internal/application/catalog/usecases"
	"gately/internal/interfaces/http/handlers/testutil"
	"gately/internal/shared/errors"
)

type mockListEventsUC struct {
	result *usecases.ListEventsResult
	err    error
}

func (m *mockListEventsUC) Execute(ctx context.Context) (*usecases.ListEventsResult, error) {
	return m.result, m.err
}

type mockGetEventUC struct {
	result   *usecases.EventDetail
	err      error
	gotQuery usecases.GetEventQuery
}

func (m *mockGetEventUC) Execute(ctx context.Context, query usecases.GetEventQuery) (*usecases.EventDetail, error) {
	m.gotQuery = query
	return m.result, m.err
}

func TestEventHandler_ListEvents(t *testing.T) {
	t.Run("returns the public listing", func(t *testing.T) {
		mockUC := &mockListEventsUC{result: &usecases.ListEventsResult{
			Events: []usecases.EventSummary{
				{ID: 1, Name: "Dhaka Jazz Night", Slug: "dhaka-jazz-night"},
				{ID: 2, Name: "Tech Summit", Slug: "tech-summit"},
			},
		}}
		handler := NewEventHandler(mockUC, nil)

		c, w := testutil.NewTestContext(http.MethodGet, "/events", nil)
		handler.ListEvents(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		assert.True(t, resp.Success)
	})
}

func TestEventHandler_GetEvent(t *testing.T) {
	t.Run("resolves by slug", func(t *testing.T) {
		mockUC := &mockGetEventUC{result: &usecases.EventDetail{
			ID:   1,
			Slug: "dhaka-jazz-night",
		}}
		handler := NewEventHandler(nil, mockUC)

		c, w := testutil.NewTestContext(http.MethodGet, "/events/dhaka-jazz-night", nil)
		testutil.SetURLParam(c, "slug", "dhaka-jazz-night")
		handler.GetEvent(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "dhaka-jazz-night", mockUC.gotQuery.Slug)
		assert.Zero(t, mockUC.gotQuery.ID)
	})

	t.Run("numeric values resolve by ID", func(t *testing.T) {
		mockUC := &mockGetEventUC{result: &usecases.EventDetail{ID: 42}}
		handler := NewEventHandler(nil, mockUC)

		c, w := testutil.NewTestContext(http.MethodGet, "/events/42", nil)
		testutil.SetURLParam(c, "slug", "42")
		handler.GetEvent(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint(42), mockUC.gotQuery.ID)
		assert.Empty(t, mockUC.gotQuery.Slug)
	})

	t.Run("unknown event maps to 404", func(t *testing.T) {
		mockUC := &mockGetEventUC{err: errors.NewNotFoundError("event not found")}
		handler := NewEventHandler(nil, mockUC)

		c, w := testutil.NewTestContext(http.MethodGet, "/events/nope", nil)
		testutil.SetURLParam(c, "slug", "nope")
		handler.GetEvent(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
