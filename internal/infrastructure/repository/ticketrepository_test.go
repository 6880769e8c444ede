package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gately/internal/domain/ticketing"
	vo "gately/internal/domain/ticketing/valueobjects"
)

func createTestTickets(t *testing.T, repo *TicketRepositoryImpl, orderID uint, count int) []*ticketing.Ticket {
	tickets := make([]*ticketing.Ticket, 0, count)
	for i := 0; i < count; i++ {
		tk, err := ticketing.NewTicket(orderID, 1, "Attendee", "attendee@example.com")
		require.NoError(t, err)
		tickets = append(tickets, tk)
	}
	require.NoError(t, repo.CreateBatch(context.Background(), tickets))
	return tickets
}

func TestTicketRepository_CreateBatch(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb, testLogger())
	ctx := context.Background()

	tickets := createTestTickets(t, repo, 1, 3)

	for _, tk := range tickets {
		assert.NotZero(t, tk.ID())
	}

	found, err := repo.FindByOrderID(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, found, 3)
}

func TestTicketRepository_UpdateCredential(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb, testLogger())
	ctx := context.Background()

	tk := createTestTickets(t, repo, 2, 1)[0]
	require.NoError(t, tk.AttachCredential(`{"ticketId":1}`, "cafebabe"))
	require.NoError(t, repo.UpdateCredential(ctx, tk))

	reloaded, err := repo.FindByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Equal(t, `{"ticketId":1}`, reloaded.QRPayload())
	assert.Equal(t, "cafebabe", reloaded.QRSignature())
}

func TestTicketRepository_TransitionStatus(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb, testLogger())
	ctx := context.Background()

	t.Run("valid to scanned persists checked_in_at", func(t *testing.T) {
		tk := createTestTickets(t, repo, 3, 1)[0]
		require.NoError(t, tk.CheckIn())

		require.NoError(t, repo.TransitionStatus(ctx, tk, vo.TicketStatusValid))

		reloaded, err := repo.FindByID(ctx, tk.ID())
		require.NoError(t, err)
		assert.Equal(t, vo.TicketStatusScanned, reloaded.Status())
		assert.NotNil(t, reloaded.CheckedInAt())
	})

	t.Run("stale expectation loses the race", func(t *testing.T) {
		tk := createTestTickets(t, repo, 4, 1)[0]
		require.NoError(t, tk.CheckIn())
		require.NoError(t, repo.TransitionStatus(ctx, tk, vo.TicketStatusValid))

		// A second writer still expecting "valid" must fail.
		err := repo.TransitionStatus(ctx, tk, vo.TicketStatusValid)
		assert.ErrorIs(t, err, ticketing.ErrStaleTicketState)
	})
}

func TestTicketRepository_CountNotCancelledByOrderID(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb, testLogger())
	ctx := context.Background()

	tickets := createTestTickets(t, repo, 5, 3)

	count, err := repo.CountNotCancelledByOrderID(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	require.NoError(t, tickets[0].Cancel())
	require.NoError(t, repo.TransitionStatus(ctx, tickets[0], vo.TicketStatusValid))

	count, err = repo.CountNotCancelledByOrderID(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	t.Run("scanned tickets still count", func(t *testing.T) {
		require.NoError(t, tickets[1].CheckIn())
		require.NoError(t, repo.TransitionStatus(ctx, tickets[1], vo.TicketStatusValid))

		count, err := repo.CountNotCancelledByOrderID(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}
