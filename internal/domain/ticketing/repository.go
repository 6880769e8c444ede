package ticketing

import (
	"context"
	"errors"

	vo "gately/internal/domain/ticketing/valueobjects"
)

// ErrStaleTicketState is returned by the conditional transition updates
// when the row's status no longer matches the expected one: a concurrent
// check-in or cancellation won the race.
var ErrStaleTicketState = errors.New("ticket state changed concurrently")

type Repository interface {
	// CreateBatch persists unsigned tickets, writing generated IDs back.
	CreateBatch(ctx context.Context, tickets []*Ticket) error

	// UpdateCredential stores the signed QR payload for one ticket (phase
	// two of persist-then-sign).
	UpdateCredential(ctx context.Context, t *Ticket) error

	FindByID(ctx context.Context, ticketID uint) (*Ticket, error)
	FindByOrderID(ctx context.Context, orderID uint) ([]*Ticket, error)

	// TransitionStatus persists a status change conditionally: the UPDATE
	// carries WHERE status = <expected> so two racing transitions cannot
	// both succeed. Returns ErrStaleTicketState when no row matched.
	TransitionStatus(ctx context.Context, t *Ticket, expected vo.TicketStatus) error

	// CountNotCancelledByOrderID counts the order's tickets that are still
	// valid or scanned. Read inside the cancellation transaction to decide
	// cascading order cancellation.
	CountNotCancelledByOrderID(ctx context.Context, orderID uint) (int64, error)
}
