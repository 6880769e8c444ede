// Package usecases implements the staff-facing ticket lifecycle
// operations: gate check-in and buyer cancellation.
package usecases

import (
	"context"
	"time"

	"gately/internal/domain/catalog"
	"gately/internal/domain/order"
	ordervo "gately/internal/domain/order/valueobjects"
	"gately/internal/domain/ticketing"
	vo "gately/internal/domain/ticketing/valueobjects"
	"gately/internal/shared/errors"
	"gately/internal/shared/logger"
)

type CheckInCommand struct {
	// QRPayload is the raw JSON scanned from the ticket. When empty,
	// TicketID is used directly (manual entry at the gate).
	QRPayload   string
	QRSignature string
	TicketID    uint

	// StaffTenantID scopes the scan to the staff member's tenant.
	StaffTenantID uint
}

type CheckInResult struct {
	TicketID     uint
	AttendeeName string
	TicketTypeID uint
	EventID      uint
	CheckedInAt  time.Time
}

type CheckInUseCase struct {
	ticketRepo ticketing.Repository
	orderRepo  order.Repository
	eventRepo  catalog.EventRepository
	signer     ticketing.CredentialSigner
	logger     logger.Interface
}

func NewCheckInUseCase(
	ticketRepo ticketing.Repository,
	orderRepo order.Repository,
	eventRepo catalog.EventRepository,
	signer ticketing.CredentialSigner,
	logger logger.Interface,
) *CheckInUseCase {
	return &CheckInUseCase{
		ticketRepo: ticketRepo,
		orderRepo:  orderRepo,
		eventRepo:  eventRepo,
		signer:     signer,
		logger:     logger,
	}
}

// Execute admits one attendee. The scanned signature is re-verified
// against the payload bytes; a stored row is never trusted to prove the
// QR code was genuine.
func (uc *CheckInUseCase) Execute(ctx context.Context, cmd CheckInCommand) (*CheckInResult, error) {
	ticketID := cmd.TicketID

	if cmd.QRPayload != "" {
		payload, err := ticketing.DecodeCredentialPayload([]byte(cmd.QRPayload))
		if err != nil {
			return nil, errors.NewBadRequestError("invalid ticket QR payload")
		}
		if !uc.signer.Verify([]byte(cmd.QRPayload), cmd.QRSignature) {
			uc.logger.Warnw("check-in rejected: bad signature", "ticket_id", payload.TicketID)
			return nil, errors.NewForbiddenError("ticket signature verification failed")
		}
		ticketID = payload.TicketID
	}

	if ticketID == 0 {
		return nil, errors.NewBadRequestError("ticket ID or QR payload is required")
	}

	t, err := uc.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errors.NewNotFoundError("ticket not found")
	}

	// The stored credential must verify too, whichever path found the
	// ticket. A row whose payload or signature does not check out was
	// tampered with after issuance.
	if !uc.signer.Verify([]byte(t.QRPayload()), t.QRSignature()) {
		uc.logger.Warnw("check-in rejected: stored credential failed verification", "ticket_id", t.ID())
		return nil, errors.NewForbiddenError("ticket signature verification failed")
	}

	o, err := uc.orderRepo.FindByID(ctx, t.OrderID())
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, errors.NewNotFoundError("order not found")
	}
	if o.TenantID() != cmd.StaffTenantID {
		return nil, errors.NewForbiddenError("ticket belongs to another tenant")
	}
	if o.Status() != ordervo.OrderStatusCompleted {
		return nil, errors.NewBadRequestError("order is not completed")
	}

	if err := t.CheckIn(); err != nil {
		return nil, errors.NewConflictError(err.Error())
	}

	if err := uc.ticketRepo.TransitionStatus(ctx, t, vo.TicketStatusValid); err != nil {
		if err == ticketing.ErrStaleTicketState {
			return nil, errors.NewConflictError("ticket already checked in")
		}
		return nil, err
	}

	uc.logger.Infow("ticket checked in", "ticket_id", t.ID(), "order_id", o.ID())

	return &CheckInResult{
		TicketID:     t.ID(),
		AttendeeName: t.AttendeeName(),
		TicketTypeID: t.TicketTypeID(),
		EventID:      o.EventID(),
		CheckedInAt:  *t.CheckedInAt(),
	}, nil
}
