// Package ticketing models the individual admission ticket and its
// lifecycle: valid -> scanned (check-in) and valid -> cancelled. Scanned is
// terminal; a consumed ticket can never be cancelled.
package ticketing

import (
	"fmt"
	"time"

	vo "gately/internal/domain/ticketing/valueobjects"
	"gately/internal/shared/biztime"
)

type Ticket struct {
	id            uint
	orderID       uint
	ticketTypeID  uint
	attendeeName  string
	attendeeEmail string
	qrPayload     string
	qrSignature   string
	status        vo.TicketStatus
	checkedInAt   *time.Time
	seatLabel     *string

	createdAt time.Time
	updatedAt time.Time
}

// NewTicket creates a valid, unsigned ticket. The credential is attached
// after the row has an identifier (two-phase persist-then-sign).
func NewTicket(orderID, ticketTypeID uint, attendeeName, attendeeEmail string) (*Ticket, error) {
	if orderID == 0 {
		return nil, fmt.Errorf("order ID is required")
	}
	if ticketTypeID == 0 {
		return nil, fmt.Errorf("ticket type ID is required")
	}
	if attendeeName == "" {
		return nil, fmt.Errorf("attendee name is required")
	}

	now := biztime.NowUTC()
	return &Ticket{
		orderID:       orderID,
		ticketTypeID:  ticketTypeID,
		attendeeName:  attendeeName,
		attendeeEmail: attendeeEmail,
		status:        vo.TicketStatusValid,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// AttachCredential stores the signed QR payload. Requires the ticket to
// have been assigned its identifier first.
func (t *Ticket) AttachCredential(payload, signature string) error {
	if t.id == 0 {
		return fmt.Errorf("cannot attach credential before ticket has an ID")
	}
	t.qrPayload = payload
	t.qrSignature = signature
	t.updatedAt = biztime.NowUTC()
	return nil
}

// CheckIn transitions valid -> scanned. Repeated scans are a conflict; a
// cancelled ticket cannot enter.
func (t *Ticket) CheckIn() error {
	switch t.status {
	case vo.TicketStatusScanned:
		return fmt.Errorf("ticket already checked in")
	case vo.TicketStatusCancelled:
		return fmt.Errorf("ticket is cancelled")
	}
	now := biztime.NowUTC()
	t.status = vo.TicketStatusScanned
	t.checkedInAt = &now
	t.updatedAt = now
	return nil
}

// Cancel transitions valid -> cancelled. Scanned tickets are consumed and
// can never be cancelled.
func (t *Ticket) Cancel() error {
	switch t.status {
	case vo.TicketStatusCancelled:
		return fmt.Errorf("ticket already cancelled")
	case vo.TicketStatusScanned:
		return fmt.Errorf("ticket already checked in")
	}
	t.status = vo.TicketStatusCancelled
	t.updatedAt = biztime.NowUTC()
	return nil
}

func (t *Ticket) ID() uint                  { return t.id }
func (t *Ticket) OrderID() uint             { return t.orderID }
func (t *Ticket) TicketTypeID() uint        { return t.ticketTypeID }
func (t *Ticket) AttendeeName() string      { return t.attendeeName }
func (t *Ticket) AttendeeEmail() string     { return t.attendeeEmail }
func (t *Ticket) QRPayload() string         { return t.qrPayload }
func (t *Ticket) QRSignature() string       { return t.qrSignature }
func (t *Ticket) Status() vo.TicketStatus   { return t.status }
func (t *Ticket) CheckedInAt() *time.Time   { return t.checkedInAt }
func (t *Ticket) SeatLabel() *string        { return t.seatLabel }
func (t *Ticket) CreatedAt() time.Time      { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time      { return t.updatedAt }

// SetID sets the ticket ID after persistence.
func (t *Ticket) SetID(ticketID uint) {
	t.id = ticketID
}

// TicketReconstructParams carries a persisted ticket's state.
type TicketReconstructParams struct {
	ID            uint
	OrderID       uint
	TicketTypeID  uint
	AttendeeName  string
	AttendeeEmail string
	QRPayload     string
	QRSignature   string
	Status        vo.TicketStatus
	CheckedInAt   *time.Time
	SeatLabel     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ReconstructTicket recreates a ticket from persistence.
func ReconstructTicket(p TicketReconstructParams) *Ticket {
	return &Ticket{
		id:            p.ID,
		orderID:       p.OrderID,
		ticketTypeID:  p.TicketTypeID,
		attendeeName:  p.AttendeeName,
		attendeeEmail: p.AttendeeEmail,
		qrPayload:     p.QRPayload,
		qrSignature:   p.QRSignature,
		status:        p.Status,
		checkedInAt:   p.CheckedInAt,
		seatLabel:     p.SeatLabel,
		createdAt:     p.CreatedAt,
		updatedAt:     p.UpdatedAt,
	}
}
