package mappers

import (
	"gately/internal/domain/ticketing"
	vo "gately/internal/domain/ticketing/valueobjects"
	"gately/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between Ticket domain entities and persistence models.
type TicketMapper interface {
	ToModel(t *ticketing.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) *ticketing.Ticket
}

type TicketMapperImpl struct{}

// NewTicketMapper creates a new TicketMapper.
func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

// ToModel converts a ticket domain entity to a persistence model.
func (m *TicketMapperImpl) ToModel(t *ticketing.Ticket) *models.TicketModel {
	return &models.TicketModel{
		ID:            t.ID(),
		OrderID:       t.OrderID(),
		TicketTypeID:  t.TicketTypeID(),
		AttendeeName:  t.AttendeeName(),
		AttendeeEmail: t.AttendeeEmail(),
		QRPayload:     t.QRPayload(),
		QRSignature:   t.QRSignature(),
		Status:        t.Status().String(),
		CheckedInAt:   t.CheckedInAt(),
		SeatLabel:     t.SeatLabel(),
		CreatedAt:     t.CreatedAt(),
		UpdatedAt:     t.UpdatedAt(),
	}
}

// ToDomain converts a ticket persistence model to a domain entity.
func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) *ticketing.Ticket {
	return ticketing.ReconstructTicket(ticketing.TicketReconstructParams{
		ID:            model.ID,
		OrderID:       model.OrderID,
		TicketTypeID:  model.TicketTypeID,
		AttendeeName:  model.AttendeeName,
		AttendeeEmail: model.AttendeeEmail,
		QRPayload:     model.QRPayload,
		QRSignature:   model.QRSignature,
		Status:        vo.TicketStatus(model.Status),
		CheckedInAt:   model.CheckedInAt,
		SeatLabel:     model.SeatLabel,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	})
}
