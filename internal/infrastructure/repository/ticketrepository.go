package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"gately/internal/domain/ticketing"
	vo "gately/internal/domain/ticketing/valueobjects"
	"gately/internal/infrastructure/persistence/mappers"
	"gately/internal/infrastructure/persistence/models"
	"gately/internal/shared/db"
	"gately/internal/shared/logger"
)

type TicketRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
	logger logger.Interface
}

// NewTicketRepository creates a new ticket repository.
func NewTicketRepository(gdb *gorm.DB, log logger.Interface) *TicketRepositoryImpl {
	return &TicketRepositoryImpl{
		db:     gdb,
		mapper: mappers.NewTicketMapper(),
		logger: log,
	}
}

// CreateBatch persists unsigned tickets and writes generated IDs back.
// Rows are inserted one by one so each aggregate learns its own ID; the
// batch always runs inside the checkout transaction.
func (r *TicketRepositoryImpl) CreateBatch(ctx context.Context, tickets []*ticketing.Ticket) error {
	tx := db.GetTxFromContext(ctx, r.db)

	for _, t := range tickets {
		model := r.mapper.ToModel(t)
		if err := tx.Create(model).Error; err != nil {
			r.logger.Errorw("failed to create ticket", "order_id", t.OrderID(), "error", err)
			return fmt.Errorf("failed to create ticket: %w", err)
		}
		t.SetID(model.ID)
	}

	return nil
}

// UpdateCredential stores the signed QR payload for one ticket.
func (r *TicketRepositoryImpl) UpdateCredential(ctx context.Context, t *ticketing.Ticket) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.
		Model(&models.TicketModel{}).
		Where("id = ?", t.ID()).
		Updates(map[string]interface{}{
			"qr_payload":   t.QRPayload(),
			"qr_signature": t.QRSignature(),
			"updated_at":   t.UpdatedAt(),
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update ticket credential", "id", t.ID(), "error", result.Error)
		return fmt.Errorf("failed to update ticket credential: %w", result.Error)
	}

	return nil
}

// FindByID retrieves a ticket by its ID. Returns nil when not found.
func (r *TicketRepositoryImpl) FindByID(ctx context.Context, ticketID uint) (*ticketing.Ticket, error) {
	var model models.TicketModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, ticketID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to find ticket by ID", "id", ticketID, "error", err)
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return r.mapper.ToDomain(&model), nil
}

// FindByOrderID retrieves all tickets belonging to an order.
func (r *TicketRepositoryImpl) FindByOrderID(ctx context.Context, orderID uint) ([]*ticketing.Ticket, error) {
	var modelList []models.TicketModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to find tickets by order ID", "order_id", orderID, "error", err)
		return nil, fmt.Errorf("failed to find tickets: %w", err)
	}

	tickets := make([]*ticketing.Ticket, 0, len(modelList))
	for i := range modelList {
		tickets = append(tickets, r.mapper.ToDomain(&modelList[i]))
	}

	return tickets, nil
}

// TransitionStatus persists a status change with the previous status
// re-checked in the same statement. Two racing transitions cannot both
// match the row; the loser gets ErrStaleTicketState.
func (r *TicketRepositoryImpl) TransitionStatus(ctx context.Context, t *ticketing.Ticket, expected vo.TicketStatus) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.
		Model(&models.TicketModel{}).
		Where("id = ? AND status = ?", t.ID(), expected.String()).
		Updates(map[string]interface{}{
			"status":        t.Status().String(),
			"checked_in_at": t.CheckedInAt(),
			"updated_at":    t.UpdatedAt(),
		})

	if result.Error != nil {
		r.logger.Errorw("failed to transition ticket status", "id", t.ID(), "from", expected, "to", t.Status(), "error", result.Error)
		return fmt.Errorf("failed to transition ticket status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ticketing.ErrStaleTicketState
	}

	return nil
}

// CountNotCancelledByOrderID counts the order's tickets still valid or
// scanned. Read inside the cancellation transaction so the cascade decision
// sees the sibling just cancelled.
func (r *TicketRepositoryImpl) CountNotCancelledByOrderID(ctx context.Context, orderID uint) (int64, error) {
	var count int64

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.
		Model(&models.TicketModel{}).
		Where("order_id = ? AND status <> ?", orderID, vo.TicketStatusCancelled.String()).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count active tickets", "order_id", orderID, "error", err)
		return 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	return count, nil
}
