package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"gately/internal/domain/catalog"
	"gately/internal/infrastructure/persistence/mappers"
	"gately/internal/infrastructure/persistence/models"
	"gately/internal/shared/db"
	"gately/internal/shared/logger"
)

// TicketTypeRepositoryImpl is the inventory ledger. Reserve and Release are
// the only code paths anywhere that write quantity_sold, and both do so
// through a single conditional UPDATE so the 0 <= quantity_sold <=
// quantity_total invariant holds under any interleaving.
type TicketTypeRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.TicketTypeMapper
	logger logger.Interface
}

// NewTicketTypeRepository creates a new ticket type repository.
func NewTicketTypeRepository(gdb *gorm.DB, log logger.Interface) *TicketTypeRepositoryImpl {
	return &TicketTypeRepositoryImpl{
		db:     gdb,
		mapper: mappers.NewTicketTypeMapper(),
		logger: log,
	}
}

// FindByID retrieves a ticket type by its ID. Returns nil when not found.
func (r *TicketTypeRepositoryImpl) FindByID(ctx context.Context, id uint) (*catalog.TicketType, error) {
	var model models.TicketTypeModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to find ticket type by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to find ticket type: %w", err)
	}

	return r.mapper.ToDomain(&model), nil
}

// FindByIDs retrieves ticket types by their IDs. Missing IDs are simply
// absent from the result; callers decide whether that is an error.
func (r *TicketTypeRepositoryImpl) FindByIDs(ctx context.Context, ids []uint) ([]*catalog.TicketType, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var modelList []models.TicketTypeModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("id IN ?", ids).Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to find ticket types by IDs", "ids", ids, "error", err)
		return nil, fmt.Errorf("failed to find ticket types: %w", err)
	}

	types := make([]*catalog.TicketType, 0, len(modelList))
	for i := range modelList {
		types = append(types, r.mapper.ToDomain(&modelList[i]))
	}

	return types, nil
}

// FindByEventID retrieves all ticket types belonging to an event.
func (r *TicketTypeRepositoryImpl) FindByEventID(ctx context.Context, eventID uint) ([]*catalog.TicketType, error) {
	var modelList []models.TicketTypeModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.
		Where("event_id = ?", eventID).
		Order("price ASC").
		Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to find ticket types by event ID", "event_id", eventID, "error", err)
		return nil, fmt.Errorf("failed to find ticket types: %w", err)
	}

	types := make([]*catalog.TicketType, 0, len(modelList))
	for i := range modelList {
		types = append(types, r.mapper.ToDomain(&modelList[i]))
	}

	return types, nil
}

// Create persists a new ticket type and writes the generated ID back.
func (r *TicketTypeRepositoryImpl) Create(ctx context.Context, tt *catalog.TicketType) error {
	model := r.mapper.ToModel(tt)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create ticket type", "event_id", tt.EventID(), "error", err)
		return fmt.Errorf("failed to create ticket type: %w", err)
	}

	tt.SetID(model.ID)
	return nil
}

// Reserve claims quantity units of stock in one atomic conditional update.
// The WHERE clause re-checks availability inside the statement, so two
// concurrent reservations for the last units cannot both succeed.
func (r *TicketTypeRepositoryImpl) Reserve(ctx context.Context, ticketTypeID uint, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("reserve quantity must be positive, got %d", quantity)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.
		Model(&models.TicketTypeModel{}).
		Where("id = ? AND quantity_sold + ? <= quantity_total", ticketTypeID, quantity).
		UpdateColumn("quantity_sold", gorm.Expr("quantity_sold + ?", quantity))

	if result.Error != nil {
		r.logger.Errorw("failed to reserve inventory", "ticket_type_id", ticketTypeID, "quantity", quantity, "error", result.Error)
		return fmt.Errorf("failed to reserve inventory: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return catalog.ErrInsufficientInventory
	}

	return nil
}

// Release returns quantity units to the pool. The WHERE clause clamps the
// update so quantity_sold never goes negative even if callers double
// release.
func (r *TicketTypeRepositoryImpl) Release(ctx context.Context, ticketTypeID uint, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("release quantity must be positive, got %d", quantity)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.
		Model(&models.TicketTypeModel{}).
		Where("id = ? AND quantity_sold >= ?", ticketTypeID, quantity).
		UpdateColumn("quantity_sold", gorm.Expr("quantity_sold - ?", quantity))

	if result.Error != nil {
		r.logger.Errorw("failed to release inventory", "ticket_type_id", ticketTypeID, "quantity", quantity, "error", result.Error)
		return fmt.Errorf("failed to release inventory: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("release of %d units would underflow ticket type %d", quantity, ticketTypeID)
	}

	return nil
}
