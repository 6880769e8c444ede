package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"gately/internal/domain/discount"
	"gately/internal/infrastructure/persistence/mappers"
	"gately/internal/infrastructure/persistence/models"
	"gately/internal/shared/db"
	"gately/internal/shared/logger"
)

type DiscountCodeRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.DiscountCodeMapper
	logger logger.Interface
}

// NewDiscountCodeRepository creates a new discount code repository.
func NewDiscountCodeRepository(gdb *gorm.DB, log logger.Interface) *DiscountCodeRepositoryImpl {
	return &DiscountCodeRepositoryImpl{
		db:     gdb,
		mapper: mappers.NewDiscountCodeMapper(),
		logger: log,
	}
}

// FindByEventAndCode retrieves a code scoped to one event. Returns nil when
// not found. The caller normalizes the code before lookup.
func (r *DiscountCodeRepositoryImpl) FindByEventAndCode(ctx context.Context, eventID uint, code string) (*discount.DiscountCode, error) {
	var model models.DiscountCodeModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.
		Where("event_id = ? AND code = ?", eventID, code).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to find discount code", "event_id", eventID, "code", code, "error", err)
		return nil, fmt.Errorf("failed to find discount code: %w", err)
	}

	return r.mapper.ToDomain(&model), nil
}

// Create persists a new discount code and writes the generated ID back.
func (r *DiscountCodeRepositoryImpl) Create(ctx context.Context, dc *discount.DiscountCode) error {
	model := r.mapper.ToModel(dc)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create discount code", "event_id", dc.EventID(), "code", dc.Code(), "error", err)
		return fmt.Errorf("failed to create discount code: %w", err)
	}

	dc.SetID(model.ID)
	return nil
}

// Redeem increments times_redeemed by one with the cap re-checked in the
// same statement. When the conditional update matches no row the cap was
// reached by a concurrent checkout and ErrRedemptionCapReached is returned.
func (r *DiscountCodeRepositoryImpl) Redeem(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.
		Model(&models.DiscountCodeModel{}).
		Where("id = ? AND times_redeemed < max_redemptions", id).
		UpdateColumn("times_redeemed", gorm.Expr("times_redeemed + ?", 1))

	if result.Error != nil {
		r.logger.Errorw("failed to redeem discount code", "id", id, "error", result.Error)
		return fmt.Errorf("failed to redeem discount code: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return discount.ErrRedemptionCapReached
	}

	return nil
}
