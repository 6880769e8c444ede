// Package repository contains the gorm-backed implementations of the
// domain repository interfaces. All queries go through
// db.GetTxFromContext so they join an ambient transaction when one is
// running.
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

type EventRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.EventMapper
	logger logger.Interface
}

// NewEventRepository creates a new event repository.
func NewEventRepository(gdb *gorm.DB, log logger.Interface) *EventRepositoryImpl {
	return &EventRepositoryImpl{
		db:     gdb,
		mapper: mappers.NewEventMapper(),
		logger: log,
	}
}

// FindByID retrieves an event by its ID. Returns nil when not found.
func (r *EventRepositoryImpl) FindByID(ctx context.Context, id uint) (*catalog.Event, error) {
	var model models.EventModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to find event by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to find event: %w", err)
	}

	return r.mapper.ToDomain(&model), nil
}

// FindBySlug retrieves an event by its URL slug. Returns nil when not found.
func (r *EventRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*catalog.Event, error) {
	var model models.EventModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("slug = ?", slug).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to find event by slug", "slug", slug, "error", err)
		return nil, fmt.Errorf("failed to find event: %w", err)
	}

	return r.mapper.ToDomain(&model), nil
}

// ListPublic retrieves active, publicly listed events ordered by start time.
func (r *EventRepositoryImpl) ListPublic(ctx context.Context) ([]*catalog.Event, error) {
	var modelList []models.EventModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.
		Where("status = ? AND is_public = ?", "active", true).
		Order("start_at ASC").
		Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list public events", "error", err)
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	events := make([]*catalog.Event, 0, len(modelList))
	for i := range modelList {
		events = append(events, r.mapper.ToDomain(&modelList[i]))
	}

	return events, nil
}

// Create persists a new event and writes the generated ID back.
func (r *EventRepositoryImpl) Create(ctx context.Context, event *catalog.Event) error {
	model := r.mapper.ToModel(event)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create event", "slug", event.Slug(), "error", err)
		return fmt.Errorf("failed to create event: %w", err)
	}

	event.SetID(model.ID)
	return nil
}
