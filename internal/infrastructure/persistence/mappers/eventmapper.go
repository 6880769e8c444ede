// Package mappers handles the conversion between domain entities and
// persistence models.
package mappers

import (
	"gately/internal/domain/catalog"
	vo "gately/internal/domain/catalog/valueobjects"
	"gately/internal/infrastructure/persistence/models"
)

// EventMapper handles the conversion between Event domain entities and persistence models.
type EventMapper interface {
	ToModel(e *catalog.Event) *models.EventModel
	ToDomain(model *models.EventModel) *catalog.Event
}

type EventMapperImpl struct{}

// NewEventMapper creates a new EventMapper.
func NewEventMapper() EventMapper {
	return &EventMapperImpl{}
}

// ToModel converts an event domain entity to a persistence model.
func (m *EventMapperImpl) ToModel(e *catalog.Event) *models.EventModel {
	return &models.EventModel{
		ID:           e.ID(),
		TenantID:     e.TenantID(),
		Name:         e.Name(),
		Slug:         e.Slug(),
		Description:  e.Description(),
		Venue:        e.Venue(),
		City:         e.City(),
		Country:      e.Country(),
		Status:       e.Status().String(),
		IsPublic:     e.IsPublic(),
		HeroImageURL: e.HeroImageURL(),
		StartAt:      e.StartAt(),
		EndAt:        e.EndAt(),
		CreatedAt:    e.CreatedAt(),
		UpdatedAt:    e.UpdatedAt(),
	}
}

// ToDomain converts an event persistence model to a domain entity.
func (m *EventMapperImpl) ToDomain(model *models.EventModel) *catalog.Event {
	return catalog.ReconstructEvent(catalog.EventReconstructParams{
		ID:           model.ID,
		TenantID:     model.TenantID,
		Name:         model.Name,
		Slug:         model.Slug,
		Description:  model.Description,
		Venue:        model.Venue,
		City:         model.City,
		Country:      model.Country,
		Status:       vo.EventStatus(model.Status),
		IsPublic:     model.IsPublic,
		HeroImageURL: model.HeroImageURL,
		StartAt:      model.StartAt,
		EndAt:        model.EndAt,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	})
}
