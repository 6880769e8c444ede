// Package usecases implements the public catalog queries.
package usecases

import (
	"context"
	"time"

	"gately/internal/domain/catalog"
	"gately/internal/shared/logger"
)

type EventSummary struct {
	ID           uint
	Name         string
	Slug         string
	Venue        string
	City         string
	Country      string
	HeroImageURL *string
	StartAt      time.Time
	EndAt        time.Time
}

type ListEventsResult struct {
	Events []EventSummary
}

type ListEventsUseCase struct {
	eventRepo catalog.EventRepository
	logger    logger.Interface
}

func NewListEventsUseCase(eventRepo catalog.EventRepository, logger logger.Interface) *ListEventsUseCase {
	return &ListEventsUseCase{
		eventRepo: eventRepo,
		logger:    logger,
	}
}

func (uc *ListEventsUseCase) Execute(ctx context.Context) (*ListEventsResult, error) {
	events, err := uc.eventRepo.ListPublic(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]EventSummary, 0, len(events))
	for _, e := range events {
		summaries = append(summaries, EventSummary{
			ID:           e.ID(),
			Name:         e.Name(),
			Slug:         e.Slug(),
			Venue:        e.Venue(),
			City:         e.City(),
			Country:      e.Country(),
			HeroImageURL: e.HeroImageURL(),
			StartAt:      e.StartAt(),
			EndAt:        e.EndAt(),
		})
	}

	return &ListEventsResult{Events: summaries}, nil
}
