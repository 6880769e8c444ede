package usecases

import (
	"context"
	"time"

	"gately/internal/domain/catalog"
	"gately/internal/shared/biztime"
	"gately/internal/shared/errors"
	"gately/internal/shared/logger"
	"gately/internal/shared/services/markdown"
)

type GetEventQuery struct {
	// Slug resolves the event when set; otherwise ID is used.
	Slug string
	ID   uint
}

type TicketTypeView struct {
	ID          uint
	Name        string
	Description string
	Price       int64
	Currency    string
	Available   int
	OnSale      bool
	SalesStart  time.Time
	SalesEnd    time.Time
}

type EventDetail struct {
	ID              uint
	Name            string
	Slug            string
	DescriptionHTML string
	Venue           string
	City            string
	Country         string
	HeroImageURL    *string
	StartAt         time.Time
	EndAt           time.Time
	TicketTypes     []TicketTypeView
}

// GetEventUseCase serves the public event page: the event, its rendered
// description, and its purchasable ticket types with live availability.
type GetEventUseCase struct {
	eventRepo      catalog.EventRepository
	ticketTypeRepo catalog.TicketTypeRepository
	renderer       markdown.MarkdownService
	logger         logger.Interface
}

func NewGetEventUseCase(
	eventRepo catalog.EventRepository,
	ticketTypeRepo catalog.TicketTypeRepository,
	renderer markdown.MarkdownService,
	logger logger.Interface,
) *GetEventUseCase {
	return &GetEventUseCase{
		eventRepo:      eventRepo,
		ticketTypeRepo: ticketTypeRepo,
		renderer:       renderer,
		logger:         logger,
	}
}

func (uc *GetEventUseCase) Execute(ctx context.Context, query GetEventQuery) (*EventDetail, error) {
	var event *catalog.Event
	var err error

	if query.Slug != "" {
		event, err = uc.eventRepo.FindBySlug(ctx, query.Slug)
	} else if query.ID != 0 {
		event, err = uc.eventRepo.FindByID(ctx, query.ID)
	} else {
		return nil, errors.NewBadRequestError("event slug or ID is required")
	}
	if err != nil {
		return nil, err
	}
	if event == nil || !event.IsPurchasable() {
		// Drafts and private events are invisible, not forbidden.
		return nil, errors.NewNotFoundError("event not found")
	}

	descriptionHTML, err := uc.renderer.ToHTMLSanitized(event.Description())
	if err != nil {
		uc.logger.Warnw("failed to render event description", "event_id", event.ID(), "error", err)
		descriptionHTML = ""
	}

	types, err := uc.ticketTypeRepo.FindByEventID(ctx, event.ID())
	if err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	views := make([]TicketTypeView, 0, len(types))
	for _, tt := range types {
		views = append(views, TicketTypeView{
			ID:          tt.ID(),
			Name:        tt.Name(),
			Description: tt.Description(),
			Price:       tt.Price().Amount(),
			Currency:    tt.Price().Currency(),
			Available:   tt.Available(),
			OnSale:      tt.IsOnSale(now),
			SalesStart:  tt.SalesStart(),
			SalesEnd:    tt.SalesEnd(),
		})
	}

	return &EventDetail{
		ID:              event.ID(),
		Name:            event.Name(),
		Slug:            event.Slug(),
		DescriptionHTML: descriptionHTML,
		Venue:           event.Venue(),
		City:            event.City(),
		Country:         event.Country(),
		HeroImageURL:    event.HeroImageURL(),
		StartAt:         event.StartAt(),
		EndAt:           event.EndAt(),
		TicketTypes:     views,
	}, nil
}
