package catalog

import (
	"fmt"
	"time"

	vo "gately/internal/domain/catalog/valueobjects"
	"gately/internal/shared/biztime"
)

// Event is a scheduled happening a tenant sells tickets for. The catalog
// context reads events; creating and editing them belongs to an external
// admin surface, so there are no content mutators here.
type Event struct {
	id           uint
	tenantID     uint
	name         string
	slug         string
	description  string
	venue        string
	city         string
	country      string
	status       vo.EventStatus
	isPublic     bool
	heroImageURL *string
	startAt      time.Time
	endAt        time.Time

	createdAt time.Time
	updatedAt time.Time
}

// NewEvent validates and creates an event. Used by seeds and tests; the
// serving path always reconstructs from persistence.
func NewEvent(tenantID uint, name, slug string, startAt, endAt time.Time) (*Event, error) {
	if tenantID == 0 {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if name == "" {
		return nil, fmt.Errorf("event name is required")
	}
	if slug == "" {
		return nil, fmt.Errorf("event slug is required")
	}
	if !endAt.After(startAt) {
		return nil, fmt.Errorf("event end must be after start")
	}

	now := biztime.NowUTC()
	return &Event{
		tenantID:  tenantID,
		name:      name,
		slug:      slug,
		status:    vo.EventStatusDraft,
		startAt:   startAt,
		endAt:     endAt,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// IsPurchasable reports whether the event may appear in public checkout:
// active status and publicly listed.
func (e *Event) IsPurchasable() bool {
	return e.status == vo.EventStatusActive && e.isPublic
}

// StartsWithin reports whether the event starts in less than d from now.
// The cancellation cutoff check lives on this, not on raw timestamps
// scattered through use cases.
func (e *Event) StartsWithin(d time.Duration) bool {
	return biztime.NowUTC().Add(d).After(e.startAt)
}

func (e *Event) ID() uint               { return e.id }
func (e *Event) TenantID() uint         { return e.tenantID }
func (e *Event) Name() string           { return e.name }
func (e *Event) Slug() string           { return e.slug }
func (e *Event) Description() string    { return e.description }
func (e *Event) Venue() string          { return e.venue }
func (e *Event) City() string           { return e.city }
func (e *Event) Country() string        { return e.country }
func (e *Event) Status() vo.EventStatus { return e.status }
func (e *Event) IsPublic() bool         { return e.isPublic }
func (e *Event) HeroImageURL() *string  { return e.heroImageURL }
func (e *Event) StartAt() time.Time     { return e.startAt }
func (e *Event) EndAt() time.Time       { return e.endAt }
func (e *Event) CreatedAt() time.Time   { return e.createdAt }
func (e *Event) UpdatedAt() time.Time   { return e.updatedAt }

// SetID sets the event ID after persistence.
func (e *Event) SetID(id uint) {
	e.id = id
}

// Publish moves a draft event to active public listing.
func (e *Event) Publish() error {
	if e.status == vo.EventStatusCancelled {
		return fmt.Errorf("cannot publish a cancelled event")
	}
	e.status = vo.EventStatusActive
	e.isPublic = true
	e.updatedAt = biztime.NowUTC()
	return nil
}

// EventReconstructParams carries a persisted event's state.
type EventReconstructParams struct {
	ID           uint
	TenantID     uint
	Name         string
	Slug         string
	Description  string
	Venue        string
	City         string
	Country      string
	Status       vo.EventStatus
	IsPublic     bool
	HeroImageURL *string
	StartAt      time.Time
	EndAt        time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ReconstructEvent recreates an event from persistence.
func ReconstructEvent(p EventReconstructParams) *Event {
	return &Event{
		id:           p.ID,
		tenantID:     p.TenantID,
		name:         p.Name,
		slug:         p.Slug,
		description:  p.Description,
		venue:        p.Venue,
		city:         p.City,
		country:      p.Country,
		status:       p.Status,
		isPublic:     p.IsPublic,
		heroImageURL: p.HeroImageURL,
		startAt:      p.StartAt,
		endAt:        p.EndAt,
		createdAt:    p.CreatedAt,
		updatedAt:    p.UpdatedAt,
	}
}
