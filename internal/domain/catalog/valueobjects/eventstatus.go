package valueobjects

type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusActive    EventStatus = "active"
	EventStatusCancelled EventStatus = "cancelled"
)

func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusDraft, EventStatusActive, EventStatusCancelled:
		return true
	}
	return false
}

func (s EventStatus) String() string {
	return string(s)
}
