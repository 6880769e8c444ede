package valueobjects

type TicketTypeStatus string

const (
	TicketTypeStatusActive TicketTypeStatus = "active"
	TicketTypeStatusPaused TicketTypeStatus = "paused"
	TicketTypeStatusClosed TicketTypeStatus = "closed"
)

func (s TicketTypeStatus) IsValid() bool {
	switch s {
	case TicketTypeStatusActive, TicketTypeStatusPaused, TicketTypeStatusClosed:
		return true
	}
	return false
}

func (s TicketTypeStatus) String() string {
	return string(s)
}
