package valueobjects

type TicketStatus string

const (
	TicketStatusValid     TicketStatus = "valid"
	TicketStatusScanned   TicketStatus = "scanned"
	TicketStatusCancelled TicketStatus = "cancelled"
)

func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketStatusValid, TicketStatusScanned, TicketStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed. A scanned
// ticket has been consumed for entry and can never be cancelled.
func (s TicketStatus) IsTerminal() bool {
	return s == TicketStatusScanned || s == TicketStatusCancelled
}

func (s TicketStatus) String() string {
	return string(s)
}
