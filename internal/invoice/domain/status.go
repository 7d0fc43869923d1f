package domain

// InvoiceStatus represents invoice lifecycle states.
type InvoiceStatus string

const (
	StatusDraft     InvoiceStatus = "draft"
	StatusPending   InvoiceStatus = "pending"
	StatusPaid      InvoiceStatus = "paid"
	StatusOverdue   InvoiceStatus = "overdue"
	StatusCancelled InvoiceStatus = "cancelled"
)

// Statuses lists every defined lifecycle state.
var Statuses = []InvoiceStatus{
	StatusDraft,
	StatusPending,
	StatusPaid,
	StatusOverdue,
	StatusCancelled,
}

// Transitions is the explicit transition table. Every state currently
// permits every state (including staying put), so tightening a
// transition later is a table edit rather than a rewrite. Note that
// draft is reachable only through a status update: the creation path
// always assigns pending.
var Transitions = map[InvoiceStatus][]InvoiceStatus{
	StatusDraft:     {StatusDraft, StatusPending, StatusPaid, StatusOverdue, StatusCancelled},
	StatusPending:   {StatusDraft, StatusPending, StatusPaid, StatusOverdue, StatusCancelled},
	StatusPaid:      {StatusDraft, StatusPending, StatusPaid, StatusOverdue, StatusCancelled},
	StatusOverdue:   {StatusDraft, StatusPending, StatusPaid, StatusOverdue, StatusCancelled},
	StatusCancelled: {StatusDraft, StatusPending, StatusPaid, StatusOverdue, StatusCancelled},
}

// ParseStatus validates a status token against the defined set.
func ParseStatus(raw string) (InvoiceStatus, error) {
	for _, status := range Statuses {
		if InvoiceStatus(raw) == status {
			return status, nil
		}
	}
	return "", ErrInvalidStatus
}

// CanTransition reports whether the transition table permits moving
// from one state to another.
func CanTransition(from, to InvoiceStatus) bool {
	for _, allowed := range Transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
