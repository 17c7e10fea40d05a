package order

// Status is the lifecycle label of an order.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return Status(raw), nil
	}
	return "", ErrUnknownStatus
}

// IsTerminal reports whether the order has left the fulfilment pipeline.
// Deleting a terminal order does not restore stock.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// transitions is the allowed status graph: pending -> processing -> completed,
// cancellation from any non-terminal state. Everything else is rejected.
var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusCompleted, StatusCancelled},
}

// CanTransitionTo reports whether the move from s to next is allowed.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
