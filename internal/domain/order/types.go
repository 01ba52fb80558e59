package order

type Status string

const (
	StatusPending         Status = "pending"
	StatusAwaitingPayment Status = "awaiting_payment"
	StatusPaid            Status = "paid"
	StatusCancelled       Status = "cancelled"
	StatusFailed          Status = "failed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAwaitingPayment, StatusPaid, StatusCancelled, StatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further customer-facing transition exists.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusPaid, StatusCancelled, StatusFailed:
		return true
	default:
		return false
	}
}

// CanTransitionTo encodes the ledger state machine. Paid is reached at most
// once and never left through the customer-facing path.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusAwaitingPayment || next == StatusPaid ||
			next == StatusCancelled || next == StatusFailed
	case StatusAwaitingPayment:
		return next == StatusPaid || next == StatusCancelled || next == StatusFailed
	default:
		return false
	}
}

// IsCancellable reports whether the customer-facing cancel path applies.
func (s Status) IsCancellable() bool {
	return s == StatusPending || s == StatusAwaitingPayment
}
