package unit

type State string

const (
	StateAvailable State = "available"
	StateClaimed   State = "claimed"
	StateSold      State = "sold"
)

func (s State) String() string {
	return string(s)
}

func (s State) IsValid() bool {
	switch s {
	case StateAvailable, StateClaimed, StateSold:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the state machine permits the move.
// Sold->Available is the administrative revoke escape hatch.
func (s State) CanTransitionTo(next State) bool {
	switch s {
	case StateAvailable:
		return next == StateClaimed
	case StateClaimed:
		return next == StateSold || next == StateAvailable
	case StateSold:
		return next == StateAvailable
	default:
		return false
	}
}
