package engagement

// Polarity is the direction of a vote as it crosses the API boundary.
// The empty string means "no vote".
type Polarity string

const (
	Up   Polarity = "UP"
	Down Polarity = "DOWN"
	None Polarity = ""
)

func (p Polarity) Valid() bool {
	return p == Up || p == Down
}

// Value is the signed unit a polarity contributes to a vote score.
func (p Polarity) Value() int {
	switch p {
	case Up:
		return 1
	case Down:
		return -1
	default:
		return 0
	}
}

type Action int

const (
	ActionCreate Action = iota + 1
	ActionUpdate
	ActionDelete
)

// Transition is one row of the vote state machine: what to do to the vote
// record, the signed delta applied to both the target's vote score and the
// author's karma, and the voter's resulting state.
type Transition struct {
	Action Action
	Delta  int
	Result Polarity
}

// Resolve selects the transition for a requested polarity given the voter's
// existing vote on the target. Casting the polarity already held is a
// toggle-off, not a no-op: the vote is deleted and its unit refunded.
// Switching polarity moves the score by two in a single step.
func Resolve(existing, requested Polarity) Transition {
	switch {
	case existing == None:
		return Transition{Action: ActionCreate, Delta: requested.Value(), Result: requested}
	case existing == requested:
		return Transition{Action: ActionDelete, Delta: -requested.Value(), Result: None}
	default:
		return Transition{Action: ActionUpdate, Delta: 2 * requested.Value(), Result: requested}
	}
}
