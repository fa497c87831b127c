package domain

import "fmt"

// Status is an order's fulfillment phase. Transitions only move forward:
// pickup -> preparing -> billing -> completed.
type Status string

const (
	StatusPickup    Status = "pickup"
	StatusPreparing Status = "preparing"
	StatusBilling   Status = "billing"
	StatusCompleted Status = "completed" // terminal
)

// rank gives each status its position in the pipeline.
var rank = map[Status]int{
	StatusPickup:    0,
	StatusPreparing: 1,
	StatusBilling:   2,
	StatusCompleted: 3,
}

// ParseStatus validates a raw status string.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := rank[st]; !ok {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, s)
	}
	return st, nil
}

// Valid reports whether the status belongs to the fixed set.
func (s Status) Valid() bool {
	_, ok := rank[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is a legal single step.
// In-place edits (notes, price corrections) are not transitions and bypass this check.
func (s Status) CanTransitionTo(next Status) bool {
	sr, ok1 := rank[s]
	nr, ok2 := rank[next]
	return ok1 && ok2 && nr == sr+1
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusCompleted
}
