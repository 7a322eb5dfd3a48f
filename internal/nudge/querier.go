package nudge

import (
	"time"

	"github.com/brk3/habittracker/pkg/habit"
)

// Querier is the read-only view of the tracker a reminder needs.
type Querier interface {
	Snapshot() []habit.Habit
	Now() time.Time
}
