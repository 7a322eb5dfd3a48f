package nudge

import (
	"time"

	"github.com/brk3/habittracker/pkg/habit"
)

type mockQuerier struct {
	habits []habit.Habit
	now    time.Time
}

func (f *mockQuerier) Snapshot() []habit.Habit {
	return f.habits
}

func (f *mockQuerier) Now() time.Time {
	return f.now
}
