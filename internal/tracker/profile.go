package tracker

import (
	"time"

	"github.com/brk3/habittracker/pkg/habit"
)

type Profile struct {
	Name              string
	TotalHabits       int
	CompletedThisWeek int
	DaysSinceJoin     int
}

// ComputeProfile derives the profile from a habit snapshot. A habit counts as
// completed this week once it has any completion inside the window,
// regardless of its target. A joinedAt in the future yields zero days.
func ComputeProfile(habits []habit.Habit, joinedAt, now time.Time) Profile {
	completed := 0
	for i := range habits {
		if habits[i].CompletionsThisWeek(now) > 0 {
			completed++
		}
	}

	days := 0
	if d := now.Sub(joinedAt); d > 0 {
		days = int(d / (24 * time.Hour))
	}

	return Profile{
		TotalHabits:       len(habits),
		CompletedThisWeek: completed,
		DaysSinceJoin:     days,
	}
}

// Profile computes the profile for name over the current habits. A zero
// joinedAt falls back to the oldest habit's creation time.
func (t *Tracker) Profile(name string, joinedAt time.Time) Profile {
	habits := t.Snapshot()
	now := t.now()
	if joinedAt.IsZero() {
		joinedAt = now
		for _, h := range habits {
			if h.CreatedAt.Before(joinedAt) {
				joinedAt = h.CreatedAt
			}
		}
	}
	p := ComputeProfile(habits, joinedAt, now)
	p.Name = name
	return p
}
