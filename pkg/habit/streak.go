package habit

import (
	"slices"
	"time"
)

// dayNumber counts days since the epoch for a key. The local date is moved to
// UTC first so DST never stretches or shrinks a day.
func dayNumber(k DateKey) (int64, bool) {
	t := k.Time()
	if t.IsZero() {
		return 0, false
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / (24 * 60 * 60), true
}

// Streaks returns the run of consecutive completed days that is still alive
// (ending today or yesterday) and the longest run ever recorded.
func (h *Habit) Streaks(now time.Time) (current, longest int) {
	days := make([]int64, 0, len(h.CompletionDates))
	for _, k := range h.CompletionDates {
		if d, ok := dayNumber(k); ok {
			days = append(days, d)
		}
	}
	if len(days) == 0 {
		return 0, 0
	}
	slices.Sort(days)
	days = slices.Compact(days)
	slices.Reverse(days)

	today, _ := dayNumber(KeyFor(now))
	streakOngoing := days[0] == today || days[0] == today-1
	longest = 1
	run := 1
	if streakOngoing {
		current = 1
	}

	for i := 0; i < len(days)-1; i++ {
		if days[i]-days[i+1] == 1 {
			run++
			longest = max(longest, run)
			if streakOngoing {
				current++
			}
		} else {
			run = 1
			streakOngoing = false
		}
	}

	return current, longest
}
