package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/brk3/habittracker/pkg/habit"
)

type Filter int

const (
	FilterAll Filter = iota
	// FilterActive selects habits that have not met their target this week.
	FilterActive
	FilterCompleted
)

func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "active":
		return FilterActive, nil
	case "completed", "done":
		return FilterCompleted, nil
	}
	return FilterAll, fmt.Errorf("unknown filter %q: want all, active or completed: %w", s, habit.ErrInvalidArgument)
}

func (f Filter) String() string {
	switch f {
	case FilterActive:
		return "active"
	case FilterCompleted:
		return "completed"
	default:
		return "all"
	}
}

func (f Filter) matches(h *habit.Habit, now time.Time) bool {
	switch f {
	case FilterActive:
		return !h.IsCompletedThisWeek(now)
	case FilterCompleted:
		return h.IsCompletedThisWeek(now)
	default:
		return true
	}
}
