package habit

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

type Habit struct {
	ID              int
	Name            string
	TargetFrequency int
	CompletionDates []DateKey
	CreatedAt       time.Time
}

type Status int

const (
	StatusGoGo Status = iota
	StatusKeepGoing
	StatusDone
)

func (s Status) String() string {
	switch s {
	case StatusDone:
		return "Done"
	case StatusKeepGoing:
		return "Keep Going"
	default:
		return "Go Go!"
	}
}

// New validates name and target and returns a habit with no completions.
func New(id int, name string, target int, createdAt time.Time) (*Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("habit name is required: %w", ErrInvalidArgument)
	}
	if target <= 0 {
		return nil, fmt.Errorf("target frequency must be positive, got %d: %w", target, ErrInvalidArgument)
	}
	return &Habit{
		ID:              id,
		Name:            name,
		TargetFrequency: target,
		CreatedAt:       createdAt,
	}, nil
}

// MarkComplete records now's calendar day. It reports alreadyDone when the
// day was recorded before, in which case nothing changes.
func (h *Habit) MarkComplete(now time.Time) (alreadyDone bool) {
	today := KeyFor(now)
	if slices.Contains(h.CompletionDates, today) {
		return true
	}
	h.CompletionDates = append(h.CompletionDates, today)
	return false
}

func (h *Habit) CompletionsThisWeek(now time.Time) int {
	week := WeekOf(now)
	n := 0
	for _, d := range h.CompletionDates {
		if week.Contains(d) {
			n++
		}
	}
	return n
}

func (h *Habit) ProgressPercentage(now time.Time) float64 {
	if h.TargetFrequency <= 0 {
		return 0
	}
	progress := 100 * float64(h.CompletionsThisWeek(now)) / float64(h.TargetFrequency)
	return min(progress, 100)
}

func (h *Habit) IsCompletedThisWeek(now time.Time) bool {
	return h.CompletionsThisWeek(now) >= h.TargetFrequency
}

func (h *Habit) Status(now time.Time) Status {
	progress := h.ProgressPercentage(now)
	switch {
	case progress == 100:
		return StatusDone
	case progress >= 50:
		return StatusKeepGoing
	default:
		return StatusGoGo
	}
}

// Clone returns a copy that shares no memory with h.
func (h *Habit) Clone() Habit {
	c := *h
	c.CompletionDates = slices.Clone(h.CompletionDates)
	return c
}
