package nudge

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/brk3/habittracker/internal/logger"
	"github.com/brk3/habittracker/pkg/habit"
)

type Notifier interface {
	SendNudge(habits []string) error
}

// ActiveHabits returns the names of habits still short of their weekly target.
func ActiveHabits(habits []habit.Habit, now time.Time) []string {
	var out []string
	for i := range habits {
		if !habits[i].IsCompletedThisWeek(now) {
			out = append(out, habits[i].Name)
		}
	}
	return out
}

// Nudge sends one reminder if any habit is still active. It reports whether
// a reminder went out.
func Nudge(q Querier, n Notifier) (bool, error) {
	active := ActiveHabits(q.Snapshot(), q.Now())
	if len(active) == 0 {
		logger.Debug("No active habits, skipping nudge")
		return false, nil
	}
	if err := n.SendNudge(active); err != nil {
		return false, fmt.Errorf("send nudge: %w", err)
	}
	return true, nil
}

// Run nudges every interval until ctx is done.
func Run(ctx context.Context, q Querier, n Notifier, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := Nudge(q, n); err != nil {
				logger.Warn("Reminder failed", "error", err)
			}
		}
	}
}

// ConsoleNotifier prints a reminder for one randomly chosen habit.
type ConsoleNotifier struct {
	W    io.Writer
	Rand *rand.Rand
}

func (c *ConsoleNotifier) SendNudge(habits []string) error {
	if len(habits) == 0 {
		return nil
	}
	var i int
	if c.Rand != nil {
		i = c.Rand.IntN(len(habits))
	} else {
		i = rand.IntN(len(habits))
	}
	_, err := fmt.Fprintf(c.W, "\n⏰ Reminder: don't forget %q today!\n", habits[i])
	return err
}
