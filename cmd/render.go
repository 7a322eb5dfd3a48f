package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/brk3/habittracker/internal/tracker"
	"github.com/brk3/habittracker/pkg/habit"
)

const barWidth = 10

func progressBar(pct float64) string {
	filled := min(int(pct/10), barWidth)
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

func renderHabits(w io.Writer, habits []habit.Habit, now time.Time) {
	if len(habits) == 0 {
		fmt.Fprintln(w, "😴 No habits yet.")
		return
	}
	for i, h := range habits {
		pct := h.ProgressPercentage(now)
		fmt.Fprintf(w, "%d. [%s] %s\n", i+1, h.Status(now), h.Name)
		fmt.Fprintf(w, "   Target: %dx/week\n", h.TargetFrequency)
		fmt.Fprintf(w, "   Progress: %d/%d (%.1f%%)\n", h.CompletionsThisWeek(now), h.TargetFrequency, pct)
		fmt.Fprintf(w, "   %s %.1f%%\n", progressBar(pct), pct)
		if current, longest := h.Streaks(now); longest > 0 {
			fmt.Fprintf(w, "   Streak: %d days (best %d)\n", current, longest)
		}
	}
}

func renderStats(w io.Writer, s tracker.Stats) {
	fmt.Fprintf(w, "📊 Average progress: %.1f%%\n", s.AverageProgress)
	fmt.Fprintf(w, "🔥 Active habits: %d\n", s.ActiveCount)
}

func renderProfile(w io.Writer, p tracker.Profile, now time.Time) {
	fmt.Fprintln(w, "==== HABIT TRACKER PROFILE ====")
	fmt.Fprintf(w, "Name: %s\n", p.Name)
	fmt.Fprintf(w, "Joined: %d days ago\n", p.DaysSinceJoin)
	fmt.Fprintf(w, "Total habits: %d\n", p.TotalHabits)
	fmt.Fprintf(w, "Completed this week: %d\n", p.CompletedThisWeek)
	fmt.Fprintf(w, "Today: %s\n", habit.KeyFor(now))
	fmt.Fprintln(w, "================================")
}

// parsePosition converts a 1-based habit number into a tracker index.
func parsePosition(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("habit number %q is not a number: %w", s, habit.ErrInvalidArgument)
	}
	return n - 1, nil
}
