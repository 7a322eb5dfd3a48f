package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/brk3/habittracker/internal/nudge"
	"github.com/brk3/habittracker/internal/tracker"
	"github.com/brk3/habittracker/pkg/habit"
	"github.com/spf13/cobra"
)

const menuText = `
==================================================
🌟 HABIT TRACKER - MENU
==================================================
1. View profile
2. View all habits
3. View active habits
4. View completed habits
5. Add habit
6. Mark habit done
7. Delete habit
8. View stats
0. Exit
==================================================`

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive menu with periodic reminders",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := &syncWriter{w: cmd.OutOrStdout()}
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			nudge.Run(ctx, tr, &nudge.ConsoleNotifier{W: out}, cfg.ReminderInterval)
		}()

		err := runMenu(cmd.InOrStdin(), out)
		cancel()
		wg.Wait()
		return err
	},
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

// syncWriter lets the reminder goroutine print between menu writes.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func runMenu(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	ask := func(prompt string) (string, bool) {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			return "", false
		}
		return strings.TrimSpace(scanner.Text()), true
	}

	fmt.Fprintln(out, "Welcome to Habit Tracker!")
	for {
		fmt.Fprintln(out, menuText)
		choice, ok := ask("Choose: ")
		if !ok {
			return scanner.Err()
		}

		var err error
		now := tr.Now()
		switch choice {
		case "1":
			renderProfile(out, tr.Profile(cfg.UserName, cfg.JoinedAt), now)
		case "2":
			renderHabits(out, tr.List(tracker.FilterAll), now)
		case "3":
			renderHabits(out, tr.List(tracker.FilterActive), now)
		case "4":
			renderHabits(out, tr.List(tracker.FilterCompleted), now)
		case "5":
			name, ok := ask("Habit name: ")
			if !ok {
				return scanner.Err()
			}
			freq, ok := ask("Target per week: ")
			if !ok {
				return scanner.Err()
			}
			err = menuAdd(out, name, freq)
		case "6":
			num, ok := ask("Number of the habit to mark done: ")
			if !ok {
				return scanner.Err()
			}
			err = menuComplete(out, num)
		case "7":
			num, ok := ask("Number of the habit to delete: ")
			if !ok {
				return scanner.Err()
			}
			err = menuDelete(out, num)
		case "8":
			renderStats(out, tr.Stats())
		case "0":
			fmt.Fprintln(out, "Thanks for using Habit Tracker!")
			return nil
		default:
			fmt.Fprintln(out, "Invalid choice.")
		}
		if err != nil {
			fmt.Fprintln(out, "Error:", describe(err))
		}
	}
}

func menuAdd(out io.Writer, name, freq string) error {
	target, err := strconv.Atoi(strings.TrimSpace(freq))
	if err != nil {
		return fmt.Errorf("target %q is not a number: %w", freq, habit.ErrInvalidArgument)
	}
	h, err := tr.Add(name, target)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Habit %q added!\n", h.Name)
	return nil
}

func menuComplete(out io.Writer, num string) error {
	idx, err := parsePosition(num)
	if err != nil {
		return err
	}
	alreadyDone, err := tr.Complete(idx)
	if err != nil {
		return err
	}
	if alreadyDone {
		fmt.Fprintln(out, "Already done today.")
	} else {
		fmt.Fprintln(out, "Marked done for today.")
	}
	return nil
}

func menuDelete(out io.Writer, num string) error {
	idx, err := parsePosition(num)
	if err != nil {
		return err
	}
	h, err := tr.Delete(idx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Habit %q deleted.\n", h.Name)
	return nil
}
