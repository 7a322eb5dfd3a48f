package cmd

import (
	"fmt"

	"github.com/brk3/habittracker/internal/nudge"
	"github.com/brk3/habittracker/internal/nudge/resend"
	"github.com/spf13/cobra"
)

var nudgeEmail bool

var nudgeCmd = &cobra.Command{
	Use:   "nudge",
	Short: "Send a reminder for habits still short of their weekly target",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if !nudgeEmail {
			return nil
		}
		if cfg.Nudge.ResendAPIKey == "" {
			return fmt.Errorf("HABITS_RESEND_API_KEY environment variable is not set")
		}
		if cfg.Nudge.Email == "" {
			return fmt.Errorf("HABITS_NOTIFY_EMAIL environment variable is not set")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		var n nudge.Notifier = &nudge.ConsoleNotifier{W: cmd.OutOrStdout()}
		if nudgeEmail {
			n = resend.New(cfg.Nudge.ResendAPIKey, cfg.Nudge.From, cfg.Nudge.Email)
		}
		sent, err := nudge.Nudge(tr, n)
		if err != nil {
			return err
		}
		if !sent {
			cmd.Println("All habits are on target this week.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(nudgeCmd)
	nudgeCmd.Flags().BoolVar(&nudgeEmail, "email", false, "send the reminder by email via Resend")
}
