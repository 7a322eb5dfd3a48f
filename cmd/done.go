package cmd

import (
	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:     "done NUMBER",
	Aliases: []string{"complete"},
	Short:   "Mark a habit done for today",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := parsePosition(args[0])
		if err != nil {
			return err
		}
		return complete(cmd, idx)
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
}

func complete(cmd *cobra.Command, idx int) error {
	alreadyDone, err := tr.Complete(idx)
	if err != nil {
		return err
	}
	name := tr.Snapshot()[idx].Name
	if alreadyDone {
		cmd.Printf("Habit %q was already done today.\n", name)
		return nil
	}
	cmd.Printf("Habit %q done for today.\n", name)
	return nil
}
