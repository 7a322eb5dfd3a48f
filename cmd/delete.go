package cmd

import (
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete NUMBER",
	Aliases: []string{"rm"},
	Short:   "Delete a habit",
	Long: `The "delete" command removes the habit with the given number as shown by
"habits list". Habits after it move up one place.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := parsePosition(args[0])
		if err != nil {
			return err
		}
		return remove(cmd, idx)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func remove(cmd *cobra.Command, idx int) error {
	h, err := tr.Delete(idx)
	if err != nil {
		return err
	}
	cmd.Printf("Habit %q deleted.\n", h.Name)
	return nil
}
