package cmd

import (
	"github.com/brk3/habittracker/internal/tracker"
	"github.com/spf13/cobra"
)

var listFilter string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits",
	Long:  `The "list" command lets you list your tracked habits with this week's progress.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := tracker.ParseFilter(listFilter)
		if err != nil {
			return err
		}
		list(cmd, f)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "all", "all, active or completed")
}

func list(cmd *cobra.Command, f tracker.Filter) {
	renderHabits(cmd.OutOrStdout(), tr.List(f), tr.Now())
}
