package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

var addTarget int

var addCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a habit with a weekly target",
	Long: `The "add" command registers a new habit. The target is how many days per
rolling week the habit should be done, for example:

  habits add "Drink Water" --target 7`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return add(cmd, strings.Join(args, " "), addTarget)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().IntVarP(&addTarget, "target", "t", 7, "completions per week")
}

func add(cmd *cobra.Command, name string, target int) error {
	h, err := tr.Add(name, target)
	if err != nil {
		return err
	}
	cmd.Printf("Habit %q added (%dx/week).\n", h.Name, h.TargetFrequency)
	return nil
}
