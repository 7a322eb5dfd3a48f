package cmd

import (
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show average weekly progress",
	Run: func(cmd *cobra.Command, args []string) {
		renderStats(cmd.OutOrStdout(), tr.Stats())
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your profile summary",
	Run: func(cmd *cobra.Command, args []string) {
		profile(cmd)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(profileCmd)
}

func profile(cmd *cobra.Command) {
	renderProfile(cmd.OutOrStdout(), tr.Profile(cfg.UserName, cfg.JoinedAt), tr.Now())
}
