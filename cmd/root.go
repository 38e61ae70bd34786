package cmd

import (
	"github.com/spf13/cobra"

	"github.com/weihanlin/gsatbot/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "gsatbot",
	Short: "GSAT practice quiz bot for Discord",
	Long:  "gsatbot runs a Discord bot that generates GSAT (學測) practice questions via an LLM: English vocabulary from the 6000-word list and social-studies subjects.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBot(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides GSATBOT_DB env var)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then GSATBOT_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
