package commands

import (
	"context"

	"github.com/spf13/cobra"

	"routine-tracker/internal/app"
	"routine-tracker/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "routinetracker",
	Short: "Weekly routine and daily study tracker",
	Long: `routinetracker keeps a weekly routine and a daily study and prayer plan,
records what was completed or missed, and reports on it. Run "serve" for the
Telegram bot or use the other commands from the terminal.`,
	SilenceUsage: true,
}

// withApp loads configuration and state before running fn.
func withApp(fn func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		a, err := app.NewQuiet(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(ctx, a, cmd, args)
	}
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(markCmd)
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(clearReportCmd)
}
