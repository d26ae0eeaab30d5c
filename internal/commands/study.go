package commands

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"routine-tracker/internal/app"
)

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Show the daily study and prayer plan",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
		return a.Do(func() error {
			printStudy(color.Output, a.Study.Sessions(ctx), a.Study.Stats(ctx))
			return nil
		})
	}),
}
