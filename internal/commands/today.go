package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"routine-tracker/internal/app"
	"routine-tracker/internal/model"
)

var (
	todayDay string
	markDay  string
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show the routine of today or of --day",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
		day, err := resolveDay(a, todayDay)
		if err != nil {
			return err
		}
		return a.Do(func() error {
			printDay(color.Output, day, a.Routine.Day(ctx, day), a.Routine.Counts(ctx, day))
			return nil
		})
	}),
}

var markCmd = &cobra.Command{
	Use:   "mark done|skip|miss|undo N",
	Short: "Mark routine record N of today or of --day",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
		day, err := resolveDay(a, markDay)
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid record number %q", args[1])
		}
		return a.Do(func() error {
			var (
				task model.Task
				err  error
			)
			switch args[0] {
			case "done":
				task, err = a.Routine.Complete(ctx, day, n-1)
			case "skip":
				task, err = a.Routine.Skip(ctx, day, n-1)
			case "miss":
				task, err = a.Routine.Miss(ctx, day, n-1)
			case "undo":
				task, err = a.Routine.Reset(ctx, day, n-1)
			default:
				return fmt.Errorf("unknown action %q", args[0])
			}
			if err != nil {
				return err
			}
			fmt.Printf("%s #%d %s: %s\n", day.Title(), n, task.Title, task.Outcome)
			return nil
		})
	}),
}

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show completed and total records per day",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
		return a.Do(func() error {
			printWeek(color.Output, a.Routine.Week(ctx), a.Routine.CategoryCounts(ctx))
			return nil
		})
	}),
}

func resolveDay(a *app.App, raw string) (model.Weekday, error) {
	if raw == "" {
		return a.Clock.Weekday(), nil
	}
	day, ok := model.ParseWeekday(raw)
	if !ok {
		return "", fmt.Errorf("unknown day %q", raw)
	}
	return day, nil
}

func init() {
	todayCmd.Flags().StringVarP(&todayDay, "day", "d", "", "weekday to show, e.g. monday")
	markCmd.Flags().StringVarP(&markDay, "day", "d", "", "weekday of the record")
}
