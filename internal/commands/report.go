package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"routine-tracker/internal/app"
)

var (
	reportMonth int
	reportYear  int
	statsDate   string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the monthly completion report",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
		now := a.Clock.Now()
		month, year := now.Month(), now.Year()
		if reportMonth != 0 {
			month = time.Month(reportMonth)
		}
		if reportYear != 0 {
			year = reportYear
		}
		return a.Do(func() error {
			report, err := a.Reports.MonthlyReport(ctx, month, year)
			if err != nil {
				return err
			}
			printMonthly(color.Output, report)
			return nil
		})
	}),
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the tally and entries of one date",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
		date := statsDate
		if date == "" {
			date = a.Clock.Today()
		} else if _, err := time.Parse("2006-01-02", date); err != nil {
			return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
		}
		return a.Do(func() error {
			completed, missed := a.Reports.DayDetails(ctx, date)
			printDayStats(color.Output, a.Reports.DailyStats(ctx, date), completed, missed)
			return nil
		})
	}),
}

var clearReportCmd = &cobra.Command{
	Use:   "clear-report",
	Short: "Delete the whole completion history",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
		return a.Do(func() error {
			if err := a.Reports.Clear(ctx); err != nil {
				return err
			}
			fmt.Println("History cleared.")
			return nil
		})
	}),
}

func init() {
	reportCmd.Flags().IntVarP(&reportMonth, "month", "m", 0, "month 1-12, defaults to the current one")
	reportCmd.Flags().IntVarP(&reportYear, "year", "y", 0, "year, defaults to the current one")
	statsCmd.Flags().StringVar(&statsDate, "date", "", "date as YYYY-MM-DD, defaults to today")
}
