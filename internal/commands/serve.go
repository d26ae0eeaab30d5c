package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"routine-tracker/internal/app"
	"routine-tracker/internal/bot"
	"routine-tracker/internal/config"
	"routine-tracker/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Telegram bot with the status tick and report digests",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := app.New(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		tgBot, err := bot.New(cfg.TelegramToken, a, cfg.AllowedUsers)
		if err != nil {
			return err
		}

		scheduler := service.NewSchedulerService(a.Clock.Location())
		if err := schedule(ctx, scheduler, cfg, a, tgBot); err != nil {
			return err
		}
		scheduler.Start()
		defer scheduler.Stop()

		log.Println("[info] routine tracker started")
		if err := tgBot.Start(ctx); err != nil {
			return fmt.Errorf("bot stopped: %w", err)
		}
		log.Println("[info] routine tracker stopped")
		return nil
	},
}

func schedule(ctx context.Context, scheduler *service.SchedulerService, cfg config.Config, a *app.App, tgBot *bot.Bot) error {
	if _, err := scheduler.ScheduleInterval(cfg.TickInterval, func() {
		res := a.Tick(ctx)
		if res.DayChanged {
			log.Printf("[info] day changed to %s", res.Day)
		}
		if err := tgBot.Notify(ctx, res.Transitions); err != nil {
			log.Printf("notify: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule tick: %w", err)
	}

	sendReports := func() {
		if err := tgBot.SendDailyReports(ctx); err != nil {
			log.Printf("send daily reports: %v", err)
		}
	}
	if cfg.DailyReportAt != "" {
		if _, err := scheduler.ScheduleDaily(cfg.DailyReportAt, sendReports); err != nil {
			return fmt.Errorf("schedule daily report: %w", err)
		}
	}
	if cfg.ReportInterval > 0 {
		if _, err := scheduler.ScheduleInterval(cfg.ReportInterval, sendReports); err != nil {
			return fmt.Errorf("schedule report interval: %w", err)
		}
	}
	return nil
}
