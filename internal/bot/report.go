package bot

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"routine-tracker/internal/model"
	"routine-tracker/internal/service"
)

const maxImportBytes = 1 << 20

func (b *Bot) handleStats(ctx context.Context, msg *tgbotapi.Message) error {
	date := strings.TrimSpace(msg.CommandArguments())
	if date == "" {
		date = b.app.Clock.Today()
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return b.sendText(msg.Chat.ID, "Date must look like 2024-03-15.")
	}
	var (
		stats             model.DayStats
		completed, missed []model.ReportEntry
	)
	_ = b.app.Do(func() error {
		stats = b.app.Reports.DailyStats(ctx, date)
		completed, missed = b.app.Reports.DayDetails(ctx, date)
		return nil
	})
	return b.sendText(msg.Chat.ID, formatDayStats(stats, completed, missed))
}

func (b *Bot) handleReport(ctx context.Context, msg *tgbotapi.Message) error {
	now := b.app.Clock.Now()
	month, year := now.Month(), now.Year()
	fields := strings.Fields(msg.CommandArguments())
	if len(fields) > 0 {
		m, err := strconv.Atoi(fields[0])
		if err != nil {
			return b.sendText(msg.Chat.ID, "Usage: /report [month] [year]")
		}
		month = time.Month(m)
	}
	if len(fields) > 1 {
		y, err := strconv.Atoi(fields[1])
		if err != nil {
			return b.sendText(msg.Chat.ID, "Usage: /report [month] [year]")
		}
		year = y
	}
	var report model.MonthlyReport
	if err := b.app.Do(func() error {
		var err error
		report, err = b.app.Reports.MonthlyReport(ctx, month, year)
		return err
	}); err != nil {
		return b.sendError(msg.Chat.ID, err)
	}
	return b.sendText(msg.Chat.ID, formatMonthly(report))
}

func (b *Bot) handleSummary(ctx context.Context, msg *tgbotapi.Message) error {
	var text string
	_ = b.app.Do(func() error {
		text = b.app.Reminder.DailySummary(ctx, b.app.Clock.Now())
		return nil
	})
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleExport(ctx context.Context, msg *tgbotapi.Message) error {
	var data []byte
	if err := b.app.Do(func() error {
		var err error
		data, err = b.app.Routine.Export(ctx)
		return err
	}); err != nil {
		return err
	}
	doc := tgbotapi.NewDocument(msg.Chat.ID, tgbotapi.FileBytes{Name: service.ExportFilename, Bytes: data})
	doc.Caption = "Weekly routine. Send this file back to import it."
	_, err := b.api.Send(doc)
	return err
}

func (b *Bot) handleImport(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.Document.FileSize > maxImportBytes {
		return b.sendText(msg.Chat.ID, "File is too large to import.")
	}
	url, err := b.api.GetFileDirectURL(msg.Document.FileID)
	if err != nil {
		log.Printf("import: resolve upload: %v", err)
		return b.sendText(msg.Chat.ID, "Could not import: the file could not be fetched from Telegram. Try sending it again.")
	}
	data, err := download(ctx, url)
	if err != nil {
		log.Printf("import: download upload: %v", err)
		return b.sendText(msg.Chat.ID, "Could not import: the file could not be downloaded. Try sending it again.")
	}
	if err := b.app.Do(func() error {
		return b.app.Routine.Import(ctx, data)
	}); err != nil {
		return b.sendError(msg.Chat.ID, err)
	}
	log.Printf("[info] routine imported by %d from %s", msg.From.ID, msg.Document.FileName)
	if err := b.sendText(msg.Chat.ID, "📥 Routine imported."); err != nil {
		return err
	}
	return b.sendDay(ctx, msg.Chat.ID, b.app.Clock.Weekday())
}

func download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxImportBytes))
}
