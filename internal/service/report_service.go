package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"routine-tracker/internal/model"
	"routine-tracker/internal/repository"
)

// ReportService accumulates completed and missed events into the history
// log and computes per-day and per-month totals.
type ReportService struct {
	repo  *repository.ReportRepository
	clock *Clock
}

func NewReportService(repo *repository.ReportRepository, clock *Clock) *ReportService {
	return &ReportService{repo: repo, clock: clock}
}

// RecordOutcome appends an entry for task to the completed or missed log and
// bumps today's tally. Other statuses are ignored. The log is append-only.
func (s *ReportService) RecordOutcome(ctx context.Context, task model.Task, status model.Status, day model.Weekday) (model.ReportEntry, error) {
	if status != model.StatusCompleted && status != model.StatusMissed {
		return model.ReportEntry{}, fmt.Errorf("record outcome: unsupported status %q", status)
	}
	now := s.clock.Now()
	today := now.Format(dateLayout)
	entry := model.ReportEntry{
		ID:          uuid.NewString(),
		Title:       task.Title,
		Description: task.Description,
		Time:        task.Time,
		Duration:    task.Duration,
		Type:        task.Type,
		Day:         day,
		Status:      status,
		Timestamp:   now,
		Date:        today,
	}

	data, err := s.repo.Fetch(ctx)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrNotFound):
		data = model.NewReportData()
	case errors.Is(err, repository.ErrCorrupt):
		log.Printf("report store: %v", err)
		data = model.NewReportData()
	default:
		// Writing now would replace a history that only failed to load.
		log.Printf("report store: %v", err)
		return model.ReportEntry{}, fmt.Errorf("record outcome: %w", err)
	}
	daily := data.DailyStats[today]
	monthKey := now.Format("2006-01")
	monthly := data.MonthlyStats[monthKey]
	daily.TotalTasks++
	monthly.TotalTasks++
	if status == model.StatusCompleted {
		data.CompletedTasks = append(data.CompletedTasks, entry)
		daily.Completed++
		monthly.Completed++
	} else {
		data.MissedTasks = append(data.MissedTasks, entry)
		daily.Missed++
		monthly.Missed++
	}
	data.DailyStats[today] = daily
	data.MonthlyStats[monthKey] = monthly

	if err := s.repo.Save(ctx, data, now); err != nil {
		log.Printf("report store: %v", err)
		return entry, err
	}
	return entry, nil
}

// DailyStats returns the tally of a YYYY-MM-DD date, all zeros when absent.
func (s *ReportService) DailyStats(ctx context.Context, date string) model.DayStats {
	return dayStats(s.repo.Load(ctx), date)
}

func dayStats(data *model.ReportData, date string) model.DayStats {
	tally := data.DailyStats[date]
	return model.DayStats{
		Date:           date,
		Total:          tally.TotalTasks,
		Completed:      tally.Completed,
		Missed:         tally.Missed,
		CompletionRate: model.CompletionRate(tally.Completed, tally.TotalTasks),
	}
}

// MonthlyReport sums the daily tallies of every calendar day of the month.
func (s *ReportService) MonthlyReport(ctx context.Context, month time.Month, year int) (model.MonthlyReport, error) {
	if month < time.January || month > time.December {
		return model.MonthlyReport{}, invalid("month", "month must be between 1 and 12")
	}
	if year < 1 {
		return model.MonthlyReport{}, invalid("year", "year must be positive")
	}
	data := s.repo.Load(ctx)
	days := DaysInMonth(month, year)
	report := model.MonthlyReport{
		Month:     month,
		Year:      year,
		TotalDays: days,
		Days:      make([]model.DayStats, 0, days),
	}
	for day := 1; day <= days; day++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
		stats := dayStats(data, date)
		report.Total += stats.Total
		report.Completed += stats.Completed
		report.Missed += stats.Missed
		report.Days = append(report.Days, stats)
	}
	report.CompletionRate = model.CompletionRate(report.Completed, report.Total)
	return report, nil
}

// DayDetails returns the completed and missed entries logged on date.
func (s *ReportService) DayDetails(ctx context.Context, date string) ([]model.ReportEntry, []model.ReportEntry) {
	data := s.repo.Load(ctx)
	var completed, missed []model.ReportEntry
	for _, e := range data.CompletedTasks {
		if e.Date == date {
			completed = append(completed, e)
		}
	}
	for _, e := range data.MissedTasks {
		if e.Date == date {
			missed = append(missed, e)
		}
	}
	return completed, missed
}

// Clear drops the whole history.
func (s *ReportService) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear report: %w", err)
	}
	return nil
}

// DaysInMonth returns the number of days in month, leap years included.
func DaysInMonth(month time.Month, year int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
