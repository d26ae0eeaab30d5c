package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"routine-tracker/internal/model"
)

// ReminderService builds the HTML digest sent to subscribers.
type ReminderService struct {
	routine *RoutineService
	study   *StudyService
	reports *ReportService
}

func NewReminderService(routine *RoutineService, study *StudyService, reports *ReportService) *ReminderService {
	return &ReminderService{routine: routine, study: study, reports: reports}
}

// DailySummary renders today's routine, the study plan and today's tally.
func (s *ReminderService) DailySummary(ctx context.Context, now time.Time) string {
	day := model.WeekdayOf(now.Weekday())

	var b strings.Builder
	b.WriteString("📋 <b>Daily report</b>\n")
	b.WriteString(fmt.Sprintf("🗓 %s, %s\n\n", day.Title(), now.Format("02 Jan 2006")))

	b.WriteString("🗂 <b>Routine</b>\n")
	tasks := s.routine.Day(ctx, day)
	if len(tasks) == 0 {
		b.WriteString("— nothing scheduled\n")
	}
	for _, v := range tasks {
		b.WriteString(fmt.Sprintf("%s %s %s\n", StatusIcon(v.Status), v.Task.Time, html.EscapeString(v.Task.Title)))
	}

	b.WriteString("\n📚 <b>Study plan</b>\n")
	sessions := s.study.Sessions(ctx)
	if len(sessions) == 0 {
		b.WriteString("— no sessions\n")
	}
	for _, v := range sessions {
		b.WriteString(fmt.Sprintf("%s %s-%s %s\n", StatusIcon(v.Status), v.Session.StartTime, v.Session.EndTime,
			html.EscapeString(v.Session.Name)))
	}

	stats := s.reports.DailyStats(ctx, now.Format(dateLayout))
	b.WriteString(fmt.Sprintf("\n📈 <b>Today</b>: %d done · %d missed · %d%%", stats.Completed, stats.Missed, stats.CompletionRate))
	return b.String()
}

// StatusIcon is the marker shown next to a record of the given status.
func StatusIcon(s model.Status) string {
	switch s {
	case model.StatusCompleted:
		return "✅"
	case model.StatusMissed:
		return "❌"
	case model.StatusCurrent:
		return "▶️"
	case model.StatusOverdue:
		return "⚠️"
	case model.StatusUpcoming:
		return "🕒"
	default:
		return "⬜"
	}
}
