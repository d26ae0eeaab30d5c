package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"routine-tracker/internal/model"
	"routine-tracker/internal/service"
)

var (
	bold  = color.New(color.Bold)
	title = color.New(color.Bold, color.Underline)
	faint = color.New(color.Faint)
)

func statusColor(s model.Status) *color.Color {
	switch s {
	case model.StatusCompleted:
		return color.New(color.FgGreen)
	case model.StatusMissed:
		return color.New(color.FgRed)
	case model.StatusCurrent:
		return color.New(color.FgCyan, color.Bold)
	case model.StatusOverdue:
		return color.New(color.FgYellow)
	default:
		return color.New(color.Reset)
	}
}

func printDay(w io.Writer, day model.Weekday, views []service.TaskView, counts service.DayCounts) {
	_, _ = fmt.Fprintln(w, title.Sprint(day.Title()))
	_, _ = fmt.Fprintf(w, "%d completed, %d in progress, %d missed\n\n", counts.Completed, counts.InProgress, counts.Missed)
	if len(views) == 0 {
		_, _ = fmt.Fprintln(w, faint.Sprint("nothing scheduled"))
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 48
	tbl.AddRow(bold.Sprint("#"), bold.Sprint("Time"), bold.Sprint("Title"), bold.Sprint("Type"), bold.Sprint("Status"))
	for _, v := range views {
		tbl.AddRow(
			v.Index+1,
			fmt.Sprintf("%s-%s", v.Start.Format("15:04"), v.End.Format("15:04")),
			v.Task.Title,
			string(v.Task.Type),
			statusColor(v.Status).Sprint(v.Status),
		)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(w, tbl)
}

func printWeek(w io.Writer, week []service.DayProgress, categories []service.CategoryCount) {
	_, _ = fmt.Fprintln(w, title.Sprint("Week"))
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, p := range week {
		tbl.AddRow(p.Day.Short(), fmt.Sprintf("%d/%d", p.Completed, p.Total))
	}
	_, _ = fmt.Fprintln(w, tbl)
	if len(categories) == 0 {
		return
	}
	_, _ = fmt.Fprintln(w, "\n"+title.Sprint("Categories"))
	tbl = uitable.New()
	tbl.Separator = "  "
	for _, c := range categories {
		tbl.AddRow(string(c.Category), c.Count)
	}
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(w, tbl)
}

func printStudy(w io.Writer, views []service.SessionView, stats service.StudyStats) {
	_, _ = fmt.Fprintln(w, title.Sprint("Study plan"))
	_, _ = fmt.Fprintf(w, "%d sessions, %d completed, %d missed, %dh of study\n\n", stats.Total, stats.Completed, stats.Missed, stats.StudyHours)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 48
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Time"), bold.Sprint("Name"), bold.Sprint("Type"), bold.Sprint("Status"))
	for _, v := range views {
		s := v.Session
		tbl.AddRow(s.ID, s.StartTime+"-"+s.EndTime, s.Name, string(s.Type), statusColor(v.Status).Sprint(v.Status))
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(w, tbl)
}

func printDayStats(w io.Writer, stats model.DayStats, completed, missed []model.ReportEntry) {
	_, _ = fmt.Fprintln(w, title.Sprint("Stats for "+stats.Date))
	_, _ = fmt.Fprintf(w, "%d total, %d completed, %d missed, %d%%\n", stats.Total, stats.Completed, stats.Missed, stats.CompletionRate)
	printEntries(w, model.StatusCompleted, completed)
	printEntries(w, model.StatusMissed, missed)
}

func printEntries(w io.Writer, status model.Status, entries []model.ReportEntry) {
	if len(entries) == 0 {
		return
	}
	_, _ = fmt.Fprintln(w, "\n"+statusColor(status).Sprint(strings.ToUpper(string(status))))
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, e := range entries {
		tbl.AddRow(e.Time, e.Title, e.Day.Short(), faint.Sprint(e.Timestamp.Format("15:04")))
	}
	_, _ = fmt.Fprintln(w, tbl)
}

func printMonthly(w io.Writer, r model.MonthlyReport) {
	_, _ = fmt.Fprintln(w, title.Sprintf("%s %d", r.Month, r.Year))
	_, _ = fmt.Fprintf(w, "%d days, %d total, %d completed, %d missed, %d%%\n", r.TotalDays, r.Total, r.Completed, r.Missed, r.CompletionRate)
	for i, week := range r.Weeks() {
		_, _ = fmt.Fprintln(w, "\n"+bold.Sprintf("Week %d", i+1))
		tbl := uitable.New()
		tbl.Separator = "  "
		for _, d := range week {
			if d.Total == 0 {
				tbl.AddRow(d.Date, faint.Sprint("-"))
				continue
			}
			tbl.AddRow(d.Date, fmt.Sprintf("%d/%d", d.Completed, d.Total), fmt.Sprintf("%d%%", d.CompletionRate))
		}
		_, _ = fmt.Fprintln(w, tbl)
	}
}
