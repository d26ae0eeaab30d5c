package bot

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"unicode"

	"routine-tracker/internal/model"
	"routine-tracker/internal/service"
)

func escape(s string) string {
	return html.EscapeString(s)
}

func normalizeTitle(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	runes := []rune(value)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func shortTitle(title string, maxLen int) string {
	clean := normalizeTitle(strings.ReplaceAll(title, "\n", " "))
	runes := []rune(clean)
	if len(runes) <= maxLen {
		return clean
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}

func categoryLabel(c model.Category) string {
	var icon string
	switch c.Known() {
	case model.CategoryStudy, model.CategoryClass:
		icon = "🎓"
	case model.CategoryWork:
		icon = "💼"
	case model.CategoryHealth:
		icon = "🩺"
	case model.CategoryReligious, model.CategoryPrayer:
		icon = "🕌"
	case model.CategoryMeal:
		icon = "🍽"
	case model.CategoryBreak:
		icon = "☕"
	case model.CategorySleep:
		icon = "🌙"
	case model.CategoryPersonal:
		icon = "🧩"
	default:
		icon = "🏷️"
	}
	return fmt.Sprintf("%s %s", icon, escape(normalizeTitle(string(c))))
}

// formatDay renders the routine list of one weekday. Numbers are stored
// positions, so they stay valid while the display order changes.
func formatDay(day model.Weekday, views []service.TaskView, counts service.DayCounts, manual string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🗓 <b>%s</b>", day.Title()))
	if manual != "" {
		b.WriteString(fmt.Sprintf(" · 🕰 manual time %s", manual))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("✅ %d · ⏳ %d · ❌ %d\n\n", counts.Completed, counts.InProgress, counts.Missed))
	if len(views) == 0 {
		b.WriteString("Nothing scheduled. Add a record with /add.")
		return b.String()
	}
	for _, v := range views {
		b.WriteString(fmt.Sprintf("%s <b>#%d</b> %s-%s %s\n", service.StatusIcon(v.Status), v.Index+1,
			v.Start.Format("15:04"), v.End.Format("15:04"), escape(normalizeTitle(v.Task.Title))))
		line := categoryLabel(v.Task.Type)
		if v.Task.Special != model.SpecialNone {
			line += " · " + escape(string(v.Task.Special))
		}
		b.WriteString("   " + line + "\n")
		if d := strings.TrimSpace(v.Task.Description); d != "" {
			b.WriteString(fmt.Sprintf("   📝 %s\n", escape(d)))
		}
	}
	return strings.TrimSpace(b.String())
}

func formatStudy(views []service.SessionView, stats service.StudyStats) string {
	var b strings.Builder
	b.WriteString("📚 <b>Study plan</b>\n")
	b.WriteString(fmt.Sprintf("Total %d · ✅ %d · ❌ %d · study time %dh\n\n", stats.Total, stats.Completed, stats.Missed, stats.StudyHours))
	if len(views) == 0 {
		b.WriteString("No sessions. Add one with /subject or /prayer.")
		return b.String()
	}
	for _, v := range views {
		s := v.Session
		b.WriteString(fmt.Sprintf("%s <b>#%d</b> %s-%s %s", service.StatusIcon(v.Status), s.ID, s.StartTime, s.EndTime,
			escape(normalizeTitle(s.Name))))
		if s.IsEditable {
			b.WriteString(" ✏️")
		}
		b.WriteString("\n")
		if d := strings.TrimSpace(s.Description); d != "" {
			b.WriteString(fmt.Sprintf("   📝 %s\n", escape(d)))
		}
	}
	return strings.TrimSpace(b.String())
}

func formatWeek(week []service.DayProgress, categories []service.CategoryCount) string {
	var b strings.Builder
	b.WriteString("📅 <b>Week overview</b>\n")
	for _, p := range week {
		b.WriteString(fmt.Sprintf("<code>%s</code> %d/%d\n", p.Day.Short(), p.Completed, p.Total))
	}
	if len(categories) > 0 {
		b.WriteString("\n🏷 <b>Categories</b>\n")
		for _, c := range categories {
			b.WriteString(fmt.Sprintf("%s: %d\n", categoryLabel(c.Category), c.Count))
		}
	}
	return strings.TrimSpace(b.String())
}

func formatDayStats(stats model.DayStats, completed, missed []model.ReportEntry) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📈 <b>Stats for %s</b>\n", stats.Date))
	b.WriteString(fmt.Sprintf("Total %d · ✅ %d · ❌ %d · %d%%\n", stats.Total, stats.Completed, stats.Missed, stats.CompletionRate))
	writeEntries(&b, "✅ Completed", completed)
	writeEntries(&b, "❌ Missed", missed)
	return strings.TrimSpace(b.String())
}

func writeEntries(b *strings.Builder, heading string, entries []model.ReportEntry) {
	if len(entries) == 0 {
		return
	}
	b.WriteString(fmt.Sprintf("\n<b>%s</b>\n", heading))
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("• %s %s (%s)\n", e.Time, escape(normalizeTitle(e.Title)), e.Day.Short()))
	}
}

func formatMonthly(r model.MonthlyReport) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🗓 <b>%s %d</b>\n", r.Month, r.Year))
	b.WriteString(fmt.Sprintf("Total %d · ✅ %d · ❌ %d · %d%%\n", r.Total, r.Completed, r.Missed, r.CompletionRate))
	for i, week := range r.Weeks() {
		b.WriteString(fmt.Sprintf("\n<b>Week %d</b>\n", i+1))
		for _, d := range week {
			if d.Total == 0 {
				b.WriteString(fmt.Sprintf("<code>%s</code> –\n", d.Date[8:]))
				continue
			}
			b.WriteString(fmt.Sprintf("<code>%s</code> %d/%d · %d%%\n", d.Date[8:], d.Completed, d.Total, d.CompletionRate))
		}
	}
	return strings.TrimSpace(b.String())
}

func formatTransition(t service.Transition) string {
	name := escape(normalizeTitle(t.Name))
	switch t.To {
	case model.StatusCurrent:
		return fmt.Sprintf("▶️ <b>%s</b> has started.", name)
	case model.StatusOverdue:
		return fmt.Sprintf("⚠️ <b>%s</b> is over. Mark it with /study.", name)
	default:
		return ""
	}
}

// parseDayIndex reads "[day] n" arguments. n is the 1-based record number.
func parseDayIndex(args string, today model.Weekday) (model.Weekday, int, error) {
	fields := strings.Fields(args)
	day := today
	switch len(fields) {
	case 1:
	case 2:
		d, ok := model.ParseWeekday(fields[0])
		if !ok {
			return "", 0, fmt.Errorf("unknown day %q", fields[0])
		}
		day = d
		fields = fields[1:]
	default:
		return "", 0, fmt.Errorf("expected [day] number")
	}
	n, err := strconv.Atoi(strings.TrimPrefix(fields[0], "#"))
	if err != nil || n < 1 {
		return "", 0, fmt.Errorf("record number must be a positive integer")
	}
	return day, n - 1, nil
}

func parseSessionID(args string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(args), "#"), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("session id must be a positive integer")
	}
	return id, nil
}
