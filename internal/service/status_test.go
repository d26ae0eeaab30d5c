package service

import (
	"testing"
	"time"

	"routine-tracker/internal/model"
)

func TestParseClock(t *testing.T) {
	good := map[string]int{"00:00": 0, "7:05": 425, "09:30": 570, "23:59": 1439, " 12:00 ": 720}
	for in, want := range good {
		got, err := ParseClock(in)
		if err != nil || got != want {
			t.Errorf("ParseClock(%q) = %d, %v; want %d", in, got, err, want)
		}
	}
	for _, bad := range []string{"", "24:00", "12:60", "12-30", "1230", "ab:cd", "12:5"} {
		if _, err := ParseClock(bad); err == nil {
			t.Errorf("ParseClock(%q) accepted", bad)
		}
	}
	if FormatClock(425) != "07:05" || FormatClock(-30) != "23:30" {
		t.Errorf("FormatClock = %s %s", FormatClock(425), FormatClock(-30))
	}
}

func task(at string, minutes int, title string, outcome model.Outcome) model.Task {
	t := model.Task{Time: at, Duration: minutes, Title: title, Type: model.CategoryPersonal}
	t.SetOutcome(outcome, time.Date(2024, 3, 15, 0, 0, 0, 0, testZone))
	return t
}

func titles(views []TaskView) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.Task.Title
	}
	return out
}

func TestSortTasksOrder(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, testZone)
	tasks := []model.Task{
		task("09:00", 30, "pending-late", model.OutcomePending),
		task("08:00", 30, "completed", model.OutcomeCompleted),
		task("07:00", 30, "missed-early", model.OutcomeMissed),
		task("10:00", 30, "skipped-late", model.OutcomeSkipped),
		task("06:00", 30, "pending-early", model.OutcomePending),
		task("05:00", 15, "completed-early", model.OutcomeCompleted),
	}
	views := SortTasks(tasks, now)
	want := []string{"pending-early", "pending-late", "completed-early", "completed", "skipped-late", "missed-early"}
	got := titles(views)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	if views[0].Index != 4 || views[5].Index != 2 {
		t.Errorf("indexes not preserved: %d %d", views[0].Index, views[5].Index)
	}
	if views[4].Status != model.StatusMissed {
		t.Errorf("skipped record status = %s", views[4].Status)
	}

	SortTaskViews(views)
	again := titles(views)
	for i := range want {
		if again[i] != want[i] {
			t.Fatalf("sort is not idempotent: %v", again)
		}
	}
}

func TestSortTasksIsStable(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, testZone)
	tasks := []model.Task{
		task("08:00", 30, "first", model.OutcomePending),
		task("08:00", 30, "second", model.OutcomePending),
		task("08:00", 30, "third", model.OutcomePending),
	}
	got := titles(SortTasks(tasks, now))
	if got[0] != "first" || got[1] != "second" || got[2] != "third" {
		t.Fatalf("equal keys reordered: %v", got)
	}
}

func TestTaskWindowCrossesMidnight(t *testing.T) {
	day := time.Date(2024, 3, 15, 12, 0, 0, 0, testZone)
	start, end := TaskWindow(task("23:30", 390, "Sleep", model.OutcomePending), day)
	if start.Day() != 15 || start.Hour() != 23 || start.Minute() != 30 {
		t.Errorf("start = %v", start)
	}
	if end.Day() != 16 || end.Hour() != 6 {
		t.Errorf("end = %v", end)
	}
}

func session(start, end string, outcome model.Outcome) model.Session {
	s := model.Session{ID: 1, Name: "Math", StartTime: start, EndTime: end, Type: model.CategoryStudy}
	s.SetOutcome(outcome, time.Date(2024, 3, 15, 0, 0, 0, 0, testZone))
	return s
}

func TestSessionStatus(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, testZone)
	cases := []struct {
		name       string
		start, end string
		outcome    model.Outcome
		want       model.Status
	}{
		{"inside", "09:30", "10:30", model.OutcomePending, model.StatusCurrent},
		{"starts now", "10:00", "11:00", model.OutcomePending, model.StatusCurrent},
		{"ends now", "09:00", "10:00", model.OutcomePending, model.StatusCurrent},
		{"over", "08:00", "09:00", model.OutcomePending, model.StatusOverdue},
		{"later", "11:00", "12:00", model.OutcomePending, model.StatusUpcoming},
		{"completed beats time", "11:00", "12:00", model.OutcomeCompleted, model.StatusCompleted},
		{"missed beats time", "09:30", "10:30", model.OutcomeMissed, model.StatusMissed},
		{"skipped counts as missed", "08:00", "09:00", model.OutcomeSkipped, model.StatusMissed},
		{"overnight", "23:00", "01:00", model.OutcomePending, model.StatusUpcoming},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SessionStatus(session(tc.start, tc.end, tc.outcome), now); got != tc.want {
				t.Errorf("status = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestSessionWindowOvernight(t *testing.T) {
	day := time.Date(2024, 3, 15, 12, 0, 0, 0, testZone)
	start, end := SessionWindow(session("23:00", "01:00", model.OutcomePending), day)
	if !end.After(start) || end.Sub(start) != 2*time.Hour {
		t.Fatalf("window = %v - %v", start, end)
	}
}

func TestSortSessionsByStart(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, testZone)
	a := session("12:00", "13:00", model.OutcomePending)
	a.ID = 1
	b := session("07:30", "09:00", model.OutcomeCompleted)
	b.ID = 2
	c := session("09:45", "10:15", model.OutcomePending)
	c.ID = 3
	views := SortSessions([]model.Session{a, b, c}, now)
	if views[0].Session.ID != 2 || views[1].Session.ID != 3 || views[2].Session.ID != 1 {
		t.Fatalf("order = %d %d %d", views[0].Session.ID, views[1].Session.ID, views[2].Session.ID)
	}
	if views[1].Status != model.StatusCurrent || views[2].Status != model.StatusUpcoming {
		t.Errorf("statuses = %s %s", views[1].Status, views[2].Status)
	}
}
