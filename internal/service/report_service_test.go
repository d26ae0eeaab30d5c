package service

import (
	"context"
	"testing"
	"time"

	"routine-tracker/internal/model"
	"routine-tracker/internal/repository"
)

func TestRecordOutcomeTallies(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, newMemStore(), "2024-03-15 10:00")
	gym := task("08:00", 30, "Gym", model.OutcomePending)

	first, err := f.reports.RecordOutcome(ctx, gym, model.StatusCompleted, model.Friday)
	if err != nil {
		t.Fatalf("RecordOutcome: %v", err)
	}
	second, err := f.reports.RecordOutcome(ctx, gym, model.StatusCompleted, model.Friday)
	if err != nil {
		t.Fatalf("RecordOutcome: %v", err)
	}
	if first.ID == "" || first.ID == second.ID {
		t.Fatalf("entry ids = %q, %q", first.ID, second.ID)
	}
	if first.Date != "2024-03-15" || first.Day != model.Friday || first.Title != "Gym" {
		t.Fatalf("entry = %+v", first)
	}

	stats := f.reports.DailyStats(ctx, "2024-03-15")
	if stats.Total != 2 || stats.Completed != 2 || stats.Missed != 0 || stats.CompletionRate != 100 {
		t.Fatalf("stats = %+v", stats)
	}

	if _, err := f.reports.RecordOutcome(ctx, gym, model.StatusMissed, model.Friday); err != nil {
		t.Fatalf("RecordOutcome missed: %v", err)
	}
	stats = f.reports.DailyStats(ctx, "2024-03-15")
	if stats.Total != 3 || stats.Missed != 1 || stats.CompletionRate != 67 {
		t.Fatalf("stats = %+v", stats)
	}

	completed, missed := f.reports.DayDetails(ctx, "2024-03-15")
	if len(completed) != 2 || len(missed) != 1 {
		t.Fatalf("details = %d completed, %d missed", len(completed), len(missed))
	}

	data := repository.NewReportRepository(f.store).Load(ctx)
	if data.MonthlyStats["2024-03"].TotalTasks != 3 || data.LastUpdated == nil {
		t.Fatalf("stored = %+v", data)
	}
}

func TestRecordOutcomeRejectsOtherStatuses(t *testing.T) {
	f := newFixture(t, newMemStore(), "2024-03-15 10:00")
	if _, err := f.reports.RecordOutcome(context.Background(), model.Task{Title: "x"}, model.StatusPending, model.Friday); err == nil {
		t.Fatal("pending status accepted")
	}
}

func TestRecordOutcomeUsesClockZone(t *testing.T) {
	// 00:30 in the tracker zone is still the previous day in UTC.
	f := newFixture(t, newMemStore(), "2024-03-16 00:30")
	entry, err := f.reports.RecordOutcome(context.Background(), model.Task{Title: "Late"}, model.StatusCompleted, model.Saturday)
	if err != nil {
		t.Fatalf("RecordOutcome: %v", err)
	}
	if entry.Date != "2024-03-16" {
		t.Fatalf("date = %s", entry.Date)
	}
}

func TestDailyStatsAbsentDate(t *testing.T) {
	f := newFixture(t, newMemStore(), "2024-03-15 10:00")
	stats := f.reports.DailyStats(context.Background(), "1999-01-01")
	if stats != (model.DayStats{Date: "1999-01-01"}) {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestMonthlyReport(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	f := newFixture(t, store, "2024-02-10 09:00")
	for i := 0; i < 3; i++ {
		if _, err := f.reports.RecordOutcome(ctx, model.Task{Title: "a"}, model.StatusCompleted, model.Saturday); err != nil {
			t.Fatal(err)
		}
	}
	f.clock.set(t, "2024-02-29 09:00")
	if _, err := f.reports.RecordOutcome(ctx, model.Task{Title: "b"}, model.StatusMissed, model.Thursday); err != nil {
		t.Fatal(err)
	}

	leap, err := f.reports.MonthlyReport(ctx, time.February, 2024)
	if err != nil {
		t.Fatalf("MonthlyReport: %v", err)
	}
	if leap.TotalDays != 29 || len(leap.Days) != 29 {
		t.Fatalf("days = %d/%d", leap.TotalDays, len(leap.Days))
	}
	if leap.Total != 4 || leap.Completed != 3 || leap.Missed != 1 || leap.CompletionRate != 75 {
		t.Fatalf("report = %+v", leap)
	}
	if leap.Days[9].Completed != 3 || leap.Days[28].Missed != 1 {
		t.Fatalf("per-day = %+v / %+v", leap.Days[9], leap.Days[28])
	}
	if len(leap.Weeks()) != 5 {
		t.Fatalf("weeks = %d", len(leap.Weeks()))
	}

	plain, err := f.reports.MonthlyReport(ctx, time.February, 2023)
	if err != nil {
		t.Fatalf("MonthlyReport: %v", err)
	}
	if plain.TotalDays != 28 || plain.Total != 0 || plain.CompletionRate != 0 {
		t.Fatalf("report = %+v", plain)
	}
}

func TestMonthlyReportValidation(t *testing.T) {
	f := newFixture(t, newMemStore(), "2024-02-10 09:00")
	_, err := f.reports.MonthlyReport(context.Background(), 13, 2024)
	assertValidation(t, err, "")
	_, err = f.reports.MonthlyReport(context.Background(), 0, 2024)
	assertValidation(t, err, "")
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		month time.Month
		year  int
		want  int
	}{
		{time.January, 2024, 31},
		{time.February, 2024, 29},
		{time.February, 2023, 28},
		{time.February, 1900, 28},
		{time.February, 2000, 29},
		{time.April, 2024, 30},
		{time.December, 2024, 31},
	}
	for _, tc := range cases {
		if got := DaysInMonth(tc.month, tc.year); got != tc.want {
			t.Errorf("DaysInMonth(%s, %d) = %d, want %d", tc.month, tc.year, got, tc.want)
		}
	}
}

func TestReportSurvivesCorruptBlob(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.data[repository.ReportKey] = "{broken"
	f := newFixture(t, store, "2024-03-15 10:00")

	if stats := f.reports.DailyStats(ctx, "2024-03-15"); stats.Total != 0 {
		t.Fatalf("stats = %+v", stats)
	}
	if _, err := f.reports.RecordOutcome(ctx, model.Task{Title: "a"}, model.StatusCompleted, model.Friday); err != nil {
		t.Fatalf("RecordOutcome: %v", err)
	}
	if stats := f.reports.DailyStats(ctx, "2024-03-15"); stats.Total != 1 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestClearReport(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, newMemStore(), "2024-03-15 10:00")
	if _, err := f.reports.RecordOutcome(ctx, model.Task{Title: "a"}, model.StatusCompleted, model.Friday); err != nil {
		t.Fatal(err)
	}
	if err := f.reports.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if stats := f.reports.DailyStats(ctx, "2024-03-15"); stats.Total != 0 {
		t.Fatalf("stats after clear = %+v", stats)
	}
}

func TestRecordOutcomeKeepsHistoryOnReadFailure(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	f := newFixture(t, store, "2024-03-15 10:00")
	if _, err := f.reports.RecordOutcome(ctx, model.Task{Title: "a"}, model.StatusCompleted, model.Friday); err != nil {
		t.Fatal(err)
	}
	stored := store.data[repository.ReportKey]

	store.failReads = true
	if _, err := f.reports.RecordOutcome(ctx, model.Task{Title: "b"}, model.StatusMissed, model.Friday); err == nil {
		t.Fatal("RecordOutcome succeeded without reading the history")
	}
	store.failReads = false

	if store.data[repository.ReportKey] != stored {
		t.Fatal("history rewritten after a failed read")
	}
	if stats := f.reports.DailyStats(ctx, "2024-03-15"); stats.Total != 1 || stats.Completed != 1 {
		t.Fatalf("stats = %+v", stats)
	}
}
