package app

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"routine-tracker/internal/config"
	"routine-tracker/internal/model"
	"routine-tracker/internal/repository"
	"routine-tracker/internal/service"
)

func fixedClock(t *testing.T, value string) *service.Clock {
	t.Helper()
	loc := time.FixedZone("BDT", 6*60*60)
	now, err := time.ParseInLocation("2006-01-02 15:04", value, loc)
	if err != nil {
		t.Fatal(err)
	}
	return service.NewClockAt(loc, func() time.Time { return now })
}

func TestStatePersistsAcrossRestart(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "state")
	store, err := repository.NewDiskStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	clock := fixedClock(t, "2024-03-15 10:00")

	a := NewWithStore(ctx, store, clock)
	err = a.Do(func() error {
		_, err := a.Routine.Complete(ctx, model.Friday, 0)
		return err
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	reopened, err := repository.NewDiskStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	b := NewWithStore(ctx, reopened, clock)
	task, err := b.Routine.Task(model.Friday, 0)
	if err != nil {
		t.Fatal(err)
	}
	if task.Outcome != model.OutcomeCompleted {
		t.Fatalf("outcome after restart = %q", task.Outcome)
	}
	if stats := b.Reports.DailyStats(ctx, "2024-03-15"); stats.Completed != 1 {
		t.Fatalf("report after restart = %+v", stats)
	}
	if b.Users != nil {
		t.Fatal("store-only app should have no user repository")
	}
}

func TestDoSerializesOperations(t *testing.T) {
	ctx := context.Background()
	store, err := repository.NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	a := NewWithStore(ctx, store, fixedClock(t, "2024-03-15 10:00"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = a.Do(func() error {
				_, err := a.Routine.Add(ctx, service.TaskInput{Day: model.Monday, Time: "06:00", Duration: 10, Title: "stretch"})
				return err
			})
			a.Tick(ctx)
		}()
	}
	wg.Wait()

	var n int
	_ = a.Do(func() error {
		for _, v := range a.Routine.Day(ctx, model.Monday) {
			if v.Task.Title == "stretch" {
				n++
			}
		}
		return nil
	})
	if n != 8 {
		t.Fatalf("added %d records, want 8", n)
	}

	boom := errors.New("boom")
	if err := a.Do(func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("Do error = %v", err)
	}
}

func TestNewOpensConfiguredStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cfg := config.Config{
		DatabaseURL:  filepath.Join(dir, "tracker.db"),
		StoreBackend: config.BackendSQLite,
		StorePath:    filepath.Join(dir, "blobs"),
		Timezone:     "UTC",
	}
	a, err := New(ctx, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.Users == nil {
		t.Fatal("users repository not wired")
	}
	if len(a.Study.Sessions(ctx)) == 0 {
		t.Fatal("default study plan not loaded")
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	cfg.Timezone = "Mars/Olympus"
	if _, err := NewQuiet(ctx, cfg); err == nil {
		t.Fatal("unknown zone accepted")
	}
}

func openSQLiteApp(t *testing.T, path string, clock *service.Clock) *App {
	t.Helper()
	db, err := repository.NewQuietDB(path)
	if err != nil {
		t.Fatalf("NewQuietDB: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewWithStore(context.Background(), repository.NewBlobStore(db), clock)
}

func TestWritesFromTwoAppsOnOneStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "shared.db")
	clock := fixedClock(t, "2024-03-15 10:00")
	server := openSQLiteApp(t, path, clock)
	cli := openSQLiteApp(t, path, clock)

	if err := cli.Do(func() error {
		_, err := cli.Routine.Complete(ctx, model.Friday, 0)
		return err
	}); err != nil {
		t.Fatalf("cli complete: %v", err)
	}
	if err := server.Do(func() error {
		_, err := server.Routine.Miss(ctx, model.Friday, 1)
		return err
	}); err != nil {
		t.Fatalf("server miss: %v", err)
	}
	if err := cli.Do(func() error {
		_, err := cli.Study.Complete(ctx, 1)
		return err
	}); err != nil {
		t.Fatalf("cli study: %v", err)
	}
	server.Tick(ctx)
	if err := server.Do(func() error {
		_, err := server.Study.Miss(ctx, 2)
		return err
	}); err != nil {
		t.Fatalf("server study: %v", err)
	}

	fresh := openSQLiteApp(t, path, clock)
	first, _ := fresh.Routine.Task(model.Friday, 0)
	second, _ := fresh.Routine.Task(model.Friday, 1)
	if first.Outcome != model.OutcomeCompleted || second.Outcome != model.OutcomeMissed {
		t.Fatalf("stored outcomes = %q, %q", first.Outcome, second.Outcome)
	}
	fajr, _ := fresh.Study.Session(1)
	revision, _ := fresh.Study.Session(2)
	if fajr.Outcome != model.OutcomeCompleted || revision.Outcome != model.OutcomeMissed {
		t.Fatalf("stored sessions = %q, %q", fajr.Outcome, revision.Outcome)
	}
	stats := fresh.Reports.DailyStats(ctx, "2024-03-15")
	if stats.Completed != 1 || stats.Missed != 1 {
		t.Fatalf("report = %+v", stats)
	}
}
