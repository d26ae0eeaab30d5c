package service

import (
	"context"
	"testing"

	"routine-tracker/internal/model"
)

func TestRefresherTransitions(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	seedRoutine(t, store, model.Schedule{model.Friday: {task("08:00", 30, "Gym", model.OutcomePending)}})
	math := model.Session{ID: 7, Name: "Math", StartTime: "10:00", EndTime: "11:00", Type: model.CategoryStudy}
	seedSessions(t, store, math)
	f := newFixture(t, store, "2024-03-15 09:59")
	r := NewRefresher(f.routine, f.study, f.clock.Clock)

	first := r.Tick(ctx)
	if len(first.Transitions) != 0 || first.DayChanged || first.Day != model.Friday {
		t.Fatalf("baseline tick = %+v", first)
	}
	if len(first.Tasks) != 1 || len(first.Sessions) != 1 {
		t.Fatalf("tick views = %d tasks, %d sessions", len(first.Tasks), len(first.Sessions))
	}

	f.clock.set(t, "2024-03-15 10:00")
	started := r.Tick(ctx)
	if len(started.Transitions) != 1 {
		t.Fatalf("transitions = %+v", started.Transitions)
	}
	tr := started.Transitions[0]
	if tr.Key != "session:7" || tr.Name != "Math" || tr.From != model.StatusUpcoming || tr.To != model.StatusCurrent {
		t.Fatalf("transition = %+v", tr)
	}

	if quiet := r.Tick(ctx); len(quiet.Transitions) != 0 {
		t.Fatalf("unchanged tick reported %+v", quiet.Transitions)
	}

	if _, err := f.routine.Complete(ctx, model.Friday, 0); err != nil {
		t.Fatal(err)
	}
	f.clock.set(t, "2024-03-15 11:01")
	later := r.Tick(ctx)
	if len(later.Transitions) != 2 {
		t.Fatalf("transitions = %+v", later.Transitions)
	}
	if later.Transitions[0].Key != "session:7" || later.Transitions[0].To != model.StatusOverdue {
		t.Fatalf("first = %+v", later.Transitions[0])
	}
	if later.Transitions[1].Key != "task:friday:0" || later.Transitions[1].To != model.StatusCompleted {
		t.Fatalf("second = %+v", later.Transitions[1])
	}
}

func TestRefresherDayRollover(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, newMemStore(), "2024-03-15 23:59")
	r := NewRefresher(f.routine, f.study, f.clock.Clock)
	r.Tick(ctx)

	f.clock.set(t, "2024-03-16 00:00")
	next := r.Tick(ctx)
	if !next.DayChanged || next.Day != model.Saturday {
		t.Fatalf("rollover tick = day %s changed %t", next.Day, next.DayChanged)
	}
	if len(next.Transitions) != 0 {
		t.Fatalf("rollover should start a fresh baseline, got %+v", next.Transitions)
	}
	if len(next.Tasks) != len(f.routine.Day(ctx, model.Saturday)) {
		t.Fatal("tick did not recompute the new day")
	}
}
