package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"routine-tracker/internal/model"
)

// Transition is a status change observed between two ticks.
type Transition struct {
	Key  string
	Name string
	From model.Status
	To   model.Status
}

// TickResult is the state recomputed by one tick.
type TickResult struct {
	Now         time.Time
	Day         model.Weekday
	DayChanged  bool
	Tasks       []TaskView
	Sessions    []SessionView
	Transitions []Transition
}

// Refresher re-derives statuses on a fixed cadence and reports what changed
// since the previous tick. The first tick establishes the baseline.
type Refresher struct {
	routine *RoutineService
	study   *StudyService
	clock   *Clock

	day  model.Weekday
	seen map[string]model.Status
}

func NewRefresher(routine *RoutineService, study *StudyService, clock *Clock) *Refresher {
	return &Refresher{routine: routine, study: study, clock: clock}
}

func (r *Refresher) Tick(ctx context.Context) TickResult {
	now := r.clock.Now()
	day := model.WeekdayOf(now.Weekday())
	res := TickResult{
		Now:        now,
		Day:        day,
		DayChanged: r.day != "" && r.day != day,
		Tasks:      r.routine.Day(ctx, day),
		Sessions:   r.study.Sessions(ctx),
	}

	current := make(map[string]model.Status, len(res.Tasks)+len(res.Sessions))
	names := make(map[string]string, len(current))
	for _, v := range res.Tasks {
		key := fmt.Sprintf("task:%s:%d", day, v.Index)
		current[key] = v.Status
		names[key] = v.Task.Title
	}
	for _, v := range res.Sessions {
		key := fmt.Sprintf("session:%d", v.Session.ID)
		current[key] = v.Status
		names[key] = v.Session.Name
	}

	// A new weekday has a different record set; start a fresh baseline.
	if r.seen != nil && !res.DayChanged {
		for key, status := range current {
			prev, ok := r.seen[key]
			if ok && prev != status {
				res.Transitions = append(res.Transitions, Transition{Key: key, Name: names[key], From: prev, To: status})
			}
		}
		sort.Slice(res.Transitions, func(i, j int) bool {
			return res.Transitions[i].Key < res.Transitions[j].Key
		})
	}
	r.day = day
	r.seen = current
	return res
}
