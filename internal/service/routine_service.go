package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"routine-tracker/internal/model"
	"routine-tracker/internal/repository"
)

// ExportFilename is the suggested name of an exported schedule.
const ExportFilename = "daily-routine-data.json"

// ImportError is returned when an uploaded schedule cannot be used. The
// current schedule is left as it was.
type ImportError struct {
	Err error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import routine: %v", e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// DayCounts is the per-day summary shown above the routine list.
type DayCounts struct {
	Completed  int
	Missed     int
	InProgress int
}

// DayProgress is one column of the week overview.
type DayProgress struct {
	Day       model.Weekday
	Completed int
	Total     int
}

// CategoryCount is the number of records tagged with a category.
type CategoryCount struct {
	Category model.Category
	Count    int
}

// RoutineService owns the weekly schedule and records outcomes into the
// report history. Callers serialize access.
type RoutineService struct {
	repo     *repository.RoutineRepository
	reports  *ReportService
	clock    *Clock
	schedule model.Schedule
}

func NewRoutineService(ctx context.Context, repo *repository.RoutineRepository, reports *ReportService, clock *Clock) *RoutineService {
	return &RoutineService{
		repo:     repo,
		reports:  reports,
		clock:    clock,
		schedule: repo.Load(ctx),
	}
}

// Reload replaces the in-memory schedule with the stored one so writes made
// by another process are not overwritten. A failed read keeps the current
// schedule.
func (s *RoutineService) Reload(ctx context.Context) {
	schedule, err := s.repo.Fetch(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("routine store: reload: %v", err)
		}
		return
	}
	s.schedule = schedule
}

// Day returns the records of day in display order.
func (s *RoutineService) Day(_ context.Context, day model.Weekday) []TaskView {
	return SortTasks(s.schedule[day], s.clock.Now())
}

// Task returns a copy of the record at index of day.
func (s *RoutineService) Task(day model.Weekday, index int) (model.Task, error) {
	t, err := s.lookup(day, index)
	if err != nil {
		return model.Task{}, err
	}
	return *t, nil
}

func (s *RoutineService) lookup(day model.Weekday, index int) (*model.Task, error) {
	tasks := s.schedule[day]
	if index < 0 || index >= len(tasks) {
		return nil, fmt.Errorf("%s #%d: %w", day, index+1, ErrNotFound)
	}
	return &tasks[index], nil
}

// TaskRef names a record the way a user last saw it: the stored position
// then, plus the time and title shown. A ref without Time is positional.
type TaskRef struct {
	Day   model.Weekday
	Index int
	Time  string
	Title string
}

// RefOf builds the ref of task stored at index of day.
func RefOf(day model.Weekday, index int, task model.Task) TaskRef {
	return TaskRef{Day: day, Index: index, Time: task.Time, Title: task.Title}
}

// Resolve returns the current index of ref. The stored position is kept while
// it still holds the same record; after a reorder the single record of the
// day with the same time, and title when set, is used. Anything else is
// ErrNotFound so a stale reference never hits a different record.
func (s *RoutineService) Resolve(ref TaskRef) (int, error) {
	if ref.Time == "" {
		if _, err := s.lookup(ref.Day, ref.Index); err != nil {
			return -1, err
		}
		return ref.Index, nil
	}
	tasks := s.schedule[ref.Day]
	if ref.Index >= 0 && ref.Index < len(tasks) && ref.matches(tasks[ref.Index]) {
		return ref.Index, nil
	}
	found := -1
	for i, t := range tasks {
		if !ref.matches(t) {
			continue
		}
		if found >= 0 {
			found = -1
			break
		}
		found = i
	}
	if found < 0 {
		return -1, fmt.Errorf("%s %s %q changed: %w", ref.Day, ref.Time, ref.Title, ErrNotFound)
	}
	return found, nil
}

func (r TaskRef) matches(t model.Task) bool {
	if r.Title != "" && t.Title != r.Title {
		return false
	}
	want, errWant := ParseClock(r.Time)
	got, errGot := ParseClock(t.Time)
	if errWant != nil || errGot != nil {
		return t.Time == r.Time
	}
	return want == got
}

// Complete marks the record completed and logs a completed report entry.
func (s *RoutineService) Complete(ctx context.Context, day model.Weekday, index int) (model.Task, error) {
	return s.settle(ctx, day, index, model.OutcomeCompleted, model.StatusCompleted)
}

// Skip marks the record skipped. It is reported as missed.
func (s *RoutineService) Skip(ctx context.Context, day model.Weekday, index int) (model.Task, error) {
	return s.settle(ctx, day, index, model.OutcomeSkipped, model.StatusMissed)
}

// Miss marks the record missed and logs a missed report entry.
func (s *RoutineService) Miss(ctx context.Context, day model.Weekday, index int) (model.Task, error) {
	return s.settle(ctx, day, index, model.OutcomeMissed, model.StatusMissed)
}

func (s *RoutineService) settle(ctx context.Context, day model.Weekday, index int, outcome model.Outcome, status model.Status) (model.Task, error) {
	t, err := s.lookup(day, index)
	if err != nil {
		return model.Task{}, err
	}
	t.SetOutcome(outcome, s.clock.Now())
	s.persist(ctx)
	if _, err := s.reports.RecordOutcome(ctx, *t, status, day); err != nil {
		log.Printf("routine: record %s outcome: %v", status, err)
	}
	return *t, nil
}

// Reset returns the record to pending. No report entry is written.
func (s *RoutineService) Reset(ctx context.Context, day model.Weekday, index int) (model.Task, error) {
	t, err := s.lookup(day, index)
	if err != nil {
		return model.Task{}, err
	}
	t.Reset()
	s.persist(ctx)
	return *t, nil
}

// Add validates in and appends a pending record to its day.
func (s *RoutineService) Add(ctx context.Context, in TaskInput) (model.Task, error) {
	if err := in.Validate(); err != nil {
		return model.Task{}, err
	}
	day, _ := model.ParseWeekday(string(in.Day))
	t := in.task()
	s.schedule[day] = append(s.schedule[day], t)
	sortChronologically(s.schedule[day])
	s.persist(ctx)
	log.Printf("[info] routine: added %q on %s at %s", t.Title, day, t.Time)
	return t, nil
}

// Update replaces the record at index of day with in. The edited record is
// pending again and may move to another day.
func (s *RoutineService) Update(ctx context.Context, day model.Weekday, index int, in TaskInput) (model.Task, error) {
	if _, err := s.lookup(day, index); err != nil {
		return model.Task{}, err
	}
	if err := in.Validate(); err != nil {
		return model.Task{}, err
	}
	target, _ := model.ParseWeekday(string(in.Day))
	t := in.task()
	if target == day {
		s.schedule[day][index] = t
	} else {
		s.schedule[day] = removeTask(s.schedule[day], index)
		s.schedule[target] = append(s.schedule[target], t)
	}
	sortChronologically(s.schedule[target])
	s.persist(ctx)
	return t, nil
}

// Delete removes the record at index of day.
func (s *RoutineService) Delete(ctx context.Context, day model.Weekday, index int) (model.Task, error) {
	t, err := s.lookup(day, index)
	if err != nil {
		return model.Task{}, err
	}
	removed := *t
	s.schedule[day] = removeTask(s.schedule[day], index)
	s.persist(ctx)
	return removed, nil
}

func removeTask(tasks []model.Task, index int) []model.Task {
	out := make([]model.Task, 0, len(tasks)-1)
	out = append(out, tasks[:index]...)
	return append(out, tasks[index+1:]...)
}

func sortChronologically(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, _ := ParseClock(tasks[i].Time)
		b, _ := ParseClock(tasks[j].Time)
		return a < b
	})
}

// Counts summarizes the outcomes of day.
func (s *RoutineService) Counts(_ context.Context, day model.Weekday) DayCounts {
	var c DayCounts
	for _, t := range s.schedule[day] {
		switch TaskStatus(t) {
		case model.StatusCompleted:
			c.Completed++
		case model.StatusMissed:
			c.Missed++
		default:
			c.InProgress++
		}
	}
	return c
}

// Week returns completed and total counts for every day, Saturday first.
func (s *RoutineService) Week(_ context.Context) []DayProgress {
	out := make([]DayProgress, 0, len(model.Weekdays))
	for _, day := range model.Weekdays {
		p := DayProgress{Day: day, Total: len(s.schedule[day])}
		for _, t := range s.schedule[day] {
			if t.Outcome == model.OutcomeCompleted {
				p.Completed++
			}
		}
		out = append(out, p)
	}
	return out
}

// CategoryCounts counts records per category across the week, most used
// first. Unknown categories are counted as other.
func (s *RoutineService) CategoryCounts(_ context.Context) []CategoryCount {
	counts := make(map[model.Category]int)
	for _, tasks := range s.schedule {
		for _, t := range tasks {
			counts[t.Type.Known()]++
		}
	}
	out := make([]CategoryCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, CategoryCount{Category: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Export renders the whole schedule as indented JSON.
func (s *RoutineService) Export(_ context.Context) ([]byte, error) {
	data, err := json.MarshalIndent(s.schedule, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export routine: %w", err)
	}
	return data, nil
}

// Import replaces the schedule with data. On any error the current
// schedule is kept and an *ImportError is returned.
func (s *RoutineService) Import(ctx context.Context, data []byte) error {
	schedule, err := repository.DecodeSchedule(data)
	if err != nil {
		return &ImportError{Err: err}
	}
	for day, tasks := range schedule {
		for i, t := range tasks {
			if _, err := ParseClock(t.Time); err != nil {
				return &ImportError{Err: fmt.Errorf("%s #%d: %w", day, i+1, err)}
			}
			if t.Duration < 0 {
				return &ImportError{Err: fmt.Errorf("%s #%d: negative duration", day, i+1)}
			}
		}
	}
	s.schedule = schedule
	s.persist(ctx)
	log.Printf("[info] routine: imported %d days", len(schedule))
	return nil
}

// Snapshot returns a deep copy of the schedule.
func (s *RoutineService) Snapshot() model.Schedule {
	return s.schedule.Clone()
}

// Today is the weekday of the tracker clock.
func (s *RoutineService) Today() model.Weekday {
	return s.clock.Weekday()
}

// Now is the tracker clock's current instant.
func (s *RoutineService) Now() time.Time {
	return s.clock.Now()
}

func (s *RoutineService) persist(ctx context.Context) {
	if err := s.repo.Save(ctx, s.schedule); err != nil {
		log.Printf("routine store: %v", err)
	}
}
