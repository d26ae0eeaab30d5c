package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"routine-tracker/internal/model"
)

// Store keys of the persisted snapshots.
const (
	RoutineKey  = "dailyRoutineData"
	SubjectsKey = "studySubjects"
	ReportKey   = "reportData"
)

// RoutineRepository persists the weekly schedule as a single snapshot.
type RoutineRepository struct {
	store KVStore
}

func NewRoutineRepository(store KVStore) *RoutineRepository {
	return &RoutineRepository{store: store}
}

// Load returns the stored schedule. A missing snapshot yields the built-in
// routine; an unreadable one is logged and replaced by it as well.
func (r *RoutineRepository) Load(ctx context.Context) model.Schedule {
	schedule, err := r.Fetch(ctx)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("routine store: %v", err)
		}
		return DefaultRoutine()
	}
	return schedule
}

// Fetch returns the stored schedule or the read error, ErrNotFound when
// nothing is stored and ErrCorrupt when it cannot be decoded.
func (r *RoutineRepository) Fetch(ctx context.Context) (model.Schedule, error) {
	raw, err := r.store.Get(ctx, RoutineKey)
	if err != nil {
		return nil, err
	}
	schedule, err := DecodeSchedule([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return schedule, nil
}

// Save overwrites the stored snapshot.
func (r *RoutineRepository) Save(ctx context.Context, schedule model.Schedule) error {
	data, err := json.Marshal(schedule)
	if err != nil {
		return fmt.Errorf("encode routine: %w", err)
	}
	return r.store.Set(ctx, RoutineKey, string(data))
}

// DecodeSchedule parses a schedule snapshot, rejecting unknown weekday keys.
func DecodeSchedule(data []byte) (model.Schedule, error) {
	var raw map[string][]model.Task
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode routine: %w", err)
	}
	if raw == nil {
		return nil, errors.New("decode routine: empty document")
	}
	schedule := make(model.Schedule, len(raw))
	for key, tasks := range raw {
		day, ok := model.ParseWeekday(key)
		if !ok {
			return nil, fmt.Errorf("decode routine: unknown day %q", key)
		}
		if tasks == nil {
			tasks = []model.Task{}
		}
		schedule[day] = append(schedule[day], tasks...)
	}
	return schedule, nil
}

// SubjectRepository persists the study and prayer plan.
type SubjectRepository struct {
	store KVStore
}

func NewSubjectRepository(store KVStore) *SubjectRepository {
	return &SubjectRepository{store: store}
}

// Load returns the stored sessions. When nothing usable is stored the
// built-in plan is written and returned.
func (r *SubjectRepository) Load(ctx context.Context) []model.Session {
	sessions, err := r.Fetch(ctx)
	if err != nil && !errors.Is(err, ErrNotFound) {
		log.Printf("subject store: %v", err)
	}
	if len(sessions) > 0 {
		return sessions
	}
	sessions = DefaultSessions()
	if err := r.Save(ctx, sessions); err != nil {
		log.Printf("subject store: %v", err)
	}
	return sessions
}

// Fetch returns the stored sessions or the read error, ErrNotFound when
// nothing is stored and ErrCorrupt when they cannot be decoded.
func (r *SubjectRepository) Fetch(ctx context.Context) ([]model.Session, error) {
	raw, err := r.store.Get(ctx, SubjectsKey)
	if err != nil {
		return nil, err
	}
	var sessions []model.Session
	if err := json.Unmarshal([]byte(raw), &sessions); err != nil {
		return nil, fmt.Errorf("%w: decode subjects: %v", ErrCorrupt, err)
	}
	return sessions, nil
}

func (r *SubjectRepository) Save(ctx context.Context, sessions []model.Session) error {
	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("encode subjects: %w", err)
	}
	return r.store.Set(ctx, SubjectsKey, string(data))
}

// ReportRepository persists the completion history.
type ReportRepository struct {
	store KVStore
}

func NewReportRepository(store KVStore) *ReportRepository {
	return &ReportRepository{store: store}
}

// Load never fails: read or decode errors are logged and the empty default
// history is returned.
func (r *ReportRepository) Load(ctx context.Context) *model.ReportData {
	data, err := r.Fetch(ctx)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("report store: %v", err)
		}
		return model.NewReportData()
	}
	return data
}

// Fetch returns the stored history or the read error, ErrNotFound when
// nothing is stored and ErrCorrupt when it cannot be decoded.
func (r *ReportRepository) Fetch(ctx context.Context) (*model.ReportData, error) {
	raw, err := r.store.Get(ctx, ReportKey)
	if err != nil {
		return nil, err
	}
	data := model.NewReportData()
	if err := json.Unmarshal([]byte(raw), data); err != nil {
		return nil, fmt.Errorf("%w: decode report: %v", ErrCorrupt, err)
	}
	data.Normalize()
	return data, nil
}

// Save stamps lastUpdated and overwrites the stored history.
func (r *ReportRepository) Save(ctx context.Context, data *model.ReportData, now time.Time) error {
	stamp := now
	data.LastUpdated = &stamp
	encoded, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return r.store.Set(ctx, ReportKey, string(encoded))
}

// Clear removes the whole history.
func (r *ReportRepository) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, ReportKey)
}
