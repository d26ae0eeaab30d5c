package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"routine-tracker/internal/repository"
)

var testZone = time.FixedZone("BDT", 6*60*60)

// memStore is an in-memory KVStore. Get fails while failReads is true and
// Set while failWrites is true.
type memStore struct {
	mu         sync.Mutex
	data       map[string]string
	failReads  bool
	failWrites bool
}

func newMemStore() *memStore {
	return &memStore{data: map[string]string{}}
}

func (m *memStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failReads {
		return "", errors.New("database is locked")
	}
	v, ok := m.data[key]
	if !ok {
		return "", repository.ErrNotFound
	}
	return v, nil
}

func (m *memStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return errors.New("disk full")
	}
	m.data[key] = value
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// testClock is a Clock whose instant the test moves.
type testClock struct {
	*Clock
	now time.Time
}

func newTestClock(t *testing.T, value string) *testClock {
	t.Helper()
	now, err := time.ParseInLocation("2006-01-02 15:04", value, testZone)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	tc := &testClock{now: now}
	tc.Clock = NewClockAt(testZone, func() time.Time { return tc.now })
	return tc
}

func (c *testClock) set(t *testing.T, value string) {
	t.Helper()
	now, err := time.ParseInLocation("2006-01-02 15:04", value, testZone)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	c.now = now
}

type fixture struct {
	store   *memStore
	clock   *testClock
	reports *ReportService
	routine *RoutineService
	study   *StudyService
}

func newFixture(t *testing.T, store *memStore, now string) *fixture {
	t.Helper()
	ctx := context.Background()
	clock := newTestClock(t, now)
	reports := NewReportService(repository.NewReportRepository(store), clock.Clock)
	return &fixture{
		store:   store,
		clock:   clock,
		reports: reports,
		routine: NewRoutineService(ctx, repository.NewRoutineRepository(store), reports, clock.Clock),
		study:   NewStudyService(ctx, repository.NewSubjectRepository(store), clock.Clock),
	}
}

func assertValidation(t *testing.T, err error, wantMessage string) {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if wantMessage != "" && verr.Message != wantMessage {
		t.Fatalf("message = %q, want %q", verr.Message, wantMessage)
	}
}
