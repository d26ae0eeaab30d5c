package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"routine-tracker/internal/model"
	"routine-tracker/internal/repository"
)

var prayerNames = []string{"fajr", "dhuhr", "asr", "maghrib", "isha"}

// PrayerType detects the canonical prayer named in name, or "custom".
func PrayerType(name string) string {
	lower := strings.ToLower(name)
	for _, p := range prayerNames {
		if strings.Contains(lower, p) {
			return p
		}
	}
	return "custom"
}

// StudyStats summarizes the daily plan.
type StudyStats struct {
	Total      int
	Completed  int
	Missed     int
	StudyHours int
}

// StudyService owns the daily study and prayer plan. Outcomes recorded here
// do not enter the report history. Callers serialize access.
type StudyService struct {
	repo     *repository.SubjectRepository
	clock    *Clock
	sessions []model.Session
}

func NewStudyService(ctx context.Context, repo *repository.SubjectRepository, clock *Clock) *StudyService {
	return &StudyService{repo: repo, clock: clock, sessions: repo.Load(ctx)}
}

// Reload replaces the in-memory plan with the stored one. A failed read or
// an empty stored plan keeps the current sessions.
func (s *StudyService) Reload(ctx context.Context) {
	sessions, err := s.repo.Fetch(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("subject store: reload: %v", err)
		}
		return
	}
	if len(sessions) > 0 {
		s.sessions = sessions
	}
}

// Sessions returns the plan ordered by start time with live statuses.
func (s *StudyService) Sessions(_ context.Context) []SessionView {
	return SortSessions(s.sessions, s.clock.Now())
}

// Session returns a copy of the session with id.
func (s *StudyService) Session(id int64) (model.Session, error) {
	i, err := s.find(id)
	if err != nil {
		return model.Session{}, err
	}
	return s.sessions[i], nil
}

func (s *StudyService) find(id int64) (int, error) {
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("session %d: %w", id, ErrNotFound)
}

func (s *StudyService) Complete(ctx context.Context, id int64) (model.Session, error) {
	return s.settle(ctx, id, model.OutcomeCompleted)
}

func (s *StudyService) Miss(ctx context.Context, id int64) (model.Session, error) {
	return s.settle(ctx, id, model.OutcomeMissed)
}

// Reset clears the session's outcome.
func (s *StudyService) Reset(ctx context.Context, id int64) (model.Session, error) {
	return s.settle(ctx, id, model.OutcomePending)
}

func (s *StudyService) settle(ctx context.Context, id int64, outcome model.Outcome) (model.Session, error) {
	i, err := s.find(id)
	if err != nil {
		return model.Session{}, err
	}
	if outcome == model.OutcomePending {
		s.sessions[i].Reset()
	} else {
		s.sessions[i].SetOutcome(outcome, s.clock.Now())
	}
	s.persist(ctx)
	return s.sessions[i], nil
}

func (s *StudyService) nextID() int64 {
	var max int64
	for _, sess := range s.sessions {
		if sess.ID > max {
			max = sess.ID
		}
	}
	return max + 1
}

func sessionFrom(in SessionInput) model.Session {
	start, _ := ParseClock(in.StartTime)
	end, _ := ParseClock(in.EndTime)
	category := in.Type
	if category == "" {
		category = model.CategoryStudy
	}
	sess := model.Session{
		Name:        strings.TrimSpace(in.Name),
		StartTime:   FormatClock(start),
		EndTime:     FormatClock(end),
		Description: strings.TrimSpace(in.Description),
		Type:        category,
	}
	if category == model.CategoryPrayer {
		sess.IsEditable = true
		sess.PrayerType = PrayerType(sess.Name)
	}
	sess.Reset()
	return sess
}

// AddSubject validates in and appends a new session.
func (s *StudyService) AddSubject(ctx context.Context, in SessionInput) (model.Session, error) {
	if err := in.Validate(); err != nil {
		return model.Session{}, err
	}
	sess := sessionFrom(in)
	sess.ID = s.nextID()
	s.sessions = append(s.sessions, sess)
	s.persist(ctx)
	log.Printf("[info] study: added %q %s-%s", sess.Name, sess.StartTime, sess.EndTime)
	return sess, nil
}

// UpdateSubject replaces the session with id, keeping the id. The outcome
// is cleared.
func (s *StudyService) UpdateSubject(ctx context.Context, id int64, in SessionInput) (model.Session, error) {
	i, err := s.find(id)
	if err != nil {
		return model.Session{}, err
	}
	if err := in.Validate(); err != nil {
		return model.Session{}, err
	}
	sess := sessionFrom(in)
	sess.ID = id
	s.sessions[i] = sess
	s.persist(ctx)
	return sess, nil
}

func (s *StudyService) DeleteSubject(ctx context.Context, id int64) (model.Session, error) {
	i, err := s.find(id)
	if err != nil {
		return model.Session{}, err
	}
	removed := s.sessions[i]
	s.sessions = append(s.sessions[:i:i], s.sessions[i+1:]...)
	s.persist(ctx)
	return removed, nil
}

// AddPrayer appends an editable prayer session.
func (s *StudyService) AddPrayer(ctx context.Context, in SessionInput) (model.Session, error) {
	in.Type = model.CategoryPrayer
	if strings.TrimSpace(in.Description) == "" {
		in.Description = strings.TrimSpace(in.Name) + " prayer"
	}
	return s.AddSubject(ctx, in)
}

// EditPrayerTime moves an editable session to a new window.
func (s *StudyService) EditPrayerTime(ctx context.Context, id int64, start, end string) (model.Session, error) {
	i, err := s.find(id)
	if err != nil {
		return model.Session{}, err
	}
	sess := &s.sessions[i]
	if !sess.IsEditable {
		return model.Session{}, invalid("id", "%s has a fixed time", sess.Name)
	}
	in := SessionInput{Name: sess.Name, StartTime: start, EndTime: end}
	if err := in.Validate(); err != nil {
		return model.Session{}, err
	}
	startMin, _ := ParseClock(start)
	endMin, _ := ParseClock(end)
	sess.StartTime = FormatClock(startMin)
	sess.EndTime = FormatClock(endMin)
	s.persist(ctx)
	return *sess, nil
}

// Stats counts outcomes and sums the whole hours of every study session.
func (s *StudyService) Stats(_ context.Context) StudyStats {
	st := StudyStats{Total: len(s.sessions)}
	for _, sess := range s.sessions {
		switch {
		case sess.Outcome == model.OutcomeCompleted:
			st.Completed++
		case sess.Outcome.Missed():
			st.Missed++
		}
		if sess.Type != model.CategoryStudy {
			continue
		}
		start, err := ParseClock(sess.StartTime)
		if err != nil {
			continue
		}
		end, err := ParseClock(sess.EndTime)
		if err != nil || end <= start {
			continue
		}
		st.StudyHours += (end - start) / 60
	}
	return st
}

func (s *StudyService) persist(ctx context.Context) {
	if err := s.repo.Save(ctx, s.sessions); err != nil {
		log.Printf("subject store: %v", err)
	}
}
