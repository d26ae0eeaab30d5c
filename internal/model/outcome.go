package model

import "time"

// Outcome is the recorded result of a schedule record. Exactly one outcome
// holds at a time; a record with no recorded result is pending.
type Outcome string

const (
	OutcomePending   Outcome = "pending"
	OutcomeCompleted Outcome = "completed"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeMissed    Outcome = "missed"
)

// Valid reports whether o is one of the known outcomes.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomePending, OutcomeCompleted, OutcomeSkipped, OutcomeMissed:
		return true
	}
	return false
}

// Missed reports whether the outcome counts as missed for status and
// reporting purposes. Skipped records count as missed.
func (o Outcome) Missed() bool {
	return o == OutcomeMissed || o == OutcomeSkipped
}

// Status is the derived display state of a record.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCurrent   Status = "current"
	StatusOverdue   Status = "overdue"
	StatusUpcoming  Status = "upcoming"
	StatusCompleted Status = "completed"
	StatusMissed    Status = "missed"
)

// outcomeState is embedded by records that carry an outcome.
type outcomeState struct {
	Outcome   Outcome    `json:"outcome"`
	OutcomeAt *time.Time `json:"outcomeAt,omitempty"`
}

func (s *outcomeState) set(o Outcome, at time.Time) {
	if !o.Valid() || o == OutcomePending {
		s.Outcome = OutcomePending
		s.OutcomeAt = nil
		return
	}
	stamp := at
	s.Outcome = o
	s.OutcomeAt = &stamp
}

// legacyFlags is the flag trio used by files exported from the browser
// tracker. It is only read, never written.
type legacyFlags struct {
	Completed   bool       `json:"completed"`
	Skipped     bool       `json:"skipped"`
	Missed      bool       `json:"missed"`
	CompletedAt *time.Time `json:"completedAt"`
	SkippedAt   *time.Time `json:"skippedAt"`
	MissedAt    *time.Time `json:"missedAt"`
}

func (f legacyFlags) resolve() (Outcome, *time.Time) {
	switch {
	case f.Completed:
		return OutcomeCompleted, f.CompletedAt
	case f.Missed:
		return OutcomeMissed, f.MissedAt
	case f.Skipped:
		return OutcomeSkipped, f.SkippedAt
	default:
		return OutcomePending, nil
	}
}

// normalize fills the outcome from legacy flags when the record was written
// without one and drops timestamps that do not belong to a pending record.
func (s *outcomeState) normalize(legacy legacyFlags) {
	if s.Outcome == "" {
		s.Outcome, s.OutcomeAt = legacy.resolve()
	}
	if !s.Outcome.Valid() {
		s.Outcome = OutcomePending
	}
	if s.Outcome == OutcomePending {
		s.OutcomeAt = nil
	}
}
