package model

import (
	"encoding/json"
	"time"
)

// Session is one record of the daily study and prayer plan.
type Session struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime"`
	Description string   `json:"description"`
	Type        Category `json:"type"`
	IsEditable  bool     `json:"isEditable,omitempty"`
	PrayerType  string   `json:"prayerType,omitempty"`
	outcomeState
}

func (s *Session) SetOutcome(o Outcome, at time.Time) {
	s.outcomeState.set(o, at)
}

func (s *Session) Reset() {
	s.outcomeState.set(OutcomePending, time.Time{})
}

func (s *Session) UnmarshalJSON(data []byte) error {
	type plain Session
	var aux struct {
		plain
		legacyFlags
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = Session(aux.plain)
	s.outcomeState.normalize(aux.legacyFlags)
	return nil
}
