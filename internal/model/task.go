package model

import (
	"encoding/json"
	"time"
)

// Task is one record of the weekly routine.
type Task struct {
	Time        string   `json:"time"`
	Duration    int      `json:"duration"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        Category `json:"type"`
	Special     Special  `json:"special,omitempty"`
	outcomeState
}

// SetOutcome records o at the given instant, replacing any previous outcome.
func (t *Task) SetOutcome(o Outcome, at time.Time) {
	t.outcomeState.set(o, at)
}

// Reset returns the task to pending.
func (t *Task) Reset() {
	t.outcomeState.set(OutcomePending, time.Time{})
}

func (t *Task) UnmarshalJSON(data []byte) error {
	type plain Task
	var aux struct {
		plain
		legacyFlags
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*t = Task(aux.plain)
	t.outcomeState.normalize(aux.legacyFlags)
	return nil
}
