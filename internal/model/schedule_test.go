package model

import (
	"testing"
	"time"
)

func TestParseWeekday(t *testing.T) {
	cases := map[string]Weekday{
		"saturday":  Saturday,
		"Sat":       Saturday,
		" FRIDAY ":  Friday,
		"thu":       Thursday,
		"wednesday": Wednesday,
	}
	for in, want := range cases {
		got, ok := ParseWeekday(in)
		if !ok || got != want {
			t.Errorf("ParseWeekday(%q) = %q, %t", in, got, ok)
		}
	}
	for _, bad := range []string{"", "fr", "someday"} {
		if _, ok := ParseWeekday(bad); ok {
			t.Errorf("ParseWeekday(%q) accepted", bad)
		}
	}
}

func TestWeekdayLabels(t *testing.T) {
	if Weekdays[0] != Saturday || Weekdays[6] != Friday {
		t.Fatalf("display order = %v", Weekdays)
	}
	if WeekdayOf(time.Monday) != Monday {
		t.Error("WeekdayOf(Monday)")
	}
	if Saturday.Short() != "Sat" || Saturday.Title() != "Saturday" {
		t.Errorf("labels = %q %q", Saturday.Short(), Saturday.Title())
	}
}

func TestScheduleCloneIsDeep(t *testing.T) {
	task := Task{Time: "08:00", Title: "Gym"}
	task.SetOutcome(OutcomeCompleted, time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC))
	s := Schedule{Monday: {task}}

	c := s.Clone()
	c[Monday][0].Title = "Run"
	*c[Monday][0].OutcomeAt = time.Time{}

	if s[Monday][0].Title != "Gym" || s[Monday][0].OutcomeAt.IsZero() {
		t.Fatalf("clone shares memory with original: %+v", s[Monday][0])
	}
}
