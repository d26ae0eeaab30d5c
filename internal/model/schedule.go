package model

import (
	"strings"
	"time"
)

// Weekday keys the weekly routine.
type Weekday string

const (
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
)

// Weekdays lists the week in display order, Saturday first.
var Weekdays = []Weekday{Saturday, Sunday, Monday, Tuesday, Wednesday, Thursday, Friday}

var byTimeWeekday = map[time.Weekday]Weekday{
	time.Sunday:    Sunday,
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
}

// WeekdayOf maps a calendar weekday to its routine key.
func WeekdayOf(d time.Weekday) Weekday {
	return byTimeWeekday[d]
}

// ParseWeekday accepts full names and three-letter abbreviations in any case.
func ParseWeekday(raw string) (Weekday, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return "", false
	}
	for _, d := range Weekdays {
		if value == string(d) || (len(value) == 3 && strings.HasPrefix(string(d), value)) {
			return d, true
		}
	}
	return "", false
}

// Short returns the three-letter label, e.g. "Sat".
func (d Weekday) Short() string {
	if len(d) < 3 {
		return string(d)
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:3])
}

// Title returns the capitalized name, e.g. "Saturday".
func (d Weekday) Title() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}

// Schedule maps each weekday to its records. Stored order is not sorted;
// display order is recomputed on every read.
type Schedule map[Weekday][]Task

// Clone returns a deep copy of s.
func (s Schedule) Clone() Schedule {
	out := make(Schedule, len(s))
	for day, tasks := range s {
		cp := make([]Task, len(tasks))
		for i, t := range tasks {
			cp[i] = t
			if t.OutcomeAt != nil {
				at := *t.OutcomeAt
				cp[i].OutcomeAt = &at
			}
		}
		out[day] = cp
	}
	return out
}
