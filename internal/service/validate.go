package service

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"routine-tracker/internal/model"
)

// ErrNotFound is returned when a day index or session id does not exist.
var ErrNotFound = errors.New("record not found")

// ValidationError describes user input that must be corrected. Front ends
// show Message and keep the in-progress edit.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

var clockPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):([0-5][0-9])$`)

// ParseClock converts an HH:MM string into minutes since midnight.
func ParseClock(value string) (int, error) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return 0, invalid("time", "invalid time %q, expected HH:MM", value)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	return hour*60 + minute, nil
}

// FormatClock renders minutes since midnight as HH:MM.
func FormatClock(minutes int) string {
	minutes = ((minutes % (24 * 60)) + 24*60) % (24 * 60)
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// TaskInput carries the editable fields of a weekly record.
type TaskInput struct {
	Day         model.Weekday
	Time        string
	Duration    int
	Title       string
	Description string
	Type        model.Category
	Special     model.Special
}

// Validate checks required fields and formats.
func (in TaskInput) Validate() error {
	if _, ok := model.ParseWeekday(string(in.Day)); !ok {
		return invalid("day", "unknown day %q", in.Day)
	}
	if strings.TrimSpace(in.Title) == "" {
		return invalid("title", "title is required")
	}
	if strings.TrimSpace(in.Time) == "" {
		return invalid("time", "time is required")
	}
	if _, err := ParseClock(in.Time); err != nil {
		return err
	}
	if in.Duration <= 0 {
		return invalid("duration", "duration must be a positive number of minutes")
	}
	return nil
}

func (in TaskInput) task() model.Task {
	minutes, _ := ParseClock(in.Time)
	category := in.Type
	if category == "" {
		category = model.CategoryPersonal
	}
	t := model.Task{
		Time:        FormatClock(minutes),
		Duration:    in.Duration,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Type:        category,
		Special:     in.Special,
	}
	t.Reset()
	return t
}

// SessionInput carries the editable fields of a study or prayer session.
type SessionInput struct {
	Name        string
	StartTime   string
	EndTime     string
	Description string
	Type        model.Category
}

// Validate checks required fields and that the session ends after it starts.
func (in SessionInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.StartTime) == "" || strings.TrimSpace(in.EndTime) == "" {
		return invalid("name", "please fill in all required fields")
	}
	start, err := ParseClock(in.StartTime)
	if err != nil {
		return err
	}
	end, err := ParseClock(in.EndTime)
	if err != nil {
		return err
	}
	if start >= end {
		return invalid("endTime", "end time must be after start time")
	}
	return nil
}
