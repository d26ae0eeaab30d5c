package service

import (
	"fmt"
	"sync"
	"time"

	"routine-tracker/internal/model"
)

// DefaultZone is the zone all wall-clock comparisons use unless configured.
const DefaultZone = "Asia/Dhaka"

const dateLayout = "2006-01-02"

// Clock yields "now" in a fixed zone. A manual time of day, when set,
// replaces the real time of day on the current date.
type Clock struct {
	loc    *time.Location
	source func() time.Time

	mu     sync.RWMutex
	manual *int // minutes of day
}

// NewClock returns a clock for the named IANA zone.
func NewClock(zone string) (*Clock, error) {
	if zone == "" {
		zone = DefaultZone
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("load zone %q: %w", zone, err)
	}
	return NewClockAt(loc, time.Now), nil
}

// NewClockAt returns a clock reading from source, which lets callers pin time.
func NewClockAt(loc *time.Location, source func() time.Time) *Clock {
	if loc == nil {
		loc = time.UTC
	}
	if source == nil {
		source = time.Now
	}
	return &Clock{loc: loc, source: source}
}

func (c *Clock) Location() *time.Location {
	return c.loc
}

// Now returns the current instant in the clock's zone, honoring the manual
// override.
func (c *Clock) Now() time.Time {
	now := c.source().In(c.loc)
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.manual == nil {
		return now
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, *c.manual/60, *c.manual%60, 0, 0, c.loc)
}

// SetManual pins the time of day to an HH:MM value.
func (c *Clock) SetManual(value string) error {
	minutes, err := ParseClock(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.manual = &minutes
	c.mu.Unlock()
	return nil
}

// ClearManual returns to the real time of day.
func (c *Clock) ClearManual() {
	c.mu.Lock()
	c.manual = nil
	c.mu.Unlock()
}

// Manual reports the pinned time of day, if any.
func (c *Clock) Manual() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.manual == nil {
		return "", false
	}
	return FormatClock(*c.manual), true
}

// Today returns the current date as YYYY-MM-DD.
func (c *Clock) Today() string {
	return c.Now().Format(dateLayout)
}

// Weekday returns the routine key of the current date.
func (c *Clock) Weekday() model.Weekday {
	return model.WeekdayOf(c.Now().Weekday())
}
