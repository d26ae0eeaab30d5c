package service

import (
	"testing"

	"routine-tracker/internal/model"
)

func TestClockManualOverride(t *testing.T) {
	c := newTestClock(t, "2024-03-15 10:07")

	if got := c.Now().Format("15:04"); got != "10:07" {
		t.Fatalf("Now = %s", got)
	}
	if err := c.SetManual("25:00"); err == nil {
		t.Fatal("invalid manual time accepted")
	}
	if err := c.SetManual("7:30"); err != nil {
		t.Fatalf("SetManual: %v", err)
	}
	if got := c.Now().Format("2006-01-02 15:04"); got != "2024-03-15 07:30" {
		t.Fatalf("manual Now = %s", got)
	}
	if manual, ok := c.Manual(); !ok || manual != "07:30" {
		t.Fatalf("Manual = %q, %t", manual, ok)
	}

	c.ClearManual()
	if _, ok := c.Manual(); ok {
		t.Fatal("manual time still set")
	}
	if got := c.Now().Format("15:04"); got != "10:07" {
		t.Fatalf("Now after clear = %s", got)
	}
}

func TestClockCalendar(t *testing.T) {
	c := newTestClock(t, "2024-03-15 23:59")
	if c.Today() != "2024-03-15" || c.Weekday() != model.Friday {
		t.Fatalf("Today = %s, Weekday = %s", c.Today(), c.Weekday())
	}
	c.set(t, "2024-03-16 00:00")
	if c.Weekday() != model.Saturday {
		t.Fatalf("Weekday = %s", c.Weekday())
	}
}

func TestNewClockZone(t *testing.T) {
	if _, err := NewClock("Not/AZone"); err == nil {
		t.Fatal("unknown zone accepted")
	}
	c, err := NewClock("UTC")
	if err != nil {
		t.Fatalf("NewClock: %v", err)
	}
	if c.Location().String() != "UTC" {
		t.Fatalf("Location = %s", c.Location())
	}
}
