package service

import (
	"testing"
	"time"
)

func TestBuildDailySpec(t *testing.T) {
	cases := map[string]string{
		"21:00": "0 0 21 * * *",
		"7:05":  "0 5 7 * * *",
		"00:30": "0 30 0 * * *",
	}
	for in, want := range cases {
		got, err := buildDailySpec(in)
		if err != nil || got != want {
			t.Errorf("buildDailySpec(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	for _, bad := range []string{"", "24:00", "9", "ab:cd"} {
		if _, err := buildDailySpec(bad); err == nil {
			t.Errorf("buildDailySpec(%q) accepted", bad)
		}
	}
}

func TestSchedulerRegistersJobs(t *testing.T) {
	s := NewSchedulerService(time.UTC)
	if _, err := s.ScheduleInterval(0, func() {}); err == nil {
		t.Fatal("zero interval accepted")
	}
	if _, err := s.ScheduleInterval(500*time.Millisecond, func() {}); err != nil {
		t.Fatalf("ScheduleInterval: %v", err)
	}
	if _, err := s.ScheduleDaily("21:00", func() {}); err != nil {
		t.Fatalf("ScheduleDaily: %v", err)
	}
	if _, err := s.ScheduleDaily("late", func() {}); err == nil {
		t.Fatal("bad daily time accepted")
	}
	if s.Entries() != 2 {
		t.Fatalf("entries = %d", s.Entries())
	}

	fired := make(chan struct{}, 1)
	if _, err := s.ScheduleInterval(time.Second, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	}); err != nil {
		t.Fatal(err)
	}
	s.Start()
	defer s.Stop()
	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("interval job did not fire")
	}
}
