package model

import (
	"fmt"
	"testing"
)

func TestCompletionRate(t *testing.T) {
	cases := []struct {
		completed, total, want int
	}{
		{0, 0, 0},
		{3, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{4, 4, 100},
	}
	for _, tc := range cases {
		if got := CompletionRate(tc.completed, tc.total); got != tc.want {
			t.Errorf("CompletionRate(%d, %d) = %d, want %d", tc.completed, tc.total, got, tc.want)
		}
	}
}

func TestMonthlyReportWeeks(t *testing.T) {
	for _, days := range []int{28, 29, 30, 31} {
		r := MonthlyReport{}
		for d := 1; d <= days; d++ {
			r.Days = append(r.Days, DayStats{Date: fmt.Sprintf("2024-01-%02d", d)})
		}
		weeks := r.Weeks()
		wantWeeks := (days + 6) / 7
		if len(weeks) != wantWeeks {
			t.Fatalf("%d days: %d weeks, want %d", days, len(weeks), wantWeeks)
		}
		if weeks[0][0].Date != "2024-01-01" {
			t.Errorf("first week starts at %s", weeks[0][0].Date)
		}
		last := weeks[len(weeks)-1]
		if want := days - 7*(wantWeeks-1); len(last) != want {
			t.Errorf("%d days: last week has %d days, want %d", days, len(last), want)
		}
	}
}

func TestReportDataNormalize(t *testing.T) {
	r := &ReportData{}
	r.Normalize()
	if r.CompletedTasks == nil || r.MissedTasks == nil || r.DailyStats == nil || r.MonthlyStats == nil {
		t.Fatalf("Normalize left nil fields: %+v", r)
	}
}
