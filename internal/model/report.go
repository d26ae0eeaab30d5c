package model

import (
	"math"
	"time"
)

// ReportEntry is an immutable history row captured when a record is marked
// completed or missed.
type ReportEntry struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Time        string    `json:"time"`
	Duration    int       `json:"duration"`
	Type        Category  `json:"type"`
	Day         Weekday   `json:"day"`
	Status      Status    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Date        string    `json:"date"`
}

// Tally holds per-date counters.
type Tally struct {
	TotalTasks int `json:"totalTasks"`
	Completed  int `json:"completed"`
	Missed     int `json:"missed"`
}

// ReportData is the persisted completion history.
type ReportData struct {
	CompletedTasks []ReportEntry    `json:"completedTasks"`
	MissedTasks    []ReportEntry    `json:"missedTasks"`
	DailyStats     map[string]Tally `json:"dailyStats"`
	MonthlyStats   map[string]Tally `json:"monthlyStats"`
	LastUpdated    *time.Time       `json:"lastUpdated"`
}

// NewReportData returns the empty default history.
func NewReportData() *ReportData {
	return &ReportData{
		CompletedTasks: []ReportEntry{},
		MissedTasks:    []ReportEntry{},
		DailyStats:     map[string]Tally{},
		MonthlyStats:   map[string]Tally{},
	}
}

// Normalize replaces nil collections left by partial blobs.
func (r *ReportData) Normalize() {
	if r.CompletedTasks == nil {
		r.CompletedTasks = []ReportEntry{}
	}
	if r.MissedTasks == nil {
		r.MissedTasks = []ReportEntry{}
	}
	if r.DailyStats == nil {
		r.DailyStats = map[string]Tally{}
	}
	if r.MonthlyStats == nil {
		r.MonthlyStats = map[string]Tally{}
	}
}

// DayStats summarizes a single date.
type DayStats struct {
	Date           string `json:"date"`
	Total          int    `json:"totalTasks"`
	Completed      int    `json:"completed"`
	Missed         int    `json:"missed"`
	CompletionRate int    `json:"completionRate"`
}

// MonthlyReport summarizes every calendar day of a month.
type MonthlyReport struct {
	Month          time.Month `json:"month"`
	Year           int        `json:"year"`
	TotalDays      int        `json:"totalDays"`
	Total          int        `json:"totalTasks"`
	Completed      int        `json:"completedTasks"`
	Missed         int        `json:"missedTasks"`
	CompletionRate int        `json:"completionRate"`
	Days           []DayStats `json:"dailyStats"`
}

// Weeks splits the month into consecutive groups of seven calendar days
// starting at day 1. The last group may be shorter.
func (r MonthlyReport) Weeks() [][]DayStats {
	var weeks [][]DayStats
	for i := 0; i < len(r.Days); i += 7 {
		end := i + 7
		if end > len(r.Days) {
			end = len(r.Days)
		}
		weeks = append(weeks, r.Days[i:end])
	}
	return weeks
}

// CompletionRate returns completed/total as a rounded percentage, or 0 when
// total is 0.
func CompletionRate(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
