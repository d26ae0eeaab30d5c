package service

import (
	"sort"
	"time"

	"routine-tracker/internal/model"
)

// TaskView is a weekly record with its derived status and window. Index is
// the record's position in the stored day slice.
type TaskView struct {
	Index  int
	Task   model.Task
	Status model.Status
	Start  time.Time
	End    time.Time
}

// SessionView is a study session with its derived status and window.
type SessionView struct {
	Session model.Session
	Status  model.Status
	Start   time.Time
	End     time.Time
}

// at places minutes-of-day on the calendar date of day.
func at(day time.Time, minutes int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, day.Location())
}

// TaskWindow returns the record's start on the date of day and its end
// duration minutes later. Windows that run past midnight end on the next
// date. Malformed times start at midnight.
func TaskWindow(task model.Task, day time.Time) (time.Time, time.Time) {
	minutes, err := ParseClock(task.Time)
	if err != nil {
		minutes = 0
	}
	start := at(day, minutes)
	return start, start.Add(time.Duration(task.Duration) * time.Minute)
}

// SessionWindow returns the session's start and end on the date of day. An
// end at or before the start is taken to be on the following date.
func SessionWindow(session model.Session, day time.Time) (time.Time, time.Time) {
	startMin, err := ParseClock(session.StartTime)
	if err != nil {
		startMin = 0
	}
	start := at(day, startMin)
	endMin, err := ParseClock(session.EndTime)
	if err != nil {
		return start, start
	}
	end := at(day, endMin)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end
}

// TaskStatus derives a weekly record's status from its outcome only.
func TaskStatus(task model.Task) model.Status {
	switch {
	case task.Outcome == model.OutcomeCompleted:
		return model.StatusCompleted
	case task.Outcome.Missed():
		return model.StatusMissed
	default:
		return model.StatusPending
	}
}

// SessionStatus derives a session's status from its outcome and the time.
func SessionStatus(session model.Session, now time.Time) model.Status {
	switch {
	case session.Outcome == model.OutcomeCompleted:
		return model.StatusCompleted
	case session.Outcome.Missed():
		return model.StatusMissed
	}
	start, end := SessionWindow(session, now)
	switch {
	case !now.Before(start) && !now.After(end):
		return model.StatusCurrent
	case now.After(end):
		return model.StatusOverdue
	default:
		return model.StatusUpcoming
	}
}

func statusPriority(s model.Status) int {
	switch s {
	case model.StatusPending:
		return 1
	case model.StatusCompleted:
		return 2
	case model.StatusMissed:
		return 3
	default:
		return 6
	}
}

// SortTasks derives every record's status and returns the display order:
// pending, then completed, both by start time, then missed with the most
// recently ended first.
func SortTasks(tasks []model.Task, now time.Time) []TaskView {
	views := make([]TaskView, len(tasks))
	for i, t := range tasks {
		start, end := TaskWindow(t, now)
		views[i] = TaskView{Index: i, Task: t, Status: TaskStatus(t), Start: start, End: end}
	}
	SortTaskViews(views)
	return views
}

// SortTaskViews orders views in place. The order is stable.
func SortTaskViews(views []TaskView) {
	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i], views[j]
		pa, pb := statusPriority(a.Status), statusPriority(b.Status)
		if pa != pb {
			return pa < pb
		}
		if pa == 3 {
			return a.End.After(b.End)
		}
		return a.Start.Before(b.Start)
	})
}

// SortSessions derives every session's status and orders them by start time.
func SortSessions(sessions []model.Session, now time.Time) []SessionView {
	views := make([]SessionView, len(sessions))
	for i, s := range sessions {
		start, end := SessionWindow(s, now)
		views[i] = SessionView{Session: s, Status: SessionStatus(s, now), Start: start, End: end}
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Start.Before(views[j].Start)
	})
	return views
}
