package repository

import "routine-tracker/internal/model"

// DefaultRoutine returns the built-in weekly routine used on first start.
func DefaultRoutine() model.Schedule {
	return model.Schedule{
		model.Saturday:  weekdayRoutine(),
		model.Sunday:    weekdayRoutine(),
		model.Monday:    weekdayRoutine(),
		model.Tuesday:   weekdayRoutine(),
		model.Wednesday: weekdayRoutine(),
		model.Thursday:  thursdayRoutine(),
		model.Friday:    fridayRoutine(),
	}
}

func weekdayRoutine() []model.Task {
	return []model.Task{
		seedTask("06:00", 30, "Wake up & Morning Routine", "Wake up, brush teeth, freshen up", model.CategoryPersonal, model.SpecialNone),
		seedTask("06:30", 60, "Exercise & Workout", "Physical exercise and fitness routine", model.CategoryHealth, model.SpecialNone),
		seedTask("07:30", 30, "Breakfast", "Healthy breakfast and coffee", model.CategoryPersonal, model.SpecialNone),
		seedTask("08:00", 540, "University Classes", "Attend university classes (8 AM - 5 PM)", model.CategoryClass, model.SpecialClassTime),
		seedTask("17:00", 30, "Evening Break", "Rest and refresh after classes", model.CategoryPersonal, model.SpecialNone),
		seedTask("17:30", 120, "Web Development Study", "Learn HTML, CSS, JavaScript, React", model.CategoryStudy, model.SpecialNone),
		seedTask("19:30", 45, "Dinner", "Evening meal with family", model.CategoryPersonal, model.SpecialNone),
		seedTask("20:15", 90, "Project Work", "Work on personal coding projects", model.CategoryWork, model.SpecialNone),
		seedTask("21:45", 60, "Reading & Learning", "Read books, articles, or online courses", model.CategoryStudy, model.SpecialNone),
		seedTask("22:45", 30, "Relaxation", "Watch TV, listen to music, or relax", model.CategoryPersonal, model.SpecialNone),
		seedTask("23:15", 15, "Prepare for Tomorrow", "Plan next day, prepare clothes", model.CategoryPersonal, model.SpecialNone),
		seedTask("23:30", 390, "Sleep", "Go to bed for good night sleep", model.CategoryPersonal, model.SpecialNone),
	}
}

func thursdayRoutine() []model.Task {
	w := model.SpecialWeekend
	return []model.Task{
		seedTask("08:00", 60, "Wake up & Morning Routine", "Wake up, brush teeth, freshen up (Weekend)", model.CategoryPersonal, w),
		seedTask("09:00", 90, "Exercise & Workout", "Physical exercise and fitness routine", model.CategoryHealth, w),
		seedTask("10:30", 45, "Breakfast", "Healthy breakfast and coffee", model.CategoryPersonal, w),
		seedTask("11:15", 180, "Web Development Study", "Intensive coding and learning session", model.CategoryStudy, w),
		seedTask("14:15", 45, "Lunch Break", "Lunch and short rest", model.CategoryPersonal, w),
		seedTask("15:00", 180, "Project Work", "Work on personal coding projects", model.CategoryWork, w),
		seedTask("18:00", 120, "Evening Activities", "Hobbies, reading, or personal time", model.CategoryPersonal, w),
		seedTask("20:00", 60, "Dinner", "Evening meal with family", model.CategoryPersonal, w),
		seedTask("21:00", 120, "Relaxation & Entertainment", "Watch movies, play games, or relax", model.CategoryPersonal, w),
		seedTask("23:00", 30, "Prepare for Tomorrow", "Plan next day, prepare clothes", model.CategoryPersonal, w),
		seedTask("23:30", 510, "Sleep", "Go to bed for good night sleep", model.CategoryPersonal, w),
	}
}

func fridayRoutine() []model.Task {
	w := model.SpecialWeekend
	return []model.Task{
		seedTask("08:00", 60, "Wake up & Morning Routine", "Wake up, brush teeth, freshen up (Weekend)", model.CategoryPersonal, w),
		seedTask("09:00", 90, "Exercise & Workout", "Physical exercise and fitness routine", model.CategoryHealth, w),
		seedTask("10:30", 45, "Breakfast", "Healthy breakfast and coffee", model.CategoryPersonal, w),
		seedTask("11:15", 45, "Web Development Study", "Intensive coding and learning session", model.CategoryStudy, w),
		seedTask("12:00", 120, "Jummah Prayer", "Friday Prayer and Religious Ceremony (12:00 PM - 2:00 PM)", model.CategoryReligious, model.SpecialReligiousTime),
		seedTask("14:00", 45, "Lunch Break", "Lunch after prayer", model.CategoryPersonal, w),
		seedTask("14:45", 180, "Project Work", "Work on personal coding projects", model.CategoryWork, w),
		seedTask("17:45", 120, "Evening Activities", "Hobbies, reading, or personal time", model.CategoryPersonal, w),
		seedTask("19:45", 60, "Dinner", "Evening meal with family", model.CategoryPersonal, w),
		seedTask("20:45", 120, "Relaxation & Entertainment", "Watch movies, play games, or relax", model.CategoryPersonal, w),
		seedTask("22:45", 30, "Prepare for Tomorrow", "Plan next day, prepare clothes", model.CategoryPersonal, w),
		seedTask("23:15", 525, "Sleep", "Go to bed for good night sleep", model.CategoryPersonal, w),
	}
}

func seedTask(at string, minutes int, title, description string, category model.Category, special model.Special) model.Task {
	t := model.Task{
		Time:        at,
		Duration:    minutes,
		Title:       title,
		Description: description,
		Type:        category,
		Special:     special,
	}
	t.Reset()
	return t
}

// DefaultSessions returns the built-in study and prayer plan.
func DefaultSessions() []model.Session {
	return []model.Session{
		prayerSession(1, "Fajr Prayer", "05:00", "05:15", "Dawn prayer - First prayer of the day", "fajr"),
		seedSession(2, "Morning Revision", "06:00", "07:00", "Review yesterday's topics and prepare for today", model.CategoryStudy),
		seedSession(3, "Breakfast", "07:00", "07:30", "Healthy breakfast and coffee", model.CategoryMeal),
		seedSession(4, "Mathematics", "07:30", "09:00", "Solve problems and practice concepts", model.CategoryStudy),
		seedSession(5, "Short Break", "09:00", "09:15", "Rest and refresh", model.CategoryBreak),
		seedSession(6, "Physics", "09:15", "10:45", "Theoretical concepts and problem solving", model.CategoryStudy),
		seedSession(7, "Chemistry", "10:45", "12:00", "Organic and inorganic chemistry", model.CategoryStudy),
		prayerSession(8, "Dhuhr Prayer", "12:00", "12:15", "Midday prayer - Second prayer of the day", "dhuhr"),
		seedSession(9, "Lunch Break", "12:15", "12:45", "Lunch and rest", model.CategoryMeal),
		seedSession(10, "English", "12:45", "13:45", "Grammar, vocabulary, and literature", model.CategoryStudy),
		seedSession(11, "Biology", "13:45", "14:45", "Botany and zoology concepts", model.CategoryStudy),
		prayerSession(12, "Asr Prayer", "15:00", "15:15", "Afternoon prayer - Third prayer of the day", "asr"),
		seedSession(13, "Evening Break", "15:15", "15:45", "Rest and light snack", model.CategoryBreak),
		seedSession(14, "Computer Science", "15:45", "16:45", "Programming and theory", model.CategoryStudy),
		prayerSession(15, "Maghrib Prayer", "18:00", "18:15", "Sunset prayer - Fourth prayer of the day", "maghrib"),
		prayerSession(16, "Isha Prayer", "19:30", "19:45", "Night prayer - Fifth prayer of the day", "isha"),
		seedSession(17, "Sleep", "20:00", "22:00", "Power nap for better focus", model.CategorySleep),
	}
}

func seedSession(id int64, name, start, end, description string, category model.Category) model.Session {
	s := model.Session{
		ID:          id,
		Name:        name,
		StartTime:   start,
		EndTime:     end,
		Description: description,
		Type:        category,
	}
	s.Reset()
	return s
}

func prayerSession(id int64, name, start, end, description, prayerType string) model.Session {
	s := seedSession(id, name, start, end, description, model.CategoryPrayer)
	s.IsEditable = true
	s.PrayerType = prayerType
	return s
}
