package services

import (
	"time"

	"team-task-api/internal/models"
)

// WeekBounds returns the Monday..Sunday window containing now, in now's location.
// start is Monday 00:00:00.000 and end is Sunday 23:59:59.999; both are inclusive.
// Sunday belongs to the week that started six days earlier.
func WeekBounds(now time.Time) (start, end time.Time) {
	back := int(now.Weekday()) - 1
	if now.Weekday() == time.Sunday {
		back = 6
	}

	y, m, d := now.Date()
	loc := now.Location()
	start = time.Date(y, m, d-back, 0, 0, 0, 0, loc)
	end = time.Date(y, m, d-back+6, 23, 59, 59, int(999*time.Millisecond), loc)
	return start, end
}

// GroupByWeekday files each task under the weekday of its deadline as seen in loc.
func GroupByWeekday(tasks []models.Task, loc *time.Location) models.TasksByDay {
	var week models.TasksByDay
	for _, t := range tasks {
		week.Add(t.Deadline.In(loc).Weekday(), t)
	}
	return week
}
