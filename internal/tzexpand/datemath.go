package tzexpand

import (
	"time"

	"github.com/ngrash/go-tzfmt/internal/unixtime"
)

// weekdayOf returns the day of the week for a given date.
func weekdayOf(year int64, month time.Month, day int) time.Weekday {
	// ISO numbering has Sunday = 7, time.Weekday has Sunday = 0.
	return time.Weekday(unixtime.DayOfWeek(unixtime.EpochDay(year, int(month), day)) % 7)
}

// lastWeekdayOfMonth finds the last instance of a given weekday in a specific month and year.
func lastWeekdayOfMonth(year int64, month time.Month, weekday time.Weekday) int {
	lastDay := unixtime.DaysInMonth(year, int(month))
	offset := (int(weekdayOf(year, month, lastDay)) - int(weekday) + 7) % 7
	return lastDay - offset
}

// nextWeekday calculates the next occurrence of a weekday on or after a given day,
// rolling over into the next month or year.
func nextWeekday(year int64, month time.Month, day int, weekday time.Weekday) (int64, time.Month, int) {
	diff := (int(weekday) - int(weekdayOf(year, month, day)) + 7) % 7
	next := day + diff
	if dim := unixtime.DaysInMonth(year, int(month)); next > dim {
		next -= dim
		month++
		if month > time.December {
			month = time.January
			year++
		}
	}
	return year, month, next
}

// prevWeekday finds the last occurrence of a weekday on or before a given day,
// rolling back into the previous month or year.
func prevWeekday(year int64, month time.Month, day int, weekday time.Weekday) (int64, time.Month, int) {
	diff := (int(weekdayOf(year, month, day)) - int(weekday) + 7) % 7
	prev := day - diff
	if prev < 1 {
		month--
		if month < time.January {
			month = time.December
			year--
		}
		prev += unixtime.DaysInMonth(year, int(month))
	}
	return year, month, prev
}
