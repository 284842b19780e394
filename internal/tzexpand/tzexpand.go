// Package tzexpand resolves recurring transition days, such as "last Sunday
// in March" or the POSIX TZ forms Jn, n and Mm.w.d, to calendar dates.
package tzexpand

import (
	"fmt"
	"time"

	"github.com/ngrash/go-tzfmt/internal/unixtime"
)

// DayForm selects how a Day is interpreted.
type DayForm int

const (
	DayFormNum    DayForm = iota // a fixed day of the month, like 5
	DayFormLast                  // the last weekday of the month, like lastSun
	DayFormAfter                 // the first weekday on or after Num, like Sun>=8
	DayFormBefore                // the last weekday on or before Num, like Sun<=25
)

func (f DayForm) String() string {
	switch f {
	case DayFormNum:
		return "Num"
	case DayFormLast:
		return "Last"
	case DayFormAfter:
		return "After"
	case DayFormBefore:
		return "Before"
	default:
		return fmt.Sprintf("<undefined DayForm (%d)>", int(f))
	}
}

// Day is a possibly recurring day within a month.
type Day struct {
	Form    DayForm
	Num     int
	Weekday time.Weekday
}

func NewDayNum(num int) Day                    { return Day{Form: DayFormNum, Num: num} }
func NewDayLast(wd time.Weekday) Day           { return Day{Form: DayFormLast, Weekday: wd} }
func NewDayAfter(num int, wd time.Weekday) Day { return Day{Form: DayFormAfter, Num: num, Weekday: wd} }
func NewDayBefore(num int, wd time.Weekday) Day {
	return Day{Form: DayFormBefore, Num: num, Weekday: wd}
}

// DayOfMonth resolves d within the given month. After and Before forms may
// leave the month, so the resolved year and month are returned as well.
func DayOfMonth(year int64, month time.Month, d Day) (int64, time.Month, int) {
	switch d.Form {
	case DayFormNum:
		return year, month, d.Num
	case DayFormLast:
		return year, month, lastWeekdayOfMonth(year, month, d.Weekday)
	case DayFormAfter:
		return nextWeekday(year, month, d.Num, d.Weekday)
	case DayFormBefore:
		return prevWeekday(year, month, d.Num, d.Weekday)
	}
	panic(fmt.Errorf("invalid DayForm: %v", d.Form))
}

// MonthWeekDay resolves the POSIX Mm.w.d form: day d (0 = Sunday) of week w
// (1 to 5, 5 meaning the last) of month m.
func MonthWeekDay(year int64, month time.Month, week int, weekday time.Weekday) (time.Month, int) {
	if week >= 5 {
		return month, lastWeekdayOfMonth(year, month, weekday)
	}
	_, m, d := DayOfMonth(year, month, NewDayAfter(1+7*(week-1), weekday))
	return m, d
}

// Julian resolves the POSIX Jn form, 1 <= n <= 365, where February 29 is
// never counted.
func Julian(year int64, n int) (time.Month, int) {
	if n > 59 && unixtime.IsLeapYear(year) {
		n++
	}
	return ZeroBased(year, n-1)
}

// ZeroBased resolves the POSIX n form, 0 <= n <= 365, where February 29 is
// counted in leap years.
func ZeroBased(year int64, n int) (time.Month, int) {
	_, m, d := unixtime.FromEpochDay(unixtime.EpochDay(year, 1, 1) + int64(n))
	return time.Month(m), d
}
