package temporal

import (
	"fmt"
	"strings"
	"time"

	"github.com/ngrash/go-tzfmt/internal/unixtime"
)

// LocalDate is a date in the ISO calendar without time or zone.
type LocalDate struct {
	year  int
	month time.Month
	day   int
}

// NewDate returns the date year-month-day, or an error wrapping
// ErrInvalidValue.
func NewDate(year int, month time.Month, day int) (LocalDate, error) {
	if err := Year.Check(int64(year)); err != nil {
		return LocalDate{}, err
	}
	if err := MonthOfYear.Check(int64(month)); err != nil {
		return LocalDate{}, err
	}
	if dim := unixtime.DaysInMonth(int64(year), int(month)); day < 1 || day > dim {
		return LocalDate{}, fmt.Errorf("%w: date %04d-%02d-%02d", ErrInvalidValue, year, int(month), day)
	}
	return LocalDate{year: year, month: month, day: day}, nil
}

// MustDate is like NewDate but panics on invalid input.
func MustDate(year int, month time.Month, day int) LocalDate {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOfEpochDay returns the date epochDay days after 1970-01-01.
func DateOfEpochDay(epochDay int64) (LocalDate, error) {
	if err := EpochDay.Check(epochDay); err != nil {
		return LocalDate{}, err
	}
	y, m, d := unixtime.FromEpochDay(epochDay)
	return LocalDate{year: int(y), month: time.Month(m), day: d}, nil
}

// DateOfYearDay returns the dayOfYear'th day of year.
func DateOfYearDay(year, dayOfYear int) (LocalDate, error) {
	if err := Year.Check(int64(year)); err != nil {
		return LocalDate{}, err
	}
	if dayOfYear < 1 || dayOfYear > unixtime.DaysInYear(int64(year)) {
		return LocalDate{}, fmt.Errorf("%w: day %d of year %d", ErrInvalidValue, dayOfYear, year)
	}
	return DateOfEpochDay(unixtime.EpochDay(int64(year), 1, 1) + int64(dayOfYear) - 1)
}

func (d LocalDate) Year() int                { return d.year }
func (d LocalDate) Month() time.Month        { return d.month }
func (d LocalDate) Day() int                 { return d.day }
func (d LocalDate) Chronology() Chronology   { return ISO }
func (d LocalDate) Equal(o LocalDate) bool   { return d == o }
func (d LocalDate) Before(o LocalDate) bool  { return d.EpochDay() < o.EpochDay() }
func (d LocalDate) IsZero() bool             { return d == LocalDate{} }
func (d LocalDate) DayOfYear() int           { return unixtime.DayOfYear(int64(d.year), int(d.month), d.day) }
func (d LocalDate) EpochDay() int64          { return unixtime.EpochDay(int64(d.year), int(d.month), d.day) }
func (d LocalDate) IsSupported(f Field) bool { return f.IsDateBased() }

// Weekday returns the day of the week.
func (d LocalDate) Weekday() time.Weekday {
	return time.Weekday(unixtime.DayOfWeek(d.EpochDay()) % 7)
}

func (d LocalDate) Value(f Field) (int64, error) {
	switch f {
	case DayOfWeek:
		return int64(unixtime.DayOfWeek(d.EpochDay())), nil
	case DayOfMonth:
		return int64(d.day), nil
	case DayOfYear:
		return int64(d.DayOfYear()), nil
	case EpochDay:
		return d.EpochDay(), nil
	case MonthOfYear:
		return int64(d.month), nil
	case Year:
		return int64(d.year), nil
	}
	return 0, unsupported(f)
}

// AddDays returns the date n days later.
func (d LocalDate) AddDays(n int64) LocalDate {
	nd, err := DateOfEpochDay(d.EpochDay() + n)
	if err != nil {
		panic(err)
	}
	return nd
}

func (d LocalDate) String() string {
	var sb strings.Builder
	switch y := d.year; {
	case y > 9999:
		fmt.Fprintf(&sb, "+%d", y)
	case y < 0:
		fmt.Fprintf(&sb, "-%04d", -y)
	default:
		fmt.Fprintf(&sb, "%04d", y)
	}
	fmt.Fprintf(&sb, "-%02d-%02d", int(d.month), d.day)
	return sb.String()
}

// LocalTime is a time of day without date or zone.
type LocalTime struct {
	hour, minute, second, nano int
}

// Midnight is 00:00.
var Midnight = LocalTime{}

// NewTime returns the time hour:minute:second.nano, or an error wrapping
// ErrInvalidValue.
func NewTime(hour, minute, second, nano int) (LocalTime, error) {
	for _, c := range []struct {
		f Field
		v int
	}{{HourOfDay, hour}, {MinuteOfHour, minute}, {SecondOfMinute, second}, {NanoOfSecond, nano}} {
		if err := c.f.Check(int64(c.v)); err != nil {
			return LocalTime{}, err
		}
	}
	return LocalTime{hour: hour, minute: minute, second: second, nano: nano}, nil
}

// MustTime is like NewTime but panics on invalid input.
func MustTime(hour, minute, second, nano int) LocalTime {
	t, err := NewTime(hour, minute, second, nano)
	if err != nil {
		panic(err)
	}
	return t
}

// TimeOfNanoOfDay returns the time nanoOfDay nanoseconds after midnight.
func TimeOfNanoOfDay(nanoOfDay int64) (LocalTime, error) {
	if err := NanoOfDay.Check(nanoOfDay); err != nil {
		return LocalTime{}, err
	}
	secs := nanoOfDay / nanosPerSecond
	return LocalTime{
		hour:   int(secs / 3600),
		minute: int(secs / 60 % 60),
		second: int(secs % 60),
		nano:   int(nanoOfDay % nanosPerSecond),
	}, nil
}

func (t LocalTime) Hour() int                { return t.hour }
func (t LocalTime) Minute() int              { return t.minute }
func (t LocalTime) Second() int              { return t.second }
func (t LocalTime) Nano() int                { return t.nano }
func (t LocalTime) Equal(o LocalTime) bool   { return t == o }
func (t LocalTime) IsSupported(f Field) bool { return f.IsTimeBased() }

// SecondOfDay returns the seconds since midnight.
func (t LocalTime) SecondOfDay() int64 {
	return int64(t.hour*3600 + t.minute*60 + t.second)
}

// NanoOfDay returns the nanoseconds since midnight.
func (t LocalTime) NanoOfDay() int64 {
	return t.SecondOfDay()*nanosPerSecond + int64(t.nano)
}

func (t LocalTime) Value(f Field) (int64, error) {
	switch f {
	case NanoOfSecond:
		return int64(t.nano), nil
	case NanoOfDay:
		return t.NanoOfDay(), nil
	case SecondOfMinute:
		return int64(t.second), nil
	case MinuteOfHour:
		return int64(t.minute), nil
	case HourOfDay:
		return int64(t.hour), nil
	}
	return 0, unsupported(f)
}

// String formats the time as HH:mm, adding seconds and fractions only when
// they are non-zero.
func (t LocalTime) String() string {
	s := fmt.Sprintf("%02d:%02d", t.hour, t.minute)
	if t.second == 0 && t.nano == 0 {
		return s
	}
	s += fmt.Sprintf(":%02d", t.second)
	switch {
	case t.nano == 0:
	case t.nano%1_000_000 == 0:
		s += fmt.Sprintf(".%03d", t.nano/1_000_000)
	case t.nano%1000 == 0:
		s += fmt.Sprintf(".%06d", t.nano/1000)
	default:
		s += fmt.Sprintf(".%09d", t.nano)
	}
	return s
}

// LocalDateTime is a date and time without zone.
type LocalDateTime struct {
	date LocalDate
	time LocalTime
}

// NewDateTime combines a date and a time.
func NewDateTime(d LocalDate, t LocalTime) LocalDateTime {
	return LocalDateTime{date: d, time: t}
}

// MustDateTime builds a date-time from its components and panics on
// invalid input.
func MustDateTime(year int, month time.Month, day, hour, minute, second, nano int) LocalDateTime {
	return NewDateTime(MustDate(year, month, day), MustTime(hour, minute, second, nano))
}

// DateTimeOfEpochSecond returns the local date-time at the Unix time sec
// and nanosecond nano seen at offset.
func DateTimeOfEpochSecond(sec int64, nano int, offset Offset) (LocalDateTime, error) {
	local := sec + int64(offset)
	d, err := DateOfEpochDay(floorDiv(local, secondsPerDay))
	if err != nil {
		return LocalDateTime{}, err
	}
	sod := floorMod(local, secondsPerDay)
	t, err := TimeOfNanoOfDay(sod*nanosPerSecond + int64(nano))
	if err != nil {
		return LocalDateTime{}, err
	}
	return NewDateTime(d, t), nil
}

func (dt LocalDateTime) Date() LocalDate             { return dt.date }
func (dt LocalDateTime) Time() LocalTime             { return dt.time }
func (dt LocalDateTime) Chronology() Chronology      { return ISO }
func (dt LocalDateTime) Equal(o LocalDateTime) bool  { return dt == o }
func (dt LocalDateTime) String() string              { return dt.date.String() + "T" + dt.time.String() }
func (dt LocalDateTime) IsSupported(f Field) bool    { return f.IsDateBased() || f.IsTimeBased() }
func (dt LocalDateTime) Before(o LocalDateTime) bool { return dt.compare(o) < 0 }
func (dt LocalDateTime) compare(o LocalDateTime) int {
	if a, b := dt.date.EpochDay(), o.date.EpochDay(); a != b {
		if a < b {
			return -1
		}
		return 1
	}
	a, b := dt.time.NanoOfDay(), o.time.NanoOfDay()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (dt LocalDateTime) Value(f Field) (int64, error) {
	if f.IsTimeBased() {
		return dt.time.Value(f)
	}
	return dt.date.Value(f)
}

// EpochSecond returns the Unix time of dt seen at offset.
func (dt LocalDateTime) EpochSecond(offset Offset) int64 {
	return dt.date.EpochDay()*secondsPerDay + dt.time.SecondOfDay() - int64(offset)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}
