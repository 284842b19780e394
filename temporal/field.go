// Package temporal defines the fields, values and queries that formatters
// read from and parse into.
//
// A value is anything implementing [Accessor]: it reports which fields it
// supports and their numeric values. The concrete types in this package
// (LocalDate, ZonedDateTime, Instant, ...) cover the usual shapes, but
// formatters never depend on them directly.
package temporal

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrUnsupportedField is returned when a value does not support a field.
	ErrUnsupportedField = errors.New("unsupported field")
	// ErrInvalidValue is returned when a field value is out of range or
	// does not form a valid date or time.
	ErrInvalidValue = errors.New("invalid value")
	// ErrConversion is returned by queries that cannot obtain their result
	// from a value.
	ErrConversion = errors.New("cannot convert temporal value")
)

// Field identifies a temporal quantity.
type Field int

const (
	NanoOfSecond Field = iota + 1
	NanoOfDay
	SecondOfMinute
	MinuteOfHour
	HourOfDay
	DayOfWeek
	DayOfMonth
	DayOfYear
	EpochDay
	MonthOfYear
	Year
	InstantSeconds
	OffsetSeconds
)

// Fields lists all fields in declaration order.
var Fields = []Field{
	NanoOfSecond, NanoOfDay, SecondOfMinute, MinuteOfHour, HourOfDay,
	DayOfWeek, DayOfMonth, DayOfYear, EpochDay, MonthOfYear, Year,
	InstantSeconds, OffsetSeconds,
}

func (f Field) String() string {
	switch f {
	case NanoOfSecond:
		return "NanoOfSecond"
	case NanoOfDay:
		return "NanoOfDay"
	case SecondOfMinute:
		return "SecondOfMinute"
	case MinuteOfHour:
		return "MinuteOfHour"
	case HourOfDay:
		return "HourOfDay"
	case DayOfWeek:
		return "DayOfWeek"
	case DayOfMonth:
		return "DayOfMonth"
	case DayOfYear:
		return "DayOfYear"
	case EpochDay:
		return "EpochDay"
	case MonthOfYear:
		return "MonthOfYear"
	case Year:
		return "Year"
	case InstantSeconds:
		return "InstantSeconds"
	case OffsetSeconds:
		return "OffsetSeconds"
	default:
		return fmt.Sprintf("<undefined Field (%d)>", int(f))
	}
}

// ValueRange is the inclusive range of valid values of a field.
type ValueRange struct {
	Min, Max int64
}

// IsValid reports whether v lies within the range.
func (r ValueRange) IsValid(v int64) bool {
	return v >= r.Min && v <= r.Max
}

const (
	// MinYear and MaxYear bound the Year field.
	MinYear = -999_999_999
	MaxYear = 999_999_999

	nanosPerSecond = 1_000_000_000
	nanosPerDay    = 86400 * nanosPerSecond
	secondsPerDay  = 86400

	// maxOffset is 18 hours in seconds.
	maxOffset = 18 * 3600
)

// Range returns the valid values of the field.
func (f Field) Range() ValueRange {
	switch f {
	case NanoOfSecond:
		return ValueRange{0, nanosPerSecond - 1}
	case NanoOfDay:
		return ValueRange{0, nanosPerDay - 1}
	case SecondOfMinute, MinuteOfHour:
		return ValueRange{0, 59}
	case HourOfDay:
		return ValueRange{0, 23}
	case DayOfWeek:
		return ValueRange{1, 7}
	case DayOfMonth:
		return ValueRange{1, 31}
	case DayOfYear:
		return ValueRange{1, 366}
	case EpochDay:
		return ValueRange{-365243219162, 365241780471}
	case MonthOfYear:
		return ValueRange{1, 12}
	case Year:
		return ValueRange{MinYear, MaxYear}
	case InstantSeconds:
		return ValueRange{math.MinInt64, math.MaxInt64}
	case OffsetSeconds:
		return ValueRange{-maxOffset, maxOffset}
	default:
		return ValueRange{}
	}
}

// Check returns an error wrapping ErrInvalidValue if v is out of range.
func (f Field) Check(v int64) error {
	if r := f.Range(); !r.IsValid(v) {
		return fmt.Errorf("%w: %v %d is not in range %d to %d", ErrInvalidValue, f, v, r.Min, r.Max)
	}
	return nil
}

// IsDateBased reports whether the field belongs to the date part of a value.
func (f Field) IsDateBased() bool {
	switch f {
	case DayOfWeek, DayOfMonth, DayOfYear, EpochDay, MonthOfYear, Year:
		return true
	}
	return false
}

// IsTimeBased reports whether the field belongs to the time-of-day part of a value.
func (f Field) IsTimeBased() bool {
	switch f {
	case NanoOfSecond, NanoOfDay, SecondOfMinute, MinuteOfHour, HourOfDay:
		return true
	}
	return false
}

func unsupported(f Field) error {
	return fmt.Errorf("%w: %v", ErrUnsupportedField, f)
}
