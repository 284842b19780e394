// Package unixtime converts between proleptic Gregorian civil dates and
// counts of days or seconds since 1970-01-01T00:00:00Z.
//
// It does not depend on time.Location. Zone handling lives in the callers.
package unixtime

// FromDateTime converts a given date and time to a Unix timestamp, i.e. the number of seconds since 1970-01-01 00:00:00 UTC.
// It ignores leap seconds but respects leap years.
func FromDateTime(year int64, month, day, hour, minute, second int) int64 {
	return EpochDay(year, month, day)*secondsPerDay + int64(hour)*secondsPerHour + int64(minute)*secondsPerMinute + int64(second)
}

// EpochDay returns the number of days between 1970-01-01 and the given date.
// Month and day are not validated.
func EpochDay(year int64, month, day int) int64 {
	d := daysSinceEpoch(year) + daysBeforeMonth[month-1] + (uint64(day) - 1)
	if month > 2 && IsLeapYear(year) {
		d++
	}
	return int64(d - daysSinceEpoch(1970))
}

// FromEpochDay is the inverse of EpochDay.
func FromEpochDay(epochDay int64) (year int64, month, day int) {
	z := epochDay + 719468
	era := z
	if era < 0 {
		era -= 146096
	}
	era /= 146097
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	day = int(doy - (153*mp+2)/5 + 1)
	if mp < 10 {
		month = int(mp + 3)
	} else {
		month = int(mp - 9)
	}
	year = yoe + era*400
	if month <= 2 {
		year++
	}
	return year, month, day
}

// DayOfWeek returns the ISO day of week of the epoch day, 1 = Monday to 7 = Sunday.
func DayOfWeek(epochDay int64) int {
	// 1970-01-01 was a Thursday.
	dow := (epochDay + 3) % 7
	if dow < 0 {
		dow += 7
	}
	return int(dow) + 1
}

// DayOfYear returns the 1-based day of year of the date.
func DayOfYear(year int64, month, day int) int {
	doy := int(daysBeforeMonth[month-1]) + day
	if month > 2 && IsLeapYear(year) {
		doy++
	}
	return doy
}

// IsLeapYear reports whether year is a leap year in the proleptic Gregorian calendar.
func IsLeapYear(year int64) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the length of the month in the given year.
func DaysInMonth(year int64, month int) int {
	switch month {
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	}
	return 31
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int64) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

var daysBeforeMonth = [12]uint64{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

// The constants were copied from time.go in the Go standard library's time package.
const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
	daysPer400Years  = 365*400 + 97
	daysPer100Years  = 365*100 + 24
	daysPer4Years    = 365*4 + 1

	absoluteZeroYear = -292277022399
)

// daysSinceEpoch takes a year and returns the number of days from
// the absolute epoch to the start of that year.
// This is basically (year - zeroYear) * 365, but accounting for leap days.
//
// This function was copied from time.go in the Go standard library time package.
func daysSinceEpoch(year int64) uint64 {
	y := uint64(year - absoluteZeroYear)

	// Add in days from 400-year cycles.
	n := y / 400
	y -= 400 * n
	d := daysPer400Years * n

	// Add in 100-year cycles.
	n = y / 100
	y -= 100 * n
	d += daysPer100Years * n

	// Add in 4-year cycles.
	n = y / 4
	y -= 4 * n
	d += daysPer4Years * n

	// Add in non-leap years.
	n = y
	d += 365 * n

	return d
}
