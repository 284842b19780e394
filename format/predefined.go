package format

import (
	"sort"

	"golang.org/x/text/language"

	"github.com/ngrash/go-tzfmt/temporal"
)

// ISOLocalDate is "2011-12-03". Years beyond four digits have a sign.
var ISOLocalDate = mustFormatter(NewBuilder().
	AppendValueRange(temporal.Year, 4, 10, SignExceedsPad).
	AppendLiteral("-").
	AppendValueWidth(temporal.MonthOfYear, 2).
	AppendLiteral("-").
	AppendValueWidth(temporal.DayOfMonth, 2))

// ISOOffsetDate is "2011-12-03+01:00".
var ISOOffsetDate = mustFormatter(NewBuilder().
	ParseCaseInsensitive().
	Append(ISOLocalDate).
	AppendOffsetID())

// ISODate is "2011-12-03" with an optional offset.
var ISODate = mustFormatter(NewBuilder().
	ParseCaseInsensitive().
	Append(ISOLocalDate).
	OptionalStart().AppendOffsetID().OptionalEnd())

// ISOLocalTime is "10:15" with optional seconds and fraction.
var ISOLocalTime = mustFormatter(NewBuilder().
	AppendValueWidth(temporal.HourOfDay, 2).
	AppendLiteral(":").
	AppendValueWidth(temporal.MinuteOfHour, 2).
	OptionalStart().
	AppendLiteral(":").
	AppendValueWidth(temporal.SecondOfMinute, 2).
	OptionalStart().
	AppendFraction(temporal.NanoOfSecond, 0, 9, true).
	OptionalEnd().
	OptionalEnd())

// ISOOffsetTime is "10:15:30+01:00".
var ISOOffsetTime = mustFormatter(NewBuilder().
	ParseCaseInsensitive().
	Append(ISOLocalTime).
	AppendOffsetID())

// ISOTime is "10:15:30" with an optional offset.
var ISOTime = mustFormatter(NewBuilder().
	ParseCaseInsensitive().
	Append(ISOLocalTime).
	OptionalStart().AppendOffsetID().OptionalEnd())

// ISOLocalDateTime is "2011-12-03T10:15:30".
var ISOLocalDateTime = mustFormatter(NewBuilder().
	ParseCaseInsensitive().
	Append(ISOLocalDate).
	AppendLiteral("T").
	Append(ISOLocalTime))

// ISOOffsetDateTime is "2011-12-03T10:15:30+01:00".
var ISOOffsetDateTime = mustFormatter(NewBuilder().
	ParseCaseInsensitive().
	Append(ISOLocalDateTime).
	AppendOffsetID())

// ISOZonedDateTime is "2011-12-03T10:15:30+01:00[Europe/Paris]" with
// an optional zone region.
var ISOZonedDateTime = mustFormatter(NewBuilder().
	Append(ISOOffsetDateTime).
	OptionalStart().
	AppendLiteral("[").
	ParseCaseSensitive().
	AppendZoneRegionID().
	AppendLiteral("]").
	OptionalEnd())

// ISODateTime is "2011-12-03T10:15:30" with an optional offset and
// zone region.
var ISODateTime = mustFormatter(NewBuilder().
	Append(ISOLocalDateTime).
	OptionalStart().
	AppendOffsetID().
	OptionalStart().
	AppendLiteral("[").
	ParseCaseSensitive().
	AppendZoneRegionID().
	AppendLiteral("]").
	OptionalEnd().
	OptionalEnd())

// BasicISODate is "20111203" with an optional offset such as "+0100".
var BasicISODate = mustFormatter(NewBuilder().
	ParseCaseInsensitive().
	AppendValueWidth(temporal.Year, 4).
	AppendValueWidth(temporal.MonthOfYear, 2).
	AppendValueWidth(temporal.DayOfMonth, 2).
	OptionalStart().
	AppendOffset("+HHMMss", "Z").
	OptionalEnd())

var predefined = map[string]Formatter{
	"ISO_LOCAL_DATE":       ISOLocalDate,
	"ISO_OFFSET_DATE":      ISOOffsetDate,
	"ISO_DATE":             ISODate,
	"ISO_LOCAL_TIME":       ISOLocalTime,
	"ISO_OFFSET_TIME":      ISOOffsetTime,
	"ISO_TIME":             ISOTime,
	"ISO_LOCAL_DATE_TIME":  ISOLocalDateTime,
	"ISO_OFFSET_DATE_TIME": ISOOffsetDateTime,
	"ISO_ZONED_DATE_TIME":  ISOZonedDateTime,
	"ISO_DATE_TIME":        ISODateTime,
	"BASIC_ISO_DATE":       BasicISODate,
}

// Predefined returns the predefined formatter with the given constant
// name, such as "ISO_LOCAL_DATE".
func Predefined(name string) (Formatter, bool) {
	f, ok := predefined[name]
	return f, ok
}

// PredefinedNames returns the names accepted by Predefined in sorted order.
func PredefinedNames() []string {
	names := make([]string, 0, len(predefined))
	for name := range predefined {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func mustFormatter(b *Builder) Formatter {
	f, err := b.ToFormatterLocale(language.English)
	if err != nil {
		panic(err)
	}
	return f.WithChronology(temporal.ISO)
}
