// Package excelfmt compiles the date and time tokens of spreadsheet number
// format codes, such as "yyyy-mm-dd hh:mm:ss", into formatters.
//
// Tokenising is done by github.com/xuri/nfp. Only numeric date and time
// tokens are supported. Name tokens such as "mmm" and elapsed tokens such
// as "[h]" are rejected.
package excelfmt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/nfp"
	"golang.org/x/text/language"

	"github.com/ngrash/go-tzfmt/format"
	"github.com/ngrash/go-tzfmt/temporal"
)

var (
	// ErrUnsupported is returned for tokens that have no formatter
	// equivalent.
	ErrUnsupported = errors.New("unsupported number format token")
	// ErrEmpty is returned for codes without date or time tokens.
	ErrEmpty = errors.New("number format has no date or time tokens")
)

// TwoDigitYearBase is the first year that a two-digit year parses to.
// Spreadsheets map 00 to 29 to the 2000s and 30 to 99 to the 1900s.
const TwoDigitYearBase = 1930

// Compile builds a formatter for code using English symbols.
func Compile(code string) (format.Formatter, error) {
	return CompileLocale(code, language.English)
}

// CompileLocale builds a formatter for code. Only the first section of a
// code is used; codes with several sections are rejected since their
// selection depends on the sign of a number.
func CompileLocale(code string, locale language.Tag) (format.Formatter, error) {
	ps := nfp.NumberFormatParser()
	sections := ps.Parse(code)
	switch {
	case len(sections) == 0:
		return format.Formatter{}, fmt.Errorf("%w: %q", ErrEmpty, code)
	case len(sections) > 1:
		return format.Formatter{}, fmt.Errorf("%w: %d sections in %q", ErrUnsupported, len(sections), code)
	}
	b := format.NewBuilder()
	if err := appendSection(b, sections[0]); err != nil {
		return format.Formatter{}, fmt.Errorf("compile %q: %w", code, err)
	}
	f, err := b.ToFormatterLocale(locale)
	if err != nil {
		return format.Formatter{}, fmt.Errorf("compile %q: %w", code, err)
	}
	return f, nil
}

// appendSection appends the tokens of sec to b.
func appendSection(b *format.Builder, sec nfp.Section) error {
	items := sec.Items
	fields := 0
	lastWasHour := false
	for i := 0; i < len(items); i++ {
		tok := items[i]
		switch tok.TType {
		case nfp.TokenTypeDateTimes:
			v := strings.ToLower(tok.TValue)
			minute := v[0] == 'm' && (lastWasHour || secondFollows(items[i+1:]))
			if err := appendDateTime(b, v, minute); err != nil {
				return err
			}
			lastWasHour = v[0] == 'h'
			fields++
		case nfp.TokenTypeDecimalPoint:
			// A decimal point directly after seconds starts the fraction.
			if i > 0 && isSecond(items[i-1]) && i+1 < len(items) && items[i+1].TType == nfp.TokenTypeZeroPlaceHolder {
				width := len(items[i+1].TValue)
				b.AppendFraction(temporal.NanoOfSecond, width, width, true)
				i++
				continue
			}
			b.AppendLiteral(tok.TValue)
		case nfp.TokenTypeLiteral:
			b.AppendLiteral(tok.TValue)
		case nfp.TokenTypeElapsedDateTimes:
			return fmt.Errorf("%w: elapsed time [%s]", ErrUnsupported, tok.TValue)
		default:
			return fmt.Errorf("%w: %s %q", ErrUnsupported, tok.TType, tok.TValue)
		}
	}
	if fields == 0 {
		return ErrEmpty
	}
	return nil
}

// appendDateTime appends one lower-cased date or time token. minute selects
// the minute reading of m and mm.
func appendDateTime(b *format.Builder, v string, minute bool) error {
	switch v {
	case "yyyy", "yyy":
		b.AppendValueWidth(temporal.Year, 4)
	case "yy", "y":
		b.AppendValueReduced(temporal.Year, 2, 2, TwoDigitYearBase)
	case "m":
		if minute {
			b.AppendValue(temporal.MinuteOfHour)
		} else {
			b.AppendValue(temporal.MonthOfYear)
		}
	case "mm":
		if minute {
			b.AppendValueWidth(temporal.MinuteOfHour, 2)
		} else {
			b.AppendValueWidth(temporal.MonthOfYear, 2)
		}
	case "d":
		b.AppendValue(temporal.DayOfMonth)
	case "dd":
		b.AppendValueWidth(temporal.DayOfMonth, 2)
	case "h":
		b.AppendValue(temporal.HourOfDay)
	case "hh":
		b.AppendValueWidth(temporal.HourOfDay, 2)
	case "s":
		b.AppendValue(temporal.SecondOfMinute)
	case "ss":
		b.AppendValueWidth(temporal.SecondOfMinute, 2)
	default:
		return fmt.Errorf("%w: text token %q", ErrUnsupported, v)
	}
	return nil
}

func isSecond(tok nfp.Token) bool {
	return tok.TType == nfp.TokenTypeDateTimes && strings.EqualFold(tok.TValue[:1], "s")
}

// secondFollows reports whether the next date or time token is a second,
// which makes a preceding m a minute as in "mm:ss".
func secondFollows(items []nfp.Token) bool {
	for _, tok := range items {
		switch tok.TType {
		case nfp.TokenTypeLiteral:
			continue
		case nfp.TokenTypeDateTimes:
			return isSecond(tok)
		}
		return false
	}
	return false
}
