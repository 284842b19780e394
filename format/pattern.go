package format

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ngrash/go-tzfmt/temporal"
)

// OfPattern compiles a pattern string with the default locale.
func OfPattern(pattern string) (Formatter, error) {
	return NewBuilder().AppendPattern(pattern).ToFormatter()
}

// AppendPattern appends the elements described by pattern.
//
//	y, u    year; yy is the two-digit year based at 2000, yyyy and longer
//	        add a sign beyond the width
//	M       month of year, M or MM
//	d       day of month, d or dd
//	D       day of year, D to DDD
//	H m s   hour of day, minute of hour, second of minute; one or two letters
//	S       fraction of second, one digit per letter
//	n N     nano of second, nano of day
//	X x Z   offset, see below
//	VV      zone ID
//	'text'  literal text; '' is a single quote
//	[ ]     optional section
//
// X prints "Z" for zero and x and Z print zeros. X and x take one to five
// letters for +HHmm, +HHMM, +HH:MM, +HHMMss and +HH:MM:ss. Z takes one to
// three letters for +HHMM, or five for +HH:MM:ss.
//
// Other ASCII letters are reserved; letters that name text fields are
// rejected because no locale tables are available. All other characters
// are literals, except '#', '{' and '}', which are reserved.
func (b *Builder) AppendPattern(pattern string) *Builder {
	for pos := 0; pos < len(pattern); pos++ {
		c := pattern[pos]
		switch {
		case isPatternLetter(c):
			start := pos
			for pos+1 < len(pattern) && pattern[pos+1] == c {
				pos++
			}
			b.appendLetters(c, pos-start+1)
		case c == '\'':
			start := pos
			pos++
			for ; pos < len(pattern); pos++ {
				if pattern[pos] == '\'' {
					if pos+1 < len(pattern) && pattern[pos+1] == '\'' {
						pos++
					} else {
						break
					}
				}
			}
			if pos >= len(pattern) {
				return b.failPattern("pattern ends with an incomplete string literal: %q", pattern)
			}
			lit := pattern[start+1 : pos]
			if lit == "" {
				b.AppendLiteral("'")
			} else {
				b.AppendLiteral(strings.ReplaceAll(lit, "''", "'"))
			}
		case c == '[':
			b.OptionalStart()
		case c == ']':
			if b.active.parent == nil {
				return b.failPattern("pattern %q has an unmatched ']'", pattern)
			}
			b.OptionalEnd()
		case c == '{' || c == '}' || c == '#':
			return b.failPattern("pattern %q includes reserved character %q", pattern, c)
		default:
			_, size := utf8.DecodeRuneInString(pattern[pos:])
			b.AppendLiteral(pattern[pos : pos+size])
			pos += size - 1
		}
	}
	return b
}

func (b *Builder) failPattern(format string, args ...any) *Builder {
	b.errs = append(b.errs, fmt.Errorf("%w: "+format, append([]any{ErrPattern}, args...)...))
	return b
}

func isPatternLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func (b *Builder) appendLetters(c byte, count int) {
	switch c {
	case 'y', 'u':
		switch {
		case count == 2:
			b.AppendValueReduced(temporal.Year, 2, 2, 2000)
		case count < 4:
			b.AppendValueRange(temporal.Year, count, maxWidth, SignNormal)
		default:
			b.AppendValueRange(temporal.Year, count, maxWidth, SignExceedsPad)
		}
	case 'M':
		b.appendShortNumber(c, temporal.MonthOfYear, count)
	case 'd':
		b.appendShortNumber(c, temporal.DayOfMonth, count)
	case 'H':
		b.appendShortNumber(c, temporal.HourOfDay, count)
	case 'm':
		b.appendShortNumber(c, temporal.MinuteOfHour, count)
	case 's':
		b.appendShortNumber(c, temporal.SecondOfMinute, count)
	case 'D':
		switch count {
		case 1:
			b.AppendValue(temporal.DayOfYear)
		case 2:
			b.AppendValueRange(temporal.DayOfYear, 2, 3, SignNotNegative)
		case 3:
			b.AppendValueWidth(temporal.DayOfYear, 3)
		default:
			b.failPattern("too many pattern letters: %c", c)
		}
	case 'S':
		b.AppendFraction(temporal.NanoOfSecond, count, count, false)
	case 'n':
		b.appendNano(temporal.NanoOfSecond, count)
	case 'N':
		b.appendNano(temporal.NanoOfDay, count)
	case 'X':
		if count > 5 {
			b.failPattern("too many pattern letters: %c", c)
			return
		}
		b.AppendOffset(offsetPatterns[offsetLetterKind(count)], "Z")
	case 'x':
		if count > 5 {
			b.failPattern("too many pattern letters: %c", c)
			return
		}
		zero := "+00:00"
		switch {
		case count == 1:
			zero = "+00"
		case count%2 == 0:
			zero = "+0000"
		}
		b.AppendOffset(offsetPatterns[offsetLetterKind(count)], zero)
	case 'Z':
		switch {
		case count < 4:
			b.AppendOffset("+HHMM", "+0000")
		case count == 5:
			b.AppendOffset("+HH:MM:ss", "Z")
		default:
			b.failPattern("pattern letter count %d of %c is not supported", count, c)
		}
	case 'V':
		if count != 2 {
			b.failPattern("pattern letter count must be 2: %c", c)
			return
		}
		b.AppendZoneID()
	case 'G', 'E', 'e', 'c', 'L', 'Q', 'q', 'a', 'z', 'O', 'w', 'W', 'Y', 'F', 'A', 'B', 'g', 'v':
		b.failPattern("pattern letter %c needs locale text or week data, which is not available", c)
	case 'h', 'K', 'k':
		b.failPattern("pattern letter %c needs a clock-hour or am/pm field, which is not supported", c)
	default:
		b.failPattern("unknown pattern letter: %c", c)
	}
}

// appendShortNumber handles the one or two letter numeric fields.
func (b *Builder) appendShortNumber(c byte, f temporal.Field, count int) {
	switch count {
	case 1:
		b.AppendValue(f)
	case 2:
		b.AppendValueWidth(f, 2)
	default:
		b.failPattern("too many pattern letters: %c", c)
	}
}

func (b *Builder) appendNano(f temporal.Field, count int) {
	if count == 1 {
		b.AppendValue(f)
		return
	}
	b.AppendValueRange(f, count, maxWidth, SignNotNegative)
}

// offsetLetterKind maps the count of X or x letters to an offset layout.
func offsetLetterKind(count int) int {
	if count == 1 {
		return 1
	}
	return count + 1
}
