package tzif

import (
	"fmt"
	"strings"
	"time"

	"github.com/ngrash/go-tzfmt/internal/tzexpand"
	"github.com/ngrash/go-tzfmt/internal/unixtime"
)

// DateForm selects the notation of a RuleDate.
type DateForm int

const (
	// JulianNoLeap is the Jn form, 1 <= n <= 365, never counting February 29.
	JulianNoLeap DateForm = iota
	// ZeroBased is the n form, 0 <= n <= 365, counting February 29.
	ZeroBased
	// MonthWeekDay is the Mm.w.d form.
	MonthWeekDay
)

// RuleDate is the date part of a POSIX TZ rule.
type RuleDate struct {
	Form    DateForm
	Day     int // JulianNoLeap and ZeroBased
	Month   time.Month
	Week    int // 1 to 5, 5 meaning the last week
	Weekday time.Weekday
}

func (d RuleDate) resolve(year int64) (time.Month, int) {
	switch d.Form {
	case JulianNoLeap:
		return tzexpand.Julian(year, d.Day)
	case ZeroBased:
		return tzexpand.ZeroBased(year, d.Day)
	default:
		return tzexpand.MonthWeekDay(year, d.Month, d.Week, d.Weekday)
	}
}

// Rule is a parsed POSIX TZ string such as "CET-1CEST,M3.5.0,M10.5.0/3".
type Rule struct {
	Std LocalTimeType
	// DST is nil for zones without daylight saving time.
	DST *LocalTimeType
	// Start and End are the dates DST begins and ends. StartTime is given in
	// standard local time, EndTime in daylight local time, both in seconds.
	Start, End         RuleDate
	StartTime, EndTime int32
}

// ParseTZString parses the POSIX TZ string format used in TZif footers,
// including the RFC8536 extensions for hours in [-167, 167].
func ParseTZString(s string) (Rule, error) {
	p := &tzParser{s: s}
	r, err := p.rule()
	if err != nil {
		return Rule{}, fmt.Errorf("parse TZ string %q: %w", s, err)
	}
	return r, nil
}

type tzParser struct {
	s   string
	pos int
}

func (p *tzParser) done() bool { return p.pos >= len(p.s) }

func (p *tzParser) peek() byte {
	if p.done() {
		return 0
	}
	return p.s[p.pos]
}

func (p *tzParser) rule() (Rule, error) {
	var r Rule
	name, err := p.name()
	if err != nil {
		return r, err
	}
	off, err := p.hms(24)
	if err != nil {
		return r, fmt.Errorf("std offset: %w", err)
	}
	// POSIX offsets count hours west of Greenwich.
	r.Std = LocalTimeType{Offset: -off, Designation: name}
	if p.done() {
		return r, nil
	}

	name, err = p.name()
	if err != nil {
		return r, err
	}
	dst := LocalTimeType{Offset: r.Std.Offset + 3600, DST: true, Designation: name}
	if c := p.peek(); c != ',' && c != 0 {
		off, err := p.hms(24)
		if err != nil {
			return r, fmt.Errorf("dst offset: %w", err)
		}
		dst.Offset = -off
	}
	r.DST = &dst

	r.StartTime, r.EndTime = 7200, 7200
	if p.done() {
		// US rules are the POSIX default.
		r.Start = RuleDate{Form: MonthWeekDay, Month: time.March, Week: 2, Weekday: time.Sunday}
		r.End = RuleDate{Form: MonthWeekDay, Month: time.November, Week: 1, Weekday: time.Sunday}
		return r, nil
	}

	if r.Start, r.StartTime, err = p.transition(); err != nil {
		return r, fmt.Errorf("start: %w", err)
	}
	if r.End, r.EndTime, err = p.transition(); err != nil {
		return r, fmt.Errorf("end: %w", err)
	}
	if !p.done() {
		return r, fmt.Errorf("unexpected trailing text %q", p.s[p.pos:])
	}
	return r, nil
}

func (p *tzParser) name() (string, error) {
	if p.peek() == '<' {
		end := strings.IndexByte(p.s[p.pos:], '>')
		if end < 0 {
			return "", fmt.Errorf("unterminated quoted name at %d", p.pos)
		}
		name := p.s[p.pos+1 : p.pos+end]
		p.pos += end + 1
		if len(name) < 3 {
			return "", fmt.Errorf("name %q too short", name)
		}
		return name, nil
	}
	start := p.pos
	for !p.done() && isAlpha(p.peek()) {
		p.pos++
	}
	if p.pos-start < 3 {
		return "", fmt.Errorf("invalid name at %d", start)
	}
	return p.s[start:p.pos], nil
}

// hms parses [+-]hh[:mm[:ss]] and returns seconds.
func (p *tzParser) hms(maxHours int) (int32, error) {
	sign := int32(1)
	switch p.peek() {
	case '-':
		sign = -1
		p.pos++
	case '+':
		p.pos++
	}
	var parts [3]int
	for i := range parts {
		if i > 0 {
			if p.peek() != ':' {
				break
			}
			p.pos++
		}
		n, ok := p.num()
		if !ok {
			return 0, fmt.Errorf("expected number at %d", p.pos)
		}
		parts[i] = n
	}
	if parts[0] > maxHours || parts[1] > 59 || parts[2] > 59 {
		return 0, fmt.Errorf("value out of range")
	}
	return sign * int32(parts[0]*3600+parts[1]*60+parts[2]), nil
}

func (p *tzParser) num() (int, bool) {
	start, n := p.pos, 0
	for !p.done() && isDigit(p.peek()) && p.pos-start < 3 {
		n = n*10 + int(p.peek()-'0')
		p.pos++
	}
	return n, p.pos > start
}

func (p *tzParser) transition() (RuleDate, int32, error) {
	if p.peek() != ',' {
		return RuleDate{}, 0, fmt.Errorf("expected ',' at %d", p.pos)
	}
	p.pos++

	var d RuleDate
	switch c := p.peek(); {
	case c == 'J':
		p.pos++
		n, ok := p.num()
		if !ok || n < 1 || n > 365 {
			return d, 0, fmt.Errorf("invalid Julian day at %d", p.pos)
		}
		d = RuleDate{Form: JulianNoLeap, Day: n}
	case c == 'M':
		p.pos++
		var f [3]int
		for i := range f {
			if i > 0 {
				if p.peek() != '.' {
					return d, 0, fmt.Errorf("expected '.' at %d", p.pos)
				}
				p.pos++
			}
			n, ok := p.num()
			if !ok {
				return d, 0, fmt.Errorf("expected number at %d", p.pos)
			}
			f[i] = n
		}
		if f[0] < 1 || f[0] > 12 || f[1] < 1 || f[1] > 5 || f[2] > 6 {
			return d, 0, fmt.Errorf("invalid month/week/day %d.%d.%d", f[0], f[1], f[2])
		}
		d = RuleDate{Form: MonthWeekDay, Month: time.Month(f[0]), Week: f[1], Weekday: time.Weekday(f[2])}
	case isDigit(c):
		n, _ := p.num()
		if n > 365 {
			return d, 0, fmt.Errorf("invalid day of year %d", n)
		}
		d = RuleDate{Form: ZeroBased, Day: n}
	default:
		return d, 0, fmt.Errorf("invalid date at %d", p.pos)
	}

	at := int32(7200)
	if p.peek() == '/' {
		p.pos++
		var err error
		if at, err = p.hms(167); err != nil {
			return d, 0, fmt.Errorf("time: %w", err)
		}
	}
	return d, at, nil
}

// Lookup returns the local time type the rule assigns to the Unix time sec.
func (r Rule) Lookup(sec int64) LocalTimeType {
	if r.DST == nil {
		return r.Std
	}
	year, _, _ := unixtime.FromEpochDay(floorDiv(sec+int64(r.Std.Offset), secondsPerDay))
	start := r.transitionAt(year, r.Start, r.StartTime, r.Std.Offset)
	end := r.transitionAt(year, r.End, r.EndTime, r.DST.Offset)

	var dst bool
	if start < end {
		dst = sec >= start && sec < end
	} else {
		// Southern hemisphere: DST spans the new year.
		dst = !(sec >= end && sec < start)
	}
	if dst {
		return *r.DST
	}
	return r.Std
}

func (r Rule) transitionAt(year int64, d RuleDate, at, offset int32) int64 {
	m, day := d.resolve(year)
	return unixtime.EpochDay(year, int(m), day)*secondsPerDay + int64(at) - int64(offset)
}

const secondsPerDay = 86400

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func isAlpha(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
