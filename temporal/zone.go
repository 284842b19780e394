package temporal

import (
	"fmt"
	"strconv"
	"strings"
)

// Zone maps instants to offsets from UTC.
type Zone interface {
	// ID returns the zone identifier, such as "Europe/Paris" or "+02:00".
	ID() string
	// OffsetAt returns the offset in effect at the Unix time sec.
	OffsetAt(sec int64) Offset
	// OffsetForLocal returns the offset a local date-time is interpreted
	// in. In a gap the offset before the gap is returned; in an overlap the
	// earlier offset is returned.
	OffsetForLocal(dt LocalDateTime) Offset
}

// SameZone reports whether a and b are both nil or have the same ID.
func SameZone(a, b Zone) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID() == b.ID()
}

// Offset is a fixed offset from UTC in seconds. It is a Zone of its own
// and an accessor supporting OffsetSeconds.
type Offset int32

// UTC is the zero offset.
const UTC Offset = 0

// OffsetOfSeconds returns the offset of the given total seconds, which must
// lie within ±18 hours.
func OffsetOfSeconds(seconds int) (Offset, error) {
	if err := OffsetSeconds.Check(int64(seconds)); err != nil {
		return 0, err
	}
	return Offset(seconds), nil
}

// OffsetOf returns the offset of hours, minutes and seconds, which must
// share the same sign.
func OffsetOf(hours, minutes, seconds int) (Offset, error) {
	if (hours > 0 && (minutes < 0 || seconds < 0)) || (hours < 0 && (minutes > 0 || seconds > 0)) ||
		(minutes > 0 && seconds < 0) || (minutes < 0 && seconds > 0) {
		return 0, fmt.Errorf("%w: offset components %d:%d:%d have mixed signs", ErrInvalidValue, hours, minutes, seconds)
	}
	if hours < -18 || hours > 18 || minutes < -59 || minutes > 59 || seconds < -59 || seconds > 59 {
		return 0, fmt.Errorf("%w: offset components %d:%d:%d out of range", ErrInvalidValue, hours, minutes, seconds)
	}
	return OffsetOfSeconds(hours*3600 + minutes*60 + seconds)
}

// MustOffset is like OffsetOf but panics on invalid input.
func MustOffset(hours, minutes, seconds int) Offset {
	o, err := OffsetOf(hours, minutes, seconds)
	if err != nil {
		panic(err)
	}
	return o
}

// ParseOffset parses "Z", "+h", "+hh", "+hh:mm", "+hhmm", "+hh:mm:ss"
// and "+hhmmss", with either sign.
func ParseOffset(s string) (Offset, error) {
	if s == "Z" {
		return UTC, nil
	}
	invalid := fmt.Errorf("%w: offset %q", ErrInvalidValue, s)
	if len(s) < 2 || (s[0] != '+' && s[0] != '-') {
		return 0, invalid
	}
	body := s[1:]
	var parts []string
	switch len(body) {
	case 1, 2:
		parts = []string{body}
	case 4:
		parts = []string{body[:2], body[2:]}
	case 5:
		if body[2] != ':' {
			return 0, invalid
		}
		parts = []string{body[:2], body[3:]}
	case 6:
		parts = []string{body[:2], body[2:4], body[4:]}
	case 8:
		if body[2] != ':' || body[5] != ':' {
			return 0, invalid
		}
		parts = strings.Split(body, ":")
	default:
		return 0, invalid
	}
	var hms [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || p[0] == '+' {
			return 0, invalid
		}
		hms[i] = n
	}
	if s[0] == '-' {
		hms[0], hms[1], hms[2] = -hms[0], -hms[1], -hms[2]
	}
	o, err := OffsetOf(hms[0], hms[1], hms[2])
	if err != nil {
		return 0, invalid
	}
	return o, nil
}

// Seconds returns the total offset in seconds.
func (o Offset) Seconds() int { return int(o) }

// ID returns "Z" for UTC and otherwise ±HH:MM, with :SS appended when the
// offset has seconds.
func (o Offset) ID() string {
	if o == 0 {
		return "Z"
	}
	sign := byte('+')
	abs := int(o)
	if abs < 0 {
		sign, abs = '-', -abs
	}
	s := fmt.Sprintf("%c%02d:%02d", sign, abs/3600, abs/60%60)
	if sec := abs % 60; sec != 0 {
		s += fmt.Sprintf(":%02d", sec)
	}
	return s
}

func (o Offset) String() string                      { return o.ID() }
func (o Offset) OffsetAt(int64) Offset               { return o }
func (o Offset) OffsetForLocal(LocalDateTime) Offset { return o }
func (o Offset) IsSupported(f Field) bool            { return f == OffsetSeconds }

func (o Offset) Value(f Field) (int64, error) {
	if f == OffsetSeconds {
		return int64(o), nil
	}
	return 0, unsupported(f)
}

// FixedZone is a zone with a constant offset and its own ID, such as "UTC"
// or "GMT+01:00".
type FixedZone struct {
	id     string
	offset Offset
}

// NewFixedZone returns a zone named id that is always at offset.
func NewFixedZone(id string, offset Offset) FixedZone {
	return FixedZone{id: id, offset: offset}
}

func (z FixedZone) ID() string                          { return z.id }
func (z FixedZone) String() string                      { return z.id }
func (z FixedZone) Offset() Offset                      { return z.offset }
func (z FixedZone) OffsetAt(int64) Offset               { return z.offset }
func (z FixedZone) OffsetForLocal(LocalDateTime) Offset { return z.offset }
