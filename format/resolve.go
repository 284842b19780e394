package format

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ngrash/go-tzfmt/temporal"
)

// Parsed is a resolved parse result. Fields that were combined into a date,
// a time or an instant are answered from those; the remaining fields are
// answered as parsed.
type Parsed struct {
	fields  map[temporal.Field]int64
	zone    temporal.Zone
	chrono  temporal.Chronology
	date    temporal.LocalDate
	hasDate bool
	time    temporal.LocalTime
	hasTime bool
	instant int64
	hasInst bool
}

// resolveError wraps a cause in ErrResolve.
func resolveError(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrResolve}, args...)...)
}

// resolve combines the fields of p into a date, time and instant.
func (f Formatter) resolve(p *parsed) (*Parsed, error) {
	r := &Parsed{
		fields: make(map[temporal.Field]int64, len(p.fields)),
		zone:   p.zone,
		chrono: f.chrono,
	}
	if r.chrono == nil {
		r.chrono = temporal.ISO
	}
	if r.zone == nil {
		r.zone = f.zone
	}
	for fld, v := range p.fields {
		if err := fld.Check(v); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrResolve, err)
		}
		r.fields[fld] = v
	}
	if err := r.resolveDate(); err != nil {
		return nil, err
	}
	if err := r.resolveTime(); err != nil {
		return nil, err
	}
	r.resolveInstant()
	return r, nil
}

func (r *Parsed) has(fields ...temporal.Field) bool {
	for _, f := range fields {
		if _, ok := r.fields[f]; !ok {
			return false
		}
	}
	return true
}

func (r *Parsed) take(f temporal.Field) int64 {
	v := r.fields[f]
	delete(r.fields, f)
	return v
}

func (r *Parsed) resolveDate() error {
	var (
		d   temporal.LocalDate
		err error
	)
	switch {
	case r.has(temporal.Year, temporal.MonthOfYear, temporal.DayOfMonth):
		y, m, dom := r.take(temporal.Year), r.take(temporal.MonthOfYear), r.take(temporal.DayOfMonth)
		d, err = r.chrono.Date(int(y), time.Month(m), int(dom))
	case r.has(temporal.Year, temporal.DayOfYear):
		y, doy := r.take(temporal.Year), r.take(temporal.DayOfYear)
		d, err = r.yearDay(int(y), doy)
	case r.has(temporal.EpochDay):
		d, err = temporal.DateOfEpochDay(r.take(temporal.EpochDay))
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrResolve, err)
	}
	r.date, r.hasDate = d, true

	// Leftover date fields must agree with the resolved date.
	view := r.chrono.DateOf(d)
	for _, f := range []temporal.Field{temporal.DayOfWeek, temporal.DayOfYear, temporal.EpochDay, temporal.Year, temporal.MonthOfYear, temporal.DayOfMonth} {
		v, ok := r.fields[f]
		if !ok {
			continue
		}
		want, err := view.Value(f)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrResolve, err)
		}
		if v != want {
			return resolveError("conflict found: %v %d differs from %v %d derived from %v", f, v, f, want, d)
		}
		delete(r.fields, f)
	}
	return nil
}

// yearDay returns the date of day doy in year y of the chronology.
func (r *Parsed) yearDay(y int, doy int64) (temporal.LocalDate, error) {
	if temporal.SameChronology(r.chrono, temporal.ISO) {
		return temporal.DateOfYearDay(y, int(doy))
	}
	first, err := r.chrono.Date(y, time.January, 1)
	if err != nil {
		return temporal.LocalDate{}, err
	}
	d := first.AddDays(doy - 1)
	if got, _ := r.chrono.DateOf(d).Value(temporal.Year); got != int64(y) {
		return temporal.LocalDate{}, fmt.Errorf("%w: day %d of year %d", temporal.ErrInvalidValue, doy, y)
	}
	return d, nil
}

func (r *Parsed) resolveTime() error {
	if r.has(temporal.HourOfDay) {
		parts := [4]int{int(r.take(temporal.HourOfDay))}
		for i, f := range []temporal.Field{temporal.MinuteOfHour, temporal.SecondOfMinute, temporal.NanoOfSecond} {
			if !r.has(f) {
				break
			}
			parts[i+1] = int(r.take(f))
		}
		t, err := temporal.NewTime(parts[0], parts[1], parts[2], parts[3])
		if err != nil {
			return fmt.Errorf("%w: %w", ErrResolve, err)
		}
		r.time, r.hasTime = t, true
	}
	if r.has(temporal.NanoOfDay) {
		nod := r.take(temporal.NanoOfDay)
		if r.hasTime {
			if r.time.NanoOfDay() != nod {
				return resolveError("conflict found: %v %d differs from %v", temporal.NanoOfDay, nod, r.time)
			}
			return nil
		}
		t, err := temporal.TimeOfNanoOfDay(nod)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrResolve, err)
		}
		r.time, r.hasTime = t, true
	}
	return nil
}

// resolveInstant computes InstantSeconds when the date, time and offset
// are known. A parsed offset wins over the zone.
func (r *Parsed) resolveInstant() {
	if !r.hasDate || !r.hasTime {
		return
	}
	dt := temporal.NewDateTime(r.date, r.time)
	var off temporal.Offset
	if v, ok := r.fields[temporal.OffsetSeconds]; ok {
		off = temporal.Offset(v)
	} else if r.zone != nil {
		off = r.zone.OffsetForLocal(dt)
	} else {
		return
	}
	r.instant, r.hasInst = dt.EpochSecond(off), true
}

// Date returns the resolved date.
func (r *Parsed) Date() (temporal.LocalDate, bool) { return r.date, r.hasDate }

// Time returns the resolved time of day.
func (r *Parsed) Time() (temporal.LocalTime, bool) { return r.time, r.hasTime }

// Zone returns the parsed zone, the zone override of the formatter, or nil.
func (r *Parsed) Zone() temporal.Zone { return r.zone }

// Chronology returns the calendar system the fields were resolved in.
func (r *Parsed) Chronology() temporal.Chronology { return r.chrono }

func (r *Parsed) IsSupported(f temporal.Field) bool {
	if _, ok := r.fields[f]; ok {
		return true
	}
	switch {
	case r.hasDate && f.IsDateBased():
		return true
	case r.hasTime && f.IsTimeBased():
		return true
	case r.hasInst && f == temporal.InstantSeconds:
		return true
	}
	return false
}

func (r *Parsed) Value(f temporal.Field) (int64, error) {
	if v, ok := r.fields[f]; ok {
		return v, nil
	}
	switch {
	case r.hasDate && f.IsDateBased():
		return r.chrono.DateOf(r.date).Value(f)
	case r.hasTime && f.IsTimeBased():
		return r.time.Value(f)
	case r.hasInst && f == temporal.InstantSeconds:
		return r.instant, nil
	}
	return 0, fmt.Errorf("%w: %v", temporal.ErrUnsupportedField, f)
}

func (r *Parsed) String() string {
	var sb strings.Builder
	sb.WriteString(formatFields(r.fields))
	sb.WriteByte(',')
	sb.WriteString(r.chrono.ID())
	if r.zone != nil {
		sb.WriteByte(',')
		sb.WriteString(r.zone.ID())
	}
	if r.hasDate || r.hasTime {
		sb.WriteString(" resolved to ")
		switch {
		case r.hasDate && r.hasTime:
			sb.WriteString(temporal.NewDateTime(r.date, r.time).String())
		case r.hasDate:
			sb.WriteString(r.date.String())
		default:
			sb.WriteString(r.time.String())
		}
	}
	return sb.String()
}

// formatFields renders fields in catalogue order.
func formatFields(fields map[temporal.Field]int64) string {
	keys := make([]temporal.Field, 0, len(fields))
	for f := range fields {
		keys = append(keys, f)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	var sb strings.Builder
	sb.WriteByte('{')
	for i, f := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%v=%d", f, fields[f])
	}
	sb.WriteByte('}')
	return sb.String()
}
