package temporal

import (
	"fmt"
	"time"
)

// Chronology is a calendar system. Dates of all chronologies share the
// EpochDay field, so a date can be viewed in any of them.
type Chronology interface {
	// ID names the calendar system.
	ID() string
	// DateOf views an ISO date in this calendar system.
	DateOf(d LocalDate) Accessor
	// Date returns the ISO date of year, month and day given in this
	// calendar system.
	Date(year int, month time.Month, day int) (LocalDate, error)
}

// SameChronology reports whether a and b are both nil or have the same ID.
func SameChronology(a, b Chronology) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID() == b.ID()
}

var (
	// ISO is the proleptic Gregorian calendar.
	ISO Chronology = isoChronology{}
	// ThaiBuddhist is the Gregorian calendar counting years from 543 BCE.
	ThaiBuddhist Chronology = thaiBuddhistChronology{}
)

// ChronologyByID returns the chronology named id.
func ChronologyByID(id string) (Chronology, error) {
	for _, c := range []Chronology{ISO, ThaiBuddhist} {
		if c.ID() == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown chronology %q", ErrInvalidValue, id)
}

type isoChronology struct{}

func (isoChronology) ID() string                  { return "ISO" }
func (isoChronology) String() string              { return "ISO" }
func (isoChronology) DateOf(d LocalDate) Accessor { return d }

func (isoChronology) Date(year int, month time.Month, day int) (LocalDate, error) {
	return NewDate(year, month, day)
}

const thaiYearOffset = 543

type thaiBuddhistChronology struct{}

func (thaiBuddhistChronology) ID() string     { return "ThaiBuddhist" }
func (thaiBuddhistChronology) String() string { return "ThaiBuddhist" }

func (thaiBuddhistChronology) DateOf(d LocalDate) Accessor {
	return thaiBuddhistDate{iso: d}
}

func (thaiBuddhistChronology) Date(year int, month time.Month, day int) (LocalDate, error) {
	return NewDate(year-thaiYearOffset, month, day)
}

// thaiBuddhistDate differs from its ISO date only in the Year field.
type thaiBuddhistDate struct {
	iso LocalDate
}

func (d thaiBuddhistDate) Chronology() Chronology   { return ThaiBuddhist }
func (d thaiBuddhistDate) IsSupported(f Field) bool { return d.iso.IsSupported(f) }

func (d thaiBuddhistDate) Value(f Field) (int64, error) {
	if f == Year {
		return int64(d.iso.year) + thaiYearOffset, nil
	}
	return d.iso.Value(f)
}

func (d thaiBuddhistDate) String() string {
	return fmt.Sprintf("ThaiBuddhist %d-%02d-%02d", d.iso.year+thaiYearOffset, int(d.iso.month), d.iso.day)
}
