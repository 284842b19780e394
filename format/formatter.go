package format

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"

	"github.com/ngrash/go-tzfmt/temporal"
	"github.com/ngrash/go-tzfmt/zone"
)

// Formatter prints and parses temporal values according to a compiled
// pattern. It is an immutable value: the With methods return modified
// copies that share the pattern, and a Formatter is safe for concurrent use.
//
// The zero Formatter has no pattern; use a Builder, OfPattern or one of the
// predefined formatters.
type Formatter struct {
	root    *composite
	locale  language.Tag
	symbols Symbols
	// chrono and zone override the calendar system and zone of printed
	// values. They are the defaults for parsed values.
	chrono temporal.Chronology
	zone   temporal.Zone
	zones  ZoneProvider
}

// WithLocale returns a copy of f using locale.
func (f Formatter) WithLocale(locale language.Tag) (Formatter, error) {
	if locale == language.Und {
		return Formatter{}, fmt.Errorf("%w: undefined locale", ErrInvalidArgument)
	}
	f.locale = locale
	return f, nil
}

// WithSymbols returns a copy of f using symbols.
func (f Formatter) WithSymbols(symbols Symbols) (Formatter, error) {
	if !symbols.valid() {
		return Formatter{}, fmt.Errorf("%w: incomplete symbols %v", ErrInvalidArgument, symbols)
	}
	f.symbols = symbols
	return f, nil
}

// WithChronology returns a copy of f that prints dates in chrono. A nil
// chrono removes the override.
func (f Formatter) WithChronology(chrono temporal.Chronology) Formatter {
	f.chrono = chrono
	return f
}

// WithZone returns a copy of f that prints instants in zone. A nil zone
// removes the override.
func (f Formatter) WithZone(zone temporal.Zone) Formatter {
	f.zone = zone
	return f
}

// WithZoneProvider returns a copy of f that resolves parsed zone IDs with p.
// A nil p restores zone.Default.
func (f Formatter) WithZoneProvider(p ZoneProvider) Formatter {
	f.zones = p
	return f
}

// Locale returns the locale of f.
func (f Formatter) Locale() language.Tag { return f.locale }

// Symbols returns the number symbols of f.
func (f Formatter) Symbols() Symbols { return f.symbols }

// Chronology returns the chronology override, or nil.
func (f Formatter) Chronology() temporal.Chronology { return f.chrono }

// Zone returns the zone override, or nil.
func (f Formatter) Zone() temporal.Zone { return f.zone }

// ZoneProvider returns the provider used to resolve parsed zone IDs.
func (f Formatter) ZoneProvider() ZoneProvider {
	if f.zones == nil {
		return zone.Default()
	}
	return f.zones
}

// String describes the compiled pattern.
func (f Formatter) String() string {
	if f.root == nil {
		return ""
	}
	s := f.root.String()
	return strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
}

var errNoPattern = fmt.Errorf("%w: formatter has no pattern", ErrInvalidArgument)

// Format prints v.
func (f Formatter) Format(v temporal.Accessor) (string, error) {
	var buf bytes.Buffer
	if err := f.formatBuffer(v, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatTo prints v to w. Nothing is written if printing fails.
func (f Formatter) FormatTo(v temporal.Accessor, w io.Writer) error {
	if w == nil {
		return fmt.Errorf("%w: nil writer", ErrInvalidArgument)
	}
	var buf bytes.Buffer
	if err := f.formatBuffer(v, &buf); err != nil {
		return err
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("write formatted value: %w", err)
	}
	return nil
}

func (f Formatter) formatBuffer(v temporal.Accessor, buf *bytes.Buffer) error {
	if v == nil {
		return fmt.Errorf("%w: nil value", ErrInvalidArgument)
	}
	if f.root == nil {
		return errNoPattern
	}
	adjusted, err := f.adjust(v)
	if err != nil {
		return fmt.Errorf("format %v: %w", v, err)
	}
	ctx := &printContext{value: adjusted, symbols: f.symbols}
	if _, err := f.root.format(ctx, buf); err != nil {
		return fmt.Errorf("format %v: %w", v, err)
	}
	return nil
}

// adjust applies the chronology and zone overrides to v. An override that
// the value cannot honour or that matches the value is ignored.
func (f Formatter) adjust(v temporal.Accessor) (temporal.Accessor, error) {
	chrono, zn := f.chrono, f.zone
	if chrono == nil && zn == nil {
		return v, nil
	}
	valueChrono := temporal.ChronologyOf(v)
	valueZone := temporal.ZoneOf(v)
	if chrono != nil && (!v.IsSupported(temporal.EpochDay) || temporal.SameChronology(chrono, valueChrono)) {
		chrono = nil
	}
	if zn != nil && (!v.IsSupported(temporal.InstantSeconds) || (valueZone != nil && temporal.SameZone(zn, valueZone))) {
		zn = nil
	}
	if chrono == nil && zn == nil {
		return v, nil
	}

	effective := chrono
	if effective == nil {
		effective = valueChrono
	}
	if zn != nil {
		i, err := temporal.InstantFrom(v)
		if err != nil {
			return nil, err
		}
		zdt, err := temporal.ZonedAt(i, zn)
		if err != nil {
			return nil, err
		}
		if effective == nil || temporal.SameChronology(effective, temporal.ISO) {
			return zdt, nil
		}
		return chronoView{base: zdt, date: effective.DateOf(zdt.DateTime().Date()), chrono: effective}, nil
	}
	d, err := temporal.LocalDateFrom(v)
	if err != nil {
		return nil, err
	}
	return chronoView{base: v, date: chrono.DateOf(d), chrono: chrono}, nil
}

// chronoView answers date-based fields from a date in another calendar
// system and all other fields from the underlying value.
type chronoView struct {
	base   temporal.Accessor
	date   temporal.Accessor
	chrono temporal.Chronology
}

func (c chronoView) IsSupported(f temporal.Field) bool {
	if f.IsDateBased() {
		return c.date.IsSupported(f)
	}
	return c.base.IsSupported(f)
}

func (c chronoView) Value(f temporal.Field) (int64, error) {
	if f.IsDateBased() {
		return c.date.Value(f)
	}
	return c.base.Value(f)
}

func (c chronoView) Zone() temporal.Zone { return temporal.ZoneOf(c.base) }

func (c chronoView) Chronology() temporal.Chronology { return c.chrono }

func (c chronoView) String() string {
	return fmt.Sprintf("%v (%v)", c.base, c.chrono)
}
