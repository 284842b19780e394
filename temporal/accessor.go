package temporal

import "fmt"

// Accessor is the read-only view of a temporal value.
type Accessor interface {
	// IsSupported reports whether Value can return f.
	IsSupported(f Field) bool
	// Value returns the value of f, or an error wrapping
	// ErrUnsupportedField.
	Value(f Field) (int64, error)
}

// ZoneAccessor is implemented by values bound to a zone. Zone may return
// nil when the value carries no zone.
type ZoneAccessor interface {
	Zone() Zone
}

// ChronologyAccessor is implemented by values bound to a calendar system.
type ChronologyAccessor interface {
	Chronology() Chronology
}

// Query extracts a result from an accessor.
type Query[T any] func(Accessor) (T, error)

// AsAccessorQuery erases the result type of a query whose results are
// accessors themselves, so that queries of different types can be passed
// together.
func AsAccessorQuery[T Accessor](q Query[T]) Query[Accessor] {
	if q == nil {
		return nil
	}
	return func(a Accessor) (Accessor, error) {
		return q(a)
	}
}

// AsAnyQuery erases the result type of a query.
func AsAnyQuery[T any](q Query[T]) Query[any] {
	if q == nil {
		return nil
	}
	return func(a Accessor) (any, error) {
		return q(a)
	}
}

// ZoneOf returns the zone a value is bound to, or nil. Offsets are not
// consulted.
func ZoneOf(a Accessor) Zone {
	if za, ok := a.(ZoneAccessor); ok {
		return za.Zone()
	}
	return nil
}

// ChronologyOf returns the calendar system of a value. Values without an
// explicit chronology that support EpochDay are ISO dates. It returns nil
// for values without a date.
func ChronologyOf(a Accessor) Chronology {
	if ca, ok := a.(ChronologyAccessor); ok {
		if c := ca.Chronology(); c != nil {
			return c
		}
	}
	if a.IsSupported(EpochDay) {
		return ISO
	}
	return nil
}

func conversionError(target string, a Accessor, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %s from %T: %w", ErrConversion, target, a, err)
	}
	return fmt.Errorf("%w: %s from %T", ErrConversion, target, a)
}

// LocalDateFrom obtains the date of a value through its EpochDay.
func LocalDateFrom(a Accessor) (LocalDate, error) {
	if d, ok := a.(LocalDate); ok {
		return d, nil
	}
	if !a.IsSupported(EpochDay) {
		return LocalDate{}, conversionError("LocalDate", a, nil)
	}
	ed, err := a.Value(EpochDay)
	if err != nil {
		return LocalDate{}, conversionError("LocalDate", a, err)
	}
	return DateOfEpochDay(ed)
}

// LocalTimeFrom obtains the time of day of a value through its NanoOfDay.
func LocalTimeFrom(a Accessor) (LocalTime, error) {
	if t, ok := a.(LocalTime); ok {
		return t, nil
	}
	if !a.IsSupported(NanoOfDay) {
		return LocalTime{}, conversionError("LocalTime", a, nil)
	}
	nod, err := a.Value(NanoOfDay)
	if err != nil {
		return LocalTime{}, conversionError("LocalTime", a, err)
	}
	return TimeOfNanoOfDay(nod)
}

// LocalDateTimeFrom combines LocalDateFrom and LocalTimeFrom.
func LocalDateTimeFrom(a Accessor) (LocalDateTime, error) {
	if dt, ok := a.(LocalDateTime); ok {
		return dt, nil
	}
	d, err := LocalDateFrom(a)
	if err != nil {
		return LocalDateTime{}, err
	}
	t, err := LocalTimeFrom(a)
	if err != nil {
		return LocalDateTime{}, err
	}
	return NewDateTime(d, t), nil
}

// OffsetFrom obtains the offset of a value through OffsetSeconds.
func OffsetFrom(a Accessor) (Offset, error) {
	if !a.IsSupported(OffsetSeconds) {
		return 0, conversionError("Offset", a, nil)
	}
	v, err := a.Value(OffsetSeconds)
	if err != nil {
		return 0, conversionError("Offset", a, err)
	}
	return OffsetOfSeconds(int(v))
}

// ZoneFrom obtains the zone of a value, falling back to its offset.
func ZoneFrom(a Accessor) (Zone, error) {
	if z := ZoneOf(a); z != nil {
		return z, nil
	}
	off, err := OffsetFrom(a)
	if err != nil {
		return nil, conversionError("Zone", a, nil)
	}
	return off, nil
}

// InstantFrom obtains the instant of a value through InstantSeconds and,
// if supported, NanoOfSecond.
func InstantFrom(a Accessor) (Instant, error) {
	if i, ok := a.(Instant); ok {
		return i, nil
	}
	if !a.IsSupported(InstantSeconds) {
		return Instant{}, conversionError("Instant", a, nil)
	}
	sec, err := a.Value(InstantSeconds)
	if err != nil {
		return Instant{}, conversionError("Instant", a, err)
	}
	var nano int64
	if a.IsSupported(NanoOfSecond) {
		if nano, err = a.Value(NanoOfSecond); err != nil {
			return Instant{}, conversionError("Instant", a, err)
		}
	}
	return InstantOf(sec, nano)
}

// ZonedDateTimeFrom obtains a zoned date-time. The instant is used when the
// value supports it; otherwise the local date-time is placed in the zone.
func ZonedDateTimeFrom(a Accessor) (ZonedDateTime, error) {
	if z, ok := a.(ZonedDateTime); ok {
		return z, nil
	}
	zone, err := ZoneFrom(a)
	if err != nil {
		return ZonedDateTime{}, conversionError("ZonedDateTime", a, err)
	}
	if a.IsSupported(InstantSeconds) {
		i, err := InstantFrom(a)
		if err != nil {
			return ZonedDateTime{}, err
		}
		return ZonedAt(i, zone)
	}
	dt, err := LocalDateTimeFrom(a)
	if err != nil {
		return ZonedDateTime{}, conversionError("ZonedDateTime", a, err)
	}
	return ZonedOf(dt, zone), nil
}

// OffsetDateTimeFrom obtains a date-time with offset.
func OffsetDateTimeFrom(a Accessor) (OffsetDateTime, error) {
	if o, ok := a.(OffsetDateTime); ok {
		return o, nil
	}
	off, err := OffsetFrom(a)
	if err != nil {
		return OffsetDateTime{}, conversionError("OffsetDateTime", a, err)
	}
	dt, err := LocalDateTimeFrom(a)
	if err != nil {
		return OffsetDateTime{}, conversionError("OffsetDateTime", a, err)
	}
	return NewOffsetDateTime(dt, off), nil
}

// OffsetTimeFrom obtains a time with offset.
func OffsetTimeFrom(a Accessor) (OffsetTime, error) {
	if o, ok := a.(OffsetTime); ok {
		return o, nil
	}
	off, err := OffsetFrom(a)
	if err != nil {
		return OffsetTime{}, conversionError("OffsetTime", a, err)
	}
	t, err := LocalTimeFrom(a)
	if err != nil {
		return OffsetTime{}, conversionError("OffsetTime", a, err)
	}
	return NewOffsetTime(t, off), nil
}
