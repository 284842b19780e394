package temporal

import "fmt"

// Instant is a point on the UTC time-line.
type Instant struct {
	sec  int64
	nano int
}

// InstantOf returns the instant sec seconds and nano nanoseconds after the
// Unix epoch.
func InstantOf(sec, nano int64) (Instant, error) {
	if err := NanoOfSecond.Check(nano); err != nil {
		return Instant{}, err
	}
	return Instant{sec: sec, nano: int(nano)}, nil
}

// Unix returns the instant sec seconds after the Unix epoch.
func Unix(sec int64) Instant { return Instant{sec: sec} }

func (i Instant) EpochSecond() int64   { return i.sec }
func (i Instant) Nano() int            { return i.nano }
func (i Instant) Equal(o Instant) bool { return i == o }
func (i Instant) IsSupported(f Field) bool {
	return f == InstantSeconds || f == NanoOfSecond
}

func (i Instant) Value(f Field) (int64, error) {
	switch f {
	case InstantSeconds:
		return i.sec, nil
	case NanoOfSecond:
		return int64(i.nano), nil
	}
	return 0, unsupported(f)
}

func (i Instant) String() string {
	dt, err := DateTimeOfEpochSecond(i.sec, i.nano, UTC)
	if err != nil {
		return fmt.Sprintf("Instant(%d.%09d)", i.sec, i.nano)
	}
	return dt.String() + "Z"
}

// OffsetTime is a time of day with an offset.
type OffsetTime struct {
	time   LocalTime
	offset Offset
}

// NewOffsetTime combines a time and an offset.
func NewOffsetTime(t LocalTime, off Offset) OffsetTime {
	return OffsetTime{time: t, offset: off}
}

func (t OffsetTime) Time() LocalTime          { return t.time }
func (t OffsetTime) Offset() Offset           { return t.offset }
func (t OffsetTime) Equal(o OffsetTime) bool  { return t == o }
func (t OffsetTime) String() string           { return t.time.String() + t.offset.ID() }
func (t OffsetTime) IsSupported(f Field) bool { return f.IsTimeBased() || f == OffsetSeconds }

func (t OffsetTime) Value(f Field) (int64, error) {
	if f == OffsetSeconds {
		return int64(t.offset), nil
	}
	return t.time.Value(f)
}

// OffsetDateTime is a date-time with an offset.
type OffsetDateTime struct {
	dt     LocalDateTime
	offset Offset
}

// NewOffsetDateTime combines a date-time and an offset.
func NewOffsetDateTime(dt LocalDateTime, off Offset) OffsetDateTime {
	return OffsetDateTime{dt: dt, offset: off}
}

func (t OffsetDateTime) DateTime() LocalDateTime     { return t.dt }
func (t OffsetDateTime) Offset() Offset              { return t.offset }
func (t OffsetDateTime) Chronology() Chronology      { return ISO }
func (t OffsetDateTime) Equal(o OffsetDateTime) bool { return t == o }
func (t OffsetDateTime) String() string              { return t.dt.String() + t.offset.ID() }
func (t OffsetDateTime) EpochSecond() int64          { return t.dt.EpochSecond(t.offset) }

func (t OffsetDateTime) IsSupported(f Field) bool {
	return t.dt.IsSupported(f) || f == InstantSeconds || f == OffsetSeconds
}

func (t OffsetDateTime) Value(f Field) (int64, error) {
	switch f {
	case InstantSeconds:
		return t.EpochSecond(), nil
	case OffsetSeconds:
		return int64(t.offset), nil
	}
	return t.dt.Value(f)
}

// ZonedDateTime is a date-time in a zone. The offset is resolved from the
// zone when the value is created.
type ZonedDateTime struct {
	dt     LocalDateTime
	offset Offset
	zone   Zone
}

// ZonedOf places dt in zone using the zone's offset for that local
// date-time.
func ZonedOf(dt LocalDateTime, zone Zone) ZonedDateTime {
	return ZonedDateTime{dt: dt, offset: zone.OffsetForLocal(dt), zone: zone}
}

// ZonedAt returns the date-time seen in zone at instant i, or an error
// wrapping ErrInvalidValue if its year is out of range.
func ZonedAt(i Instant, zone Zone) (ZonedDateTime, error) {
	off := zone.OffsetAt(i.sec)
	dt, err := DateTimeOfEpochSecond(i.sec, i.nano, off)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return ZonedDateTime{dt: dt, offset: off, zone: zone}, nil
}

// ZonedOfInstant is like ZonedAt but panics if the year is out of range.
func ZonedOfInstant(i Instant, zone Zone) ZonedDateTime {
	z, err := ZonedAt(i, zone)
	if err != nil {
		panic(err)
	}
	return z
}

func (z ZonedDateTime) DateTime() LocalDateTime { return z.dt }
func (z ZonedDateTime) Offset() Offset          { return z.offset }
func (z ZonedDateTime) Zone() Zone              { return z.zone }
func (z ZonedDateTime) Chronology() Chronology  { return ISO }
func (z ZonedDateTime) EpochSecond() int64      { return z.dt.EpochSecond(z.offset) }

// Instant returns the instant the value represents.
func (z ZonedDateTime) Instant() Instant {
	return Instant{sec: z.EpochSecond(), nano: z.dt.time.nano}
}

// Equal reports whether both values have the same date-time, offset and
// zone ID.
func (z ZonedDateTime) Equal(o ZonedDateTime) bool {
	return z.dt == o.dt && z.offset == o.offset && SameZone(z.zone, o.zone)
}

func (z ZonedDateTime) String() string {
	s := z.dt.String() + z.offset.ID()
	if z.zone != nil && z.zone.ID() != z.offset.ID() {
		s += "[" + z.zone.ID() + "]"
	}
	return s
}

func (z ZonedDateTime) IsSupported(f Field) bool {
	return z.dt.IsSupported(f) || f == InstantSeconds || f == OffsetSeconds
}

func (z ZonedDateTime) Value(f Field) (int64, error) {
	switch f {
	case InstantSeconds:
		return z.EpochSecond(), nil
	case OffsetSeconds:
		return int64(z.offset), nil
	}
	return z.dt.Value(f)
}
