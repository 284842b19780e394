package format_test

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/ngrash/go-tzfmt/format"
	"github.com/ngrash/go-tzfmt/internal/tztest"
	"github.com/ngrash/go-tzfmt/temporal"
)

// oneDay prints "ONE" followed by the day of month.
func oneDay(t *testing.T) format.Formatter {
	t.Helper()
	f, err := format.NewBuilder().
		AppendLiteral("ONE").
		AppendValueRange(temporal.DayOfMonth, 1, 2, format.SignNotNegative).
		ToFormatterLocale(language.English)
	require.NoError(t, err)
	f, err = f.WithSymbols(format.StandardSymbols)
	require.NoError(t, err)
	return f
}

func mustPattern(t *testing.T, pattern string) format.Formatter {
	t.Helper()
	f, err := format.OfPattern(pattern)
	require.NoError(t, err, "OfPattern(%q)", pattern)
	return f
}

func parseError(t *testing.T, err error) *format.ParseError {
	t.Helper()
	var pe *format.ParseError
	require.ErrorAs(t, err, &pe)
	return pe
}

const longText = "ONEXXX67890123456789012345678901234567890123456789012345678901234567890123456789"

func TestFormatter_WithLocale(t *testing.T) {
	f, err := oneDay(t).WithLocale(language.German)
	require.NoError(t, err)
	assert.Equal(t, language.German, f.Locale())

	_, err = f.WithLocale(language.Und)
	assert.ErrorIs(t, err, format.ErrInvalidArgument)
}

func TestFormatter_WithSymbols(t *testing.T) {
	_, err := oneDay(t).WithSymbols(format.Symbols{})
	assert.ErrorIs(t, err, format.ErrInvalidArgument)

	arabic := format.Symbols{ZeroDigit: '٠', PositiveSign: '+', NegativeSign: '-', DecimalSeparator: '٫'}
	f, err := oneDay(t).WithSymbols(arabic)
	require.NoError(t, err)
	assert.Equal(t, arabic, f.Symbols())

	got, err := f.Format(temporal.MustDate(2008, time.June, 30))
	require.NoError(t, err)
	assert.Equal(t, "ONE٣٠", got)

	u, err := f.ParseUnresolved("ONE٣٠", format.NewParsePosition(0))
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, map[temporal.Field]int64{temporal.DayOfMonth: 30}, u.Fields())
}

func TestFormatter_WithChronology(t *testing.T) {
	f := oneDay(t)
	assert.Nil(t, f.Chronology())
	f = f.WithChronology(temporal.ISO)
	assert.Equal(t, temporal.ISO, f.Chronology())
	f = f.WithChronology(nil)
	assert.Nil(t, f.Chronology())
}

func TestFormatter_WithZone(t *testing.T) {
	paris := tztest.Paris(t)
	f := oneDay(t)
	assert.Nil(t, f.Zone())
	f = f.WithZone(paris)
	assert.Equal(t, "Europe/Paris", f.Zone().ID())
	f = f.WithZone(temporal.UTC)
	assert.Equal(t, temporal.Zone(temporal.UTC), f.Zone())
	f = f.WithZone(nil)
	assert.Nil(t, f.Zone())
}

func TestFormatter_WithZoneProvider(t *testing.T) {
	reg := tztest.Registry(t)
	f := oneDay(t)
	assert.NotNil(t, f.ZoneProvider())
	assert.Same(t, reg, f.WithZoneProvider(reg).ZoneProvider())
	assert.NotSame(t, reg, f.WithZoneProvider(reg).WithZoneProvider(nil).ZoneProvider())
}

func TestFormatter_String(t *testing.T) {
	if got, want := oneDay(t).String(), "'ONE'Value(DayOfMonth,1,2,NotNegative)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestFormatter_FormatOverrides(t *testing.T) {
	paris := tztest.Paris(t)
	plusOne := temporal.MustOffset(1, 0, 0)
	plusThree := temporal.MustOffset(3, 0, 0)

	ld := temporal.MustDate(2008, time.June, 30)
	lt := temporal.MustTime(11, 30, 0, 0)
	ldt := temporal.NewDateTime(ld, lt)
	values := []temporal.Accessor{
		ld,
		lt,
		ldt,
		temporal.NewOffsetTime(lt, plusOne),
		temporal.NewOffsetDateTime(ldt, plusOne),
		temporal.ZonedOf(ldt, paris),
		temporal.Unix(3600),
	}

	base, err := format.NewBuilder().
		OptionalStart().AppendValueWidth(temporal.Year, 4).OptionalEnd().
		AppendLiteral(":").
		OptionalStart().AppendValueWidth(temporal.HourOfDay, 2).OptionalEnd().
		AppendLiteral(":").
		OptionalStart().AppendOffsetID().OptionalStart().AppendZoneRegionID().OptionalEnd().OptionalEnd().
		ToFormatterLocale(language.English)
	require.NoError(t, err)

	tests := []struct {
		name   string
		chrono temporal.Chronology
		zone   temporal.Zone
		// want lists the output for each of values.
		want []string
	}{
		{
			name: "no overrides",
			want: []string{"2008::", ":11:", "2008:11:", ":11:+01:00", "2008:11:+01:00", "2008:11:+02:00Europe/Paris", "::"},
		},
		{
			name: "zone",
			zone: paris,
			want: []string{"2008::", ":11:", "2008:11:", ":11:+01:00", "2008:12:+02:00Europe/Paris", "2008:11:+02:00Europe/Paris", "1970:02:+01:00Europe/Paris"},
		},
		{
			name: "offset",
			zone: plusThree,
			want: []string{"2008::", ":11:", "2008:11:", ":11:+01:00", "2008:13:+03:00", "2008:12:+03:00", "1970:04:+03:00"},
		},
		{
			name:   "chronology",
			chrono: temporal.ThaiBuddhist,
			want:   []string{"2551::", ":11:", "2551:11:", ":11:+01:00", "2551:11:+01:00", "2551:11:+02:00Europe/Paris", "::"},
		},
		{
			name:   "chronology and zone",
			chrono: temporal.ThaiBuddhist,
			zone:   paris,
			want:   []string{"2551::", ":11:", "2551:11:", ":11:+01:00", "2551:12:+02:00Europe/Paris", "2551:11:+02:00Europe/Paris", "1970:02:+01:00Europe/Paris"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := base.WithChronology(tt.chrono).WithZone(tt.zone)
			var got []string
			for _, v := range values {
				s, err := f.Format(v)
				if err != nil {
					t.Fatalf("Format(%v): %v", v, err)
				}
				got = append(got, s)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Format mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatter_Format(t *testing.T) {
	f := oneDay(t)
	got, err := f.Format(temporal.MustDate(2008, time.June, 30))
	require.NoError(t, err)
	assert.Equal(t, "ONE30", got)

	_, err = f.Format(temporal.MustTime(11, 30, 0, 0))
	assert.ErrorIs(t, err, temporal.ErrUnsupportedField)

	_, err = f.Format(nil)
	assert.ErrorIs(t, err, format.ErrInvalidArgument)

	_, err = format.Formatter{}.Format(temporal.MustDate(2008, time.June, 30))
	assert.ErrorIs(t, err, format.ErrInvalidArgument)
}

func TestFormatter_FormatTo(t *testing.T) {
	f := oneDay(t)
	var buf bytes.Buffer
	require.NoError(t, f.FormatTo(temporal.MustDate(2008, time.June, 30), &buf))
	assert.Equal(t, "ONE30", buf.String())

	buf.Reset()
	err := f.FormatTo(temporal.MustTime(11, 30, 0, 0), &buf)
	assert.ErrorIs(t, err, temporal.ErrUnsupportedField)
	assert.Zero(t, buf.Len(), "nothing written on failure")

	assert.ErrorIs(t, f.FormatTo(nil, &buf), format.ErrInvalidArgument)
	assert.ErrorIs(t, f.FormatTo(temporal.MustDate(2008, time.June, 30), nil), format.ErrInvalidArgument)
}

func TestFormatter_Parse(t *testing.T) {
	r, err := oneDay(t).Parse("ONE30")
	require.NoError(t, err)
	assert.True(t, r.IsSupported(temporal.DayOfMonth))
	assert.False(t, r.IsSupported(temporal.HourOfDay))
	v, err := r.Value(temporal.DayOfMonth)
	require.NoError(t, err)
	assert.EqualValues(t, 30, v)
}

func TestFormatter_ParseResolved(t *testing.T) {
	r, err := format.ISODate.Parse("2012-06-30")
	require.NoError(t, err)
	want := map[temporal.Field]int64{temporal.Year: 2012, temporal.MonthOfYear: 6, temporal.DayOfMonth: 30}
	for f, wantV := range want {
		got, err := r.Value(f)
		require.NoError(t, err)
		assert.Equal(t, wantV, got, "field %v", f)
	}
	assert.False(t, r.IsSupported(temporal.HourOfDay))
	d, err := temporal.LocalDateFrom(r)
	require.NoError(t, err)
	assert.True(t, d.Equal(temporal.MustDate(2012, time.June, 30)), "got %v", d)
}

func TestFormatter_ParseAt(t *testing.T) {
	pos := format.NewParsePosition(3)
	r, err := oneDay(t).ParseAt("XXXONE30XXX", pos)
	require.NoError(t, err)
	assert.Equal(t, format.ParsePosition{Index: 8, ErrorIndex: -1}, *pos)
	v, err := r.Value(temporal.DayOfMonth)
	require.NoError(t, err)
	assert.EqualValues(t, 30, v)
	assert.False(t, r.IsSupported(temporal.HourOfDay))

	pos = format.NewParsePosition(3)
	r, err = format.ISODate.ParseAt("XXX2012-06-30XXX", pos)
	require.NoError(t, err)
	assert.Equal(t, 13, pos.Index)
	assert.Equal(t, -1, pos.ErrorIndex)
	d, err := temporal.LocalDateFrom(r)
	require.NoError(t, err)
	assert.Equal(t, "2012-06-30", d.String())
}

func TestFormatter_ParseAtErrors(t *testing.T) {
	_, err := format.ISODate.ParseAt("XXX2012XXX", format.NewParsePosition(3))
	pe := parseError(t, err)
	assert.Equal(t, 7, pe.Index)
	assert.ErrorIs(t, err, format.ErrMismatch)

	_, err = format.ISODate.ParseAt("Text", format.NewParsePosition(5))
	assert.ErrorIs(t, err, format.ErrOutOfBounds)

	_, err = format.ISODate.ParseAt("Text", format.NewParsePosition(-1))
	assert.ErrorIs(t, err, format.ErrOutOfBounds)

	_, err = oneDay(t).ParseAt("Text", nil)
	assert.ErrorIs(t, err, format.ErrInvalidArgument)
}

func TestParseQuery(t *testing.T) {
	f := mustPattern(t, "'ONE'yyyy MM dd")
	got, err := format.ParseQuery(f, "ONE2012 07 27", temporal.LocalDateFrom)
	require.NoError(t, err)
	assert.True(t, got.Equal(temporal.MustDate(2012, time.July, 27)), "got %v", got)

	_, err = format.ParseQuery[temporal.LocalDate](oneDay(t), "30", nil)
	assert.ErrorIs(t, err, format.ErrInvalidArgument)
}

func TestParseQuery_Errors(t *testing.T) {
	f := mustPattern(t, "'ONE'yyyy MM dd")
	tests := []struct {
		text      string
		wantIndex int
		wantErr   error
		wantEcho  string
	}{
		{"ONE2012 07 XX", 11, format.ErrMismatch, "ONE2012 07 XX"},
		{longText, 3, format.ErrMismatch, "ONEXXX6789012345678901234567890123456789012345678901234567890123..."},
		{"ONE2012 07 27SomethingElse", 13, format.ErrTrailingText, "ONE2012 07 27SomethingElse"},
		{"ONE2012 07 32", 0, format.ErrResolve, "ONE2012 07 32"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			_, err := format.ParseQuery(f, tt.text, temporal.LocalDateFrom)
			pe := parseError(t, err)
			assert.Equal(t, tt.text, pe.Text)
			assert.Equal(t, tt.wantIndex, pe.Index)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), "could not be parsed")
			assert.Contains(t, err.Error(), tt.wantEcho)
		})
	}
}

func TestParseQuery_QueryFailure(t *testing.T) {
	_, err := format.ParseQuery(oneDay(t), "ONE30", temporal.LocalDateFrom)
	pe := parseError(t, err)
	assert.Equal(t, 0, pe.Index)
	assert.ErrorIs(t, err, format.ErrResolve)
	assert.ErrorIs(t, err, temporal.ErrConversion)
}

var (
	zonedQuery     = temporal.AsAccessorQuery(temporal.ZonedDateTimeFrom)
	localDTQuery   = temporal.AsAccessorQuery(temporal.LocalDateTimeFrom)
	localDateQuery = temporal.AsAccessorQuery(temporal.LocalDateFrom)
)

func TestFormatter_ParseBest(t *testing.T) {
	got, err := mustPattern(t, "yyyy-MM-dd HH:mm[XXX]").ParseBest("2011-06-30 12:30+03:00", zonedQuery, localDTQuery)
	require.NoError(t, err)
	want := temporal.ZonedOf(temporal.MustDateTime(2011, time.June, 30, 12, 30, 0, 0), temporal.MustOffset(3, 0, 0))
	zdt, ok := got.(temporal.ZonedDateTime)
	require.True(t, ok, "got %T", got)
	assert.True(t, zdt.Equal(want), "got %v, want %v", zdt, want)

	got, err = mustPattern(t, "yyyy-MM-dd[ HH:mm[XXX]]").ParseBest("2011-06-30", zonedQuery, localDateQuery)
	require.NoError(t, err)
	if diff := cmp.Diff(temporal.Accessor(temporal.MustDate(2011, time.June, 30)), got); diff != "" {
		t.Errorf("ParseBest mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatter_ParseBestErrors(t *testing.T) {
	tests := []struct {
		name      string
		f         format.Formatter
		text      string
		wantIndex int
		wantErr   error
		wantEcho  string
	}{
		{"mismatch", mustPattern(t, "yyyy-MM-dd HH:mm[XXX]"), "2011-06-XX", 8, format.ErrMismatch, "XX"},
		{"long text", oneDay(t), longText, 3, format.ErrMismatch, "ONEXXX6789012345678901234567890123456789012345678901234567890123..."},
		{"incomplete", oneDay(t), "ONE30SomethingElse", 5, format.ErrTrailingText, "ONE30SomethingElse"},
		{"no query matched", oneDay(t), "ONE30", 0, format.ErrNoQueryMatched, "ONE30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.f.ParseBest(tt.text, zonedQuery, localDateQuery)
			pe := parseError(t, err)
			assert.Equal(t, tt.text, pe.Text)
			assert.Equal(t, tt.wantIndex, pe.Index)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.wantEcho)
		})
	}
}

func TestFormatter_ParseBestArguments(t *testing.T) {
	f := oneDay(t)
	_, err := f.ParseBest("30")
	assert.ErrorIs(t, err, format.ErrInvalidArgument)
	_, err = f.ParseBest("30", localDateQuery)
	assert.ErrorIs(t, err, format.ErrInvalidArgument)
	_, err = f.ParseBest("30", localDateQuery, nil)
	assert.ErrorIs(t, err, format.ErrInvalidArgument)
}

func TestFormatter_ParseUnresolved(t *testing.T) {
	sameMonth, err := format.NewBuilder().
		AppendValue(temporal.MonthOfYear).
		AppendLiteral("-").
		AppendValue(temporal.MonthOfYear).
		ToFormatter()
	require.NoError(t, err)

	tests := []struct {
		name       string
		f          format.Formatter
		text       string
		start      int
		wantPos    format.ParsePosition
		wantFields map[temporal.Field]int64
	}{
		{
			name:       "trailing text",
			f:          oneDay(t),
			text:       "ONE30XXX",
			wantPos:    format.ParsePosition{Index: 5, ErrorIndex: -1},
			wantFields: map[temporal.Field]int64{temporal.DayOfMonth: 30},
		},
		{
			name:    "mismatch",
			f:       oneDay(t),
			text:    "ONEXXX",
			wantPos: format.ParsePosition{Index: 0, ErrorIndex: 3},
		},
		{
			name:       "duplicate field same value",
			f:          sameMonth,
			text:       "XXX6-6",
			start:      3,
			wantPos:    format.ParsePosition{Index: 6, ErrorIndex: -1},
			wantFields: map[temporal.Field]int64{temporal.MonthOfYear: 6},
		},
		{
			name:    "duplicate field different value",
			f:       sameMonth,
			text:    "XXX6-7",
			start:   3,
			wantPos: format.ParsePosition{Index: 3, ErrorIndex: 5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := format.NewParsePosition(tt.start)
			u, err := tt.f.ParseUnresolved(tt.text, pos)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.wantPos, *pos); diff != "" {
				t.Errorf("position mismatch (-want +got):\n%s", diff)
			}
			if tt.wantFields == nil {
				assert.Nil(t, u)
				return
			}
			require.NotNil(t, u)
			if diff := cmp.Diff(tt.wantFields, u.Fields()); diff != "" {
				t.Errorf("fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatter_ParseUnresolvedArguments(t *testing.T) {
	f := oneDay(t)
	_, err := f.ParseUnresolved("ONE30", nil)
	assert.ErrorIs(t, err, format.ErrInvalidArgument)
	_, err = f.ParseUnresolved("ONE30", format.NewParsePosition(6))
	assert.ErrorIs(t, err, format.ErrOutOfBounds)
}

func TestFormatter_ParseZone(t *testing.T) {
	reg := tztest.Registry(t)
	zoned := format.NewBuilder().AppendZoneID()
	f, err := zoned.ToFormatter()
	require.NoError(t, err)
	f = f.WithZoneProvider(reg)
	insensitive, err := format.NewBuilder().ParseCaseInsensitive().AppendZoneID().ToFormatter()
	require.NoError(t, err)
	insensitive = insensitive.WithZoneProvider(reg)

	tests := []struct {
		f       format.Formatter
		text    string
		wantID  string
		wantEnd int
	}{
		{f, "Europe/Paris", "Europe/Paris", 12},
		{f, "Europe/Paris]", "Europe/Paris", 12},
		{insensitive, "europe/paris", "Europe/Paris", 12},
		{f, "Z", "Z", 1},
		{f, "+01:00", "+01:00", 6},
		{f, "-05:30:15", "-05:30:15", 9},
		{f, "UTC", "UTC", 3},
		{f, "UTC+00:00", "UTC", 9},
		{f, "GMT+01:00", "GMT+01:00", 9},
		{f, "UT", "UT", 2},
		{f, "UTX", "UT", 2},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			pos := format.NewParsePosition(0)
			u, err := tt.f.ParseUnresolved(tt.text, pos)
			require.NoError(t, err)
			require.NotNil(t, u, "error index %d", pos.ErrorIndex)
			require.NotNil(t, u.Zone())
			assert.Equal(t, tt.wantID, u.Zone().ID())
			assert.Equal(t, tt.wantEnd, pos.Index)
		})
	}

	pos := format.NewParsePosition(0)
	u, err := f.ParseUnresolved("Mars/Olympus", pos)
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.Equal(t, 0, pos.ErrorIndex)
}

func TestFormatter_ToFormat(t *testing.T) {
	tf := oneDay(t).ToFormat()
	got, err := tf.Format(temporal.MustDate(2008, time.June, 30))
	require.NoError(t, err)
	assert.Equal(t, "ONE30", got)

	_, err = tf.Format(nil)
	assert.ErrorIs(t, err, format.ErrInvalidArgument)

	_, err = tf.Format("Not a Temporal")
	assert.ErrorIs(t, err, format.ErrInvalidArgument)
	assert.ErrorIs(t, err, format.ErrNotTemporal)
}

func TestTextFormat_ParseObject(t *testing.T) {
	tf := oneDay(t).ToFormat()
	v, err := tf.ParseObject("ONE30")
	require.NoError(t, err)
	a, ok := v.(temporal.Accessor)
	require.True(t, ok, "got %T", v)
	day, err := a.Value(temporal.DayOfMonth)
	require.NoError(t, err)
	assert.EqualValues(t, 30, day)

	_, err = tf.ParseObject("ONEXXX")
	pe := parseError(t, err)
	assert.Equal(t, 3, pe.Index)
	assert.Contains(t, err.Error(), "ONEXXX")

	_, err = tf.ParseObject(longText)
	pe = parseError(t, err)
	assert.Equal(t, 3, pe.Index)
	assert.Equal(t, longText, pe.Text)
	assert.Contains(t, err.Error(), "ONEXXX6789012345678901234567890123456789012345678901234567890123...")
}

func TestTextFormat_ParseObjectAt(t *testing.T) {
	tf := oneDay(t).ToFormat()

	pos := format.NewParsePosition(0)
	v, err := tf.ParseObjectAt("ONE30XXX", pos)
	require.NoError(t, err)
	assert.Equal(t, format.ParsePosition{Index: 5, ErrorIndex: -1}, *pos)
	day, err := v.(temporal.Accessor).Value(temporal.DayOfMonth)
	require.NoError(t, err)
	assert.EqualValues(t, 30, day)

	pos = format.NewParsePosition(0)
	v, err = tf.ParseObjectAt("ONEXXX", pos)
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.Equal(t, format.ParsePosition{Index: 0, ErrorIndex: 3}, *pos)

	for _, start := range []int{6, -1} {
		pos = format.NewParsePosition(start)
		v, err = tf.ParseObjectAt("ONE30", pos)
		require.NoError(t, err)
		assert.Nil(t, v)
		assert.GreaterOrEqual(t, pos.ErrorIndex, 0, "start %d", start)
	}

	_, err = tf.ParseObjectAt("ONE30", nil)
	assert.ErrorIs(t, err, format.ErrInvalidArgument)
}

func TestFormatter_ToFormatQuery(t *testing.T) {
	f := mustPattern(t, "'ONE'yyyy MM dd")
	tf, err := f.ToFormatQuery(temporal.AsAnyQuery(temporal.LocalDateFrom))
	require.NoError(t, err)

	v, err := tf.ParseObject("ONE2012 07 27")
	require.NoError(t, err)
	d, ok := v.(temporal.LocalDate)
	require.True(t, ok, "got %T", v)
	assert.True(t, d.Equal(temporal.MustDate(2012, time.July, 27)))

	_, err = tf.ParseObject("ONE2012 07 32")
	parseError(t, err)

	pos := format.NewParsePosition(0)
	v, err = tf.ParseObjectAt("ONE2012 07 32", pos)
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.Equal(t, 0, pos.ErrorIndex)

	_, err = f.ToFormatQuery(nil)
	assert.ErrorIs(t, err, format.ErrInvalidArgument)
}

func TestParseError_Error(t *testing.T) {
	tests := []struct {
		err  *format.ParseError
		want string
	}{
		{&format.ParseError{Text: "ONEXXX", Index: 3, Err: format.ErrMismatch}, "Text 'ONEXXX' could not be parsed at index 3"},
		{&format.ParseError{Text: "ONE30X", Index: 5, Err: format.ErrTrailingText}, "Text 'ONE30X' could not be parsed, unparsed text found at index 5"},
		{&format.ParseError{Text: "x", Err: errors.New("boom")}, "Text 'x' could not be parsed: boom"},
		{&format.ParseError{Text: strings.Repeat("a", 65), Err: format.ErrMismatch}, "Text '" + strings.Repeat("a", 64) + "...' could not be parsed at index 0"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestFormatter_Concurrent(t *testing.T) {
	f := format.ISOZonedDateTime.WithZoneProvider(tztest.Registry(t))
	zdt := temporal.ZonedOf(temporal.MustDateTime(2008, time.June, 30, 11, 30, 0, 0), tztest.Paris(t))
	const want = "2008-06-30T11:30:00+02:00[Europe/Paris]"

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s, err := f.Format(zdt)
				if err != nil {
					errs <- err
					return
				}
				if s != want {
					errs <- errors.New("unexpected output " + s)
					return
				}
				got, err := format.ParseQuery(f, s, temporal.ZonedDateTimeFrom)
				if err != nil {
					errs <- err
					return
				}
				if !got.Equal(zdt) {
					errs <- errors.New("unexpected value " + got.String())
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
