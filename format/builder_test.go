package format_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/ngrash/go-tzfmt/format"
	"github.com/ngrash/go-tzfmt/temporal"
)

// fields is an accessor over a fixed set of field values.
type fields map[temporal.Field]int64

func (m fields) IsSupported(f temporal.Field) bool {
	_, ok := m[f]
	return ok
}

func (m fields) Value(f temporal.Field) (int64, error) {
	if v, ok := m[f]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("%w: %v", temporal.ErrUnsupportedField, f)
}

func build(t *testing.T, b *format.Builder) format.Formatter {
	t.Helper()
	f, err := b.ToFormatterLocale(language.English)
	require.NoError(t, err)
	return f
}

func TestBuilder_String(t *testing.T) {
	plain, err := format.NewBuilder().AppendValue(temporal.Year).ToFormatter()
	require.NoError(t, err)

	tests := []struct {
		name string
		b    *format.Builder
		want string
	}{
		{"value", format.NewBuilder().AppendValue(temporal.DayOfMonth), "Value(DayOfMonth)"},
		{"fixed width", format.NewBuilder().AppendValueWidth(temporal.DayOfMonth, 2), "Value(DayOfMonth,2)"},
		{"range", format.NewBuilder().AppendValueRange(temporal.DayOfMonth, 1, 2, format.SignNormal), "Value(DayOfMonth,1,2,Normal)"},
		{"range of fixed width", format.NewBuilder().AppendValueRange(temporal.DayOfMonth, 2, 2, format.SignNotNegative), "Value(DayOfMonth,2)"},
		{"reduced", format.NewBuilder().AppendValueReduced(temporal.Year, 2, 2, 2000), "ReducedValue(Year,2,2,2000)"},
		{"fraction", format.NewBuilder().AppendFraction(temporal.NanoOfSecond, 0, 9, true), "Fraction(NanoOfSecond,0,9,DecimalPoint)"},
		{"offset", format.NewBuilder().AppendOffset("+HH:MM", "Z"), "Offset(+HH:MM,'Z')"},
		{"offset id", format.NewBuilder().AppendOffsetID(), "Offset(+HH:MM:ss,'Z')"},
		{"zone id", format.NewBuilder().AppendZoneID(), "ZoneId()"},
		{"zone region id", format.NewBuilder().AppendZoneRegionID(), "ZoneRegionId()"},
		{"literal", format.NewBuilder().AppendLiteral("a'b"), "'a''b'"},
		{"empty literal", format.NewBuilder().AppendLiteral(""), ""},
		{"case", format.NewBuilder().ParseCaseInsensitive().ParseCaseSensitive(), "ParseCaseSensitive(false)ParseCaseSensitive(true)"},
		{"optional", format.NewBuilder().OptionalStart().AppendValue(temporal.Year).OptionalEnd(), "[Value(Year)]"},
		{"empty optional", format.NewBuilder().OptionalStart().OptionalEnd(), ""},
		{"nested optional", format.NewBuilder().AppendValue(temporal.Year).OptionalStart().AppendLiteral("-").OptionalStart().AppendValue(temporal.MonthOfYear).OptionalEnd().OptionalEnd(), "Value(Year)['-'[Value(MonthOfYear)]]"},
		{"append", format.NewBuilder().Append(plain), "(Value(Year))"},
		{"append optional", format.NewBuilder().AppendOptional(plain), "[Value(Year)]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := build(t, tt.b).String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuilder_Errors(t *testing.T) {
	tests := []struct {
		name    string
		b       *format.Builder
		wantErr error
	}{
		{"width zero", format.NewBuilder().AppendValueWidth(temporal.Year, 0), format.ErrInvalidArgument},
		{"width too large", format.NewBuilder().AppendValueWidth(temporal.Year, 20), format.ErrInvalidArgument},
		{"range inverted", format.NewBuilder().AppendValueRange(temporal.Year, 3, 2, format.SignNormal), format.ErrInvalidArgument},
		{"unknown sign style", format.NewBuilder().AppendValueRange(temporal.Year, 1, 2, format.SignStyle(42)), format.ErrInvalidArgument},
		{"reduced width", format.NewBuilder().AppendValueReduced(temporal.Year, 11, 11, 2000), format.ErrInvalidArgument},
		{"reduced base out of range", format.NewBuilder().AppendValueReduced(temporal.MonthOfYear, 2, 2, 0), format.ErrInvalidArgument},
		{"fraction width", format.NewBuilder().AppendFraction(temporal.NanoOfSecond, 0, 10, false), format.ErrInvalidArgument},
		{"fraction of unbounded field", format.NewBuilder().AppendFraction(temporal.InstantSeconds, 0, 9, false), format.ErrInvalidArgument},
		{"offset pattern", format.NewBuilder().AppendOffset("HH:MM", "Z"), format.ErrInvalidArgument},
		{"append zero formatter", format.NewBuilder().Append(format.Formatter{}), format.ErrInvalidArgument},
		{"optional end without start", format.NewBuilder().OptionalEnd(), format.ErrUnbalancedOptional},
		{"optional start without end", format.NewBuilder().OptionalStart().AppendValue(temporal.Year), format.ErrUnbalancedOptional},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.b.ToFormatterLocale(language.English)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := format.NewBuilder().AppendValue(temporal.Year).ToFormatterLocale(language.Und)
	assert.ErrorIs(t, err, format.ErrInvalidArgument)
}

func TestBuilder_ErrorsAreCollected(t *testing.T) {
	_, err := format.NewBuilder().
		AppendValueWidth(temporal.Year, 0).
		AppendOffset("bogus", "Z").
		OptionalStart().
		ToFormatterLocale(language.English)
	require.Error(t, err)
	assert.ErrorIs(t, err, format.ErrInvalidArgument)
	assert.ErrorIs(t, err, format.ErrUnbalancedOptional)
	assert.Contains(t, err.Error(), "bogus")
}

func TestOfPattern(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"y", "Value(Year)"},
		{"yy", "ReducedValue(Year,2,2,2000)"},
		{"yyy", "Value(Year,3,19,Normal)"},
		{"yyyy", "Value(Year,4,19,ExceedsPad)"},
		{"uuuu", "Value(Year,4,19,ExceedsPad)"},
		{"M", "Value(MonthOfYear)"},
		{"MM", "Value(MonthOfYear,2)"},
		{"d", "Value(DayOfMonth)"},
		{"dd", "Value(DayOfMonth,2)"},
		{"D", "Value(DayOfYear)"},
		{"DD", "Value(DayOfYear,2,3,NotNegative)"},
		{"DDD", "Value(DayOfYear,3)"},
		{"H", "Value(HourOfDay)"},
		{"HH", "Value(HourOfDay,2)"},
		{"mm", "Value(MinuteOfHour,2)"},
		{"ss", "Value(SecondOfMinute,2)"},
		{"S", "Fraction(NanoOfSecond,1,1)"},
		{"SSS", "Fraction(NanoOfSecond,3,3)"},
		{"n", "Value(NanoOfSecond)"},
		{"nnn", "Value(NanoOfSecond,3,19,NotNegative)"},
		{"N", "Value(NanoOfDay)"},
		{"X", "Offset(+HHmm,'Z')"},
		{"XX", "Offset(+HHMM,'Z')"},
		{"XXX", "Offset(+HH:MM,'Z')"},
		{"XXXX", "Offset(+HHMMss,'Z')"},
		{"XXXXX", "Offset(+HH:MM:ss,'Z')"},
		{"x", "Offset(+HHmm,'+00')"},
		{"xx", "Offset(+HHMM,'+0000')"},
		{"xxx", "Offset(+HH:MM,'+00:00')"},
		{"xxxx", "Offset(+HHMMss,'+0000')"},
		{"xxxxx", "Offset(+HH:MM:ss,'+00:00')"},
		{"Z", "Offset(+HHMM,'+0000')"},
		{"ZZZ", "Offset(+HHMM,'+0000')"},
		{"ZZZZZ", "Offset(+HH:MM:ss,'Z')"},
		{"VV", "ZoneId()"},
		{"'hello'", "'hello'"},
		{"''", "''''"},
		{"'o''clock'", "'o''clock'"},
		{"[HH]", "[Value(HourOfDay,2)]"},
		{"yyyy-MM-dd", "Value(Year,4,19,ExceedsPad)'-'Value(MonthOfYear,2)'-'Value(DayOfMonth,2)"},
		{"HH:mm[:ss]", "Value(HourOfDay,2)':'Value(MinuteOfHour,2)[':'Value(SecondOfMinute,2)]"},
		{"é", "'é'"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			f, err := format.OfPattern(tt.pattern)
			require.NoError(t, err)
			if got := f.String(); got != tt.want {
				t.Errorf("OfPattern(%q).String() = %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestOfPattern_Errors(t *testing.T) {
	tests := []struct {
		pattern string
		wantErr error
	}{
		{"yyyy[", format.ErrUnbalancedOptional},
		{"]", format.ErrPattern},
		{"'abc", format.ErrPattern},
		{"MMM", format.ErrPattern},
		{"ddd", format.ErrPattern},
		{"HHH", format.ErrPattern},
		{"DDDD", format.ErrPattern},
		{"XXXXXX", format.ErrPattern},
		{"ZZZZ", format.ErrPattern},
		{"V", format.ErrPattern},
		{"E", format.ErrPattern},
		{"a", format.ErrPattern},
		{"b", format.ErrPattern},
		{"hh", format.ErrPattern},
		{"K", format.ErrPattern},
		{"kk", format.ErrPattern},
		{"{", format.ErrPattern},
		{"#", format.ErrPattern},
		{"SSSSSSSSSS", format.ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, err := format.OfPattern(tt.pattern)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestOfPattern_ClockHourLetters(t *testing.T) {
	for _, pattern := range []string{"h", "K", "k"} {
		_, err := format.OfPattern(pattern)
		require.ErrorIs(t, err, format.ErrPattern, pattern)
		assert.Contains(t, err.Error(), "clock-hour", pattern)
		assert.NotContains(t, err.Error(), "week data", pattern)
	}
}

func TestFormat_Number(t *testing.T) {
	tests := []struct {
		name    string
		b       *format.Builder
		value   int64
		want    string
		wantErr error
	}{
		{"value", format.NewBuilder().AppendValue(temporal.Year), 2012, "2012", nil},
		{"negative value", format.NewBuilder().AppendValue(temporal.Year), -12, "-12", nil},
		{"pad", format.NewBuilder().AppendValueWidth(temporal.Year, 4), 12, "0012", nil},
		{"too wide", format.NewBuilder().AppendValueWidth(temporal.Year, 2), 123, "", format.ErrPrint},
		{"not negative", format.NewBuilder().AppendValueWidth(temporal.Year, 2), -1, "", format.ErrPrint},
		{"normal padded negative", format.NewBuilder().AppendValueRange(temporal.Year, 2, 2, format.SignNormal), -1, "-01", nil},
		{"always positive", format.NewBuilder().AppendValueRange(temporal.Year, 1, 19, format.SignAlways), 5, "+5", nil},
		{"always negative", format.NewBuilder().AppendValueRange(temporal.Year, 1, 19, format.SignAlways), -5, "-5", nil},
		{"never", format.NewBuilder().AppendValueRange(temporal.Year, 1, 19, format.SignNever), -5, "5", nil},
		{"exceeds pad within width", format.NewBuilder().AppendValueRange(temporal.Year, 4, 10, format.SignExceedsPad), 2012, "2012", nil},
		{"exceeds pad beyond width", format.NewBuilder().AppendValueRange(temporal.Year, 4, 10, format.SignExceedsPad), 12345, "+12345", nil},
		{"exceeds pad negative", format.NewBuilder().AppendValueRange(temporal.Year, 4, 10, format.SignExceedsPad), -1, "-0001", nil},
		{"reduced in range", format.NewBuilder().AppendValueReduced(temporal.Year, 2, 2, 2000), 2012, "12", nil},
		{"reduced out of range", format.NewBuilder().AppendValueReduced(temporal.Year, 2, 2, 2000), 1999, "99", nil},
		{"reduced wide out of range", format.NewBuilder().AppendValueReduced(temporal.Year, 2, 4, 2000), 1812, "1812", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := build(t, tt.b).Format(fields{temporal.Year: tt.value})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Number(t *testing.T) {
	tests := []struct {
		name    string
		b       *format.Builder
		text    string
		want    fields
		wantEnd int
		wantErr int
	}{
		{name: "value", b: format.NewBuilder().AppendValue(temporal.Year), text: "2012", want: fields{temporal.Year: 2012}, wantEnd: 4},
		{name: "negative", b: format.NewBuilder().AppendValue(temporal.Year), text: "-2012", want: fields{temporal.Year: -2012}, wantEnd: 5},
		{name: "normal rejects plus", b: format.NewBuilder().AppendValue(temporal.Year), text: "+2012", wantErr: 0},
		{name: "negative zero", b: format.NewBuilder().AppendValue(temporal.Year), text: "-0", wantErr: 0},
		{name: "no digits", b: format.NewBuilder().AppendLiteral("x").AppendValue(temporal.Year), text: "xy", wantErr: 1},
		{name: "fixed width stops", b: format.NewBuilder().AppendValueWidth(temporal.Year, 2), text: "123", want: fields{temporal.Year: 12}, wantEnd: 2},
		{name: "fixed width too short", b: format.NewBuilder().AppendValueWidth(temporal.Year, 2), text: "1", wantErr: 0},
		{name: "not negative rejects sign", b: format.NewBuilder().AppendValueWidth(temporal.Year, 2), text: "-1", wantErr: 0},
		{name: "always requires sign", b: format.NewBuilder().AppendValueRange(temporal.Year, 1, 19, format.SignAlways), text: "5", wantErr: 0},
		{name: "always with sign", b: format.NewBuilder().AppendValueRange(temporal.Year, 1, 19, format.SignAlways), text: "+5", want: fields{temporal.Year: 5}, wantEnd: 2},
		{name: "never rejects sign", b: format.NewBuilder().AppendValueRange(temporal.Year, 1, 19, format.SignNever), text: "-5", wantErr: 0},
		{name: "exceeds pad", b: format.NewBuilder().AppendValueRange(temporal.Year, 4, 10, format.SignExceedsPad), text: "2012", want: fields{temporal.Year: 2012}, wantEnd: 4},
		{name: "exceeds pad signed", b: format.NewBuilder().AppendValueRange(temporal.Year, 4, 10, format.SignExceedsPad), text: "+12345", want: fields{temporal.Year: 12345}, wantEnd: 6},
		{name: "exceeds pad needless sign", b: format.NewBuilder().AppendValueRange(temporal.Year, 4, 10, format.SignExceedsPad), text: "+2012", wantErr: 0},
		{name: "exceeds pad missing sign", b: format.NewBuilder().AppendValueRange(temporal.Year, 4, 10, format.SignExceedsPad), text: "12345", wantErr: 0},
		{name: "exceeds pad negative", b: format.NewBuilder().AppendValueRange(temporal.Year, 4, 10, format.SignExceedsPad), text: "-0001", want: fields{temporal.Year: -1}, wantEnd: 5},
		{name: "reduced", b: format.NewBuilder().AppendValueReduced(temporal.Year, 2, 2, 2000), text: "12", want: fields{temporal.Year: 2012}, wantEnd: 2},
		{name: "reduced top of range", b: format.NewBuilder().AppendValueReduced(temporal.Year, 2, 2, 2000), text: "99", want: fields{temporal.Year: 2099}, wantEnd: 2},
		{name: "reduced wraps", b: format.NewBuilder().AppendValueReduced(temporal.Year, 2, 4, 1950), text: "49", want: fields{temporal.Year: 2049}, wantEnd: 2},
		{name: "reduced base", b: format.NewBuilder().AppendValueReduced(temporal.Year, 2, 4, 1950), text: "50", want: fields{temporal.Year: 1950}, wantEnd: 2},
		{name: "reduced full width", b: format.NewBuilder().AppendValueReduced(temporal.Year, 2, 4, 1950), text: "1812", want: fields{temporal.Year: 1812}, wantEnd: 4},
		{
			name:    "adjacent values",
			b:       format.NewBuilder().AppendValue(temporal.Year).AppendValueWidth(temporal.MonthOfYear, 2).AppendValueWidth(temporal.DayOfMonth, 2),
			text:    "20120630",
			want:    fields{temporal.Year: 2012, temporal.MonthOfYear: 6, temporal.DayOfMonth: 30},
			wantEnd: 8,
		},
		{
			name:    "adjacent variable hour",
			b:       format.NewBuilder().AppendPattern("Hmm"),
			text:    "930",
			want:    fields{temporal.HourOfDay: 9, temporal.MinuteOfHour: 30},
			wantEnd: 3,
		},
		{
			name:    "adjacent pattern",
			b:       format.NewBuilder().AppendPattern("yyyyMMdd"),
			text:    "20120630",
			want:    fields{temporal.Year: 2012, temporal.MonthOfYear: 6, temporal.DayOfMonth: 30},
			wantEnd: 8,
		},
		{
			name:    "adjacent too short",
			b:       format.NewBuilder().AppendPattern("yyyyMMdd"),
			text:    "2012063",
			wantErr: 6,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := format.NewParsePosition(0)
			u, err := build(t, tt.b).ParseUnresolved(tt.text, pos)
			require.NoError(t, err)
			if tt.want == nil {
				require.Nil(t, u, "parsed %v", u)
				assert.Equal(t, tt.wantErr, pos.ErrorIndex)
				return
			}
			require.NotNil(t, u, "error index %d", pos.ErrorIndex)
			if diff := cmp.Diff(map[temporal.Field]int64(tt.want), u.Fields()); diff != "" {
				t.Errorf("fields mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.wantEnd, pos.Index)
		})
	}
}

func TestFraction(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
		point    bool
		nano     int64
		want     string
	}{
		{"zero", 0, 9, true, 0, ""},
		{"half", 0, 9, true, 500_000_000, ".5"},
		{"millis", 0, 9, true, 123_000_000, ".123"},
		{"one nano", 0, 9, true, 1, ".000000001"},
		{"fixed", 3, 3, false, 500_000_000, "500"},
		{"truncated", 3, 3, false, 123_456_789, "123"},
		{"fixed zero", 3, 3, false, 0, "000"},
		{"fixed zero with point", 2, 9, true, 0, ".00"},
		{"minimum width", 6, 9, true, 123_000_000, ".123000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := build(t, format.NewBuilder().AppendFraction(temporal.NanoOfSecond, tt.min, tt.max, tt.point))
			got, err := f.Format(fields{temporal.NanoOfSecond: tt.nano})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			pos := format.NewParsePosition(0)
			u, err := f.ParseUnresolved(got, pos)
			require.NoError(t, err)
			require.NotNil(t, u, "error index %d", pos.ErrorIndex)
			if got == "" {
				return
			}
			v, err := u.Value(temporal.NanoOfSecond)
			require.NoError(t, err)
			assert.Equal(t, tt.nano-tt.nano%pow10(9-tt.max), v, "parsed %q", got)
		})
	}
}

func pow10(n int) int64 {
	p := int64(1)
	for i := 0; i < n; i++ {
		p *= 10
	}
	return p
}

func TestFraction_ParseErrors(t *testing.T) {
	f := build(t, format.NewBuilder().AppendLiteral("x").AppendFraction(temporal.NanoOfSecond, 3, 9, true))
	for _, text := range []string{"x", "x,123", "x.12"} {
		pos := format.NewParsePosition(0)
		u, err := f.ParseUnresolved(text, pos)
		require.NoError(t, err)
		assert.Nil(t, u, "text %q", text)
		assert.GreaterOrEqual(t, pos.ErrorIndex, 1, "text %q", text)
	}
}

func TestOffset_Format(t *testing.T) {
	tests := []struct {
		pattern  string
		noOffset string
		seconds  int64
		want     string
	}{
		{"+HH:MM:ss", "Z", 0, "Z"},
		{"+HH:MM:ss", "Z", 3600, "+01:00"},
		{"+HH:MM:ss", "Z", 3661, "+01:01:01"},
		{"+HH:MM:ss", "Z", -19800, "-05:30"},
		{"+HH", "Z", 5400, "+01"},
		{"+HH", "Z", 1800, "Z"},
		{"+HHmm", "Z", 3600, "+01"},
		{"+HHmm", "Z", 5400, "+0130"},
		{"+HHMM", "+0000", 0, "+0000"},
		{"+HHMM", "+0000", 3600, "+0100"},
		{"+HHMMSS", "Z", 3600, "+010000"},
		{"+HH:MM:SS", "Z", -3661, "-01:01:01"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.pattern, tt.seconds), func(t *testing.T) {
			f := build(t, format.NewBuilder().AppendOffset(tt.pattern, tt.noOffset))
			got, err := f.Format(fields{temporal.OffsetSeconds: tt.seconds})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOffset_Parse(t *testing.T) {
	tests := []struct {
		pattern  string
		noOffset string
		text     string
		want     int64
		wantEnd  int
		wantErr  bool
	}{
		{pattern: "+HH:MM", noOffset: "Z", text: "+01:30", want: 5400, wantEnd: 6},
		{pattern: "+HH:MM", noOffset: "Z", text: "Z", want: 0, wantEnd: 1},
		{pattern: "+HH:MM", noOffset: "Z", text: "-05:30", want: -19800, wantEnd: 6},
		{pattern: "+HH:MM", noOffset: "Z", text: "+01", wantErr: true},
		{pattern: "+HH:MM", noOffset: "Z", text: "+0130", wantErr: true},
		{pattern: "+HH:MM:ss", noOffset: "Z", text: "+01:30:15", want: 5415, wantEnd: 9},
		{pattern: "+HH:MM:ss", noOffset: "Z", text: "+01:30", want: 5400, wantEnd: 6},
		{pattern: "+HHmm", noOffset: "Z", text: "+01", want: 3600, wantEnd: 3},
		{pattern: "+HHmm", noOffset: "Z", text: "+0130", want: 5400, wantEnd: 5},
		{pattern: "+HHMM", noOffset: "+0000", text: "+0000", want: 0, wantEnd: 5},
		{pattern: "+HHMMSS", noOffset: "Z", text: "+013015", want: 5415, wantEnd: 7},
		{pattern: "+HH", noOffset: "Z", text: "X", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.text, func(t *testing.T) {
			f := build(t, format.NewBuilder().AppendOffset(tt.pattern, tt.noOffset))
			pos := format.NewParsePosition(0)
			u, err := f.ParseUnresolved(tt.text, pos)
			require.NoError(t, err)
			if tt.wantErr {
				assert.Nil(t, u)
				assert.Equal(t, 0, pos.ErrorIndex)
				return
			}
			require.NotNil(t, u, "error index %d", pos.ErrorIndex)
			v, err := u.Value(temporal.OffsetSeconds)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
			assert.Equal(t, tt.wantEnd, pos.Index)
		})
	}
}

func TestParse_CaseSensitivity(t *testing.T) {
	sensitive := build(t, format.NewBuilder().AppendLiteral("T").AppendValue(temporal.HourOfDay))
	insensitive := build(t, format.NewBuilder().ParseCaseInsensitive().AppendLiteral("T").AppendValue(temporal.HourOfDay))

	_, err := sensitive.Parse("t11")
	assert.ErrorIs(t, err, format.ErrMismatch)
	r, err := insensitive.Parse("t11")
	require.NoError(t, err)
	tm, ok := r.Time()
	require.True(t, ok)
	assert.Equal(t, "11:00", tm.String())
}

func TestParse_OptionalRollsBack(t *testing.T) {
	f := build(t, format.NewBuilder().
		AppendValue(temporal.Year).
		OptionalStart().AppendLiteral("-").AppendValueWidth(temporal.MonthOfYear, 2).AppendLiteral("!").OptionalEnd())

	pos := format.NewParsePosition(0)
	u, err := f.ParseUnresolved("2012-06?", pos)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, 4, pos.Index)
	if diff := cmp.Diff(map[temporal.Field]int64{temporal.Year: 2012}, u.Fields()); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestFormat_OptionalAllOrNothing(t *testing.T) {
	f := build(t, format.NewBuilder().
		AppendValue(temporal.Year).
		OptionalStart().AppendLiteral("-").AppendValue(temporal.MonthOfYear).AppendLiteral("-").AppendValue(temporal.DayOfMonth).OptionalEnd())

	got, err := f.Format(fields{temporal.Year: 2012, temporal.MonthOfYear: 6})
	require.NoError(t, err)
	assert.Equal(t, "2012", got)

	got, err = f.Format(fields{temporal.Year: 2012, temporal.MonthOfYear: 6, temporal.DayOfMonth: 30})
	require.NoError(t, err)
	assert.Equal(t, "2012-6-30", got)

	_, err = f.Format(fields{temporal.MonthOfYear: 6})
	assert.True(t, errors.Is(err, temporal.ErrUnsupportedField), "got %v", err)
}
