package format

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"

	"github.com/ngrash/go-tzfmt/temporal"
)

// Builder assembles a Formatter element by element. Invalid arguments are
// collected and reported by ToFormatter, so calls can be chained.
//
// A Builder must not be used concurrently.
type Builder struct {
	active *frame
	errs   []error
}

// frame is an open composite. Optional sections push a new frame.
type frame struct {
	parent   *frame
	elements []element
	optional bool
	// valueIndex is the index of the last number element that may reserve
	// width for adjacent fixed-width values, or -1.
	valueIndex int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{active: &frame{valueIndex: -1}}
}

func (b *Builder) fail(format string, args ...any) *Builder {
	b.errs = append(b.errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, args...)...))
	return b
}

// appendElement adds e and returns its index.
func (b *Builder) appendElement(e element) int {
	b.active.elements = append(b.active.elements, e)
	b.active.valueIndex = -1
	return len(b.active.elements) - 1
}

// appendNumber adds n, letting a preceding variable-width value reserve
// its width when n is fixed width.
func (b *Builder) appendNumber(n number) *Builder {
	f := b.active
	if f.valueIndex < 0 {
		f.valueIndex = b.appendElement(n)
		return b
	}
	idx := f.valueIndex
	base := f.elements[idx].(number)
	if n.adjacentFixed() {
		base = base.withSubsequentWidth(n.maxWidth)
		b.appendElement(n.withFixedWidth())
		f.valueIndex = idx
	} else {
		base = base.withFixedWidth()
		f.valueIndex = b.appendElement(n)
	}
	f.elements[idx] = base
	return b
}

// AppendLiteral appends fixed text. Empty text is ignored.
func (b *Builder) AppendLiteral(s string) *Builder {
	if s != "" {
		b.appendElement(literal(s))
	}
	return b
}

// AppendValue appends a field printed with as many digits as needed, with
// a sign for negative values.
func (b *Builder) AppendValue(f temporal.Field) *Builder {
	return b.appendNumber(number{field: f, minWidth: 1, maxWidth: maxWidth, sign: SignNormal})
}

// AppendValueWidth appends a non-negative field zero-padded to exactly
// width digits.
func (b *Builder) AppendValueWidth(f temporal.Field, width int) *Builder {
	if width < 1 || width > maxWidth {
		return b.fail("width %d of %v not in range 1 to %d", width, f, maxWidth)
	}
	return b.appendNumber(number{field: f, minWidth: width, maxWidth: width, sign: SignNotNegative})
}

// AppendValueRange appends a field printed with minWidth to maxWidth
// digits under the given sign style.
func (b *Builder) AppendValueRange(f temporal.Field, minWidth, maxWidth int, sign SignStyle) *Builder {
	if minWidth == maxWidth && sign == SignNotNegative {
		return b.AppendValueWidth(f, maxWidth)
	}
	switch {
	case minWidth < 1 || minWidth > 19:
		return b.fail("minimum width %d of %v not in range 1 to 19", minWidth, f)
	case maxWidth < 1 || maxWidth > 19:
		return b.fail("maximum width %d of %v not in range 1 to 19", maxWidth, f)
	case maxWidth < minWidth:
		return b.fail("maximum width %d of %v less than minimum width %d", maxWidth, f, minWidth)
	case sign < SignNormal || sign > SignExceedsPad:
		return b.fail("unknown sign style %d", int(sign))
	}
	return b.appendNumber(number{field: f, minWidth: minWidth, maxWidth: maxWidth, sign: sign})
}

// AppendValueReduced appends a field printed as its last width to maxWidth
// digits. Parsing exactly width digits yields a value in the range of
// 10^width values starting at base.
func (b *Builder) AppendValueReduced(f temporal.Field, width, maxWidth int, base int64) *Builder {
	switch {
	case width < 1 || width > 10:
		return b.fail("width %d of %v not in range 1 to 10", width, f)
	case maxWidth < 1 || maxWidth > 10:
		return b.fail("maximum width %d of %v not in range 1 to 10", maxWidth, f)
	case maxWidth < width:
		return b.fail("maximum width %d of %v less than width %d", maxWidth, f, width)
	case !f.Range().IsValid(base) || !f.Range().IsValid(base+pow10[width]-1):
		return b.fail("base %d of %v out of range", base, f)
	}
	return b.appendNumber(number{field: f, minWidth: width, maxWidth: maxWidth, sign: SignNotNegative, reduced: true, base: base})
}

// AppendFraction appends a field as a fraction of its range with minWidth
// to maxWidth digits, optionally preceded by the decimal separator. The
// separator is printed only when digits are.
func (b *Builder) AppendFraction(f temporal.Field, minWidth, maxWidth int, decimalPoint bool) *Builder {
	switch {
	case minWidth < 0 || minWidth > 9:
		return b.fail("minimum width %d of fraction not in range 0 to 9", minWidth)
	case maxWidth < 1 || maxWidth > 9:
		return b.fail("maximum width %d of fraction not in range 1 to 9", maxWidth)
	case maxWidth < minWidth:
		return b.fail("maximum width %d of fraction less than minimum width %d", maxWidth, minWidth)
	case f == temporal.InstantSeconds:
		return b.fail("%v has no fixed range", f)
	}
	b.appendElement(fraction{field: f, minWidth: minWidth, maxWidth: maxWidth, decimalPoint: decimalPoint})
	return b
}

// AppendOffset appends the offset in one of the layouts "+HH", "+HHmm",
// "+HH:mm", "+HHMM", "+HH:MM", "+HHMMss", "+HH:MM:ss", "+HHMMSS" and
// "+HH:MM:SS". noOffsetText is used for a zero offset.
func (b *Builder) AppendOffset(pattern, noOffsetText string) *Builder {
	kind := offsetPatternIndex(pattern)
	if kind < 0 {
		return b.fail("invalid offset pattern %q", pattern)
	}
	b.appendElement(offset{kind: kind, noOffset: noOffsetText})
	return b
}

// AppendOffsetID appends the offset as "+HH:MM:ss", with "Z" for zero.
func (b *Builder) AppendOffsetID() *Builder {
	b.appendElement(offsetID)
	return b
}

// AppendZoneID appends the zone ID of the value, which may be an offset.
func (b *Builder) AppendZoneID() *Builder {
	b.appendElement(zoneID{})
	return b
}

// AppendZoneRegionID appends the zone ID of the value when the zone is not
// a plain offset.
func (b *Builder) AppendZoneRegionID() *Builder {
	b.appendElement(zoneID{regionOnly: true})
	return b
}

// Append appends all elements of f.
func (b *Builder) Append(f Formatter) *Builder {
	if f.root == nil {
		return b.fail("append of empty formatter")
	}
	b.appendElement(f.root.withOptional(false))
	return b
}

// AppendOptional appends all elements of f as an optional section.
func (b *Builder) AppendOptional(f Formatter) *Builder {
	if f.root == nil {
		return b.fail("append of empty formatter")
	}
	b.appendElement(f.root.withOptional(true))
	return b
}

// OptionalStart opens an optional section. Printing drops the section if
// any of its values is missing; parsing restores the state from before the
// section if it does not match.
func (b *Builder) OptionalStart() *Builder {
	b.active.valueIndex = -1
	b.active = &frame{parent: b.active, optional: true, valueIndex: -1}
	return b
}

// OptionalEnd closes the innermost optional section.
func (b *Builder) OptionalEnd() *Builder {
	if b.active.parent == nil {
		b.errs = append(b.errs, fmt.Errorf("%w: OptionalEnd without OptionalStart", ErrUnbalancedOptional))
		return b
	}
	f := b.active
	b.active = f.parent
	if len(f.elements) > 0 {
		b.appendElement(&composite{elements: f.elements, optional: true})
	}
	return b
}

// ParseCaseSensitive makes the rest of the pattern match letters exactly.
func (b *Builder) ParseCaseSensitive() *Builder {
	b.appendElement(caseSetting(true))
	return b
}

// ParseCaseInsensitive makes the rest of the pattern ignore letter case.
func (b *Builder) ParseCaseInsensitive() *Builder {
	b.appendElement(caseSetting(false))
	return b
}

// ToFormatter compiles the pattern with the default locale.
func (b *Builder) ToFormatter() (Formatter, error) {
	return b.ToFormatterLocale(DefaultLocale())
}

// ToFormatterLocale compiles the pattern with the given locale.
func (b *Builder) ToFormatterLocale(locale language.Tag) (Formatter, error) {
	errs := append([]error(nil), b.errs...)
	if b.active.parent != nil {
		errs = append(errs, fmt.Errorf("%w: OptionalStart without OptionalEnd", ErrUnbalancedOptional))
	}
	if locale == language.Und {
		errs = append(errs, fmt.Errorf("%w: undefined locale", ErrInvalidArgument))
	}
	if err := errors.Join(errs...); err != nil {
		return Formatter{}, fmt.Errorf("build formatter: %w", err)
	}
	elements := append([]element(nil), b.active.elements...)
	return Formatter{
		root:    &composite{elements: elements},
		locale:  locale,
		symbols: StandardSymbols,
	}, nil
}
