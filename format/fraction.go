package format

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/ngrash/go-tzfmt/temporal"
)

// fractionScale is the precision of printed fractions.
const fractionScale = 9

// fraction prints a field as the fraction of its range, so that 500_000_000
// nanoseconds print as ".5".
type fraction struct {
	field        temporal.Field
	minWidth     int
	maxWidth     int
	decimalPoint bool
}

// span returns min and max-min+1 of the field range.
func (f fraction) span() (decimal.Decimal, decimal.Decimal) {
	r := f.field.Range()
	lo := decimal.NewFromInt(r.Min)
	return lo, decimal.NewFromInt(r.Max).Sub(lo).Add(decimal.NewFromInt(1))
}

// toFraction converts v to a fraction in [0, 1) truncated to nine digits.
func (f fraction) toFraction(v int64) decimal.Decimal {
	lo, span := f.span()
	q, _ := decimal.NewFromInt(v).Sub(lo).Shift(fractionScale).QuoRem(span, 0)
	return q.Shift(-fractionScale)
}

// fromFraction converts a fraction back to a field value.
func (f fraction) fromFraction(frac decimal.Decimal) int64 {
	lo, span := f.span()
	return frac.Mul(span).Floor().Add(lo).IntPart()
}

func (f fraction) format(ctx *printContext, buf *bytes.Buffer) (bool, error) {
	v, ok, err := ctx.field(f.field)
	if err != nil || !ok {
		return false, err
	}
	if err := f.field.Check(v); err != nil {
		return false, fmt.Errorf("%w: %w", ErrPrint, err)
	}
	frac := f.toFraction(v)
	if frac.IsZero() {
		if f.minWidth > 0 {
			if f.decimalPoint {
				buf.WriteRune(ctx.symbols.DecimalSeparator)
			}
			for i := 0; i < f.minWidth; i++ {
				buf.WriteRune(ctx.symbols.ZeroDigit)
			}
		}
		return true, nil
	}
	// String drops trailing zeros, leaving "0." and the significant digits.
	scale := len(frac.String()) - 2
	out := min(max(scale, f.minWidth), f.maxWidth)
	digits := frac.Truncate(int32(out)).StringFixed(int32(out))[2:]
	if f.decimalPoint {
		buf.WriteRune(ctx.symbols.DecimalSeparator)
	}
	buf.WriteString(ctx.symbols.localize(digits))
	return true, nil
}

func (f fraction) parse(ctx *parseContext, text string, pos int) (int, bool) {
	if pos >= len(text) {
		return pos, f.minWidth == 0
	}
	if f.decimalPoint {
		r, size := utf8.DecodeRuneInString(text[pos:])
		if r != ctx.symbols.DecimalSeparator {
			return pos, f.minWidth == 0
		}
		pos += size
	}
	total, digits, end := scanDigits(ctx.symbols, text, pos, f.maxWidth)
	if digits < f.minWidth {
		return pos, false
	}
	v := f.fromFraction(decimal.New(total, -int32(digits)))
	return ctx.setField(f.field, v, pos, end)
}

func (f fraction) String() string {
	s := fmt.Sprintf("Fraction(%v,%d,%d", f.field, f.minWidth, f.maxWidth)
	if f.decimalPoint {
		s += ",DecimalPoint"
	}
	return s + ")"
}
