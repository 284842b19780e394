package format

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/ngrash/go-tzfmt/temporal"
)

// SignStyle controls the sign of printed and parsed numbers.
type SignStyle int

const (
	// SignNormal prints a sign for negative values only and rejects a
	// parsed positive sign.
	SignNormal SignStyle = iota
	// SignAlways prints a sign for all values and requires one when parsing.
	SignAlways
	// SignNever prints the absolute value and rejects parsed signs.
	SignNever
	// SignNotNegative fails to print negative values and rejects parsed
	// signs.
	SignNotNegative
	// SignExceedsPad prints a positive sign when the value is wider than the
	// minimum width. Parsing requires the sign exactly then.
	SignExceedsPad
)

func (s SignStyle) String() string {
	switch s {
	case SignNormal:
		return "Normal"
	case SignAlways:
		return "Always"
	case SignNever:
		return "Never"
	case SignNotNegative:
		return "NotNegative"
	case SignExceedsPad:
		return "ExceedsPad"
	default:
		return fmt.Sprintf("<undefined SignStyle (%d)>", int(s))
	}
}

// acceptsSign reports whether a parsed sign is allowed.
func (s SignStyle) acceptsSign(positive bool) bool {
	switch s {
	case SignNormal:
		return !positive
	case SignAlways, SignExceedsPad:
		return true
	default:
		return false
	}
}

const maxWidth = 19

// pow10 holds 10^0 to 10^18.
var pow10 = func() [maxWidth]int64 {
	var p [maxWidth]int64
	p[0] = 1
	for i := 1; i < len(p); i++ {
		p[i] = p[i-1] * 10
	}
	return p
}()

// number prints and parses a field as decimal digits.
type number struct {
	field    temporal.Field
	minWidth int
	maxWidth int
	sign     SignStyle
	// subsequentWidth is the width reserved for fixed-width values that
	// directly follow this one, or -1 when this value is fixed width.
	subsequentWidth int

	// reduced values print the last digits and parse relative to base.
	reduced bool
	base    int64
}

func (n number) withFixedWidth() number {
	n.subsequentWidth = -1
	return n
}

func (n number) withSubsequentWidth(width int) number {
	if n.subsequentWidth >= 0 {
		n.subsequentWidth += width
	}
	return n
}

// adjacentFixed reports whether the value can be absorbed into the width
// reservation of a preceding value.
func (n number) adjacentFixed() bool {
	return n.minWidth == n.maxWidth && n.sign == SignNotNegative
}

func (n number) format(ctx *printContext, buf *bytes.Buffer) (bool, error) {
	v, ok, err := ctx.field(n.field)
	if err != nil || !ok {
		return false, err
	}
	if n.reduced {
		v = n.reduce(v)
	}
	var digits string
	if v == math.MinInt64 {
		digits = "9223372036854775808"
	} else {
		digits = strconv.FormatInt(abs(v), 10)
	}
	if len(digits) > n.maxWidth {
		return false, fmt.Errorf("%w: field %v value %d exceeds the maximum print width of %d", ErrPrint, n.field, v, n.maxWidth)
	}
	if v >= 0 {
		switch n.sign {
		case SignExceedsPad:
			if n.minWidth < maxWidth && v >= pow10[n.minWidth] {
				buf.WriteRune(ctx.symbols.PositiveSign)
			}
		case SignAlways:
			buf.WriteRune(ctx.symbols.PositiveSign)
		}
	} else {
		switch n.sign {
		case SignNormal, SignExceedsPad, SignAlways:
			buf.WriteRune(ctx.symbols.NegativeSign)
		case SignNotNegative:
			return false, fmt.Errorf("%w: field %v value %d cannot be negative", ErrPrint, n.field, v)
		}
	}
	for i := len(digits); i < n.minWidth; i++ {
		buf.WriteRune(ctx.symbols.ZeroDigit)
	}
	buf.WriteString(ctx.symbols.localize(digits))
	return true, nil
}

// reduce keeps the last digits of v.
func (n number) reduce(v int64) int64 {
	a := abs(v)
	if v >= n.base && v < n.base+pow10[n.minWidth] {
		return a % pow10[n.minWidth]
	}
	if n.maxWidth < maxWidth {
		return a % pow10[n.maxWidth]
	}
	return a
}

func (n number) parse(ctx *parseContext, text string, pos int) (int, bool) {
	if pos >= len(text) {
		return pos, false
	}
	signPos := pos
	var negative, positive bool
	switch r, size := utf8.DecodeRuneInString(text[pos:]); {
	case r == ctx.symbols.PositiveSign:
		if !n.sign.acceptsSign(true) {
			return pos, false
		}
		positive = true
		pos += size
	case r == ctx.symbols.NegativeSign:
		if !n.sign.acceptsSign(false) {
			return pos, false
		}
		negative = true
		pos += size
	case n.sign == SignAlways:
		return pos, false
	}

	effMax := n.maxWidth + max(n.subsequentWidth, 0)
	var total int64
	var digits, end int
	for pass := 0; pass < 2; pass++ {
		total, digits, end = scanDigits(ctx.symbols, text, pos, effMax)
		if digits < n.minWidth {
			return pos, false
		}
		if n.subsequentWidth > 0 && pass == 0 {
			// Leave room for the values that follow.
			effMax = max(n.minWidth, digits-n.subsequentWidth)
			continue
		}
		break
	}

	if negative {
		if total == 0 {
			return signPos, false
		}
		total = -total
	} else if n.sign == SignExceedsPad {
		if positive && digits <= n.minWidth {
			return signPos, false
		}
		if !positive && digits > n.minWidth {
			return pos, false
		}
	}
	if n.reduced && digits == n.minWidth && total >= 0 {
		total = n.expand(total)
	}
	return ctx.setField(n.field, total, pos, end)
}

// expand places a reduced value in the range starting at base.
func (n number) expand(v int64) int64 {
	r := pow10[n.minWidth]
	last := n.base % r
	basePart := n.base - last
	if n.base > 0 {
		v = basePart + v
	} else {
		v = basePart - v
	}
	if v < n.base {
		v += r
	}
	return v
}

// scanDigits reads at most limit digits at pos. Digits that would overflow
// int64 are not consumed.
func scanDigits(sym Symbols, text string, pos, limit int) (total int64, digits, end int) {
	end = pos
	for digits < limit && end < len(text) {
		r, size := utf8.DecodeRuneInString(text[end:])
		d := sym.digit(r)
		if d < 0 || total > (math.MaxInt64-int64(d))/10 {
			break
		}
		total = total*10 + int64(d)
		digits++
		end += size
	}
	return total, digits, end
}

func (n number) String() string {
	if n.reduced {
		return fmt.Sprintf("ReducedValue(%v,%d,%d,%d)", n.field, n.minWidth, n.maxWidth, n.base)
	}
	switch {
	case n.minWidth == 1 && n.maxWidth == maxWidth && n.sign == SignNormal:
		return fmt.Sprintf("Value(%v)", n.field)
	case n.minWidth == n.maxWidth && n.sign == SignNotNegative:
		return fmt.Sprintf("Value(%v,%d)", n.field, n.minWidth)
	}
	return fmt.Sprintf("Value(%v,%d,%d,%v)", n.field, n.minWidth, n.maxWidth, n.sign)
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
