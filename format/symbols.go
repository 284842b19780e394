package format

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
)

// Symbols are the characters used for numbers.
type Symbols struct {
	ZeroDigit        rune
	PositiveSign     rune
	NegativeSign     rune
	DecimalSeparator rune
}

// StandardSymbols uses ASCII digits, '+', '-' and '.'.
var StandardSymbols = Symbols{ZeroDigit: '0', PositiveSign: '+', NegativeSign: '-', DecimalSeparator: '.'}

func (s Symbols) valid() bool {
	return s.ZeroDigit != 0 && s.PositiveSign != 0 && s.NegativeSign != 0 && s.DecimalSeparator != 0
}

// digit returns the value of the digit r, or -1.
func (s Symbols) digit(r rune) int {
	d := int(r - s.ZeroDigit)
	if d < 0 || d > 9 {
		return -1
	}
	return d
}

// localize replaces the ASCII digits of s.
func (s Symbols) localize(digits string) string {
	if s.ZeroDigit == '0' {
		return digits
	}
	var sb strings.Builder
	for _, r := range digits {
		sb.WriteRune(s.ZeroDigit + (r - '0'))
	}
	return sb.String()
}

func (s Symbols) String() string {
	return fmt.Sprintf("Symbols[%c%c%c%c]", s.ZeroDigit, s.PositiveSign, s.NegativeSign, s.DecimalSeparator)
}

// DefaultLocale returns the locale named by LC_ALL, LC_TIME or LANG, in that
// order, and English when none is set or parseable.
func DefaultLocale() language.Tag {
	for _, env := range []string{"LC_ALL", "LC_TIME", "LANG"} {
		if tag, ok := parsePOSIXLocale(os.Getenv(env)); ok {
			return tag
		}
	}
	return language.English
}

// parsePOSIXLocale converts values such as "de_DE.UTF-8@euro".
func parsePOSIXLocale(s string) (language.Tag, bool) {
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	if s == "" || s == "C" || s == "POSIX" {
		return language.Und, false
	}
	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil || tag == language.Und {
		return language.Und, false
	}
	return tag, true
}
