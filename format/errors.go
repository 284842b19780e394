package format

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for missing or invalid arguments.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrOutOfBounds is returned when a parse position lies outside the text.
	ErrOutOfBounds = errors.New("position out of bounds")
	// ErrUnbalancedOptional is returned by ToFormatter when optional
	// sections are not closed or closed without being opened.
	ErrUnbalancedOptional = errors.New("unbalanced optional section")
	// ErrPattern is returned for invalid pattern strings.
	ErrPattern = errors.New("invalid pattern")
	// ErrNotTemporal is returned by TextFormat.Format for values that are
	// not temporal accessors.
	ErrNotTemporal = errors.New("value is not a temporal accessor")
	// ErrPrint is returned when a supported value cannot be printed, such as
	// a number wider than its maximum width.
	ErrPrint = errors.New("value cannot be printed")

	// ErrMismatch is wrapped by a ParseError when the text does not match
	// the formatter at ParseError.Index.
	ErrMismatch = errors.New("text does not match")
	// ErrTrailingText is wrapped by a ParseError when text remains after a
	// complete match.
	ErrTrailingText = errors.New("unparsed text found")
	// ErrResolve is wrapped by a ParseError when the parsed fields do not
	// form a valid value or a query cannot be answered.
	ErrResolve = errors.New("cannot resolve parsed fields")
	// ErrNoQueryMatched is wrapped by a ParseError when none of the queries
	// passed to ParseBest succeeded.
	ErrNoQueryMatched = errors.New("unable to convert parsed text using any of the specified queries")
)

// maxEcho is the number of characters of the input repeated in a ParseError
// message.
const maxEcho = 64

// ParseError reports a failed parse. Text always holds the complete input
// while the message echoes at most its first 64 characters.
type ParseError struct {
	// Text is the input that failed to parse.
	Text string
	// Index is the byte offset of the failure. It is 0 for errors raised
	// after the text was matched.
	Index int
	// Err is ErrMismatch, ErrTrailingText or an error wrapping ErrResolve or
	// ErrNoQueryMatched.
	Err error
}

func (e *ParseError) Error() string {
	echo := abbreviate(e.Text)
	switch {
	case errors.Is(e.Err, ErrMismatch):
		return fmt.Sprintf("Text '%s' could not be parsed at index %d", echo, e.Index)
	case errors.Is(e.Err, ErrTrailingText):
		return fmt.Sprintf("Text '%s' could not be parsed, unparsed text found at index %d", echo, e.Index)
	default:
		return fmt.Sprintf("Text '%s' could not be parsed: %v", echo, e.Err)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

// abbreviate shortens text to maxEcho characters followed by "...".
func abbreviate(text string) string {
	n := 0
	for i := range text {
		if n == maxEcho {
			return text[:i] + "..."
		}
		n++
	}
	return text
}
