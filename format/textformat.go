package format

import (
	"errors"
	"fmt"

	"github.com/ngrash/go-tzfmt/temporal"
)

// TextFormat adapts a Formatter to callers that format arbitrary values and
// parse into untyped results.
type TextFormat struct {
	f     Formatter
	query temporal.Query[any]
}

// ToFormat returns a TextFormat whose parse results are *Parsed values.
func (f Formatter) ToFormat() TextFormat {
	return TextFormat{f: f}
}

// ToFormatQuery returns a TextFormat whose parse results are converted by
// q.
func (f Formatter) ToFormatQuery(q temporal.Query[any]) (TextFormat, error) {
	if q == nil {
		return TextFormat{}, fmt.Errorf("%w: nil query", ErrInvalidArgument)
	}
	return TextFormat{f: f, query: q}, nil
}

// Formatter returns the underlying formatter.
func (t TextFormat) Formatter() Formatter { return t.f }

// Format prints v, which must be a temporal.Accessor.
func (t TextFormat) Format(v any) (string, error) {
	if v == nil {
		return "", fmt.Errorf("%w: nil value", ErrInvalidArgument)
	}
	a, ok := v.(temporal.Accessor)
	if !ok {
		return "", fmt.Errorf("%w: %w: %T", ErrInvalidArgument, ErrNotTemporal, v)
	}
	return t.f.Format(a)
}

// ParseObject parses the complete text. All failures, including those of
// the query, are returned as *ParseError.
func (t TextFormat) ParseObject(text string) (any, error) {
	r, err := t.f.Parse(text)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			return nil, pe
		}
		return nil, &ParseError{Text: text, Err: err}
	}
	if t.query == nil {
		return r, nil
	}
	v, err := t.query(r)
	if err != nil {
		return nil, &ParseError{Text: text, Err: fmt.Errorf("%w: %w", ErrResolve, err)}
	}
	return v, nil
}

// ParseObjectAt parses text from pos.Index. It reports failures through
// pos alone: it returns nil with pos.ErrorIndex set to a non-negative
// value. Only a nil pos is an error.
func (t TextFormat) ParseObjectAt(text string, pos *ParsePosition) (any, error) {
	if pos == nil {
		return nil, fmt.Errorf("%w: nil position", ErrInvalidArgument)
	}
	u, err := t.f.ParseUnresolved(text, pos)
	if err != nil || u == nil {
		if pos.ErrorIndex < 0 {
			pos.ErrorIndex = 0
		}
		return nil, nil
	}
	r, err := t.f.resolve(&parsed{fields: u.fields, zone: u.zone})
	if err != nil {
		pos.ErrorIndex = 0
		return nil, nil
	}
	if t.query == nil {
		return r, nil
	}
	v, err := t.query(r)
	if err != nil {
		pos.ErrorIndex = 0
		return nil, nil
	}
	return v, nil
}
