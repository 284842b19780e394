package format

import (
	"errors"
	"fmt"

	"github.com/ngrash/go-tzfmt/temporal"
)

// ParsePosition tracks the progress of a parse through a text.
type ParsePosition struct {
	// Index is the byte offset where parsing starts. A successful parse
	// advances it past the match.
	Index int
	// ErrorIndex is the byte offset of a mismatch, or -1.
	ErrorIndex int
}

// NewParsePosition returns a position at index with no error.
func NewParsePosition(index int) *ParsePosition {
	return &ParsePosition{Index: index, ErrorIndex: -1}
}

func (p *ParsePosition) String() string {
	return fmt.Sprintf("ParsePosition[index=%d,errorIndex=%d]", p.Index, p.ErrorIndex)
}

// Unresolved holds the fields and zone of a parse as they appeared in the
// text, without validation or combination.
type Unresolved struct {
	fields map[temporal.Field]int64
	zone   temporal.Zone
}

// Fields returns a copy of the parsed fields.
func (u *Unresolved) Fields() map[temporal.Field]int64 {
	m := make(map[temporal.Field]int64, len(u.fields))
	for f, v := range u.fields {
		m[f] = v
	}
	return m
}

// Zone returns the parsed zone, or nil.
func (u *Unresolved) Zone() temporal.Zone { return u.zone }

func (u *Unresolved) IsSupported(f temporal.Field) bool {
	_, ok := u.fields[f]
	return ok
}

func (u *Unresolved) Value(f temporal.Field) (int64, error) {
	if v, ok := u.fields[f]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("%w: %v", temporal.ErrUnsupportedField, f)
}

func (u *Unresolved) String() string {
	s := formatFields(u.fields)
	if u.zone != nil {
		s += "," + u.zone.ID()
	}
	return s
}

// match runs the pattern over text from pos.Index. On success it advances
// pos.Index; on a mismatch it sets pos.ErrorIndex and returns nil.
func (f Formatter) match(text string, pos *ParsePosition) *parsed {
	ctx := newParseContext(f.symbols, f.ZoneProvider())
	end, ok := f.root.parse(ctx, text, pos.Index)
	if !ok {
		pos.ErrorIndex = end
		return nil
	}
	pos.Index = end
	return ctx.current()
}

func (f Formatter) checkPosition(text string, pos *ParsePosition) error {
	switch {
	case f.root == nil:
		return errNoPattern
	case pos == nil:
		return fmt.Errorf("%w: nil position", ErrInvalidArgument)
	case pos.Index < 0 || pos.Index > len(text):
		return fmt.Errorf("%w: index %d, length %d", ErrOutOfBounds, pos.Index, len(text))
	}
	return nil
}

// Parse parses the complete text and resolves the fields.
func (f Formatter) Parse(text string) (*Parsed, error) {
	if f.root == nil {
		return nil, errNoPattern
	}
	pos := NewParsePosition(0)
	p := f.match(text, pos)
	if p == nil {
		return nil, &ParseError{Text: text, Index: pos.ErrorIndex, Err: ErrMismatch}
	}
	if pos.Index < len(text) {
		return nil, &ParseError{Text: text, Index: pos.Index, Err: ErrTrailingText}
	}
	r, err := f.resolve(p)
	if err != nil {
		return nil, &ParseError{Text: text, Err: err}
	}
	return r, nil
}

// ParseAt parses text from pos.Index and resolves the fields. Text after
// the match is left for the caller; pos.Index is advanced past the match.
func (f Formatter) ParseAt(text string, pos *ParsePosition) (*Parsed, error) {
	if err := f.checkPosition(text, pos); err != nil {
		return nil, err
	}
	p := f.match(text, pos)
	if p == nil {
		return nil, &ParseError{Text: text, Index: pos.ErrorIndex, Err: ErrMismatch}
	}
	r, err := f.resolve(p)
	if err != nil {
		return nil, &ParseError{Text: text, Err: err}
	}
	return r, nil
}

// ParseUnresolved parses text from pos.Index without resolving the fields.
// A mismatch is not an error: it returns nil with pos.ErrorIndex set and
// pos.Index unchanged.
func (f Formatter) ParseUnresolved(text string, pos *ParsePosition) (*Unresolved, error) {
	if err := f.checkPosition(text, pos); err != nil {
		return nil, err
	}
	p := f.match(text, pos)
	if p == nil {
		return nil, nil
	}
	return &Unresolved{fields: p.fields, zone: p.zone}, nil
}

// ParseBest parses text and returns the result of the first query that
// succeeds, so that the most specific type the text describes can be
// chosen. At least two queries are required.
func (f Formatter) ParseBest(text string, queries ...temporal.Query[temporal.Accessor]) (temporal.Accessor, error) {
	if len(queries) < 2 {
		return nil, fmt.Errorf("%w: at least two queries must be specified", ErrInvalidArgument)
	}
	for i, q := range queries {
		if q == nil {
			return nil, fmt.Errorf("%w: query %d is nil", ErrInvalidArgument, i)
		}
	}
	r, err := f.Parse(text)
	if err != nil {
		return nil, err
	}
	var errs []error
	for _, q := range queries {
		v, err := q(r)
		if err == nil {
			return v, nil
		}
		errs = append(errs, err)
	}
	return nil, &ParseError{Text: text, Err: fmt.Errorf("%w: %w", ErrNoQueryMatched, errors.Join(errs...))}
}

// ParseQuery parses text with f and converts the result with q, such as
// temporal.LocalDateFrom.
func ParseQuery[T any](f Formatter, text string, q temporal.Query[T]) (T, error) {
	var zero T
	if q == nil {
		return zero, fmt.Errorf("%w: nil query", ErrInvalidArgument)
	}
	r, err := f.Parse(text)
	if err != nil {
		return zero, err
	}
	v, err := q(r)
	if err != nil {
		return zero, &ParseError{Text: text, Err: fmt.Errorf("%w: %w", ErrResolve, err)}
	}
	return v, nil
}
