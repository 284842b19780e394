package format

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/ngrash/go-tzfmt/temporal"
)

// element is one step of a compiled pattern.
type element interface {
	// format appends the element to buf. It returns false without error
	// when a value is absent inside an optional section.
	format(ctx *printContext, buf *bytes.Buffer) (bool, error)
	// parse matches text at pos. On success it returns the position after
	// the match and true; on failure the error position and false.
	parse(ctx *parseContext, text string, pos int) (int, bool)
	String() string
}

type printContext struct {
	value    temporal.Accessor
	symbols  Symbols
	optional int
}

// field returns the value of f. Outside optional sections an unsupported
// field is an error; inside it reports absence.
func (c *printContext) field(f temporal.Field) (int64, bool, error) {
	if c.optional > 0 && !c.value.IsSupported(f) {
		return 0, false, nil
	}
	v, err := c.value.Value(f)
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

// zone returns the zone of the value. regionOnly rejects offsets.
func (c *printContext) zone(regionOnly bool) (temporal.Zone, bool, error) {
	z := temporal.ZoneOf(c.value)
	if _, isOffset := z.(temporal.Offset); regionOnly && isOffset {
		z = nil
	}
	if z != nil {
		return z, true, nil
	}
	if c.optional > 0 {
		return nil, false, nil
	}
	return nil, false, fmt.Errorf("%w: unable to extract zone from %T", temporal.ErrUnsupportedField, c.value)
}

// parsed is the mutable state of one parse attempt.
type parsed struct {
	fields map[temporal.Field]int64
	zone   temporal.Zone
}

func (p *parsed) clone() *parsed {
	c := &parsed{fields: make(map[temporal.Field]int64, len(p.fields)), zone: p.zone}
	for f, v := range p.fields {
		c.fields[f] = v
	}
	return c
}

type parseContext struct {
	caseSensitive bool
	symbols       Symbols
	zones         ZoneProvider
	// stack holds one snapshot per open optional section; the last entry
	// is the current state.
	stack []*parsed
	fold  *cases.Caser
}

func newParseContext(symbols Symbols, zones ZoneProvider) *parseContext {
	return &parseContext{
		caseSensitive: true,
		symbols:       symbols,
		zones:         zones,
		stack:         []*parsed{{fields: make(map[temporal.Field]int64)}},
	}
}

func (c *parseContext) current() *parsed { return c.stack[len(c.stack)-1] }

// setField records v for f. A different value already recorded for f is a
// conflict reported at errPos.
func (c *parseContext) setField(f temporal.Field, v int64, errPos, okPos int) (int, bool) {
	cur := c.current()
	if old, ok := cur.fields[f]; ok && old != v {
		return errPos, false
	}
	cur.fields[f] = v
	return okPos, true
}

func (c *parseContext) setZone(z temporal.Zone) {
	c.current().zone = z
}

func (c *parseContext) startOptional() {
	c.stack = append(c.stack, c.current().clone())
}

// endOptional keeps the state of the section if ok and restores the state
// from before it otherwise.
func (c *parseContext) endOptional(ok bool) {
	n := len(c.stack)
	if ok {
		c.stack[n-2] = c.stack[n-1]
	}
	c.stack = c.stack[:n-1]
}

// matches reports whether text at pos starts with s under the current
// case sensitivity.
func (c *parseContext) matches(text string, pos int, s string) bool {
	if pos+len(s) > len(text) {
		return false
	}
	sub := text[pos : pos+len(s)]
	if c.caseSensitive || sub == s {
		return sub == s
	}
	if c.fold == nil {
		f := cases.Fold()
		c.fold = &f
	}
	return c.fold.String(sub) == c.fold.String(s)
}

// composite is a sequence of elements, optionally all-or-nothing.
type composite struct {
	elements []element
	optional bool
}

func (c *composite) withOptional(optional bool) *composite {
	if c.optional == optional {
		return c
	}
	return &composite{elements: c.elements, optional: optional}
}

func (c *composite) format(ctx *printContext, buf *bytes.Buffer) (bool, error) {
	n := buf.Len()
	if c.optional {
		ctx.optional++
		defer func() { ctx.optional-- }()
	}
	for _, e := range c.elements {
		ok, err := e.format(ctx, buf)
		if err != nil {
			return false, err
		}
		if !ok {
			buf.Truncate(n)
			return true, nil
		}
	}
	return true, nil
}

func (c *composite) parse(ctx *parseContext, text string, pos int) (int, bool) {
	if !c.optional {
		for _, e := range c.elements {
			var ok bool
			if pos, ok = e.parse(ctx, text, pos); !ok {
				return pos, false
			}
		}
		return pos, true
	}
	ctx.startOptional()
	end := pos
	for _, e := range c.elements {
		var ok bool
		if end, ok = e.parse(ctx, text, end); !ok {
			ctx.endOptional(false)
			return pos, true
		}
	}
	ctx.endOptional(true)
	return end, true
}

func (c *composite) String() string {
	var sb strings.Builder
	start, end := "(", ")"
	if c.optional {
		start, end = "[", "]"
	}
	sb.WriteString(start)
	for _, e := range c.elements {
		sb.WriteString(e.String())
	}
	sb.WriteString(end)
	return sb.String()
}

// literal is fixed text.
type literal string

func (l literal) format(_ *printContext, buf *bytes.Buffer) (bool, error) {
	buf.WriteString(string(l))
	return true, nil
}

func (l literal) parse(ctx *parseContext, text string, pos int) (int, bool) {
	if !ctx.matches(text, pos, string(l)) {
		return pos, false
	}
	return pos + len(l), true
}

func (l literal) String() string {
	return "'" + strings.ReplaceAll(string(l), "'", "''") + "'"
}

// caseSetting switches case sensitivity for the rest of the parse.
type caseSetting bool

func (caseSetting) format(*printContext, *bytes.Buffer) (bool, error) { return true, nil }

func (s caseSetting) parse(ctx *parseContext, _ string, pos int) (int, bool) {
	ctx.caseSensitive = bool(s)
	return pos, true
}

func (s caseSetting) String() string {
	return fmt.Sprintf("ParseCaseSensitive(%t)", bool(s))
}
