package format

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ngrash/go-tzfmt/temporal"
)

// offsetPatterns are the layouts accepted by AppendOffset. Lower case
// minutes and seconds are printed only when non-zero.
var offsetPatterns = []string{
	"+HH", "+HHmm", "+HH:mm", "+HHMM", "+HH:MM", "+HHMMss", "+HH:MM:ss", "+HHMMSS", "+HH:MM:SS",
}

func offsetPatternIndex(pattern string) int {
	for i, p := range offsetPatterns {
		if p == pattern {
			return i
		}
	}
	return -1
}

// offset prints and parses OffsetSeconds.
type offset struct {
	// kind indexes offsetPatterns.
	kind     int
	noOffset string
}

// offsetID is the "+HH:MM:ss" layout with "Z" for zero.
var offsetID = offset{kind: 6, noOffset: "Z"}

func (o offset) colons() bool { return o.kind%2 == 0 }

func (o offset) format(ctx *printContext, buf *bytes.Buffer) (bool, error) {
	v, ok, err := ctx.field(temporal.OffsetSeconds)
	if err != nil || !ok {
		return false, err
	}
	total := int(v)
	if total == 0 {
		buf.WriteString(o.noOffset)
		return true, nil
	}
	a := total
	if a < 0 {
		a = -a
	}
	hours, minutes, seconds := a/3600%100, a/60%60, a%60
	start := buf.Len()
	if total < 0 {
		buf.WriteByte('-')
	} else {
		buf.WriteByte('+')
	}
	fmt.Fprintf(buf, "%02d", hours)
	output := hours
	if o.kind >= 3 || (o.kind >= 1 && minutes > 0) {
		o.writeSep(buf)
		fmt.Fprintf(buf, "%02d", minutes)
		output += minutes
		if o.kind >= 7 || (o.kind >= 5 && seconds > 0) {
			o.writeSep(buf)
			fmt.Fprintf(buf, "%02d", seconds)
			output += seconds
		}
	}
	if output == 0 {
		buf.Truncate(start)
		buf.WriteString(o.noOffset)
	}
	return true, nil
}

func (o offset) writeSep(buf *bytes.Buffer) {
	if o.colons() {
		buf.WriteByte(':')
	}
}

func (o offset) parse(ctx *parseContext, text string, pos int) (int, bool) {
	secs, end, ok := o.match(ctx, text, pos)
	if !ok {
		return end, false
	}
	return ctx.setField(temporal.OffsetSeconds, int64(secs), pos, end)
}

// match parses an offset at pos and returns its seconds and end position.
// On failure end is the error position.
func (o offset) match(ctx *parseContext, text string, pos int) (secs, end int, ok bool) {
	if o.noOffset == "" {
		if pos == len(text) {
			return 0, pos, true
		}
	} else {
		if pos == len(text) {
			return 0, pos, false
		}
		if ctx.matches(text, pos, o.noOffset) {
			return 0, pos + len(o.noOffset), true
		}
	}
	if c := text[pos]; c == '+' || c == '-' {
		neg := c == '-'
		var hms [3]int
		cur := pos + 1
		failed := false
		for i := 0; i < 3 && !failed; i++ {
			failed = o.parseComponent(text, &cur, &hms, i)
		}
		if !failed {
			secs := hms[0]*3600 + hms[1]*60 + hms[2]
			if neg {
				secs = -secs
			}
			return secs, cur, true
		}
	}
	if o.noOffset == "" {
		return 0, pos, true
	}
	return 0, pos, false
}

// parseComponent reads the hours, minutes or seconds component i. It
// reports failure only when the component is required by the layout.
func (o offset) parseComponent(text string, cur *int, hms *[3]int, i int) bool {
	required := i == 0 || (i == 1 && o.kind >= 3)
	if (o.kind+3)/2 < i+1 {
		return false
	}
	p := *cur
	if o.colons() && i > 0 {
		if p+1 > len(text) || text[p] != ':' {
			return required
		}
		p++
	}
	if p+2 > len(text) {
		return required
	}
	c1, c2 := text[p], text[p+1]
	if c1 < '0' || c1 > '9' || c2 < '0' || c2 > '9' {
		return required
	}
	v := int(c1-'0')*10 + int(c2-'0')
	if v > 59 {
		return required
	}
	hms[i] = v
	*cur = p + 2
	return false
}

func (o offset) String() string {
	return fmt.Sprintf("Offset(%s,'%s')", offsetPatterns[o.kind], strings.ReplaceAll(o.noOffset, "'", "''"))
}
