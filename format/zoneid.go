package format

import (
	"bytes"
	"strings"

	"github.com/ngrash/go-tzfmt/temporal"
	"github.com/ngrash/go-tzfmt/zone"
)

// ZoneProvider resolves zone IDs while parsing. *zone.Registry implements
// it.
type ZoneProvider interface {
	// Zone returns the zone with the given ID.
	Zone(id string) (temporal.Zone, error)
	// Match returns the longest known ID that text starts with.
	Match(text string, caseSensitive bool) (string, bool)
}

var _ ZoneProvider = (*zone.Registry)(nil)

// zoneID prints the zone ID of a value and parses zone IDs and offsets.
type zoneID struct {
	// regionOnly rejects values whose zone is a plain offset when printing.
	regionOnly bool
}

func (z zoneID) format(ctx *printContext, buf *bytes.Buffer) (bool, error) {
	zn, ok, err := ctx.zone(z.regionOnly)
	if err != nil || !ok {
		return false, err
	}
	buf.WriteString(zn.ID())
	return true, nil
}

func (z zoneID) parse(ctx *parseContext, text string, pos int) (int, bool) {
	if pos >= len(text) {
		return pos, false
	}
	switch c := text[pos]; {
	case c == '+' || c == '-':
		secs, end, ok := offsetID.match(ctx, text, pos)
		if !ok {
			return end, false
		}
		off, err := temporal.OffsetOfSeconds(secs)
		if err != nil {
			return pos, false
		}
		ctx.setZone(off)
		return end, true
	case ctx.matches(text, pos, "UTC"):
		return z.parsePrefixed(ctx, text, pos, pos+3)
	case ctx.matches(text, pos, "GMT"):
		return z.parsePrefixed(ctx, text, pos, pos+3)
	case ctx.matches(text, pos, "UT"):
		return z.parsePrefixed(ctx, text, pos, pos+2)
	}

	if ctx.zones != nil {
		if id, ok := ctx.zones.Match(text[pos:], ctx.caseSensitive); ok {
			if zn, err := ctx.zones.Zone(id); err == nil {
				ctx.setZone(zn)
				return pos + len(id), true
			}
		}
	}
	if ctx.matches(text, pos, "Z") {
		ctx.setZone(temporal.UTC)
		return pos + 1, true
	}
	return pos, false
}

// parsePrefixed parses UTC, GMT or UT, optionally followed by an offset.
func (z zoneID) parsePrefixed(ctx *parseContext, text string, start, pos int) (int, bool) {
	prefix := strings.ToUpper(text[start:pos])
	if pos < len(text) && (text[pos] == '+' || text[pos] == '-') {
		if secs, end, ok := offsetID.match(ctx, text, pos); ok {
			off, err := temporal.OffsetOfSeconds(secs)
			if err != nil {
				return start, false
			}
			if off == temporal.UTC {
				ctx.setZone(temporal.NewFixedZone(prefix, off))
			} else {
				ctx.setZone(temporal.NewFixedZone(prefix+off.ID(), off))
			}
			return end, true
		}
	}
	ctx.setZone(temporal.NewFixedZone(prefix, temporal.UTC))
	return pos, true
}

func (z zoneID) String() string {
	if z.regionOnly {
		return "ZoneRegionId()"
	}
	return "ZoneId()"
}
