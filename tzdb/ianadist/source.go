package ianadist

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Names lists the zone and link names declared by tzdb source files.
type Names struct {
	// Zones holds the names of Zone lines.
	Zones []string
	// Links maps link names to their targets.
	Links map[string]string
}

// ScanSource collects the names of the Zone and Link lines of a tzdb source
// file. Rule lines and zone continuation lines are skipped.
func ScanSource(r io.Reader) (Names, error) {
	names := Names{Links: make(map[string]string)}
	sc := bufio.NewScanner(r)
	lineno := 0
	for sc.Scan() {
		lineno++
		fields := splitLine(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch {
		case isKeyword(fields[0], "Zone"):
			if len(fields) < 2 {
				return Names{}, fmt.Errorf("line %d: zone line without name", lineno)
			}
			names.Zones = append(names.Zones, fields[1])
		case isKeyword(fields[0], "Link"):
			if len(fields) != 3 {
				return Names{}, fmt.Errorf("line %d: link line needs target and name", lineno)
			}
			names.Links[fields[2]] = fields[1]
		}
	}
	if err := sc.Err(); err != nil {
		return Names{}, fmt.Errorf("scan source: %w", err)
	}
	sort.Strings(names.Zones)
	return names, nil
}

// Names scans all data files of the release.
func (r *Release) Names() (Names, error) {
	all := Names{Links: make(map[string]string)}
	files := make([]string, 0, len(r.DataFiles))
	for name := range r.DataFiles {
		files = append(files, name)
	}
	sort.Strings(files)
	for _, name := range files {
		n, err := ScanSource(bytes.NewReader(r.DataFiles[name]))
		if err != nil {
			return Names{}, fmt.Errorf("%s: %w", name, err)
		}
		all.Zones = append(all.Zones, n.Zones...)
		for link, target := range n.Links {
			all.Links[link] = target
		}
	}
	sort.Strings(all.Zones)
	return all, nil
}

// splitLine strips comments and splits a source line into fields.
func splitLine(line string) []string {
	if i := strings.IndexByte(line, '#'); i != -1 {
		line = line[:i]
	}
	return strings.Fields(line)
}

// isKeyword reports whether field abbreviates keyword. tzdb accepts any
// unambiguous prefix, and Zone and Link are unambiguous from one letter.
func isKeyword(field, keyword string) bool {
	return field != "" && len(field) <= len(keyword) && strings.EqualFold(field, keyword[:len(field)])
}
