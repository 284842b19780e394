// Package zone provides zones by ID for formatting and parsing.
//
// A Registry serves zones registered from TZif data and loads missing ones
// from zoneinfo directories on demand. IDs declared by tzdb source files
// can be added so that they are matched while parsing.
package zone

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ngrash/go-tzfmt/temporal"
	"github.com/ngrash/go-tzfmt/tzdb/ianadist"
	"github.com/ngrash/go-tzfmt/tzif"
)

var (
	// ErrUnknownZone is returned for IDs the registry cannot provide.
	ErrUnknownZone = errors.New("unknown zone")
	// ErrInvalidID is returned for malformed zone IDs.
	ErrInvalidID = errors.New("invalid zone ID")
)

// Registry resolves zone IDs. It is safe for concurrent use.
type Registry struct {
	dirs   []string
	logger *slog.Logger

	mu      sync.RWMutex
	zones   map[string]*Region
	aliases map[string]string
	names   map[string]struct{}
	scanned map[string]bool // dirs whose names are in names
	ids     []string        // sorted cache of IDs, nil when stale
}

// Option configures a Registry.
type Option func(*Registry)

// WithDirs adds zoneinfo directories searched for zones that are not
// registered.
func WithDirs(dirs ...string) Option {
	return func(r *Registry) { r.dirs = append(r.dirs, dirs...) }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		logger:  slog.Default(),
		zones:   make(map[string]*Region),
		aliases: make(map[string]string),
		names:   make(map[string]struct{}),
		scanned: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SystemDirs lists the zoneinfo directories of the host, led by $ZONEINFO.
func SystemDirs() []string {
	var dirs []string
	if d := os.Getenv("ZONEINFO"); d != "" {
		dirs = append(dirs, d)
	}
	return append(dirs, "/usr/share/zoneinfo", "/usr/share/lib/zoneinfo", "/usr/lib/locale/TZ", "/etc/zoneinfo")
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry backed by SystemDirs.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry(WithDirs(SystemDirs()...))
	})
	return defaultRegistry
}

// Register adds a zone backed by data, replacing any zone of the same ID.
func (r *Registry) Register(id string, data tzif.Data) error {
	if err := checkID(id); err != nil {
		return err
	}
	region, err := NewRegion(id, data)
	if err != nil {
		return fmt.Errorf("register %q: %w", id, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.zones[id] = region
	r.ids = nil
	return nil
}

// RegisterTZif decodes a TZif file and registers it as id.
func (r *Registry) RegisterTZif(id string, b []byte) error {
	data, err := tzif.DecodeData(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("register %q: %w", id, err)
	}
	return r.Register(id, data)
}

// RegisterAlias makes alias resolve to target.
func (r *Registry) RegisterAlias(alias, target string) error {
	if err := checkID(alias); err != nil {
		return err
	}
	if err := checkID(target); err != nil {
		return err
	}
	if alias == target {
		return fmt.Errorf("%w: %q is an alias of itself", ErrInvalidID, alias)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = target
	r.ids = nil
	return nil
}

// LoadDir adds a zoneinfo directory and makes its zone names known.
func (r *Registry) LoadDir(dir string) error {
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("load dir: %w", err)
	}
	r.mu.Lock()
	r.dirs = append(r.dirs, dir)
	r.mu.Unlock()
	return r.scan(dir)
}

// LoadSource makes the Zone and Link names of a tzdb source file known.
// Links become aliases; zone data is still loaded from the directories.
func (r *Registry) LoadSource(src io.Reader) error {
	names, err := ianadist.ScanSource(src)
	if err != nil {
		return fmt.Errorf("load source: %w", err)
	}
	return r.addNames(names)
}

// LoadRelease makes the names of all data files of a release known.
func (r *Registry) LoadRelease(rel *ianadist.Release) error {
	names, err := rel.Names()
	if err != nil {
		return fmt.Errorf("load release %s: %w", rel.Version, err)
	}
	r.logger.Info("loaded tzdb release", "version", rel.Version, "zones", len(names.Zones), "links", len(names.Links))
	return r.addNames(names)
}

func (r *Registry) addNames(names ianadist.Names) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range names.Zones {
		if checkID(id) == nil {
			r.names[id] = struct{}{}
		}
	}
	for alias, target := range names.Links {
		if checkID(alias) == nil && checkID(target) == nil {
			r.aliases[alias] = target
		}
	}
	r.ids = nil
	return nil
}

// Has reports whether id is registered, aliased or known by name.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.zones[id]; ok {
		return true
	}
	if _, ok := r.aliases[id]; ok {
		return true
	}
	_, ok := r.names[id]
	return ok
}

// IDs returns all known zone IDs in ascending order. The first call scans
// the zoneinfo directories.
func (r *Registry) IDs() []string {
	r.scanDirs()
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ids == nil {
		set := make(map[string]struct{}, len(r.zones)+len(r.aliases)+len(r.names))
		for id := range r.zones {
			set[id] = struct{}{}
		}
		for id := range r.aliases {
			set[id] = struct{}{}
		}
		for id := range r.names {
			set[id] = struct{}{}
		}
		ids := make([]string, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		r.ids = ids
	}
	return append([]string(nil), r.ids...)
}

// Match returns the longest known ID that text starts with.
func (r *Registry) Match(text string, caseSensitive bool) (string, bool) {
	best := ""
	for _, id := range r.IDs() {
		if len(id) <= len(best) || len(id) > len(text) {
			continue
		}
		prefix := text[:len(id)]
		if prefix == id || (!caseSensitive && strings.EqualFold(prefix, id)) {
			best = id
		}
	}
	return best, best != ""
}

// Zone returns the zone of id. Offsets such as "+02:00" and "Z" and the
// fixed zones UTC, GMT and UT, optionally followed by an offset, are always
// available.
func (r *Registry) Zone(id string) (temporal.Zone, error) {
	if z, ok, err := fixedZone(id); ok {
		return z, err
	}
	if err := checkID(id); err != nil {
		return nil, err
	}

	r.mu.RLock()
	target := id
	for i := 0; i < 8; i++ {
		next, ok := r.aliases[target]
		if !ok {
			break
		}
		target = next
	}
	region, ok := r.zones[target]
	dirs := r.dirs
	r.mu.RUnlock()
	if ok {
		return r.named(region, id), nil
	}

	for _, dir := range dirs {
		b, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(target)))
		if err != nil {
			continue
		}
		data, err := tzif.DecodeData(bytes.NewReader(b))
		if err != nil {
			r.logger.Debug("skipping zone file", "dir", dir, "zone", target, "err", err)
			continue
		}
		region, err := NewRegion(target, data)
		if err != nil {
			r.logger.Warn("invalid zone file", "dir", dir, "zone", target, "err", err)
			continue
		}
		r.logger.Debug("loaded zone", "dir", dir, "zone", target)
		r.mu.Lock()
		r.zones[target] = region
		r.mu.Unlock()
		return r.named(region, id), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownZone, id)
}

// named returns region under the ID it was requested by.
func (r *Registry) named(region *Region, id string) *Region {
	if region.id == id {
		return region
	}
	return &Region{id: id, data: region.data}
}

func (r *Registry) scanDirs() {
	r.mu.RLock()
	var pending []string
	for _, dir := range r.dirs {
		if !r.scanned[dir] {
			pending = append(pending, dir)
		}
	}
	r.mu.RUnlock()
	for _, dir := range pending {
		if err := r.scan(dir); err != nil {
			r.logger.Debug("skipping zoneinfo dir", "dir", dir, "err", err)
		}
	}
}

// scan records the names of all TZif files below dir.
func (r *Registry) scan(dir string) error {
	var ids []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel == "posix" || rel == "right" {
				return fs.SkipDir
			}
			return nil
		}
		if checkID(rel) != nil || !isTZifFile(path) {
			return nil
		}
		ids = append(ids, rel)
		return nil
	})

	r.mu.Lock()
	defer r.mu.Unlock()
	r.scanned[dir] = true
	if err != nil {
		return err
	}
	for _, id := range ids {
		r.names[id] = struct{}{}
	}
	r.ids = nil
	r.logger.Debug("scanned zoneinfo dir", "dir", dir, "zones", len(ids))
	return nil
}

func isTZifFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	magic := make([]byte, len(tzif.Magic))
	if _, err := io.ReadFull(f, magic); err != nil {
		return false
	}
	return bytes.Equal(magic, tzif.Magic[:])
}

// checkID rejects IDs that are not relative slash-separated names.
func checkID(id string) error {
	if id == "" || strings.HasPrefix(id, "/") || strings.HasSuffix(id, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	for _, part := range strings.Split(id, "/") {
		if part == "" || part == "." || part == ".." {
			return fmt.Errorf("%w: %q", ErrInvalidID, id)
		}
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.ContainsRune("/_+-.~", c):
		default:
			return fmt.Errorf("%w: %q", ErrInvalidID, id)
		}
	}
	return nil
}

// fixedZone resolves offsets and the UTC, GMT and UT prefixes. ok is false
// for IDs that must be looked up by name.
func fixedZone(id string) (z temporal.Zone, ok bool, err error) {
	if id == "Z" || strings.HasPrefix(id, "+") || strings.HasPrefix(id, "-") {
		off, err := temporal.ParseOffset(id)
		if err != nil {
			return nil, true, fmt.Errorf("%w: %w", ErrInvalidID, err)
		}
		return off, true, nil
	}
	for _, prefix := range []string{"UTC", "GMT", "UT"} {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		rest := id[len(prefix):]
		if rest == "" {
			return temporal.NewFixedZone(prefix, temporal.UTC), true, nil
		}
		if rest[0] != '+' && rest[0] != '-' {
			return nil, false, nil
		}
		off, err := temporal.ParseOffset(rest)
		if err != nil {
			return nil, true, fmt.Errorf("%w: %w", ErrInvalidID, err)
		}
		if off == temporal.UTC {
			return temporal.NewFixedZone(prefix, temporal.UTC), true, nil
		}
		return temporal.NewFixedZone(prefix+off.ID(), off), true, nil
	}
	return nil, false, nil
}
