// Package config loads named formatter profiles from YAML files.
//
// A file looks like:
//
//	locale: de-DE
//	zoneinfo: [/usr/share/zoneinfo]
//	formats:
//	  log:
//	    pattern: "yyyy-MM-dd'T'HH:mm:ss.SSSXXX"
//	    zone: Europe/Paris
//	  sheet:
//	    excel: "dd.mm.yyyy hh:mm"
//	  thai:
//	    iso: ISO_LOCAL_DATE
//	    chronology: ThaiBuddhist
//
// Files are checked against an embedded JSON schema before they are
// decoded.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/ngrash/go-tzfmt/excelfmt"
	"github.com/ngrash/go-tzfmt/format"
	"github.com/ngrash/go-tzfmt/temporal"
)

//go:embed schema.json
var schemaJSON []byte

var schema = mustCompileSchema(schemaJSON)

func mustCompileSchema(b []byte) *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		panic(fmt.Errorf("parse config schema: %w", err))
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("config.schema.json", doc); err != nil {
		panic(fmt.Errorf("add config schema: %w", err))
	}
	s, err := c.Compile("config.schema.json")
	if err != nil {
		panic(fmt.Errorf("compile config schema: %w", err))
	}
	return s
}

// ErrUnknownProfile is returned by File.Formatter for names not in the file.
var ErrUnknownProfile = errors.New("unknown format profile")

// ValidationError reports a file that does not match the schema.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// File is a decoded configuration file.
type File struct {
	// Locale is the default locale of all profiles.
	Locale string `yaml:"locale"`
	// Zoneinfo lists additional directories with TZif files.
	Zoneinfo []string `yaml:"zoneinfo"`
	// Formats maps profile names to profiles.
	Formats map[string]Profile `yaml:"formats"`
}

// Profile describes one formatter. Exactly one of Pattern, Excel and ISO
// is set.
type Profile struct {
	Pattern         string `yaml:"pattern"`
	Excel           string `yaml:"excel"`
	ISO             string `yaml:"iso"`
	Locale          string `yaml:"locale"`
	Zone            string `yaml:"zone"`
	Chronology      string `yaml:"chronology"`
	CaseInsensitive bool   `yaml:"case_insensitive"`
}

// Load reads, validates and decodes a configuration.
func Load(r io.Reader) (*File, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var doc any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := validate(doc); err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &f, nil
}

// LoadFile is like Load but reads the named file.
func LoadFile(name string) (*File, error) {
	fh, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	f, err := Load(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}

// validate checks a YAML document against the schema. The document is
// round-tripped through JSON so that it holds the value types the
// validator expects.
func validate(doc any) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// Names returns the profile names in sorted order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Formats))
	for name := range f.Formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Formatter builds the named profile. Zone IDs are looked up in zones,
// which also becomes the zone provider of the formatter.
func (f *File) Formatter(name string, zones format.ZoneProvider) (format.Formatter, error) {
	p, ok := f.Formats[name]
	if !ok {
		return format.Formatter{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	if p.Locale == "" {
		p.Locale = f.Locale
	}
	fm, err := p.Formatter(zones)
	if err != nil {
		return format.Formatter{}, fmt.Errorf("profile %q: %w", name, err)
	}
	return fm, nil
}

// Formatter builds the profile. An empty locale selects
// format.DefaultLocale.
func (p Profile) Formatter(zones format.ZoneProvider) (format.Formatter, error) {
	locale := format.DefaultLocale()
	if p.Locale != "" {
		tag, err := language.Parse(p.Locale)
		if err != nil {
			return format.Formatter{}, fmt.Errorf("locale %q: %w", p.Locale, err)
		}
		locale = tag
	}

	f, err := p.base(locale)
	if err != nil {
		return format.Formatter{}, err
	}
	if p.CaseInsensitive {
		f, err = format.NewBuilder().ParseCaseInsensitive().Append(f).ToFormatterLocale(locale)
		if err != nil {
			return format.Formatter{}, err
		}
	}
	if f, err = f.WithLocale(locale); err != nil {
		return format.Formatter{}, err
	}
	if zones != nil {
		f = f.WithZoneProvider(zones)
	}
	if p.Chronology != "" {
		c, err := temporal.ChronologyByID(p.Chronology)
		if err != nil {
			return format.Formatter{}, err
		}
		f = f.WithChronology(c)
	}
	if p.Zone != "" {
		if zones == nil {
			zones = f.ZoneProvider()
		}
		z, err := zones.Zone(p.Zone)
		if err != nil {
			return format.Formatter{}, fmt.Errorf("zone %q: %w", p.Zone, err)
		}
		f = f.WithZone(z)
	}
	return f, nil
}

func (p Profile) base(locale language.Tag) (format.Formatter, error) {
	switch {
	case p.Pattern != "":
		return format.NewBuilder().AppendPattern(p.Pattern).ToFormatterLocale(locale)
	case p.Excel != "":
		return excelfmt.CompileLocale(p.Excel, locale)
	case p.ISO != "":
		f, ok := format.Predefined(p.ISO)
		if !ok {
			return format.Formatter{}, fmt.Errorf("%w: unknown predefined formatter %q", format.ErrInvalidArgument, p.ISO)
		}
		return f, nil
	}
	return format.Formatter{}, fmt.Errorf("%w: profile has no pattern", format.ErrInvalidArgument)
}
