// Command tzfmt formats and parses date-time values with patterns, spreadsheet
// number formats and configured profiles, and inspects TZif files.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/ngrash/go-tzfmt/format"
	"github.com/ngrash/go-tzfmt/internal/config"
	"github.com/ngrash/go-tzfmt/tzdb/ianadist"
	"github.com/ngrash/go-tzfmt/zone"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd(&app{}).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds the state shared by all commands.
type app struct {
	verbose    bool
	configPath string
	zoneinfo   []string

	// profile is assembled from the formatter flags; profileName selects a
	// profile of the config file instead.
	profile     config.Profile
	profileName string

	// now returns the current time; nil means time.Now.
	now func() time.Time

	logger   *slog.Logger
	cfg      *config.File
	registry *zone.Registry
	iana     *ianadist.Client
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "tzfmt",
		Short:         "Format and parse date-time values",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}
	pf := root.PersistentFlags()
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log debug messages to stderr")
	pf.StringVar(&a.configPath, "config", "", "YAML file with format profiles")
	pf.StringSliceVar(&a.zoneinfo, "zoneinfo", nil, "zoneinfo directories (default: system directories)")

	root.AddCommand(
		newFormatCmd(a),
		newParseCmd(a),
		newZonesCmd(a),
		newTZifCmd(a),
		newReplCmd(a),
	)
	return root
}

// formatterFlags registers the flags that select a formatter.
func (a *app) formatterFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&a.profile.Pattern, "pattern", "p", "", "pattern such as yyyy-MM-dd'T'HH:mm")
	f.StringVar(&a.profile.Excel, "excel", "", "spreadsheet number format such as dd.mm.yyyy")
	f.StringVar(&a.profile.ISO, "iso", "", "predefined formatter such as ISO_LOCAL_DATE")
	f.StringVar(&a.profile.Locale, "locale", "", "locale (default: from the environment)")
	f.StringVar(&a.profile.Zone, "zone", "", "zone override such as Europe/Paris")
	f.StringVar(&a.profile.Chronology, "chronology", "", "chronology override: ISO or ThaiBuddhist")
	f.BoolVarP(&a.profile.CaseInsensitive, "ignore-case", "i", false, "match literals case-insensitively")
	f.StringVar(&a.profileName, "profile", "", "profile from the config file")
	cmd.MarkFlagsMutuallyExclusive("pattern", "excel", "iso", "profile")
}

func (a *app) setup(stderr io.Writer) error {
	if a.logger == nil {
		level := slog.LevelWarn
		if a.verbose {
			level = slog.LevelDebug
		}
		a.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	}
	if a.configPath != "" {
		cfg, err := config.LoadFile(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
		a.logger.Debug("loaded config", "path", a.configPath, "profiles", len(cfg.Formats))
	}
	if a.registry == nil {
		dirs := a.zoneinfo
		if a.cfg != nil {
			dirs = append(dirs, a.cfg.Zoneinfo...)
		}
		if len(dirs) == 0 {
			dirs = zone.SystemDirs()
		}
		a.registry = zone.NewRegistry(zone.WithDirs(dirs...), zone.WithLogger(a.logger))
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.iana == nil {
		a.iana = &ianadist.Client{Logger: a.logger}
	}
	return nil
}

// formatter builds the formatter selected by the flags. Without a
// selection it falls back to ISO_DATE_TIME.
func (a *app) formatter() (format.Formatter, error) {
	if a.profileName != "" {
		if a.cfg == nil {
			return format.Formatter{}, fmt.Errorf("--profile %s requires --config", a.profileName)
		}
		return a.cfg.Formatter(a.profileName, a.registry)
	}
	p := a.profile
	if p.Pattern == "" && p.Excel == "" && p.ISO == "" {
		p.ISO = "ISO_DATE_TIME"
	}
	if p.Locale == "" && a.cfg != nil {
		p.Locale = a.cfg.Locale
	}
	return p.Formatter(a.registry)
}
