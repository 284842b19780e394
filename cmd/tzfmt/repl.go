package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/ngrash/go-tzfmt/format"
	"github.com/ngrash/go-tzfmt/temporal"
)

const replHelp = `Lines are parsed with the current formatter. Commands:
  :pattern P     use pattern P
  :excel CODE    use a spreadsheet number format
  :iso NAME      use a predefined formatter
  :profile NAME  use a profile of the config file
  :locale TAG    set the locale
  :zone ID       set the zone override, or clear it without ID
  :chrono ID     set the chronology override, or clear it without ID
  :format VALUE  format an ISO-8601 value or @SECONDS
  :now           format the current time
  :show          print the current formatter
  :help          print this help
  :quit          leave`

func newReplCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse and format interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(a)
			if err != nil {
				return err
			}
			rl, err := readline.New("tzfmt> ")
			if err != nil {
				return fmt.Errorf("failed to create readline: %w", err)
			}
			defer rl.Close()

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "Type :help for commands.")
			for {
				line, err := rl.Readline()
				if err != nil {
					if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
						return nil
					}
					return fmt.Errorf("failed to read input: %w", err)
				}
				quit, err := s.exec(w, line)
				if err != nil {
					fmt.Fprintln(w, "error:", err)
				}
				if quit {
					return nil
				}
			}
		},
	}
	a.formatterFlags(cmd)
	return cmd
}

// session is the state of an interactive session.
type session struct {
	a       *app
	profile string
	f       format.Formatter
}

func newSession(a *app) (*session, error) {
	f, err := a.formatter()
	if err != nil {
		return nil, err
	}
	return &session{a: a, f: f}, nil
}

// exec runs one input line. It reports whether the session should end.
func (s *session) exec(w io.Writer, line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	if !strings.HasPrefix(line, ":") {
		return false, printParsed(w, s.f, line)
	}
	name, arg, _ := strings.Cut(line[1:], " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case "quit", "q":
		return true, nil
	case "help":
		fmt.Fprintln(w, replHelp)
		return false, nil
	case "show":
		fmt.Fprintln(w, s.f)
		return false, nil
	case "now":
		return false, s.print(w, temporal.ZonedOfInstant(temporal.Unix(s.a.now().Unix()), temporal.UTC))
	case "format":
		v, err := s.a.value(arg)
		if err != nil {
			return false, err
		}
		return false, s.print(w, v)
	case "pattern", "excel", "iso", "profile":
		return false, s.replace(name, arg)
	case "locale", "zone", "chrono":
		return false, s.override(name, arg)
	}
	return false, fmt.Errorf("unknown command :%s, see :help", name)
}

func (s *session) print(w io.Writer, v temporal.Accessor) error {
	out, err := s.f.Format(v)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, out)
	return nil
}

// replace swaps the formatter and keeps the overrides of the current one.
func (s *session) replace(kind, arg string) error {
	if arg == "" {
		return fmt.Errorf(":%s needs an argument", kind)
	}
	a := *s.a
	a.profile.Pattern, a.profile.Excel, a.profile.ISO, a.profileName = "", "", "", ""
	switch kind {
	case "pattern":
		a.profile.Pattern = arg
	case "excel":
		a.profile.Excel = arg
	case "iso":
		a.profile.ISO = arg
	case "profile":
		a.profileName = arg
	}
	f, err := a.formatter()
	if err != nil {
		return err
	}
	if kind != "profile" {
		f, err = f.WithLocale(s.f.Locale())
		if err != nil {
			return err
		}
		if z := s.f.Zone(); z != nil {
			f = f.WithZone(z)
		}
		if c := s.f.Chronology(); c != nil {
			f = f.WithChronology(c)
		}
	}
	s.f = f
	return nil
}

func (s *session) override(kind, arg string) error {
	switch kind {
	case "locale":
		tag := format.DefaultLocale()
		if arg != "" {
			var err error
			if tag, err = language.Parse(arg); err != nil {
				return err
			}
		}
		f, err := s.f.WithLocale(tag)
		if err != nil {
			return err
		}
		s.f = f
	case "zone":
		if arg == "" {
			s.f = s.f.WithZone(nil)
			return nil
		}
		z, err := s.a.registry.Zone(arg)
		if err != nil {
			return err
		}
		s.f = s.f.WithZone(z)
	case "chrono":
		if arg == "" {
			s.f = s.f.WithChronology(nil)
			return nil
		}
		c, err := temporal.ChronologyByID(arg)
		if err != nil {
			return err
		}
		s.f = s.f.WithChronology(c)
	}
	return nil
}
