package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ngrash/go-tzfmt/format"
	"github.com/ngrash/go-tzfmt/temporal"
)

func newFormatCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format [VALUE...]",
		Short: "Format values, or the current time",
		Long: `Format prints each VALUE with the selected formatter.

A VALUE is an ISO-8601 date, time or date-time, optionally with an offset
and a bracketed zone, or @SECONDS for an instant. Without values the current
time in UTC is formatted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.formatter()
			if err != nil {
				return err
			}
			var values []temporal.Accessor
			for _, arg := range args {
				v, err := a.value(arg)
				if err != nil {
					return err
				}
				values = append(values, v)
			}
			if len(values) == 0 {
				values = append(values, temporal.ZonedOfInstant(temporal.Unix(a.now().Unix()), temporal.UTC))
			}
			for _, v := range values {
				s, err := f.Format(v)
				if err != nil {
					return err
				}
				a.logger.Debug("formatted", "value", v, "formatter", f)
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
	a.formatterFlags(cmd)
	return cmd
}

var errNoOffset = errors.New("no offset")

// withOffset keeps parse results that carry an offset as they are.
func withOffset(v temporal.Accessor) (temporal.Accessor, error) {
	if !v.IsSupported(temporal.OffsetSeconds) {
		return nil, errNoOffset
	}
	return v, nil
}

// value reads a command line value into the most specific type it
// describes.
func (a *app) value(s string) (temporal.Accessor, error) {
	if sec, ok := strings.CutPrefix(s, "@"); ok {
		n, err := strconv.ParseInt(sec, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("instant %q: %w", s, err)
		}
		return temporal.Unix(n), nil
	}
	queries := []struct {
		f       format.Formatter
		queries []temporal.Query[temporal.Accessor]
	}{
		{format.ISODateTime, []temporal.Query[temporal.Accessor]{
			temporal.AsAccessorQuery(temporal.ZonedDateTimeFrom),
			temporal.AsAccessorQuery(temporal.LocalDateTimeFrom),
		}},
		{format.ISODate, []temporal.Query[temporal.Accessor]{
			withOffset,
			temporal.AsAccessorQuery(temporal.LocalDateFrom),
		}},
		{format.ISOTime, []temporal.Query[temporal.Accessor]{
			temporal.AsAccessorQuery(temporal.OffsetTimeFrom),
			temporal.AsAccessorQuery(temporal.LocalTimeFrom),
		}},
	}
	var errs []error
	for _, q := range queries {
		v, err := q.f.WithZoneProvider(a.registry).ParseBest(s, q.queries...)
		if err == nil {
			return v, nil
		}
		errs = append(errs, err)
	}
	return nil, fmt.Errorf("value %q: %w", s, errors.Join(errs...))
}
