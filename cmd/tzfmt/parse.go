package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ngrash/go-tzfmt/format"
	"github.com/ngrash/go-tzfmt/temporal"
)

// bestQueries order the result types from most to least specific.
var bestQueries = []temporal.Query[temporal.Accessor]{
	temporal.AsAccessorQuery(temporal.ZonedDateTimeFrom),
	temporal.AsAccessorQuery(temporal.LocalDateTimeFrom),
	temporal.AsAccessorQuery(temporal.LocalDateFrom),
	temporal.AsAccessorQuery(temporal.OffsetTimeFrom),
	temporal.AsAccessorQuery(temporal.LocalTimeFrom),
	temporal.AsAccessorQuery(temporal.InstantFrom),
}

func newParseCmd(a *app) *cobra.Command {
	var unresolved bool
	cmd := &cobra.Command{
		Use:   "parse TEXT...",
		Short: "Parse texts with the selected formatter",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.formatter()
			if err != nil {
				return err
			}
			for _, text := range args {
				if unresolved {
					err = printUnresolved(cmd.OutOrStdout(), f, text)
				} else {
					err = printParsed(cmd.OutOrStdout(), f, text)
				}
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
	a.formatterFlags(cmd)
	cmd.Flags().BoolVar(&unresolved, "unresolved", false, "print the fields as parsed, without resolving them")
	return cmd
}

// printParsed prints the most specific value text describes, or the
// resolved fields if no value type fits.
func printParsed(w io.Writer, f format.Formatter, text string) error {
	r, err := f.Parse(text)
	if err != nil {
		return err
	}
	for _, q := range bestQueries {
		if v, err := q(r); err == nil {
			fmt.Fprintln(w, v)
			return nil
		}
	}
	fmt.Fprintln(w, r)
	return nil
}

func printUnresolved(w io.Writer, f format.Formatter, text string) error {
	pos := format.NewParsePosition(0)
	u, err := f.ParseUnresolved(text, pos)
	if err != nil {
		return err
	}
	if u == nil {
		return &format.ParseError{Text: text, Index: pos.ErrorIndex, Err: format.ErrMismatch}
	}
	if pos.Index < len(text) {
		fmt.Fprintf(w, "%v (unparsed: %q)\n", u, text[pos.Index:])
		return nil
	}
	fmt.Fprintln(w, u)
	return nil
}
