package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spf13/cobra"

	"github.com/ngrash/go-tzfmt/format"
	"github.com/ngrash/go-tzfmt/temporal"
	"github.com/ngrash/go-tzfmt/tzif"
)

func newTZifCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tzif",
		Short: "Inspect and compare TZif files",
	}
	cmd.AddCommand(newTZifInspectCmd(a), newTZifDiffCmd(a))
	return cmd
}

func newTZifInspectCmd(a *app) *cobra.Command {
	var (
		v1          bool
		raw         bool
		transitions bool
	)
	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print the contents of a TZif file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, rest, err := readTZif(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if raw {
				printData(w, data, v1)
			}
			if err := tzif.Validate(data); err != nil {
				fmt.Fprintln(w, "Validation failed:")
				fmt.Fprintln(w, " ", strings.ReplaceAll(err.Error(), "\n", "\n  "))
			}
			printSummary(w, data)
			if transitions {
				if err := printTransitions(w, data); err != nil {
					return err
				}
			}
			if len(rest) > 0 {
				fmt.Fprintln(w, "remaining data:", len(rest), "bytes")
			}
			a.logger.Debug("inspected", "file", args[0], "version", data.Version)
			return nil
		},
	}
	cmd.Flags().BoolVar(&v1, "v1", false, "always print the v1 header and data with --raw")
	cmd.Flags().BoolVar(&raw, "raw", false, "print headers and data blocks")
	cmd.Flags().BoolVarP(&transitions, "transitions", "t", false, "list the transitions")
	return cmd
}

func newTZifDiffCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "diff FILE_A FILE_B",
		Short: "Compare two TZif files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			adata, _, err := readTZif(args[0])
			if err != nil {
				return err
			}
			bdata, _, err := readTZif(args[1])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			// Empty and absent tables decode alike.
			if diff := cmp.Diff(adata, bdata, cmpopts.EquateEmpty()); diff != "" {
				fmt.Fprintln(w, "files are different: -A +B")
				fmt.Fprintln(w, diff)
			} else {
				fmt.Fprintln(w, "files are identical")
			}
			return nil
		},
	}
}

// readTZif decodes the named file and returns any bytes after the data.
func readTZif(name string) (tzif.Data, []byte, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return tzif.Data{}, nil, err
	}
	r := bytes.NewReader(b)
	data, err := tzif.DecodeData(r)
	if err != nil {
		return tzif.Data{}, nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	rest, err := io.ReadAll(r)
	if err != nil {
		return tzif.Data{}, nil, err
	}
	return data, rest, nil
}

func printSummary(w io.Writer, d tzif.Data) {
	fmt.Fprintln(w, "Version:", d.Version)
	for i, t := range d.Types() {
		dst := ""
		if t.DST {
			dst = " dst"
		}
		fmt.Fprintf(w, "Type %d: %s %s%s\n", i, temporal.Offset(t.Offset).ID(), t.Designation, dst)
	}
	if d.Version > tzif.V1 {
		fmt.Fprintf(w, "Footer: %q\n", d.V2Footer.TZString)
	}
}

// printTransitions lists each transition in UTC and in the local time it
// switches to. Transitions beyond the supported years are printed as Unix
// times.
func printTransitions(w io.Writer, d tzif.Data) error {
	types := d.Types()
	for _, tr := range d.Transitions() {
		t := types[tr.Type]
		at := temporal.Unix(tr.At)
		utc, err1 := temporal.ZonedAt(at, temporal.UTC)
		local, err2 := temporal.ZonedAt(at, temporal.Offset(t.Offset))
		if err1 != nil || err2 != nil {
			fmt.Fprintf(w, "@%d  %s\n", tr.At, t.Designation)
			continue
		}
		us, err := format.ISOOffsetDateTime.Format(utc)
		if err != nil {
			return err
		}
		ls, err := format.ISOOffsetDateTime.Format(local)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s  %s  %s\n", us, ls, t.Designation)
	}
	return nil
}

func printData(w io.Writer, d tzif.Data, v1 bool) {
	if d.Version == tzif.V1 || v1 {
		printHeader(w, d.V1Header)
		printBlock(w, tzif.V1, d.V1Data)
	}
	if d.Version > tzif.V1 {
		printHeader(w, d.V2Header)
		printBlock(w, d.V2Header.Version, d.V2Data)
		fmt.Fprintln(w, "Footer")
		fmt.Fprintln(w, "  TZString =", string(d.V2Footer.TZString))
		fmt.Fprintln(w)
	}
}

func printHeader(w io.Writer, h tzif.Header) {
	fmt.Fprintln(w, "Header")
	fmt.Fprintln(w, "  version  =", h.Version)
	fmt.Fprintln(w, "  isutcnt  =", h.Isutcnt)
	fmt.Fprintln(w, "  isstdcnt =", h.Isstdcnt)
	fmt.Fprintln(w, "  leapcnt  =", h.Leapcnt)
	fmt.Fprintln(w, "  timecnt  =", h.Timecnt)
	fmt.Fprintln(w, "  typecnt  =", h.Typecnt)
	fmt.Fprintln(w, "  charcnt  =", h.Charcnt)
	fmt.Fprintln(w)
}

func printBlock[T tzif.Time](w io.Writer, v tzif.Version, b tzif.DataBlock[T]) {
	fmt.Fprintln(w, "Data block", v)
	fmt.Fprintf(w, "  TransitionTimes (%d) = %v\n", len(b.TransitionTimes), b.TransitionTimes)
	fmt.Fprintf(w, "  TransitionTypes (%d) = %v\n", len(b.TransitionTypes), b.TransitionTypes)
	fmt.Fprintf(w, "  LocalTimeTypeRecord (%d) = %+v\n", len(b.LocalTimeTypeRecord), b.LocalTimeTypeRecord)
	fmt.Fprintf(w, "  TimeZoneDesignation (%d) = %v\n", len(b.TimeZoneDesignation), strings.Split(string(b.TimeZoneDesignation), "\x00"))
	fmt.Fprintf(w, "  LeapSecondRecords (%d) = %+v\n", len(b.LeapSecondRecords), b.LeapSecondRecords)
	fmt.Fprintf(w, "  StandardWallIndicators (%d) = %v\n", len(b.StandardWallIndicators), b.StandardWallIndicators)
	fmt.Fprintf(w, "  UTLocalIndicators (%d) = %v\n", len(b.UTLocalIndicators), b.UTLocalIndicators)
	fmt.Fprintln(w)
}
