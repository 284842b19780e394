package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newZonesCmd(a *app) *cobra.Command {
	var (
		iana    bool
		sources []string
	)
	cmd := &cobra.Command{
		Use:   "zones [PREFIX]",
		Short: "List known zone IDs",
		Long: `Zones lists the zone IDs of the zoneinfo directories.

With --iana the names of the latest IANA tzdb release are added, and with
--source the names of local tzdb source files. Names learned this way can be
parsed even when no zone data is installed for them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range sources {
				fh, err := os.Open(name)
				if err != nil {
					return err
				}
				err = a.registry.LoadSource(fh)
				fh.Close()
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
			}
			if iana {
				rel, _, err := a.iana.Latest(cmd.Context(), "")
				if err != nil {
					return fmt.Errorf("fetch latest tzdb release: %w", err)
				}
				if err := a.registry.LoadRelease(rel); err != nil {
					return err
				}
			}
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}
			for _, id := range a.registry.IDs() {
				if strings.HasPrefix(id, prefix) {
					fmt.Fprintln(cmd.OutOrStdout(), id)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&iana, "iana", false, "add the names of the latest IANA release")
	cmd.Flags().StringSliceVar(&sources, "source", nil, "tzdb source files whose names are added")
	return cmd
}
