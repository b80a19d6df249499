package internal

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	api "github.com/etesami/earthquake-feed/api"
)

func newShowCmd(o *options) *cobra.Command {
	var (
		record  int
		refresh bool
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the feed header and its ranked events",
		Long: `Print the feed header followed by one line per event, strongest first.
With --record the full record at that position is printed as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.validateOutput(); err != nil {
				return err
			}
			src, closeFn, err := o.source()
			if err != nil {
				return err
			}
			defer closeFn()

			ctx, cancel := context.WithTimeout(cmd.Context(), o.timeout)
			defer cancel()

			var snap *api.Snapshot
			// A collector only switches feeds on an explicit refresh.
			if refresh || (o.addr != "" && cmd.Flags().Changed("summary")) {
				summary := ""
				if cmd.Flags().Changed("summary") {
					summary = o.summary
				}
				snap, err = src.Refresh(ctx, summary)
			} else {
				snap, err = src.Snapshot(ctx)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if record >= 0 {
				r, err := snap.Record(record)
				if err != nil {
					return err
				}
				if o.output == "json" {
					return writeJSON(out, r)
				}
				writeHeader(out, snap)
				writeLabels(out, snap)
				fmt.Fprintln(out)
				writeRecord(out, r)
				return nil
			}

			if o.output == "json" {
				return writeJSON(out, snap)
			}
			writeHeader(out, snap)
			writeLabels(out, snap)
			return nil
		},
	}
	cmd.Flags().IntVarP(&record, "record", "r", -1, "index of the event to print in full")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "reload the feed before printing")
	return cmd
}
