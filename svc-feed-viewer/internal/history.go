package internal

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/etesami/earthquake-feed/api/feedrpc"
)

func newHistoryCmd(o *options) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived events from a collector, newest first",
		Args:  cobra.NoArgs,
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

			events, err := src.History(ctx, limit)
			if err != nil {
				return err
			}
			if o.output == "json" {
				return writeJSON(cmd.OutOrStdout(), events)
			}
			writeHistory(cmd.OutOrStdout(), events)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", feedrpc.DefaultHistoryLimit, "maximum number of events")
	return cmd
}
