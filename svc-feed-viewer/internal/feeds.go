package internal

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/etesami/earthquake-feed/pkg/feed"
)

type feedEntry struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Current bool   `json:"current"`
}

func newFeedsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "feeds",
		Short: "List the summary feeds that can be passed to --summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.validateOutput(); err != nil {
				return err
			}
			current := o.feedURL
			if o.summary != "" {
				var err error
				if current, err = feed.WithSummary(o.feedURL, o.summary); err != nil {
					return err
				}
			}

			var entries []feedEntry
			for _, level := range feed.Levels {
				for _, period := range feed.Periods {
					name, _ := feed.Summary(level, period)
					url, _ := feed.SummaryURL(level, period)
					entries = append(entries, feedEntry{Name: name, URL: url, Current: url == current})
				}
			}

			if o.output == "json" {
				return writeJSON(cmd.OutOrStdout(), entries)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, e := range entries {
				mark := " "
				if e.Current {
					mark = "*"
				}
				fmt.Fprintf(tw, "%s %s\t%s\n", mark, e.Name, e.URL)
			}
			return tw.Flush()
		},
	}
}
