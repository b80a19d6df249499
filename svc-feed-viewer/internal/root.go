package internal

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/etesami/earthquake-feed/pkg/config"
	"github.com/etesami/earthquake-feed/pkg/logging"
)

// options holds the flags shared by every command. Defaults come from the
// same environment keys the collector reads.
type options struct {
	addr      string
	feedURL   string
	summary   string
	cachePath string
	policy    string
	rankBy    string
	output    string
	timeout   time.Duration
	verbose   bool
	noColor   bool
}

// NewRootCmd returns the root command of the feed viewer.
func NewRootCmd() *cobra.Command {
	config.LoadEnv(nil)
	cfg := config.ParseFeed()
	o := &options{}

	rootCmd := &cobra.Command{
		Use:           "quakes",
		Short:         "Browse the USGS earthquake summary feeds",
		Long:          "quakes loads a USGS summary feed, locally or from a running collector, and prints its header and ranked events.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if o.noColor {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&o.addr, "addr", "", "collector address host:port; empty runs the pipeline locally")
	flags.StringVar(&o.feedURL, "feed-url", cfg.FeedURL, "summary feed URL")
	flags.StringVar(&o.summary, "summary", cfg.Summary, "summary feed name, e.g. 4.5_week")
	flags.StringVar(&o.cachePath, "cache", cfg.CachePath, "path of the cached feed document")
	flags.StringVar(&o.policy, "policy", cfg.LoadPolicy, "load policy: prefer-fresh|prefer-cache")
	flags.StringVar(&o.rankBy, "rank-by", cfg.RankBy, "ranking: magnitude|intensity")
	flags.StringVarP(&o.output, "output", "o", "text", "output format: json|text")
	flags.DurationVar(&o.timeout, "timeout", 30*time.Second, "overall deadline for the command")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "log pipeline activity to stderr")
	flags.BoolVar(&o.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(newShowCmd(o))
	rootCmd.AddCommand(newHistoryCmd(o))
	rootCmd.AddCommand(newFeedsCmd(o))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func (o *options) logger() logging.Logger {
	if !o.verbose {
		return logging.NewDiscardLogger()
	}
	return logging.NewLoggerWithService("svc-feed-viewer")
}

// source opens the data source selected by --addr. The returned close
// function is never nil.
func (o *options) source() (snapshotSource, func() error, error) {
	if o.addr == "" {
		s, err := newLocalSource(o, o.logger())
		if err != nil {
			return nil, nil, err
		}
		return s, func() error { return nil }, nil
	}
	client, closeFn, err := dialCollector(o.addr)
	if err != nil {
		return nil, nil, err
	}
	return remoteSource{client}, closeFn, nil
}

func (o *options) validateOutput() error {
	switch o.output {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("unsupported output %q, use json or text", o.output)
	}
}
