package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X ...".
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print viewer version info",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "quakes viewer\n")
			fmt.Fprintf(cmd.OutOrStdout(), " - version: %s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), " - git: %s\n", GitCommit)
			return nil
		},
	}
}
