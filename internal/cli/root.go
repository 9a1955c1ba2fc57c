// Package cli provides the itinerary command-line interface, which plans a day
// offline from a YAML venue file.
package cli

import (
	"io"
	"log"

	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.1.0"

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "itinerary",
		Short: "Plan a day of timed shows at a venue",
		Long: `itinerary recommends which shows to watch, and when, so that the total
preference score of the day is as high as possible. Repeated visits to the same
show count for less each time.

The venue, its walking distances and its showtimes are read from a YAML file.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Timing logs go to stderr only with --verbose.
			if !verbose {
				log.SetOutput(io.Discard)
			}
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log timings to stderr")

	root.AddCommand(newPlanCmd())
	root.AddCommand(newValidateCmd())

	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
