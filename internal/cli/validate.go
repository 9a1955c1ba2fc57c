package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var venuePath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a YAML venue file",
		Long: `Check that a venue file parses, that its distances form a valid matrix and
that every showtime names a known show at a valid HH:MM time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := LoadVenueFile(venuePath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s): %d shows, %d showtimes\n",
				file.Venue.Name, file.Venue.ID, len(file.Venue.Attractions), file.ShowCount())
			for _, d := range file.Showtimes {
				fmt.Fprintf(out, "  %s: %d showtimes\n", d.Date.Format(time.DateOnly), d.Times.Count())
			}
			fmt.Fprintln(out, "ok")
			return nil
		},
	}

	cmd.Flags().StringVar(&venuePath, "venue", "", "YAML venue file (required)")
	_ = cmd.MarkFlagRequired("venue")

	return cmd
}
