package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"showtime-itinerary-service/internal/adapters/chart"
	"showtime-itinerary-service/internal/config"
	"showtime-itinerary-service/internal/domain"
	"showtime-itinerary-service/internal/services"

	"github.com/spf13/cobra"
)

type planFlags struct {
	venuePath string
	date      string
	scores    []string
	buffer    int
	begin     string
	end       string
	decay     float64
	horizon   int
	exact     bool
	maxPaths  int
	maxVisits int
	chartPath string
}

func newPlanCmd() *cobra.Command {
	f := &planFlags{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan the best itinerary for one day",
		Long: `Plan the itinerary with the highest total score for one day at a venue.

Each --score gives the value of watching a show once; shows without a score
are worth nothing. Watching a show again earns its score divided by the decay
factor for every earlier visit.

Examples:
  itinerary plan --venue data/venues/grand-parc.yaml --score "Les Vikings=5"
  itinerary plan --venue park.yaml --date 2026-10-19 --score "Les Vikings=5" \
    --score "Le Dernier Panache=3" --buffer 10 --begin 10:00 --end 18:00
  itinerary plan --venue park.yaml --score "Les Vikings=5" --exact --chart day.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.venuePath, "venue", "", "YAML venue file (required)")
	cmd.Flags().StringVarP(&f.date, "date", "d", "", "day to plan as YYYY-MM-DD (default: first date in the venue file)")
	cmd.Flags().StringArrayVarP(&f.scores, "score", "s", nil, `show preference as "Name=score", repeatable`)
	cmd.Flags().IntVarP(&f.buffer, "buffer", "b", 0, "extra minutes between consecutive shows")
	cmd.Flags().StringVar(&f.begin, "begin", "", "earliest show start as HH:MM")
	cmd.Flags().StringVar(&f.end, "end", "", "latest show start as HH:MM")
	cmd.Flags().Float64Var(&f.decay, "decay", 2, "score divisor per earlier visit of the same show, must be > 1 (env DECAY_FACTOR)")
	cmd.Flags().IntVar(&f.horizon, "horizon", domain.MinutesPerDay, "minute by which every show must have ended")
	cmd.Flags().BoolVar(&f.exact, "exact", false, "enumerate every itinerary instead of the fast search")
	cmd.Flags().IntVar(&f.maxPaths, "max-paths", services.DefaultExactMaxPaths, "itinerary limit for --exact")
	cmd.Flags().IntVar(&f.maxVisits, "max-visits", 0, "visit cap per itinerary for --exact, 0 for none (env EXACT_MAX_VISITS)")
	cmd.Flags().StringVar(&f.chartPath, "chart", "", "also write an HTML score chart to this file")
	_ = cmd.MarkFlagRequired("venue")

	return cmd
}

func runPlan(cmd *cobra.Command, f *planFlags) error {
	file, err := LoadVenueFile(f.venuePath)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	f.applyDefaults(cmd, cfg)

	req, err := f.request(file)
	if err != nil {
		return err
	}

	planned, err := services.PlanVisit(cmd.Context(), req, file.Repository(), nil)
	if err != nil {
		if errors.Is(err, services.ErrNoFeasibleSchedule) {
			return fmt.Errorf("no show can be watched at %s on %s within the requested window",
				file.Venue.Name, req.Date.Format(time.DateOnly))
		}
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s, %s\n\n", file.Venue.Name, req.Date.Format(time.DateOnly))
	for _, line := range planned.Schedule {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintf(out, "\nTotal score: %.2f\n", planned.Itinerary.TotalScore)

	if f.chartPath != "" {
		if err := writeChart(f.chartPath, planned); err != nil {
			return err
		}
		fmt.Fprintf(out, "Chart written to %s\n", f.chartPath)
	}

	return nil
}

// applyDefaults takes planning defaults from the environment for flags left unset.
func (f *planFlags) applyDefaults(cmd *cobra.Command, cfg config.Config) {
	flags := cmd.Flags()
	if !flags.Changed("decay") {
		f.decay = cfg.DecayFactor
	}
	if !flags.Changed("horizon") {
		f.horizon = cfg.HorizonMinutes
	}
	if !flags.Changed("max-paths") {
		f.maxPaths = cfg.ExactMaxPaths
	}
	if !flags.Changed("max-visits") {
		f.maxVisits = cfg.ExactMaxVisits
	}
}

func (f *planFlags) request(file *VenueFile) (services.PlanVisitRequest, error) {
	date, err := f.planDate(file)
	if err != nil {
		return services.PlanVisitRequest{}, err
	}

	scores, err := parseScores(f.scores)
	if err != nil {
		return services.PlanVisitRequest{}, err
	}

	var window *domain.TimeWindow
	if f.begin != "" || f.end != "" {
		tw := domain.FullDay
		if f.begin != "" {
			if tw.Begin, err = domain.ParseClock(f.begin); err != nil {
				return services.PlanVisitRequest{}, fmt.Errorf("--begin: %w", err)
			}
		}
		if f.end != "" {
			if tw.End, err = domain.ParseClock(f.end); err != nil {
				return services.PlanVisitRequest{}, fmt.Errorf("--end: %w", err)
			}
		}
		window = &tw
	}

	return services.PlanVisitRequest{
		VenueID:       file.Venue.ID,
		Date:          date,
		Scores:        scores,
		BufferMinutes: f.buffer,
		Window:        window,
		DecayFactor:   f.decay,
		Horizon:       f.horizon,
		Exact:         f.exact,
		MaxPaths:      f.maxPaths,
		MaxVisits:     f.maxVisits,
	}, nil
}

func (f *planFlags) planDate(file *VenueFile) (time.Time, error) {
	if f.date != "" {
		date, err := time.Parse(time.DateOnly, strings.TrimSpace(f.date))
		if err != nil {
			return time.Time{}, fmt.Errorf("--date must be formatted as YYYY-MM-DD: %w", err)
		}
		return date, nil
	}

	if len(file.Showtimes) == 0 {
		return time.Time{}, fmt.Errorf("venue %q lists no showtimes, pass --date", file.Venue.ID)
	}
	return file.Showtimes[0].Date, nil
}

// parseScores reads "Name=score" pairs. The last '=' separates the score so
// names may contain '='.
func parseScores(raw []string) (map[string]float64, error) {
	scores := make(map[string]float64, len(raw))
	for _, item := range raw {
		i := strings.LastIndex(item, "=")
		if i < 0 {
			return nil, fmt.Errorf("--score %q: expected Name=score", item)
		}

		name := strings.TrimSpace(item[:i])
		if name == "" {
			return nil, fmt.Errorf("--score %q: empty show name", item)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(item[i+1:]), 64)
		if err != nil {
			return nil, fmt.Errorf("--score %q: %w", item, err)
		}
		if _, dup := scores[name]; dup {
			return nil, fmt.Errorf("--score: %q given more than once", name)
		}
		scores[name] = value
	}
	return scores, nil
}

func writeChart(path string, planned *services.PlannedVisit) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write chart: %w", err)
	}

	if err := chart.RenderItinerary(out, planned.Venue, planned.Itinerary); err != nil {
		_ = out.Close()
		return fmt.Errorf("write chart: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}
