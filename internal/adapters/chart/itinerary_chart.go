package chart

import (
	"errors"
	"fmt"
	"io"

	"showtime-itinerary-service/internal/domain"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderItinerary writes an HTML page charting the score each visit contributes,
// one bar per visit in chronological order.
func RenderItinerary(w io.Writer, venue *domain.Venue, it *domain.Itinerary) error {
	if venue == nil || it == nil {
		return errors.New("render itinerary: venue and itinerary must be non-nil")
	}

	labels := make([]string, 0, len(it.Visits))
	bars := make([]opts.BarData, 0, len(it.Visits))
	for _, v := range it.Visits {
		labels = append(labels, fmt.Sprintf(
			"%s %s",
			domain.FormatClock(v.Start), venue.Attractions[v.Attraction].Name,
		))
		bars = append(bars, opts.BarData{Value: v.Score})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: venue.Name + " itinerary",
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    venue.Name,
			Subtitle: fmt.Sprintf("total score %.2f over %d visits", it.TotalScore, len(it.Visits)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	bar.SetXAxis(labels).AddSeries("score", bars,
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Position: "top",
		}),
	)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("render itinerary: %w", err)
	}

	return nil
}
