package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const parkYAML = `
venue_id: park
name: Park
attractions:
  - name: Triumph
    duration_minutes: 30
  - name: Vikings
    duration_minutes: 20
distances:
  - [10]
showtimes:
  - date: "2026-10-19"
    attraction: Triumph
    times: ["10:00", "11:40"]
  - date: "2026-10-19"
    attraction: Vikings
    times: ["11:30", "10:40"]
`

func TestMain(m *testing.M) {
	for _, key := range []string{"DECAY_FACTOR", "HORIZON_MINUTES", "EXACT_MAX_PATHS", "EXACT_MAX_VISITS"} {
		_ = os.Unsetenv(key)
	}
	os.Exit(m.Run())
}

func writeVenueFile(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "venue.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestLoadVenueFile(t *testing.T) {
	file, err := LoadVenueFile(writeVenueFile(t, parkYAML))
	require.NoError(t, err)

	require.Equal(t, "park", file.Venue.ID)
	require.Equal(t, []int{30, 20}, file.Venue.Durations())
	require.Len(t, file.Showtimes, 1)
	require.Equal(t, [][]int{{600, 700}, {640, 690}}, [][]int(file.Showtimes[0].Times))
	require.Equal(t, 4, file.ShowCount())
}

func TestLoadVenueFileErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "empty", body: "", want: "file is empty"},
		{name: "unknown field", body: "venue_id: park\nopening: 09:00\n", want: "parse yaml"},
		{name: "bad triangle", body: "venue_id: park\nattractions:\n  - name: A\n  - name: B\ndistances: []\n", want: "triangle rows"},
		{
			name: "unknown show",
			body: "venue_id: park\nattractions:\n  - name: A\nshowtimes:\n  - date: \"2026-10-19\"\n    attraction: B\n    times: [\"10:00\"]\n",
			want: "unknown attraction",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadVenueFile(writeVenueFile(t, tt.body))
			require.ErrorContains(t, err, tt.want)
		})
	}

	_, err := LoadVenueFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestPlanCommand(t *testing.T) {
	path := writeVenueFile(t, parkYAML)

	out, err := run(t, "plan", "--venue", path, "--score", "Triumph=5", "--score", "Vikings=3", "--buffer", "5")
	require.NoError(t, err)
	require.Equal(t, `Park, 2026-10-19

Watch Triumph from 10:00-10:30
Walk to Vikings (10 mins)
Watch Vikings from 11:30-11:50

Total score: 8.00
`, out)
}

func TestPlanCommandWindowAndExact(t *testing.T) {
	path := writeVenueFile(t, parkYAML)

	out, err := run(t, "plan", "--venue", path, "--date", "2026-10-19",
		"-s", "Triumph=5", "-s", "Vikings=3", "-b", "5", "--begin", "10:50", "--end", "12:00", "--exact")
	require.NoError(t, err)
	require.Contains(t, out, "Watch Triumph from 11:40-12:10")
	require.Contains(t, out, "Total score: 5.00")
}

func TestPlanCommandMaxVisits(t *testing.T) {
	path := writeVenueFile(t, parkYAML)

	out, err := run(t, "plan", "--venue", path, "-s", "Triumph=5", "-s", "Vikings=3", "-b", "5", "--exact", "--max-visits", "1")
	require.NoError(t, err)
	require.Contains(t, out, "Watch Triumph from 10:00-10:30")
	require.NotContains(t, out, "Walk to")
	require.Contains(t, out, "Total score: 5.00")

	t.Setenv("EXACT_MAX_VISITS", "1")
	out, err = run(t, "plan", "--venue", path, "-s", "Triumph=5", "-s", "Vikings=3", "-b", "5", "--exact")
	require.NoError(t, err)
	require.Contains(t, out, "Total score: 5.00")
}

func TestPlanCommandChart(t *testing.T) {
	path := writeVenueFile(t, parkYAML)
	chartPath := filepath.Join(t.TempDir(), "day.html")

	out, err := run(t, "plan", "--venue", path, "-s", "Vikings=3", "--chart", chartPath)
	require.NoError(t, err)
	require.Contains(t, out, "Chart written to "+chartPath)

	html, err := os.ReadFile(chartPath)
	require.NoError(t, err)
	require.Contains(t, string(html), "Vikings")
}

func TestPlanCommandErrors(t *testing.T) {
	path := writeVenueFile(t, parkYAML)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "missing venue", args: []string{"plan"}, want: `required flag(s) "venue" not set`},
		{name: "bad score", args: []string{"plan", "--venue", path, "-s", "Triumph"}, want: "expected Name=score"},
		{name: "bad score value", args: []string{"plan", "--venue", path, "-s", "Triumph=lots"}, want: "invalid syntax"},
		{name: "duplicate score", args: []string{"plan", "--venue", path, "-s", "Triumph=1", "-s", "Triumph=2"}, want: "more than once"},
		{name: "unknown show", args: []string{"plan", "--venue", path, "-s", "Carousel=1"}, want: "unknown attraction"},
		{name: "bad date", args: []string{"plan", "--venue", path, "--date", "19.10.2026"}, want: "YYYY-MM-DD"},
		{name: "bad begin", args: []string{"plan", "--venue", path, "--begin", "9h"}, want: "--begin"},
		{name: "decay", args: []string{"plan", "--venue", path, "--decay", "1"}, want: "invalid planning input"},
		{name: "horizon past one day", args: []string{"plan", "--venue", path, "--horizon", "5000000"}, want: "horizon must be within"},
		{name: "negative max visits", args: []string{"plan", "--venue", path, "--exact", "--max-visits", "-1"}, want: "max visits"},
		{name: "no shows that day", args: []string{"plan", "--venue", path, "--date", "2026-10-20"}, want: "no show can be watched"},
		{
			name: "exact bound",
			args: []string{"plan", "--venue", path, "-s", "Triumph=5", "--exact", "--max-paths", "2"},
			want: "without exact mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.ErrorContains(t, err, tt.want)
		})
	}
}

func TestPlanCommandDecay(t *testing.T) {
	path := writeVenueFile(t, `
venue_id: solo
name: Solo
attractions:
  - name: Show
    duration_minutes: 30
distances: []
showtimes:
  - date: "2026-10-19"
    attraction: Show
    times: ["10:00", "11:00"]
`)

	out, err := run(t, "plan", "--venue", path, "-s", "Show=4")
	require.NoError(t, err)
	require.Contains(t, out, "Total score: 6.00")

	out, err = run(t, "plan", "--venue", path, "-s", "Show=4", "--decay", "4")
	require.NoError(t, err)
	require.Contains(t, out, "Total score: 5.00")

	t.Setenv("DECAY_FACTOR", "4")
	out, err = run(t, "plan", "--venue", path, "-s", "Show=4")
	require.NoError(t, err)
	require.Contains(t, out, "Total score: 5.00")

	out, err = run(t, "plan", "--venue", path, "-s", "Show=4", "--decay", "2")
	require.NoError(t, err)
	require.Contains(t, out, "Total score: 6.00")
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, "validate", "--venue", writeVenueFile(t, parkYAML))
	require.NoError(t, err)
	require.Equal(t, "Park (park): 2 shows, 4 showtimes\n  2026-10-19: 4 showtimes\nok\n", out)
}

func TestValidateBundledVenue(t *testing.T) {
	out, err := run(t, "validate", "--venue", filepath.Join("..", "..", "data", "venues", "grand-parc.yaml"))
	require.NoError(t, err)
	require.Contains(t, out, "Grand Parc (grand-parc): 7 shows, 25 showtimes")
}
