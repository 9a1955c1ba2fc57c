package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the default planning horizon.
const MinutesPerDay = 24 * 60

// ParseClock converts "HH:MM" into minutes after midnight.
// "24:00" is accepted as the end of the day.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("parse clock %q: expected HH:MM", s)
	}

	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: hours: %w", s, err)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: minutes: %w", s, err)
	}

	if h < 0 || m < 0 || m > 59 || h*60+m > MinutesPerDay {
		return 0, fmt.Errorf("parse clock %q: out of range", s)
	}

	return h*60 + m, nil
}

// FormatClock renders minutes after midnight as zero-padded "HH:MM".
func FormatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
