package domain

import (
	"fmt"
	"slices"
)

// ShowtimeSet lists, per attraction id, the minutes after midnight at which a showing starts.
// An attraction with no entries is simply not schedulable.
type ShowtimeSet [][]int

// TimeWindow is an inclusive range of minutes after midnight restricting showtime starts.
type TimeWindow struct {
	Begin int
	End   int
}

// FullDay is the window used when a request does not restrict the day.
var FullDay = TimeWindow{Begin: 0, End: MinutesPerDay}

func (w TimeWindow) Validate() error {
	if w.Begin < 0 || w.End > MinutesPerDay {
		return fmt.Errorf("time window %s-%s: outside the day", FormatClock(w.Begin), FormatClock(w.End))
	}
	if w.Begin > w.End {
		return fmt.Errorf("time window %s-%s: begin after end", FormatClock(w.Begin), FormatClock(w.End))
	}
	return nil
}

// Contains reports whether a start minute falls within the window.
func (w TimeWindow) Contains(minute int) bool {
	return minute >= w.Begin && minute <= w.End
}

// Window returns a copy keeping only the starts inside w.
func (s ShowtimeSet) Window(w TimeWindow) ShowtimeSet {
	out := make(ShowtimeSet, len(s))
	for i, starts := range s {
		kept := make([]int, 0, len(starts))
		for _, start := range starts {
			if w.Contains(start) {
				kept = append(kept, start)
			}
		}
		out[i] = kept
	}
	return out
}

// Normalized returns a copy with every attraction's starts sorted ascending and deduplicated.
func (s ShowtimeSet) Normalized() ShowtimeSet {
	out := make(ShowtimeSet, len(s))
	for i, starts := range s {
		c := make([]int, len(starts))
		copy(c, starts)
		slices.Sort(c)
		out[i] = slices.Compact(c)
	}
	return out
}

// Count returns the total number of showtimes across attractions.
func (s ShowtimeSet) Count() int {
	n := 0
	for _, starts := range s {
		n += len(starts)
	}
	return n
}
