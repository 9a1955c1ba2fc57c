package services

import "errors"

var (
	// ErrInvalidInput is returned before any computation when the planning input is malformed.
	ErrInvalidInput = errors.New("invalid planning input")

	// ErrNoFeasibleSchedule is returned when no attraction has a showtime that fits the day.
	ErrNoFeasibleSchedule = errors.New("no feasible schedule")

	// ErrStateSpaceExceeded is returned by exact planning when the path bound is hit.
	// Retrying without exact mode always completes.
	ErrStateSpaceExceeded = errors.New("itinerary search space exceeded, retry without exact mode")
)
