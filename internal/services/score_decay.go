package services

import "math"

// DecayedScore returns the marginal preference of visiting an attraction again.
// The first visit is worth baseScore; each prior visit divides it by decayFactor once more.
func DecayedScore(baseScore float64, priorVisits int, decayFactor float64) float64 {
	if priorVisits <= 0 {
		return baseScore
	}
	return baseScore / math.Pow(decayFactor, float64(priorVisits))
}
