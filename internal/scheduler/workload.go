package scheduler

import "math"

const (
	compressionFactor = 0.75
	minimumMinutes    = 30
)

// ReduceMinutes compresses a requested daily budget by 25% with a 30 minute floor.
// The result is what the engine actually tries to place each day.
func ReduceMinutes(hoursPerDay float64) int {
	minutes := int(math.Round(hoursPerDay * 60 * compressionFactor))
	if minutes < minimumMinutes {
		return minimumMinutes
	}
	return minutes
}
