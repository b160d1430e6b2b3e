package utils

import (
	"time"

	"github.com/samber/lo"
	"golang.org/x/exp/constraints"
)

// FindIndex returns the position of item in slice, -1 when absent.
func FindIndex[T comparable](slice []T, item T) int {
	return lo.IndexOf(slice, item)
}

// Mean returns the arithmetic mean of values, 0 for an empty slice.
func Mean[T constraints.Integer | constraints.Float](values []T) float64 {
	if len(values) == 0 {
		return 0
	}
	return float64(lo.Sum(values)) / float64(len(values))
}

// MeanDuration averages durations, truncating to the nanosecond.
func MeanDuration(values []time.Duration) time.Duration {
	return time.Duration(Mean(values))
}

// Seconds converts a protocol timeout given in float seconds.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
