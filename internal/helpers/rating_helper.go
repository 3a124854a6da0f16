package helpers

import "math"

// AverageRating computes a driver's aggregate rating as the arithmetic
// mean of all review ratings, rounded to one decimal. The second return
// value is false when there are no ratings to average, in which case
// the caller must leave the driver's stored rating untouched.
func AverageRating(ratings []int) (float64, bool) {
	if len(ratings) == 0 {
		return 0, false
	}

	sum := 0
	for _, rating := range ratings {
		sum += rating
	}

	mean := float64(sum) / float64(len(ratings))
	return math.Round(mean*10) / 10, true
}
