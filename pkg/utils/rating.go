package utils

import (
	"math"
)

// AverageRating returns the arithmetic mean of the given ratings rounded to
// two decimal places, or 0 when there are none.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	mean := float64(sum) / float64(len(ratings))
	return math.Round(mean*100) / 100
}

// PackageAverageRating is the on-read aggregate shown on package listings,
// rounded to one decimal place. Returns 0 when the package has no reviews.
func PackageAverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	mean := float64(sum) / float64(len(ratings))
	return math.Round(mean*10) / 10
}
