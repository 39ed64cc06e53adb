package services

import "math"

const overallKey = "overall"

// OverallRating returns the summary score for a ratings map. An explicit
// "overall" entry always wins and is never recomputed; otherwise the result
// is the average of all category scores, rounded to one decimal place. An
// empty map scores 0.
func OverallRating(ratings map[string]float64) float64 {
	if overall, ok := ratings[overallKey]; ok {
		return overall
	}
	if len(ratings) == 0 {
		return 0
	}

	var sum float64
	var n int
	for key, value := range ratings {
		if key == overallKey {
			continue
		}
		sum += value
		n++
	}
	if n == 0 {
		return 0
	}

	return math.Round(sum/float64(n)*10) / 10
}
