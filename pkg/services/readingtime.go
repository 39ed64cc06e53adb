package services

import (
	"fmt"
	"math"
	"strings"

	"burger-blog/pkg/models"
)

// Average adult reading speed used for the estimate.
const wordsPerMinute = 200

// EstimateReadingTime computes a reading-time estimate over the raw body
// text. Markup is counted as words; the estimate does not need to be exact.
func EstimateReadingTime(text string) models.ReadingTime {
	words := len(strings.Fields(text))
	minutes := float64(words) / wordsPerMinute

	return models.ReadingTime{
		Minutes: minutes,
		Words:   words,
		Text:    fmt.Sprintf("%d min read", int(math.Ceil(minutes))),
	}
}
