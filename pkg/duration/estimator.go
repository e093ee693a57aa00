// Package duration converts word counts into estimated speaking time.
package duration

import (
	"math"
	"regexp"
)

// WordsPerMinute is an average speech rate for synthesized voices.
// Both the duration estimate and the shortening word budget derive from it.
const WordsPerMinute = 180

// Word runs across any script; RE2's \w is ASCII-only, which would count
// non-Latin text as zero words and accented words more than once.
var wordRegex = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Estimate returns the estimated time in seconds to read text aloud,
// rounded to two decimal places. Empty text estimates to 0.
func Estimate(text string) float64 {
	words := len(wordRegex.FindAllString(text, -1))
	minutes := float64(words) / WordsPerMinute
	return math.Round(minutes*60*100) / 100
}

// TargetWords returns the word budget that fits maxSeconds of speech.
func TargetWords(maxSeconds int) int {
	if maxSeconds < 0 {
		return 0
	}
	return int(math.Round(float64(maxSeconds) / 60 * WordsPerMinute))
}
