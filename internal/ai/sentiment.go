package ai

import "strings"

// Sentiment labels for contact message triage.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// AFINN-style weights for a small English lexicon. Scores beyond ±2 flip the
// label away from neutral, matching the triage thresholds used on the
// dashboard.
var sentimentLexicon = map[string]int{
	"amazing":      4,
	"awesome":      4,
	"excellent":    3,
	"fantastic":    4,
	"great":        3,
	"good":         3,
	"love":         3,
	"loved":        3,
	"like":         2,
	"helpful":      2,
	"impressive":   3,
	"impressed":    3,
	"beautiful":    3,
	"brilliant":    4,
	"wonderful":    4,
	"perfect":      3,
	"thanks":       2,
	"thank":        2,
	"appreciate":   2,
	"interested":   2,
	"inspiring":    2,
	"bad":          -3,
	"awful":        -3,
	"terrible":     -3,
	"horrible":     -3,
	"hate":         -3,
	"hated":        -3,
	"broken":       -2,
	"bug":          -2,
	"slow":         -2,
	"ugly":         -2,
	"confusing":    -2,
	"disappointed": -2,
	"useless":      -2,
	"worst":        -3,
	"scam":         -4,
	"spam":         -2,
	"wrong":        -2,
	"problem":      -1,
	"issue":        -1,
}

// AnalyzeSentiment scores free text against the lexicon and returns a coarse
// label. It never fails; unknown words score zero.
func AnalyzeSentiment(text string) string {
	score := 0
	for _, word := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r != '\''
	}) {
		score += sentimentLexicon[strings.Trim(word, "'")]
	}

	switch {
	case score > 2:
		return SentimentPositive
	case score < -2:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}
