package scoring

import (
	"strings"
	"unicode"

	"wellness-go/internal/models"
)

// Sentiment describes how a score change should be read by the user.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// higherIsBetterPatterns are matched against the compacted type name. Every
// other assessment is a symptom scale where lower is better.
var higherIsBetterPatterns = []string{
	"emotionalintelligence",
	"teique",
	"personality",
	"miniipip",
	"ipip",
	"bigfive",
}

func compactType(t string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(t) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsHigherBetter reports whether a rising score is an improvement.
func IsHigherBetter(assessmentType string) bool {
	key := compactType(assessmentType)
	if key == "" {
		return false
	}
	for _, p := range higherIsBetterPatterns {
		if strings.Contains(key, p) {
			return true
		}
	}
	return false
}

// LabelForTrend renders the externally computed trend for display.
func LabelForTrend(assessmentType string, trend models.Trend) string {
	switch trend {
	case models.TrendImproving:
		return "Improving"
	case models.TrendDeclining:
		if IsHigherBetter(assessmentType) {
			return "Declining"
		}
		return "Worsening"
	case models.TrendStable:
		return "Stable"
	case models.TrendBaseline:
		return "Baseline"
	}
	return ""
}

// TrendColor picks the display color for a trend.
func TrendColor(trend models.Trend) string {
	switch trend {
	case models.TrendImproving:
		return "green"
	case models.TrendDeclining:
		return "red"
	case models.TrendStable:
		return "gray"
	}
	return "blue"
}

// DeltaSentiment classifies a score change. Nil and zero changes are neutral.
func DeltaSentiment(assessmentType string, change *float64) Sentiment {
	if change == nil || *change == 0 {
		return SentimentNeutral
	}
	if (*change > 0) == IsHigherBetter(assessmentType) {
		return SentimentPositive
	}
	return SentimentNegative
}
