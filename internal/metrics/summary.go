package metrics

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"wellness-go/internal/models"
	"wellness-go/internal/scoring"
)

// MetricSummary rolls up every recorded value of one progress metric.
type MetricSummary struct {
	Metric     string    `json:"metric"`
	Latest     float64   `json:"latest"`
	Previous   *float64  `json:"previous"`
	Change     *float64  `json:"change"`
	Average    float64   `json:"average"`
	Count      int       `json:"count"`
	LatestDate time.Time `json:"latestDate"`
}

// MetricKey folds a metric name to lowercase alphanumerics so that
// "Sleep Hours" and "sleep_hours" group together.
func MetricKey(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// BuildMetricSummaries groups entries by metric key. When the range-filtered
// entries are empty the full history is used so a summary still exists.
func BuildMetricSummaries(filtered, fallback []models.ProgressEntry) map[string]MetricSummary {
	source := filtered
	if len(source) == 0 {
		source = fallback
	}

	groups := make(map[string][]models.ProgressEntry)
	for _, e := range source {
		key := MetricKey(e.Metric)
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], e)
	}

	summaries := make(map[string]MetricSummary, len(groups))
	for key, entries := range groups {
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date.Before(entries[j].Date) })

		values := make([]float64, len(entries))
		for i, e := range entries {
			values[i] = e.Value
		}
		latest := entries[len(entries)-1]
		summary := MetricSummary{
			Metric:     latest.Metric,
			Latest:     latest.Value,
			Average:    round2(mean(values)),
			Count:      len(entries),
			LatestDate: latest.Date,
		}
		if len(entries) > 1 {
			prev := entries[len(entries)-2].Value
			change := round2(latest.Value - prev)
			summary.Previous = &prev
			summary.Change = &change
		}
		summaries[key] = summary
	}
	return summaries
}

// SummarizeHistory builds the per-type rollup shown on the progress page.
// Trend and recommendations are taken from insights as computed upstream.
func SummarizeHistory(history []models.AssessmentHistoryEntry, insights models.AssessmentInsights) map[string]models.AssessmentTypeSummary {
	byType := make(map[string][]models.AssessmentHistoryEntry)
	for _, entry := range sortedHistory(history) {
		t := scoring.NormalizeType(entry.AssessmentType)
		byType[t] = append(byType[t], entry)
	}
	typeInsights := make(map[string]models.TypeInsight, len(insights.ByType))
	for t, in := range insights.ByType {
		typeInsights[scoring.NormalizeType(t)] = in
	}

	summaries := make(map[string]models.AssessmentTypeSummary, len(byType))
	for t, entries := range byType {
		higherBetter := scoring.IsHigherBetter(t)
		latest := entries[len(entries)-1]

		scores := make([]float64, len(entries))
		best := latest.Score
		for i, e := range entries {
			scores[i] = e.Score
			if (higherBetter && e.Score > best) || (!higherBetter && e.Score < best) {
				best = e.Score
			}
		}

		summary := models.AssessmentTypeSummary{
			AssessmentType:  t,
			LatestScore:     latest.Score,
			AverageScore:    round1(mean(scores)),
			BestScore:       best,
			Interpretation:  latest.Interpretation,
			LastCompletedAt: latest.CompletedAt,
			HistoryCount:    len(entries),
		}
		if len(entries) > 1 {
			prev := entries[len(entries)-2].Score
			change := round1(latest.Score - prev)
			summary.PreviousScore = &prev
			summary.Change = &change
		}
		if in, ok := typeInsights[t]; ok {
			summary.Trend = in.Trend
			summary.Recommendations = in.Recommendations
		}
		if summary.Trend == "" {
			summary.Trend = latest.Trend
		}
		summary.TrendLabel = scoring.LabelForTrend(t, summary.Trend)
		if summary.Trend != "" {
			summary.TrendColor = scoring.TrendColor(summary.Trend)
		}
		summary.ChangeSentiment = string(scoring.DeltaSentiment(t, summary.Change))
		summaries[t] = summary
	}
	return summaries
}

// ChangeFromPrevious is the difference between score and the most recent
// earlier completion of the same type, or nil when there is none.
func ChangeFromPrevious(history []models.AssessmentHistoryEntry, assessmentType string, score float64, at time.Time) *float64 {
	t := scoring.NormalizeType(assessmentType)
	var prev *models.AssessmentHistoryEntry
	for i := range history {
		e := &history[i]
		if scoring.NormalizeType(e.AssessmentType) != t || !e.CompletedAt.Before(at) {
			continue
		}
		if prev == nil || e.CompletedAt.After(prev.CompletedAt) {
			prev = e
		}
	}
	if prev == nil {
		return nil
	}
	change := round1(score - prev.Score)
	return &change
}

// SummarizePlan rolls up a user's plan modules.
func SummarizePlan(modules []models.PlanModuleWithState, loc *time.Location) models.PlanProgress {
	progress := models.PlanProgress{TotalModules: len(modules)}
	if len(modules) == 0 {
		return progress
	}
	var last time.Time
	values := make([]float64, 0, len(modules))
	for _, m := range modules {
		if m.State == nil {
			values = append(values, 0)
			continue
		}
		values = append(values, m.State.Progress)
		switch {
		case m.State.CompletedAt != nil || m.State.Progress >= 100:
			progress.CompletedModules++
		case m.State.Progress > 0:
			progress.InProgress++
		}
		if m.State.UpdatedAt.After(last) {
			last = m.State.UpdatedAt
		}
	}
	progress.AverageProgress = round1(mean(values))
	if !last.IsZero() {
		progress.LastActivity = DayBucket(last, loc).Format(dateLayout)
	}
	return progress
}
