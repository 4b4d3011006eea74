package metrics

import (
	"encoding/json"
	"testing"
	"time"

	"wellness-go/internal/models"
	"wellness-go/internal/scoring"
)

func completion(typ string, score float64, ts time.Time) models.AssessmentHistoryEntry {
	return models.AssessmentHistoryEntry{AssessmentType: typ, Score: score, CompletedAt: ts}
}

func TestBuildTimelineLastWriteWinsAndDailyOverall(t *testing.T) {
	loc := time.UTC
	history := []models.AssessmentHistoryEntry{
		// out of order on purpose
		completion("gad2", 60, at(loc, 4, 2, 18)),
		completion("anxiety_assessment", 40, at(loc, 4, 2, 9)),
		completion("phq9", 20, at(loc, 4, 2, 12)),
		completion("anxiety", 80, at(loc, 4, 1, 9)),
	}
	rows := BuildTimeline(history, loc)
	if len(rows) != 2 {
		t.Fatalf("len=%d, want 2", len(rows))
	}
	if rows[0].Date != "2024-04-01" || rows[1].Date != "2024-04-02" {
		t.Fatalf("dates = %s,%s", rows[0].Date, rows[1].Date)
	}
	if rows[0].Overall != 80 {
		t.Fatalf("rows[0].Overall=%v, want 80", rows[0].Overall)
	}
	day2 := rows[1]
	if got := day2.Scores[scoring.TypeAnxiety]; got != 60 {
		t.Fatalf("anxiety on day 2=%v, want 60 (later completion)", got)
	}
	if got := day2.Scores[scoring.TypeDepression]; got != 20 {
		t.Fatalf("depression on day 2=%v, want 20", got)
	}
	if day2.Overall != 40 {
		t.Fatalf("day2.Overall=%v, want 40", day2.Overall)
	}
	if types := TimelineTypes(rows); len(types) != 2 {
		t.Fatalf("TimelineTypes=%v, want 2 types", types)
	}
}

func TestTimelineRowJSONIsFlat(t *testing.T) {
	row := TimelineRow{Date: "2024-04-02", Scores: map[string]float64{"stress_pss": 25}, Overall: 25}
	data, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got["date"] != "2024-04-02" || got["stress_pss"] != 25.0 || got["overall"] != 25.0 {
		t.Fatalf("json=%s", data)
	}
}

func TestBuildMetricSummaries(t *testing.T) {
	loc := time.UTC
	all := []models.ProgressEntry{
		{Metric: "Sleep Hours", Value: 6, Date: at(loc, 3, 1, 0)},
		{Metric: "sleep_hours", Value: 8, Date: at(loc, 3, 3, 0)},
		{Metric: "sleep-hours", Value: 7, Date: at(loc, 3, 2, 0)},
		{Metric: "Anxiety Level", Value: 4, Date: at(loc, 3, 2, 0)},
		{Metric: "!!", Value: 1, Date: at(loc, 3, 2, 0)},
	}
	got := BuildMetricSummaries(all, nil)
	if len(got) != 2 {
		t.Fatalf("len=%d, want 2 (%v)", len(got), got)
	}
	sleep := got["sleephours"]
	if sleep.Latest != 8 || sleep.Previous == nil || *sleep.Previous != 7 || *sleep.Change != 1 {
		t.Fatalf("sleep=%+v", sleep)
	}
	if sleep.Average != 7 || sleep.Count != 3 || sleep.Metric != "sleep_hours" {
		t.Fatalf("sleep=%+v", sleep)
	}
	anxiety := got["anxietylevel"]
	if anxiety.Previous != nil || anxiety.Change != nil || anxiety.Average != 4 {
		t.Fatalf("anxiety=%+v", anxiety)
	}
}

func TestBuildMetricSummariesFallsBack(t *testing.T) {
	all := []models.ProgressEntry{{Metric: "Energy", Value: 3, Date: time.Now()}}
	got := BuildMetricSummaries(nil, all)
	if _, ok := got["energy"]; !ok {
		t.Fatalf("fallback summary missing: %v", got)
	}
	if got := BuildMetricSummaries(nil, nil); len(got) != 0 {
		t.Fatalf("empty input produced %v", got)
	}
}

func TestSummarizeHistory(t *testing.T) {
	loc := time.UTC
	history := []models.AssessmentHistoryEntry{
		completion("phq9", 50, at(loc, 1, 1, 0)),
		completion("depression_phq9", 30, at(loc, 1, 15, 0)),
		completion("phq2", 40, at(loc, 1, 8, 0)),
		completion("teique", 70, at(loc, 1, 3, 0)),
		completion("teique", 65, at(loc, 1, 4, 0)),
	}
	history[1].Interpretation = "Mild"
	insights := models.AssessmentInsights{ByType: map[string]models.TypeInsight{
		"phq9":   {Trend: models.TrendImproving, Recommendations: []string{"Keep journaling"}},
		"teique": {Trend: models.TrendDeclining},
	}}

	got := SummarizeHistory(history, insights)
	dep, ok := got[scoring.TypeDepression]
	if !ok {
		t.Fatalf("depression summary missing: %v", got)
	}
	if dep.LatestScore != 30 || *dep.PreviousScore != 40 || *dep.Change != -10 {
		t.Fatalf("depression=%+v", dep)
	}
	if dep.AverageScore != 40 || dep.BestScore != 30 || dep.HistoryCount != 3 {
		t.Fatalf("depression=%+v", dep)
	}
	if dep.Interpretation != "Mild" || dep.TrendLabel != "Improving" || dep.ChangeSentiment != "positive" {
		t.Fatalf("depression=%+v", dep)
	}
	if len(dep.Recommendations) != 1 {
		t.Fatalf("recommendations=%v", dep.Recommendations)
	}

	ei := got[scoring.TypeEmotionalIntelligence]
	if ei.BestScore != 70 || ei.TrendLabel != "Declining" || ei.TrendColor != "red" || ei.ChangeSentiment != "negative" {
		t.Fatalf("emotional intelligence=%+v", ei)
	}
}

func TestChangeFromPrevious(t *testing.T) {
	loc := time.UTC
	history := []models.AssessmentHistoryEntry{
		completion("gad2", 50, at(loc, 1, 1, 0)),
		completion("anxiety", 45, at(loc, 1, 5, 0)),
		completion("phq9", 10, at(loc, 1, 6, 0)),
	}
	got := ChangeFromPrevious(history, "anxiety_assessment", 30.5, at(loc, 1, 7, 0))
	if got == nil || *got != -14.5 {
		t.Fatalf("ChangeFromPrevious=%v, want -14.5", got)
	}
	if got := ChangeFromPrevious(history, "pss", 10, at(loc, 1, 7, 0)); got != nil {
		t.Fatalf("ChangeFromPrevious(no history)=%v, want nil", *got)
	}
}

func TestSummarizePlan(t *testing.T) {
	loc := time.UTC
	done := at(loc, 2, 3, 10)
	modules := []models.PlanModuleWithState{
		{PlanModule: models.PlanModule{ID: "breathing"}, State: &models.UserPlanModuleState{Progress: 100, CompletedAt: &done, UpdatedAt: done}},
		{PlanModule: models.PlanModule{ID: "sleep"}, State: &models.UserPlanModuleState{Progress: 50, UpdatedAt: at(loc, 2, 5, 10)}},
		{PlanModule: models.PlanModule{ID: "journal"}},
	}
	got := SummarizePlan(modules, loc)
	want := models.PlanProgress{TotalModules: 3, CompletedModules: 1, InProgress: 1, AverageProgress: 50, LastActivity: "2024-02-05"}
	if got != want {
		t.Fatalf("SummarizePlan=%+v, want %+v", got, want)
	}
}

func TestTimelineRowJSONRoundTrip(t *testing.T) {
	row := TimelineRow{Date: "2024-04-02", Scores: map[string]float64{"stress_pss": 25, "depression_phq9": 35}, Overall: 30}
	data, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got TimelineRow
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Date != row.Date || got.Overall != 30 || len(got.Scores) != 2 || got.Scores["depression_phq9"] != 35 {
		t.Fatalf("round trip = %+v", got)
	}
}
