package scoring

import (
	"encoding/json"
	"testing"

	"wellness-go/internal/models"

	"gopkg.in/yaml.v3"
)

func ptr(v float64) *float64 { return &v }

func likert(id string, reverse bool) models.Question {
	return models.Question{
		ID:            id,
		Text:          "Question " + id,
		UIType:        models.UILikert,
		ReverseScored: reverse,
		Options: []models.Option{
			{ID: id + "-0", Value: "0", Text: "Not at all", Order: 1},
			{ID: id + "-1", Value: "1", Text: "Several days", Order: 2},
			{ID: id + "-2", Value: "2", Text: "More than half the days", Order: 3},
			{ID: id + "-3", Value: "3", Text: "Nearly every day", Order: 4},
		},
	}
}

func TestNormalizeBounds(t *testing.T) {
	cases := []struct {
		v, lo, hi, want float64
	}{
		{0, 0, 10, 0},
		{10, 0, 10, 100},
		{5, 0, 10, 50},
		{-3, 0, 10, 0},
		{42, 0, 10, 100},
		{1, 0, 3, 33.3},
		{2, 0, 3, 66.7},
		{7, 7, 7, 0},
		{3, 1, 5, 50},
	}
	for _, c := range cases {
		if got := Normalize(c.v, c.lo, c.hi); got != c.want {
			t.Fatalf("Normalize(%v,%v,%v)=%v, want %v", c.v, c.lo, c.hi, got, c.want)
		}
	}
}

func TestResolveBand(t *testing.T) {
	bands := []models.Band{
		{Max: 10, Label: "Low"},
		{Max: 20, Label: "Moderate"},
		{Max: 999, Label: "High"},
	}
	cases := []struct {
		value float64
		want  string
	}{
		{5, "Low"},
		{10, "Low"},
		{15, "Moderate"},
		{50, "High"},
		{5000, "High"},
	}
	for _, c := range cases {
		got, ok := ResolveBand(bands, c.value)
		if !ok || got != c.want {
			t.Fatalf("ResolveBand(%v)=%q,%v, want %q", c.value, got, ok, c.want)
		}
	}
	if got, ok := ResolveBand(nil, 3); ok || got != "" {
		t.Fatalf("ResolveBand(nil)=%q,%v, want empty", got, ok)
	}
}

func TestComputeScoresReverseSymmetry(t *testing.T) {
	plain := &models.AssessmentTemplate{
		Scoring:   models.ScoringScheme{MaxScore: ptr(3)},
		Questions: []models.Question{likert("q1", false)},
	}
	reversed := &models.AssessmentTemplate{
		Scoring:   models.ScoringScheme{MaxScore: ptr(3)},
		Questions: []models.Question{likert("q1", true)},
	}

	for v, mirror := range map[string]string{"0": "3", "1": "2", "2": "1", "3": "0"} {
		r := ComputeScores(reversed, map[string]string{"q1": v})
		p := ComputeScores(plain, map[string]string{"q1": mirror})
		if r.RawScore != p.RawScore {
			t.Fatalf("reversed %s raw=%v, plain %s raw=%v", v, r.RawScore, mirror, p.RawScore)
		}
	}
}

func TestComputeScoresSchemeLevelReverse(t *testing.T) {
	tmpl := &models.AssessmentTemplate{
		Scoring: models.ScoringScheme{
			MaxScore:      ptr(6),
			ReverseScored: []string{"q2"},
		},
		Questions: []models.Question{likert("q1", false), likert("q2", false)},
	}
	got := ComputeScores(tmpl, map[string]string{"q1": "3", "q2": "0"})
	if got.RawScore != 6 {
		t.Fatalf("RawScore=%v, want 6", got.RawScore)
	}
	if got.NormalizedScore != 100 {
		t.Fatalf("NormalizedScore=%v, want 100", got.NormalizedScore)
	}
}

func TestComputeScoresMissingMaxNormalizesTo100(t *testing.T) {
	tmpl := &models.AssessmentTemplate{
		Scoring:   models.ScoringScheme{MinScore: ptr(0)},
		Questions: []models.Question{likert("q1", false), likert("q2", false)},
	}
	got := ComputeScores(tmpl, map[string]string{"q1": "3", "q2": "1"})
	if got.RawScore != 4 {
		t.Fatalf("RawScore=%v, want 4", got.RawScore)
	}
	if got.MaxScore != 4 {
		t.Fatalf("MaxScore=%v, want 4", got.MaxScore)
	}
	if got.NormalizedScore != 100.0 {
		t.Fatalf("NormalizedScore=%v, want 100", got.NormalizedScore)
	}
}

func TestComputeScoresUnmatchedAndUnansweredContributeNothing(t *testing.T) {
	tmpl := &models.AssessmentTemplate{
		Scoring:   models.ScoringScheme{MaxScore: ptr(9)},
		Questions: []models.Question{likert("q1", false), likert("q2", false), likert("q3", false)},
	}
	got := ComputeScores(tmpl, map[string]string{"q1": "2", "q2": "banana", "ghost": "3"})
	if got.RawScore != 2 {
		t.Fatalf("RawScore=%v, want 2", got.RawScore)
	}
	if got.NormalizedScore != 22.2 {
		t.Fatalf("NormalizedScore=%v, want 22.2", got.NormalizedScore)
	}
}

func TestComputeScoresOrderFallbackForTextValues(t *testing.T) {
	q := models.Question{
		ID: "sleep",
		Options: []models.Option{
			{Value: "never", Text: "Never", Order: 1},
			{Value: "sometimes", Text: "Sometimes", Order: 2},
			{Value: "always", Text: "Always", Order: 3},
		},
	}
	tmpl := &models.AssessmentTemplate{
		Scoring:   models.ScoringScheme{MaxScore: ptr(2)},
		Questions: []models.Question{q},
	}
	got := ComputeScores(tmpl, map[string]string{"sleep": "sometimes"})
	if got.RawScore != 1 || got.NormalizedScore != 50 {
		t.Fatalf("got raw=%v normalized=%v, want 1 and 50", got.RawScore, got.NormalizedScore)
	}

	q.ReverseScored = true
	tmpl.Questions = []models.Question{q}
	got = ComputeScores(tmpl, map[string]string{"sleep": "never"})
	if got.RawScore != 2 {
		t.Fatalf("reversed RawScore=%v, want 2", got.RawScore)
	}
}

func TestComputeScoresUnsortedDuplicateValues(t *testing.T) {
	q := models.Question{
		ID:            "q",
		ReverseScored: true,
		Options: []models.Option{
			{Value: "4", Order: 1},
			{Value: "1", Order: 2},
			{Value: "4", Order: 3},
			{Value: "2", Order: 4},
		},
	}
	tmpl := &models.AssessmentTemplate{Scoring: models.ScoringScheme{MaxScore: ptr(4)}, Questions: []models.Question{q}}
	got := ComputeScores(tmpl, map[string]string{"q": "2"})
	if got.RawScore != 3 {
		t.Fatalf("RawScore=%v, want 3 (1+4-2)", got.RawScore)
	}
}

func TestComputeScoresBandsUseRawScore(t *testing.T) {
	tmpl := &models.AssessmentTemplate{
		Scoring: models.ScoringScheme{
			MaxScore: ptr(6),
			InterpretationBands: []models.Band{
				{Max: 2, Label: "Minimal"},
				{Max: 4, Label: "Mild"},
				{Max: 6, Label: "Severe"},
			},
		},
		Questions: []models.Question{likert("q1", false), likert("q2", false)},
	}
	// raw 3 is 50% normalized; a percentage lookup would land in "Severe".
	got := ComputeScores(tmpl, map[string]string{"q1": "2", "q2": "1"})
	if got.Interpretation != "Mild" {
		t.Fatalf("Interpretation=%q, want Mild", got.Interpretation)
	}
	overall := got.CategoryBreakdown[OverallCategory]
	if overall.Interpretation != "Mild" || overall.Raw != 3 || overall.Normalized != 50 {
		t.Fatalf("overall=%+v", overall)
	}
}

func TestComputeScoresDomains(t *testing.T) {
	tmpl := &models.AssessmentTemplate{
		Scoring: models.ScoringScheme{
			MinScore: ptr(0),
			MaxScore: ptr(12),
			Domains: []models.Domain{
				{
					ID:       "worry",
					Items:    []string{"q1", "q2"},
					MaxScore: ptr(6),
					InterpretationBands: []models.Band{
						{Max: 2, Label: "Low"},
						{Max: 6, Label: "High"},
					},
				},
				{ID: "body", Items: []string{"q3", "q4", "missing"}},
			},
		},
		Questions: []models.Question{
			likert("q1", false), likert("q2", false), likert("q3", false), likert("q4", true),
		},
	}
	got := ComputeScores(tmpl, map[string]string{"q1": "3", "q2": "2", "q3": "1", "q4": "3"})

	if got.RawScore != 6 {
		t.Fatalf("RawScore=%v, want 6", got.RawScore)
	}
	if got.NormalizedScore != 50 {
		t.Fatalf("NormalizedScore=%v, want 50", got.NormalizedScore)
	}
	if len(got.CategoryBreakdown) != 3 {
		t.Fatalf("breakdown len=%d, want 3", len(got.CategoryBreakdown))
	}
	worry := got.CategoryBreakdown["worry"]
	if worry.Raw != 5 || worry.Normalized != 83.3 || worry.Interpretation != "High" {
		t.Fatalf("worry=%+v", worry)
	}
	body := got.CategoryBreakdown["body"]
	// no domain max: defaults to the domain's own raw sum.
	if body.Raw != 1 || body.Normalized != 100 || body.Interpretation != "" {
		t.Fatalf("body=%+v", body)
	}
	if _, ok := got.CategoryBreakdown[OverallCategory]; !ok {
		t.Fatalf("overall entry missing")
	}
}

func TestComputeScoresEmptyAnswers(t *testing.T) {
	tmpl := &models.AssessmentTemplate{
		Scoring:   models.ScoringScheme{MaxScore: ptr(3)},
		Questions: []models.Question{likert("q1", false), {ID: "no-options"}},
	}
	got := ComputeScores(tmpl, nil)
	if got.RawScore != 0 || got.NormalizedScore != 0 {
		t.Fatalf("got %+v, want zero score", got)
	}
	if _, ok := got.CategoryBreakdown[OverallCategory]; !ok {
		t.Fatalf("overall entry missing")
	}
}

func TestBuildDetails(t *testing.T) {
	q3 := models.Question{
		ID:   "q3",
		Text: "Mood",
		Options: []models.Option{
			{Value: "low", Text: "Low", Order: 1},
			{Value: "high", Text: "High", Order: 2},
		},
	}
	tmpl := &models.AssessmentTemplate{
		Questions: []models.Question{likert("q1", true), likert("q2", false), q3},
	}
	details := BuildDetails(tmpl, map[string]string{"q3": "high", "q1": "1", "q2": "7"})
	if len(details) != 2 {
		t.Fatalf("len=%d, want 2", len(details))
	}
	if details[0].QuestionID != "q1" || details[1].QuestionID != "q3" {
		t.Fatalf("order = %s,%s, want q1,q3", details[0].QuestionID, details[1].QuestionID)
	}
	if details[0].AnswerLabel != "Several days" || details[0].AnswerScore != 1 || details[0].AnswerValue != "1" {
		t.Fatalf("details[0]=%+v", details[0])
	}
	if details[1].AnswerScore != 1 || details[1].AnswerLabel != "High" {
		t.Fatalf("details[1]=%+v", details[1])
	}
}

func TestDecimalOptionValuesMatchServedForm(t *testing.T) {
	src := `
assessment_type: stress
scoring:
  max_score: 2.5
questions:
  - id: q1
    text: Felt overwhelmed
    options:
      - {id: a, value: 0.0, text: Never, order: 1}
      - {id: b, value: 1.0, text: Sometimes, order: 2}
      - {id: c, value: 2.50, text: Often, order: 3}
`
	var tmpl models.AssessmentTemplate
	if err := yaml.Unmarshal([]byte(src), &tmpl); err != nil {
		t.Fatalf("yaml: %v", err)
	}

	served, err := json.Marshal(tmpl.Questions[0].Options[1].Value)
	if err != nil {
		t.Fatalf("marshal option value: %v", err)
	}
	if string(served) != "1" {
		t.Fatalf("served value = %s, want 1", served)
	}

	for _, answer := range []string{string(served), "1.0", " 1 "} {
		got := ComputeScores(&tmpl, map[string]string{"q1": answer})
		if got.RawScore != 1 || got.NormalizedScore != 40 {
			t.Fatalf("answer %q: raw=%v normalized=%v, want 1 and 40", answer, got.RawScore, got.NormalizedScore)
		}
		details := BuildDetails(&tmpl, map[string]string{"q1": answer})
		if len(details) != 1 || details[0].AnswerLabel != "Sometimes" || details[0].AnswerValue != "1" {
			t.Fatalf("answer %q: details=%+v", answer, details)
		}
	}

	got := ComputeScores(&tmpl, map[string]string{"q1": "2.5"})
	if got.RawScore != 2.5 {
		t.Fatalf("RawScore(2.5)=%v", got.RawScore)
	}
}
