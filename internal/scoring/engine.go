package scoring

import (
	"math"

	"wellness-go/internal/models"
)

// OverallCategory is the breakdown key that always carries the template score.
const OverallCategory = "overall"

// CategoryScore is the score of one domain (or of the whole template).
type CategoryScore struct {
	Raw            float64 `json:"raw"`
	Normalized     float64 `json:"normalized"`
	Interpretation string  `json:"interpretation,omitempty"`
}

// ComputedScore is the result of scoring one submission.
type ComputedScore struct {
	RawScore          float64                  `json:"rawScore"`
	NormalizedScore   float64                  `json:"normalizedScore"`
	MinScore          float64                  `json:"minScore"`
	MaxScore          float64                  `json:"maxScore"`
	Interpretation    string                   `json:"interpretation,omitempty"`
	CategoryBreakdown map[string]CategoryScore `json:"categoryBreakdown"`
}

// Normalize rescales value from [min,max] onto [0,100], rounded to one
// decimal place. A degenerate range yields 0.
func Normalize(value, lo, hi float64) float64 {
	if hi == lo {
		return 0
	}
	clamped := math.Min(math.Max(value, lo), hi)
	return round1((clamped - lo) / (hi - lo) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

type valueRange struct {
	min, max float64
}

// optionScore is an option's numeric contribution: its value when numeric,
// otherwise its zero-based order.
func optionScore(o models.Option) float64 {
	if v, ok := o.Value.Float(); ok {
		return v
	}
	return float64(o.Order - 1)
}

func questionRange(q models.Question) valueRange {
	if len(q.Options) == 0 {
		return valueRange{}
	}
	r := valueRange{min: math.Inf(1), max: math.Inf(-1)}
	for _, o := range q.Options {
		v := optionScore(o)
		r.min = math.Min(r.min, v)
		r.max = math.Max(r.max, v)
	}
	return r
}

// matchOption finds the option whose value equals the answer. Both sides
// are compared in canonical form, so "1.0" answers an option valued 1.
func matchOption(q models.Question, answer string) (models.Option, bool) {
	want := models.CanonicalOptionValue(answer)
	for _, o := range q.Options {
		if models.CanonicalOptionValue(o.Value.String()) == want {
			return o, true
		}
	}
	return models.Option{}, false
}

type scorer struct {
	questions map[string]models.Question
	reverse   map[string]bool
	ranges    map[string]valueRange
	answers   map[string]string
}

func newScorer(template *models.AssessmentTemplate, answers map[string]string) *scorer {
	s := &scorer{
		questions: make(map[string]models.Question, len(template.Questions)),
		reverse:   make(map[string]bool),
		ranges:    make(map[string]valueRange, len(template.Questions)),
		answers:   answers,
	}
	for _, id := range template.Scoring.ReverseScored {
		s.reverse[id] = true
	}
	for _, q := range template.Questions {
		s.questions[q.ID] = q
		s.ranges[q.ID] = questionRange(q)
		if q.ReverseScored {
			s.reverse[q.ID] = true
		}
	}
	return s
}

// contribution is the (possibly reversed) value the answer to a question adds
// to the raw score. Unanswered and unmatched questions add nothing.
func (s *scorer) contribution(questionID string) float64 {
	q, ok := s.questions[questionID]
	if !ok {
		return 0
	}
	answer, ok := s.answers[questionID]
	if !ok {
		return 0
	}
	opt, ok := matchOption(q, answer)
	if !ok {
		return 0
	}
	v := optionScore(opt)
	if s.reverse[questionID] {
		r := s.ranges[questionID]
		v = r.min + r.max - v
	}
	return v
}

func (s *scorer) sum(ids []string) float64 {
	total := 0.0
	for _, id := range ids {
		total += s.contribution(id)
	}
	return total
}

// bounds applies the scheme's bounds. A missing max defaults to the raw
// score itself, which normalizes to 100; templates must always set max_score.
func bounds(lower, upper *float64, raw float64) (float64, float64) {
	lo, hi := 0.0, raw
	if lower != nil {
		lo = *lower
	}
	if upper != nil {
		hi = *upper
	}
	return lo, hi
}

// ComputeScores scores answers against template. It never fails: malformed
// templates and unknown answers contribute zero.
func ComputeScores(template *models.AssessmentTemplate, answers map[string]string) ComputedScore {
	if template == nil {
		return ComputedScore{CategoryBreakdown: map[string]CategoryScore{OverallCategory: {}}}
	}
	s := newScorer(template, answers)

	ids := make([]string, 0, len(template.Questions))
	for _, q := range template.Questions {
		ids = append(ids, q.ID)
	}
	raw := s.sum(ids)
	lo, hi := bounds(template.Scoring.MinScore, template.Scoring.MaxScore, raw)

	result := ComputedScore{
		RawScore:          raw,
		NormalizedScore:   Normalize(raw, lo, hi),
		MinScore:          lo,
		MaxScore:          hi,
		CategoryBreakdown: make(map[string]CategoryScore, len(template.Scoring.Domains)+1),
	}
	// Bands are authored in raw-score units, not percentages.
	result.Interpretation, _ = ResolveBand(template.Scoring.InterpretationBands, raw)

	for _, d := range template.Scoring.Domains {
		domainRaw := s.sum(d.Items)
		dMin, dMax := bounds(d.MinScore, d.MaxScore, domainRaw)
		cat := CategoryScore{
			Raw:        domainRaw,
			Normalized: Normalize(domainRaw, dMin, dMax),
		}
		cat.Interpretation, _ = ResolveBand(d.InterpretationBands, domainRaw)
		result.CategoryBreakdown[d.ID] = cat
	}

	result.CategoryBreakdown[OverallCategory] = CategoryScore{
		Raw:            result.RawScore,
		Normalized:     result.NormalizedScore,
		Interpretation: result.Interpretation,
	}
	return result
}
