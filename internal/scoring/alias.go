package scoring

import "strings"

// Canonical assessment types.
const (
	TypeAnxiety               = "anxiety_assessment"
	TypeDepression            = "depression_phq9"
	TypeStress                = "stress_pss"
	TypeOverthinking          = "overthinking_ptq"
	TypeTrauma                = "trauma_pcl5"
	TypeEmotionalIntelligence = "emotional_intelligence_teique"
	TypePersonality           = "personality_mini_ipip"
)

var typeAliases = map[string]string{
	"anxiety":      TypeAnxiety,
	"anxiety_gad2": TypeAnxiety,
	"anxiety_gad7": TypeAnxiety,
	"gad2":         TypeAnxiety,
	"gad7":         TypeAnxiety,
	"gad-2":        TypeAnxiety,
	"gad-7":        TypeAnxiety,

	"depression":            TypeDepression,
	"depression_phq2":       TypeDepression,
	"depression_assessment": TypeDepression,
	"phq2":                  TypeDepression,
	"phq9":                  TypeDepression,
	"phq-2":                 TypeDepression,
	"phq-9":                 TypeDepression,

	"stress":            TypeStress,
	"stress_assessment": TypeStress,
	"pss":               TypeStress,
	"pss10":             TypeStress,
	"pss-10":            TypeStress,

	"overthinking":            TypeOverthinking,
	"overthinking_assessment": TypeOverthinking,
	"ptq":                     TypeOverthinking,

	"trauma":            TypeTrauma,
	"trauma_assessment": TypeTrauma,
	"ptsd":              TypeTrauma,
	"pcl5":              TypeTrauma,
	"pcl-5":             TypeTrauma,

	"emotional_intelligence": TypeEmotionalIntelligence,
	"emotional-intelligence": TypeEmotionalIntelligence,
	"teique":                 TypeEmotionalIntelligence,
	"teique_sf":              TypeEmotionalIntelligence,
	"teique-sf":              TypeEmotionalIntelligence,

	"personality": TypePersonality,
	"mini_ipip":   TypePersonality,
	"mini-ipip":   TypePersonality,
	"ipip":        TypePersonality,
	"big_five":    TypePersonality,
}

// NormalizeType maps an assessment identifier onto its canonical type.
// Identifiers without an alias (canonical ones included) are returned
// lower-cased and trimmed.
func NormalizeType(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := typeAliases[key]; ok {
		return canonical
	}
	return key
}

// NormalizeTypes normalizes and de-duplicates ids, keeping first-seen order.
func NormalizeTypes(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		t := NormalizeType(r)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
