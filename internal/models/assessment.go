// assessment.go
package models

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// UIType is the closed set of widgets a question can be rendered with.
type UIType string

const (
	UILikert         UIType = "likert"
	UIBinary         UIType = "binary"
	UIMultipleChoice UIType = "multiple-choice"
)

// Valid reports whether t is one of the known widget types.
func (t UIType) Valid() bool {
	switch t {
	case UILikert, UIBinary, UIMultipleChoice:
		return true
	}
	return false
}

func (t *UIType) UnmarshalText(text []byte) error {
	v := UIType(strings.ToLower(strings.TrimSpace(string(text))))
	if v == "" {
		v = UILikert
	}
	if !v.Valid() {
		return fmt.Errorf("unknown ui type %q", string(text))
	}
	*t = v
	return nil
}

// OptionValue holds an option's value as text. Templates use numbers for
// scored options and occasionally strings for unscored ones. Numeric values
// are stored in their shortest decimal form, so 1.0 and 1 are both "1".
type OptionValue string

// CanonicalOptionValue normalizes s: numbers are reformatted in their
// shortest decimal form, anything else is kept trimmed as-is.
func CanonicalOptionValue(s string) OptionValue {
	s = strings.TrimSpace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return OptionValue(s)
	}
	return OptionValue(strconv.FormatFloat(f, 'f', -1, 64))
}

// Float returns the numeric value and whether the value is numeric at all.
func (v OptionValue) Float() (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func (v OptionValue) String() string { return string(v) }

func (v *OptionValue) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = CanonicalOptionValue(s)
		return nil
	}
	if string(data) == "null" {
		*v = ""
		return nil
	}
	*v = CanonicalOptionValue(string(data))
	return nil
}

func (v OptionValue) MarshalJSON() ([]byte, error) {
	if f, ok := v.Float(); ok {
		return json.Marshal(f)
	}
	return json.Marshal(string(v))
}

func (v *OptionValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("option value must be a scalar (line %d)", node.Line)
	}
	*v = CanonicalOptionValue(node.Value)
	return nil
}

// Option is a single selectable answer of a question.
type Option struct {
	ID    string      `yaml:"id" json:"id"`
	Value OptionValue `yaml:"value" json:"value"`
	Text  string      `yaml:"text" json:"text"`
	Order int         `yaml:"order" json:"order"`
}

// Question struct to match the YAML structure
type Question struct {
	ID            string   `yaml:"id" json:"id"`
	Text          string   `yaml:"text" json:"text"`
	ResponseType  string   `yaml:"response_type" json:"responseType"`
	UIType        UIType   `yaml:"ui_type" json:"uiType"`
	ReverseScored bool     `yaml:"reverse_scored,omitempty" json:"reverseScored,omitempty"`
	Domain        string   `yaml:"domain,omitempty" json:"domain,omitempty"`
	Options       []Option `yaml:"options" json:"options"`
}

// Band maps every score up to and including Max onto Label.
type Band struct {
	Max   float64 `yaml:"max" json:"max"`
	Label string  `yaml:"label" json:"label"`
}

// Domain is a subset of questions scored on its own.
type Domain struct {
	ID                  string   `yaml:"id" json:"id"`
	Label               string   `yaml:"label" json:"label"`
	Items               []string `yaml:"items" json:"items"`
	MinScore            *float64 `yaml:"min_score,omitempty" json:"minScore,omitempty"`
	MaxScore            *float64 `yaml:"max_score,omitempty" json:"maxScore,omitempty"`
	InterpretationBands []Band   `yaml:"interpretation_bands,omitempty" json:"interpretationBands,omitempty"`
}

// ScoringScheme configures how answers turn into a score. Bands are authored
// in raw-score units.
type ScoringScheme struct {
	MinScore            *float64 `yaml:"min_score,omitempty" json:"minScore,omitempty"`
	MaxScore            *float64 `yaml:"max_score,omitempty" json:"maxScore,omitempty"`
	InterpretationBands []Band   `yaml:"interpretation_bands" json:"interpretationBands"`
	ReverseScored       []string `yaml:"reverse_scored,omitempty" json:"reverseScored,omitempty"`
	Domains             []Domain `yaml:"domains,omitempty" json:"domains,omitempty"`
}

// AssessmentTemplate holds one questionnaire and its scoring rules.
type AssessmentTemplate struct {
	AssessmentType string        `yaml:"assessment_type" json:"assessmentType"`
	Title          string        `yaml:"title" json:"title"`
	Description    string        `yaml:"description" json:"description"`
	EstimatedTime  string        `yaml:"estimated_time" json:"estimatedTime"`
	Scoring        ScoringScheme `yaml:"scoring" json:"scoring"`
	Questions      []Question    `yaml:"questions" json:"questions"`
}

// QuestionByID returns the question with the given id.
func (t *AssessmentTemplate) QuestionByID(id string) (Question, bool) {
	for _, q := range t.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// LoadTemplate reads and parses a single template YAML file.
func LoadTemplate(path string) (*AssessmentTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}

	var template AssessmentTemplate
	if err := yaml.Unmarshal(data, &template); err != nil {
		return nil, fmt.Errorf("failed to unmarshal template YAML %s: %w", path, err)
	}
	if template.AssessmentType == "" {
		return nil, fmt.Errorf("template %s has no assessment_type", path)
	}

	return &template, nil
}
