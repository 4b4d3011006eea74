package scoring

import "wellness-go/internal/models"

// ResponseDetail is a human-readable record of one answered question.
type ResponseDetail struct {
	QuestionID   string  `json:"questionId"`
	QuestionText string  `json:"questionText"`
	AnswerLabel  string  `json:"answerLabel"`
	AnswerValue  string  `json:"answerValue"`
	AnswerScore  float64 `json:"answerScore"`
}

// BuildDetails lists the matched answers in template order. Unanswered and
// unmatched questions are left out. AnswerScore is the option's own value,
// before any reversal.
func BuildDetails(template *models.AssessmentTemplate, answers map[string]string) []ResponseDetail {
	if template == nil {
		return nil
	}
	details := make([]ResponseDetail, 0, len(answers))
	for _, q := range template.Questions {
		answer, ok := answers[q.ID]
		if !ok {
			continue
		}
		opt, ok := matchOption(q, answer)
		if !ok {
			continue
		}
		details = append(details, ResponseDetail{
			QuestionID:   q.ID,
			QuestionText: q.Text,
			AnswerLabel:  opt.Text,
			AnswerValue:  opt.Value.String(),
			AnswerScore:  optionScore(opt),
		})
	}
	return details
}
