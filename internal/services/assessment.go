package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wellness-go/internal/cache"
	"wellness-go/internal/metrics"
	"wellness-go/internal/models"
	"wellness-go/internal/scoring"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// Submission is a user's answers to one questionnaire.
type Submission struct {
	AssessmentType string            `json:"assessmentType"`
	Answers        map[string]string `json:"answers"`
}

// SubmissionResult is what a completed submission produced.
type SubmissionResult struct {
	Entry   models.AssessmentHistoryEntry `json:"entry"`
	Score   scoring.ComputedScore         `json:"score"`
	Details []scoring.ResponseDetail      `json:"details"`
}

type AssessmentService struct {
	log       *zap.Logger
	templates TemplateSource
	history   HistoryStore
	cache     cache.InsightsCache
	now       func() time.Time
}

func NewAssessmentService(log *zap.Logger, templates TemplateSource, history HistoryStore, insightsCache cache.InsightsCache) *AssessmentService {
	if insightsCache == nil {
		insightsCache = cache.Noop{}
	}
	return &AssessmentService{
		log:       log,
		templates: templates,
		history:   history,
		cache:     insightsCache,
		now:       time.Now,
	}
}

// Template returns the template for any alias of an assessment type.
func (s *AssessmentService) Template(ctx context.Context, assessmentType string) (*models.AssessmentTemplate, error) {
	t := scoring.NormalizeType(assessmentType)
	templates, err := s.templates.GetTemplates(ctx, []string{t})
	if err != nil {
		return nil, fmt.Errorf("fetching template %s: %w", t, err)
	}
	for i := range templates {
		if scoring.NormalizeType(templates[i].AssessmentType) == t {
			return &templates[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, t)
}

// Submit scores the answers, records the completion and drops the user's
// cached insights.
func (s *AssessmentService) Submit(ctx context.Context, userID uint, sub Submission) (*SubmissionResult, error) {
	tmpl, err := s.Template(ctx, sub.AssessmentType)
	if err != nil {
		return nil, err
	}
	assessmentType := scoring.NormalizeType(tmpl.AssessmentType)

	score := scoring.ComputeScores(tmpl, sub.Answers)
	details := scoring.BuildDetails(tmpl, sub.Answers)

	history, _, err := s.history.GetHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	completedAt := s.now().UTC()
	change := metrics.ChangeFromPrevious(history, assessmentType, score.NormalizedScore, completedAt)

	responses, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("encoding responses: %w", err)
	}
	breakdown, err := json.Marshal(score.CategoryBreakdown)
	if err != nil {
		return nil, fmt.Errorf("encoding category breakdown: %w", err)
	}

	raw, maxScore := score.RawScore, score.MaxScore
	entry := models.AssessmentHistoryEntry{
		ID:                 uuid.New(),
		UserID:             userID,
		AssessmentType:     assessmentType,
		Score:              score.NormalizedScore,
		RawScore:           &raw,
		MaxScore:           &maxScore,
		Interpretation:     score.Interpretation,
		ChangeFromPrevious: change,
		Responses:          datatypes.JSON(responses),
		CategoryBreakdown:  datatypes.JSON(breakdown),
		CompletedAt:        completedAt,
	}
	// The first completion of a type is the baseline; later trends are
	// written by the insights service.
	if change == nil {
		entry.Trend = models.TrendBaseline
	}

	if err := s.history.SaveHistoryEntry(ctx, &entry); err != nil {
		return nil, fmt.Errorf("saving history entry: %w", err)
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.log.Warn("Failed to invalidate insights cache", zap.Uint("userID", userID), zap.Error(err))
	}

	s.log.Info("Assessment submitted",
		zap.Uint("userID", userID),
		zap.String("assessment_type", assessmentType),
		zap.Float64("score", score.NormalizedScore),
	)
	return &SubmissionResult{Entry: entry, Score: score, Details: details}, nil
}
