package services

import (
	"context"
	"errors"

	"wellness-go/internal/models"
)

var (
	ErrTemplateNotFound   = errors.New("assessment template not found")
	ErrInvalidRange       = errors.New("invalid range, want one of 7d, 30d, 90d, all")
	ErrInvalidMood        = errors.New("unknown mood")
	ErrInvalidMetric      = errors.New("metric name is required")
	ErrPlanModuleNotFound = errors.New("plan module not found")
)

// TemplateSource supplies questionnaire templates.
type TemplateSource interface {
	GetTemplates(ctx context.Context, types []string) ([]models.AssessmentTemplate, error)
}

// HistorySource supplies completed assessments and the insights computed for them.
type HistorySource interface {
	GetHistory(ctx context.Context, userID uint) ([]models.AssessmentHistoryEntry, models.AssessmentInsights, error)
}

// HistoryStore is a HistorySource that also records completions.
type HistoryStore interface {
	HistorySource
	SaveHistoryEntry(ctx context.Context, entry *models.AssessmentHistoryEntry) error
}

// EventSource supplies the raw activity streams.
type EventSource interface {
	GetMoodHistory(ctx context.Context, userID uint) ([]models.MoodEntry, error)
	GetProgressHistory(ctx context.Context, userID uint) ([]models.ProgressEntry, error)
	GetPlanModules(ctx context.Context, userID uint) ([]models.PlanModuleWithState, error)
}

// EventStore is an EventSource that also records events.
type EventStore interface {
	EventSource
	SaveMoodEntry(ctx context.Context, entry *models.MoodEntry) error
	SaveProgressEntry(ctx context.Context, entry *models.ProgressEntry) error
	PlanModuleExists(ctx context.Context, moduleID string) (bool, error)
	SavePlanModuleState(ctx context.Context, state *models.UserPlanModuleState) error
}
