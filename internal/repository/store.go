package repository

import (
	"context"
	"fmt"
	"time"

	"wellness-go/internal/models"
)

// Store exposes the package functions through the interfaces the service
// layer consumes.
type Store struct{}

func (Store) GetHistory(ctx context.Context, userID uint) ([]models.AssessmentHistoryEntry, models.AssessmentInsights, error) {
	history, err := GetHistory(ctx, userID)
	if err != nil {
		return nil, models.AssessmentInsights{}, fmt.Errorf("loading history: %w", err)
	}
	return history, InsightsFromHistory(history), nil
}

func (Store) SaveHistoryEntry(ctx context.Context, entry *models.AssessmentHistoryEntry) error {
	return SaveHistoryEntry(ctx, entry)
}

func (Store) GetMoodHistory(ctx context.Context, userID uint) ([]models.MoodEntry, error) {
	return GetMoodHistory(ctx, userID)
}

func (Store) SaveMoodEntry(ctx context.Context, entry *models.MoodEntry) error {
	return SaveMoodEntry(ctx, entry)
}

func (Store) GetProgressHistory(ctx context.Context, userID uint) ([]models.ProgressEntry, error) {
	return GetProgressHistory(ctx, userID)
}

func (Store) SaveProgressEntry(ctx context.Context, entry *models.ProgressEntry) error {
	return SaveProgressEntry(ctx, entry)
}

func (Store) GetPlanModules(ctx context.Context, userID uint) ([]models.PlanModuleWithState, error) {
	return GetPlanModules(ctx, userID)
}

func (Store) PlanModuleExists(ctx context.Context, moduleID string) (bool, error) {
	return PlanModuleExists(ctx, moduleID)
}

func (Store) SavePlanModuleState(ctx context.Context, state *models.UserPlanModuleState) error {
	return SavePlanModuleState(ctx, state)
}

func (Store) GetUsersForReminder(ctx context.Context, reminderTime string) ([]models.User, error) {
	return GetUsersForReminder(ctx, reminderTime)
}

func (Store) HasCheckedInSince(ctx context.Context, userID uint, since time.Time) (bool, error) {
	return HasCheckedInSince(ctx, userID, since)
}
