package repository

import (
	"context"

	"wellness-go/internal/database"
	"wellness-go/internal/models"
	"wellness-go/internal/scoring"
)

// SaveHistoryEntry inserts a completed assessment. History rows are never updated.
func SaveHistoryEntry(ctx context.Context, entry *models.AssessmentHistoryEntry) error {
	return database.DB.WithContext(ctx).Create(entry).Error
}

// GetHistory returns every completion of the user, oldest first.
func GetHistory(ctx context.Context, userID uint) ([]models.AssessmentHistoryEntry, error) {
	var history []models.AssessmentHistoryEntry
	err := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at ASC").
		Find(&history).Error
	return history, err
}

// InsightsFromHistory collects the trend the insights service stored on the
// most recent completion of each type.
func InsightsFromHistory(history []models.AssessmentHistoryEntry) models.AssessmentInsights {
	insights := models.AssessmentInsights{ByType: make(map[string]models.TypeInsight)}
	latest := make(map[string]models.AssessmentHistoryEntry)
	for _, e := range history {
		t := scoring.NormalizeType(e.AssessmentType)
		if cur, ok := latest[t]; !ok || !e.CompletedAt.Before(cur.CompletedAt) {
			latest[t] = e
		}
	}
	for t, e := range latest {
		if e.Trend != "" {
			insights.ByType[t] = models.TypeInsight{Trend: e.Trend}
		}
	}
	return insights
}
