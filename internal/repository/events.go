package repository

import (
	"context"

	"wellness-go/internal/database"
	"wellness-go/internal/models"
)

func SaveMoodEntry(ctx context.Context, entry *models.MoodEntry) error {
	return database.DB.WithContext(ctx).Create(entry).Error
}

// GetMoodHistory returns the user's check-ins, newest first.
func GetMoodHistory(ctx context.Context, userID uint) ([]models.MoodEntry, error) {
	var entries []models.MoodEntry
	err := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

func SaveProgressEntry(ctx context.Context, entry *models.ProgressEntry) error {
	return database.DB.WithContext(ctx).Create(entry).Error
}

// GetProgressHistory returns the user's progress entries, oldest first.
func GetProgressHistory(ctx context.Context, userID uint) ([]models.ProgressEntry, error) {
	var entries []models.ProgressEntry
	err := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&entries).Error
	return entries, err
}
