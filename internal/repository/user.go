package repository

import (
	"context"
	"time"

	"wellness-go/internal/database"
	"wellness-go/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func CreateUser(ctx context.Context, email, password, firstName, lastName string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:     email,
		Password:  string(hashedPassword),
		FirstName: firstName,
		LastName:  lastName,
		TimeZone:  "UTC",
	}
	result := database.DB.WithContext(ctx).Create(user)
	return user, result.Error
}

func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	result := database.DB.WithContext(ctx).First(&user, "email = ?", email)
	return &user, result.Error
}

func GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	result := database.DB.WithContext(ctx).First(&user, id)
	return &user, result.Error
}

func UpdateUser(ctx context.Context, userID uint, firstName, lastName string) error {
	return database.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{"first_name": firstName, "last_name": lastName}).Error
}

func DeleteUser(ctx context.Context, userID uint) error {
	return database.DB.WithContext(ctx).Delete(&models.User{}, userID).Error
}

// UpdateNotificationPreferences updates a user's reminder settings.
// reminderTime is HH:MM in UTC.
func UpdateNotificationPreferences(ctx context.Context, userID uint, enabled bool, reminderTime, timezone string) error {
	return database.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"email_notifications_enabled": enabled,
		"reminder_time":               reminderTime,
		"time_zone":                   timezone,
	}).Error
}

// GetUsersForReminder finds users who have reminders enabled for a specific UTC time.
func GetUsersForReminder(ctx context.Context, reminderTime string) ([]models.User, error) {
	var users []models.User
	err := database.DB.WithContext(ctx).Where("email_notifications_enabled = ? AND reminder_time = ?", true, reminderTime).Find(&users).Error
	return users, err
}

// HasCheckedInSince reports whether the user logged a mood at or after since.
func HasCheckedInSince(ctx context.Context, userID uint, since time.Time) (bool, error) {
	var count int64
	err := database.DB.WithContext(ctx).Model(&models.MoodEntry{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&count).Error
	return count > 0, err
}

func UpdateUserPassword(ctx context.Context, userID uint, newPassword string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return database.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("password", string(hashedPassword)).Error
}
