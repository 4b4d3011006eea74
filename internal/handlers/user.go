package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"wellness-go/internal/cache"
	"wellness-go/internal/repository"
	"wellness-go/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	log             *zap.Logger
	cache           cache.InsightsCache
	savePreferences func(ctx context.Context, userID uint, enabled bool, reminderTime, timeZone string) error
}

// NewUserHandler creates the profile handlers. The insights cache is
// invalidated when settings that shape insights change.
func NewUserHandler(log *zap.Logger, insightsCache cache.InsightsCache) *UserHandler {
	if insightsCache == nil {
		insightsCache = cache.Noop{}
	}
	return &UserHandler{
		log:             log,
		cache:           insightsCache,
		savePreferences: repository.UpdateNotificationPreferences,
	}
}

type profileResponse struct {
	Email                     string `json:"email"`
	FirstName                 string `json:"firstName"`
	LastName                  string `json:"lastName"`
	EmailNotificationsEnabled bool   `json:"emailNotificationsEnabled"`
	ReminderTime              string `json:"reminderTime,omitempty"`
	TimeZone                  string `json:"timeZone"`
}

// localReminderTime converts a stored HH:MM UTC reminder into the user's zone
// for today's date.
func localReminderTime(utcHHMM, timezone string, now time.Time) string {
	if utcHHMM == "" || timezone == "" {
		return utcHHMM
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return utcHHMM
	}
	utcTime, err := time.Parse("15:04", utcHHMM)
	if err != nil {
		return utcHHMM
	}
	now = now.UTC()
	reminder := time.Date(now.Year(), now.Month(), now.Day(), utcTime.Hour(), utcTime.Minute(), 0, 0, time.UTC)
	return reminder.In(loc).Format("15:04")
}

// utcReminderTime converts a local HH:MM in timezone into HH:MM UTC, using
// today's date so DST is applied.
func utcReminderTime(localHHMM string, loc *time.Location, now time.Time) (string, error) {
	dateTimeString := fmt.Sprintf("%s %s", now.In(loc).Format("2006-01-02"), localHHMM)
	parsedTime, err := time.ParseInLocation("2006-01-02 15:04", dateTimeString, loc)
	if err != nil {
		return "", err
	}
	return parsedTime.UTC().Format("15:04"), nil
}

func (h *UserHandler) Profile(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, profileResponse{
		Email:                     user.Email,
		FirstName:                 user.FirstName,
		LastName:                  user.LastName,
		EmailNotificationsEnabled: user.EmailNotificationsEnabled,
		ReminderTime:              localReminderTime(user.ReminderTime, user.TimeZone, time.Now()),
		TimeZone:                  user.TimeZone,
	})
}

func (h *UserHandler) UpdateInfo(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if err := repository.UpdateUser(c.Request.Context(), user.ID, strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName)); err != nil {
		h.log.Error("Failed to update user info", zap.Error(err), zap.Uint("userID", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

func (h *UserHandler) UpdatePassword(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required"`
		ConfirmPassword string `json:"confirmPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if !user.CheckPassword(req.CurrentPassword) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Incorrect current password"})
		return
	}
	if req.NewPassword != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New passwords do not match"})
		return
	}
	if !utils.IsComplexPassword(req.NewPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password is not complex enough"})
		return
	}
	if err := repository.UpdateUserPassword(c.Request.Context(), user.ID, req.NewPassword); err != nil {
		h.log.Error("Failed to update password", zap.Error(err), zap.Uint("userID", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

func (h *UserHandler) UpdateNotificationSettings(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req struct {
		Enabled      bool   `json:"enabled"`
		ReminderTime string `json:"reminderTime"`
		TimeZone     string `json:"timeZone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if req.TimeZone == "" {
		req.TimeZone = "UTC"
	}
	loc, err := time.LoadLocation(req.TimeZone)
	if err != nil {
		h.log.Warn("Invalid timezone identifier", zap.Error(err), zap.String("timezone", req.TimeZone))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid timezone"})
		return
	}

	reminder := ""
	if req.ReminderTime != "" {
		reminder, err = utcReminderTime(req.ReminderTime, loc, time.Now())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid time format. Please use HH:MM."})
			return
		}
	}

	if err := h.savePreferences(c.Request.Context(), user.ID, req.Enabled, reminder, req.TimeZone); err != nil {
		h.log.Error("Failed to update notification preferences", zap.Error(err), zap.Uint("userID", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save notification settings"})
		return
	}
	// Day buckets follow the user's zone.
	if req.TimeZone != user.TimeZone {
		if err := h.cache.Invalidate(c.Request.Context(), user.ID); err != nil {
			h.log.Warn("Failed to invalidate insights cache", zap.Uint("userID", user.ID), zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification settings saved", "reminderTimeUtc": reminder})
}

func (h *UserHandler) DeleteAccount(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req struct {
		Password     string `json:"password"`
		Confirmation string `json:"confirmation"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if req.Confirmation != "DELETE" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please type DELETE to confirm"})
		return
	}
	if !user.CheckPassword(req.Password) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Incorrect password"})
		return
	}
	if err := repository.DeleteUser(c.Request.Context(), user.ID); err != nil {
		h.log.Error("Failed to delete account", zap.Error(err), zap.Uint("userID", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		return
	}
	c.Status(http.StatusNoContent)
}
