package services

import (
	"wellness-go/internal/models"

	"go.uber.org/zap"
)

// Notifier delivers check-in reminders.
type Notifier interface {
	SendCheckInReminder(user models.User)
}

// EmailService is a placeholder for a real email sending service. It only
// logs the message it would send.
type EmailService struct {
	log *zap.Logger
}

func NewEmailService(log *zap.Logger) *EmailService {
	return &EmailService{log: log.Named("email")}
}

// SendCheckInReminder logs the reminder email.
func (s *EmailService) SendCheckInReminder(user models.User) {
	s.log.Info("Sending check-in reminder email",
		zap.String("to", user.Email),
		zap.String("name", user.FirstName),
		zap.String("subject", "How are you feeling today?"),
	)
}
