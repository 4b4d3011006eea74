package services

import (
	"context"
	"time"

	"wellness-go/internal/metrics"
	"wellness-go/internal/models"

	"go.uber.org/zap"
)

// ReminderStore finds the users due a reminder.
type ReminderStore interface {
	GetUsersForReminder(ctx context.Context, reminderTime string) ([]models.User, error)
	HasCheckedInSince(ctx context.Context, userID uint, since time.Time) (bool, error)
}

type Scheduler struct {
	log      *zap.Logger
	store    ReminderStore
	notifier Notifier
	fallback *time.Location
}

func NewScheduler(log *zap.Logger, store ReminderStore, notifier Notifier, fallback *time.Location) *Scheduler {
	if fallback == nil {
		fallback = time.UTC
	}
	return &Scheduler{
		log:      log,
		store:    store,
		notifier: notifier,
		fallback: fallback,
	}
}

// Start runs the scheduler in a goroutine until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	s.log.Info("Starting reminder scheduler...")
	go func() {
		// Ticker will fire on every minute.
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.log.Info("Reminder scheduler stopped")
				return
			case tick := <-ticker.C:
				s.runReminderCheck(ctx, tick)
			}
		}
	}()
}

// runReminderCheck reminds every user whose reminder time is now and who
// has not checked in yet today in their own time zone. It returns the
// number of reminders sent.
func (s *Scheduler) runReminderCheck(ctx context.Context, now time.Time) int {
	currentTime := now.UTC().Format("15:04")
	s.log.Debug("Running reminder check", zap.String("utc_time", currentTime))

	users, err := s.store.GetUsersForReminder(ctx, currentTime)
	if err != nil {
		s.log.Error("Failed to get users for reminder", zap.Error(err))
		return 0
	}

	sent := 0
	for _, user := range users {
		loc := user.Location(s.fallback)
		today := metrics.DayBucket(now, loc)
		checkedIn, err := s.store.HasCheckedInSince(ctx, user.ID, today)
		if err != nil {
			s.log.Error("Failed to check mood check-in status", zap.Uint("userID", user.ID), zap.Error(err))
			continue
		}
		if !checkedIn {
			s.notifier.SendCheckInReminder(user)
			sent++
		}
	}
	return sent
}
