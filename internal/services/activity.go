package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wellness-go/internal/cache"
	"wellness-go/internal/metrics"
	"wellness-go/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ActivityService records mood check-ins, progress values and plan-module
// progress. All writes invalidate the user's cached insights.
type ActivityService struct {
	log    *zap.Logger
	events EventStore
	cache  cache.InsightsCache
	now    func() time.Time
}

func NewActivityService(log *zap.Logger, events EventStore, insightsCache cache.InsightsCache) *ActivityService {
	if insightsCache == nil {
		insightsCache = cache.Noop{}
	}
	return &ActivityService{log: log, events: events, cache: insightsCache, now: time.Now}
}

func (s *ActivityService) invalidate(ctx context.Context, userID uint) {
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.log.Warn("Failed to invalidate insights cache", zap.Uint("userID", userID), zap.Error(err))
	}
}

// LogMood appends a mood check-in.
func (s *ActivityService) LogMood(ctx context.Context, userID uint, mood, notes string) (*models.MoodEntry, error) {
	if _, ok := metrics.MoodScore(mood); !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMood, mood)
	}
	entry := &models.MoodEntry{
		ID:        uuid.New(),
		UserID:    userID,
		Mood:      strings.TrimSpace(mood),
		Notes:     notes,
		CreatedAt: s.now().UTC(),
	}
	if err := s.events.SaveMoodEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("saving mood entry: %w", err)
	}
	s.invalidate(ctx, userID)
	return entry, nil
}

// LogProgress appends a progress value. A zero date means now.
func (s *ActivityService) LogProgress(ctx context.Context, userID uint, metric string, value float64, date time.Time, notes string) (*models.ProgressEntry, error) {
	metric = strings.TrimSpace(metric)
	if metrics.MetricKey(metric) == "" {
		return nil, ErrInvalidMetric
	}
	if date.IsZero() {
		date = s.now()
	}
	entry := &models.ProgressEntry{
		ID:     uuid.New(),
		UserID: userID,
		Metric: metric,
		Value:  value,
		Date:   date.UTC(),
		Notes:  notes,
	}
	if err := s.events.SaveProgressEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("saving progress entry: %w", err)
	}
	s.invalidate(ctx, userID)
	return entry, nil
}

// UpdatePlanModule stores the user's progress on a module. Progress is
// clamped to [0,100]; reaching 100 marks the module completed.
func (s *ActivityService) UpdatePlanModule(ctx context.Context, userID uint, moduleID string, progress float64, completedSteps []string) (*models.UserPlanModuleState, error) {
	exists, err := s.events.PlanModuleExists(ctx, moduleID)
	if err != nil {
		return nil, fmt.Errorf("looking up plan module: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrPlanModuleNotFound, moduleID)
	}
	progress = min(max(progress, 0), 100)
	state := &models.UserPlanModuleState{
		UserID:         userID,
		ModuleID:       moduleID,
		Progress:       progress,
		CompletedSteps: completedSteps,
	}
	if progress >= 100 {
		done := s.now().UTC()
		state.CompletedAt = &done
	}
	if err := s.events.SavePlanModuleState(ctx, state); err != nil {
		return nil, fmt.Errorf("saving plan module state: %w", err)
	}
	s.invalidate(ctx, userID)
	return state, nil
}

// PlanModules lists the plan with the user's progress on each module.
func (s *ActivityService) PlanModules(ctx context.Context, userID uint) ([]models.PlanModuleWithState, error) {
	return s.events.GetPlanModules(ctx, userID)
}
