package services

import (
	"context"
	"fmt"
	"time"

	"wellness-go/internal/cache"
	"wellness-go/internal/config"
	"wellness-go/internal/metrics"
	"wellness-go/internal/models"

	"go.uber.org/zap"
)

// Report ranges accepted by InsightsService.Report.
const (
	Range7Days  = "7d"
	Range30Days = "30d"
	Range90Days = "90d"
	RangeAll    = "all"
)

var rangeDays = map[string]int{
	Range7Days:  7,
	Range30Days: 30,
	Range90Days: 90,
	RangeAll:    0,
}

// InsightsReport is the progress surface for one user.
type InsightsReport struct {
	Range       string                                  `json:"range"`
	TimeZone    string                                  `json:"timeZone"`
	GeneratedAt time.Time                               `json:"generatedAt"`
	Summaries   map[string]models.AssessmentTypeSummary `json:"summaries"`
	Streak      models.StreakData                       `json:"streak"`
	Timeline    []metrics.TimelineRow                   `json:"timeline"`
	Metrics     map[string]metrics.MetricSummary        `json:"metrics"`
	Heatmap     []metrics.HeatmapCell                   `json:"heatmap"`
	Plan        models.PlanProgress                     `json:"plan"`
}

type InsightsService struct {
	log       *zap.Logger
	history   HistorySource
	events    EventSource
	cache     cache.InsightsCache
	analytics config.AnalyticsConfig
	now       func() time.Time
}

func NewInsightsService(log *zap.Logger, history HistorySource, events EventSource, insightsCache cache.InsightsCache, analytics config.AnalyticsConfig) *InsightsService {
	if insightsCache == nil {
		insightsCache = cache.Noop{}
	}
	return &InsightsService{
		log:       log,
		history:   history,
		events:    events,
		cache:     insightsCache,
		analytics: analytics,
		now:       time.Now,
	}
}

// ParseRange validates a range key. An empty key selects the configured
// default, or 30d when that is not a known range.
func (s *InsightsService) ParseRange(key string) (string, int, error) {
	if key == "" {
		key = fmt.Sprintf("%dd", s.analytics.DefaultRangeDays)
		if _, ok := rangeDays[key]; !ok || key == RangeAll {
			key = Range30Days
		}
	}
	days, ok := rangeDays[key]
	if !ok {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidRange, key)
	}
	return key, days, nil
}

// userNow is the current instant in the user's zone.
func (s *InsightsService) userNow(user *models.User) time.Time {
	return s.now().In(user.Location(s.analytics.DefaultLocation()))
}

// windowStart is the local midnight opening a window of days calendar days
// ending today.
func windowStart(now time.Time, days int) time.Time {
	return metrics.DayBucket(now, now.Location()).AddDate(0, 0, -(days - 1))
}

// Report builds (or fetches from cache) the insights report for a range.
func (s *InsightsService) Report(ctx context.Context, user *models.User, rangeKey string) (*InsightsReport, error) {
	rangeKey, days, err := s.ParseRange(rangeKey)
	if err != nil {
		return nil, err
	}

	var cached InsightsReport
	hit, err := s.cache.GetReport(ctx, user.ID, rangeKey, &cached)
	if err != nil {
		s.log.Warn("Insights cache read failed", zap.Uint("userID", user.ID), zap.Error(err))
	}
	if hit {
		return &cached, nil
	}

	history, insights, err := s.history.GetHistory(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	moods, err := s.events.GetMoodHistory(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("loading moods: %w", err)
	}
	progress, err := s.events.GetProgressHistory(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("loading progress: %w", err)
	}
	modules, err := s.events.GetPlanModules(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("loading plan modules: %w", err)
	}

	now := s.userNow(user)
	loc := now.Location()

	timelineHistory, filteredProgress := history, progress
	if days > 0 {
		since := windowStart(now, days)
		timelineHistory = metrics.FilterSince(history, since)
		filteredProgress = metrics.FilterSince(progress, since)
	}

	report := &InsightsReport{
		Range:       rangeKey,
		TimeZone:    loc.String(),
		GeneratedAt: now,
		Summaries:   metrics.SummarizeHistory(history, insights),
		Streak:      metrics.BuildStreakData(moods, now),
		Timeline:    metrics.BuildTimeline(timelineHistory, loc),
		Metrics:     metrics.BuildMetricSummaries(filteredProgress, progress),
		Heatmap:     metrics.BuildHeatmap(moods, s.analytics.HeatmapDays, now),
		Plan:        metrics.SummarizePlan(modules, loc),
	}

	if err := s.cache.SetReport(ctx, user.ID, rangeKey, report); err != nil {
		s.log.Warn("Insights cache write failed", zap.Uint("userID", user.ID), zap.Error(err))
	}
	return report, nil
}

// Streak derives the check-in streak without touching the cache.
func (s *InsightsService) Streak(ctx context.Context, user *models.User) (models.StreakData, error) {
	moods, err := s.events.GetMoodHistory(ctx, user.ID)
	if err != nil {
		return models.StreakData{}, fmt.Errorf("loading moods: %w", err)
	}
	return metrics.BuildStreakData(moods, s.userNow(user)), nil
}

// Timeline returns the per-day score rows for a range.
func (s *InsightsService) Timeline(ctx context.Context, user *models.User, rangeKey string) ([]metrics.TimelineRow, error) {
	_, days, err := s.ParseRange(rangeKey)
	if err != nil {
		return nil, err
	}
	history, _, err := s.history.GetHistory(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	now := s.userNow(user)
	if days > 0 {
		history = metrics.FilterSince(history, windowStart(now, days))
	}
	return metrics.BuildTimeline(history, now.Location()), nil
}
