package models

import (
	"time"

	"github.com/google/uuid"
)

// MoodEntry is a single mood check-in.
type MoodEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_mood_user_time,priority:1" json:"-"`
	Mood      string    `gorm:"not null" json:"mood"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"not null;index:idx_mood_user_time,priority:2" json:"createdAt"`
}

func (e MoodEntry) Timestamp() time.Time { return e.CreatedAt }

// ProgressEntry records one value of a free-form progress metric
// (sleep hours, anxiety level, ...).
type ProgressEntry struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uint      `gorm:"not null;index:idx_progress_user_time,priority:1" json:"-"`
	Metric string    `gorm:"not null" json:"metric"`
	Value  float64   `json:"value"`
	Date   time.Time `gorm:"not null;index:idx_progress_user_time,priority:2" json:"date"`
	Notes  string    `gorm:"type:text" json:"notes,omitempty"`
}

func (e ProgressEntry) Timestamp() time.Time { return e.Date }

// StreakData is fully derived from a user's mood entries.
type StreakData struct {
	CurrentStreak    int     `json:"currentStreak"`
	LongestStreak    int     `json:"longestStreak"`
	TotalCheckIns    int     `json:"totalCheckIns"`
	ThisWeekCheckIns int     `json:"thisWeekCheckIns"`
	LastCheckInDate  string  `json:"lastCheckInDate,omitempty"`
	AverageMood      float64 `json:"averageMood"`
}
