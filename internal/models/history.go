package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Trend is the direction reported by the external insights service.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
	TrendBaseline  Trend = "baseline"
)

// AssessmentHistoryEntry is one completed assessment. Rows are never updated.
type AssessmentHistoryEntry struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uint           `gorm:"not null;index:idx_history_user_time,priority:1" json:"-"`
	AssessmentType     string         `gorm:"not null;index" json:"assessmentType"`
	Score              float64        `json:"score"`
	RawScore           *float64       `json:"rawScore,omitempty"`
	MaxScore           *float64       `json:"maxScore,omitempty"`
	Interpretation     string         `json:"interpretation"`
	ChangeFromPrevious *float64       `json:"changeFromPrevious"`
	Trend              Trend          `json:"trend"`
	Responses          datatypes.JSON `gorm:"type:jsonb" json:"responses"`
	CategoryBreakdown  datatypes.JSON `gorm:"type:jsonb" json:"categoryBreakdown,omitempty"`
	CompletedAt        time.Time      `gorm:"not null;index:idx_history_user_time,priority:2" json:"completedAt"`
}

func (AssessmentHistoryEntry) TableName() string { return "assessment_history" }

// TypeInsight is the externally computed signal for one assessment type.
type TypeInsight struct {
	Trend           Trend    `json:"trend"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// AssessmentInsights arrives alongside the history and is consumed as-is.
type AssessmentInsights struct {
	ByType map[string]TypeInsight `json:"byType"`
}

// AssessmentTypeSummary is the per-type rollup recomputed on every history fetch.
type AssessmentTypeSummary struct {
	AssessmentType  string    `json:"assessmentType"`
	LatestScore     float64   `json:"latestScore"`
	PreviousScore   *float64  `json:"previousScore"`
	Change          *float64  `json:"change"`
	AverageScore    float64   `json:"averageScore"`
	BestScore       float64   `json:"bestScore"`
	Trend           Trend     `json:"trend,omitempty"`
	TrendLabel      string    `json:"trendLabel,omitempty"`
	TrendColor      string    `json:"trendColor,omitempty"`
	ChangeSentiment string    `json:"changeSentiment"`
	Interpretation  string    `json:"interpretation"`
	Recommendations []string  `json:"recommendations,omitempty"`
	LastCompletedAt time.Time `json:"lastCompletedAt"`
	HistoryCount    int       `json:"historyCount"`
}
