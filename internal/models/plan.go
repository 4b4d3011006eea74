package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

// ContentType is the closed set of media a plan module can carry.
type ContentType string

const (
	ContentVideo    ContentType = "video"
	ContentAudio    ContentType = "audio"
	ContentArticle  ContentType = "article"
	ContentPlaylist ContentType = "playlist"
)

func (c ContentType) Valid() bool {
	switch c {
	case ContentVideo, ContentAudio, ContentArticle, ContentPlaylist:
		return true
	}
	return false
}

func (c *ContentType) UnmarshalText(text []byte) error {
	v := ContentType(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return fmt.Errorf("unknown content type %q", string(text))
	}
	*c = v
	return nil
}

type PlanModule struct {
	ID          string      `gorm:"primaryKey" json:"id"`
	Title       string      `gorm:"not null" json:"title"`
	ContentType ContentType `gorm:"not null" json:"contentType"`
	Duration    string      `json:"duration,omitempty"`
	Steps       int         `json:"steps"`
}

// UserPlanModuleState tracks one user's progress through a plan module.
type UserPlanModuleState struct {
	UserID         uint           `gorm:"primaryKey" json:"-"`
	ModuleID       string         `gorm:"primaryKey" json:"moduleId"`
	Progress       float64        `json:"progress"`
	CompletedSteps pq.StringArray `gorm:"type:text[]" json:"completedSteps"`
	CompletedAt    *time.Time     `json:"completedAt,omitempty"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// PlanModuleWithState joins a module with the user's state, if any.
type PlanModuleWithState struct {
	PlanModule
	State *UserPlanModuleState `json:"userState,omitempty"`
}

// PlanProgress summarizes a user's plan modules.
type PlanProgress struct {
	TotalModules     int     `json:"totalModules"`
	CompletedModules int     `json:"completedModules"`
	InProgress       int     `json:"inProgress"`
	AverageProgress  float64 `json:"averageProgress"`
	LastActivity     string  `json:"lastActivity,omitempty"`
}
