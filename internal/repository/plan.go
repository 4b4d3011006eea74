package repository

import (
	"context"
	"time"

	"wellness-go/internal/database"
	"wellness-go/internal/models"

	"gorm.io/gorm/clause"
)

// GetPlanModules joins every plan module with the user's progress on it.
func GetPlanModules(ctx context.Context, userID uint) ([]models.PlanModuleWithState, error) {
	var modules []models.PlanModule
	if err := database.DB.WithContext(ctx).Order("id").Find(&modules).Error; err != nil {
		return nil, err
	}

	var states []models.UserPlanModuleState
	if err := database.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&states).Error; err != nil {
		return nil, err
	}
	byModule := make(map[string]*models.UserPlanModuleState, len(states))
	for i := range states {
		byModule[states[i].ModuleID] = &states[i]
	}

	result := make([]models.PlanModuleWithState, 0, len(modules))
	for _, m := range modules {
		result = append(result, models.PlanModuleWithState{PlanModule: m, State: byModule[m.ID]})
	}
	return result, nil
}

// PlanModuleExists reports whether a module with the given ID is part of the plan.
func PlanModuleExists(ctx context.Context, moduleID string) (bool, error) {
	var count int64
	err := database.DB.WithContext(ctx).Model(&models.PlanModule{}).Where("id = ?", moduleID).Count(&count).Error
	return count > 0, err
}

// SavePlanModuleState creates or replaces the user's state for one module.
func SavePlanModuleState(ctx context.Context, state *models.UserPlanModuleState) error {
	state.UpdatedAt = time.Now().UTC()
	return database.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "module_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"progress", "completed_steps", "completed_at", "updated_at"}),
	}).Create(state).Error
}
