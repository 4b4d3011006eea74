package database

import (
	"fmt"

	"wellness-go/internal/config"
	logging "wellness-go/internal/logging"
	"wellness-go/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// DSN builds the postgres connection string from the configuration.
func DSN(dbConf config.DatabaseConfig) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		dbConf.Host, dbConf.User, dbConf.Password, dbConf.DBName, dbConf.Port)
}

// Init opens the connection and migrates the schema.
func Init(log *zap.Logger, dbConf config.DatabaseConfig) error {
	db, err := gorm.Open(postgres.Open(DSN(dbConf)), &gorm.Config{
		Logger: logging.NewGormZapLogger(log),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	DB = db

	log.Info("Database connection established successfully.")
	return runMigrations(log)
}

func runMigrations(log *zap.Logger) error {
	// GORM's AutoMigrate creates tables, columns and the struct-tagged indexes.
	err := DB.AutoMigrate(
		&models.User{},
		&models.AssessmentHistoryEntry{},
		&models.MoodEntry{},
		&models.ProgressEntry{},
		&models.PlanModule{},
		&models.UserPlanModuleState{},
	)
	if err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	log.Info("Database migrations completed successfully.")

	historyIndex := `CREATE INDEX IF NOT EXISTS idx_history_user_type_time ON assessment_history (user_id, assessment_type, completed_at DESC);`
	if err := DB.Exec(historyIndex).Error; err != nil {
		return fmt.Errorf("failed to create custom index on history table: %w", err)
	}
	log.Info("Custom indexes ensured successfully.")
	return nil
}
