package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Conf holds the application configuration, making it accessible globally.
var Conf *Config

// Config struct is the top-level configuration structure.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Assessments AssessmentsConfig `mapstructure:"assessments"`
	Analytics   AnalyticsConfig   `mapstructure:"analytics"`
	Reminders   RemindersConfig   `mapstructure:"reminders"`
}

// ServerConfig holds server-related settings.
type ServerConfig struct {
	Port          string `mapstructure:"port"`
	SessionSecret string `mapstructure:"session_secret"`
	SecureCookies bool   `mapstructure:"secure_cookies"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

// LoggingConfig holds settings for the logger.
type LoggingConfig struct {
	Directory  string `mapstructure:"directory"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// RedisConfig holds the insights cache settings. An empty Addr disables caching.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// AssessmentsConfig points at the questionnaire templates.
type AssessmentsConfig struct {
	TemplatesDir string `mapstructure:"templates_dir"`
}

// AnalyticsConfig tunes the progress/insights computations.
type AnalyticsConfig struct {
	DefaultTimeZone  string `mapstructure:"default_time_zone"`
	HeatmapDays      int    `mapstructure:"heatmap_days"`
	DefaultRangeDays int    `mapstructure:"default_range_days"`
}

// RemindersConfig controls the daily check-in reminder scheduler.
type RemindersConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// DefaultLocation resolves the configured fallback time zone.
func (a AnalyticsConfig) DefaultLocation() *time.Location {
	if a.DefaultTimeZone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(a.DefaultTimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// validate rejects range defaults the insights API cannot serve.
func (a AnalyticsConfig) validate() error {
	switch a.DefaultRangeDays {
	case 7, 30, 90:
		return nil
	}
	return fmt.Errorf("analytics.default_range_days must be 7, 30 or 90, got %d", a.DefaultRangeDays)
}

// setDefaults sets the default values for the configuration.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "5050")
	v.SetDefault("server.session_secret", "change-me")
	v.SetDefault("server.secure_cookies", false)

	// Database defaults
	v.SetDefault("database.host", "db")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "user")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.dbname", "wellness-db")

	// Logging defaults
	v.SetDefault("logging.directory", "logs")
	v.SetDefault("logging.max_size", 10)   // 10 MB
	v.SetDefault("logging.max_backups", 3) // Keep 3 backups
	v.SetDefault("logging.max_age", 7)     // 7 days
	v.SetDefault("logging.compress", true) // Compress old logs

	// Cache defaults
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", "10m")

	v.SetDefault("assessments.templates_dir", "config/templates")

	v.SetDefault("analytics.default_time_zone", "UTC")
	v.SetDefault("analytics.heatmap_days", 90)
	v.SetDefault("analytics.default_range_days", 30)

	v.SetDefault("reminders.enabled", true)
}

// Load reads the configuration without installing a watcher.
func Load(projectRoot string) (*Config, *viper.Viper, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// --- File Configuration ---
	v.AddConfigPath(filepath.Join(projectRoot, "config"))
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// --- Environment Variable Binding ---
	v.SetEnvPrefix("WELLNESS") // e.g., WELLNESS_SERVER_PORT
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// It's okay if the file doesn't exist; defaults and env vars will be used.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := conf.Analytics.validate(); err != nil {
		return nil, nil, err
	}
	return &conf, v, nil
}

// Init loads the configuration into Conf. The returned viper instance is
// handed to Watch once a logger exists.
func Init(projectRoot string) (*viper.Viper, error) {
	conf, v, err := Load(projectRoot)
	if err != nil {
		return nil, err
	}
	Conf = conf
	return v, nil
}

// Watch reloads Conf whenever the config file changes.
func Watch(v *viper.Viper, log *zap.Logger) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		log.Info("Configuration file changed, reloading.", zap.String("file", e.Name))
		var reloaded Config
		if err := v.Unmarshal(&reloaded); err != nil {
			log.Error("Error reloading configuration", zap.Error(err))
			return
		}
		if err := reloaded.Analytics.validate(); err != nil {
			log.Error("Ignoring invalid configuration", zap.Error(err))
			return
		}
		Conf = &reloaded
	})
}
