package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Store modes supported by the application.
const (
	StoreModeDemo    = "demo"
	StoreModeMongoDB = "mongodb"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	Store     StoreConfig
	Reporting ReportingConfig
	Sheets    SheetsConfig
	Alerts    AlertsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// AuthConfig holds session token settings.
type AuthConfig struct {
	JWTSecret string
}

// StoreConfig selects and parameterizes the record store backend.
type StoreConfig struct {
	Mode        string
	MongoURI    string
	MongoDBName string
}

// ReportingConfig holds the daily report schedule.
type ReportingConfig struct {
	CronSchedule string
	Timezone     string
}

// SheetsConfig enables the optional Google Sheets report export when both
// fields are set.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether the export is configured.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// AlertsConfig enables the optional outbound webhook when set.
type AlertsConfig struct {
	WebhookURL string
}

// ConfigurationError reports required settings that are absent at startup.
// It is fatal to normal operation: the application must present setup
// instructions instead of running degraded.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.Missing, ", "))
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from the
		// environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
		},
		Store: StoreConfig{
			Mode:        getenvWithDefault("STORE_MODE", StoreModeDemo),
			MongoURI:    os.Getenv("MONGODB_URI"),
			MongoDBName: getenvWithDefault("MONGODB_DB_NAME", "tablewater"),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 20 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Africa/Lagos"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("SHEETS_SPREADSHEET_ID"),
		},
		Alerts: AlertsConfig{
			WebhookURL: os.Getenv("ALERT_WEBHOOK_URL"),
		},
	}

	if cfg.Store.Mode == StoreModeDemo && cfg.Auth.JWTSecret == "" {
		// Demo mode runs without any environment; a real backend requires an
		// operator-provided secret.
		cfg.Auth.JWTSecret = "demo-secret-do-not-use-in-production"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated. Missing
// backend settings are reported together as a ConfigurationError so the
// setup screen can list them all at once.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Store.Mode {
	case StoreModeDemo, StoreModeMongoDB:
	default:
		return fmt.Errorf("STORE_MODE must be %q or %q, got %q", StoreModeDemo, StoreModeMongoDB, c.Store.Mode)
	}

	var missing []string
	if c.Store.Mode == StoreModeMongoDB {
		if c.Store.MongoURI == "" {
			missing = append(missing, "MONGODB_URI")
		}
		if c.Auth.JWTSecret == "" {
			missing = append(missing, "JWT_SECRET")
		}
	}
	if len(missing) > 0 {
		return &ConfigurationError{Missing: missing}
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must not be empty")
	}

	if c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must not be empty")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
