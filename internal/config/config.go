package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// History backends supported by the gateway.
const (
	BackendMongo = "mongo"
	BackendAPI   = "api"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Costing   CostingConfig
	History   HistoryConfig
	MongoDB   MongoDBConfig
	CalcAPI   CalcAPIConfig
	Sheets    SheetsConfig
	Reporting ReportingConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string
}

// CostingConfig holds calculator defaults applied when a user has no settings.
type CostingConfig struct {
	DefaultExpenses float64
}

// HistoryConfig selects where calculation history and settings are stored.
type HistoryConfig struct {
	Backend string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// CalcAPIConfig points at the remote calculation REST API.
type CalcAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SheetsConfig contains configuration required to mirror history to Google Sheets.
// Both fields empty disables the mirror.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether the Sheets mirror is configured.
func (s SheetsConfig) Enabled() bool {
	return s.CredentialsPath != "" && s.SpreadsheetID != ""
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule string
	Timezone     string
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
		// Missing .env files are fine when configuration comes from the environment.
		_ = godotenv.Load()
	}

	expenses, err := parseFloat("DEFAULT_EXPENSES", getenvWithDefault("DEFAULT_EXPENSES", "150"))
	if err != nil {
		return nil, err
	}

	timeout, err := time.ParseDuration(getenvWithDefault("CALC_API_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("CALC_API_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Costing: CostingConfig{
			DefaultExpenses: expenses,
		},
		History: HistoryConfig{
			Backend: strings.ToLower(getenvWithDefault("HISTORY_BACKEND", BackendMongo)),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "costing"),
		},
		CalcAPI: CalcAPIConfig{
			BaseURL: getenvWithDefault("CALC_API_BASE_URL", "https://commodity-calculator-api.onrender.com"),
			Timeout: timeout,
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 20 * * 5"),
			Timezone:     getenvWithDefault("TIMEZONE", "Asia/Kolkata"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if math.IsNaN(c.Costing.DefaultExpenses) || math.IsInf(c.Costing.DefaultExpenses, 0) || c.Costing.DefaultExpenses < 0 {
		return errors.New("DEFAULT_EXPENSES must be a non-negative number")
	}

	switch c.History.Backend {
	case BackendMongo:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided")
		}
		if c.MongoDB.DBName == "" {
			return errors.New("MONGODB_DB_NAME must not be empty")
		}
	case BackendAPI:
		if c.CalcAPI.BaseURL == "" {
			return errors.New("CALC_API_BASE_URL must not be empty")
		}
		if c.CalcAPI.Timeout <= 0 {
			return errors.New("CALC_API_TIMEOUT must be positive")
		}
	default:
		return fmt.Errorf("HISTORY_BACKEND %q is not supported", c.History.Backend)
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_DATABASE_ID must be provided together")
	}

	if c.Sheets.Enabled() {
		if c.Reporting.CronSchedule == "" {
			return errors.New("REPORT_CRON_SCHEDULE must be provided")
		}
		if _, err := time.LoadLocation(c.Reporting.Timezone); err != nil {
			return fmt.Errorf("TIMEZONE: %w", err)
		}
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseFloat(key, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
