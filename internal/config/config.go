package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends selectable via STOCKMATE_STORAGE_BACKEND.
const (
	BackendJSONFile = "json"
	BackendBolt     = "bolt"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Reporting ReportingConfig
	Alert     AlertConfig
	MongoDB   MongoDBConfig
	Sheets    SheetsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port     string
	LogLevel string
}

// StorageConfig selects and locates the durable store.
type StorageConfig struct {
	Backend       string
	DataDir       string
	InventoryFile string
	BillsFile     string
	BoltFile      string
}

// ReportingConfig holds scheduler-related settings. Timezone names an IANA
// location the cron schedules are evaluated in; "Local" uses the host zone.
type ReportingConfig struct {
	CloseOfDaySchedule string
	LowStockSchedule   string
	LowStockThreshold  int
	Timezone           string
}

// AlertConfig configures the optional outbound webhook notifier.
type AlertConfig struct {
	WebhookURL string
}

// MongoDBConfig holds settings for the optional report archive.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// SheetsConfig holds settings for the optional bill export.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
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
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	threshold, err := strconv.Atoi(getenvWithDefault("STOCKMATE_LOW_STOCK_THRESHOLD", "5"))
	if err != nil {
		return nil, fmt.Errorf("STOCKMATE_LOW_STOCK_THRESHOLD must be an integer: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:     getenvWithDefault("APP_PORT", "8080"),
			LogLevel: getenvWithDefault("STOCKMATE_LOG_LEVEL", "info"),
		},
		Storage: StorageConfig{
			Backend:       getenvWithDefault("STOCKMATE_STORAGE_BACKEND", BackendJSONFile),
			DataDir:       getenvWithDefault("STOCKMATE_DATA_DIR", "data"),
			InventoryFile: getenvWithDefault("STOCKMATE_INVENTORY_FILE", "inventory.json"),
			BillsFile:     getenvWithDefault("STOCKMATE_BILLS_FILE", "bills.json"),
			BoltFile:      getenvWithDefault("STOCKMATE_BOLT_FILE", "stockmate.db"),
		},
		Reporting: ReportingConfig{
			CloseOfDaySchedule: getenvWithDefault("STOCKMATE_CLOSE_OF_DAY_CRON", "0 20 * * *"),
			LowStockSchedule:   getenvWithDefault("STOCKMATE_LOW_STOCK_CRON", "0 * * * *"),
			LowStockThreshold:  threshold,
			Timezone:           getenvWithDefault("STOCKMATE_TIMEZONE", "Local"),
		},
		Alert: AlertConfig{
			WebhookURL: os.Getenv("STOCKMATE_ALERT_WEBHOOK_URL"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "stockmate"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_EXPORT_ID"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated. The
// alert webhook, MongoDB archive and Sheets export are optional and only
// validated when partially configured.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Storage.Backend {
	case BackendJSONFile:
		if c.Storage.InventoryFile == "" || c.Storage.BillsFile == "" {
			return errors.New("STOCKMATE_INVENTORY_FILE and STOCKMATE_BILLS_FILE must not be empty")
		}
		if c.Storage.InventoryFile == c.Storage.BillsFile {
			return errors.New("inventory and bills files must be two distinct files")
		}
	case BackendBolt:
		if c.Storage.BoltFile == "" {
			return errors.New("STOCKMATE_BOLT_FILE must not be empty")
		}
	default:
		return fmt.Errorf("unknown storage backend %q (want %q or %q)", c.Storage.Backend, BackendJSONFile, BackendBolt)
	}

	if c.Storage.DataDir == "" {
		return errors.New("STOCKMATE_DATA_DIR must not be empty")
	}

	if c.Reporting.CloseOfDaySchedule == "" {
		return errors.New("STOCKMATE_CLOSE_OF_DAY_CRON must be provided")
	}

	if c.Reporting.LowStockSchedule == "" {
		return errors.New("STOCKMATE_LOW_STOCK_CRON must be provided")
	}

	if c.Reporting.LowStockThreshold < 0 {
		return errors.New("STOCKMATE_LOW_STOCK_THRESHOLD must not be negative")
	}

	if _, err := time.LoadLocation(c.Reporting.Timezone); err != nil {
		return fmt.Errorf("STOCKMATE_TIMEZONE %q is not a valid location: %w", c.Reporting.Timezone, err)
	}

	if c.Sheets.SpreadsheetID != "" && c.Sheets.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when GOOGLE_SHEET_EXPORT_ID is set")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
