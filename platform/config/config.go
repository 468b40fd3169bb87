// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// TriggerConfig provides settings for the sync trigger webhook.
type TriggerConfig interface {
	GetWebhookSecretKey() string
}

// SourceConfig provides settings for the upstream spreadsheet source.
type SourceConfig interface {
	GetSourceKind() string
	GetSheetsCredentialsFile() string
	GetSpreadsheetID() string
	GetWorksheetName() string
	GetSourceFile() string
}

// SyncConfig provides settings for the synchronizer. The follow-up column
// list is shared with reporting so both sides count the same dates.
type SyncConfig interface {
	GetSyncTable() string
	GetPhoneRegion() string
	GetFollowUpDateColumns() []string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// CacheConfig provides settings for the reporting snapshot cache.
type CacheConfig interface {
	GetRedisURL() string
	GetSnapshotTTL() time.Duration
}

// SchedulerConfig provides settings for the asynq-based periodic sync runner.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
	GetSyncInterval() time.Duration
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                   string
	HTTPAddr              string
	DatabaseURL           string
	WebhookSecretKey      string
	SourceKind            string
	SheetsCredentialsFile string
	SpreadsheetID         string
	WorksheetName         string
	SourceFile            string
	SyncTable             string
	PhoneRegion           string
	FollowUpDateColumns   []string
	TriggerAsync          bool
	CORSAllowAll          bool
	CORSOrigins           []string
	CORSAllowCreds        bool
	RedisURL              string
	RedisTLSInsecure      bool
	AsynqQueueName        string
	AsynqConcurrency      int
	SyncInterval          time.Duration
	SnapshotTTL           time.Duration
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// TriggerConfig implementation
func (c *Config) GetWebhookSecretKey() string { return c.WebhookSecretKey }

// SourceConfig implementation
func (c *Config) GetSourceKind() string            { return c.SourceKind }
func (c *Config) GetSheetsCredentialsFile() string { return c.SheetsCredentialsFile }
func (c *Config) GetSpreadsheetID() string         { return c.SpreadsheetID }
func (c *Config) GetWorksheetName() string         { return c.WorksheetName }
func (c *Config) GetSourceFile() string            { return c.SourceFile }

// SyncConfig implementation
func (c *Config) GetSyncTable() string             { return c.SyncTable }
func (c *Config) GetPhoneRegion() string           { return c.PhoneRegion }
func (c *Config) GetFollowUpDateColumns() []string { return c.FollowUpDateColumns }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// CacheConfig implementation
func (c *Config) GetRedisURL() string           { return c.RedisURL }
func (c *Config) GetSnapshotTTL() time.Duration { return c.SnapshotTTL }

// SchedulerConfig implementation
func (c *Config) GetRedisTLSInsecure() bool      { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string      { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int       { return c.AsynqConcurrency }
func (c *Config) GetSyncInterval() time.Duration { return c.SyncInterval }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                   getEnv("APP_ENV", "development"),
		HTTPAddr:              getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		WebhookSecretKey:      getEnv("WEBHOOK_SECRET_KEY", ""),
		SourceKind:            strings.ToLower(getEnv("SOURCE_KIND", "sheets")),
		SheetsCredentialsFile: getEnv("SHEETS_CREDENTIALS_FILE", ""),
		SpreadsheetID:         getEnv("SPREADSHEET_ID", ""),
		WorksheetName:         getEnv("WORKSHEET_NAME", "Sheet1"),
		SourceFile:            getEnv("SOURCE_FILE", ""),
		SyncTable:             getEnv("SYNC_TABLE", "sales_data"),
		PhoneRegion:           getEnv("PHONE_REGION", ""),
		FollowUpDateColumns:   splitCSV(getEnv("SYNC_FOLLOW_UP_COLUMNS", "next_follow_up_date")),
		TriggerAsync:          strings.EqualFold(getEnv("SYNC_TRIGGER_ASYNC", "false"), "true"),
		CORSAllowAll:          corsAllowAll,
		CORSOrigins:           corsOrigins,
		CORSAllowCreds:        strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		RedisURL:              getEnv("REDIS_URL", ""),
		RedisTLSInsecure:      strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:        getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:      mustInt(getEnv("ASYNQ_CONCURRENCY", "1")),
		SyncInterval:          mustDuration(getEnv("SYNC_INTERVAL", "0")),
		SnapshotTTL:           mustDuration(getEnv("SNAPSHOT_TTL", "60s")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.WebhookSecretKey == "" {
		return nil, fmt.Errorf("WEBHOOK_SECRET_KEY is required")
	}
	switch cfg.SourceKind {
	case "sheets":
		if cfg.SheetsCredentialsFile == "" || cfg.SpreadsheetID == "" {
			return nil, fmt.Errorf("SHEETS_CREDENTIALS_FILE and SPREADSHEET_ID are required when SOURCE_KIND is sheets")
		}
	case "xlsx", "csv":
		if cfg.SourceFile == "" {
			return nil, fmt.Errorf("SOURCE_FILE is required when SOURCE_KIND is %s", cfg.SourceKind)
		}
	default:
		return nil, fmt.Errorf("unsupported SOURCE_KIND %q", cfg.SourceKind)
	}
	if cfg.TriggerAsync && cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required when SYNC_TRIGGER_ASYNC is true")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
