// Package config builds the process configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"twse_ingest/internal/feature/ingest/domain/entity"
	"twse_ingest/internal/platform/bigquery"
	"twse_ingest/internal/platform/db"
	"twse_ingest/internal/platform/externalapi/twse"
)

const (
	BackendBigQuery = "bigquery"
	BackendMySQL    = "mysql"

	defaultLogLevel  = "INFO"
	defaultTimezone  = "Asia/Taipei"
	defaultPort      = 8080
	defaultSchedule  = "30 14 * * *"
	defaultRedisPort = "6379"
)

// Config keeps the runtime configuration for the ingestion process.
// It is built once at start-up and passed to the components that need it.
type Config struct {
	StockCodes []string
	LogLevel   string
	Backend    string
	BigQuery   bigquery.TableRef
	// BigQueryStringDates は date 列が STRING の既存テーブルに書き込む場合に true にします。
	BigQueryStringDates bool
	DB                  db.Config
	Redis               RedisConfig
	TWSE                twse.Config
	Location            *time.Location
	Port                int
	Schedule            string
}

// RedisConfig stores Redis connection parameters for the run recorder.
// Addr is empty when Redis is not configured.
type RedisConfig struct {
	Addr     string
	Password string
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// TableID returns the fully qualified warehouse table (project.dataset.table).
func (c *Config) TableID() string {
	return c.BigQuery.String()
}

// Load reads an optional .env file and then builds Config from the environment.
func Load() (*Config, error) {
	// .envが無ければシステムの環境変数をそのまま使う
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds Config from environment variables only.
func FromEnv() (*Config, error) {
	codes := entity.SplitCodes(os.Getenv("STOCK_CODES"))
	if len(codes) == 0 {
		return nil, errors.New("STOCK_CODES is required")
	}

	backend := strings.ToLower(getString("WAREHOUSE_BACKEND", BackendBigQuery))
	ref := bigquery.TableRef{
		ProjectID: os.Getenv("GCP_PROJECT_ID"),
		DatasetID: os.Getenv("BQ_DATASET_ID"),
		TableID:   os.Getenv("BQ_TABLE_ID"),
	}
	switch backend {
	case BackendBigQuery:
		if err := ref.Validate(); err != nil {
			return nil, fmt.Errorf("GCP_PROJECT_ID, BQ_DATASET_ID and BQ_TABLE_ID are required: %w", err)
		}
	case BackendMySQL:
	default:
		return nil, fmt.Errorf("unsupported WAREHOUSE_BACKEND %q", backend)
	}

	stringDates, err := getBool("BQ_DATE_AS_STRING", false)
	if err != nil {
		return nil, fmt.Errorf("parse BQ_DATE_AS_STRING: %w", err)
	}

	tz := getString("EXCHANGE_TIMEZONE", defaultTimezone)
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load EXCHANGE_TIMEZONE %q: %w", tz, err)
	}

	port, err := getInt("PORT", defaultPort)
	if err != nil {
		return nil, fmt.Errorf("parse PORT: %w", err)
	}

	tw := twse.DefaultConfig()
	tw.HolidayURL = getString("TWSE_HOLIDAY_URL", tw.HolidayURL)
	tw.DailyReportURL = getString("TWSE_DAILY_REPORT_URL", tw.DailyReportURL)
	if tw.Timeout, err = getDuration("TWSE_TIMEOUT", tw.Timeout); err != nil {
		return nil, fmt.Errorf("parse TWSE_TIMEOUT: %w", err)
	}

	var redisCfg RedisConfig
	if host := os.Getenv("REDIS_HOST"); host != "" {
		redisCfg = RedisConfig{
			Addr:     host + ":" + getString("REDIS_PORT", defaultRedisPort),
			Password: os.Getenv("REDIS_PASSWORD"),
		}
	}

	return &Config{
		StockCodes:          codes,
		LogLevel:            getString("LOG_LEVEL", defaultLogLevel),
		Backend:             backend,
		BigQuery:            ref,
		BigQueryStringDates: stringDates,
		DB:                  db.LoadConfigFromEnv(),
		Redis:               redisCfg,
		TWSE:                tw,
		Location:            loc,
		Port:                port,
		Schedule:            getString("INGEST_SCHEDULE", defaultSchedule),
	}, nil
}

func getString(key, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	return value
}

func getInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("convert %s value %q to int: %w", key, value, err)
	}
	return parsed, nil
}

func getBool(key string, fallback bool) (bool, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("convert %s value %q to bool: %w", key, value, err)
	}
	return parsed, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("convert %s value %q to duration: %w", key, value, err)
	}
	return parsed, nil
}
