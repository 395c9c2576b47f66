package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application. It is built once at
// process start and passed by reference into every component that needs
// store connectivity; nothing reads the environment after Load returns.
type Config struct {
	Port        string
	DatabaseURL string

	// RedisURL points at the landing store for extraction snapshots.
	// Empty disables archival and the extraction job degrades to
	// pull-and-log.
	RedisURL string

	// APIBaseURL is where the pipeline job pushes the recomputed
	// aggregate when PushAfterLoad is set.
	APIBaseURL    string
	PushAfterLoad bool

	MigrationsDir string
	CSVOutputPath string

	ExtractInterval    time.Duration
	PipelineInterval   time.Duration
	ExtractWindowDays  int
	SchedulerRetryWait time.Duration
}

// Load reads configuration from the environment, honoring a local .env
// file if one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	host := getEnv("POSTGRES_HOST", "localhost")
	port := getEnv("POSTGRES_PORT", "5432")
	dbname := getEnv("POSTGRES_DB", "telco_db")
	user := getEnv("POSTGRES_USER", "postgres")
	password := os.Getenv("POSTGRES_PASSWORD")
	if password == "" {
		return nil, fmt.Errorf("POSTGRES_PASSWORD is required")
	}

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		url.QueryEscape(user), url.QueryEscape(password), host, port, dbname)

	return &Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        dbURL,
		RedisURL:           os.Getenv("REDIS_URL"),
		APIBaseURL:         getEnv("API_BASE_URL", "http://localhost:8080"),
		PushAfterLoad:      getEnvBool("PUSH_AFTER_LOAD", false),
		MigrationsDir:      getEnv("MIGRATIONS_DIR", "migrations"),
		CSVOutputPath:      getEnv("CSV_OUTPUT_PATH", "/tmp/avg_usage.csv"),
		ExtractInterval:    getEnvDuration("EXTRACT_INTERVAL", 8*time.Hour),
		PipelineInterval:   getEnvDuration("PIPELINE_INTERVAL", 24*time.Hour),
		ExtractWindowDays:  getEnvInt("EXTRACT_WINDOW_DAYS", 30),
		SchedulerRetryWait: getEnvDuration("SCHEDULER_RETRY_WAIT", 5*time.Minute),
	}, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err == nil {
			return d
		}
	}
	return fallback
}
