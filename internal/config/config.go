package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                string
	WebDir              string
	DataDir             string
	DataBaseURL         string
	DatasetsFile        string
	LogLevel            string
	SessionCapacity     int
	ImportWorkerCount   int
	ImportQueueSize     int
	FetchTimeoutSeconds int
	ShuffleSeed         int64
	Datasets            Datasets
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid. The dataset
// registry comes from DATASETS_FILE when that file exists.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	cfg := Config{
		Addr:                envOr("ADDR", ":8000"),
		WebDir:              envOr("WEB_DIR", "web"),
		DataDir:             envOr("DATA_DIR", "web/data"),
		DataBaseURL:         envOr("DATA_BASE_URL", ""),
		DatasetsFile:        envOr("DATASETS_FILE", "datasets.toml"),
		LogLevel:            envOr("LOG_LEVEL", "INFO"),
		SessionCapacity:     envIntOr("SESSION_CAPACITY", 256),
		ImportWorkerCount:   envIntOr("IMPORT_WORKER_COUNT", 2),
		ImportQueueSize:     envIntOr("IMPORT_QUEUE_SIZE", 16),
		FetchTimeoutSeconds: envIntOr("FETCH_TIMEOUT_SECONDS", 10),
		ShuffleSeed:         envInt64Or("SHUFFLE_SEED", 0),
	}

	datasets, err := LoadDatasets(cfg.DatasetsFile)
	if err != nil {
		log.Printf("invalid dataset registry %s: %v, using defaults", cfg.DatasetsFile, err)
		datasets = DefaultDatasets()
	}
	cfg.Datasets = datasets
	return cfg
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.WebDir == "" {
		problems = append(problems, "WEB_DIR cannot be empty")
	}
	if c.DataDir == "" && c.DataBaseURL == "" {
		problems = append(problems, "DATA_DIR cannot be empty when DATA_BASE_URL is unset")
	}
	if c.DataBaseURL != "" && !strings.HasPrefix(c.DataBaseURL, "http://") && !strings.HasPrefix(c.DataBaseURL, "https://") {
		problems = append(problems, fmt.Sprintf("DATA_BASE_URL must be an http(s) URL, got %q", c.DataBaseURL))
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", c.LogLevel))
	}
	if c.SessionCapacity <= 0 {
		problems = append(problems, "SESSION_CAPACITY must be positive")
	}
	if c.ImportWorkerCount <= 0 {
		problems = append(problems, "IMPORT_WORKER_COUNT must be positive")
	}
	if c.ImportQueueSize <= 0 {
		problems = append(problems, "IMPORT_QUEUE_SIZE must be positive")
	}
	if c.FetchTimeoutSeconds <= 0 {
		problems = append(problems, "FETCH_TIMEOUT_SECONDS must be positive")
	}
	if err := validateDatasets(c.Datasets); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envInt64Or(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
