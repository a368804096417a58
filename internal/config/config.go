package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Dataset sources
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	Dataset    DatasetConfig
	Model      ModelConfig
	PostgreSQL PostgreSQLConfig
	Server     ServerConfig
	Logging    LoggingConfig
}

// DatasetConfig describes where training records come from and which
// submarket they are filtered to
type DatasetConfig struct {
	Source string // csv or postgres
	Path   string // CSV file, read once at startup
	Table  string // PostgreSQL table when Source is postgres
	Region string // case-insensitive substring matched against the state column
}

// ModelConfig holds the seed for synthetic borrower draws and the
// gradient boosting hyperparameters
type ModelConfig struct {
	Seed    int64
	SeedSet bool // false means a fresh seed is derived at every start

	Estimators      int
	LearningRate    float64
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
	Subsample       float64
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string // full connection string, takes precedence over the parts below
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
	TemplateDir    string // used only by the non-embedded build
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	seedStr := getEnv("MODEL_SEED", "")
	if seedStr != "" {
		if _, err := strconv.ParseInt(seedStr, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid MODEL_SEED %q: %w", seedStr, err)
		}
	}

	cfg := &Config{
		Dataset: DatasetConfig{
			Source: strings.ToLower(getEnv("DATASET_SOURCE", SourceCSV)),
			Path:   getEnv("DATASET_PATH", "malaysia_property_data.csv"),
			Table:  getEnv("DATASET_TABLE", "property_transactions"),
			Region: getEnv("DATASET_REGION", "Kuala Lumpur"),
		},
		Model: ModelConfig{
			Seed:            getEnvAsInt64("MODEL_SEED", 0),
			SeedSet:         seedStr != "",
			Estimators:      getEnvAsInt("GBR_N_ESTIMATORS", 100),
			LearningRate:    getEnvAsFloat("GBR_LEARNING_RATE", 0.1),
			MaxDepth:        getEnvAsInt("GBR_MAX_DEPTH", 3),
			MinSamplesSplit: getEnvAsInt("GBR_MIN_SAMPLES_SPLIT", 2),
			MinSamplesLeaf:  getEnvAsInt("GBR_MIN_SAMPLES_LEAF", 1),
			Subsample:       getEnvAsFloat("GBR_SUBSAMPLE", 1.0),
		},
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "property_data"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 5),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 2),
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			TemplateDir:    getEnv("TEMPLATE_DIR", "./cmd/server/web"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise only fail deep inside startup
func (c *Config) Validate() error {
	switch c.Dataset.Source {
	case SourceCSV:
		if c.Dataset.Path == "" {
			return fmt.Errorf("DATASET_PATH is required for the csv source")
		}
	case SourcePostgres:
		if c.Dataset.Table == "" {
			return fmt.Errorf("DATASET_TABLE is required for the postgres source")
		}
	default:
		return fmt.Errorf("unknown DATASET_SOURCE %q (want %s or %s)", c.Dataset.Source, SourceCSV, SourcePostgres)
	}

	if strings.TrimSpace(c.Dataset.Region) == "" {
		return fmt.Errorf("DATASET_REGION must not be empty")
	}

	m := c.Model
	if m.Estimators < 1 {
		return fmt.Errorf("GBR_N_ESTIMATORS must be >= 1, got %d", m.Estimators)
	}
	if m.LearningRate <= 0 {
		return fmt.Errorf("GBR_LEARNING_RATE must be > 0, got %g", m.LearningRate)
	}
	if m.MaxDepth < 1 {
		return fmt.Errorf("GBR_MAX_DEPTH must be >= 1, got %d", m.MaxDepth)
	}
	if m.MinSamplesSplit < 2 {
		return fmt.Errorf("GBR_MIN_SAMPLES_SPLIT must be >= 2, got %d", m.MinSamplesSplit)
	}
	if m.MinSamplesLeaf < 1 {
		return fmt.Errorf("GBR_MIN_SAMPLES_LEAF must be >= 1, got %d", m.MinSamplesLeaf)
	}
	if m.Subsample <= 0 || m.Subsample > 1 {
		return fmt.Errorf("GBR_SUBSAMPLE must be in (0, 1], got %g", m.Subsample)
	}
	return nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}
