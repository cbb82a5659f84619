package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"housing-trainer/models"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DataPath           string
	ModelPath          string
	FeaturesOutputPath string

	TrainSteps  int
	ExpectedW   float32
	ExpectedB   float32
	Tolerance   float64
	TargetScale float32
	ShuffleSeed int64
	RunModel    bool

	LogLevel string

	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	MaxRetries       int
	HistoryLimit     int

	// parseErrs lists environment values that could not be parsed.
	parseErrs []string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() *Config {
	env := &envReader{}
	cfg := &Config{
		DataPath:           getEnv("HOUSING_CSV_PATH", "data/california-housing-train.csv"),
		ModelPath:          getEnv("MODEL_PATH", "data/models/model_ex1.pb"),
		FeaturesOutputPath: getEnv("FEATURES_OUTPUT_PATH", ""),

		TrainSteps:  env.intVal("TRAIN_STEPS", 201),
		ExpectedW:   float32(env.floatVal("EXPECTED_W", 0.1)),
		ExpectedB:   float32(env.floatVal("EXPECTED_B", 0.3)),
		Tolerance:   env.floatVal("TOLERANCE", 1e-3),
		TargetScale: float32(env.floatVal("TARGET_SCALE", 1000)),
		ShuffleSeed: int64(env.intVal("SHUFFLE_SEED", 0)),
		RunModel:    env.boolVal("RUN_MODEL", true),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		PostgresEnabled:  env.boolVal("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "housing"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "housing123"),
		PostgresDB:       getEnv("POSTGRES_DB", "housing_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		MaxRetries:       env.intVal("MAX_RETRIES", 3),
		HistoryLimit:     env.intVal("HISTORY_LIMIT", 5),
	}
	cfg.parseErrs = env.errs
	return cfg
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	if len(c.parseErrs) > 0 {
		return models.NewError(models.KindConfig, "config", "invalid values: %s", strings.Join(c.parseErrs, "; "))
	}
	if c.DataPath == "" {
		return models.NewError(models.KindConfig, "config", "HOUSING_CSV_PATH must not be empty")
	}
	if c.RunModel && c.ModelPath == "" {
		return models.NewError(models.KindConfig, "config", "MODEL_PATH must not be empty when RUN_MODEL is set")
	}
	if c.TrainSteps < 0 {
		return models.NewError(models.KindConfig, "config", "TRAIN_STEPS must be >= 0, got %d", c.TrainSteps)
	}
	if c.Tolerance <= 0 {
		return models.NewError(models.KindConfig, "config", "TOLERANCE must be > 0, got %g", c.Tolerance)
	}
	if c.TargetScale == 0 {
		return models.NewError(models.KindConfig, "config", "TARGET_SCALE must not be 0")
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// envReader parses typed environment values and remembers the ones it
// had to reject, so Validate can report them.
type envReader struct {
	errs []string
}

func (e *envReader) intVal(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err == nil {
			return n
		}
		e.reject(key, val)
	}
	return fallback
}

func (e *envReader) floatVal(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err == nil {
			return f
		}
		e.reject(key, val)
	}
	return fallback
}

func (e *envReader) boolVal(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err == nil {
			return b
		}
		e.reject(key, val)
	}
	return fallback
}

func (e *envReader) reject(key, val string) {
	e.errs = append(e.errs, fmt.Sprintf("%s=%q", key, val))
}
