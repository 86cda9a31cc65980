package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Qdrant   QdrantConfig
	Gemini   GeminiConfig
	Upload   UploadConfig
	Analysis AnalysisConfig
}

type ServerConfig struct {
	Port         string `validate:"required,numeric"`
	Env          string `validate:"required,oneof=development production test"`
	AllowOrigins string `validate:"required"`
}

type DatabaseConfig struct {
	Enabled       bool
	Host          string `validate:"required_if=Enabled true"`
	Port          string `validate:"required_if=Enabled true"`
	User          string
	Password      string
	DBName        string `validate:"required_if=Enabled true"`
	Retention     time.Duration
	SweepInterval time.Duration `validate:"gt=0"`
}

type QdrantConfig struct {
	Enabled    bool
	URL        string `validate:"required_if=Enabled true"`
	APIKey     string
	Collection string `validate:"required_if=Enabled true"`
	TopK       int    `validate:"gte=1,lte=20"`
}

type GeminiConfig struct {
	APIKey          string        `validate:"required"`
	Model           string        `validate:"required"`
	EmbedModel      string        `validate:"required"`
	Timeout         time.Duration `validate:"gt=0"`
	MaxAttempts     int           `validate:"gte=1,lte=5"`
	RetryDelay      time.Duration
	Temperature     float32 `validate:"gte=0,lte=2"`
	SafetyThreshold string  `validate:"oneof=BLOCK_NONE OFF BLOCK_ONLY_HIGH BLOCK_MEDIUM_AND_ABOVE BLOCK_LOW_AND_ABOVE"`
}

type UploadConfig struct {
	FieldName   string `validate:"required"`
	MaxFileSize int64  `validate:"gt=0"`
}

type AnalysisConfig struct {
	StrictSchema bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "3000"),
			Env:          getEnv("ENV", "development"),
			AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Enabled:       getEnvAsBool("DATABASE_ENABLED", false),
			Host:          getEnv("DB_HOST", "localhost"),
			Port:          getEnv("DB_PORT", "5432"),
			User:          getEnv("DB_USER", "postgres"),
			Password:      getEnv("DB_PASSWORD", "postgres"),
			DBName:        getEnv("DB_NAME", "resume_roaster"),
			Retention:     getEnvAsDuration("DATABASE_RETENTION", "720h"),
			SweepInterval: getEnvAsDuration("DATABASE_SWEEP_INTERVAL", "1h"),
		},
		Qdrant: QdrantConfig{
			Enabled:    getEnvAsBool("QDRANT_ENABLED", false),
			URL:        getEnv("QDRANT_URL", "http://localhost:6334"),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "resume_guidance"),
			TopK:       getEnvAsInt("QDRANT_TOP_K", 3),
		},
		Gemini: GeminiConfig{
			APIKey:          getEnv("GEMINI_API_KEY", ""),
			Model:           getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			EmbedModel:      getEnv("GEMINI_EMBED_MODEL", "text-embedding-004"),
			Timeout:         getEnvAsDuration("GEMINI_TIMEOUT", "60s"),
			MaxAttempts:     getEnvAsInt("GEMINI_MAX_ATTEMPTS", 1),
			RetryDelay:      getEnvAsDuration("GEMINI_RETRY_DELAY", "500ms"),
			Temperature:     getEnvAsFloat32("GEMINI_TEMPERATURE", 0.7),
			SafetyThreshold: strings.ToUpper(getEnv("GEMINI_SAFETY_THRESHOLD", "BLOCK_NONE")),
		},
		Upload: UploadConfig{
			FieldName:   getEnv("UPLOAD_FIELD_NAME", "resume"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10*1024*1024),
		},
		Analysis: AnalysisConfig{
			StrictSchema: getEnvAsBool("ANALYSIS_STRICT_SCHEMA", false),
		},
	}
}

// Validate checks the loaded values against the struct tags above.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
