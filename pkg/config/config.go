package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Datasets  DatasetsConfig
	Resolver  ResolverConfig
	Anthropic AnthropicConfig
	Redis     RedisConfig
	OTEL      OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

// DatasetsConfig holds the location of the five quality datasets
type DatasetsConfig struct {
	Dir                        string
	PatientExperienceFile      string
	InfectionsFile             string
	ReadmissionsFile           string
	MortalityComplicationsFile string
	TimelyCareFile             string
}

// ResolverConfig holds facility resolution tuning knobs
type ResolverConfig struct {
	ExactishCutoff  float64
	SuggestCutoff   float64
	MaxSuggestions  int
	ReadmissionTopN int
}

// AnthropicConfig holds Anthropic Messages API configuration
type AnthropicConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	MaxTokens   int
	Temperature float64
	CacheTTL    int // seconds; 0 disables summary caching
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			AllowedOrigins: getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		},
		Datasets: DatasetsConfig{
			Dir:                        getEnv("DATASETS_DIR", "Dataset"),
			PatientExperienceFile:      getEnv("DATASET_PATIENT_EXPERIENCE", "Patient_experience.xlsx"),
			InfectionsFile:             getEnv("DATASET_INFECTIONS", "Infections.xlsx"),
			ReadmissionsFile:           getEnv("DATASET_READMISSIONS", "Readmission.xlsx"),
			MortalityComplicationsFile: getEnv("DATASET_MORTALITY_COMPLICATIONS", "Complication_and_Death.xlsx"),
			TimelyCareFile:             getEnv("DATASET_TIMELY_CARE", "Timely care with join.xlsx"),
		},
		Resolver: ResolverConfig{
			ExactishCutoff:  getEnvAsFloat("RESOLVER_EXACTISH_CUTOFF", 0.88),
			SuggestCutoff:   getEnvAsFloat("RESOLVER_SUGGEST_CUTOFF", 0.6),
			MaxSuggestions:  getEnvAsInt("RESOLVER_MAX_SUGGESTIONS", 5),
			ReadmissionTopN: getEnvAsInt("READMISSION_TOP_N", 3),
		},
		Anthropic: AnthropicConfig{
			APIKey:      getEnv("ANTHROPIC_API_KEY", ""),
			Model:       getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),
			BaseURL:     getEnv("ANTHROPIC_BASE_URL", ""),
			MaxTokens:   getEnvAsInt("ANTHROPIC_MAX_TOKENS", 900),
			Temperature: getEnvAsFloat("ANTHROPIC_TEMPERATURE", 0.3),
			CacheTTL:    getEnvAsInt("SUMMARY_CACHE_TTL", 0),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "facility-quality-insights"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}, nil
}

// Path returns the full path of a dataset file inside the datasets directory
func (c *DatasetsConfig) Path(file string) string {
	return filepath.Join(c.Dir, file)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		var out []string
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
