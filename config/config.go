package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI = "openai"
	ProviderGenAI  = "genai"
)

type Config struct {
	Server       ServerConfig
	Redis        RedisConfig
	LLM          LLMConfig
	Autocomplete AutocompleteConfig
	App          AppConfig
}

type ServerConfig struct {
	Port            string
	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type LLMConfig struct {
	Provider      string
	OpenAIBaseURL string
	OpenAIAPIKey  string
	GenAIAPIKey   string
	// CompletionModel serves autocomplete, ScriptModel serves VSL generation.
	CompletionModel string
	ScriptModel     string
}

type AutocompleteConfig struct {
	RateLimitPerSecond float64
	RateLimitBurst     int
	CacheTTL           time.Duration
	MaxPromptChars     int
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	provider := strings.ToLower(getEnv("LLM_PROVIDER", ProviderOpenAI))
	completionModel, scriptModel := defaultModels(provider)

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			CORSOrigins:     getEnvAsList("CORS_ORIGINS", []string{"*"}),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		LLM: LLMConfig{
			Provider:        provider,
			OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
			GenAIAPIKey:     getEnv("GENAI_API_KEY", ""),
			CompletionModel: getEnv("COMPLETION_MODEL", completionModel),
			ScriptModel:     getEnv("SCRIPT_MODEL", scriptModel),
		},
		Autocomplete: AutocompleteConfig{
			RateLimitPerSecond: getEnvAsFloat("AUTOCOMPLETE_RATE_LIMIT", 5),
			RateLimitBurst:     getEnvAsInt("AUTOCOMPLETE_RATE_BURST", 10),
			CacheTTL:           getEnvAsDuration("AUTOCOMPLETE_CACHE_TTL", 10*time.Minute),
			MaxPromptChars:     getEnvAsInt("AUTOCOMPLETE_MAX_PROMPT_CHARS", 500),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.LLM.Provider {
	case ProviderOpenAI:
		if c.LLM.OpenAIBaseURL == "" {
			return fmt.Errorf("OPENAI_BASE_URL is required for provider %q", c.LLM.Provider)
		}
	case ProviderGenAI:
		if c.LLM.GenAIAPIKey == "" {
			return fmt.Errorf("GENAI_API_KEY is required for provider %q", c.LLM.Provider)
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLM.Provider)
	}

	if c.Autocomplete.MaxPromptChars <= 0 {
		return fmt.Errorf("AUTOCOMPLETE_MAX_PROMPT_CHARS must be positive")
	}

	return nil
}

// defaultModels returns the completion and script models for provider.
func defaultModels(provider string) (string, string) {
	if provider == ProviderGenAI {
		return "gemini-2.0-flash", "gemini-2.5-pro"
	}
	return "gpt-4o-mini", "gpt-4o"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
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
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvAsList splits a comma-separated value, dropping empty entries.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
