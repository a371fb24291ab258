package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// LLM provider names accepted in LLM_PROVIDER.
const (
	ProviderGoogleAI  = "googleai"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

// Config holds all configuration values.
type Config struct {
	// PostgreSQL connection
	DBUser    string
	DBPass    string
	DBHost    string
	DBPort    string
	DBName    string
	DBSSLMode string

	// LLM
	LLMProvider     string
	LLMModel        string
	LLMTemperature  float64
	GeminiAPIKey    string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	OllamaHost      string

	// Agent
	MaxTurns int

	// Server
	ServerPort int

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		DBUser:    getEnv("DB_USER", "postgres"),
		DBPass:    getEnv("DB_PASS", ""),
		DBHost:    getEnv("DB_HOST", "localhost"),
		DBPort:    getEnv("DB_PORT", "5432"),
		DBName:    getEnv("DB_NAME", "skillmorph"),
		DBSSLMode: getEnv("DB_SSLMODE", "prefer"),

		LLMProvider:     getEnv("LLM_PROVIDER", ProviderGoogleAI),
		LLMModel:        getEnv("LLM_MODEL", "gemini-2.5-flash"),
		LLMTemperature:  getEnvFloat("LLM_TEMPERATURE", 0.2),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		OllamaHost:      getEnv("OLLAMA_HOST", "http://localhost:11434"),

		MaxTurns: getEnvInt("AGENT_MAX_TURNS", 8),

		ServerPort: getEnvInt("SKILLMORPH_SERVER_PORT", 8080),

		LogFile:  getEnv("SKILLMORPH_LOG_FILE", "/tmp/skillmorph-assistant.log"),
		LogLevel: parseLogLevel(getEnv("SKILLMORPH_LOG_LEVEL", "INFO")),
	}
}

// DatabaseURL renders the connection string consumed by the pgx pool.
func (c Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
