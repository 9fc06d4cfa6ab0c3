package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents runtime configuration for the service. Everything is
// sourced from the environment once at startup and treated as immutable.
type Config struct {
	ServerAddress string

	// Azure OpenAI completion service.
	AzureOpenAIEndpoint string
	AzureOpenAIAPIKey   string
	DeploymentName      string
	CompletionTimeout   time.Duration

	// Azure AI Search retrieval data source. When SearchAPIKey is empty the
	// data source authenticates with the system-assigned managed identity.
	SearchEndpoint string
	SearchIndex    string
	SearchAPIKey   string

	// Google search services.
	PlacesAPIKey      string
	WebSearchAPIKey   string
	WebSearchEngineID string

	// Fixed user table: either APP_USERS ("alice:pw1,bob:pw2") or the single
	// APP_USERNAME/APP_PASSWORD pair the original deployment used.
	Users map[string]string

	SessionTTL time.Duration

	Redis RedisConfig

	RateLimit  int
	RateWindow time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	DB       int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		ServerAddress:       getEnv("SERVER_ADDRESS", ":8000"),
		AzureOpenAIEndpoint: getEnv("AZURE_OPENAI_ENDPOINT", "https://mak.openai.azure.com/"),
		AzureOpenAIAPIKey:   getEnv("AZURE_OPENAI_API_KEY", ""),
		DeploymentName:      getEnv("DEPLOYMENT_NAME", "gpt-4.1-mini"),
		CompletionTimeout:   getEnvAsDuration("AZURE_OPENAI_TIMEOUT", 120*time.Second),
		SearchEndpoint:      getEnv("AZURE_AI_SEARCH_ENDPOINT", "https://bmsearchnotfree.search.windows.net"),
		SearchIndex:         getEnv("AZURE_AI_SEARCH_INDEX", "japantripindex"),
		SearchAPIKey:        getEnv("AZURE_AI_SEARCH_KEY", ""),
		PlacesAPIKey:        getEnv("GOOGLE_PLACES_API_KEY", ""),
		WebSearchAPIKey:     getEnv("GOOGLE_SEARCH_API_KEY", ""),
		WebSearchEngineID:   getEnv("GOOGLE_SEARCH_ENGINE_ID", ""),
		Users:               loadUsers(),
		SessionTTL:          time.Duration(getEnvAsInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "127.0.0.1"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Username: getEnv("REDIS_USERNAME", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		RateLimit:  getEnvAsInt("RATE_LIMIT", 20),
		RateWindow: getEnvAsDuration("RATE_WINDOW", time.Minute),
	}

	if cfg.AzureOpenAIAPIKey == "" {
		return nil, errors.New("AZURE_OPENAI_API_KEY environment variable is required")
	}
	if len(cfg.Users) == 0 {
		return nil, errors.New("no users configured")
	}
	return cfg, nil
}

func loadUsers() map[string]string {
	users := make(map[string]string)
	if raw := getEnv("APP_USERS", ""); raw != "" {
		for _, entry := range strings.Split(raw, ",") {
			name, pass, ok := strings.Cut(strings.TrimSpace(entry), ":")
			if !ok || name == "" || pass == "" {
				continue
			}
			users[name] = pass
		}
		return users
	}
	username := getEnv("APP_USERNAME", "family")
	password := getEnv("APP_PASSWORD", "family2025")
	users[username] = password
	return users
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := getEnv(key, "")
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	val := getEnv(key, "")
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return d
}
