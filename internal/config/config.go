package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	API     APIConfig
	Site    SiteConfig
	Redis   RedisConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Port int
}

type APIConfig struct {
	BaseURL string
	Key     string
}

// GraphqlURL is the fully qualified upstream endpoint, with the API key
// appended as a query parameter when configured.
func (a APIConfig) GraphqlURL() string {
	if a.Key != "" {
		return fmt.Sprintf("%s/graphql?api_key=%s", a.BaseURL, a.Key)
	}
	return a.BaseURL + "/graphql"
}

type SiteConfig struct {
	WebsiteURL string
	ImagesURL  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvInt("PORT", 3001),
		},
		API: APIConfig{
			BaseURL: getEnv("API_URL", "https://api.opencollective.com"),
			Key:     getEnv("API_KEY", ""),
		},
		Site: SiteConfig{
			WebsiteURL: getEnv("WEBSITE_URL", "https://opencollective.com"),
			ImagesURL:  getEnv("IMAGES_URL", "https://images.opencollective.com"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API_URL is required")
	}
	if c.Site.WebsiteURL == "" {
		return fmt.Errorf("WEBSITE_URL is required")
	}
	if c.Site.ImagesURL == "" {
		return fmt.Errorf("IMAGES_URL is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be a valid TCP port")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
