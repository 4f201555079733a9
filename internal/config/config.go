package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig
	Mongo       MongoConfig
	Credentials CredentialsConfig
	Extraction  ExtractionConfig
	API         APIConfig
	CORS        CORSConfig
}

type ServerConfig struct {
	Port string
	Host string
}

// MongoConfig drives the optional extraction-snapshot log. An empty URI
// disables snapshots entirely.
type MongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// CredentialsConfig holds provider API keys. All of them are optional: a
// missing key marks the corresponding adapters as not configured instead of
// failing startup. None of them has a baked-in default.
type CredentialsConfig struct {
	YouTubeAPIKey       string
	RapidAPIKey         string
	FacebookAccessToken string
}

// Available lists the provider credential names that are actually set.
func (c CredentialsConfig) Available() []string {
	available := []string{}
	if c.YouTubeAPIKey != "" {
		available = append(available, "YOUTUBE_API_KEY")
	}
	if c.RapidAPIKey != "" {
		available = append(available, "RAPIDAPI_KEY")
	}
	if c.FacebookAccessToken != "" {
		available = append(available, "FACEBOOK_ACCESS_TOKEN")
	}
	return available
}

type ExtractionConfig struct {
	AdapterTimeout         time.Duration
	HashtagLimit           int
	InvidiousInstances     []string
	RapidAPITikTokHosts    []string
	RapidAPIInstagramHosts []string
}

type APIConfig struct {
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

type CORSConfig struct {
	Enabled          bool
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using environment variables")
	}

	cfg := &Config{}

	// Server configuration
	cfg.Server.Port = getEnv("SERVER_PORT", "8080")
	cfg.Server.Host = getEnv("SERVER_HOST", "0.0.0.0")

	// MongoDB configuration (optional snapshot store)
	cfg.Mongo.URI = getEnv("MONGO_URI", "")
	cfg.Mongo.Database = getEnv("MONGO_DATABASE", "clipsight")
	mongoTimeout, err := time.ParseDuration(getEnv("MONGO_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid MONGO_TIMEOUT: %w", err)
	}
	cfg.Mongo.Timeout = mongoTimeout

	// Provider credentials, all optional and defaultless
	cfg.Credentials.YouTubeAPIKey = getEnv("YOUTUBE_API_KEY", "")
	cfg.Credentials.RapidAPIKey = getEnv("RAPIDAPI_KEY", "")
	cfg.Credentials.FacebookAccessToken = getEnv("FACEBOOK_ACCESS_TOKEN", "")

	// Extraction configuration
	adapterTimeout, err := time.ParseDuration(getEnv("EXTRACTION_ADAPTER_TIMEOUT", "12s"))
	if err != nil {
		return nil, fmt.Errorf("invalid EXTRACTION_ADAPTER_TIMEOUT: %w", err)
	}
	cfg.Extraction.AdapterTimeout = adapterTimeout
	cfg.Extraction.HashtagLimit = getEnvInt("EXTRACTION_HASHTAG_LIMIT", 10)
	cfg.Extraction.InvidiousInstances = getEnvStringSlice("INVIDIOUS_INSTANCES", []string{
		"https://inv.nadeko.net",
		"https://invidious.nerdvpn.de",
		"https://yewtu.be",
	})
	cfg.Extraction.RapidAPITikTokHosts = getEnvStringSlice("RAPIDAPI_TIKTOK_HOSTS", []string{
		"tiktok-scraper7.p.rapidapi.com",
		"tiktok-video-no-watermark2.p.rapidapi.com",
		"tiktok-api23.p.rapidapi.com",
	})
	cfg.Extraction.RapidAPIInstagramHosts = getEnvStringSlice("RAPIDAPI_INSTAGRAM_HOSTS", []string{
		"instagram-scraper-api2.p.rapidapi.com",
		"instagram-looter2.p.rapidapi.com",
	})

	// API configuration
	cfg.API.RateLimitRequests = getEnvInt("RATE_LIMIT_REQUESTS", 100)
	rateLimitWindow, err := time.ParseDuration(getEnv("RATE_LIMIT_WINDOW", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW: %w", err)
	}
	cfg.API.RateLimitWindow = rateLimitWindow

	// CORS configuration
	cfg.CORS = loadCORSConfig()

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(strings.TrimSpace(value), ",")
	}
	return defaultValue
}

func loadCORSConfig() CORSConfig {
	return CORSConfig{
		Enabled: getEnvBool("CORS_ENABLED", true),
		AllowedOrigins: getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:3000",
		}),
		AllowedMethods: getEnvStringSlice("CORS_ALLOWED_METHODS", []string{
			"GET", "POST", "OPTIONS",
		}),
		AllowedHeaders: getEnvStringSlice("CORS_ALLOWED_HEADERS", []string{
			"Origin", "Content-Type", "Accept", "X-Correlation-ID",
		}),
		AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", true),
		MaxAge:           getEnvInt("CORS_MAX_AGE", 3600),
	}
}
