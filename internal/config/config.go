package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Port        string
	AppEnv      string
	PostgresURL string
	FrontendURL string

	JWTSecret string
	TokenTTL  time.Duration

	GenAIProvider    string
	GeminiAPIKey     string
	GeminiModel      string
	OpenAIAPIKey     string
	OpenAIModel      string
	OpenAIImageModel string

	FlightProvider      string
	AmadeusClientID     string
	AmadeusClientSecret string
	AmadeusEnv          string
	ScraperBaseURL      string
	ScraperAPIKey       string

	GCSBucket          string
	GCSCredentialsFile string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string
	SMTPUseSSL   bool

	ImageLimitPerHour    int
	ItineraryLimitPerDay int
	ThrottlePerMinute    int
	ThrottleBurst        int
	PerCityConcurrency   int
	ProgressStepInterval time.Duration
	AirportCodeCacheTTL  time.Duration
}

// Load reads .env when present, then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		zap.L().Warn("could not read .env file", zap.Error(err))
	}

	return &Config{
		Port:        getEnvWithDefault("PORT", "8080"),
		AppEnv:      getEnvWithDefault("APP_ENV", "production"),
		PostgresURL: os.Getenv("POSTGRES_URL"),
		FrontendURL: os.Getenv("FRONTEND_URL"),

		JWTSecret: getEnvWithDefault("JWT_SECRET", "change-me"),
		TokenTTL:  getDurationWithDefault("JWT_TTL", 60*time.Minute),

		GenAIProvider:    strings.ToLower(getEnvWithDefault("GENAI_PROVIDER", "gemini")),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      getEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:      getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIImageModel: getEnvWithDefault("OPENAI_IMAGE_MODEL", "dall-e-3"),

		FlightProvider:      strings.ToLower(getEnvWithDefault("FLIGHT_PROVIDER", "amadeus")),
		AmadeusClientID:     os.Getenv("AMADEUS_CLIENT_ID"),
		AmadeusClientSecret: os.Getenv("AMADEUS_CLIENT_SECRET"),
		AmadeusEnv:          getEnvWithDefault("AMADEUS_ENV", "test"),
		ScraperBaseURL:      os.Getenv("SCRAPER_BASE_URL"),
		ScraperAPIKey:       os.Getenv("SCRAPER_API_KEY"),

		GCSBucket:          os.Getenv("GCS_BUCKET"),
		GCSCredentialsFile: os.Getenv("GCS_CREDENTIALS_FILE"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getIntWithDefault("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     getEnvWithDefault("SMTP_FROM", "no-reply@voyago.app"),
		SMTPFromName: getEnvWithDefault("SMTP_FROM_NAME", "Voyago"),
		SMTPUseSSL:   getEnvWithDefault("SMTP_USE_SSL", "false") == "true",

		ImageLimitPerHour:    getIntWithDefault("IMAGE_LIMIT_PER_HOUR", 10),
		ItineraryLimitPerDay: getIntWithDefault("ITINERARY_LIMIT_PER_DAY", 5),
		ThrottlePerMinute:    getIntWithDefault("THROTTLE_PER_MINUTE", 30),
		ThrottleBurst:        getIntWithDefault("THROTTLE_BURST", 5),
		PerCityConcurrency:   getIntWithDefault("PER_CITY_CONCURRENCY", 4),
		ProgressStepInterval: getDurationWithDefault("PROGRESS_STEP_INTERVAL", 1500*time.Millisecond),
		AirportCodeCacheTTL:  getDurationWithDefault("AIRPORT_CODE_CACHE_TTL", 24*time.Hour),
	}
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntWithDefault(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}
