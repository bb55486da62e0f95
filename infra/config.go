package infra

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	ServerPort         string
	Environment        string
	LogLevel           zerolog.Level
	PostosApiUrl       string
	OsrmUrl            string
	OsrmGeometry       string
	HTTPTimeout        time.Duration
	SignatureToken     string
	SessionTTL         time.Duration
	MaxPages           int
	SessionCacheSize   int
	RedisUrl           string
	GoogleMapsKey      string
	AwsAccessKeyID     string
	AwsSecretAccessKey string
	AwsRegion          string
	AwsBucketName      string
}

// NewConfig reads the environment. A .env file is loaded first when ENVIRONMENT is not already set.
func NewConfig() Config {
	if os.Getenv("ENVIRONMENT") == "" {
		if err := godotenv.Load(".env"); err != nil {
			log.Warn().Msg("arquivo .env não encontrado, usando apenas variáveis de ambiente")
		}
	}

	level, err := zerolog.ParseLevel(getEnvOrDefault("LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}

	return Config{
		ServerPort:         getEnvOrDefault("SERVER_PORT", "8080"),
		Environment:        getEnvOrDefault("ENVIRONMENT", "local"),
		LogLevel:           level,
		PostosApiUrl:       getEnvOrDefault("POSTOS_API_URL", "http://localhost:5000"),
		OsrmUrl:            getEnvOrDefault("OSRM_URL", "https://router.project-osrm.org"),
		OsrmGeometry:       getEnvOrDefault("OSRM_GEOMETRY", "geojson"),
		HTTPTimeout:        getDurationEnvOrDefault("HTTP_TIMEOUT", 10*time.Second),
		SignatureToken:     os.Getenv("SIGNATURE_STRING"),
		SessionTTL:         getDurationEnvOrDefault("SESSION_TTL", 8*time.Hour),
		MaxPages:           getIntEnvOrDefault("MAX_PAGES", 1024),
		SessionCacheSize:   getIntEnvOrDefault("SESSION_CACHE_SIZE", 256),
		RedisUrl:           os.Getenv("REDIS_URL"),
		GoogleMapsKey:      os.Getenv("GOOGLE_MAPS_KEY"),
		AwsAccessKeyID:     os.Getenv("AWS_ACCESS_KEY"),
		AwsSecretAccessKey: os.Getenv("AWS_SECRET_KEY"),
		AwsRegion:          os.Getenv("AWS_REGION"),
		AwsBucketName:      os.Getenv("AWS_BUCKET_NAME"),
	}
}

// InitializeLogging sets up the global zerolog logger.
func (c Config) InitializeLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(c.LogLevel)

	if c.Environment == "local" || c.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getIntEnvOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
