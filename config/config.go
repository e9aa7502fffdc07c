package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"foodcart-service/pkg/database"

	"go.uber.org/zap"
)

type Config struct {
	Env         string
	Port        string
	CORSOrigins []string
	DB          DB
	Geocoder    Geocoder
	Matching    Matching
	Redis       Redis
	Kafka       Kafka

	// StatusPromoteInterval controls the background not_processed -> cooking
	// promoter. Zero disables it.
	StatusPromoteInterval time.Duration
}

type DB struct {
	database.Config
}

type Geocoder struct {
	URL         string
	APIKey      string
	Timeout     time.Duration
	Concurrency int
}

type Matching struct {
	MaxRadiusMeters float64
}

type Redis struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type Kafka struct {
	Brokers     []string
	OrdersTopic string
}

func (c *Config) IsDev() bool { return c.Env == "development" }

func Load(log *zap.Logger) *Config {
	env := getEnvDefault("ENV", "production")
	return &Config{
		Env:         env,
		Port:        getEnvDefault("APP_PORT", ":8080"),
		CORSOrigins: splitAndTrim(getEnvDefault("CORS_ALLOWED_ORIGINS", "*")),
		DB: DB{
			Config: database.Config{
				Host:     getEnv("DB_HOST", log),
				Port:     getEnv("DB_PORT", log),
				User:     getEnv("DB_USER", log),
				Password: getEnv("DB_PASSWORD", log),
				Name:     getEnv("DB_NAME", log),
				SSLMode:  getEnv("DB_SSLMODE", log),
				Debug:    env == "development",
			},
		},
		Geocoder: Geocoder{
			URL:         getEnvDefault("GEOCODER_URL", "https://geocode-maps.yandex.ru/1.x"),
			APIKey:      getEnv("GEOCODER_API_KEY", log),
			Timeout:     durationDefault(getEnvDefault("GEOCODER_TIMEOUT", ""), 10*time.Second),
			Concurrency: atoiDefault(getEnvDefault("GEOCODE_CONCURRENCY", ""), 4),
		},
		Matching: Matching{
			MaxRadiusMeters: floatDefault(getEnvDefault("MAX_RADIUS_METERS", ""), 50000),
		},
		Redis: Redis{
			Enabled:  getEnvDefault("REDIS_ENABLED", "false") == "true",
			Addr:     getEnvDefault("REDIS_ADDR", "localhost:6379"),
			Password: getEnvDefault("REDIS_PASSWORD", ""),
			DB:       atoiDefault(getEnvDefault("REDIS_DB", ""), 0),
			TTL:      durationDefault(getEnvDefault("GEOCODE_CACHE_TTL", ""), 24*time.Hour),
		},
		Kafka: Kafka{
			Brokers:     splitAndTrim(os.Getenv("KAFKA_BROKERS")),
			OrdersTopic: getEnvDefault("KAFKA_TOPIC_ORDERS", "foodcart.orders"),
		},
		StatusPromoteInterval: durationDefault(getEnvDefault("STATUS_PROMOTE_INTERVAL", ""), time.Minute),
	}
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("Обязательная переменная окружения не установлена", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func getEnvDefault(key, def string) string {
	if val, exists := os.LookupEnv(key); exists && val != "" {
		return val
	}
	return def
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func floatDefault(s string, def float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return def
	}
	return f
}

func durationDefault(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return def
	}
	return d
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := []string{}
	for _, p := range strings.Split(s, ",") {
		pt := strings.TrimSpace(p)
		if pt != "" {
			parts = append(parts, pt)
		}
	}
	return parts
}
