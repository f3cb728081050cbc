package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort int
	LogLevel   string

	DatabaseURL string
	SQLitePath  string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	KafkaBrokers    []string
	KafkaOrderTopic string

	JWTSecret []byte

	CSRFEnabled      bool
	CSRFSecureCookie bool

	PlacementDelay       time.Duration
	PlacementTimeout     time.Duration
	PlacementFailureRate float64
	CheckoutValidation   string

	SessionIdleTTL  time.Duration
	CatalogCacheTTL time.Duration
}

// Load reads .env when present and then the process environment.
func Load() Config {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Printf("Notice: .env file not loaded: %v. Using system environment variables", err)
	}

	return Config{
		ServerPort: EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:   EnvDefault("LOG_LEVEL", "info"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  EnvDefault("SQLITE_PATH", "storefront.db"),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    EnvDefault("ES_INDEX", "product"),

		KafkaBrokers:    CSV(os.Getenv("KAFKA_BROKERS")),
		KafkaOrderTopic: EnvDefault("KAFKA_ORDER_TOPIC", "order_events"),

		JWTSecret: []byte(os.Getenv("JWT_SECRET")),

		CSRFEnabled:      EnvBoolDefault("CSRF_ENABLED", true),
		CSRFSecureCookie: EnvBoolDefault("CSRF_SECURE_COOKIE", false),

		PlacementDelay:       EnvDurationDefault("PLACEMENT_DELAY", 2*time.Second),
		PlacementTimeout:     EnvDurationDefault("PLACEMENT_TIMEOUT", 10*time.Second),
		PlacementFailureRate: EnvFloatDefault("PLACEMENT_FAILURE_RATE", 0),
		CheckoutValidation:   EnvDefault("CHECKOUT_VALIDATION", "nonempty"),

		SessionIdleTTL:  EnvDurationDefault("SESSION_IDLE_TTL", 2*time.Hour),
		CatalogCacheTTL: EnvDurationDefault("CATALOG_CACHE_TTL", 5*time.Minute),
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func EnvFloatDefault(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
