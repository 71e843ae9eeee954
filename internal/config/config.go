package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultStoreWhatsApp is the fallback destination when STORE_WHATSAPP_NUMBER
// is unset. Orders are addressed to the store's number, never the customer's.
const DefaultStoreWhatsApp = "5511999999999"

// AppConfig aggregates runtime configuration, injected through environment
// variables so nothing is hardcoded in request-handling code.
type AppConfig struct {
	HTTPAddr string
	DBPath   string

	RedisAddr string
	RedisDB   int

	// Kafka brokers (comma separated), topic and consumer group for the
	// order-created event feed.
	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string

	// Redis Stream outbox (orders are appended post-commit, the relay ships
	// them to Kafka asynchronously).
	OrderEventStream   string
	OrderEventGroup    string
	OrderEventConsumer string

	// StoreWhatsApp is the deep-link destination number.
	StoreWhatsApp string

	// OrderNumberAttempts bounds the retry loop on order-number collision.
	OrderNumberAttempts int

	// Order endpoint rate limiting.
	OrderRateLimit  int
	OrderRateWindow time.Duration

	// AdminToken guards the seeding endpoints (demo-grade protection).
	AdminToken string
}

// Load reads and validates configuration, falling back to defaults.
func Load() (AppConfig, error) {
	cfg := AppConfig{
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		DBPath:              getEnv("DB_PATH", "zap_store.db"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:             0,
		KafkaBrokers:        splitCSV(getEnv("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:          getEnv("KAFKA_TOPIC", "zap-store-orders"),
		KafkaGroupID:        getEnv("KAFKA_GROUP_ID", "zap-store-notifier"),
		OrderEventStream:    getEnv("ORDER_EVENT_STREAM", "zap_store:order_events"),
		OrderEventGroup:     getEnv("ORDER_EVENT_GROUP", "zap-store-relay-group"),
		OrderEventConsumer:  getEnv("ORDER_EVENT_CONSUMER", "zap-store-relay-1"),
		StoreWhatsApp:       getEnv("STORE_WHATSAPP_NUMBER", DefaultStoreWhatsApp),
		OrderNumberAttempts: 8,
		OrderRateLimit:      30,
		OrderRateWindow:     time.Minute,
		AdminToken:          getEnv("ADMIN_TOKEN", "dev-admin-token"),
	}

	redisDB, err := getEnvInt("REDIS_DB", cfg.RedisDB)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cfg.RedisDB = redisDB

	attempts, err := getEnvInt("ORDER_NUMBER_ATTEMPTS", cfg.OrderNumberAttempts)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid ORDER_NUMBER_ATTEMPTS: %w", err)
	}
	if attempts <= 0 {
		return AppConfig{}, fmt.Errorf("ORDER_NUMBER_ATTEMPTS must be > 0")
	}
	cfg.OrderNumberAttempts = attempts

	rateLimit, err := getEnvInt("ORDER_RATE_LIMIT", cfg.OrderRateLimit)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid ORDER_RATE_LIMIT: %w", err)
	}
	if rateLimit <= 0 {
		return AppConfig{}, fmt.Errorf("ORDER_RATE_LIMIT must be > 0")
	}
	cfg.OrderRateLimit = rateLimit

	rateWindowSec, err := getEnvInt("ORDER_RATE_WINDOW_SEC", int(cfg.OrderRateWindow.Seconds()))
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid ORDER_RATE_WINDOW_SEC: %w", err)
	}
	if rateWindowSec <= 0 {
		return AppConfig{}, fmt.Errorf("ORDER_RATE_WINDOW_SEC must be > 0")
	}
	cfg.OrderRateWindow = time.Duration(rateWindowSec) * time.Second

	if cfg.StoreWhatsApp == "" {
		return AppConfig{}, fmt.Errorf("STORE_WHATSAPP_NUMBER must not be empty")
	}
	if len(cfg.KafkaBrokers) == 0 {
		return AppConfig{}, fmt.Errorf("KAFKA_BROKERS must not be empty")
	}
	if cfg.KafkaTopic == "" {
		return AppConfig{}, fmt.Errorf("KAFKA_TOPIC must not be empty")
	}
	if cfg.KafkaGroupID == "" {
		return AppConfig{}, fmt.Errorf("KAFKA_GROUP_ID must not be empty")
	}
	if cfg.OrderEventStream == "" {
		return AppConfig{}, fmt.Errorf("ORDER_EVENT_STREAM must not be empty")
	}
	if cfg.OrderEventGroup == "" {
		return AppConfig{}, fmt.Errorf("ORDER_EVENT_GROUP must not be empty")
	}
	if cfg.OrderEventConsumer == "" {
		return AppConfig{}, fmt.Errorf("ORDER_EVENT_CONSUMER must not be empty")
	}

	return cfg, nil
}

// getEnv reads a string env var, returning fallback when empty.
func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

// getEnvInt reads an integer env var, returning fallback when empty.
func getEnvInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

// splitCSV parses a comma-separated string into a slice.
func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		s := strings.TrimSpace(p)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
