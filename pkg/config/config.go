package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config collects every environment setting used by the API and the lambdas.
type Config struct {
	Env         string // "local", "dev", "prod"
	ServiceName string

	AccountsTable     string
	EventsTable       string
	WagersTable       string
	TransactionsTable string

	SettlementQueueURL string
	RedisAddr          string
	KafkaBrokers       string // "a:9092,b:9092"
	KafkaTopicPlaced   string
	KafkaTopicSettled  string

	JWTSecret      string
	AllowedOrigins []string

	HTTPPort    string
	MetricsPort string

	Currency           string
	SeedBalance        decimal.Decimal
	IdempotencyTTL     time.Duration
	StaleWagerAfter    time.Duration
	UseInMemoryStorage bool
}

// Load reads the environment, after loading a .env file when one exists.
// The returned bool reports whether a .env file was found.
func Load() (Config, bool) {
	found := godotenv.Load() == nil

	cfg := Config{
		Env:         getEnv("ENV", "local"),
		ServiceName: getEnv("SERVICE_NAME", "sportsbook-ledger"),

		AccountsTable:     os.Getenv("DYNAMODB_ACCOUNTS_TABLE_NAME"),
		EventsTable:       os.Getenv("DYNAMODB_EVENTS_TABLE_NAME"),
		WagersTable:       os.Getenv("DYNAMODB_WAGERS_TABLE_NAME"),
		TransactionsTable: os.Getenv("DYNAMODB_TRANSACTIONS_TABLE_NAME"),

		SettlementQueueURL: os.Getenv("SQS_QUEUE_URL"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		KafkaBrokers:       os.Getenv("KAFKA_BROKERS"),
		KafkaTopicPlaced:   getEnv("KAFKA_TOPIC_WAGER_PLACED", "wager_placed"),
		KafkaTopicSettled:  getEnv("KAFKA_TOPIC_WAGER_SETTLED", "wager_settled"),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		MetricsPort: getEnv("METRICS_PORT", "9095"),

		Currency:           getEnv("WALLET_CURRENCY", "USD"),
		SeedBalance:        getDecimal("WALLET_SEED_BALANCE", decimal.NewFromInt(1000)),
		IdempotencyTTL:     getDuration("IDEMPOTENCY_TTL", 24*time.Hour),
		StaleWagerAfter:    getDuration("STALE_WAGER_THRESHOLD", 20*time.Minute),
		UseInMemoryStorage: getEnv("STORAGE", "dynamodb") == "memory",
	}

	return cfg, found
}

// Validate reports missing settings required by the selected storage backend.
func (c Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	if !c.UseInMemoryStorage {
		errs = append(errs, c.ValidateTables())
	}
	return errors.Join(errs...)
}

// ValidateTables reports missing DynamoDB table names. The lambdas only need these.
func (c Config) ValidateTables() error {
	if c.AccountsTable == "" || c.EventsTable == "" || c.WagersTable == "" || c.TransactionsTable == "" {
		return errors.New("one or more DynamoDB table name environment variables are not set")
	}
	return nil
}

// KafkaBrokerList splits the comma-separated broker setting.
func (c Config) KafkaBrokerList() []string {
	return splitList(c.KafkaBrokers)
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		if secs, err := strconv.Atoi(v); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return def
}

func getDecimal(key string, def decimal.Decimal) decimal.Decimal {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
