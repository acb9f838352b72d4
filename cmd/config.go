package cmd

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"orderprocessing/internal/adapters/out/kafka"
	"orderprocessing/internal/core/domain/model/order"

	"github.com/caarlos0/env/v10"
)

// Config is read from the environment, optionally seeded from a .env file.
type Config struct {
	HTTPPort        string        `env:"HTTP_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	SwaggerEnabled  bool          `env:"SWAGGER_ENABLED" envDefault:"false"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	MaxItemQuantity  int `env:"ORDER_RULES_MAX_ITEM_QUANTITY,required"`
	MaxItemsPerOrder int `env:"ORDER_RULES_MAX_ITEMS_PER_ORDER,required"`

	SweeperInterval     time.Duration `env:"SWEEPER_INTERVAL" envDefault:"5m"`
	OutboxRelayInterval time.Duration `env:"OUTBOX_RELAY_INTERVAL" envDefault:"5s"`
	OutboxBatchSize     int           `env:"OUTBOX_BATCH_SIZE" envDefault:"100"`

	KafkaBrokers           string `env:"KAFKA_BROKERS"`
	KafkaOrderChangedTopic string `env:"KAFKA_ORDER_CHANGED_TOPIC" envDefault:"orders.status-changed"`
}

// LoadConfig parses the environment. Missing order rules are an error.
func LoadConfig() (Config, error) {
	var config Config
	if err := env.Parse(&config); err != nil {
		return Config{}, err
	}

	if _, err := config.Rules(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// Rules builds the order rules, rejecting non-positive limits.
func (c Config) Rules() (order.Rules, error) {
	return order.NewRules(c.MaxItemQuantity, c.MaxItemsPerOrder)
}

// DSN builds a PostgreSQL connection URL.
func (c Config) DSN() string {
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   c.DBHost + ":" + c.DBPort,
		Path:   "/" + c.DBName,
	}
	query := url.Values{}
	query.Set("sslmode", c.DBSslMode)
	dsn.RawQuery = query.Encode()

	return dsn.String()
}

// Brokers returns the Kafka brokers. Event publishing is disabled when
// there are none.
func (c Config) Brokers() []string {
	return kafka.ParseBrokers(c.KafkaBrokers)
}

// EventsTopic is the topic status changes are written to, or "" when
// event publishing is disabled.
func (c Config) EventsTopic() string {
	if len(c.Brokers()) == 0 {
		return ""
	}
	return c.KafkaOrderChangedTopic
}

// SlogLevel maps LOG_LEVEL to a slog level.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}
