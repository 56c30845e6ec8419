package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type KafkaConfig struct {
	Brokers       []string
	Topic         string
	TLSEnabled    bool
	SASLEnabled   bool
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
}

type RelayConfig struct {
	BatchSize    int
	PollInterval time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type Config struct {
	GRPCPort    int
	HTTPPort    int
	DB          DatabaseConfig
	Kafka       KafkaConfig
	Relay       RelayConfig
	Log         LogConfig
	ServiceName string
}

func (c Config) Validate() {
	if c.DB.Password == "" {
		panic("DB_PASSWORD environment variable is required")
	}
}

func Load() Config {
	return Config{
		GRPCPort: getEnvInt("GRPC_PORT", 9095),
		HTTPPort: getEnvInt("HTTP_PORT", 8095),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "meqenet"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "meqenet_contracts"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
		},
		Kafka: KafkaConfig{
			Brokers:       strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:         getEnv("KAFKA_TOPIC", "contract-events"),
			TLSEnabled:    getEnvBool("KAFKA_TLS_ENABLED", false),
			SASLEnabled:   getEnvBool("KAFKA_SASL_ENABLED", false),
			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", "plain"),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
		},
		Relay: RelayConfig{
			BatchSize:    getEnvInt("OUTBOX_BATCH_SIZE", 100),
			PollInterval: getEnvDuration("OUTBOX_POLL_INTERVAL", 2*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		ServiceName: "contract-engine",
	}
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
