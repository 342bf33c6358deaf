package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config конфигурация transfer-сервиса
type Config struct {
	HTTPPort string `envconfig:"APP_PORT" default:"8080"`
	DB       DBConfig
	JWT      JWTConfig
	GRPC     GRPCConfig
	Rail     RailConfig
	Kafka    KafkaConfig
}

type DBConfig struct {
	Host     string `envconfig:"POSTGRES_HOST"     required:"true"`
	Port     string `envconfig:"POSTGRES_PORT"     required:"true"`
	User     string `envconfig:"POSTGRES_USER"     required:"true"`
	Password string `envconfig:"POSTGRES_PASSWORD" required:"true"`
	DBName   string `envconfig:"POSTGRES_DB"       required:"true"`
	SSLMode  string `envconfig:"POSTGRES_SSLMODE"  default:"disable"`
}

type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" required:"true"`
}

type GRPCConfig struct {
	AccountRegistryAddr string        `envconfig:"ACCOUNT_GRPC_ADDR" default:"localhost:50051"`
	Timeout             time.Duration `envconfig:"GRPC_TIMEOUT" default:"5s"`
}

type RailConfig struct {
	BaseURL string        `envconfig:"RAIL_BASE_URL" required:"true"`
	APIKey  string        `envconfig:"RAIL_API_KEY"  required:"true"`
	Timeout time.Duration `envconfig:"RAIL_TIMEOUT"  default:"10s"`
}

type KafkaConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	Topic   string   `envconfig:"KAFKA_TOPIC" default:"notification"`
	Enabled bool     `envconfig:"KAFKA_ENABLED" default:"true"`
}

// NotifierConfig конфигурация notifier-сервиса
type NotifierConfig struct {
	Kafka   NotifierKafkaConfig
	MongoDB MongoDBConfig
	Push    PushConfig
}

type NotifierKafkaConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	Topic   string   `envconfig:"KAFKA_TOPIC" default:"notification"`
	// group id основного и recovery-путей обязаны различаться,
	// чтобы recovery не конкурировал с живым трафиком
	GroupID         string        `envconfig:"KAFKA_GROUP_ID" default:"notifier"`
	RecoveryGroupID string        `envconfig:"KAFKA_RECOVERY_GROUP_ID" default:"notifier-recovery"`
	Workers         int           `envconfig:"KAFKA_WORKERS" default:"5"`
	MaxRetries      int           `envconfig:"KAFKA_MAX_RETRIES" default:"3"`
	RetryBackoff    time.Duration `envconfig:"KAFKA_RETRY_BACKOFF" default:"30s"`
}

type MongoDBConfig struct {
	URI      string        `envconfig:"MONGO_URI" required:"true"`
	Database string        `envconfig:"MONGO_DATABASE" default:"notifications"`
	Timeout  time.Duration `envconfig:"MONGO_TIMEOUT" default:"10s"`
}

type PushConfig struct {
	Endpoint  string        `envconfig:"PUSH_ENDPOINT" default:"https://fcm.googleapis.com/fcm/send"`
	ServerKey string        `envconfig:"PUSH_SERVER_KEY" required:"true"`
	Timeout   time.Duration `envconfig:"PUSH_TIMEOUT" default:"10s"`
}

func NewConfig() (*Config, error) {
	loadEnvFile()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации: %w", err)
	}

	return &cfg, nil
}

func NewNotifierConfig() (*NotifierConfig, error) {
	loadEnvFile()

	var cfg NotifierConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации: %w", err)
	}

	if cfg.Kafka.GroupID == cfg.Kafka.RecoveryGroupID {
		return nil, fmt.Errorf("KAFKA_GROUP_ID и KAFKA_RECOVERY_GROUP_ID должны различаться")
	}

	return &cfg, nil
}

func loadEnvFile() {
	envFile := "config.env"

	if err := godotenv.Load(envFile); err != nil {
		log.Printf("warning: не удалось загрузить файл %s, используются только системные переменные окружения: %v", envFile, err)
	}
}

func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

func (d *DBConfig) MigrationURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}
