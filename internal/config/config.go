package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Key string

const (
	KeyLogger  Key = "logger"
	KeyMetrics Key = "metrics"
	KeyUserID  Key = "user_id"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	Service    Service
	Platform   Platform
	Logger     Logger
	Metrics    Metrics
	Postgres   ReadEnvPostgres
	Store      Store
	Centrifuge Centrifuge
	Realtime   Realtime
	Notifier   Notifier
	Redis      Redis
	Kafka      Kafka
}

type Service struct {
	Port string `env:"SERVICE_PORT" env-default:"8080"`
	Name string `env:"SERVICE_NAME" env-default:"conversation-service"`
}

type Platform struct {
	Env string `env:"ENV" env-default:"dev"`
}

type Logger struct {
	Host string `env:"LOGGER_SERVICE_HOST"`
	Port string `env:"LOGGER_SERVICE_PORT"`
}

type Metrics struct {
	Host string `env:"GRAFANA_HOST"`
	Port int    `env:"GRAFANA_PORT"`
}

type ReadEnvPostgres struct {
	User     string `env:"CHAT_SERVICE_POSTGRES_USER"`
	Password string `env:"CHAT_SERVICE_POSTGRES_PASSWORD"`
	Database string `env:"CHAT_SERVICE_POSTGRES_DB"`
	Host     string `env:"CHAT_SERVICE_POSTGRES_HOST"`
	Port     string `env:"CHAT_SERVICE_POSTGRES_PORT" env-default:"5432"`
}

// SeedUsers is only read by the memory driver, which has no other source of user ids
// unless the Kafka user topic is configured.
type Store struct {
	Driver    string  `env:"STORE_DRIVER" env-default:"postgres"`
	SeedUsers []int64 `env:"STORE_SEED_USERS" env-separator:","`
}

// Centrifuge is optional: an empty BaseURL disables the hosted push sink.
type Centrifuge struct {
	BaseURL string        `env:"CENTRIFUGO_BASE_URL"`
	APIKey  string        `env:"CENTRIFUGO_API_KEY"`
	Timeout time.Duration `env:"CENTRIFUGO_TIMEOUT" env-default:"3s"`
}

type Realtime struct {
	TokenSecret string        `env:"REALTIME_TOKEN_SECRET" env-required:"true"`
	TokenTTL    time.Duration `env:"REALTIME_TOKEN_TTL" env-default:"30m"`
	SendBuffer  int           `env:"REALTIME_SEND_BUFFER" env-default:"64"`
	WriteWait   time.Duration `env:"REALTIME_WRITE_WAIT" env-default:"10s"`
	PongWait    time.Duration `env:"REALTIME_PONG_WAIT" env-default:"60s"`
}

type Notifier struct {
	QueueSize   int           `env:"NOTIFIER_QUEUE_SIZE" env-default:"1024"`
	Workers     int           `env:"NOTIFIER_WORKERS" env-default:"4"`
	PushTimeout time.Duration `env:"NOTIFIER_PUSH_TIMEOUT" env-default:"5s"`
}

// Redis is optional: an empty Addr keeps fan-out local to this node.
type Redis struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" env-default:"0"`
	Channel  string `env:"REDIS_EVENTS_CHANNEL" env-default:"conversation-events"`
}

type Kafka struct {
	Host      string `env:"KAFKA_HOST"`
	Port      string `env:"KAFKA_PORT"`
	UserTopic string `env:"USER_TOPIC" env-default:"user"`
	GroupID   string `env:"KAFKA_USER_GROUP_ID" env-default:"chat-user-sync"`
}

func MustLoad() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		log.Fatalf("failed to read env variables: %s", err)
	}

	return cfg
}
