// Package config предоставялет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек всех сервисов
type Config struct {
	Env                     string        `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string        `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string        `yaml:"migrations_path" env-default:"./migrations"`
	RemoteCallTimeout       time.Duration `yaml:"remote_call_timeout" env-default:"10s"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	ObjectStorage           `yaml:"object_storage"`
	Telegram                `yaml:"telegram"`
	RabbitMQ                `yaml:"rabbitmq"`
	SMTP                    `yaml:"smtp"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"30s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
	// MaxUploadBytes ограничивает размер multipart-формы с квитанцией
	MaxUploadBytes int64 `yaml:"max_upload_bytes" env-default:"10485760"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// JWTToken структура для работы с токеном сессии заявителя
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"720h"`
}

// ObjectStorage настройки хранилища скриншотов оплаты.
// Provider: "local" или "s3" (любой S3-совместимый бакет, например R2).
type ObjectStorage struct {
	Provider        string `yaml:"provider" env-default:"local"`
	Bucket          string `yaml:"bucket" env-default:"payment-slips"`
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region" env-default:"auto"`
	AccessKeyID     string `yaml:"access_key_id" env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" env:"S3_SECRET_ACCESS_KEY"`
	PublicURL       string `yaml:"public_url"`
	LocalPath       string `yaml:"local_path" env-default:"./uploads"`
}

// Telegram настройки бота, одобряющего заявки на вступление в каналы
type Telegram struct {
	BotToken      string        `yaml:"bot_token" env:"TELEGRAM_BOT_TOKEN"`
	WebhookSecret string        `yaml:"webhook_secret" env:"TELEGRAM_WEBHOOK_SECRET"`
	APIEndpoint   string        `yaml:"api_endpoint" env-default:"https://api.telegram.org/bot%s/%s"`
	Timeout       time.Duration `yaml:"timeout" env-default:"10s"`
}

// RabbitMQ настройки брокера уведомлений
type RabbitMQ struct {
	RabbitMQURL        string        `yaml:"url" env:"RABBITMQ_URL"`
	RabbitMQMaxRetries int           `yaml:"max_retries" env-default:"5"`
	RabbitMQRetryDelay time.Duration `yaml:"retry_delay" env-default:"3s"`
}

// SMTP настройки почтового транспорта
type SMTP struct {
	SMTPHost      string `yaml:"host"`
	SMTPPort      string `yaml:"port" env-default:"587"`
	SMTPUser      string `yaml:"user" env:"SMTP_USER"`
	SMTPPass      string `yaml:"password" env:"SMTP_PASSWORD"`
	OperatorEmail string `yaml:"operator_email"`
}

// MustLoad функция для загрузки конфига из файла, путь к которому задан в CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}

// String печатает конфиг без секретов
func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"RemoteCallTimeout: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"ObjectStorage:\n"+
			"  Provider: %s\n"+
			"  Bucket: %s\n"+
			"JWTToken:\n"+
			"  TokenTTL: %s\n",
		c.Env,
		c.RemoteCallTimeout,
		c.AddressRedis,
		c.DB,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.Provider,
		c.Bucket,
		c.TokenTTL,
	)
}
