// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"dev"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	RateLimit               `yaml:"rate_limit"`
	RabbitMQ                `yaml:"rabbitmq"`
	SMTP                    `yaml:"smtp"`
	BigQuery                `yaml:"bigquery"`
	Jobs                    `yaml:"jobs"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// RateLimit структура с настройками лимитера на отправку зарплаты.
// Окно короткое в dev и сутки в prod, значение берется из конфига окружения.
type RateLimit struct {
	MaxCalls int           `yaml:"max_calls" env-default:"1"`
	Period   time.Duration `yaml:"period" env-default:"60s"`
}

// RabbitMQ структура для настройки подключения к брокеру сообщений
type RabbitMQ struct {
	RabbitMQURL        string        `yaml:"url" env:"RABBITMQ_URL"`
	RabbitMQMaxRetries int           `yaml:"max_retries" env-default:"5"`
	RabbitMQRetryDelay time.Duration `yaml:"retry_delay" env-default:"3s"`
}

// SMTP структура с настройками почтового сервера
type SMTP struct {
	SMTPHost string `yaml:"host" env:"SMTP_HOST"`
	SMTPPort string `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	SMTPUser string `yaml:"user" env:"SMTP_USER"`
	SMTPPass string `yaml:"pass" env:"SMTP_PASS"`
}

// BigQuery структура с настройками экспорта в аналитическое хранилище
type BigQuery struct {
	ProjectID         string `yaml:"project_id" env:"BIGQUERY_PROJECT_ID"`
	UserTable         string `yaml:"user_table" env:"BIGQUERY_USER_TABLE"`
	CredentialsEnvVar string `yaml:"credentials_env_var" env-default:"GCP_SERVICE_ACCOUNT_JSON"`
	MaxRowsPerRequest int    `yaml:"max_rows_per_request" env-default:"500"`
}

// Jobs структура с расписанием фоновых задач и параметрами писем
type Jobs struct {
	ProfileExportCronSpec string `yaml:"profile_export_cron_spec" env-default:"0 1 * * *"`
	OnboardingCronSpec    string `yaml:"onboarding_cron_spec" env-default:"0 9 * * *"`
	UnsubscribeLink       string `yaml:"unsubscribe_link" env-default:"https://olass.co.kr/unsubscribe"`
}

// MustLoad функция для загрузки конфига, путь к файлу берется из CONFIG_PATH
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
