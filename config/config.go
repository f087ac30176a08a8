package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config структура конфигурации приложения
type Config struct {
	Server       ServerConfig
	Logging      LoggingConfig
	CORS         CORSConfig
	RateLimit    RateLimitConfig
	Studio       StudioConfig
	Integrations IntegrationConfig
	Redis        RedisConfig
	Kafka        KafkaConfig
}

// ServerConfig конфигурация HTTP сервера
type ServerConfig struct {
	Port            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// LoggingConfig конфигурация логгера
type LoggingConfig struct {
	Level string
	Env   string
}

// CORSConfig конфигурация CORS заголовков
type CORSConfig struct {
	AllowedOrigin string
}

// RateLimitConfig ограничение частоты запросов к публичным формам
type RateLimitConfig struct {
	PerMinute int
	Burst     int
}

// StudioConfig данные студии для писем
type StudioConfig struct {
	Name      string
	Email     string
	EmailFrom string
}

// IntegrationConfig ключи внешних интеграций и таймаут исходящих запросов
type IntegrationConfig struct {
	Timeout    time.Duration
	ReturnURL  string
	ZohoRegion string
	Values     MapSource
}

// RedisConfig конфигурация Redis (кэш токенов CRM)
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// KafkaConfig конфигурация публикации событий
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Enabled сообщает, настроен ли Redis
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// Enabled сообщает, настроена ли Kafka
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0 && k.Topic != ""
}

// IsProduction проверяет окружение
func (l LoggingConfig) IsProduction() bool {
	return l.Env == "production"
}

// Load загружает конфигурацию из .env, config.yaml и переменных окружения.
// Отсутствие .env и config.yaml не является ошибкой.
func Load(envPath string) (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("SERVER_READ_TIMEOUT", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 15)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 30)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("CORS_ALLOWED_ORIGIN", "*")
	v.SetDefault("INTEGRATION_TIMEOUT_SECONDS", 10)
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 30)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("STUDIO_NAME", "Medusa Tattoo")
	v.SetDefault("STUDIO_EMAIL", "info@medusa-tattoo.de")
	v.SetDefault("EMAIL_FROM", "Medusa Tattoo <noreply@medusa-tattoo.de>")
	v.SetDefault("ZOHO_REGION", "eu")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("KAFKA_TOPIC", "studio.events")
}

func fromViper(v *viper.Viper) *Config {
	values := MapSource{}
	for _, key := range IntegrationKeys {
		if val := strings.TrimSpace(v.GetString(key)); val != "" {
			values[key] = val
		}
	}

	var brokers []string
	for _, b := range strings.Split(v.GetString("KAFKA_BROKERS"), ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	return &Config{
		Server: ServerConfig{
			Port:            v.GetString("PORT"),
			ReadTimeout:     v.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout:    v.GetInt("SERVER_WRITE_TIMEOUT"),
			ShutdownTimeout: v.GetInt("SERVER_SHUTDOWN_TIMEOUT"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Env:   v.GetString("APP_ENV"),
		},
		CORS: CORSConfig{
			AllowedOrigin: v.GetString("CORS_ALLOWED_ORIGIN"),
		},
		RateLimit: RateLimitConfig{
			PerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
			Burst:     v.GetInt("RATE_LIMIT_BURST"),
		},
		Studio: StudioConfig{
			Name:      v.GetString("STUDIO_NAME"),
			Email:     v.GetString("STUDIO_EMAIL"),
			EmailFrom: v.GetString("EMAIL_FROM"),
		},
		Integrations: IntegrationConfig{
			Timeout:    time.Duration(v.GetInt("INTEGRATION_TIMEOUT_SECONDS")) * time.Second,
			ReturnURL:  v.GetString("PAYMENT_RETURN_URL"),
			ZohoRegion: v.GetString("ZOHO_REGION"),
			Values:     values,
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Kafka: KafkaConfig{
			Brokers: brokers,
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
	}
}
