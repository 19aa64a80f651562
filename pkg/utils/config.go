package utils

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Kafka    KafkaConfig
	Admin    AdminConfig
}

type AppConfig struct {
	Name        string `validate:"required"`
	Port        string `validate:"required,numeric"`
	Debug       bool
	LogPath     string
	APIPrefix   string   `validate:"required,startswith=/"`
	CORSOrigins []string `validate:"min=1"`
}

type DatabaseConfig struct {
	Driver   string `validate:"required,oneof=postgres mongo memory"`
	URL      string `validate:"required_unless=Driver memory"`
	Name     string
	MaxConns int32 `validate:"min=1"`
}

type JWTConfig struct {
	Secret      string `validate:"required,min=16"`
	ExpiryHours int    `validate:"min=1"`
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type AdminConfig struct {
	Name     string
	Email    string `validate:"omitempty,email"`
	Password string `validate:"required_with=Email"`
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "dropship-store")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_NAME", "dropship")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("JWT_EXPIRY_HOURS", 24*7)
	v.SetDefault("KAFKA_TOPIC", "dropship.orders")
	v.SetDefault("ADMIN_NAME", "Administrator")

	// .env is optional, the environment always wins
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read .env: %w", err)
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:        v.GetString("APP_NAME"),
			Port:        v.GetString("PORT"),
			Debug:       v.GetBool("DEBUG"),
			LogPath:     v.GetString("LOG_PATH"),
			APIPrefix:   strings.TrimRight(v.GetString("API_PREFIX"), "/"),
			CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(v.GetString("DB_DRIVER")),
			URL:      v.GetString("DATABASE_URL"),
			Name:     v.GetString("DB_NAME"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			ExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
		Admin: AdminConfig{
			Name:     v.GetString("ADMIN_NAME"),
			Email:    strings.ToLower(v.GetString("ADMIN_EMAIL")),
			Password: v.GetString("ADMIN_PASSWORD"),
		},
	}

	if errs := ValidateStruct(config); len(errs) > 0 {
		return nil, fmt.Errorf("invalid config: %s", FormatValidationErrors(errs))
	}

	return config, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
