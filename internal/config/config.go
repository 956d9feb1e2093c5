package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит всю конфигурацию приложения
type Config struct {
	Server   ServerConfig   // Настройки HTTP сервера
	Database DatabaseConfig // Настройки подключения к БД
	JWT      JWTConfig      // Настройки JWT авторизации
	Services ServicesConfig // Адреса внешних сервисов
	SMTP     SMTPConfig     // Настройки отправки писем
	HTTP     HTTPConfig     // CORS и rate limiting
	Log      LogConfig      // Настройки логирования
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port            string        `envconfig:"SERVER_PORT" default:"8080"`
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"lineups"`
	Password string `envconfig:"DB_PASSWORD" default:"lineups_pass"`
	Name     string `envconfig:"DB_NAME" default:"lineups"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"10"`
	MinConns int32  `envconfig:"DB_MIN_CONNS" default:"1"`
}

// JWTConfig содержит настройки JWT авторизации
type JWTConfig struct {
	Secret          string `envconfig:"JWT_SECRET" required:"true"`
	ExpirationHours int    `envconfig:"JWT_EXPIRATION_HOURS" default:"168"`
}

// ServicesConfig содержит адреса внешних сервисов (генерация составов, данные лиг)
type ServicesConfig struct {
	FeaturesEndpoint string        `envconfig:"FEATURES_SERVER_ENDPOINT" default:"http://localhost:8001"`
	DataEndpoint     string        `envconfig:"DATA_SERVICE_ENDPOINT" default:"http://localhost:8000"`
	Timeout          time.Duration `envconfig:"SERVICE_TIMEOUT" default:"30s"`
}

// SMTPConfig содержит настройки SMTP. Пустой Host означает, что письма только логируются
type SMTPConfig struct {
	Host     string `envconfig:"SMTP_HOST"`
	Port     string `envconfig:"SMTP_PORT" default:"587"`
	From     string `envconfig:"SMTP_FROM" default:"noreply@lineups.local"`
	Username string `envconfig:"SMTP_USERNAME"`
	Password string `envconfig:"SMTP_PASSWORD"`
}

// HTTPConfig содержит настройки CORS и ограничения частоты запросов
type HTTPConfig struct {
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	RateLimitRPS       float64  `envconfig:"RATE_LIMIT_RPS" default:"1"`
	RateLimitBurst     int      `envconfig:"RATE_LIMIT_BURST" default:"5"`
}

// LogConfig содержит настройки логирования
type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

// GetExpiration возвращает срок действия токена как time.Duration
func (j JWTConfig) GetExpiration() time.Duration {
	return time.Duration(j.ExpirationHours) * time.Hour
}

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// Validate проверяет границы пула соединений
func (d DatabaseConfig) Validate() error {
	if d.MinConns < 1 {
		return errors.New("DB_MIN_CONNS must be at least 1")
	}
	if d.MaxConns < d.MinConns {
		return fmt.Errorf("DB_MAX_CONNS (%d) must not be less than DB_MIN_CONNS (%d)", d.MaxConns, d.MinConns)
	}
	return nil
}

// SlogLevel возвращает уровень логирования для slog
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load читает конфигурацию из переменных окружения
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Database.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database config: %w", err)
	}
	return &cfg, nil
}
