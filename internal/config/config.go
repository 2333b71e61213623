package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
)

const (
	ScheduleBackendPostgres  = "postgres"
	ScheduleBackendFirestore = "firestore"

	CalendarProviderGoogle = "google"
	CalendarProviderMemory = "memory"
)

var (
	// ErrInvalidConfig возвращается при недопустимых значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Schedule  ScheduleConfig  `toml:"schedule"`
	Firestore FirestoreConfig `toml:"firestore"`
	Calendar  CalendarConfig  `toml:"calendar"`
	Redis     RedisConfig     `toml:"redis"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ScheduleConfig источник расписаний магазинов и значения по умолчанию
type ScheduleConfig struct {
	Backend           string `toml:"backend"`
	Timezone          string `toml:"timezone"`
	LookupTimeoutMs   int    `toml:"lookup_timeout_ms"`
	DefaultCalendarID string `toml:"default_calendar_id"`
	MaxBookingMinutes int    `toml:"max_booking_minutes"`
}

// LookupTimeout таймаут чтения расписания
func (c ScheduleConfig) LookupTimeout() time.Duration {
	return time.Duration(c.LookupTimeoutMs) * time.Millisecond
}

// Location часовой пояс магазинов
func (c ScheduleConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

type FirestoreConfig struct {
	ProjectID       string `toml:"project_id"`
	CredentialsFile string `toml:"credentials_file"`
	Collection      string `toml:"collection"`
}

// CalendarConfig внешний календарь и circuit breaker для чтений
type CalendarConfig struct {
	Provider              string `toml:"provider"`
	CredentialsFile       string `toml:"credentials_file"`
	ReadTimeoutMs         int    `toml:"read_timeout_ms"`
	WriteTimeoutMs        int    `toml:"write_timeout_ms"`
	InsertAttempts        int    `toml:"insert_attempts"`
	BreakerMaxFailures    int    `toml:"breaker_max_failures"`
	BreakerOpenTimeoutSec int    `toml:"breaker_open_timeout_sec"`
}

func (c CalendarConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutMs) * time.Millisecond
}

func (c CalendarConfig) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutMs) * time.Millisecond
}

func (c CalendarConfig) BreakerOpenTimeout() time.Duration {
	return time.Duration(c.BreakerOpenTimeoutSec) * time.Second
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// RateLimitConfig ограничение частоты запросов на создание бронирований
type RateLimitConfig struct {
	Enabled        bool     `toml:"enabled"`
	Requests       int      `toml:"requests"`
	WindowSeconds  int      `toml:"window_seconds"`
	KeyPrefix      string   `toml:"key_prefix"`
	TrustedProxies []string `toml:"trusted_proxies"` // IP или CIDR прокси, которым доверяем X-Forwarded-For
}

func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

// Load читает конфигурацию из TOML-файла, применяет значения по умолчанию и переменные окружения
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	setDefaultInt(&c.Server.HTTPPort, 8080)
	setDefaultInt(&c.Server.ReadTimeout, 10)
	setDefaultInt(&c.Server.WriteTimeout, 10)
	setDefaultInt(&c.Server.IdleTimeout, 60)
	setDefaultInt(&c.Server.ShutdownTimeout, 15)

	setDefaultInt(&c.Database.Port, 5432)
	setDefaultString(&c.Database.SSLMode, "disable")
	setDefaultInt(&c.Database.MaxOpenConns, 25)
	setDefaultInt(&c.Database.MaxIdleConns, 5)
	setDefaultInt(&c.Database.ConnMaxLifetime, 300)

	setDefaultString(&c.Logs.Level, "info")

	setDefaultString(&c.Metrics.Path, "/metrics")
	setDefaultString(&c.Metrics.ServiceName, "salon_booking_service")

	setDefaultString(&c.Schedule.Backend, ScheduleBackendPostgres)
	setDefaultString(&c.Schedule.Timezone, "America/Sao_Paulo")
	setDefaultInt(&c.Schedule.LookupTimeoutMs, 2000)
	setDefaultInt(&c.Schedule.MaxBookingMinutes, 480)

	setDefaultString(&c.Firestore.Collection, "stores")

	setDefaultString(&c.Calendar.Provider, CalendarProviderGoogle)
	setDefaultInt(&c.Calendar.ReadTimeoutMs, 3000)
	setDefaultInt(&c.Calendar.WriteTimeoutMs, 5000)
	setDefaultInt(&c.Calendar.InsertAttempts, 2)
	setDefaultInt(&c.Calendar.BreakerMaxFailures, 5)
	setDefaultInt(&c.Calendar.BreakerOpenTimeoutSec, 30)

	setDefaultString(&c.Redis.Addr, "localhost:6379")

	setDefaultInt(&c.RateLimit.Requests, 10)
	setDefaultInt(&c.RateLimit.WindowSeconds, 60)
	setDefaultString(&c.RateLimit.KeyPrefix, "rl:bookings")
}

// applyEnv секреты не хранятся в файле
func (c *Config) applyEnv() {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); v != "" {
		if c.Calendar.CredentialsFile == "" {
			c.Calendar.CredentialsFile = v
		}
		if c.Firestore.CredentialsFile == "" {
			c.Firestore.CredentialsFile = v
		}
	}
}

// Validate проверяет допустимость значений
func (c *Config) Validate() error {
	switch c.Schedule.Backend {
	case ScheduleBackendPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database host and dbname are required for postgres backend", ErrInvalidConfig)
		}
	case ScheduleBackendFirestore:
		if c.Firestore.ProjectID == "" {
			return fmt.Errorf("%w: firestore project_id is required for firestore backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown schedule backend %q", ErrInvalidConfig, c.Schedule.Backend)
	}

	switch c.Calendar.Provider {
	case CalendarProviderGoogle, CalendarProviderMemory:
	default:
		return fmt.Errorf("%w: unknown calendar provider %q", ErrInvalidConfig, c.Calendar.Provider)
	}

	if _, err := c.Schedule.Location(); err != nil {
		return fmt.Errorf("%w: unknown timezone %q: %v", ErrInvalidConfig, c.Schedule.Timezone, err)
	}

	if c.Schedule.MaxBookingMinutes <= 0 {
		return fmt.Errorf("%w: max_booking_minutes must be positive", ErrInvalidConfig)
	}

	if c.RateLimit.Enabled && c.RateLimit.Requests <= 0 {
		return fmt.Errorf("%w: rate_limit.requests must be positive", ErrInvalidConfig)
	}

	return nil
}

func setDefaultInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func setDefaultString(v *string, def string) {
	if *v == "" {
		*v = def
	}
}
