package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvPrefix префикс переменных окружения, переопределяющих файл
const EnvPrefix = "SALON"

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Booking   BookingConfig   `toml:"booking"`
	SMTP      SMTPConfig      `toml:"smtp"`
	SMS       SMSConfig       `toml:"sms"`
	Redis     RedisConfig     `toml:"redis"`
	Kafka     KafkaConfig     `toml:"kafka"`
	Reminders RemindersConfig `toml:"reminders"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig параметры подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig параметры логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig параметры Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig параметры записи
type BookingConfig struct {
	Timezone           string `toml:"timezone"`
	TokenSecret        string `toml:"token_secret"`
	TokenNamespace     string `toml:"token_namespace"`
	PublicBaseURL      string `toml:"public_base_url"`
	AdvanceBookingDays int    `toml:"advance_booking_days"`

	location *time.Location
}

// Location часовой пояс салона; заполняется при Load
func (b BookingConfig) Location() *time.Location {
	if b.location == nil {
		return time.UTC
	}
	return b.location
}

// SMTPConfig параметры почты; пустой host отключает письма
type SMTPConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	From     string `toml:"from"`
}

// SMSConfig параметры SMS шлюза; пустой url отключает SMS
type SMSConfig struct {
	URL        string `toml:"url"`
	Token      string `toml:"token"`
	FromNumber string `toml:"from_number"`
	Timeout    int    `toml:"timeout"` // секунды
}

// RedisConfig параметры кэша календаря; пустой addr отключает кэш
type RedisConfig struct {
	Addr        string `toml:"addr"`
	Password    string `toml:"password"`
	DB          int    `toml:"db"`
	KeyPrefix   string `toml:"key_prefix"`
	CalendarTTL int    `toml:"calendar_ttl"` // секунды
}

// Enabled true, если кэш настроен
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Addr) != ""
}

// KafkaConfig параметры публикации событий; пустой brokers отключает публикацию
type KafkaConfig struct {
	Brokers      string `toml:"brokers"` // через запятую
	Topic        string `toml:"topic"`
	WriteTimeout int    `toml:"write_timeout"` // секунды
}

// RemindersConfig параметры рассылки напоминаний
type RemindersConfig struct {
	Enabled     bool   `toml:"enabled"`
	Schedule    string `toml:"schedule"`
	WindowHours int    `toml:"window_hours"`
	Timeout     int    `toml:"timeout"` // секунды
}

// Window горизонт напоминаний
func (r RemindersConfig) Window() time.Duration {
	return time.Duration(r.WindowHours) * time.Hour
}

// RateLimitConfig ограничение публичных POST запросов; работает только с Redis
type RateLimitConfig struct {
	Enabled bool `toml:"enabled"`
	Limit   int  `toml:"limit"`
	Window  int  `toml:"window"` // секунды
	// TrustedProxies подсети прокси, чьему X-Forwarded-For можно верить
	TrustedProxies []string `toml:"trusted_proxies"`
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "salon",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "salon_booking",
		},
		Booking: BookingConfig{
			Timezone:       "Europe/Sofia",
			TokenNamespace: "bookings.cancel.v1",
		},
		SMTP: SMTPConfig{
			Port: 587,
		},
		SMS: SMSConfig{
			Timeout: 10,
		},
		Redis: RedisConfig{
			KeyPrefix:   "salon:calendar",
			CalendarTTL: 600,
		},
		Kafka: KafkaConfig{
			Topic:        "salon.bookings",
			WriteTimeout: 10,
		},
		Reminders: RemindersConfig{
			Enabled:     true,
			Schedule:    "*/15 * * * *",
			WindowHours: 24,
			Timeout:     120,
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			Limit:   20,
			Window:  60,
		},
	}
}

// Load читает конфигурацию: значения по умолчанию, затем файл (если существует),
// затем переменные окружения SALON_*, затем проверка
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет значения и загружает часовой пояс
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("%w: database.port %d out of range", ErrInvalidConfig, c.Database.Port)
	}

	loc, err := time.LoadLocation(c.Booking.Timezone)
	if err != nil {
		return fmt.Errorf("%w: booking.timezone %q: %v", ErrInvalidConfig, c.Booking.Timezone, err)
	}
	c.Booking.location = loc

	if strings.TrimSpace(c.Booking.TokenSecret) == "" {
		return fmt.Errorf("%w: booking.token_secret is required (or %s_TOKEN_SECRET)", ErrInvalidConfig, EnvPrefix)
	}
	if c.Booking.AdvanceBookingDays < 0 {
		return fmt.Errorf("%w: booking.advance_booking_days must not be negative", ErrInvalidConfig)
	}

	if c.Redis.Enabled() && c.Redis.CalendarTTL <= 0 {
		return fmt.Errorf("%w: redis.calendar_ttl must be positive", ErrInvalidConfig)
	}

	if c.RateLimit.Enabled && (c.RateLimit.Limit <= 0 || c.RateLimit.Window <= 0) {
		return fmt.Errorf("%w: rate_limit.limit and rate_limit.window must be positive", ErrInvalidConfig)
	}
	for _, cidr := range c.RateLimit.TrustedProxies {
		if !validProxy(cidr) {
			return fmt.Errorf("%w: rate_limit.trusted_proxies: invalid address %q", ErrInvalidConfig, cidr)
		}
	}

	if c.Reminders.Enabled {
		if strings.TrimSpace(c.Reminders.Schedule) == "" {
			return fmt.Errorf("%w: reminders.schedule is required", ErrInvalidConfig)
		}
		if c.Reminders.WindowHours <= 0 {
			return fmt.Errorf("%w: reminders.window_hours must be positive", ErrInvalidConfig)
		}
	}

	return nil
}

func validProxy(raw string) bool {
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, "/") {
		_, _, err := net.ParseCIDR(raw)
		return err == nil
	}
	return net.ParseIP(raw) != nil
}
