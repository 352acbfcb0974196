package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// envOverrides значения, которые удобно задавать при деплое.
// Незаданная переменная оставляет поле nil и не трогает значение из файла.
type envOverrides struct {
	HTTPPort *int `envconfig:"HTTP_PORT"`

	DBHost     *string `envconfig:"DB_HOST"`
	DBPort     *int    `envconfig:"DB_PORT"`
	DBUser     *string `envconfig:"DB_USER"`
	DBPassword *string `envconfig:"DB_PASSWORD"`
	DBName     *string `envconfig:"DB_NAME"`
	DBSSLMode  *string `envconfig:"DB_SSLMODE"`

	LogLevel *string `envconfig:"LOG_LEVEL"`

	Timezone      *string `envconfig:"TIMEZONE"`
	TokenSecret   *string `envconfig:"TOKEN_SECRET"`
	PublicBaseURL *string `envconfig:"PUBLIC_BASE_URL"`

	SMTPHost     *string `envconfig:"SMTP_HOST"`
	SMTPPort     *int    `envconfig:"SMTP_PORT"`
	SMTPUsername *string `envconfig:"SMTP_USERNAME"`
	SMTPPassword *string `envconfig:"SMTP_PASSWORD"`
	SMTPFrom     *string `envconfig:"SMTP_FROM"`

	SMSURL   *string `envconfig:"SMS_URL"`
	SMSToken *string `envconfig:"SMS_TOKEN"`

	RedisAddr     *string `envconfig:"REDIS_ADDR"`
	RedisPassword *string `envconfig:"REDIS_PASSWORD"`

	KafkaBrokers *string `envconfig:"KAFKA_BROKERS"`

	RemindersEnabled *bool `envconfig:"REMINDERS_ENABLED"`
}

func applyEnv(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("%w: environment: %v", ErrInvalidConfig, err)
	}

	override(&cfg.Server.HTTPPort, env.HTTPPort)

	override(&cfg.Database.Host, env.DBHost)
	override(&cfg.Database.Port, env.DBPort)
	override(&cfg.Database.User, env.DBUser)
	override(&cfg.Database.Password, env.DBPassword)
	override(&cfg.Database.DBName, env.DBName)
	override(&cfg.Database.SSLMode, env.DBSSLMode)

	override(&cfg.Logs.Level, env.LogLevel)

	override(&cfg.Booking.Timezone, env.Timezone)
	override(&cfg.Booking.TokenSecret, env.TokenSecret)
	override(&cfg.Booking.PublicBaseURL, env.PublicBaseURL)

	override(&cfg.SMTP.Host, env.SMTPHost)
	override(&cfg.SMTP.Port, env.SMTPPort)
	override(&cfg.SMTP.Username, env.SMTPUsername)
	override(&cfg.SMTP.Password, env.SMTPPassword)
	override(&cfg.SMTP.From, env.SMTPFrom)

	override(&cfg.SMS.URL, env.SMSURL)
	override(&cfg.SMS.Token, env.SMSToken)

	override(&cfg.Redis.Addr, env.RedisAddr)
	override(&cfg.Redis.Password, env.RedisPassword)

	override(&cfg.Kafka.Brokers, env.KafkaBrokers)

	override(&cfg.Reminders.Enabled, env.RemindersEnabled)

	return nil
}

func override[T any](dst *T, value *T) {
	if value != nil {
		*dst = *value
	}
}
