package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config captures everything the server reads from the environment. Redis,
// Postgres and Kafka are optional; when unset the server falls back to the
// in-process implementations, which are only safe for a single replica.
type Config struct {
	Addr string `env:"INTAKE_ADDR" envDefault:":3000"`

	RedisURL    string `env:"REDIS_URL"`
	PostgresDSN string `env:"POSTGRES_DSN"`

	BrevoAPIKey  string `env:"BREVO_API_KEY"`
	BrevoBaseURL string `env:"BREVO_BASE_URL" envDefault:"https://api.brevo.com"`
	SenderName   string `env:"SENDER_NAME" envDefault:"Job Application"`
	SenderEmail  string `env:"SENDER_EMAIL"`
	AdminEmail   string `env:"ADMIN_EMAIL"`

	OTPTTL time.Duration `env:"OTP_TTL" envDefault:"300s"`

	KafkaBrokers []string `env:"KAFKA_BROKERS"`
	EventsTopic  string   `env:"EVENTS_TOPIC" envDefault:"intake.events"`
}

// FromEnv parses the environment so main stays lean.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
