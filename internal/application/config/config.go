package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug      bool   `env:"DEBUG" envDefault:"false"`
	Port       string `env:"PORT" envDefault:"8080"`
	MetricPort string `env:"METRIC_PORT" envDefault:"9090"`
	Domain     string `env:"DOMAIN" envDefault:"http://localhost:8080"`
	JWTSecret  string `env:"JWT_SECRET,required"`

	// SweepInterval is how often the expiry sweeper scans for rooms
	// past their deadline. Expiry is also re-checked lazily on every
	// join/send, so this only bounds how long an idle expired room
	// lingers before its members are evicted.
	SweepInterval time.Duration `env:"ROOM_SWEEP_INTERVAL" envDefault:"5s"`

	// MaxRoomMinutes caps the duration an admin can put on a room.
	MaxRoomMinutes int `env:"MAX_ROOM_MINUTES" envDefault:"180"`

	Postgres PostgresConfig
}

type PostgresConfig struct {
	URL string `env:"POSTGRES_URL"`

	Host     string `env:"POSTGRES_HOST"`
	Port     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	User     string `env:"POSTGRES_USER" envDefault:"postgres"`
	Password string `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	Name     string `env:"POSTGRES_NAME" envDefault:"jssrooms"`
	SSL      string `env:"POSTGRES_SSL" envDefault:"disable"`
}

// Enabled reports whether a database was configured at all. Without
// one the service runs on its in-memory stores (rooms and messages
// are memory-resident either way).
func (p *PostgresConfig) Enabled() bool {
	return p.URL != "" || p.Host != ""
}

func (p *PostgresConfig) DSN() string {
	if p.URL != "" {
		return p.URL
	}

	return fmt.Sprintf("postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.Name,
		p.SSL,
	)
}

func New() (*Config, error) {
	// Optional .env for local development, system env wins otherwise.
	_ = godotenv.Load()

	c, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return &c, nil
}
