package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"time"
)

type Config struct {
	Port string `env:"PORT" env-default:"8000"`

	Database struct {
		Driver string `env:"DB_DRIVER" env-default:"mysql"`
		DSN    string `env:"DB_DSN"`
		Host   string `env:"DB_HOST" env-default:"127.0.0.1"`
		Port   string `env:"DB_PORT" env-default:"3306"`
		User   string `env:"DB_USER" env-default:"root"`
		Pass   string `env:"DB_PASS"`
		Name   string `env:"DB_NAME" env-default:"task-db"`
	}

	Session struct {
		Secret     string        `env:"SESSION_SECRET" env-default:"DONOTUSE"`
		CookieName string        `env:"SESSION_COOKIE" env-default:"cookie"`
		TTL        time.Duration `env:"SESSION_TTL" env-default:"24h"`
		Store      string        `env:"SESSION_STORE" env-default:"memory"` // memory or redis
	}

	Redis struct {
		Addr string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	}

	Kafka struct {
		Brokers []string `env:"KAFKA_BROKERS" env-separator:","`
		Topic   string   `env:"KAFKA_TOPIC" env-default:"task-topic"`
	}

	HTTP struct {
		CORSOrigins []string `env:"CORS_ORIGINS" env-separator:"," env-default:"http://0.0.0.0:5173,http://0.0.0.0"`
		RateLimit   float64  `env:"RATE_LIMIT" env-default:"10"`
		RateBurst   int      `env:"RATE_BURST" env-default:"30"`
	}
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return &cfg, nil
}

// DataSource returns the driver specific connection string.
func (c *Config) DataSource() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}
	if c.Database.Driver == "sqlite3" {
		return c.Database.Name + ".db"
	}
	d := c.Database
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", d.User, d.Pass, d.Host, d.Port, d.Name)
}
