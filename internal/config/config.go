package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const defaultCORSOrigins = "http://localhost:5173"

type Config struct {
	HTTPPort    string `envconfig:"HTTP_PORT" default:"8080"`
	DatabaseDSN string `envconfig:"DATABASE_DSN"`

	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	JWTSecret  string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL     time.Duration `envconfig:"JWT_TTL" default:"24h"`
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	LoginDelay time.Duration `envconfig:"LOGIN_DELAY" default:"1s"`

	VisitWindow time.Duration `envconfig:"VISIT_WINDOW" default:"4h"`

	CORSOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`

	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"visitor.events"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	// a missing .env file is fine
	_ = godotenv.Load(envFiles...)

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters")
	}
	if c.JWTTTL <= 0 || c.SessionTTL <= 0 {
		return errors.New("JWT_TTL and SESSION_TTL must be positive")
	}
	if c.LoginDelay < 0 {
		return errors.New("LOGIN_DELAY must not be negative")
	}
	if c.VisitWindow <= 0 {
		return errors.New("VISIT_WINDOW must be positive")
	}
	return nil
}

// Warnings lists settings that are fine for development only.
func (c *Config) Warnings() []string {
	var out []string
	if c.DatabaseDSN == "" {
		out = append(out, "DATABASE_DSN is empty, records are kept in memory and lost on restart")
	}
	if c.RedisAddr == "" {
		out = append(out, "REDIS_ADDR is empty, sessions are kept in memory and lost on restart")
	}
	if c.CORSOrigins == defaultCORSOrigins {
		out = append(out, "CORS_ALLOWED_ORIGINS uses the default value, set your own domain for production")
	}
	if c.AMQPURL == "" {
		out = append(out, "AMQP_URL is empty, invitation events are not published")
	}
	return out
}

func (c *Config) AllowedOrigins() string {
	parts := strings.Split(c.CORSOrigins, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, ",")
}
