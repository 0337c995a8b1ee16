package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// SessionSecret signs session tokens. JWTSecret signs password reset
	// tokens and falls back to SessionSecret when unset.
	SessionSecret string `env:"SESSION_SECRET"`
	JWTSecret     string `env:"JWT_SECRET"`

	// AuthURL is the public origin of the admin front-end.
	AuthURL     string `env:"AUTH_URL,      default=http://admin.localhost:3000"`
	PanelAPIURL string `env:"PANEL_API_URL"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Session SessionConfig
	Login   LoginConfig

	AuditWorkers int `env:"AUDIT_WORKERS, default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGODB_URL, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,    default=stock_admin"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type KafkaConfig struct {
	Brokers    []string `env:"KAFKA_BROKERS"`
	AuditTopic string   `env:"KAFKA_AUDIT_TOPIC, default=admin.audit"`
}

type SessionConfig struct {
	CookieName   string        `env:"SESSION_COOKIE_NAME,   default=session-token-admin"`
	CookieDomain string        `env:"SESSION_COOKIE_DOMAIN, default=admin.localhost"`
	CookieSecure bool          `env:"SESSION_COOKIE_SECURE, default=false"`
	TTL          time.Duration `env:"SESSION_TTL,           default=720h"`
}

type LoginConfig struct {
	MaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=5"`
	Window      time.Duration `env:"LOGIN_WINDOW,       default=15m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration through lookuper and validates it.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}

	if cfg.SessionSecret == "" {
		return nil, errors.New("SESSION_SECRET is required")
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = cfg.SessionSecret
	}
	return &cfg, nil
}

// Development reports whether the service runs in development mode.
func (c *Config) Development() bool {
	return strings.EqualFold(c.Env, "development")
}

// AllowedOrigins lists the origins permitted to call the API with credentials.
func (c *Config) AllowedOrigins() []string {
	if c.AuthURL == "" {
		return nil
	}
	return []string{strings.TrimRight(c.AuthURL, "/")}
}
