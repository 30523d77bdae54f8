package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the process needs from the environment. It is
// loaded once in main and handed to constructors; nothing else reads env vars.
type Config struct {
	Environment string `envconfig:"APP_ENV" default:"development"`
	Port        string `envconfig:"PORT" default:"8080"`

	MongoURI        string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDB         string        `envconfig:"MONGO_DB" default:"notehub"`
	MongoMaxPool    uint64        `envconfig:"MONGO_MAX_POOL_SIZE" default:"100"`
	MongoMinPool    uint64        `envconfig:"MONGO_MIN_POOL_SIZE" default:"10"`
	MongoIdleTime   time.Duration `envconfig:"MONGO_MAX_CONN_IDLE_TIME" default:"60s"`
	MongoRetryWrite bool          `envconfig:"MONGO_RETRY_WRITES" default:"true"`

	// JWTSecret has no default on purpose: the server must not start with a
	// guessable signing key.
	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"24h"`

	// RedisURL enables the note list cache when set. Empty means no cache.
	RedisURL string        `envconfig:"REDIS_URL"`
	CacheTTL time.Duration `envconfig:"NOTE_CACHE_TTL" default:"5m"`

	MaxBodyBytes int64 `envconfig:"MAX_BODY_BYTES" default:"1048576"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// A missing .env is fine; containers set real env vars.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}
