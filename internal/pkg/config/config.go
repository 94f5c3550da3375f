package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	StoreBackend     string `env:"STORE_BACKEND,     default=memory"`
	ChallengeBackend string `env:"CHALLENGE_BACKEND, default=memory"`

	OTP           OTPConfig
	Notifications NotificationConfig

	Mongo MongoConfig
	Redis RedisConfig
}

type OTPConfig struct {
	TTL       time.Duration `env:"OTP_TTL,        default=10m"`
	HashCost  int           `env:"OTP_HASH_COST,  default=10"`
	CacheSize int           `env:"OTP_CACHE_SIZE, default=10000"`
	// DemoOfficerLogin enables the officer bypass. Never enable in production.
	DemoOfficerLogin bool `env:"DEMO_OFFICER_LOGIN, default=true"`
}

type NotificationConfig struct {
	Workers int `env:"NOTIFY_WORKERS, default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=grievance_portal"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks cross-field constraints envconfig cannot express.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory, BackendRedis, BackendMongo:
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q", c.StoreBackend)
	}
	switch c.ChallengeBackend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("config: unknown CHALLENGE_BACKEND %q", c.ChallengeBackend)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET is required")
	}
	if c.IsProduction() && c.OTP.DemoOfficerLogin {
		return fmt.Errorf("config: DEMO_OFFICER_LOGIN must be disabled in production")
	}
	return nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration from lookuper. Used by tests.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	return load(ctx, lookuper)
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
