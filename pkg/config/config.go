package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "STOREFRONT"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv     = "STOREFRONT_APP_ENV"
	EnvAPIBaseURL = "STOREFRONT_API_BASE_URL"
	EnvRedisURL   = "STOREFRONT_REDIS_URL"
)

type Config struct {
	App   AppConfig
	API   APIConfig
	Cart  CartConfig
	Prefs PrefsConfig
	Redis RedisConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Cart.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type APIConfig struct {
	BaseURL string        `envconfig:"STOREFRONT_API_BASE_URL" default:"http://localhost:8000"`
	Timeout time.Duration `envconfig:"STOREFRONT_API_TIMEOUT" default:"30s"`
}

// Cart storage backends.
const (
	CartBackendFile  = "file"
	CartBackendRedis = "redis"
)

type CartConfig struct {
	Backend string `envconfig:"STOREFRONT_CART_BACKEND" default:"file"`
	// Path is the location of the serialized cart when the file backend is used.
	Path string `envconfig:"STOREFRONT_CART_PATH" default:"srisai-cart.json"`
	// Key is the storage key when the redis backend is used.
	Key string `envconfig:"STOREFRONT_CART_KEY" default:"srisai-cart"`
}

func (c CartConfig) validate() error {
	switch c.Backend {
	case CartBackendFile, CartBackendRedis:
		return nil
	}
	return fmt.Errorf("cart backend must be %q or %q, got %q", CartBackendFile, CartBackendRedis, c.Backend)
}

type PrefsConfig struct {
	Path string `envconfig:"STOREFRONT_PREFS_PATH" default:"srisai-prefs.json"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}
