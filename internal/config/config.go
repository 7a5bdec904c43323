package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	HTTPAddr    string    `mapstructure:"http_addr"`
	DatabaseURL string    `mapstructure:"database_url"`
	RedisAddr   string    `mapstructure:"redis_addr"`
	Auth        Auth      `mapstructure:"auth"`
	RateLimit   RateLimit `mapstructure:"rate_limit"`
}

type Auth struct {
	Enabled           bool   `mapstructure:"enabled"`
	JWTSecret         string `mapstructure:"jwt_secret"`
	AdminUsername     string `mapstructure:"admin_username"`
	AdminPasswordHash string `mapstructure:"admin_password_hash"`
}

type RateLimit struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

const defaultJWTSecret = "super-secret-key"

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("database_url", "")
	v.SetDefault("redis_addr", "")
	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.jwt_secret", defaultJWTSecret)
	v.SetDefault("auth.admin_username", "admin")
	v.SetDefault("auth.admin_password_hash", "")
	v.SetDefault("rate_limit.rps", 1.0)
	v.SetDefault("rate_limit.burst", 3)
}

// Load reads configuration from defaults, an optional file and the
// environment, in increasing order of precedence. Nested keys map to env vars
// with dots replaced by underscores (auth.jwt_secret -> AUTH_JWT_SECRET).
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file == "" {
		file = v.GetString("products_config")
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.Enabled {
		if c.Auth.AdminPasswordHash == "" {
			return fmt.Errorf("auth is enabled but AUTH_ADMIN_PASSWORD_HASH is empty")
		}
		if c.Auth.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("auth is enabled but AUTH_JWT_SECRET is not set")
		}
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate limit must be positive, got rps=%v burst=%d", c.RateLimit.RPS, c.RateLimit.Burst)
	}
	return nil
}
