package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/dharmasatrya/flightbooking/internal/ratelimit"
)

const (
	SessionBackendFile   = "file"
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

type Config struct {
	App     AppConfig
	API     APIConfig
	Session SessionConfig
	Redis   RedisConfig
	Payment PaymentConfig
}

type AppConfig struct {
	Port    string
	Debug   bool
	LogPath string
}

type APIConfig struct {
	BaseURL   string
	Prefix    string
	Timeout   time.Duration
	RateLimit float64
	Burst     int
	Groups    map[string]GroupLimit
}

type GroupLimit struct {
	RPS   float64
	Burst int
}

type SessionConfig struct {
	Backend string
	File    string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type PaymentConfig struct {
	ProcessingDelay time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.debug", false)
	v.SetDefault("log.path", "logs/")
	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("api.prefix", "/api/v1")
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("api.rate_limit.rps", 10)
	v.SetDefault("api.rate_limit.burst", 20)
	v.SetDefault("api.rate_limit.groups.external.rps", 2)
	v.SetDefault("api.rate_limit.groups.external.burst", 4)
	v.SetDefault("session.backend", SessionBackendFile)
	v.SetDefault("session.file", "~/.skybook/session.json")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", "24h")
	v.SetDefault("payment.processing_delay", "2s")
}

// Load reads defaults, then the file named by CONFIG_PATH if set, then
// SKYBOOK_ environment overrides (SKYBOOK_API_BASE_URL and so on).
func Load() (*Config, error) {
	return load(viper.New(), os.Getenv("CONFIG_PATH"))
}

func load(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix("SKYBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Port:    v.GetString("port"),
			Debug:   v.GetBool("log.debug"),
			LogPath: v.GetString("log.path"),
		},
		API: APIConfig{
			BaseURL:   v.GetString("api.base_url"),
			Prefix:    v.GetString("api.prefix"),
			Timeout:   v.GetDuration("api.timeout"),
			RateLimit: v.GetFloat64("api.rate_limit.rps"),
			Burst:     v.GetInt("api.rate_limit.burst"),
			Groups:    groupLimits(v),
		},
		Session: SessionConfig{
			Backend: strings.ToLower(v.GetString("session.backend")),
			File:    expandHome(v.GetString("session.file")),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetString("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			TTL:      v.GetDuration("redis.ttl"),
		},
		Payment: PaymentConfig{
			ProcessingDelay: v.GetDuration("payment.processing_delay"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func groupLimits(v *viper.Viper) map[string]GroupLimit {
	out := make(map[string]GroupLimit)
	for _, group := range ratelimit.Groups() {
		key := "api.rate_limit.groups." + group
		lim := GroupLimit{
			RPS:   v.GetFloat64(key + ".rps"),
			Burst: v.GetInt(key + ".burst"),
		}
		if lim != (GroupLimit{}) {
			out[group] = lim
		}
	}
	return out
}

func (c APIConfig) RateLimits() ratelimit.Config {
	rc := ratelimit.Config{
		Default: ratelimit.Limit{RPS: c.RateLimit, Burst: c.Burst},
		Groups:  make(map[string]ratelimit.Limit, len(c.Groups)),
	}
	for group, lim := range c.Groups {
		rc.Groups[group] = ratelimit.Limit{RPS: lim.RPS, Burst: lim.Burst}
	}
	return rc
}

func (c *Config) validate() error {
	switch c.Session.Backend {
	case SessionBackendFile, SessionBackendMemory, SessionBackendRedis:
	default:
		return fmt.Errorf("unknown session backend %q", c.Session.Backend)
	}
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if c.API.RateLimit < 0 || c.API.Burst < 0 {
		return errors.New("api.rate_limit must not be negative")
	}
	for group, lim := range c.API.Groups {
		if lim.RPS < 0 || lim.Burst < 0 {
			return fmt.Errorf("api.rate_limit.groups.%s must not be negative", group)
		}
	}
	if c.Session.Backend == SessionBackendFile && c.Session.File == "" {
		return errors.New("session.file is required for the file backend")
	}
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
