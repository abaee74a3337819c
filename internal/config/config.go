package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ghaniswara/medi-quest/pkg/path"
	"github.com/joho/godotenv"
)

type IConfig interface {
	Get(key string) string
	GetDuration(key string) (time.Duration, error)
}
type Config struct {
	Key map[string]string
	Env string
}

// NewConfig reads the environment, prefixed by env, after loading the nearest .env
// file if one exists above the working directory.
func NewConfig(env string) (*Config, error) {
	env = strings.ToUpper(env)

	basePath, err := os.Getwd()

	if err != nil {
		return nil, err
	}

	if root, err := path.FindRoot(basePath, ".env", false); err == nil {
		if err := godotenv.Load(root + "/.env"); err != nil {
			return nil, err
		}
	}

	return &Config{
		Key: map[string]string{
			"POSTGRES_DB_NAME":  getEnv(env+"_POSTGRES_DB_NAME", ""),
			"POSTGRES_USER":     getEnv(env+"_POSTGRES_USER", ""),
			"POSTGRES_PASSWORD": getEnv(env+"_POSTGRES_PASSWORD", ""),
			"POSTGRES_HOST":     getEnv(env+"_POSTGRES_HOST", ""),
			"POSTGRES_PORT":     getEnv(env+"_POSTGRES_PORT", ""),
			"REDIS_HOST":        getEnv(env+"_REDIS_HOST", ""),
			"REDIS_PORT":        getEnv(env+"_REDIS_PORT", "6379"),
			"JWT_SECRET":        getEnv(env+"_JWT_SECRET", ""),
			"EXPIRES_IN":        getEnv(env+"_EXPIRES_IN", "1d"),
			"STATS_CACHE_TTL":   getEnv(env+"_STATS_CACHE_TTL", "30s"),
			"PORT":              getEnv("PORT", "5000"),
		},
		Env: env,
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func (c *Config) Get(key string) string {
	return c.Key[key]
}

func (c *Config) GetDuration(key string) (time.Duration, error) {
	d, err := ParseDuration(c.Key[key])
	if err != nil {
		return 0, fmt.Errorf("config %s: %w", key, err)
	}
	return d, nil
}

// ParseDuration accepts anything time.ParseDuration does plus a whole number of
// days written as "<n>d".
func ParseDuration(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid duration %q", value)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(value)
}
