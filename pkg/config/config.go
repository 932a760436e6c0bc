package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var (
	once     sync.Once
	instance *Config
)

var envPath = "./configs/.env"

type Config struct {
}

// New loads ./configs/.env once. A missing file is not fatal: the process
// environment is used as is.
func New() *Config {
	once.Do(func() {
		err := godotenv.Load(envPath)
		if err != nil {
			slog.Warn("env file not loaded, using process environment", slog.String("path", envPath), slog.String("error", err.Error()))
		}
		instance = &Config{}
	})
	return instance
}

func (c *Config) GetString(key string) string {
	return os.Getenv(key)
}

func (c *Config) GetStringOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (c *Config) GetInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

// GetDuration parses values like "10s"; a bare integer is taken as seconds.
func (c *Config) GetDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}

func (c *Config) GetLocation(key string, def string) (*time.Location, error) {
	return time.LoadLocation(c.GetStringOr(key, def))
}

// Require reports every key from keys that is unset.
func (c *Config) Require(keys ...string) error {
	var missing []string
	for _, key := range keys {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return errors.New("missing required environment variables: " + strings.Join(missing, ", "))
	}
	return nil
}
