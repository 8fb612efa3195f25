package config

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"
)

type AppConfig struct {
	Name      string
	Env       string
	Port      string
	LogLevel  string
	BodyLimit int
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
			log.Printf("Warning: APP_ENV not set, defaulting to %s", env)
		}
		port := getEnv("APP_PORT", ":80")
		if port[0] != ':' {
			port = ":" + port
		}
		appConfig = &AppConfig{
			Name:      getEnv("APP_NAME", "talent-vault"),
			Env:       env,
			Port:      port,
			LogLevel:  getEnv("LOG_LEVEL", "info"),
			BodyLimit: getEnvInt("APP_BODY_LIMIT", 10*1024*1024),
		}
	})
	return appConfig
}

// IsProduction reports whether APP_ENV is "production".
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
