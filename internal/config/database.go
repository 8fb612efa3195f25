package config

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// DBConfig describes the candidate document store. Collection is the table
// that holds one row per uploaded résumé.
type DBConfig struct {
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	Collection string
	SSLMode    string
	Timeout    time.Duration
}

var (
	dbConfig *DBConfig
	dbOnce   sync.Once
)

func LoadDBConfig() *DBConfig {
	dbOnce.Do(func() {
		dbConfig = &DBConfig{
			Host:       os.Getenv("DB_HOST"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   os.Getenv("DB_PASSWORD"),
			Name:       os.Getenv("DB_NAME"),
			Collection: os.Getenv("DB_COLLECTION"),
			SSLMode:    getEnv("DB_SSLMODE", "require"),
			Timeout:    getEnvDuration("DB_TIMEOUT", 10*time.Second),
		}
	})
	return dbConfig
}

func (c *DBConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.Host,
		c.User,
		c.Password,
		c.Name,
		c.Port,
		c.SSLMode,
	)
}
