package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig holds the job store connection and pool settings
type DatabaseConfig struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// RedisConfig holds the optional redis connection used for job locks
type RedisConfig struct {
	URL     string
	LockTTL time.Duration
}

// TemporalConfig holds Temporal connection settings
type TemporalConfig struct {
	Host      string
	Namespace string
	TaskQueue string
}

func getServerConfig() ServerConfig {
	return ServerConfig{
		Host:         getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
		Port:         getEnvOrDefault("SERVER_PORT", DefaultHTTPPort),
		ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 5*time.Minute),
		WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 20*time.Minute),
		IdleTimeout:  getEnvDuration("SERVER_IDLE_TIMEOUT", 2*time.Minute),
	}
}

func getDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Driver:          getEnvOrDefault("DB_DRIVER", "sqlite"),
		DSN:             getEnvOrDefault("DB_DSN", ""),
		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 2),
		ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		ConnMaxIdleTime: getEnvDuration("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
	}
}

// ConnectionString returns the DSN, building one from DB_HOST style
// variables when DB_DSN is unset.
func (dc DatabaseConfig) ConnectionString() string {
	if dc.DSN != "" {
		return dc.DSN
	}

	if dc.Driver == "sqlite" {
		if root, err := GetProjectRoot(); err == nil {
			return filepath.Join(root, DefaultSQLitePath)
		}
		return DefaultSQLitePath
	}

	host := getEnvOrDefault("DB_HOST", "localhost")
	port := getEnvOrDefault("DB_PORT", "5432")
	user := getEnvOrDefault("DB_USER", "postgres")
	password := getEnvOrDefault("DB_PASSWORD", "")
	dbname := getEnvOrDefault("DB_NAME", "postgres")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)
}

// Address returns host:port for the HTTP listener
func (sc ServerConfig) Address() string {
	return fmt.Sprintf("%s:%s", sc.Host, sc.Port)
}
