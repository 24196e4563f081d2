// Package config handles application configuration: built-in defaults,
// an optional JSON config file, and environment variable overrides,
// applied in that order.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
)

// App holds HTTP server settings.
type App struct {
	Name string `json:"name"`
	Port int    `json:"port"`
}

// Database holds MySQL connection settings.
// TLS accepts the values understood by the mysql driver's tls DSN
// parameter: "true", "skip-verify", "preferred", or the name of a
// config registered with mysql.RegisterTLSConfig. Empty disables TLS.
type Database struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Name     string `json:"database"`
	TLS      string `json:"tls"`
}

// Config is the full application configuration.
type Config struct {
	App App      `json:"app"`
	DB  Database `json:"db"`
}

// Defaults returns the built-in development configuration.
func Defaults() *Config {
	return &Config{
		App: App{
			Name: "User Management System",
			Port: 3000,
		},
		DB: Database{
			Host: "localhost",
			Port: 3306,
			User: "root",
			Name: "delta_app",
		},
	}
}

// Load builds the configuration from defaults, then an optional JSON
// file at path, then environment variables. A missing file is only an
// error when the path was given explicitly.
func Load(path string, explicit bool) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if explicit || !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// applyEnv overrides configuration values from the environment.
func applyEnv(cfg *Config) {
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.DB.Host = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.DB.User = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.DB.Name = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.DB.Password = v
	}
	if v := os.Getenv("DB_TLS"); v != "" {
		cfg.DB.TLS = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.App.Port = port
		} else {
			log.Warn().Str("port", v).Msg("Ignoring invalid PORT environment variable")
		}
	}
}

// DSN renders the database settings as a mysql driver DSN.
func (d *Database) DSN() string {
	mc := mysql.NewConfig()
	mc.User = d.User
	mc.Passwd = d.Password
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", d.Host, d.Port)
	mc.DBName = d.Name
	if d.TLS != "" {
		mc.TLSConfig = d.TLS
	}
	return mc.FormatDSN()
}

// LogSummary logs the effective configuration with the password redacted.
func (c *Config) LogSummary() {
	password := ""
	if c.DB.Password != "" {
		password = "[REDACTED]"
	}
	log.Info().
		Str("app", c.App.Name).
		Int("port", c.App.Port).
		Str("db_host", c.DB.Host).
		Str("db_user", c.DB.User).
		Str("db_name", c.DB.Name).
		Str("db_password", password).
		Msg("Configuration loaded")
}
