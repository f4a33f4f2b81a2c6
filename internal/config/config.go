// Package config loads service configuration from an optional YAML file with
// environment-variable overrides, so containers can run config-file-free.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Session  SessionConfig  `yaml:"session"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type SessionConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

func defaults() Config {
	return Config{
		Server:   ServerConfig{Port: "8080"},
		Database: DatabaseConfig{Host: "localhost", Port: "5432", SSLMode: "disable"},
		Redis:    RedisConfig{Addr: "localhost:6379"},
		Session:  SessionConfig{TTL: 12 * time.Hour},
	}
}

// Load reads the YAML file at path when it is non-empty, then applies
// environment overrides on top.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setIfPresent(&cfg.Server.Port, "PORT")
	setIfPresent(&cfg.Database.Host, "DB_HOST")
	setIfPresent(&cfg.Database.Port, "DB_PORT")
	setIfPresent(&cfg.Database.User, "DB_USER")
	setIfPresent(&cfg.Database.Password, "DB_PASSWORD")
	setIfPresent(&cfg.Database.Name, "DB_NAME")
	setIfPresent(&cfg.Database.SSLMode, "DB_SSLMODE")
	setIfPresent(&cfg.Redis.Addr, "REDIS_ADDR")
	setIfPresent(&cfg.Redis.Password, "REDIS_PASSWORD")

	if v := os.Getenv("SESSION_TTL"); v != "" {
		if ttl, err := time.ParseDuration(v); err == nil {
			cfg.Session.TTL = ttl
		}
	}
}

func setIfPresent(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// DSN builds the lib/pq connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}
