// Package config loads process configuration: defaults, then an optional
// YAML file, then environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yonghwan1106/e-ansimcare/internal/generator"
)

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type GeneratorConfig struct {
	// Seed 0 picks one from the clock at startup.
	Seed             uint64 `yaml:"seed"`
	generator.Config `yaml:",inline"`
}

type DatabaseConfig struct {
	Enabled bool   `yaml:"enabled"`
	Driver  string `yaml:"driver"` // sqlite3 or pgx
	DSN     string `yaml:"dsn"`
}

type RedisConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type ChatConfig struct {
	MaxSessions int `yaml:"max_sessions"`
}

type Config struct {
	HTTP         HTTPConfig      `yaml:"http"`
	Log          LogConfig       `yaml:"log"`
	Generator    GeneratorConfig `yaml:"generator"`
	RulesPath    string          `yaml:"rules_path"`
	SnapshotPath string          `yaml:"snapshot_path"`
	Database     DatabaseConfig  `yaml:"database"`
	Redis        RedisConfig     `yaml:"redis"`
	Chat         ChatConfig      `yaml:"chat"`
}

func Default() *Config {
	return &Config{
		HTTP:      HTTPConfig{Addr: ":8080"},
		Log:       LogConfig{Level: "info", Format: "json"},
		Generator: GeneratorConfig{Config: generator.DefaultConfig()},
		RulesPath: "configs/rules.yaml",
		Database:  DatabaseConfig{Driver: "sqlite3", DSN: "data/e-ansimcare.db"},
		Redis:     RedisConfig{Addr: "localhost:6379", TTL: 5 * time.Minute},
		Chat:      ChatConfig{MaxSessions: 1000},
	}
}

// Load applies path (skipped when empty or missing) and then the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.HTTP.Addr, "HTTP_ADDR")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")
	setString(&c.RulesPath, "RULES_PATH")
	setString(&c.SnapshotPath, "SNAPSHOT_PATH")
	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.DSN, "DB_DSN")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")

	var errs []error
	if v, ok := os.LookupEnv("GEN_SEED"); ok && v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("GEN_SEED: %w", err))
		} else {
			c.Generator.Seed = seed
		}
	}
	errs = append(errs,
		setInt(&c.Generator.Households, "GEN_HOUSEHOLDS"),
		setInt(&c.Generator.SeniorVolunteers, "GEN_VOLUNTEERS_SENIOR"),
		setInt(&c.Generator.EmployeeVolunteers, "GEN_VOLUNTEERS_EMPLOYEE"),
		setInt(&c.Generator.Activities, "GEN_ACTIVITIES"),
		setInt(&c.Generator.Alerts, "GEN_ALERTS"),
		setInt(&c.Redis.DB, "REDIS_DB"),
		setInt(&c.Chat.MaxSessions, "CHAT_MAX_SESSIONS"),
		setBool(&c.Database.Enabled, "DB_ENABLED"),
		setBool(&c.Redis.Enabled, "REDIS_ENABLED"),
	)
	if v, ok := os.LookupEnv("CACHE_TTL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("CACHE_TTL: %w", err))
		} else {
			c.Redis.TTL = d
		}
	}
	return errors.Join(errs...)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}
