package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Backend    BackendConfig    `yaml:"backend"`
	Redis      RedisConfig      `yaml:"redis"`
	Session    SessionConfig    `yaml:"session"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
	Exports    ExportConfig     `yaml:"exports"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

// BackendConfig points the dashboard at the booking backend.
type BackendConfig struct {
	BaseURL        string           `yaml:"base_url"`
	Token          string           `yaml:"token"`
	TimeoutSeconds int              `yaml:"timeout_seconds"`
	RateLimit      BackendRateLimit `yaml:"rate_limit"`
}

type BackendRateLimit struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// SessionConfig selects where the login snapshot is persisted.
type SessionConfig struct {
	Storage  string `yaml:"storage"`
	RedisKey string `yaml:"redis_key"`
	TTLHours int    `yaml:"ttl_hours"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type ExportConfig struct {
	Path string `yaml:"path"`
}

func Load(configPath string) (*Config, error) {
	err := godotenv.Load(".env")
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	// Environment variables are expanded before the YAML is parsed, so
	// secrets like ${BACKEND_TOKEN} can live in .env instead of the file.
	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return errors.New("backend base_url is required")
	}

	switch strings.ToLower(c.Session.Storage) {
	case "memory":
	case "redis":
		if c.Redis.Address == "" {
			return errors.New("session.storage=redis requires redis.address")
		}
	default:
		return fmt.Errorf("unknown session storage %q", c.Session.Storage)
	}

	if c.Backend.RateLimit.RPS < 0 {
		return errors.New("backend rate_limit.rps must not be negative")
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.Backend.TimeoutSeconds == 0 {
		c.Backend.TimeoutSeconds = 10
	}
	if c.Backend.RateLimit.RPS == 0 {
		c.Backend.RateLimit.RPS = 10
	}
	if c.Backend.RateLimit.Burst == 0 {
		c.Backend.RateLimit.Burst = 20
	}

	if c.Session.Storage == "" {
		c.Session.Storage = "memory"
	}
	if c.Session.RedisKey == "" {
		c.Session.RedisKey = "figaro:session"
	}
	if c.Session.TTLHours == 0 {
		c.Session.TTLHours = 12
	}

	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}

	if c.Exports.Path == "" {
		c.Exports.Path = "exports"
	}
}
