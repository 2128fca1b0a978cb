package config

import (
	"fmt"
	"net"
	"os"
	"reflect"
	"strconv"
	"time"

	"github.com/ericfitz/userd/internal/envutil"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Redis     RedisConfig     `yaml:"redis"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         string        `yaml:"port" env:"SERVER_PORT"`
	Interface    string        `yaml:"interface" env:"SERVER_INTERFACE"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT"`
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Interface, s.Port)
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `yaml:"host" env:"REDIS_HOST"`
	Port     string `yaml:"port" env:"REDIS_PORT"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB"`
}

// Addr returns the Redis connection address.
func (r RedisConfig) Addr() string {
	return net.JoinHostPort(r.Host, r.Port)
}

// RateLimitConfig holds admission control configuration
type RateLimitConfig struct {
	// Store selects the admission state backend: "memory" or "redis"
	Store string `yaml:"store" env:"RATE_LIMIT_STORE"`
	// Window is the sliding window length
	Window time.Duration `yaml:"window" env:"RATE_LIMIT_WINDOW"`
	// Limit is the maximum admitted requests per key per window
	Limit int `yaml:"limit" env:"RATE_LIMIT_LIMIT"`
	// SweepInterval is how often idle client keys are evicted (memory store)
	SweepInterval time.Duration `yaml:"sweep_interval" env:"RATE_LIMIT_SWEEP_INTERVAL"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level            string `yaml:"level" env:"LOGGING_LEVEL"`
	IsDev            bool   `yaml:"is_dev" env:"LOGGING_IS_DEV"`
	LogDir           string `yaml:"log_dir" env:"LOGGING_LOG_DIR"`
	MaxAgeDays       int    `yaml:"max_age_days" env:"LOGGING_MAX_AGE_DAYS"`
	MaxSizeMB        int    `yaml:"max_size_mb" env:"LOGGING_MAX_SIZE_MB"`
	MaxBackups       int    `yaml:"max_backups" env:"LOGGING_MAX_BACKUPS"`
	AlsoLogToConsole bool   `yaml:"also_log_to_console" env:"LOGGING_ALSO_LOG_TO_CONSOLE"`
}

// Load loads configuration from a YAML file with environment variable
// overrides. An empty configFile loads defaults plus environment only.
func Load(configFile string) (*Config, error) {
	config := getDefaultConfig()

	if configFile != "" {
		if err := loadFromYAML(config, configFile); err != nil {
			return nil, fmt.Errorf("failed to load config from YAML: %w", err)
		}
	}

	if err := overrideWithEnv(config); err != nil {
		return nil, fmt.Errorf("failed to override with environment variables: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// getDefaultConfig returns a configuration with default values
func getDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8080",
			Interface:    "0.0.0.0",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Redis: RedisConfig{
			Host:     "localhost",
			Port:     "6379",
			Password: "",
			DB:       0,
		},
		RateLimit: RateLimitConfig{
			Store:         "memory",
			Window:        15 * time.Minute,
			Limit:         100,
			SweepInterval: 5 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:            "info",
			LogDir:           "logs",
			MaxAgeDays:       7,
			MaxSizeMB:        100,
			MaxBackups:       10,
			AlsoLogToConsole: true,
		},
	}
}

// loadFromYAML loads configuration from a YAML file
func loadFromYAML(config *Config, configFile string) (err error) {
	data, err := os.ReadFile(configFile) // #nosec G304 - path comes from the operator
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// overrideWithEnv walks the config structs and applies values from
// environment variables named by `env` tags.
func overrideWithEnv(config *Config) error {
	return overrideStructWithEnv(reflect.ValueOf(config).Elem())
}

func overrideStructWithEnv(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if field.Kind() == reflect.Struct {
			if err := overrideStructWithEnv(field); err != nil {
				return err
			}
			continue
		}

		envTag := fieldType.Tag.Get("env")
		if envTag == "" {
			continue
		}

		envValue := envutil.Get(envTag, "")
		if envValue == "" {
			continue
		}

		if err := setFieldFromString(field, envValue); err != nil {
			return fmt.Errorf("invalid value for %s: %w", envTag, err)
		}
	}
	return nil
}

func setFieldFromString(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return err
			}
			field.SetInt(int64(d))
			return nil
		}
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(n)
	default:
		return fmt.Errorf("unsupported field kind %s", field.Kind())
	}
	return nil
}

// Validate checks the configuration for invalid combinations
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("server port must be numeric: %q", c.Server.Port)
	}
	if c.RateLimit.Store != "memory" && c.RateLimit.Store != "redis" {
		return fmt.Errorf("rate_limit.store must be \"memory\" or \"redis\", got %q", c.RateLimit.Store)
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("rate_limit.window must be positive")
	}
	if c.RateLimit.Limit <= 0 {
		return fmt.Errorf("rate_limit.limit must be positive")
	}
	return nil
}
