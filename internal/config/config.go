// Package config loads stringvault configuration.
//
// Values come from, in increasing precedence: built-in defaults, an optional
// YAML config file, STRINGVAULT_* environment variables, and command-line
// flags bound by the CLI. The decoded config is validated against an
// embedded CUE schema.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override,
// e.g. STRINGVAULT_SERVER_PORT.
const EnvPrefix = "STRINGVAULT"

// Store drivers.
const (
	DriverSQLite = "sqlite"
	DriverBadger = "badger"
	DriverMemory = "memory"
)

// Config is the full stringvault configuration.
type Config struct {
	Log    LogConfig    `mapstructure:"log" json:"log"`
	Server ServerConfig `mapstructure:"server" json:"server"`
	Store  StoreConfig  `mapstructure:"store" json:"store"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level" json:"level"`   // debug, info, warn, error
	Format string `mapstructure:"format" json:"format"` // text, json
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Host string `mapstructure:"host" json:"host"`
	Port int    `mapstructure:"port" json:"port"`
	Mode string `mapstructure:"mode" json:"mode"` // gin mode: debug, release, test

	// RateLimitRPM is the sustained per-client request rate. Zero disables
	// rate limiting.
	RateLimitRPM   float64 `mapstructure:"rate_limit_rpm" json:"rate_limit_rpm"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst" json:"rate_limit_burst"`

	ShutdownTimeout int `mapstructure:"shutdown_timeout" json:"shutdown_timeout"` // in seconds
}

// StoreConfig selects and configures the record store backend.
type StoreConfig struct {
	Driver string `mapstructure:"driver" json:"driver"` // sqlite, badger, memory
	Path   string `mapstructure:"path" json:"path"`     // file for sqlite, directory for badger

	// CacheSize is the LRU size in front of the store. Zero disables caching.
	CacheSize int `mapstructure:"cache_size" json:"cache_size"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads configuration from path (or the default search locations when
// path is empty) using a fresh viper instance.
func Load(path string) (*Config, error) {
	return LoadFrom(viper.New(), path)
}

// LoadFrom reads configuration into v, which may already carry flag
// bindings, and returns the decoded, validated config.
func LoadFrom(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("stringvault")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.stringvault")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("unable to read config: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	// Defaults always decode.
	_ = v.Unmarshal(cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.rate_limit_rpm", 0)
	v.SetDefault("server.rate_limit_burst", 10)
	v.SetDefault("server.shutdown_timeout", 10)

	v.SetDefault("store.driver", DriverSQLite)
	v.SetDefault("store.path", "stringvault.db")
	v.SetDefault("store.cache_size", 1024)
}
