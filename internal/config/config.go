// Package config loads runtime settings from defaults, an optional YAML file
// and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/robfig/cron/v3"
)

const ConfigPathEnvVar = "CONFIG_PATH"

const minSecretKeyLength = 32

var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
}

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

var (
	ErrConfigInvalid     = errors.New("config invalid")
	ErrSecretKeyMissing  = errors.New("SECRET_KEY is required")
	ErrSecretKeyInsecure = errors.New("SECRET_KEY uses an insecure placeholder")
	ErrSecretKeyTooShort = errors.New("SECRET_KEY must be at least 32 characters")
)

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Analytics AnalyticsConfig `koanf:"analytics"`
	Recalc    RecalcConfig    `koanf:"recalc"`
	Metrics   MetricsConfig   `koanf:"metrics"`
}

type ServerConfig struct {
	Port     string `koanf:"port"`
	Timezone string `koanf:"timezone"`
}

type DatabaseConfig struct {
	Path string `koanf:"path"`
}

type SecurityConfig struct {
	SecretKey string        `koanf:"secret_key"`
	TokenTTL  time.Duration `koanf:"token_ttl"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type AnalyticsConfig struct {
	MinCyclesForPrediction int `koanf:"min_cycles_for_prediction"`
	DefaultCycleLength     int `koanf:"default_cycle_length"`
}

type RecalcConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Schedule string `koanf:"schedule"`
}

type MetricsConfig struct {
	Enabled bool `koanf:"enabled"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:     "8080",
			Timezone: "UTC",
		},
		Database: DatabaseConfig{
			Path: filepath.Join("data", "ovumcy.db"),
		},
		Security: SecurityConfig{
			TokenTTL: 7 * 24 * time.Hour,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Analytics: AnalyticsConfig{
			MinCyclesForPrediction: 3,
			DefaultCycleLength:     28,
		},
		Recalc: RecalcConfig{
			Enabled:  true,
			Schedule: "0 3 * * *",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// envMappings lists the environment variables that are read. Anything else in
// the environment is ignored.
var envMappings = map[string]string{
	"PORT":                      "server.port",
	"TZ":                        "server.timezone",
	"DB_PATH":                   "database.path",
	"SECRET_KEY":                "security.secret_key",
	"TOKEN_TTL":                 "security.token_ttl",
	"LOG_LEVEL":                 "logging.level",
	"LOG_FORMAT":                "logging.format",
	"MIN_CYCLES_FOR_PREDICTION": "analytics.min_cycles_for_prediction",
	"DEFAULT_CYCLE_LENGTH":      "analytics.default_cycle_length",
	"RECALC_ENABLED":            "recalc.enabled",
	"RECALC_SCHEDULE":           "recalc.schedule",
	"METRICS_ENABLED":           "metrics.enabled",
}

func envTransformFunc(key string) string {
	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}

// Load reads .env when present, then layers defaults, the config file and the
// environment, and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func (cfg *Config) Validate() error {
	secret, err := ValidateSecretKey(cfg.Security.SecretKey)
	if err != nil {
		return err
	}
	cfg.Security.SecretKey = secret

	port, err := ValidatePort(cfg.Server.Port)
	if err != nil {
		return err
	}
	cfg.Server.Port = port

	if _, err := time.LoadLocation(cfg.Server.Timezone); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrConfigInvalid, cfg.Server.Timezone)
	}
	if cfg.Security.TokenTTL <= 0 {
		return fmt.Errorf("%w: token ttl must be positive", ErrConfigInvalid)
	}
	if cfg.Analytics.MinCyclesForPrediction < 2 {
		return fmt.Errorf("%w: min cycles for prediction must be at least 2", ErrConfigInvalid)
	}
	if cfg.Analytics.DefaultCycleLength <= 0 {
		return fmt.Errorf("%w: default cycle length must be positive", ErrConfigInvalid)
	}
	if cfg.Recalc.Enabled {
		if _, err := cron.ParseStandard(cfg.Recalc.Schedule); err != nil {
			return fmt.Errorf("%w: recalc schedule %q: %v", ErrConfigInvalid, cfg.Recalc.Schedule, err)
		}
	}
	switch strings.ToLower(cfg.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("%w: log format must be json or console", ErrConfigInvalid)
	}
	return nil
}

// Location returns the configured timezone. Validate has already checked it.
func (cfg *Config) Location() *time.Location {
	location, err := time.LoadLocation(cfg.Server.Timezone)
	if err != nil {
		return time.UTC
	}
	return location
}

func ValidateSecretKey(raw string) (string, error) {
	secret := strings.TrimSpace(raw)
	if secret == "" {
		return "", ErrSecretKeyMissing
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return "", ErrSecretKeyInsecure
	}
	if len(secret) < minSecretKeyLength {
		return "", ErrSecretKeyTooShort
	}
	return secret, nil
}

func ValidatePort(raw string) (string, error) {
	port := strings.TrimSpace(raw)
	if port == "" {
		return "8080", nil
	}
	value, err := strconv.Atoi(port)
	if err != nil || value < 1 || value > 65535 {
		return "", fmt.Errorf("%w: invalid PORT %q", ErrConfigInvalid, raw)
	}
	return port, nil
}
