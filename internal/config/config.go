// Package config loads service configuration from defaults, an optional file and
// the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. DIAGNOSTIC_SERVER_PORT.
const EnvPrefix = "DIAGNOSTIC"

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Narrative NarrativeConfig `mapstructure:"narrative"`
	Log       LogConfig       `mapstructure:"log"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	// Top is the default number of recommendations in a report.
	Top int `mapstructure:"top" validate:"gte=0,lte=7"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins" validate:"min=1"`
}

// NarrativeConfig configures the narrative fallback chain.
type NarrativeConfig struct {
	// APIKey enables the direct model tier and the /api/analyze endpoint.
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
	// AnalyzeURL enables the remote tier.
	AnalyzeURL string        `mapstructure:"analyze_url" validate:"omitempty,url"`
	Timeout    time.Duration `mapstructure:"timeout" validate:"gt=0"`
	// Static enables the canned fallback text.
	Static bool `mapstructure:"static"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// RateLimitConfig configures per-client token buckets.
type RateLimitConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	DefaultLimit    int           `mapstructure:"default_limit" validate:"gte=0"`
	DefaultWindow   time.Duration `mapstructure:"default_window" validate:"gt=0"`
	AnalyzeLimit    int           `mapstructure:"analyze_limit" validate:"gte=0"`
	AnalyzeWindow   time.Duration `mapstructure:"analyze_window" validate:"gt=0"`
	AnalyzeBurst    int           `mapstructure:"analyze_burst" validate:"gte=0"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	Whitelist       []string      `mapstructure:"whitelist"`
	Blacklist       []string      `mapstructure:"blacklist"`
}

// HasAPIKey reports whether a model API key is configured.
func (c *Config) HasAPIKey() bool {
	return c.Narrative.APIKey != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("narrative.api_key", "")
	v.SetDefault("narrative.model", "")
	v.SetDefault("narrative.analyze_url", "")
	v.SetDefault("narrative.timeout", 60*time.Second)
	v.SetDefault("narrative.static", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.default_limit", 300)
	v.SetDefault("rate_limit.default_window", time.Minute)
	v.SetDefault("rate_limit.analyze_limit", 10)
	v.SetDefault("rate_limit.analyze_window", time.Hour)
	v.SetDefault("rate_limit.analyze_burst", 3)
	v.SetDefault("rate_limit.cleanup_interval", 5*time.Minute)
	v.SetDefault("rate_limit.whitelist", []string{})
	v.SetDefault("rate_limit.blacklist", []string{})

	v.SetDefault("top", 3)
}

// Default returns the configuration with every default applied and no overrides.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// defaults always decode
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// LoadConfig layers defaults, the optional file at path (YAML, JSON or TOML by
// extension) and the environment, then validates the result.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("narrative.api_key", EnvPrefix+"_NARRATIVE_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind api key: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and formats.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// LoadEnvFile loads the first .env found among paths, or ./.env when none are given.
// A missing file is not an error.
func LoadEnvFile(paths ...string) (string, error) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return "", fmt.Errorf("failed to load %s: %w", p, err)
		}
		return p, nil
	}
	return "", nil
}
