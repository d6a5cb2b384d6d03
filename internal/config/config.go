// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/spf13/viper"
)

// FileName is the base name looked up in the working directory when no path is given.
const FileName = "resume_builder"

// EnvPrefix prefixes every environment override, e.g. RESUME_STORAGE.
const EnvPrefix = "RESUME"

// Environments accepted by Env.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config represents the application configuration. Values come from, in increasing
// precedence: defaults, a resume_builder.{json,yaml} file and RESUME_* variables.
type Config struct {
	Env     string `mapstructure:"env"`
	Verbose bool   `mapstructure:"verbose"`

	// Storage
	Storage            string `mapstructure:"storage"`  // file, postgres, redis or memory
	DataDir            string `mapstructure:"data_dir"` // resume-storage.json and the credential live here
	DatabaseURL        string `mapstructure:"database_url"`
	RedisAddr          string `mapstructure:"redis_addr"`
	RedisPassword      string `mapstructure:"redis_password"`
	GapTolerantRemoval bool   `mapstructure:"gap_tolerant_removal"`

	// Text generation
	Provider string `mapstructure:"provider"`
	Model    string `mapstructure:"model"`
	BaseURL  string `mapstructure:"base_url"`

	// Export
	ChromePath string `mapstructure:"chrome_path"`
	OutputDir  string `mapstructure:"output_dir"`

	// Server
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Env:            EnvDevelopment,
		Storage:        string(storage.BackendFile),
		DataDir:        DefaultDataDir(),
		Provider:       string(llm.ProviderOpenAI),
		OutputDir:      ".",
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// DefaultDataDir is <user config dir>/resume-builder, or .resume-builder when the
// user config dir is unknown.
func DefaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".resume-builder"
	}
	return filepath.Join(dir, "resume-builder")
}

// LoadConfig loads configuration from path, or from resume_builder.{json,yaml} in the
// working directory when path is empty. A missing default file is not an error.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	defaults := Defaults()
	v.SetDefault("env", defaults.Env)
	v.SetDefault("verbose", defaults.Verbose)
	v.SetDefault("storage", defaults.Storage)
	v.SetDefault("data_dir", defaults.DataDir)
	v.SetDefault("database_url", "")
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("gap_tolerant_removal", false)
	v.SetDefault("provider", defaults.Provider)
	v.SetDefault("model", "")
	v.SetDefault("base_url", "")
	v.SetDefault("chrome_path", "")
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("port", defaults.Port)
	v.SetDefault("allowed_origins", defaults.AllowedOrigins)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Conventional names without the prefix
	_ = v.BindEnv("database_url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("redis_addr", EnvPrefix+"_REDIS_ADDR", "REDIS_ADDR")
	_ = v.BindEnv("redis_password", EnvPrefix+"_REDIS_PASSWORD", "REDIS_PASSWORD")
	_ = v.BindEnv("chrome_path", EnvPrefix+"_CHROME_PATH", "CHROME_PATH")
	_ = v.BindEnv("port", EnvPrefix+"_PORT", "PORT")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) || errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	switch c.Env {
	case "", EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("config error: 'env' must be %q or %q", EnvDevelopment, EnvProduction)
	}

	switch storage.Backend(c.Storage) {
	case "", storage.BackendFile, storage.BackendMemory:
	case storage.BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for the postgres storage backend")
		}
	case storage.BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("config error: 'redis_addr' is required for the redis storage backend")
		}
	default:
		return fmt.Errorf("config error: unknown storage backend %q", c.Storage)
	}

	if c.Provider != "" {
		if _, err := llm.ParseProvider(c.Provider); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome executable not found: %s", c.ChromePath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values beneath CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Env == "" {
		result.Env = defaults.Env
	}
	if result.Storage == "" {
		result.Storage = defaults.Storage
	}
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisAddr == "" {
		result.RedisAddr = defaults.RedisAddr
	}
	if result.RedisPassword == "" {
		result.RedisPassword = defaults.RedisPassword
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}

	// Int and slice fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if len(result.AllowedOrigins) == 0 {
		result.AllowedOrigins = defaults.AllowedOrigins
	}

	// Bool fields: cannot distinguish unset from false, so true wins
	result.Verbose = result.Verbose || defaults.Verbose
	result.GapTolerantRemoval = result.GapTolerantRemoval || defaults.GapTolerantRemoval

	return result
}

// StorageOptions returns the options for storage.Open.
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend:     storage.Backend(c.Storage),
		DataDir:     c.DataDir,
		DatabaseURL: c.DatabaseURL,
		RedisAddr:   c.RedisAddr,
		RedisPass:   c.RedisPassword,
	}
}

// LLMConfig returns the text-generation provider configuration.
func (c *Config) LLMConfig() *llm.Config {
	out := llm.DefaultConfig()
	if c.Provider == string(llm.ProviderGemini) {
		out = llm.DefaultGeminiConfig()
	}
	if c.Model != "" {
		out = out.WithModel(c.Model)
	}
	out.BaseURL = c.BaseURL
	return out
}
