// Package config reads the optional YAML configuration of the inv tool.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Config is the inv configuration file.
type Config struct {
	LedgerFile string        `yaml:"ledger_file"` // JSONL ledger path
	MarketDir  string        `yaml:"market_dir"`  // folder of yearly price files
	Currency   string        `yaml:"currency"`    // reporting currency code, display only
	Yahoo      YahooConfig   `yaml:"yahoo"`
	Gemini     GeminiConfig  `yaml:"gemini"`
	Logging    LoggingConfig `yaml:"logging"`
}

// YahooConfig configures the price feed.
type YahooConfig struct {
	BaseURL     string `yaml:"base_url"`
	CacheDir    string `yaml:"cache_dir"` // empty disables the response cache
	Concurrency int    `yaml:"concurrency"`
}

// GeminiConfig configures the insight generator.
type GeminiConfig struct {
	Model     string  `yaml:"model"`
	APIKeyEnv string  `yaml:"api_key_env"` // name of the environment variable holding the key
	MaxTokens int32   `yaml:"max_tokens"`
	Temp      float32 `yaml:"temperature"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level      string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format     string `yaml:"format"` // "text", "json"
	File       string `yaml:"file"`   // rotating log file, stderr if empty
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

// Default returns the configuration used when there is no file.
func Default() *Config {
	return &Config{
		LedgerFile: "ledger.jsonl",
		MarketDir:  ".market",
		Currency:   "USD",
		Yahoo: YahooConfig{
			BaseURL:     "https://query1.finance.yahoo.com",
			CacheDir:    os.TempDir(),
			Concurrency: 4,
		},
		Gemini: GeminiConfig{
			Model:     "gemini-2.5-flash",
			APIKeyEnv: "GEMINI_API_KEY",
			MaxTokens: 1024,
			Temp:      0.7,
		},
		Logging: LoggingConfig{
			Level:      "warn",
			Format:     "text",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

// Load reads the configuration file at path on top of the defaults.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %q: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs error
	if c.LedgerFile == "" {
		errs = errors.Join(errs, errors.New("ledger_file is required"))
	}
	if c.MarketDir == "" {
		errs = errors.Join(errs, errors.New("market_dir is required"))
	}
	if c.Yahoo.Concurrency < 0 {
		errs = errors.Join(errs, fmt.Errorf("yahoo concurrency must be positive, got %d", c.Yahoo.Concurrency))
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Logging.Level) {
		errs = errors.Join(errs, fmt.Errorf("invalid log level: %s", c.Logging.Level))
	}
	if !slices.Contains([]string{"text", "json"}, c.Logging.Format) {
		errs = errors.Join(errs, fmt.Errorf("invalid log format: %s", c.Logging.Format))
	}
	return errs
}
