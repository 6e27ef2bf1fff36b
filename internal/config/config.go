// Package config loads jobscout settings from defaults, a YAML file, a .env
// file, JOBSCOUT_* environment variables and command line flags, in that
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string `yaml:"log_level"`
	JSONLog  bool   `yaml:"json_log"`

	// Browser
	Engine     string        `yaml:"engine"`
	Headless   bool          `yaml:"headless"`
	ChromePath string        `yaml:"chrome_path"`
	Timeout    time.Duration `yaml:"timeout"`
	UserAgent  string        `yaml:"user_agent"`
	Headers    []string      `yaml:"headers"`

	// Pagination
	SettleDelay    time.Duration `yaml:"settle_delay"`
	InterPageDelay time.Duration `yaml:"inter_page_delay"`
	MaxPages       int           `yaml:"max_pages"`
	Parallel       int           `yaml:"parallel"`

	// Rate limiting, per job site host
	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`

	// Search
	Keywords    string   `yaml:"keywords"`
	Location    string   `yaml:"location"`
	SeekDomains []string `yaml:"seek_domains"`

	// Storage and companion app
	StateDir       string `yaml:"state_dir"`
	DevBackendURL  string `yaml:"dev_backend_url"`
	ProdBackendURL string `yaml:"prod_backend_url"`

	// Local API
	ListenAddr string `yaml:"listen_addr"`

	LogoWorkers int `yaml:"logo_workers"`
}

// Defaults returns the built-in configuration
func Defaults() *Config {
	stateDir := DefaultStateDirName
	if home, err := os.UserHomeDir(); err == nil {
		stateDir = filepath.Join(home, DefaultStateDirName)
	}
	return &Config{
		LogLevel:       DefaultLogLevel,
		JSONLog:        DefaultJSONLog,
		Engine:         DefaultEngine,
		Headless:       DefaultHeadless,
		Timeout:        DefaultTimeout,
		UserAgent:      DefaultUserAgent,
		SettleDelay:    DefaultSettleDelay,
		InterPageDelay: DefaultInterPageDelay,
		MaxPages:       DefaultMaxPages,
		Parallel:       DefaultParallel,
		RateLimitRPS:   DefaultRateLimitRPS,
		RateLimitBurst: DefaultRateLimitBurst,
		Keywords:       DefaultKeywords,
		StateDir:       stateDir,
		DevBackendURL:  DefaultDevBackendURL,
		ProdBackendURL: DefaultProdBackendURL,
		ListenAddr:     DefaultListenAddr,
		LogoWorkers:    DefaultLogoWorkers,
	}
}

// StatePath is the file backing the key-value state store
func (c *Config) StatePath() string {
	return filepath.Join(c.StateDir, "state.json")
}

// Load builds a Config by combining defaults, an optional config file, a .env
// file, environment variables, and CLI flags. Caller should pass the command
// being run so its flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := Defaults()

	path := os.Getenv(EnvPrefix + "CONFIG")
	if cmd != nil {
		if f := cmd.Flags().Lookup("config"); f != nil && f.Value.String() != "" {
			path = f.Value.String()
		}
	}
	if path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := applyFlags(cfg, cmd); err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}
