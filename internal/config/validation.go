package config

import (
	"fmt"
	"strings"

	urlutil "github.com/law-makers/jobscout/internal/utils/url"
)

func validate(c *Config) error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	if c.Engine != EngineChrome && c.Engine != EngineStatic {
		return fmt.Errorf("engine must be %q or %q, got %q", EngineChrome, EngineStatic, c.Engine)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0")
	}
	if c.SettleDelay < 0 || c.InterPageDelay < 0 {
		return fmt.Errorf("delays must not be negative")
	}
	if c.MaxPages < 0 {
		return fmt.Errorf("max pages must be >= 0")
	}
	if c.Parallel < 1 || c.Parallel > MaxParallel {
		return fmt.Errorf("parallel must be between 1 and %d", MaxParallel)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit and burst must be > 0")
	}
	if c.StateDir == "" {
		return fmt.Errorf("state dir must be set")
	}
	if c.ProdBackendURL == "" {
		return fmt.Errorf("production backend URL must be set")
	}
	for _, u := range []string{c.DevBackendURL, c.ProdBackendURL} {
		if u == "" {
			continue
		}
		if err := urlutil.ValidateURL(u); err != nil {
			return fmt.Errorf("backend URL %q: %w", u, err)
		}
	}
	if c.LogoWorkers < 1 {
		return fmt.Errorf("logo workers must be >= 1")
	}
	return nil
}
