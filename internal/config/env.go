package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// applyEnv overrides cfg from JOBSCOUT_* variables
func applyEnv(cfg *Config) error {
	var errs []string

	str := func(name string, dst *string) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	boolean := func(name string, dst *bool) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s%s: %v", EnvPrefix, name, err))
				return
			}
			*dst = b
		}
	}
	integer := func(name string, dst *int) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s%s: %v", EnvPrefix, name, err))
				return
			}
			*dst = n
		}
	}
	float := func(name string, dst *float64) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok && v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s%s: %v", EnvPrefix, name, err))
				return
			}
			*dst = f
		}
	}
	duration := func(name string, dst *time.Duration) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s%s: %v", EnvPrefix, name, err))
				return
			}
			*dst = d
		}
	}
	list := func(name string, dst *[]string) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok && v != "" {
			var out []string
			for _, s := range strings.Split(v, ",") {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
			*dst = out
		}
	}

	str("LOG_LEVEL", &cfg.LogLevel)
	boolean("JSON_LOG", &cfg.JSONLog)
	str("ENGINE", &cfg.Engine)
	boolean("HEADLESS", &cfg.Headless)
	str("CHROME_PATH", &cfg.ChromePath)
	duration("TIMEOUT", &cfg.Timeout)
	str("USER_AGENT", &cfg.UserAgent)
	duration("SETTLE_DELAY", &cfg.SettleDelay)
	duration("INTER_PAGE_DELAY", &cfg.InterPageDelay)
	integer("MAX_PAGES", &cfg.MaxPages)
	integer("PARALLEL", &cfg.Parallel)
	float("RATE_LIMIT_RPS", &cfg.RateLimitRPS)
	integer("RATE_LIMIT_BURST", &cfg.RateLimitBurst)
	str("KEYWORDS", &cfg.Keywords)
	str("LOCATION", &cfg.Location)
	list("SEEK_DOMAINS", &cfg.SeekDomains)
	str("STATE_DIR", &cfg.StateDir)
	str("DEV_BACKEND_URL", &cfg.DevBackendURL)
	str("PROD_BACKEND_URL", &cfg.ProdBackendURL)
	str("LISTEN_ADDR", &cfg.ListenAddr)
	integer("LOGO_WORKERS", &cfg.LogoWorkers)

	if len(errs) > 0 {
		return fmt.Errorf("invalid environment: %s", strings.Join(errs, "; "))
	}
	return nil
}
