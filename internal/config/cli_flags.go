package config

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	pf := cmd.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Enable debug logging")
	pf.BoolP("quiet", "q", false, "Suppress all output except errors")
	pf.Bool("json", false, "Log in JSON format")
	pf.String("config", "", "Path to a YAML configuration file")
	pf.String("timeout", "", "Timeout for one page load (e.g. 60s)")
	pf.String("user-agent", "", "Custom user agent string")
	pf.StringArrayP("header", "H", nil, "Extra request header for the static engine (\"Key: Value\")")
	pf.String("engine", "", "Browser engine: chrome or static")
	pf.Bool("headless", DefaultHeadless, "Run Chrome without a window")
	pf.String("chrome-path", "", "Path to the Chrome executable")
	pf.Int("max-pages", 0, "Stop each session after this many pages (0 = no limit)")
	pf.Int("parallel", 0, "Platforms scraped at once")
	pf.Float64("rate-limit", 0, "Navigations per second per job site")
	pf.String("state-dir", "", "Directory for state and credentials")
}

// applyFlags overrides cfg with every flag the user set explicitly
func applyFlags(cfg *Config, cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}
	flags := cmd.Flags()
	changed := func(name string) *pflag.Flag {
		if f := flags.Lookup(name); f != nil && f.Changed {
			return f
		}
		return nil
	}

	var err error
	if changed("verbose") != nil {
		cfg.LogLevel = "debug"
	}
	if changed("quiet") != nil {
		cfg.LogLevel = "error"
	}
	if changed("json") != nil {
		cfg.JSONLog, _ = flags.GetBool("json")
	}
	if f := changed("timeout"); f != nil {
		if cfg.Timeout, err = parseDurationFlag(f); err != nil {
			return err
		}
	}
	if f := changed("user-agent"); f != nil {
		cfg.UserAgent = f.Value.String()
	}
	if changed("header") != nil {
		cfg.Headers, _ = flags.GetStringArray("header")
	}
	if f := changed("engine"); f != nil {
		cfg.Engine = f.Value.String()
	}
	if changed("headless") != nil {
		cfg.Headless, _ = flags.GetBool("headless")
	}
	if f := changed("chrome-path"); f != nil {
		cfg.ChromePath = f.Value.String()
	}
	if changed("max-pages") != nil {
		cfg.MaxPages, _ = flags.GetInt("max-pages")
	}
	if changed("parallel") != nil {
		cfg.Parallel, _ = flags.GetInt("parallel")
	}
	if changed("rate-limit") != nil {
		cfg.RateLimitRPS, _ = flags.GetFloat64("rate-limit")
	}
	if f := changed("state-dir"); f != nil {
		cfg.StateDir = f.Value.String()
	}
	return nil
}

func parseDurationFlag(f *pflag.Flag) (d time.Duration, err error) {
	d, err = time.ParseDuration(f.Value.String())
	if err != nil {
		return 0, fmt.Errorf("invalid --%s: %w", f.Name, err)
	}
	return d, nil
}
