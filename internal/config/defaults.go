package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel       = "info"
	DefaultJSONLog        = false
	DefaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultTimeout        = 60 * time.Second
	DefaultEngine         = EngineChrome
	DefaultHeadless       = true
	DefaultSettleDelay    = 5 * time.Second
	DefaultInterPageDelay = 2 * time.Second
	DefaultMaxPages       = 0
	DefaultRateLimitRPS   = 0.5
	DefaultRateLimitBurst = 1
	DefaultParallel       = 1
	MaxParallel           = 3
	DefaultStateDirName   = ".jobscout"
	DefaultDevBackendURL  = "http://localhost:3000"
	DefaultProdBackendURL = "https://jobjourney.me"
	DefaultKeywords       = "Full Stack"
	DefaultListenAddr     = "127.0.0.1:8787"
	DefaultLogoWorkers    = 5
)

// Engines select the browser controller
const (
	EngineChrome = "chrome"
	EngineStatic = "static"
)

// EnvPrefix prefixes every environment variable the config reads
const EnvPrefix = "JOBSCOUT_"
