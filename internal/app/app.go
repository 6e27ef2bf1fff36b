// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/law-makers/jobscout/internal/browser"
	"github.com/law-makers/jobscout/internal/browser/chrome"
	"github.com/law-makers/jobscout/internal/browser/static"
	"github.com/law-makers/jobscout/internal/config"
	"github.com/law-makers/jobscout/internal/content"
	"github.com/law-makers/jobscout/internal/credentials"
	"github.com/law-makers/jobscout/internal/downloader"
	"github.com/law-makers/jobscout/internal/jobapi"
	"github.com/law-makers/jobscout/internal/platform"
	"github.com/law-makers/jobscout/internal/ratelimit"
	"github.com/law-makers/jobscout/internal/session"
	"github.com/law-makers/jobscout/internal/state"
	"github.com/law-makers/jobscout/internal/utils/headers"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once at startup and shared across all CLI commands.
// Use Close() to ensure proper resource cleanup on shutdown.
type Application struct {
	Config      *config.Config
	Logger      *zerolog.Logger
	Store       *state.FileStore
	Registry    *platform.Registry
	RateLimiter ratelimit.RateLimiter
	Credentials *credentials.Store

	ctrlMu       sync.Mutex
	controller   browser.Controller
	orchestrator *session.Orchestrator
	startTime    time.Time
}

// New creates and initializes a new Application.
//
// It configures logging, opens the state store, builds the platform
// registry from the saved site settings and creates the per-host rate
// limiter. The browser controller is started lazily by EnsureController so
// commands that never load a page do not launch Chrome.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := SetupLogging(cfg)

	store, err := state.NewFileStore(cfg.StatePath())
	if err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}
	logger.Debug().Str("path", store.Path()).Msg("State store opened")

	settings, err := state.LoadWebsiteSettings(store)
	if err != nil {
		return nil, fmt.Errorf("failed to load site settings: %w", err)
	}
	registry := platform.Default(platform.Options{
		SeekDomains: cfg.SeekDomains,
		Disabled:    settings.Disabled(),
	})

	limiter := ratelimit.NewHostLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	logger.Debug().
		Float64("rps", cfg.RateLimitRPS).
		Int("burst", cfg.RateLimitBurst).
		Msg("Rate limiter initialized")

	app := &Application{
		Config:      cfg,
		Logger:      &logger,
		Store:       store,
		Registry:    registry,
		RateLimiter: limiter,
		Credentials: credentials.NewStore(cfg.StateDir),
		startTime:   time.Now(),
	}

	logger.Info().Msg("Application initialized successfully")
	return app, nil
}

// SetupLogging configures the global zerolog logger from cfg and returns it.
// Info logs are only shown with --verbose.
func SetupLogging(cfg *config.Config) zerolog.Logger {
	level := zerolog.WarnLevel
	switch cfg.LogLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "error":
		level = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(level)

	var w io.Writer = zerolog.ConsoleWriter{Out: os.Stderr}
	if cfg.JSONLog {
		w = os.Stderr
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()

	log.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")
	return log.Logger
}

// EnsureController lazily creates the browser controller selected by the
// engine setting.
func (a *Application) EnsureController(ctx context.Context) (browser.Controller, error) {
	if a == nil {
		return nil, fmt.Errorf("application is nil")
	}

	a.ctrlMu.Lock()
	defer a.ctrlMu.Unlock()

	if a.controller != nil {
		return a.controller, nil
	}

	handler := content.NewHandler(a.Registry)
	cfg := a.Config
	switch cfg.Engine {
	case config.EngineStatic:
		a.controller = static.New(static.Options{
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.Timeout,
			Headers:   headers.ParseHeaders(cfg.Headers),
		}, handler)
	default:
		a.controller = chrome.New(chrome.Options{
			Headless:   cfg.Headless,
			UserAgent:  cfg.UserAgent,
			ChromePath: cfg.ChromePath,
			Timeout:    cfg.Timeout,
		}, handler)
	}

	a.Logger.Info().Str("engine", cfg.Engine).Bool("headless", cfg.Headless).Msg("Browser controller initialized on demand")
	return a.controller, nil
}

// Orchestrator returns the session orchestrator, creating the controller on
// first use
func (a *Application) Orchestrator(ctx context.Context) (*session.Orchestrator, error) {
	ctrl, err := a.EnsureController(ctx)
	if err != nil {
		return nil, err
	}

	a.ctrlMu.Lock()
	defer a.ctrlMu.Unlock()
	if a.orchestrator == nil {
		cfg := a.Config
		a.orchestrator = session.New(ctrl, a.Registry, a.Store, a.RateLimiter, session.Options{
			SettleDelay:    cfg.SettleDelay,
			InterPageDelay: cfg.InterPageDelay,
			MaxPages:       cfg.MaxPages,
			CloseTab:       cfg.Engine == config.EngineStatic || cfg.Headless,
		})
	}
	return a.orchestrator, nil
}

// APIClient returns a companion app client using the saved token, if any.
// The base URL is the dev server when it is up, otherwise production.
func (a *Application) APIClient(ctx context.Context) (*jobapi.Client, error) {
	opts := []jobapi.Option{}
	token, err := a.Credentials.Load()
	switch {
	case err == nil:
		opts = append(opts, jobapi.WithToken(token))
	case !errors.Is(err, credentials.ErrNoToken):
		return nil, err
	}

	base := jobapi.ResolveBaseURL(ctx, a.Config.DevBackendURL, a.Config.ProdBackendURL)
	a.Logger.Debug().Str("base_url", base).Bool("authenticated", token != "").Msg("Companion app client ready")
	return jobapi.NewClient(base, opts...), nil
}

// LogoPool returns a worker pool for downloading company logos
func (a *Application) LogoPool() *downloader.WorkerPool {
	cfg := a.Config
	return downloader.NewWorkerPool(cfg.LogoWorkers, cfg.Timeout, cfg.UserAgent, headers.ParseHeaders(cfg.Headers))
}

// LogoDir is where downloaded logos go unless a command overrides it
func (a *Application) LogoDir() string {
	return filepath.Join(a.Config.StateDir, "logos")
}

// Close gracefully shuts down the application and all its resources.
//
// The browser controller is closed, which ends any running sessions.
// Errors are logged and do not prevent the rest of the shutdown.
func (a *Application) Close(ctx context.Context) error {
	a.Logger.Info().Msg("Shutting down application")

	a.ctrlMu.Lock()
	ctrl := a.controller
	a.controller = nil
	a.orchestrator = nil
	a.ctrlMu.Unlock()

	if ctrl != nil {
		if err := ctrl.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Error closing browser controller")
		}
	}

	uptime := time.Since(a.startTime)
	a.Logger.Info().Dur("uptime", uptime).Msg("Application shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
