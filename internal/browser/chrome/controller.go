// Package chrome drives real Chrome tabs through the DevTools protocol.
package chrome

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"github.com/law-makers/jobscout/internal/browser"
	"github.com/law-makers/jobscout/internal/retry"
)

// Options configures the Chrome controller
type Options struct {
	Headless   bool
	UserAgent  string
	ChromePath string
	// Timeout bounds one navigation or one page snapshot
	Timeout   time.Duration
	Retry     retry.Config
	ExtraArgs []chromedp.ExecAllocatorOption
}

// Controller owns one Chrome process and opens a tab per session
type Controller struct {
	opts    Options
	handler browser.Handler

	mu            sync.Mutex
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	tabs          map[string]*tab
	closed        bool
}

// New creates a controller. Chrome is started on the first Open.
func New(opts Options, handler browser.Handler) *Controller {
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.Retry.MaxAttempts == 0 {
		opts.Retry = retry.NavigationConfig()
	}
	return &Controller{
		opts:    opts,
		handler: handler,
		tabs:    make(map[string]*tab),
	}
}

func (c *Controller) allocatorOptions() []chromedp.ExecAllocatorOption {
	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-hang-monitor", true),
		chromedp.Flag("disable-prompt-on-repost", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("metrics-recording-only", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("window-size", "1920,1080"),
	}

	if path := FindChrome(c.opts.ChromePath); path != "" {
		allocOpts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(path)}, allocOpts...)
	}
	if c.opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(c.opts.UserAgent))
	}
	if c.opts.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", "new"))
	} else {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}

	return append(allocOpts, c.opts.ExtraArgs...)
}

// start launches Chrome once. Callers hold c.mu.
func (c *Controller) start() error {
	if c.closed {
		return browser.ErrControllerClose
	}
	if c.browserCtx != nil {
		return nil
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), c.allocatorOptions()...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return fmt.Errorf("%w: %v", browser.ErrChromeNotFound, err)
	}

	c.allocCancel = allocCancel
	c.browserCtx = browserCtx
	c.browserCancel = browserCancel

	log.Info().Bool("headless", c.opts.Headless).Msg("Chrome started")
	return nil
}

// Open creates a new tab and starts loading url in it
func (c *Controller) Open(ctx context.Context, url string) (browser.Tab, error) {
	c.mu.Lock()
	if err := c.start(); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	tabCtx, cancel := chromedp.NewContext(c.browserCtx)
	c.mu.Unlock()

	// An empty Run attaches the new target
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create tab: %w", err)
	}

	t := newTab(tabCtx, cancel, c.handler, c.opts.Timeout, c.opts.Retry)
	t.watch()

	c.mu.Lock()
	c.tabs[t.ID()] = t
	c.mu.Unlock()
	go func() {
		<-t.Closed()
		c.mu.Lock()
		delete(c.tabs, t.ID())
		c.mu.Unlock()
	}()

	log.Debug().Str("tab", t.ID()).Str("url", url).Msg("Tab opened")

	if err := t.Navigate(ctx, url); err != nil {
		_ = t.Close()
		return nil, err
	}
	return t, nil
}

// Close closes every tab and stops Chrome
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	for _, t := range c.tabs {
		t.cancel()
	}
	if c.browserCancel != nil {
		c.browserCancel()
	}
	if c.allocCancel != nil {
		c.allocCancel()
	}

	log.Debug().Msg("Chrome controller closed")
	return nil
}
