// Package static provides tabs that fetch server-rendered pages over HTTP
// with colly instead of driving a real browser.
package static

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/rs/zerolog/log"

	"github.com/law-makers/jobscout/internal/browser"
	"github.com/law-makers/jobscout/internal/content"
	"github.com/law-makers/jobscout/internal/dom"
)

// DefaultUserAgent is sent when Options.UserAgent is empty
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Options configures the static controller
type Options struct {
	UserAgent string
	Timeout   time.Duration
	Headers   map[string]string
}

// Controller opens colly-backed tabs
type Controller struct {
	opts    Options
	handler browser.Handler
	seq     atomic.Int64

	mu     sync.Mutex
	tabs   map[string]*tab
	closed bool
}

// New creates a static controller
func New(opts Options, handler browser.Handler) *Controller {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Controller{
		opts:    opts,
		handler: handler,
		tabs:    make(map[string]*tab),
	}
}

// Open creates a tab and starts fetching url
func (c *Controller) Open(ctx context.Context, url string) (browser.Tab, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, browser.ErrControllerClose
	}
	t := &tab{
		id:     fmt.Sprintf("static-%d", c.seq.Add(1)),
		ctrl:   c,
		closed: make(chan struct{}),
	}
	c.tabs[t.id] = t
	c.mu.Unlock()

	log.Debug().Str("tab", t.id).Str("url", url).Msg("Tab opened")

	if err := t.Navigate(ctx, url); err != nil {
		_ = t.Close()
		return nil, err
	}
	return t, nil
}

// Close closes every open tab
func (c *Controller) Close() error {
	c.mu.Lock()
	c.closed = true
	tabs := make([]*tab, 0, len(c.tabs))
	for _, t := range c.tabs {
		tabs = append(tabs, t)
	}
	c.mu.Unlock()

	for _, t := range tabs {
		_ = t.Close()
	}
	return nil
}

func (c *Controller) forget(id string) {
	c.mu.Lock()
	delete(c.tabs, id)
	c.mu.Unlock()
}

func (c *Controller) newCollector(ctx context.Context) *colly.Collector {
	col := colly.NewCollector(
		colly.UserAgent(c.opts.UserAgent),
		colly.AllowURLRevisit(),
	)
	col.SetRequestTimeout(c.opts.Timeout)

	col.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
			return
		}
		for k, v := range c.opts.Headers {
			r.Headers.Set(k, v)
		}
	})
	return col
}

// fetch loads url and returns the final location and body
func (c *Controller) fetch(ctx context.Context, url string) (string, []byte, error) {
	col := c.newCollector(ctx)

	var (
		finalURL string
		body     []byte
		status   int
		fetchErr error
	)
	col.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		finalURL = r.Request.URL.String()
		body = append([]byte(nil), r.Body...)
	})
	col.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}
		fetchErr = err
	})

	if err := col.Request(http.MethodGet, url, nil, nil, nil); err != nil {
		return "", nil, err
	}
	if ctx.Err() != nil {
		return "", nil, ctx.Err()
	}
	if fetchErr != nil {
		return "", nil, fmt.Errorf("fetch %s (status %d): %w", url, status, fetchErr)
	}
	if status >= 400 {
		return "", nil, fmt.Errorf("fetch %s: status %d", url, status)
	}
	return finalURL, body, nil
}

type loaded struct {
	done chan struct{}
	url  string
	body []byte
	err  error
}

type tab struct {
	id   string
	ctrl *Controller

	closed    chan struct{}
	closeOnce sync.Once

	mu   sync.Mutex
	page *loaded
}

func (t *tab) ID() string { return t.id }

func (t *tab) Closed() <-chan struct{} { return t.closed }

func (t *tab) isClosed() bool {
	select {
	case <-t.closed:
		return true
	default:
		return false
	}
}

func (t *tab) Navigate(ctx context.Context, url string) error {
	if t.isClosed() {
		return browser.ErrTabClosed
	}

	p := &loaded{done: make(chan struct{})}
	t.mu.Lock()
	t.page = p
	t.mu.Unlock()

	go func() {
		defer close(p.done)
		p.url, p.body, p.err = t.ctrl.fetch(ctx, url)
	}()
	return nil
}

func (t *tab) current() *loaded {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.page
}

func (t *tab) WaitLoad(ctx context.Context) error {
	p := t.current()
	if p == nil {
		return nil
	}
	select {
	case <-p.done:
		return p.err
	case <-t.closed:
		return browser.ErrTabClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *tab) Send(ctx context.Context, req content.Request) (*content.Response, error) {
	if t.isClosed() {
		return nil, browser.ErrTabClosed
	}
	if err := t.WaitLoad(ctx); err != nil {
		return nil, err
	}
	p := t.current()
	if p == nil {
		return nil, fmt.Errorf("tab %s has no page loaded", t.id)
	}

	page, err := dom.Parse(p.url, string(p.body))
	if err != nil {
		return nil, err
	}
	resp := t.ctrl.handler.Handle(page, req)
	return &resp, nil
}

func (t *tab) Close() error {
	t.closeOnce.Do(func() {
		close(t.closed)
		t.ctrl.forget(t.id)
		log.Debug().Str("tab", t.id).Msg("Tab closed")
	})
	return nil
}
