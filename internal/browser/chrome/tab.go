package chrome

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/inspector"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"github.com/law-makers/jobscout/internal/browser"
	"github.com/law-makers/jobscout/internal/content"
	"github.com/law-makers/jobscout/internal/dom"
	"github.com/law-makers/jobscout/internal/retry"
)

// navigation tracks one in-flight page load
type navigation struct {
	done chan struct{}
	err  error
}

type tab struct {
	ctx     context.Context
	cancel  context.CancelFunc
	handler browser.Handler
	timeout time.Duration
	retry   retry.Config
	id      string

	closed    chan struct{}
	closeOnce sync.Once

	mu  sync.Mutex
	nav *navigation
}

func newTab(ctx context.Context, cancel context.CancelFunc, h browser.Handler, timeout time.Duration, rc retry.Config) *tab {
	t := &tab{
		ctx:     ctx,
		cancel:  cancel,
		handler: h,
		timeout: timeout,
		retry:   rc,
		closed:  make(chan struct{}),
	}
	if c := chromedp.FromContext(ctx); c != nil && c.Target != nil {
		t.id = string(c.Target.TargetID)
	}
	return t
}

// watch turns target detach/destroy events into the Closed signal
func (t *tab) watch() {
	targetID := target.ID(t.id)

	chromedp.ListenTarget(t.ctx, func(ev interface{}) {
		if _, ok := ev.(*inspector.EventDetached); ok {
			t.markClosed()
		}
	})
	chromedp.ListenBrowser(t.ctx, func(ev interface{}) {
		if e, ok := ev.(*target.EventTargetDestroyed); ok && e.TargetID == targetID {
			t.markClosed()
		}
	})
	go func() {
		<-t.ctx.Done()
		t.markClosed()
	}()
}

func (t *tab) markClosed() {
	t.closeOnce.Do(func() {
		log.Debug().Str("tab", t.id).Msg("Tab closed")
		close(t.closed)
	})
}

func (t *tab) isClosed() bool {
	select {
	case <-t.closed:
		return true
	default:
		return false
	}
}

func (t *tab) ID() string { return t.id }

func (t *tab) Closed() <-chan struct{} { return t.closed }

// run executes actions on the tab, bounded by the tab timeout and ctx
func (t *tab) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithTimeout(t.ctx, t.timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(runCtx, actions...)
}

func (t *tab) Navigate(ctx context.Context, url string) error {
	if t.isClosed() {
		return browser.ErrTabClosed
	}

	nav := &navigation{done: make(chan struct{})}
	t.mu.Lock()
	t.nav = nav
	t.mu.Unlock()

	go func() {
		defer close(nav.done)
		nav.err = retry.WithRetry(ctx, t.retry, func() error {
			if t.isClosed() {
				return retry.Permanent(browser.ErrTabClosed)
			}
			return t.run(ctx, chromedp.Navigate(url))
		})
	}()
	return nil
}

func (t *tab) WaitLoad(ctx context.Context) error {
	t.mu.Lock()
	nav := t.nav
	t.mu.Unlock()
	if nav == nil {
		return nil
	}

	select {
	case <-nav.done:
		if nav.err != nil && t.isClosed() {
			return browser.ErrTabClosed
		}
		if nav.err != nil {
			return fmt.Errorf("page load failed: %w", nav.err)
		}
		return nil
	case <-t.closed:
		return browser.ErrTabClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Send snapshots the rendered DOM and answers req against it
func (t *tab) Send(ctx context.Context, req content.Request) (*content.Response, error) {
	if t.isClosed() {
		return nil, browser.ErrTabClosed
	}

	var location, html string
	err := t.run(ctx,
		chromedp.Location(&location),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		if t.isClosed() {
			return nil, browser.ErrTabClosed
		}
		return nil, fmt.Errorf("failed to read page: %w", err)
	}

	page, err := dom.Parse(location, html)
	if err != nil {
		return nil, err
	}
	resp := t.handler.Handle(page, req)
	return &resp, nil
}

func (t *tab) Close() error {
	t.cancel()
	t.markClosed()
	return nil
}
