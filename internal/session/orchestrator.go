// Package session drives paginated scrapes of one job site inside one tab.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/law-makers/jobscout/internal/browser"
	"github.com/law-makers/jobscout/internal/content"
	"github.com/law-makers/jobscout/internal/platform"
	"github.com/law-makers/jobscout/internal/ratelimit"
	"github.com/law-makers/jobscout/internal/reqctx"
	"github.com/law-makers/jobscout/internal/state"
	urlutil "github.com/law-makers/jobscout/internal/utils/url"
	"github.com/law-makers/jobscout/pkg/models"
)

// Options tunes the page loop
type Options struct {
	// SettleDelay is waited after the first page reports loaded, for
	// client-side rendering to finish
	SettleDelay time.Duration
	// InterPageDelay is waited after each following page loads
	InterPageDelay time.Duration
	// MaxPages stops the session after that many pages. Zero means no limit.
	MaxPages int
	// CloseTab closes the session's tab when the session ends
	CloseTab bool
}

// DefaultOptions returns the delays the browser extension used
func DefaultOptions() Options {
	return Options{
		SettleDelay:    5 * time.Second,
		InterPageDelay: 2 * time.Second,
		CloseTab:       true,
	}
}

// Orchestrator runs scrape sessions against a browser controller
type Orchestrator struct {
	ctrl     browser.Controller
	registry *platform.Registry
	store    state.Store
	limiter  ratelimit.RateLimiter
	opts     Options
}

// New creates an Orchestrator. A nil store or limiter is replaced by an
// in-memory store or an unlimited limiter.
func New(ctrl browser.Controller, registry *platform.Registry, store state.Store, limiter ratelimit.RateLimiter, opts Options) *Orchestrator {
	if store == nil {
		store = state.NewMemoryStore()
	}
	if limiter == nil {
		limiter = ratelimit.Unlimited()
	}
	return &Orchestrator{
		ctrl:     ctrl,
		registry: registry,
		store:    store,
		limiter:  limiter,
		opts:     opts,
	}
}

// Registry returns the adapter registry sessions resolve against
func (o *Orchestrator) Registry() *platform.Registry {
	return o.registry
}

// ScrapeAllPages opens a tab at initialURL and follows next-page locators
// until the last page, returning every job found, deduplicated. A closed tab,
// a cancelled ctx or a failing page end the session early with the jobs
// collected so far. The only error returned is platform.ErrUnsupportedPlatform.
func (o *Orchestrator) ScrapeAllPages(ctx context.Context, p models.Platform, initialURL string, onProgress ProgressFunc) (*Result, error) {
	if _, ok := o.registry.Lookup(p); !ok || !o.registry.Enabled(p) {
		return nil, fmt.Errorf("%w: %s", platform.ErrUnsupportedPlatform, p)
	}

	ctx = reqctx.WithSession(ctx)
	logger := reqctx.Logger(ctx).With().Str("platform", string(p)).Logger()

	r := &run{
		o:          o,
		ctx:        ctx,
		log:        logger,
		platform:   p,
		onProgress: onProgress,
		visited:    make(map[string]bool),
		result: &Result{
			ID:       reqctx.FromContext(ctx).SessionID,
			Platform: p,
		},
	}

	if err := state.SetActive(o.store, p, r.result.ID); err != nil {
		logger.Warn().Err(err).Msg("Failed to set scraping flag")
	}
	defer func() {
		if err := state.ClearActive(o.store, p, r.result.ID); err != nil {
			logger.Warn().Err(err).Msg("Failed to clear scraping flag")
		}
	}()

	start := time.Now()
	r.loop(initialURL)

	r.result.Jobs = models.Dedupe(r.jobs)
	r.result.Duration = time.Since(start)

	logger.Info().
		Str("outcome", string(r.result.Outcome)).
		Int("pages", r.result.Pages).
		Int("jobs", len(r.result.Jobs)).
		Dur("duration", r.result.Duration).
		Msg("Scrape session finished")

	return r.result, nil
}

// run is the mutable state of one session
type run struct {
	o          *Orchestrator
	ctx        context.Context
	log        zerolog.Logger
	platform   models.Platform
	onProgress ProgressFunc

	phase   Phase
	page    int
	jobs    []models.Job
	visited map[string]bool
	result  *Result
}

func (r *run) transition(next Phase) {
	r.log.Debug().Int("page", r.page).Str("from", r.phase.String()).Str("to", next.String()).Msg("Session transition")
	r.phase = next
}

func (r *run) progress() {
	if r.onProgress == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Warn().Interface("panic", rec).Msg("Progress callback panicked")
		}
	}()
	r.onProgress(r.page, r.platform)
}

// finish ends the session cleanly
func (r *run) finish(outcome Outcome) {
	r.result.Outcome = outcome
	r.transition(PhaseDone)
}

// stop ends the session because of err, classifying it as tab closure,
// cancellation or a page failure
func (r *run) stop(code ErrorCode, msg string, err error) {
	switch {
	case errors.Is(err, browser.ErrTabClosed):
		r.log.Info().Int("page", r.page).Msg("Tab closed, keeping collected jobs")
		r.result.Outcome = OutcomeTabClosed
		r.transition(PhaseTabClosed)
	case r.ctx.Err() != nil:
		r.log.Info().Int("page", r.page).Msg("Session cancelled, keeping collected jobs")
		r.result.Outcome = OutcomeCancelled
		r.transition(PhaseTabClosed)
	default:
		serr := NewScrapeError(code, msg, err).WithDetail("page", r.page)
		r.log.Warn().Err(serr).Int("page", r.page).Msg("Page failed, stopping pagination")
		r.result.Outcome = OutcomePageFailed
		r.result.Err = serr
		r.transition(PhaseDone)
	}
}

func (r *run) loop(initialURL string) {
	o := r.o
	if err := urlutil.ValidateURL(initialURL); err != nil {
		r.stop(ErrCodeValidation, "invalid start URL", err)
		return
	}

	r.page = 1
	r.visited[urlutil.Canonical(initialURL)] = true
	r.transition(PhaseLoading)

	if err := o.limiter.Wait(r.ctx, initialURL); err != nil {
		r.stop(ErrCodeNavigate, "rate limit wait", err)
		return
	}
	tab, err := o.ctrl.Open(r.ctx, initialURL)
	if err != nil {
		r.stop(ErrCodeOpenTab, "failed to open tab", err)
		return
	}
	if o.opts.CloseTab {
		defer tab.Close()
	}
	r.log.Debug().Str("tab", tab.ID()).Str("url", initialURL).Msg("Session tab opened")

	for {
		r.progress()

		delay := o.opts.InterPageDelay
		if r.page == 1 {
			delay = o.opts.SettleDelay
		}
		if err := waitLoad(r.ctx, tab, delay); err != nil {
			r.stop(ErrCodePageLoad, "page did not load", err)
			return
		}

		r.transition(PhaseScraping)
		resp, err := send(r.ctx, tab, content.Request{Action: content.ActionScrapeJobs, Platform: r.platform})
		if err != nil {
			r.stop(ErrCodePageScrape, "scrape request failed", err)
			return
		}
		if resp == nil || !resp.Success {
			r.stop(ErrCodePageScrape, "page reported failure", responseError(resp))
			return
		}

		r.jobs = append(r.jobs, resp.Jobs...)
		r.result.Pages = r.page
		r.log.Info().Int("page", r.page).Int("jobs", len(resp.Jobs)).Msg("Page scraped")

		next := resp.NextPage
		if next == "" {
			r.finish(OutcomeCompleted)
			return
		}
		if o.opts.MaxPages > 0 && r.page >= o.opts.MaxPages {
			r.log.Info().Int("max_pages", o.opts.MaxPages).Msg("Page limit reached")
			r.finish(OutcomePageLimit)
			return
		}
		key := urlutil.Canonical(next)
		if r.visited[key] {
			r.log.Warn().Str("url", next).Msg("Next page already visited, ending session")
			r.finish(OutcomeCompleted)
			return
		}
		r.visited[key] = true

		r.page++
		r.transition(PhaseLoading)
		if err := o.limiter.Wait(r.ctx, next); err != nil {
			r.stop(ErrCodeNavigate, "rate limit wait", err)
			return
		}
		if err := tab.Navigate(r.ctx, next); err != nil {
			r.stop(ErrCodeNavigate, "navigation failed", err)
			return
		}
	}
}

// await runs fn and returns its result unless the tab closes or ctx ends
// first. fn's context is cancelled once await returns.
func await[T any](ctx context.Context, tab browser.Tab, fn func(context.Context) (T, error)) (T, error) {
	type outcome struct {
		v   T
		err error
	}

	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := make(chan outcome, 1)
	go func() {
		var out outcome
		defer func() {
			if rec := recover(); rec != nil {
				out.err = fmt.Errorf("panic: %v", rec)
			}
			ch <- out
		}()
		out.v, out.err = fn(callCtx)
	}()

	var zero T
	select {
	case out := <-ch:
		return out.v, out.err
	case <-tab.Closed():
		return zero, browser.ErrTabClosed
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// waitLoad blocks until the tab's navigation completes, then pauses for delay
func waitLoad(ctx context.Context, tab browser.Tab, delay time.Duration) error {
	_, err := await(ctx, tab, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, tab.WaitLoad(ctx)
	})
	if err != nil {
		return err
	}
	return pause(ctx, tab, delay)
}

func send(ctx context.Context, tab browser.Tab, req content.Request) (*content.Response, error) {
	return await(ctx, tab, func(ctx context.Context) (*content.Response, error) {
		return tab.Send(ctx, req)
	})
}

// pause sleeps for d unless the tab closes or ctx ends first
func pause(ctx context.Context, tab browser.Tab, d time.Duration) error {
	if d <= 0 {
		select {
		case <-tab.Closed():
			return browser.ErrTabClosed
		default:
			return nil
		}
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-tab.Closed():
		return browser.ErrTabClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}
