package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/law-makers/jobscout/internal/content"
	"github.com/law-makers/jobscout/internal/platform"
	"github.com/law-makers/jobscout/internal/reqctx"
	"github.com/law-makers/jobscout/pkg/models"
)

// ScrapeCurrentPage loads pageURL in a tab and scrapes that one page, returning
// its records as found. hint forces an adapter; an empty hint resolves one from
// the page URL.
func (o *Orchestrator) ScrapeCurrentPage(ctx context.Context, pageURL string, hint models.Platform) (models.ListResult, error) {
	resp, err := o.single(ctx, pageURL, content.Request{Action: content.ActionScrapeJobs, Platform: hint})
	if err != nil {
		return models.ListResult{}, err
	}
	return models.ListResult{Jobs: resp.Jobs, NextPage: resp.NextPage}, nil
}

// ScrapeDetail loads a single job posting. ok is false when the page has no
// recognizable title.
func (o *Orchestrator) ScrapeDetail(ctx context.Context, pageURL string, hint models.Platform) (detail *models.JobDetail, ok bool, err error) {
	resp, err := o.single(ctx, pageURL, content.Request{Action: content.ActionScrapeDetail, Platform: hint})
	if err != nil {
		return nil, false, err
	}
	return resp.Detail, resp.Detail != nil, nil
}

func (o *Orchestrator) single(ctx context.Context, pageURL string, req content.Request) (*content.Response, error) {
	if req.Platform != "" {
		if _, ok := o.registry.Lookup(req.Platform); !ok || !o.registry.Enabled(req.Platform) {
			return nil, fmt.Errorf("%w: %s", platform.ErrUnsupportedPlatform, req.Platform)
		}
	} else if _, ok := o.registry.Resolve(pageURL); !ok {
		return nil, fmt.Errorf("%w: %s", platform.ErrUnsupportedPlatform, pageURL)
	}

	ctx = reqctx.WithSession(ctx)
	logger := reqctx.Logger(ctx)

	if err := o.limiter.Wait(ctx, pageURL); err != nil {
		return nil, err
	}
	tab, err := o.ctrl.Open(ctx, pageURL)
	if err != nil {
		return nil, NewScrapeError(ErrCodeOpenTab, "failed to open tab", err)
	}
	if o.opts.CloseTab {
		defer tab.Close()
	}

	if err := waitLoad(ctx, tab, o.opts.SettleDelay); err != nil {
		return nil, NewScrapeError(ErrCodePageLoad, "page did not load", err)
	}
	resp, err := send(ctx, tab, req)
	if err != nil {
		return nil, NewScrapeError(ErrCodePageScrape, "scrape request failed", err)
	}
	if resp == nil || !resp.Success {
		if resp != nil && resp.Unsupported {
			return nil, fmt.Errorf("%w: %s", platform.ErrUnsupportedPlatform, pageURL)
		}
		return nil, NewScrapeError(ErrCodePageScrape, "page reported failure", responseError(resp))
	}

	logger.Info().Str("url", pageURL).Str("action", string(req.Action)).Int("jobs", len(resp.Jobs)).Msg("Page scraped")
	return resp, nil
}

func responseError(resp *content.Response) error {
	if resp == nil {
		return errors.New("empty response")
	}
	if resp.Unsupported {
		return platform.ErrUnsupportedPlatform
	}
	if resp.Error == "" {
		return errors.New("unknown page error")
	}
	return errors.New(resp.Error)
}
