package session

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/law-makers/jobscout/internal/platform"
	"github.com/law-makers/jobscout/pkg/models"
)

// Target is one platform session to run
type Target struct {
	Platform models.Platform
	URL      string
}

// SearchTargets builds a Target for every enabled platform's search page
func SearchTargets(registry *platform.Registry, keywords, location string) []Target {
	var targets []Target
	for _, p := range registry.Platforms() {
		if !registry.Enabled(p) {
			continue
		}
		a, _ := registry.Lookup(p)
		targets = append(targets, Target{Platform: p, URL: a.SearchURL(keywords, location)})
	}
	return targets
}

// BatchResult collects the sessions of a RunAll call in target order
type BatchResult struct {
	Sessions []*Result
	// Skipped lists targets whose platform is unsupported or disabled
	Skipped []Target
}

// Jobs merges every session's jobs and deduplicates them across platforms
func (b *BatchResult) Jobs() []models.Job {
	var all []models.Job
	for _, r := range b.Sessions {
		if r != nil {
			all = append(all, r.Jobs...)
		}
	}
	return models.Dedupe(all)
}

// RunAll runs a session per target. parallel <= 1 runs them one after
// another; otherwise at most parallel sessions run at once, each in its own
// tab, and onProgress may be called concurrently. An unsupported target is
// skipped rather than failing the batch.
func (o *Orchestrator) RunAll(ctx context.Context, targets []Target, parallel int, onProgress ProgressFunc) (*BatchResult, error) {
	results := make([]*Result, len(targets))
	skipped := make([]bool, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	if parallel <= 1 {
		parallel = 1
	}
	g.SetLimit(parallel)

	for i, t := range targets {
		g.Go(func() error {
			res, err := o.ScrapeAllPages(gctx, t.Platform, t.URL, onProgress)
			if errors.Is(err, platform.ErrUnsupportedPlatform) {
				skipped[i] = true
				return nil
			}
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	batch := &BatchResult{}
	for i, r := range results {
		if skipped[i] {
			batch.Skipped = append(batch.Skipped, targets[i])
			continue
		}
		batch.Sessions = append(batch.Sessions, r)
	}
	return batch, nil
}
