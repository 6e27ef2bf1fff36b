// Package jobapi submits scraped jobs to the JobJourney companion app.
package jobapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/law-makers/jobscout/internal/retry"
	"github.com/law-makers/jobscout/pkg/models"
)

const (
	// DevBaseURL is used when a local dev server answers its health check
	DevBaseURL = "http://localhost:3000"
	// ProdBaseURL is the hosted app
	ProdBaseURL = "https://jobjourney.me"

	healthTimeout = time.Second
)

// ResolveBaseURL returns dev when its /health endpoint answers within a
// second, otherwise prod
func ResolveBaseURL(ctx context.Context, dev, prod string) string {
	if dev == "" {
		return prod
	}
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSuffix(dev, "/")+"/health", nil)
	if err != nil {
		return prod
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Debug().Err(err).Msg("Development server not reachable, using production")
		return prod
	}
	resp.Body.Close()

	log.Debug().Str("url", dev).Msg("Development server detected")
	return dev
}

// SavedJob is the app's view of a stored job
type SavedJob struct {
	ID string `json:"id"`
	models.Job
}

// Client talks to the companion app
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	retry   retry.Config
}

// Option customizes a Client
type Option func(*Client)

// WithToken sends token as a bearer credential
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithRetry replaces the default retry policy
func WithRetry(cfg retry.Config) Option {
	return func(c *Client) { c.retry = cfg }
}

// NewClient creates a client for baseURL
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		retry:   retry.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the app URL requests go to
func (c *Client) BaseURL() string { return c.baseURL }

// SaveJob posts one job and returns the stored record
func (c *Client) SaveJob(ctx context.Context, job models.Job) (*SavedJob, error) {
	body, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("failed to encode job: %w", err)
	}

	var saved SavedJob
	if err := c.do(ctx, http.MethodPost, "/jobs", body, &saved); err != nil {
		return nil, fmt.Errorf("save job %q: %w", job.Title, err)
	}
	return &saved, nil
}

// GetJob fetches a stored job by id
func (c *Client) GetJob(ctx context.Context, id string) (*SavedJob, error) {
	var saved SavedJob
	if err := c.do(ctx, http.MethodGet, "/jobs/"+url.PathEscape(id), nil, &saved); err != nil {
		return nil, fmt.Errorf("get job %s: %w", id, err)
	}
	return &saved, nil
}

// PushResult reports a SaveAll run
type PushResult struct {
	Saved  int
	Failed int
	Errors []error
}

// SaveAll posts every job, continuing past failures
func (c *Client) SaveAll(ctx context.Context, jobs []models.Job, onSaved func(done int)) PushResult {
	var res PushResult
	for i, job := range jobs {
		if ctx.Err() != nil {
			res.Failed += len(jobs) - i
			res.Errors = append(res.Errors, ctx.Err())
			break
		}
		if _, err := c.SaveJob(ctx, job); err != nil {
			log.Warn().Err(err).Str("title", job.Title).Msg("Failed to save job")
			res.Failed++
			res.Errors = append(res.Errors, err)
		} else {
			res.Saved++
		}
		if onSaved != nil {
			onSaved(i + 1)
		}
	}
	return res
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	return retry.WithRetry(ctx, c.retry, func() error {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return retry.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return retry.NewHTTPError(resp.StatusCode, http.StatusText(resp.StatusCode), strings.TrimSpace(string(msg)))
		}
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			return retry.Permanent(fmt.Errorf("failed to decode response: %w", err))
		}
		return nil
	})
}
