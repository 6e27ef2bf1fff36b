package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/law-makers/jobscout/internal/platform"
	"github.com/law-makers/jobscout/internal/session"
	"github.com/law-makers/jobscout/internal/state"
	"github.com/law-makers/jobscout/pkg/models"
)

type fakeScraper struct {
	mu       sync.Mutex
	list     models.ListResult
	detail   *models.JobDetail
	err      error
	targets  []session.Target
	parallel int
	lastURL  string
	lastHint models.Platform
}

func (f *fakeScraper) ScrapeCurrentPage(ctx context.Context, pageURL string, hint models.Platform) (models.ListResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastURL, f.lastHint = pageURL, hint
	return f.list, f.err
}

func (f *fakeScraper) ScrapeDetail(ctx context.Context, pageURL string, hint models.Platform) (*models.JobDetail, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastURL, f.lastHint = pageURL, hint
	return f.detail, f.detail != nil, f.err
}

func (f *fakeScraper) RunAll(ctx context.Context, targets []session.Target, parallel int, onProgress session.ProgressFunc) (*session.BatchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.targets, f.parallel = targets, parallel
	if f.err != nil {
		return nil, f.err
	}
	batch := &session.BatchResult{}
	for _, t := range targets {
		batch.Sessions = append(batch.Sessions, &session.Result{
			ID:       "s-" + t.Platform.ID(),
			Platform: t.Platform,
			Jobs:     []models.Job{models.NewJob(t.Platform, models.JobFields{Title: "Go Dev", Company: "Acme"})},
			Pages:    1,
			Outcome:  session.OutcomeCompleted,
		})
	}
	return batch, nil
}

func (f *fakeScraper) snapshot() (targets []session.Target, parallel int, hint models.Platform) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.targets, f.parallel, f.lastHint
}

func (f *fakeScraper) setDetail(d *models.JobDetail) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detail = d
}

func newTestServer(t *testing.T, f *fakeScraper) (*httptest.Server, state.Store) {
	t.Helper()
	store := state.NewMemoryStore()
	srv := httptest.NewServer(NewServer(f, platform.Default(platform.Options{}), store, 3).Router())
	t.Cleanup(srv.Close)
	return srv, store
}

func post(t *testing.T, url, body string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, &fakeScraper{})

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestScrape(t *testing.T) {
	f := &fakeScraper{list: models.ListResult{
		Jobs:     []models.Job{models.NewJob(models.PlatformSEEK, models.JobFields{Title: "SRE", Company: "Canva"})},
		NextPage: "https://www.seek.com.au/jobs?page=2",
	}}
	srv, _ := newTestServer(t, f)

	status, out := post(t, srv.URL+"/api/scrape", `{"url":"https://www.seek.com.au/jobs","platform":"seek"}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "https://www.seek.com.au/jobs?page=2", out["nextPageUrl"])
	require.Len(t, out["data"], 1)
	_, _, hint := f.snapshot()
	assert.Equal(t, models.PlatformSEEK, hint)
}

func TestScrapeValidation(t *testing.T) {
	srv, _ := newTestServer(t, &fakeScraper{})

	tests := []struct {
		name string
		body string
	}{
		{"bad json", `{`},
		{"missing url", `{}`},
		{"bad scheme", `{"url":"ftp://example.com"}`},
		{"unknown platform", `{"url":"https://example.com","platform":"monster"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, out := post(t, srv.URL+"/api/scrape", tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, false, out["success"])
		})
	}
}

func TestScrapeUnsupported(t *testing.T) {
	srv, _ := newTestServer(t, &fakeScraper{err: fmt.Errorf("%w: https://example.com", platform.ErrUnsupportedPlatform)})

	status, out := post(t, srv.URL+"/api/scrape", `{"url":"https://example.com"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, out["error"], "unsupported platform")
}

func TestScrapePageFailure(t *testing.T) {
	f := &fakeScraper{err: session.NewScrapeError(session.ErrCodePageLoad, "page did not load", context.DeadlineExceeded)}
	srv, _ := newTestServer(t, f)

	status, _ := post(t, srv.URL+"/api/scrape", `{"url":"https://au.indeed.com/jobs"}`)
	assert.Equal(t, http.StatusBadGateway, status)
}

func TestDetail(t *testing.T) {
	f := &fakeScraper{}
	srv, _ := newTestServer(t, f)

	status, _ := post(t, srv.URL+"/api/detail", `{"url":"https://www.linkedin.com/jobs/view/1"}`)
	assert.Equal(t, http.StatusNotFound, status)

	f.setDetail(&models.JobDetail{Job: models.NewJob(models.PlatformLinkedIn, models.JobFields{Title: "Platform Engineer"})})
	status, out := post(t, srv.URL+"/api/detail", `{"url":"https://www.linkedin.com/jobs/view/1"}`)
	assert.Equal(t, http.StatusOK, status)
	detail, ok := out["detail"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Platform Engineer", detail["title"])
}

func TestSessionsSearch(t *testing.T) {
	f := &fakeScraper{}
	srv, store := newTestServer(t, f)

	status, out := post(t, srv.URL+"/api/sessions", `{"keywords":"golang","location":"Sydney","parallel":10}`)

	assert.Equal(t, http.StatusOK, status)
	targets, parallel, _ := f.snapshot()
	assert.Len(t, targets, 3)
	assert.Equal(t, 3, parallel)
	assert.Equal(t, "Sydney", state.LastLocation(store))
	assert.Len(t, out["sessions"], 3)
	// identical title, company and location across platforms collapse to one job
	assert.Len(t, out["data"], 1)
}

func TestSessionsFromURL(t *testing.T) {
	f := &fakeScraper{}
	srv, _ := newTestServer(t, f)

	status, _ := post(t, srv.URL+"/api/sessions", `{"url":"https://au.indeed.com/jobs?q=go"}`)

	assert.Equal(t, http.StatusOK, status)
	targets, _, _ := f.snapshot()
	require.Len(t, targets, 1)
	assert.Equal(t, models.PlatformIndeed, targets[0].Platform)

	status, _ = post(t, srv.URL+"/api/sessions", `{"url":"https://example.com/jobs"}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestPlatformsAndState(t *testing.T) {
	srv, store := newTestServer(t, &fakeScraper{})
	require.NoError(t, state.SetActive(store, models.PlatformSEEK, "s1"))
	require.NoError(t, state.SetPlatformEnabled(store, models.PlatformIndeed, false))

	resp, err := http.Get(srv.URL + "/api/platforms")
	require.NoError(t, err)
	var platforms struct {
		Items []platformView `json:"items"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&platforms))
	resp.Body.Close()
	require.Len(t, platforms.Items, 3)
	assert.Equal(t, "linkedin", platforms.Items[0].ID)

	resp, err = http.Get(srv.URL + "/api/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	var st struct {
		Active []models.Platform `json:"active"`
		Sites  map[string]bool   `json:"sites"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	assert.Equal(t, []models.Platform{models.PlatformSEEK}, st.Active)
	assert.False(t, st.Sites["indeed"])
	assert.True(t, st.Sites["seek"])
}
