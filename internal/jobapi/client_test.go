package jobapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/law-makers/jobscout/internal/retry"
	"github.com/law-makers/jobscout/pkg/models"
)

func fastRetry() retry.Config {
	cfg := retry.DefaultConfig()
	cfg.InitialBackoff = time.Millisecond
	cfg.MaxBackoff = 5 * time.Millisecond
	return cfg
}

func TestSaveJobPostsRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/jobs", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var got map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "Go Dev", got["title"])
		assert.Equal(t, "SEEK", got["platform"])
		assert.Nil(t, got["companyLogoUrl"])

		got["id"] = "42"
		_ = json.NewEncoder(w).Encode(got)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", WithToken("tok"), WithRetry(fastRetry()))
	saved, err := c.SaveJob(context.Background(), models.NewJob(models.PlatformSEEK, models.JobFields{Title: "Go Dev", Company: "Xero"}))

	require.NoError(t, err)
	assert.Equal(t, "42", saved.ID)
	assert.Equal(t, "Xero", saved.Company)
}

func TestGetJobRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		assert.Equal(t, "/jobs/a%2Fb", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{"id":"a/b","title":"SRE"}`))
	}))
	defer srv.Close()

	saved, err := NewClient(srv.URL, WithRetry(fastRetry())).GetJob(context.Background(), "a/b")

	require.NoError(t, err)
	assert.Equal(t, "SRE", saved.Title)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGetJobDoesNotRetryNotFound(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, WithRetry(fastRetry())).GetJob(context.Background(), "missing")

	var httpErr retry.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSaveAllContinuesPastFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var job models.Job
		_ = json.NewDecoder(r.Body).Decode(&job)
		if job.Title == "bad" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	jobs := []models.Job{
		models.NewJob(models.PlatformIndeed, models.JobFields{Title: "one", Company: "A"}),
		models.NewJob(models.PlatformIndeed, models.JobFields{Title: "bad", Company: "B"}),
		models.NewJob(models.PlatformIndeed, models.JobFields{Title: "three", Company: "C"}),
	}
	var progress []int

	res := NewClient(srv.URL, WithRetry(fastRetry())).SaveAll(context.Background(), jobs, func(done int) {
		progress = append(progress, done)
	})

	assert.Equal(t, 2, res.Saved)
	assert.Equal(t, 1, res.Failed)
	assert.Len(t, res.Errors, 1)
	assert.Equal(t, []int{1, 2, 3}, progress)
}

func TestResolveBaseURL(t *testing.T) {
	dev := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
	}))
	defer dev.Close()

	assert.Equal(t, dev.URL, ResolveBaseURL(context.Background(), dev.URL, ProdBaseURL))

	dev.Close()
	assert.Equal(t, ProdBaseURL, ResolveBaseURL(context.Background(), dev.URL, ProdBaseURL))
	assert.Equal(t, ProdBaseURL, ResolveBaseURL(context.Background(), "", ProdBaseURL))
}
