// Package downloader saves company logos referenced by scraped jobs.
package downloader

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	urlutil "github.com/law-makers/jobscout/internal/utils/url"
)

// maxLogoBytes caps a single logo download
const maxLogoBytes = 5 << 20

// Result reports one logo download
type Result struct {
	Company  string
	URL      string
	FilePath string
	Size     int64
	Error    error
	Duration time.Duration
}

// Success reports whether the logo was written
func (r *Result) Success() bool { return r.Error == nil }

// Downloader fetches images over HTTP and streams them to disk
type Downloader struct {
	client    *http.Client
	userAgent string
	headers   map[string]string
}

// NewDownloader creates a Downloader
func NewDownloader(timeout time.Duration, userAgent string, headers map[string]string) *Downloader {
	if userAgent == "" {
		userAgent = "jobscout/1.0"
	}
	return &Downloader{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
		headers:   headers,
	}
}

// Download saves the image at imageURL into dir as name plus an extension
// taken from the URL path or the response content type
func (d *Downloader) Download(ctx context.Context, imageURL, dir, name string) *Result {
	start := time.Now()
	result := &Result{URL: imageURL}
	defer func() { result.Duration = time.Since(start) }()

	if err := urlutil.ValidateURL(imageURL); err != nil {
		result.Error = err
		return result
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		result.Error = fmt.Errorf("failed to create output directory: %w", err)
		return result
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		result.Error = fmt.Errorf("failed to create request: %w", err)
		return result
	}
	req.Header.Set("User-Agent", d.userAgent)
	for k, v := range d.headers {
		req.Header.Set(k, v)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		result.Error = fmt.Errorf("request failed: %w", err)
		return result
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		result.Error = fmt.Errorf("bad status: %s", resp.Status)
		return result
	}

	filePath := filepath.Join(dir, sanitizeFilename(name)+extension(imageURL, resp.Header.Get("Content-Type")))
	result.FilePath = filePath

	out, err := os.Create(filePath)
	if err != nil {
		result.Error = fmt.Errorf("failed to create file: %w", err)
		return result
	}
	defer out.Close()

	n, err := io.Copy(out, io.LimitReader(resp.Body, maxLogoBytes))
	if err != nil {
		result.Error = fmt.Errorf("failed to write file: %w", err)
		os.Remove(filePath)
		return result
	}
	result.Size = n

	log.Debug().
		Str("url", imageURL).
		Str("file", filePath).
		Int64("bytes", n).
		Msg("Logo downloaded")

	return result
}

// extension picks a file extension from the URL path, then the content type
func extension(rawURL, contentType string) string {
	if u, err := url.Parse(rawURL); err == nil {
		switch ext := strings.ToLower(path.Ext(u.Path)); ext {
		case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg":
			return ext
		}
	}
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		switch mt {
		case "image/png":
			return ".png"
		case "image/jpeg":
			return ".jpg"
		case "image/gif":
			return ".gif"
		case "image/webp":
			return ".webp"
		case "image/svg+xml":
			return ".svg"
		}
	}
	return ".img"
}

// sanitizeFilename keeps letters, digits, dashes and underscores so a
// company name can never escape the output directory
func sanitizeFilename(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			sb.WriteRune(r)
		case r == ' ' || r == '.' || r == '/' || r == '\\':
			sb.WriteRune('_')
		}
	}
	out := strings.Trim(sb.String(), "_")
	if out == "" {
		out = fmt.Sprintf("logo_%d", time.Now().UnixNano())
	}
	if len(out) > 100 {
		out = out[:100]
	}
	return out
}
