// Package content answers scrape requests against a tab's loaded document.
package content

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/law-makers/jobscout/internal/dom"
	"github.com/law-makers/jobscout/internal/platform"
	"github.com/law-makers/jobscout/pkg/models"
)

// Action names the work a Request asks for
type Action string

const (
	ActionScrapeJobs   Action = "scrapeJobs"
	ActionScrapeDetail Action = "scrapeJobDetail"
)

// Request is sent to a tab to scrape its current page
type Request struct {
	Action Action `json:"action"`
	// Platform forces an adapter instead of resolving one from the page URL
	Platform models.Platform `json:"platform,omitempty"`
}

// Response is a tab's answer to a Request
type Response struct {
	Success     bool              `json:"success"`
	Platform    models.Platform   `json:"platform,omitempty"`
	Jobs        []models.Job      `json:"data,omitempty"`
	NextPage    string            `json:"nextPageUrl,omitempty"`
	Detail      *models.JobDetail `json:"detail,omitempty"`
	Unsupported bool              `json:"unsupported,omitempty"`
	Error       string            `json:"error,omitempty"`
}

// Handler dispatches requests to the adapter for the page
type Handler struct {
	registry *platform.Registry
}

// NewHandler creates a Handler backed by registry
func NewHandler(registry *platform.Registry) *Handler {
	return &Handler{registry: registry}
}

// Handle runs req against page. Panics from adapters are reported as a
// failed Response.
func (h *Handler) Handle(page *dom.Page, req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("url", page.URL).Msg("Scrape request failed")
			resp = Response{Success: false, Error: fmt.Sprint(r)}
		}
	}()

	adapter, ok := h.adapterFor(page.URL, req.Platform)
	if !ok {
		return Response{Success: false, Unsupported: true, Error: platform.ErrUnsupportedPlatform.Error()}
	}

	switch req.Action {
	case ActionScrapeJobs:
		res := adapter.ScrapeList(page)
		return Response{Success: true, Platform: adapter.Platform(), Jobs: res.Jobs, NextPage: res.NextPage}
	case ActionScrapeDetail:
		detail, found := adapter.ScrapeDetail(page)
		if !found {
			return Response{Success: true, Platform: adapter.Platform()}
		}
		return Response{Success: true, Platform: adapter.Platform(), Detail: detail}
	default:
		return Response{Success: false, Error: fmt.Sprintf("unknown action %q", req.Action)}
	}
}

func (h *Handler) adapterFor(pageURL string, hint models.Platform) (platform.Adapter, bool) {
	if hint != "" {
		return h.registry.Lookup(hint)
	}
	return h.registry.Resolve(pageURL)
}
