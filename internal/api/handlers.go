package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/law-makers/jobscout/internal/platform"
	"github.com/law-makers/jobscout/internal/session"
	"github.com/law-makers/jobscout/internal/state"
	urlutil "github.com/law-makers/jobscout/internal/utils/url"
	"github.com/law-makers/jobscout/pkg/models"
)

// ScrapeRequest asks for one page to be scraped
type ScrapeRequest struct {
	URL      string `json:"url"`
	Platform string `json:"platform,omitempty"`
}

// SessionRequest starts paginated sessions. With a URL one session runs from
// that page; otherwise every enabled platform is searched.
type SessionRequest struct {
	URL      string `json:"url,omitempty"`
	Platform string `json:"platform,omitempty"`
	Keywords string `json:"keywords,omitempty"`
	Location string `json:"location,omitempty"`
	Parallel int    `json:"parallel,omitempty"`
}

type platformView struct {
	ID      string          `json:"id"`
	Name    models.Platform `json:"name"`
	Enabled bool            `json:"enabled"`
}

type sessionView struct {
	*session.Result
	Error string `json:"error,omitempty"`
}

func (s *Server) handlePlatforms(w http.ResponseWriter, r *http.Request) {
	items := []platformView{}
	for _, p := range s.registry.Platforms() {
		items = append(items, platformView{ID: p.ID(), Name: p, Enabled: s.registry.Enabled(p)})
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	settings, err := state.LoadWebsiteSettings(s.store)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load settings: "+err.Error())
		return
	}
	sites := make(map[string]bool)
	for _, p := range s.registry.Platforms() {
		sites[p.ID()] = settings.Enabled(p)
	}
	active := state.ActivePlatforms(s.store)
	if active == nil {
		active = []models.Platform{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"active":       active,
		"sites":        sites,
		"lastLocation": state.LastLocation(s.store),
	})
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req ScrapeRequest
	hint, ok := decodeScrape(w, r, &req)
	if !ok {
		return
	}

	res, err := s.scraper.ScrapeCurrentPage(r.Context(), req.URL, hint)
	if err != nil {
		respondScrapeError(w, err)
		return
	}
	jobs := res.Jobs
	if jobs == nil {
		jobs = []models.Job{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"data":        jobs,
		"nextPageUrl": res.NextPage,
	})
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	var req ScrapeRequest
	hint, ok := decodeScrape(w, r, &req)
	if !ok {
		return
	}

	detail, found, err := s.scraper.ScrapeDetail(r.Context(), req.URL, hint)
	if err != nil {
		respondScrapeError(w, err)
		return
	}
	if !found {
		respondError(w, http.StatusNotFound, "No job details found on page")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "detail": detail})
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	targets, err := s.targets(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(targets) == 0 {
		respondError(w, http.StatusUnprocessableEntity, "No enabled platforms to search")
		return
	}

	parallel := req.Parallel
	if parallel > s.maxParallel {
		parallel = s.maxParallel
	}

	batch, err := s.scraper.RunAll(r.Context(), targets, parallel, nil)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Sessions failed: "+err.Error())
		return
	}

	sessions := make([]sessionView, 0, len(batch.Sessions))
	for _, res := range batch.Sessions {
		sessions = append(sessions, sessionView{Result: res, Error: res.ErrorMessage()})
	}
	skipped := make([]string, 0, len(batch.Skipped))
	for _, t := range batch.Skipped {
		skipped = append(skipped, t.URL)
	}
	jobs := batch.Jobs()
	if jobs == nil {
		jobs = []models.Job{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"sessions": sessions,
		"skipped":  skipped,
		"data":     jobs,
	})
}

func (s *Server) targets(req SessionRequest) ([]session.Target, error) {
	if req.URL == "" {
		location := req.Location
		if location == "" {
			location = state.LastLocation(s.store)
		} else if err := state.SaveLastLocation(s.store, location); err != nil {
			return nil, err
		}
		return session.SearchTargets(s.registry, req.Keywords, location), nil
	}

	if err := urlutil.ValidateURL(req.URL); err != nil {
		return nil, err
	}
	if req.Platform != "" {
		p, err := models.ParsePlatform(req.Platform)
		if err != nil {
			return nil, err
		}
		return []session.Target{{Platform: p, URL: req.URL}}, nil
	}
	adapter, ok := s.registry.Resolve(req.URL)
	if !ok {
		return nil, errors.New("no enabled platform matches " + req.URL)
	}
	return []session.Target{{Platform: adapter.Platform(), URL: req.URL}}, nil
}

func decodeScrape(w http.ResponseWriter, r *http.Request, req *ScrapeRequest) (models.Platform, bool) {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return "", false
	}
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		respondError(w, http.StatusBadRequest, "URL is required")
		return "", false
	}
	if err := urlutil.ValidateURL(req.URL); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	if req.Platform == "" {
		return "", true
	}
	p, err := models.ParsePlatform(req.Platform)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return p, true
}

func respondScrapeError(w http.ResponseWriter, err error) {
	var scrapeErr *session.ScrapeError
	switch {
	case errors.Is(err, platform.ErrUnsupportedPlatform):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &scrapeErr):
		respondError(w, http.StatusBadGateway, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}
