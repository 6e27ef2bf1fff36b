package session

import (
	"time"

	"github.com/law-makers/jobscout/pkg/models"
)

// Phase is a session's position in its page loop
type Phase int

const (
	PhaseStart Phase = iota
	PhaseLoading
	PhaseScraping
	PhaseDone
	PhaseTabClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseLoading:
		return "loading_page"
	case PhaseScraping:
		return "scraping_page"
	case PhaseDone:
		return "done"
	case PhaseTabClosed:
		return "tab_closed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can happen
func (p Phase) Terminal() bool {
	return p == PhaseDone || p == PhaseTabClosed
}

// Outcome says how a session ended. Every outcome carries the jobs collected
// up to that point.
type Outcome string

const (
	OutcomeCompleted  Outcome = "completed"
	OutcomeTabClosed  Outcome = "tab_closed"
	OutcomePageFailed Outcome = "page_failed"
	OutcomePageLimit  Outcome = "page_limit"
	OutcomeCancelled  Outcome = "cancelled"
)

// Result is the output of one paginated session
type Result struct {
	ID       string          `json:"id"`
	Platform models.Platform `json:"platform"`
	Jobs     []models.Job    `json:"jobs"`
	// Pages counts the pages that were scraped successfully
	Pages    int           `json:"pages"`
	Outcome  Outcome       `json:"outcome"`
	Err      error         `json:"-"`
	Duration time.Duration `json:"duration"`
}

// ErrorMessage returns Err as text, or "" when the session ended cleanly
func (r *Result) ErrorMessage() string {
	if r == nil || r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// ProgressFunc is told the page index and platform on every page transition
type ProgressFunc func(page int, platform models.Platform)
