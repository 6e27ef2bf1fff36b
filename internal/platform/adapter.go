// Package platform implements the per-site job extraction and pagination
// strategies and the registry that picks one for a URL.
package platform

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/law-makers/jobscout/internal/dom"
	"github.com/law-makers/jobscout/internal/extract"
	urlutil "github.com/law-makers/jobscout/internal/utils/url"
	"github.com/law-makers/jobscout/pkg/models"
)

// Adapter extracts jobs from one job site's pages
type Adapter interface {
	// Platform returns the site this adapter handles
	Platform() models.Platform

	// Matches reports whether pageURL belongs to this site
	Matches(pageURL string) bool

	// SearchURL builds the first results page for a keyword and location search
	SearchURL(keywords, location string) string

	// ScrapeList extracts every complete job card on a results page and the
	// locator of the following page, if any
	ScrapeList(page *dom.Page) models.ListResult

	// ScrapeDetail extracts a single job posting. ok is false when the title
	// cannot be found.
	ScrapeDetail(page *dom.Page) (detail *models.JobDetail, ok bool)
}

// cardFields lists the extraction chains applied to each job card
type cardFields struct {
	title       extract.Chain
	company     extract.Chain
	location    extract.Chain
	jobURL      extract.Chain
	description extract.Chain
	salary      extract.Chain
	posted      extract.Chain
	logo        extract.Chain
	jobType     extract.Chain

	// metadata snippets feed salary and job type classification when the
	// dedicated chains come up empty
	metadata        []string
	metadataText    func(*goquery.Selection) string
	classifyJobType bool
}

type detailFields struct {
	title       extract.Chain
	company     extract.Chain
	location    extract.Chain
	description extract.Chain
	descHTML    extract.Chain
	logo        extract.Chain
	salary      extract.Chain
	jobType     extract.Chain
	workplace   extract.Chain
}

// site is the shared Adapter implementation. Each platform supplies its
// selector tables and a next-page function.
type site struct {
	platform models.Platform
	domains  []string
	search   func(keywords, location string) string
	cards    []string
	card     cardFields
	detail   detailFields
	next     func(page *dom.Page) string
}

func (s *site) Platform() models.Platform { return s.platform }

func (s *site) Matches(pageURL string) bool {
	lower := strings.ToLower(pageURL)
	for _, d := range s.domains {
		if d != "" && strings.Contains(lower, strings.ToLower(d)) {
			return true
		}
	}
	return false
}

func (s *site) SearchURL(keywords, location string) string {
	return s.search(keywords, location)
}

func (s *site) ScrapeList(page *dom.Page) models.ListResult {
	var jobs []models.Job
	cards := extract.Cards(page.Root(), s.cards)
	cards.Each(func(i int, card *goquery.Selection) {
		if job, ok := s.scrapeCard(page, card, i); ok {
			jobs = append(jobs, job)
		}
	})

	next := s.nextPage(page)

	log.Debug().
		Str("platform", string(s.platform)).
		Int("cards", cards.Length()).
		Int("jobs", len(jobs)).
		Str("next", next).
		Msg("Scraped results page")

	return models.ListResult{Jobs: jobs, NextPage: next}
}

// scrapeCard builds a job from one card. Cards without a title or company,
// or whose extraction panics, are skipped.
func (s *site) scrapeCard(page *dom.Page, card *goquery.Selection, idx int) (job models.Job, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Debug().Interface("panic", r).Int("card", idx).Str("platform", string(s.platform)).Msg("Skipping card")
			ok = false
		}
	}()

	f := s.card
	title := f.title.Value(card)
	company := f.company.Value(card)
	if title == "" || company == "" {
		return models.Job{}, false
	}

	var snippets []string
	if len(f.metadata) > 0 {
		snippets = extract.Snippets(card, f.metadata, f.metadataText)
	}

	salary := f.salary.Value(card)
	if salary == "" {
		salary = extract.Salary(snippets)
	}
	jobType := f.jobType.Value(card)
	if jobType == "" && f.classifyJobType {
		jobType = extract.JobType(snippets)
	}

	return models.NewJob(s.platform, models.JobFields{
		Title:          title,
		Company:        company,
		Location:       f.location.Value(card),
		JobURL:         absolute(page.URL, f.jobURL.Value(card)),
		Description:    f.description.Value(card),
		Salary:         salary,
		PostedDate:     f.posted.Value(card),
		CompanyLogoURL: resolveOptional(page.URL, f.logo.Value(card)),
		JobType:        jobType,
	}), true
}

func (s *site) nextPage(page *dom.Page) (next string) {
	defer func() {
		if r := recover(); r != nil {
			log.Debug().Interface("panic", r).Str("platform", string(s.platform)).Msg("Next page lookup failed")
			next = ""
		}
	}()
	if s.next == nil {
		return ""
	}
	return s.next(page)
}

func (s *site) ScrapeDetail(page *dom.Page) (detail *models.JobDetail, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Debug().Interface("panic", r).Str("platform", string(s.platform)).Msg("Detail scrape failed")
			detail, ok = nil, false
		}
	}()

	root := page.Root()
	f := s.detail
	title := f.title.Value(root)
	if title == "" {
		return nil, false
	}

	job := models.NewJob(s.platform, models.JobFields{
		Title:          title,
		Company:        f.company.Value(root),
		Location:       f.location.Value(root),
		JobURL:         page.URL,
		Description:    f.description.Value(root),
		Salary:         f.salary.Value(root),
		CompanyLogoURL: resolveOptional(page.URL, f.logo.Value(root)),
		JobType:        extract.JobType([]string{f.jobType.Value(root)}),
	})
	if job.JobType == "" {
		job.JobType = f.jobType.Value(root)
	}

	return &models.JobDetail{
		Job:             job,
		WorkArrangement: f.workplace.Value(root),
		DescriptionHTML: f.descHTML.Value(root),
	}, true
}

// absolute resolves href against the page URL, falling back to the page
// itself when the card has no usable link.
func absolute(pageURL, href string) string {
	if strings.TrimSpace(href) == "" {
		return pageURL
	}
	if u, ok := urlutil.ResolveHTTP(pageURL, href); ok {
		return u
	}
	return pageURL
}

// resolveOptional is absolute for fields that stay empty without a link
func resolveOptional(pageURL, href string) string {
	if strings.TrimSpace(href) == "" {
		return ""
	}
	u, _ := urlutil.ResolveHTTP(pageURL, href)
	return u
}
