package models

import (
	"fmt"
	"strings"
)

// Platform identifies the job site a record was scraped from
type Platform string

const (
	PlatformLinkedIn Platform = "LinkedIn"
	PlatformSEEK     Platform = "SEEK"
	PlatformIndeed   Platform = "Indeed"
)

// AllPlatforms lists the supported platforms in registry order
var AllPlatforms = []Platform{PlatformLinkedIn, PlatformSEEK, PlatformIndeed}

// ID returns the lower-case identifier used in settings and on the command line
func (p Platform) ID() string {
	return strings.ToLower(string(p))
}

// ParsePlatform maps a case-insensitive identifier to a Platform
func ParsePlatform(s string) (Platform, error) {
	for _, p := range AllPlatforms {
		if strings.EqualFold(strings.TrimSpace(s), p.ID()) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown platform %q", s)
}

// Job is one normalized job listing. Values are built by NewJob and are not
// modified afterwards.
type Job struct {
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	Location       string   `json:"location"`
	JobURL         string   `json:"jobUrl"`
	Description    string   `json:"description"`
	Salary         string   `json:"salary"`
	PostedDate     string   `json:"postedDate"`
	CompanyLogoURL *string  `json:"companyLogoUrl"`
	Platform       Platform `json:"platform"`
	JobType        string   `json:"jobType"`
}

// JobFields carries raw extracted values into NewJob
type JobFields struct {
	Title          string
	Company        string
	Location       string
	JobURL         string
	Description    string
	Salary         string
	PostedDate     string
	CompanyLogoURL string
	JobType        string
}

// NewJob builds a Job for the given platform with whitespace-normalized fields.
// An empty logo URL is stored as nil.
func NewJob(platform Platform, f JobFields) Job {
	job := Job{
		Title:       CollapseSpace(f.Title),
		Company:     CollapseSpace(f.Company),
		Location:    CollapseSpace(f.Location),
		JobURL:      strings.TrimSpace(f.JobURL),
		Description: CollapseSpace(f.Description),
		Salary:      CollapseSpace(f.Salary),
		PostedDate:  CollapseSpace(f.PostedDate),
		Platform:    platform,
		JobType:     CollapseSpace(f.JobType),
	}
	if logo := strings.TrimSpace(f.CompanyLogoURL); logo != "" {
		job.CompanyLogoURL = &logo
	}
	return job
}

// Logo returns the company logo URL or an empty string
func (j Job) Logo() string {
	if j.CompanyLogoURL == nil {
		return ""
	}
	return *j.CompanyLogoURL
}

// Key is the lower-cased (title, company, location) identity used for deduplication
func (j Job) Key() string {
	return strings.ToLower(j.Title) + "\x1f" + strings.ToLower(j.Company) + "\x1f" + strings.ToLower(j.Location)
}

// JobDetail is the result of scraping a single job posting page
type JobDetail struct {
	Job
	WorkArrangement string `json:"workArrangement,omitempty"`

	// DescriptionHTML is the inner HTML of the description node, kept for Markdown export
	DescriptionHTML string `json:"-"`
}

// ListResult is what one search results page yields. An empty NextPage means
// there are no further pages.
type ListResult struct {
	Jobs     []Job  `json:"jobs"`
	NextPage string `json:"nextPage,omitempty"`
}

// HasNext reports whether a next page locator is present
func (r ListResult) HasNext() bool {
	return r.NextPage != ""
}

// CollapseSpace trims s and collapses every run of whitespace to one space
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
