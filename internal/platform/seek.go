package platform

import (
	"fmt"

	"github.com/law-makers/jobscout/internal/dom"
	"github.com/law-makers/jobscout/internal/extract"
	urlutil "github.com/law-makers/jobscout/internal/utils/url"
	"github.com/law-makers/jobscout/pkg/models"
)

// DefaultSeekDomains are the SEEK sites matched when no override is configured
var DefaultSeekDomains = []string{"seek.com.au", "seek.com.nz"}

var seekNextLinks = []string{
	`li:last-child a[rel*="next"][aria-hidden="false"]`,
	`li:last-child a[data-automation^="page-"]:not([aria-current])`,
}

// NewSEEK returns the SEEK adapter matching the given domains, or
// DefaultSeekDomains when none are given.
func NewSEEK(domains ...string) Adapter {
	if len(domains) == 0 {
		domains = DefaultSeekDomains
	}
	return &site{
		platform: models.PlatformSEEK,
		domains:  domains,
		search: func(keywords, location string) string {
			u := fmt.Sprintf("https://www.seek.com.au/%s-jobs", urlutil.Slug(keywords))
			if loc := urlutil.Slug(location); loc != "" {
				u += "/in-" + loc
			}
			return u
		},
		cards: []string{
			`[data-testid="job-card"]`,
			`article[data-card-type="JobCard"]`,
			`article[role="article"]`,
			`a[data-testid="job-card-title"]`,
			`[data-automation="job-card"]`,
		},
		card: cardFields{
			title: extract.Texts(
				`[data-testid="job-card-title"]`,
				`a[data-automation="jobTitle"]`,
				`a[class*="job-title"]`,
				`a[id^="job-title"]`,
			),
			company: extract.Texts(
				`[data-automation="jobCompany"]`,
				`span[class*="l1r1184z"] a[data-automation="jobCompany"]`,
				`div.snwpn00 a[data-automation="jobCompany"]`,
				`span._1l99f880 a[data-type="company"]`,
			),
			location: extract.Texts(
				`span[data-automation="jobCardLocation"]`,
				`a[data-automation="jobLocation"]`,
				`span[data-type="location"]`,
			),
			jobURL: extract.Chain{
				extract.Attr(`[data-testid="job-card-title"]`, "href"),
				extract.Attr(`a[data-automation="jobTitle"]`, "href"),
				extract.Attr(`a[class*="job-title"]`, "href"),
				extract.Attr(`a[id^="job-title"]`, "href"),
			},
			description: extract.Texts(`span[data-testid="job-card-teaser"]`, `span[data-automation="jobShortDescription"]`),
			salary:      extract.Texts(`span[data-automation="jobSalary"]`),
			posted:      extract.Texts(`span[data-automation="jobListingDate"] div._1kme6z20`, `span[data-automation="jobListingDate"]`),
			logo:        extract.Chain{extract.Attr(`[data-automation="company-logo"] img`, "src")},
		},
		detail: detailFields{
			title:       extract.Texts(`[data-automation="job-detail-title"]`),
			company:     extract.Texts(`[data-automation="advertiser-name"]`),
			location:    extract.Texts(`[data-automation="job-location"]`, `[data-automation="job-detail-location"]`),
			description: extract.Texts(`[data-automation="jobDescription"]`, `[data-automation="jobAdDetails"]`),
			descHTML:    extract.Chain{extract.HTML(`[data-automation="jobDescription"]`), extract.HTML(`[data-automation="jobAdDetails"]`)},
			logo:        extract.Chain{extract.Attr(`[data-automation="advertiser-logo"] img`, "src")},
			salary:      extract.Texts(`[data-automation="job-salary"]`, `[data-automation="job-detail-salary"]`),
			jobType:     extract.Texts(`[data-automation="job-work-type"]`, `[data-automation="job-detail-work-type"]`),
		},
		next: seekNext,
	}
}

// seekNext reads the last pagination link with a next relation that is not hidden
func seekNext(page *dom.Page) string {
	link := extract.Cards(page.Root(), seekNextLinks).Last()
	if link.Length() == 0 {
		return ""
	}
	if v, _ := link.Attr("aria-hidden"); v == "true" {
		return ""
	}
	href, ok := link.Attr("href")
	if !ok || href == "" {
		return ""
	}
	return urlutil.ResolveURL(page.URL, href)
}
