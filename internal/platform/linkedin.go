package platform

import (
	"net/url"

	"github.com/law-makers/jobscout/internal/dom"
	"github.com/law-makers/jobscout/internal/extract"
	urlutil "github.com/law-makers/jobscout/internal/utils/url"
	"github.com/law-makers/jobscout/pkg/models"
)

// LinkedInPageSize is the offset step of LinkedIn's start query parameter
const LinkedInPageSize = 25

var linkedInNextButtons = []string{
	`button.jobs-search-pagination__button--next`,
	`button.artdeco-button--icon-right[aria-label="View next page"]`,
	`button.artdeco-button[data-test-pagination-page-btn]`,
}

// NewLinkedIn returns the adapter for linkedin.com job search and postings
func NewLinkedIn() Adapter {
	firstLine := func(s string) string { return extract.Clean(extract.FirstLine(s)) }

	return &site{
		platform: models.PlatformLinkedIn,
		domains:  []string{"linkedin.com"},
		search: func(keywords, location string) string {
			q := url.Values{}
			q.Set("keywords", keywords)
			q.Set("location", location)
			return "https://www.linkedin.com/jobs/search?" + q.Encode()
		},
		cards: []string{
			`div.job-card-container`,
			`div.base-search-card`,
		},
		card: cardFields{
			title: extract.Chain{
				extract.Map(extract.RawText(`.job-card-list__title--link`), firstLine),
				extract.Text(`h3.base-search-card__title`),
			},
			company: extract.Texts(
				`.artdeco-entity-lockup__subtitle span`,
				`h4.base-search-card__subtitle`,
			),
			location: extract.Texts(
				`.artdeco-entity-lockup__caption span[dir="ltr"]`,
				`span.job-search-card__location`,
			),
			jobURL: extract.Chain{
				extract.Attr(`.job-card-list__title--link`, "href"),
				extract.Attr(`a.base-card__full-link`, "href"),
			},
			description: extract.Texts(
				`.job-card-container__description`,
				`.job-card-list__description`,
			),
			posted: extract.Texts(
				`time`,
				`.job-card-container__listed-time`,
				`span.job-card-container__footer-item--time`,
			),
			logo: extract.Chain{
				extract.Attr(`.ivm-image-view-model img`, "src"),
				extract.Attr(`img.artdeco-entity-image`, "data-delayed-url"),
			},
			metadata: []string{
				`.artdeco-entity-lockup__metadata li span[dir="ltr"]`,
				`.job-search-card__salary-info`,
			},
		},
		detail: detailFields{
			title:       extract.Texts(`h1.top-card-layout__title`, `h1.t-24`),
			company:     extract.Texts(`a.topcard__org-name-link`, `.job-details-jobs-unified-top-card__company-name a`),
			location:    extract.Texts(`span.topcard__flavor--bullet`),
			description: extract.Texts(`div.description__text`, `div.jobs-description__content`),
			descHTML:    extract.Chain{extract.HTML(`div.description__text`), extract.HTML(`div.jobs-description__content`)},
			logo:        extract.Chain{extract.Attr(`img.artdeco-entity-image`, "src")},
			jobType:     extract.Texts(`span.job-type`),
			workplace:   extract.Texts(`span.workplace-type`),
		},
		next: linkedInNext,
	}
}

// linkedInNext requires an enabled next button and then advances the start
// offset of the current URL by one page.
func linkedInNext(page *dom.Page) string {
	btn := extract.Cards(page.Root(), linkedInNextButtons).First()
	if btn.Length() == 0 {
		return ""
	}
	if _, disabled := btn.Attr("disabled"); disabled {
		return ""
	}
	if v, _ := btn.Attr("aria-disabled"); v == "true" {
		return ""
	}
	next, err := urlutil.IncrementQueryInt(page.URL, "start", LinkedInPageSize)
	if err != nil {
		return ""
	}
	return next
}
