package platform

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/law-makers/jobscout/internal/dom"
	"github.com/law-makers/jobscout/internal/extract"
	urlutil "github.com/law-makers/jobscout/internal/utils/url"
	"github.com/law-makers/jobscout/pkg/models"
)

// NewIndeed returns the adapter for indeed.com country sites
func NewIndeed() Adapter {
	return &site{
		platform: models.PlatformIndeed,
		domains:  []string{"indeed.com"},
		search: func(keywords, location string) string {
			q := url.Values{}
			q.Set("q", keywords)
			q.Set("l", location)
			return "https://au.indeed.com/jobs?" + q.Encode()
		},
		cards: []string{
			`div.job_seen_beacon`,
			`div[class*="job_seen_"]`,
			`div[class*="cardOutline"]`,
			`div.resultContent`,
			`div[data-testid="job-card"]`,
			`td.resultContent`,
		},
		card: cardFields{
			title: extract.Texts(
				`h2.jobTitle a`,
				`h2 a[data-jk]`,
				`h2.jobTitle span[title]`,
				`a[data-jk] span[title]`,
				`[class*="jobTitle"]`,
				`a[id^="job_"]`,
			),
			company: extract.Texts(
				`span[data-testid="company-name"]`,
				`span.css-1h7lukg[data-testid="company-name"]`,
				`span.companyName`,
				`[data-testid="company-name"]`,
				`div[class*="company"] span`,
				`span[class*="companyName"]`,
			),
			location: extract.Texts(
				`div[data-testid="text-location"]`,
				`div.css-1restlb[data-testid="text-location"]`,
				`div.companyLocation`,
				`div[class*="location"]`,
				`div[class*="workplace"]`,
			),
			jobURL: extract.Chain{
				extract.ClosestAttr(`h2.jobTitle a`, "a", "href"),
				extract.ClosestAttr(`h2 a[data-jk]`, "a", "href"),
				extract.ClosestAttr(`h2.jobTitle span[title]`, "a", "href"),
				extract.ClosestAttr(`a[data-jk] span[title]`, "a", "href"),
				extract.ClosestAttr(`[class*="jobTitle"]`, "a", "href"),
				extract.ClosestAttr(`a[id^="job_"]`, "a", "href"),
				extract.Attr(`a[data-jk]`, "href"),
			},
			description: extract.Chain{
				extract.Map(extract.Text(`div[data-testid="jobsnippet_footer"] ul li`), extract.TrimEllipsis),
				extract.Map(extract.Text(`.job-snippet`), extract.TrimEllipsis),
				extract.Map(extract.Text(`.underShelfFooter .heading6 ul li`), extract.TrimEllipsis),
			},
			posted: extract.Texts(`span.date`, `span[data-testid="myJobsStateDate"]`),
			logo:   extract.Chain{extract.Attr(`img.companyAvatar`, "src")},
			metadata: []string{
				`.metadataContainer li .metadata div[data-testid="attribute_snippet_testid"]`,
				`.metadataContainer li div[data-testid="attribute_snippet_testid"]`,
				`.metadataContainer li div[data-testid^="attribute_snippet"]`,
			},
			metadataText:    indeedMetadataText,
			classifyJobType: true,
		},
		detail: detailFields{
			title:       extract.Texts(`h1.jobsearch-JobInfoHeader-title`, `h2.jobsearch-JobInfoHeader-title`),
			company:     extract.Texts(`div.jobsearch-CompanyInfoContainer a`, `div[data-company-name="true"] a`, `div[data-company-name="true"]`),
			location:    extract.Texts(`div.jobsearch-JobInfoHeader-subtitle div`, `div[data-testid="inlineHeader-companyLocation"]`),
			description: extract.Texts(`div#jobDescriptionText`),
			descHTML:    extract.Chain{extract.HTML(`div#jobDescriptionText`)},
			logo:        extract.Chain{extract.Attr(`img.jobsearch-CompanyAvatar-image`, "src")},
			salary:      extract.Texts(`div[data-testid="attribute_snippet_compensation"]`, `#salaryInfoAndJobType span`),
			jobType:     extract.Texts(`div[data-testid="attribute_snippet_job_type"]`),
		},
		next: indeedNext,
	}
}

// indeedMetadataText keeps the part of an attribute snippet before a "+N"
// overflow marker, preferring the node's own text children.
func indeedMetadataText(s *goquery.Selection) string {
	text := extract.OwnText(s)
	if text == "" {
		text = s.Text()
	}
	if i := strings.Index(text, "+"); i >= 0 {
		text = text[:i]
	}
	return extract.Clean(text)
}

func indeedNext(page *dom.Page) string {
	href, ok := page.Find(`a[data-testid="pagination-page-next"]`).First().Attr("href")
	if !ok || href == "" {
		return ""
	}
	return urlutil.ResolveURL(page.URL, href)
}
