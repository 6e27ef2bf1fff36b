package platform

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/law-makers/jobscout/internal/dom"
	"github.com/law-makers/jobscout/pkg/models"
)

func parsePage(t *testing.T, pageURL, html string) *dom.Page {
	t.Helper()
	p, err := dom.Parse(pageURL, html)
	require.NoError(t, err)
	return p
}

func assertNormalized(t *testing.T, jobs []models.Job) {
	t.Helper()
	for _, j := range jobs {
		for _, v := range []string{j.Title, j.Company, j.Location, j.Description, j.Salary, j.PostedDate, j.JobType} {
			assert.Equal(t, strings.TrimSpace(v), v)
			assert.NotContains(t, v, "  ")
			assert.NotContains(t, v, "\n")
		}
		assert.NotEmpty(t, j.Title)
		assert.NotEmpty(t, j.Company)
		assert.True(t, strings.HasPrefix(j.JobURL, "http"), "jobUrl %q must be absolute", j.JobURL)
	}
}

const linkedInCard = `
<div class="job-card-container">
  <a class="job-card-list__title--link" href="/jobs/view/%s/">
    %s
    with verification
  </a>
  <div class="artdeco-entity-lockup__subtitle"><span>  %s </span></div>
  <div class="artdeco-entity-lockup__caption"><span dir="ltr">Sydney,  NSW</span></div>
  <div class="ivm-image-view-model"><img src="https://media.licdn.com/logo%s.png"></div>
  <ul class="artdeco-entity-lockup__metadata">
    <li><span dir="ltr">A$120K/yr - A$140K/yr</span></li>
    <li><span dir="ltr">Hybrid</span></li>
  </ul>
  <div class="job-card-list__description">Build   services</div>
  <time datetime="2026-10-01">2 weeks ago</time>
</div>`

func linkedInCardHTML(id, title, company string) string {
	return fmt.Sprintf(linkedInCard, id, title, company, id)
}

func TestLinkedInScrapeList(t *testing.T) {
	html := `<html><body><ul>` +
		linkedInCardHTML("1", "Go Engineer", "Acme") +
		linkedInCardHTML("2", "Platform Engineer", "Globex") +
		`<div class="job-card-container"><a class="job-card-list__title--link" href="/jobs/view/3">No company</a></div>` +
		`</ul>
		<button class="jobs-search-pagination__button--next" aria-label="View next page">Next</button>
		</body></html>`
	page := parsePage(t, "https://www.linkedin.com/jobs/search?keywords=Go&location=Sydney", html)

	res := NewLinkedIn().ScrapeList(page)

	require.Len(t, res.Jobs, 2)
	first := res.Jobs[0]
	assert.Equal(t, "Go Engineer", first.Title)
	assert.Equal(t, "Acme", first.Company)
	assert.Equal(t, "Sydney, NSW", first.Location)
	assert.Equal(t, "https://www.linkedin.com/jobs/view/1/", first.JobURL)
	assert.Equal(t, "A$120K/yr - A$140K/yr", first.Salary)
	assert.Equal(t, "Build services", first.Description)
	assert.Equal(t, "2 weeks ago", first.PostedDate)
	assert.Equal(t, "https://media.licdn.com/logo1.png", first.Logo())
	assert.Equal(t, models.PlatformLinkedIn, first.Platform)
	assertNormalized(t, res.Jobs)

	assert.Equal(t, "https://www.linkedin.com/jobs/search?keywords=Go&location=Sydney&start=25", res.NextPage)
}

func TestLinkedInNextPage(t *testing.T) {
	base := "https://www.linkedin.com/jobs/search?keywords=Go&start=50"
	tests := []struct {
		name   string
		button string
		want   string
	}{
		{"enabled", `<button class="jobs-search-pagination__button--next">Next</button>`, "https://www.linkedin.com/jobs/search?keywords=Go&start=75"},
		{"disabled attribute", `<button class="jobs-search-pagination__button--next" disabled>Next</button>`, ""},
		{"aria disabled", `<button class="jobs-search-pagination__button--next" aria-disabled="true">Next</button>`, ""},
		{"legacy button", `<button class="artdeco-button artdeco-button--icon-right" aria-label="View next page">Next</button>`, "https://www.linkedin.com/jobs/search?keywords=Go&start=75"},
		{"missing", ``, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := parsePage(t, base, "<html><body>"+tt.button+"</body></html>")
			assert.Equal(t, tt.want, NewLinkedIn().ScrapeList(page).NextPage)
		})
	}
}

func TestLinkedInGuestMarkup(t *testing.T) {
	html := `<ul class="jobs-search__results-list"><li>
	  <div class="base-search-card">
	    <a class="base-card__full-link" href="https://au.linkedin.com/jobs/view/go-developer-42"></a>
	    <h3 class="base-search-card__title"> Go Developer </h3>
	    <h4 class="base-search-card__subtitle"><a>Initech</a></h4>
	    <span class="job-search-card__location">Melbourne, VIC</span>
	  </div></li></ul>`
	page := parsePage(t, "https://www.linkedin.com/jobs/search?keywords=Go", html)

	res := NewLinkedIn().ScrapeList(page)

	require.Len(t, res.Jobs, 1)
	assert.Equal(t, "Go Developer", res.Jobs[0].Title)
	assert.Equal(t, "Initech", res.Jobs[0].Company)
	assert.Equal(t, "https://au.linkedin.com/jobs/view/go-developer-42", res.Jobs[0].JobURL)
	assert.Empty(t, res.NextPage)
}

func TestMalformedLinksFallBack(t *testing.T) {
	html := `<div class="job-card-container">
	  <a class="job-card-list__title--link" href="/jobs/view/%zz">Go Engineer</a>
	  <div class="artdeco-entity-lockup__subtitle"><span>Acme</span></div>
	  <div class="ivm-image-view-model"><img src="javascript:void(0)"></div>
	</div>
	<div class="job-card-container">
	  <a class="job-card-list__title--link" href="mailto:jobs@globex.com">SRE</a>
	  <div class="artdeco-entity-lockup__subtitle"><span>Globex</span></div>
	</div>`
	pageURL := "https://www.linkedin.com/jobs/search?keywords=go"
	page := parsePage(t, pageURL, html)

	res := NewLinkedIn().ScrapeList(page)

	require.Len(t, res.Jobs, 2)
	for _, j := range res.Jobs {
		assert.Equal(t, pageURL, j.JobURL)
		assert.Empty(t, j.Logo())
	}
	assertNormalized(t, res.Jobs)
}

func TestLinkedInScrapeDetail(t *testing.T) {
	html := `<html><body>
	  <h1 class="top-card-layout__title">Senior  Go Engineer</h1>
	  <a class="topcard__org-name-link">Acme</a>
	  <span class="topcard__flavor--bullet">Sydney, NSW</span>
	  <span class="workplace-type">Hybrid</span>
	  <span class="job-type">Full-time</span>
	  <img class="artdeco-entity-image" src="/logo.png">
	  <div class="description__text"><p>Write <b>Go</b>.</p></div>
	</body></html>`
	page := parsePage(t, "https://www.linkedin.com/jobs/view/99", html)

	d, ok := NewLinkedIn().ScrapeDetail(page)

	require.True(t, ok)
	assert.Equal(t, "Senior Go Engineer", d.Title)
	assert.Equal(t, "Acme", d.Company)
	assert.Equal(t, "https://www.linkedin.com/jobs/view/99", d.JobURL)
	assert.Equal(t, "Full-time", d.JobType)
	assert.Equal(t, "Hybrid", d.WorkArrangement)
	assert.Equal(t, "Write Go.", d.Description)
	assert.Contains(t, d.DescriptionHTML, "<b>Go</b>")
	assert.Equal(t, "https://www.linkedin.com/logo.png", d.Logo())
}

func TestScrapeDetailWithoutTitle(t *testing.T) {
	page := parsePage(t, "https://www.linkedin.com/jobs/view/99", `<html><body><p>gone</p></body></html>`)

	d, ok := NewLinkedIn().ScrapeDetail(page)
	assert.False(t, ok)
	assert.Nil(t, d)
}
