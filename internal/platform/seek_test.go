package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/law-makers/jobscout/pkg/models"
)

const seekResults = `<html><body>
<div>
  <article data-card-type="JobCard">
    <a data-automation="jobTitle" href="/job/81234567?type=standard">Full Stack  Developer</a>
    <a data-automation="jobCompany">Atlassian</a>
    <span data-automation="jobCardLocation">Sydney NSW</span>
    <span data-testid="job-card-teaser">Work on   our platform</span>
    <span data-automation="jobSalary">$150,000 - $170,000 per year</span>
    <span data-automation="jobListingDate"><div class="_1kme6z20">3d ago</div></span>
  </article>
  <article data-card-type="JobCard">
    <a data-automation="jobTitle" href="/job/81234568">Backend Engineer</a>
    <span data-automation="jobCardLocation">Melbourne VIC</span>
  </article>
  <article data-card-type="JobCard">
    <a data-automation="jobCompany">Canva</a>
  </article>
</div>
<nav><ul>
  <li><a data-automation="page-1" aria-current="true" href="?page=1">1</a></li>
  <li><a data-automation="page-2" href="?page=2">2</a></li>
  <li><a rel="nofollow next" aria-hidden="false" href="/full-stack-jobs/in-Sydney?page=2">Next</a></li>
</ul></nav>
</body></html>`

func TestSEEKScrapeList(t *testing.T) {
	page := parsePage(t, "https://www.seek.com.au/full-stack-jobs/in-Sydney", seekResults)

	res := NewSEEK().ScrapeList(page)

	require.Len(t, res.Jobs, 1, "cards missing title or company are skipped")
	j := res.Jobs[0]
	assert.Equal(t, "Full Stack Developer", j.Title)
	assert.Equal(t, "Atlassian", j.Company)
	assert.Equal(t, "Sydney NSW", j.Location)
	assert.Equal(t, "https://www.seek.com.au/job/81234567?type=standard", j.JobURL)
	assert.Equal(t, "Work on our platform", j.Description)
	assert.Equal(t, "$150,000 - $170,000 per year", j.Salary)
	assert.Equal(t, "3d ago", j.PostedDate)
	assert.Equal(t, models.PlatformSEEK, j.Platform)
	assertNormalized(t, res.Jobs)

	assert.Equal(t, "https://www.seek.com.au/full-stack-jobs/in-Sydney?page=2", res.NextPage)
}

func TestSEEKCardSelectorPriority(t *testing.T) {
	html := `<div data-testid="job-card">
	    <a data-testid="job-card-title" href="/job/1">Newer Markup</a>
	    <a data-automation="jobCompany">Acme</a>
	  </div>
	  <article role="article">
	    <a data-automation="jobTitle" href="/job/2">Older Markup</a>
	    <a data-automation="jobCompany">Acme</a>
	  </article>`
	page := parsePage(t, "https://www.seek.com.au/jobs", html)

	res := NewSEEK().ScrapeList(page)

	require.Len(t, res.Jobs, 1)
	assert.Equal(t, "Newer Markup", res.Jobs[0].Title)
	assert.Equal(t, "https://www.seek.com.au/job/1", res.Jobs[0].JobURL)
}

func TestSEEKBareTitleAnchorsWinOverAutomationCards(t *testing.T) {
	html := `<a data-testid="job-card-title" href="/job/1">Go Developer</a>
	  <div data-automation="job-card">
	    <a data-automation="jobTitle" href="/job/2">Platform Engineer</a>
	    <a data-automation="jobCompany">Acme</a>
	  </div>`
	page := parsePage(t, "https://www.seek.com.au/jobs", html)

	res := NewSEEK().ScrapeList(page)

	assert.Empty(t, res.Jobs, "title anchors hold no company so the page yields nothing")
}

func TestSEEKNextPage(t *testing.T) {
	tests := []struct {
		name string
		nav  string
		want string
	}{
		{
			"hidden next link",
			`<ul><li><a rel="next" aria-hidden="true" href="?page=3">Next</a></li></ul>`,
			"",
		},
		{
			"page link fallback",
			`<ul><li><a data-automation="page-1" aria-current="true" href="?page=1">1</a></li><li><a data-automation="page-2" href="?page=2">2</a></li></ul>`,
			"https://www.seek.com.au/jobs?page=2",
		},
		{
			"current page is last",
			`<ul><li><a data-automation="page-1" href="?page=1">1</a></li><li><a data-automation="page-2" aria-current="true" href="?page=2">2</a></li></ul>`,
			"",
		},
		{"no pagination", ``, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := parsePage(t, "https://www.seek.com.au/jobs", "<html><body>"+tt.nav+"</body></html>")
			assert.Equal(t, tt.want, NewSEEK().ScrapeList(page).NextPage)
		})
	}
}

func TestSEEKScrapeDetail(t *testing.T) {
	html := `<html><body>
	  <h1 data-automation="job-detail-title">Go Developer</h1>
	  <span data-automation="advertiser-name">Atlassian</span>
	  <span data-automation="job-location">Sydney NSW</span>
	  <span data-automation="job-work-type">Full time</span>
	  <span data-automation="job-salary">$160k + super</span>
	  <div data-automation="advertiser-logo"><img src="https://image-service-cdn.seek.com.au/logo.png"></div>
	  <div data-automation="jobDescription"><ul>
	    <li>Go</li>
	    <li>Kafka</li>
	  </ul></div>
	</body></html>`
	page := parsePage(t, "https://www.seek.com.au/job/81234567", html)

	d, ok := NewSEEK().ScrapeDetail(page)

	require.True(t, ok)
	assert.Equal(t, "Go Developer", d.Title)
	assert.Equal(t, "Atlassian", d.Company)
	assert.Equal(t, "Full time", d.JobType)
	assert.Equal(t, "$160k + super", d.Salary)
	assert.Equal(t, "https://www.seek.com.au/job/81234567", d.JobURL)
	assert.Equal(t, "https://image-service-cdn.seek.com.au/logo.png", d.Logo())
	assert.Equal(t, "Go Kafka", d.Description)
}

func TestSEEKSearchURL(t *testing.T) {
	assert.Equal(t, "https://www.seek.com.au/full-stack-jobs/in-sydney-nsw", NewSEEK().SearchURL("Full Stack", "Sydney NSW"))
	assert.Equal(t, "https://www.seek.com.au/golang-jobs", NewSEEK().SearchURL("golang", ""))
}
