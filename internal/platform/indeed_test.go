package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const indeedResults = `<html><body>
<ul>
  <li><div class="job_seen_beacon">
    <h2 class="jobTitle"><a data-jk="abc" href="/rc/clk?jk=abc"><span title="Go Engineer">Go Engineer</span></a></h2>
    <span data-testid="company-name">Canva</span>
    <div data-testid="text-location">Sydney NSW 2000</div>
    <img class="companyAvatar" src="https://d2q79iu7y748jz.cloudfront.net/logo.png">
    <div class="metadataContainer"><ul>
      <li><div data-testid="attribute_snippet_testid">$120,000 – $140,000 a year</div></li>
      <li><div data-testid="attribute_snippet_testid">Full-time <span>+1</span></div></li>
    </ul></div>
    <div data-testid="jobsnippet_footer"><ul><li>Design and build   APIs…</li></ul></div>
    <span class="date">Posted 3 days ago</span>
  </div></li>
  <li><div class="job_seen_beacon">
    <h2 class="jobTitle"><a data-jk="def" href="/rc/clk?jk=def"><span title="No company">No company</span></a></h2>
  </div></li>
  <li><div class="job_seen_beacon">
    <h2 class="jobTitle"><span title="Data Engineer">Data Engineer</span></h2>
    <a data-jk="ghi" href="/viewjob?jk=ghi">view</a>
    <span class="companyName">Atlassian</span>
    <div class="metadataContainer"><ul>
      <li><div data-testid="attribute_snippet_testid">Contract +2</div></li>
    </ul></div>
  </div></li>
</ul>
<nav><a data-testid="pagination-page-next" href="/jobs?q=go&amp;start=10">Next</a></nav>
</body></html>`

func TestIndeedScrapeList(t *testing.T) {
	page := parsePage(t, "https://au.indeed.com/jobs?q=go&l=Sydney", indeedResults)

	res := NewIndeed().ScrapeList(page)

	require.Len(t, res.Jobs, 2)

	first := res.Jobs[0]
	assert.Equal(t, "Go Engineer", first.Title)
	assert.Equal(t, "Canva", first.Company)
	assert.Equal(t, "Sydney NSW 2000", first.Location)
	assert.Equal(t, "https://au.indeed.com/rc/clk?jk=abc", first.JobURL)
	assert.Equal(t, "$120,000 – $140,000 a year", first.Salary)
	assert.Equal(t, "Full-time", first.JobType)
	assert.Equal(t, "Design and build APIs", first.Description)
	assert.Equal(t, "Posted 3 days ago", first.PostedDate)
	assert.Equal(t, "https://d2q79iu7y748jz.cloudfront.net/logo.png", first.Logo())

	second := res.Jobs[1]
	assert.Equal(t, "Data Engineer", second.Title)
	assert.Equal(t, "https://au.indeed.com/viewjob?jk=ghi", second.JobURL)
	assert.Equal(t, "Contract", second.JobType)
	assert.Equal(t, "", second.Salary)
	assert.Nil(t, second.CompanyLogoURL)
	assertNormalized(t, res.Jobs)

	assert.Equal(t, "https://au.indeed.com/jobs?q=go&start=10", res.NextPage)
}

func TestIndeedJobURLFollowsTitleNode(t *testing.T) {
	tests := []struct {
		name string
		card string
		want string
	}{
		{
			"job id anchor",
			`<a id="job_123" href="/viewjob?jk=123">Go Developer</a>`,
			"https://au.indeed.com/viewjob?jk=123",
		},
		{
			"title class inside anchor",
			`<a href="/viewjob?jk=456"><span class="css-jobTitle-x">Go Developer</span></a>`,
			"https://au.indeed.com/viewjob?jk=456",
		},
		{
			"title without link",
			`<span class="jobTitle">Go Developer</span>`,
			"https://au.indeed.com/jobs?q=go",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := `<div class="job_seen_beacon">` + tt.card + `<span class="companyName">Canva</span></div>`
			page := parsePage(t, "https://au.indeed.com/jobs?q=go", html)

			res := NewIndeed().ScrapeList(page)

			require.Len(t, res.Jobs, 1)
			assert.Equal(t, "Go Developer", res.Jobs[0].Title)
			assert.Equal(t, tt.want, res.Jobs[0].JobURL)
		})
	}
}

func TestIndeedLastPage(t *testing.T) {
	page := parsePage(t, "https://au.indeed.com/jobs?q=go", `<html><body><nav><a data-testid="pagination-page-1">1</a></nav></body></html>`)

	res := NewIndeed().ScrapeList(page)

	assert.Empty(t, res.Jobs)
	assert.Empty(t, res.NextPage)
}

func TestIndeedScrapeDetail(t *testing.T) {
	html := `<html><body>
	  <h1 class="jobsearch-JobInfoHeader-title"><span>Go Engineer - job post</span></h1>
	  <div class="jobsearch-CompanyInfoContainer"><a href="/cmp/canva">Canva</a></div>
	  <div class="jobsearch-JobInfoHeader-subtitle"><div>Sydney NSW</div></div>
	  <div data-testid="attribute_snippet_compensation">$130,000 a year</div>
	  <div data-testid="attribute_snippet_job_type">Permanent, Full-time</div>
	  <div id="jobDescriptionText"><p>Go and Postgres</p></div>
	</body></html>`
	page := parsePage(t, "https://au.indeed.com/viewjob?jk=abc", html)

	d, ok := NewIndeed().ScrapeDetail(page)

	require.True(t, ok)
	assert.Equal(t, "Go Engineer - job post", d.Title)
	assert.Equal(t, "Canva", d.Company)
	assert.Equal(t, "Sydney NSW", d.Location)
	assert.Equal(t, "$130,000 a year", d.Salary)
	assert.Equal(t, "Full-time", d.JobType)
	assert.Equal(t, "Go and Postgres", d.Description)
	assert.Equal(t, "https://au.indeed.com/viewjob?jk=abc", d.JobURL)
}
