package export

import (
	"fmt"
	"os"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	urlutil "github.com/law-makers/jobscout/internal/utils/url"
	"github.com/law-makers/jobscout/pkg/models"
)

// CleanHTML drops scripts, forms and embedded media from a job description
// and strips every attribute except link and image targets
func CleanHTML(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, link, meta, noscript, iframe, svg, form, input, button, select, textarea, canvas").Remove()

	doc.Find("*").Each(func(i int, s *goquery.Selection) {
		node := s.Get(0)
		var kept []html.Attribute
		for _, attr := range node.Attr {
			switch {
			case node.Data == "a" && (attr.Key == "href" || attr.Key == "title"):
				kept = append(kept, attr)
			case node.Data == "img" && (attr.Key == "src" || attr.Key == "alt"):
				kept = append(kept, attr)
			}
		}
		node.Attr = kept
	})

	out, err := doc.Find("body").Html()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// DetailMarkdown renders a job posting as a Markdown document: a title,
// a field list and the description converted from HTML
func DetailMarkdown(d *models.JobDetail) (string, error) {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	converter.AddRules(md.Rule{
		Filter: []string{"a"},
		Replacement: func(content string, selec *goquery.Selection, opt *md.Options) *string {
			href, ok := selec.Attr("href")
			if !ok {
				return nil
			}
			str := fmt.Sprintf("[%s](%s)", strings.TrimSpace(selec.Text()), urlutil.ResolveURL(d.JobURL, href))
			return &str
		},
	})

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", d.Title)

	fields := []struct{ name, value string }{
		{"Company", d.Company},
		{"Location", d.Location},
		{"Work arrangement", d.WorkArrangement},
		{"Job type", d.JobType},
		{"Salary", d.Salary},
		{"Posted", d.PostedDate},
		{"Platform", string(d.Platform)},
		{"URL", d.JobURL},
	}
	for _, f := range fields {
		if f.value != "" {
			fmt.Fprintf(&sb, "- **%s:** %s\n", f.name, f.value)
		}
	}

	body := d.Description
	if d.DescriptionHTML != "" {
		cleaned, err := CleanHTML(d.DescriptionHTML)
		if err != nil {
			return "", err
		}
		body, err = converter.ConvertString(cleaned)
		if err != nil {
			return "", err
		}
	}
	if body = strings.TrimSpace(body); body != "" {
		fmt.Fprintf(&sb, "\n## Description\n\n%s\n", body)
	}
	return sb.String(), nil
}

// SaveDetailMarkdown writes DetailMarkdown output to path
func SaveDetailMarkdown(d *models.JobDetail, path string) error {
	out, err := DetailMarkdown(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(out), 0644)
}
