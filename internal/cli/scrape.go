package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/law-makers/jobscout/internal/export"
	"github.com/law-makers/jobscout/internal/platform"
	"github.com/law-makers/jobscout/internal/session"
	urlutil "github.com/law-makers/jobscout/internal/utils/url"
	"github.com/law-makers/jobscout/pkg/models"
)

var (
	scrapeAll      bool
	scrapePlatform string
	scrapeOutput   string
	scrapeJSON     bool
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape <url>",
	Short: "Scrape a job search results page",
	Long: `Loads a search results page and scrapes the job cards on it.

With --all the next-page links are followed until the last page. The platform
is detected from the URL unless --platform is given.`,
	Example: `  # Scrape one page
  jobscout scrape "https://au.indeed.com/jobs?q=golang&l=Sydney"

  # Follow every page and save to CSV
  jobscout scrape "https://www.seek.com.au/golang-jobs/in-Melbourne" --all -o auto

  # Force the LinkedIn adapter and print JSON
  jobscout scrape "https://www.linkedin.com/jobs/search?keywords=go" --platform linkedin --json`,
	Args: cobra.ExactArgs(1),
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().BoolVarP(&scrapeAll, "all", "a", false, "Follow next-page links until the last page")
	scrapeCmd.Flags().StringVarP(&scrapePlatform, "platform", "p", "", "Force a platform adapter (linkedin, seek, indeed)")
	scrapeCmd.Flags().StringVarP(&scrapeOutput, "output", "o", "", "Save results to a .csv or .json file (\"auto\" for jobs_<date>.csv)")
	scrapeCmd.Flags().BoolVar(&scrapeJSON, "json-output", false, "Print results as JSON")
}

func runScrape(cmd *cobra.Command, args []string) error {
	pageURL := args[0]
	if err := urlutil.ValidateURL(pageURL); err != nil {
		return err
	}

	a := GetApp(cmd)
	ctx := cmd.Context()

	hint, err := parseHint(scrapePlatform)
	if err != nil {
		return err
	}

	orch, err := a.Orchestrator(ctx)
	if err != nil {
		return err
	}

	quiet := a.Config.LogLevel == "error" || scrapeJSON
	var jobs []models.Job
	if scrapeAll {
		p := hint
		if p == "" {
			adapter, ok := a.Registry.Resolve(pageURL)
			if !ok {
				return fmt.Errorf("%w: %s", platform.ErrUnsupportedPlatform, pageURL)
			}
			p = adapter.Platform()
		}

		bar := newSpinner("Opening "+string(p), quiet)
		res, err := orch.ScrapeAllPages(ctx, p, pageURL, pageProgress(bar))
		_ = bar.Finish()
		if err != nil {
			return err
		}
		jobs = res.Jobs
		if !quiet {
			printSessions(os.Stdout, []*session.Result{res})
		}
	} else {
		bar := newSpinner("Scraping page", quiet)
		res, err := orch.ScrapeCurrentPage(ctx, pageURL, hint)
		_ = bar.Finish()
		if err != nil {
			return err
		}
		jobs = res.Jobs
		if !quiet && res.HasNext() {
			fmt.Printf("\nNext page: %s\n", res.NextPage)
		}
	}

	switch {
	case scrapeJSON:
		if jobs == nil {
			jobs = []models.Job{}
		}
		if err := export.WriteJSON(os.Stdout, jobs); err != nil {
			return err
		}
	case !quiet:
		printJobs(os.Stdout, jobs)
	}

	if scrapeOutput != "" {
		path := outputPath(scrapeOutput)
		if err := saveJobs(jobs, path); err != nil {
			return err
		}
		printSaved(path, len(jobs))
	}
	return nil
}

func parseHint(id string) (models.Platform, error) {
	if id == "" {
		return "", nil
	}
	return models.ParsePlatform(id)
}
