package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/law-makers/jobscout/internal/export"
	"github.com/law-makers/jobscout/internal/ui"
	urlutil "github.com/law-makers/jobscout/internal/utils/url"
)

var (
	detailPlatform string
	detailMarkdown string
	detailJSON     bool
)

var detailCmd = &cobra.Command{
	Use:   "detail <url>",
	Short: "Scrape a single job posting",
	Long: `Loads a job posting page and extracts its title, company, location,
description and, on LinkedIn, the work arrangement.

With --markdown the posting is saved as a Markdown document.`,
	Example: `  # Print a LinkedIn posting
  jobscout detail https://www.linkedin.com/jobs/view/123456

  # Save a SEEK posting as Markdown
  jobscout detail https://www.seek.com.au/job/7654321 --markdown job.md`,
	Args: cobra.ExactArgs(1),
	RunE: runDetail,
}

func init() {
	rootCmd.AddCommand(detailCmd)

	detailCmd.Flags().StringVarP(&detailPlatform, "platform", "p", "", "Force a platform adapter (linkedin, seek, indeed)")
	detailCmd.Flags().StringVarP(&detailMarkdown, "markdown", "m", "", "Save the posting as Markdown to this file")
	detailCmd.Flags().BoolVar(&detailJSON, "json-output", false, "Print the posting as JSON")
}

func runDetail(cmd *cobra.Command, args []string) error {
	pageURL := args[0]
	if err := urlutil.ValidateURL(pageURL); err != nil {
		return err
	}

	a := GetApp(cmd)
	hint, err := parseHint(detailPlatform)
	if err != nil {
		return err
	}
	orch, err := a.Orchestrator(cmd.Context())
	if err != nil {
		return err
	}

	bar := newSpinner("Loading job posting", a.Config.LogLevel == "error" || detailJSON)
	detail, ok, err := orch.ScrapeDetail(cmd.Context(), pageURL, hint)
	_ = bar.Finish()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no job details found on %s", pageURL)
	}

	if detailJSON {
		if err := export.WriteJSON(os.Stdout, detail); err != nil {
			return err
		}
	} else {
		fmt.Printf("\n%s\n", ui.Bold(detail.Title))
		fmt.Println(ui.Dim(rule))
		field := func(label, value string) {
			if value != "" {
				fmt.Printf("  %s\n", ui.Field(label, value))
			}
		}
		field("Company:", detail.Company)
		field("Location:", detail.Location)
		field("Arrangement:", detail.WorkArrangement)
		field("Salary:", detail.Salary)
		field("Type:", detail.JobType)
		field("Posted:", detail.PostedDate)
		field("URL:", detail.JobURL)
		if detail.Description != "" {
			fmt.Printf("\n%s\n", wrapText(detail.Description, 80))
		}
		fmt.Println()
	}

	if detailMarkdown != "" {
		if err := export.SaveDetailMarkdown(detail, detailMarkdown); err != nil {
			return err
		}
		fmt.Printf("%s Saved to %s\n", ui.Success("✓"), ui.Value(detailMarkdown))
	}
	return nil
}
