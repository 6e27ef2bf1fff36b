package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/law-makers/jobscout/internal/ui"
	"github.com/law-makers/jobscout/pkg/models"
)

var pushCmd = &cobra.Command{
	Use:   "push <jobs.json>",
	Short: "Send scraped jobs to the JobJourney app",
	Long: `Reads a JSON file written by 'search' or 'scrape' and posts each job to the
JobJourney app. A local development server is used when one answers on its
health endpoint, otherwise the hosted app.`,
	Example: `  # Save a search and push it
  jobscout search -k golang -o jobs.json
  jobscout push jobs.json`,
	Args: cobra.ExactArgs(1),
	RunE: runPush,
}

func init() {
	rootCmd.AddCommand(pushCmd)
}

func runPush(cmd *cobra.Command, args []string) error {
	jobs, err := readJobs(args[0])
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		fmt.Println(ui.Info("No jobs to push."))
		return nil
	}

	a := GetApp(cmd)
	client, err := a.APIClient(cmd.Context())
	if err != nil {
		return err
	}

	bar := newCounter(len(jobs), "Pushing to "+client.BaseURL(), a.Config.LogLevel == "error")
	res := client.SaveAll(cmd.Context(), jobs, func(done int) {
		_ = bar.Set(done)
	})
	_ = bar.Finish()

	fmt.Printf("\n%s\n", ui.Bold("Summary:"))
	fmt.Printf("  %s %s\n", ui.Bold("Saved:"), ui.Success(fmt.Sprintf("%d", res.Saved)))
	fmt.Printf("  %s %s\n", ui.Bold("Failed:"), ui.Error(fmt.Sprintf("%d", res.Failed)))
	for _, e := range res.Errors {
		fmt.Printf("    %s\n", ui.Dim(e.Error()))
	}
	if res.Failed > 0 {
		return fmt.Errorf("%d of %d jobs failed to push", res.Failed, len(jobs))
	}
	return nil
}

func readJobs(path string) ([]models.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read jobs file: %w", err)
	}
	var jobs []models.Job
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("failed to parse jobs file %s: %w", path, err)
	}
	return jobs, nil
}
