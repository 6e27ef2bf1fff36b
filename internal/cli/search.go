package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/law-makers/jobscout/internal/app"
	"github.com/law-makers/jobscout/internal/session"
	"github.com/law-makers/jobscout/internal/state"
	"github.com/law-makers/jobscout/internal/ui"
	"github.com/law-makers/jobscout/pkg/models"
)

var (
	searchKeywords  string
	searchLocation  string
	searchPlatforms []string
	searchOutput    string
	searchLogos     bool
	searchLogoDir   string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search every enabled job site and merge the results",
	Long: `Builds the search page URL of each enabled platform from the keywords and
location, scrapes every result page of each, and prints the merged list with
duplicates removed.

The location is remembered and used the next time --location is omitted.`,
	Example: `  # Search with the saved location
  jobscout search -k "golang developer"

  # Search two sites in parallel and export to CSV
  jobscout search -k "platform engineer" -l Sydney -p seek -p indeed --parallel 2 -o auto

  # Export as JSON and download company logos
  jobscout search -k sre -o jobs.json --logos`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&searchKeywords, "keywords", "k", "", "Search keywords (default from config)")
	searchCmd.Flags().StringVarP(&searchLocation, "location", "l", "", "Search location (default: last used)")
	searchCmd.Flags().StringArrayVarP(&searchPlatforms, "platform", "p", nil, "Only search these platforms (linkedin, seek, indeed)")
	searchCmd.Flags().StringVarP(&searchOutput, "output", "o", "", "Save results to a .csv or .json file (\"auto\" for jobs_<date>.csv)")
	searchCmd.Flags().BoolVar(&searchLogos, "logos", false, "Download company logos")
	searchCmd.Flags().StringVar(&searchLogoDir, "logo-dir", "", "Directory for downloaded logos")
}

func runSearch(cmd *cobra.Command, args []string) error {
	a := GetApp(cmd)
	ctx := cmd.Context()

	keywords := strings.TrimSpace(searchKeywords)
	if keywords == "" {
		keywords = a.Config.Keywords
	}
	location := strings.TrimSpace(searchLocation)
	if location == "" {
		location = a.Config.Location
	}
	if location == "" {
		location = state.LastLocation(a.Store)
	}
	if err := state.SaveLastLocation(a.Store, location); err != nil {
		log.Warn().Err(err).Msg("Failed to save location")
	}

	targets, err := filterTargets(session.SearchTargets(a.Registry, keywords, location), searchPlatforms)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return fmt.Errorf("no enabled platforms to search; see 'jobscout sites'")
	}

	orch, err := a.Orchestrator(ctx)
	if err != nil {
		return err
	}

	quiet := a.Config.LogLevel == "error"
	if !quiet {
		fmt.Printf("\n%s %s %s\n", ui.Bold("Searching"), ui.Value(keywords), ui.Dim("in "+orDefault(location, "any location")))
	}

	bar := newSpinner("Opening search pages", quiet)
	batch, err := orch.RunAll(ctx, targets, a.Config.Parallel, pageProgress(bar))
	_ = bar.Finish()
	if err != nil {
		return err
	}

	jobs := batch.Jobs()
	if !quiet {
		printSessions(os.Stdout, batch.Sessions)
		printJobs(os.Stdout, jobs)
	}

	if searchOutput != "" {
		path := outputPath(searchOutput)
		if err := saveJobs(jobs, path); err != nil {
			return err
		}
		printSaved(path, len(jobs))
	}

	if searchLogos {
		downloadLogos(cmd, a, jobs)
	}
	return nil
}

// filterTargets keeps the targets whose platform is named in ids. No ids
// keeps all.
func filterTargets(targets []session.Target, ids []string) ([]session.Target, error) {
	if len(ids) == 0 {
		return targets, nil
	}
	want := make(map[models.Platform]bool)
	for _, id := range ids {
		p, err := models.ParsePlatform(id)
		if err != nil {
			return nil, err
		}
		want[p] = true
	}
	var out []session.Target
	for _, t := range targets {
		if want[t.Platform] {
			out = append(out, t)
		}
	}
	return out, nil
}

func downloadLogos(cmd *cobra.Command, a *app.Application, jobs []models.Job) {
	dir := searchLogoDir
	if dir == "" {
		dir = a.LogoDir()
	}

	results := a.LogoPool().DownloadLogos(cmd.Context(), jobs, dir)
	saved := 0
	for _, r := range results {
		if r.Success() {
			saved++
			continue
		}
		log.Debug().Err(r.Error).Str("url", r.URL).Msg("Logo download failed")
	}
	fmt.Printf("%s Downloaded %d/%d logos to %s\n", ui.Success("✓"), saved, len(results), ui.Value(dir))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
