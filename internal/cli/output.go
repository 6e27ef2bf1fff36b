package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/law-makers/jobscout/internal/export"
	"github.com/law-makers/jobscout/internal/session"
	"github.com/law-makers/jobscout/internal/ui"
	"github.com/law-makers/jobscout/pkg/models"
)

const rule = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

// newSpinner returns an indeterminate progress indicator on stderr. It is
// silent when quiet is set.
func newSpinner(description string, quiet bool) *progressbar.ProgressBar {
	w := io.Writer(os.Stderr)
	if quiet {
		w = io.Discard
	}
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

// newCounter returns a progress bar counting to total on stderr
func newCounter(total int, description string, quiet bool) *progressbar.ProgressBar {
	w := io.Writer(os.Stderr)
	if quiet {
		w = io.Discard
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

// pageProgress reports session page transitions on bar
func pageProgress(bar *progressbar.ProgressBar) session.ProgressFunc {
	return func(page int, p models.Platform) {
		bar.Describe(fmt.Sprintf("Scraping %s page %d", p, page))
		_ = bar.Add(1)
	}
}

// saveJobs writes jobs to path as JSON when it ends in .json, otherwise CSV
func saveJobs(jobs []models.Job, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return export.SaveJSON(jobs, path)
	}
	return export.SaveCSV(jobs, path)
}

// outputPath resolves the --output flag. "auto" picks the dated CSV name.
func outputPath(flag string) string {
	if flag == "auto" {
		return export.DefaultCSVName(time.Now())
	}
	return flag
}

func printJobs(w io.Writer, jobs []models.Job) {
	if len(jobs) == 0 {
		fmt.Fprintln(w, "\n"+ui.Info("No jobs found."))
		return
	}
	fmt.Fprintf(w, "\n%s %s\n", ui.Bold("Jobs"), ui.Dim(fmt.Sprintf("(%d)", len(jobs))))
	fmt.Fprintln(w, ui.Dim(rule))
	for i, job := range jobs {
		fmt.Fprintf(w, "%3d. %s\n", i+1, ui.Value(job.Title))
		meta := []string{job.Company}
		if job.Location != "" {
			meta = append(meta, job.Location)
		}
		meta = append(meta, string(job.Platform))
		fmt.Fprintf(w, "     %s\n", ui.Dim(strings.Join(meta, " · ")))
		if job.Salary != "" {
			fmt.Fprintf(w, "     %s\n", ui.Success(job.Salary))
		}
		if job.JobURL != "" {
			fmt.Fprintf(w, "     %s%s%s\n", ui.ColorCyan, job.JobURL, ui.ColorReset)
		}
	}
}

func printSessions(w io.Writer, sessions []*session.Result) {
	fmt.Fprintf(w, "\n%s\n", ui.Bold("Sessions"))
	fmt.Fprintln(w, ui.Dim(rule))
	for _, res := range sessions {
		status := ui.Success(string(res.Outcome))
		if res.Outcome != session.OutcomeCompleted {
			status = ui.Info(string(res.Outcome))
		}
		fmt.Fprintf(w, "  %-9s %s  %s\n", res.Platform, status,
			ui.Dim(fmt.Sprintf("%d jobs, %d pages, %s", len(res.Jobs), res.Pages, res.Duration.Round(time.Millisecond))))
		if msg := res.ErrorMessage(); msg != "" {
			fmt.Fprintf(w, "            %s\n", ui.Error(msg))
		}
	}
}

func printSaved(path string, count int) {
	fmt.Printf("%s Saved %d jobs to %s\n", ui.Success("✓"), count, ui.Value(path))
}
