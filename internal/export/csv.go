// Package export writes scraped jobs to spreadsheet, JSON and Markdown files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/law-makers/jobscout/pkg/models"
)

// CSVHeaders are the spreadsheet columns, in order
var CSVHeaders = []string{"Title", "Company", "Location", "Platform", "URL", "Description", "Salary", "Job Type"}

// DefaultCSVName returns the file name used when none is given, e.g.
// jobs_2024-05-01.csv
func DefaultCSVName(now time.Time) string {
	return fmt.Sprintf("jobs_%s.csv", now.Format("2006-01-02"))
}

// WriteCSV writes jobs with a header row
func WriteCSV(w io.Writer, jobs []models.Job) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(CSVHeaders); err != nil {
		return err
	}
	for _, job := range jobs {
		row := []string{
			job.Title,
			job.Company,
			job.Location,
			string(job.Platform),
			job.JobURL,
			job.Description,
			job.Salary,
			job.JobType,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// SaveCSV writes jobs to path
func SaveCSV(jobs []models.Job, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := WriteCSV(file, jobs); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
