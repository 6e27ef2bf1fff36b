package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/law-makers/jobscout/pkg/models"
)

// WriteJSON writes v as indented JSON
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// SaveJSON writes jobs to path as a JSON array. A nil slice is written as [].
func SaveJSON(jobs []models.Job, path string) error {
	if jobs == nil {
		jobs = []models.Job{}
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, jobs)
}
