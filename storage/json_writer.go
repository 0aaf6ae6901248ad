package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"video-analytics/models"
)

var _ ReportWriter = (*JSONWriter)(nil)

// JSONWriter exports a full report as indented JSON.
type JSONWriter struct {
	path string
}

// NewJSONWriter prepares the output directory for path.
func NewJSONWriter(path string) (*JSONWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("json: create output dir: %w", err)
	}
	return &JSONWriter{path: path}, nil
}

// WriteReport replaces the file with the encoded report.
func (j *JSONWriter) WriteReport(report *models.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("json: marshal report: %w", err)
	}
	if err := os.WriteFile(j.path, data, 0644); err != nil {
		return fmt.Errorf("json: write %q: %w", j.path, err)
	}
	return nil
}

func (j *JSONWriter) Close() error { return nil }
