package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"video-analytics/models"
)

// CSVReader reads comma-separated exports. Cells that are entirely numeric are
// typed as float64, everything else stays a string.
type CSVReader struct{}

func (r *CSVReader) ReadRows(path string) ([]models.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()
	return r.Read(f)
}

// Read parses CSV content from src.
func (r *CSVReader) Read(src io.Reader) ([]models.RawRow, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: read: %w", err)
	}
	if len(records) == 0 {
		return []models.RawRow{}, nil
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	data := make([][]any, 0, len(records)-1)
	for _, rec := range records[1:] {
		cells := make([]any, len(rec))
		for i, s := range rec {
			cells[i] = typedCell(s)
		}
		data = append(data, cells)
	}
	return rowsFromGrid(header, data), nil
}

func typedCell(s string) any {
	t := strings.TrimSpace(s)
	if t == "" {
		return s
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil {
		return f
	}
	return s
}
