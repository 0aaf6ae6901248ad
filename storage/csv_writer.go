package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"video-analytics/models"
)

var _ TrendWriter = (*CSVWriter)(nil)

// CSVWriter writes an aligned detail trend (current vs comparison) to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

var trendHeader = []string{
	"date", "views", "likes", "comments", "shares", "favorites", "net_fans", "fans",
	"interactions", "completion_rate", "interaction_rate",
	"compare_date", "compare_views", "compare_likes", "compare_net_fans", "compare_fans",
	"compare_interactions", "compare_completion_rate", "compare_interaction_rate",
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	// UTF-8 BOM so spreadsheet apps pick up the Chinese labels.
	if _, err := f.WriteString("\ufeff"); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write bom: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(trendHeader); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// WriteTrend appends one row per aligned pair.
func (c *CSVWriter) WriteTrend(pairs []models.ComparisonPair) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range pairs {
		row := []string{
			p.Label,
			itoa(p.Views),
			itoa(p.Likes),
			itoa(p.Comments),
			itoa(p.Shares),
			itoa(p.Favorites),
			itoa(p.NetFans),
			itoa(p.Fans),
			itoa(p.Interactions),
			ftoa(p.CompletionRate),
			ftoa(p.InteractionRate),
			p.CompareLabel,
			itoa(p.CompareViews),
			itoa(p.CompareLikes),
			itoa(p.CompareNetFans),
			itoa(p.CompareFans),
			itoa(p.CompareInteractions),
			ftoa(p.CompareCompletionRate),
			ftoa(p.CompareInteractionRate),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) }
