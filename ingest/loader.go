package ingest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"video-analytics/config"
	"video-analytics/models"
	"video-analytics/utils"
)

// ErrUnsupportedFormat is returned for files that are neither .xlsx nor .csv.
var ErrUnsupportedFormat = errors.New("ingest: unsupported file format")

// RowReader reads every data row of one file.
type RowReader interface {
	ReadRows(path string) ([]models.RawRow, error)
}

// Loader reads all configured input files concurrently.
type Loader struct {
	cfg    *config.Config
	logger *utils.Logger
	pool   *utils.WorkerPool

	readers map[string]RowReader
}

// New creates a Loader with the xlsx and csv readers registered.
func New(cfg *config.Config, logger *utils.Logger) *Loader {
	return &Loader{
		cfg:    cfg,
		logger: logger,
		pool:   utils.NewWorkerPool(cfg.MaxConcurrency),
		readers: map[string]RowReader{
			".xlsx": &XLSXReader{Sheet: cfg.SheetName},
			".csv":  &CSVReader{},
		},
	}
}

// Load reads every input path and returns the rows in path order. Duplicate
// paths are read once. A file that fails to read is logged and skipped; the
// joined errors are returned alongside whatever rows were read.
func (l *Loader) Load() ([]models.RawRow, error) {
	seen := utils.NewKeySet()
	paths := make([]string, 0, len(l.cfg.InputPaths))
	for _, p := range l.cfg.InputPaths {
		clean := filepath.Clean(p)
		if !seen.Add(clean) {
			l.logger.Debug("[ingest] Duplicate input skipped: %s", clean)
			continue
		}
		paths = append(paths, clean)
	}
	l.logger.Debug("[ingest] %d distinct inputs of %d listed", seen.Size(), len(l.cfg.InputPaths))

	results := make([][]models.RawRow, len(paths))
	errs := make([]error, len(paths))
	var mu sync.Mutex

	for i, path := range paths {
		i, path := i, path
		l.pool.Submit(func() {
			rows, err := l.readFile(path)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				l.logger.Error("[ingest] %s: %v", path, err)
				errs[i] = err
				return
			}
			l.logger.Info("[ingest] Read %d rows from %s", len(rows), path)
			results[i] = rows
		})
	}
	l.pool.Wait()

	all := make([]models.RawRow, 0)
	for _, rows := range results {
		all = append(all, rows...)
	}
	return all, errors.Join(errs...)
}

func (l *Loader) readFile(path string) ([]models.RawRow, error) {
	ext := strings.ToLower(filepath.Ext(path))
	r, ok := l.readers[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return r.ReadRows(path)
}

// rowsFromGrid turns a header row plus data rows into RawRows. Empty header
// cells and fully empty data rows are skipped.
func rowsFromGrid(header []string, data [][]any) []models.RawRow {
	rows := make([]models.RawRow, 0, len(data))
	for _, cells := range data {
		row := make(models.RawRow, len(header))
		empty := true
		for i, h := range header {
			h = strings.TrimSpace(h)
			if h == "" || i >= len(cells) {
				continue
			}
			v := cells[i]
			if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
				continue
			}
			row[h] = v
			empty = false
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows
}
