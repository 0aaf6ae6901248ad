package storage

import "video-analytics/models"

// ReportWriter is the interface any report export backend must satisfy.
type ReportWriter interface {
	WriteReport(report *models.Report) error
	Close() error
}

// TrendWriter is the interface for exporting an aligned detail trend table.
type TrendWriter interface {
	WriteTrend(pairs []models.ComparisonPair) error
	Close() error
}

// RecordWriter persists parsed records of one dataset.
type RecordWriter interface {
	WriteRecords(datasetID string, records []*models.Record) error
	Close() error
}
