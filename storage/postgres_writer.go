package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"video-analytics/models"
	"video-analytics/utils"
)

const batchSize = 50

var _ RecordWriter = (*PostgresWriter)(nil)

// PostgresWriter exports parsed records and daily buckets of a dataset to
// PostgreSQL. Rows are keyed by dataset id; rewriting a dataset replaces it.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, retrying the ping with
// back-off, runs schema migrations, and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string, retry utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if retry.BaseDelay == 0 {
		retry.BaseDelay = 2 * time.Second
	}
	if err := retry.Do("postgres ping", db.Ping); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pw, err := NewPostgresWriterFromDB(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return pw, nil
}

// NewPostgresWriterFromDB wraps an already open handle and migrates the schema.
func NewPostgresWriterFromDB(db *sql.DB) (*PostgresWriter, error) {
	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS video_records (
			id               SERIAL PRIMARY KEY,
			dataset_id       UUID         NOT NULL,
			record_date      DATE         NOT NULL,
			lawyer           TEXT         NOT NULL DEFAULT '',
			account          TEXT         NOT NULL DEFAULT '',
			video_type       TEXT         NOT NULL DEFAULT '',
			title            TEXT         NOT NULL DEFAULT '',
			views            BIGINT       NOT NULL DEFAULT 0,
			likes            BIGINT       NOT NULL DEFAULT 0,
			comments         BIGINT       NOT NULL DEFAULT 0,
			favorites        BIGINT       NOT NULL DEFAULT 0,
			shares           BIGINT       NOT NULL DEFAULT 0,
			net_fans         BIGINT       NOT NULL DEFAULT 0,
			fans             BIGINT       NOT NULL DEFAULT 0,
			recommendations  BIGINT       NOT NULL DEFAULT 0,
			completion_rate  TEXT         NOT NULL DEFAULT '0%',
			interaction_rate NUMERIC(10,2) NOT NULL DEFAULT 0,
			fan_like_ratio   TEXT         NOT NULL DEFAULT '0%',
			created_at       TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		);

		ALTER TABLE video_records ADD COLUMN IF NOT EXISTS fan_like_ratio TEXT NOT NULL DEFAULT '0%';

		CREATE TABLE IF NOT EXISTS daily_buckets (
			dataset_id       UUID         NOT NULL,
			bucket_date      DATE         NOT NULL,
			views            BIGINT       NOT NULL DEFAULT 0,
			likes            BIGINT       NOT NULL DEFAULT 0,
			net_fans         BIGINT       NOT NULL DEFAULT 0,
			fans             BIGINT       NOT NULL DEFAULT 0,
			interactions     BIGINT       NOT NULL DEFAULT 0,
			completion_rate  NUMERIC(10,2) NOT NULL DEFAULT 0,
			interaction_rate NUMERIC(10,2) NOT NULL DEFAULT 0,
			record_count     INTEGER      NOT NULL DEFAULT 0,
			PRIMARY KEY (dataset_id, bucket_date)
		);

		CREATE INDEX IF NOT EXISTS idx_video_records_dataset ON video_records(dataset_id);
		CREATE INDEX IF NOT EXISTS idx_video_records_date    ON video_records(record_date);
	`)
	return err
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func clearDataset(ex execer, datasetID string) error {
	if _, err := ex.Exec("DELETE FROM video_records WHERE dataset_id = $1", datasetID); err != nil {
		return fmt.Errorf("postgres: clear records: %w", err)
	}
	if _, err := ex.Exec("DELETE FROM daily_buckets WHERE dataset_id = $1", datasetID); err != nil {
		return fmt.Errorf("postgres: clear buckets: %w", err)
	}
	return nil
}

// WriteRecords replaces the stored rows of a dataset in one transaction. A
// failed batch rolls back the clear, so the previous rows survive.
func (pw *PostgresWriter) WriteRecords(datasetID string, records []*models.Record) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := pw.db.Begin()
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback()

	if err := clearDataset(tx, datasetID); err != nil {
		return err
	}
	for i := 0; i < len(records); i += batchSize {
		end := min(i+batchSize, len(records))
		if err := insertRecords(tx, datasetID, records[i:end]); err != nil {
			return fmt.Errorf("postgres: insert records: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

const recordColumns = 17

func insertRecords(ex execer, datasetID string, batch []*models.Record) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*recordColumns)

	for idx, r := range batch {
		valueStrings = append(valueStrings, placeholders(idx*recordColumns, recordColumns))
		valueArgs = append(valueArgs,
			datasetID, r.DateKey, r.Lawyer, r.Account, r.VideoType, r.Title,
			r.Views, r.Likes, r.Comments, r.Favorites, r.Shares,
			r.NetFans, r.Fans, r.Recommendations, r.CompletionRate, r.InteractionRate,
			r.FanLikeRatio)
	}

	query := fmt.Sprintf(`
		INSERT INTO video_records (dataset_id, record_date, lawyer, account, video_type, title,
			views, likes, comments, favorites, shares,
			net_fans, fans, recommendations, completion_rate, interaction_rate,
			fan_like_ratio)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	_, err := ex.Exec(query, valueArgs...)
	return err
}

// WriteBuckets upserts daily buckets of a dataset in one transaction.
func (pw *PostgresWriter) WriteBuckets(datasetID string, buckets []models.Bucket) error {
	if len(buckets) == 0 {
		return nil
	}
	tx, err := pw.db.Begin()
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback()

	for i := 0; i < len(buckets); i += batchSize {
		end := min(i+batchSize, len(buckets))
		if err := insertBuckets(tx, datasetID, buckets[i:end]); err != nil {
			return fmt.Errorf("postgres: insert buckets: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

const bucketColumns = 10

func insertBuckets(ex execer, datasetID string, batch []models.Bucket) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*bucketColumns)

	for idx, b := range batch {
		valueStrings = append(valueStrings, placeholders(idx*bucketColumns, bucketColumns))
		valueArgs = append(valueArgs,
			datasetID, b.SortKey, b.Views, b.Likes, b.NetFans, b.Fans,
			b.Interactions, b.CompletionRate, b.InteractionRate, b.Count)
	}

	query := fmt.Sprintf(`
		INSERT INTO daily_buckets (dataset_id, bucket_date, views, likes, net_fans, fans,
			interactions, completion_rate, interaction_rate, record_count)
		VALUES %s
		ON CONFLICT (dataset_id, bucket_date) DO UPDATE SET
			views = EXCLUDED.views,
			likes = EXCLUDED.likes,
			net_fans = EXCLUDED.net_fans,
			fans = EXCLUDED.fans,
			interactions = EXCLUDED.interactions,
			completion_rate = EXCLUDED.completion_rate,
			interaction_rate = EXCLUDED.interaction_rate,
			record_count = EXCLUDED.record_count
	`, strings.Join(valueStrings, ","))

	_, err := ex.Exec(query, valueArgs...)
	return err
}

// placeholders renders "($n+1,...,$n+count)".
func placeholders(base, count int) string {
	var b strings.Builder
	b.WriteByte('(')
	for i := 1; i <= count; i++ {
		if i > 1 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "$%d", base+i)
	}
	b.WriteByte(')')
	return b.String()
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
