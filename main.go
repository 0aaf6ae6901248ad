package main

import (
	"fmt"
	"os"

	"video-analytics/config"
	"video-analytics/ingest"
	"video-analytics/models"
	"video-analytics/services"
	"video-analytics/storage"
	"video-analytics/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLoggerTo(os.Stdout, cfg.LogLevel)

	logger.Info("=== Video Analytics starting ===")
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration: %v", err)
		os.Exit(1)
	}
	logger.Info("Config: inputs: %v | granularity: %s | funnel: %s | concurrency: %d",
		cfg.InputPaths, cfg.Granularity, cfg.FunnelScope, cfg.MaxConcurrency)

	loader := ingest.New(cfg, logger)
	rows, err := loader.Load()
	if err != nil {
		logger.Error("Some inputs failed to load: %v", err)
	}
	if len(rows) == 0 {
		logger.Error("No rows were read. Exiting.")
		os.Exit(1)
	}

	parser := services.NewParser(logger)
	records, err := parser.Parse(rows)
	if err != nil {
		logger.Error("Parse failed: %v", err)
		os.Exit(1)
	}
	if len(records) == 0 {
		logger.Error("All rows were dropped during parsing. Exiting.")
		os.Exit(1)
	}

	ds := services.NewDataset(records)
	logger.Info("Dataset %s: %d records", ds.ID(), ds.Len())

	insightSvc := services.NewInsightService(logger)
	opts, err := buildOptions(cfg, insightSvc.DefaultOptions(ds))
	if err != nil {
		logger.Error("Invalid range selection: %v", err)
		os.Exit(1)
	}

	report := insightSvc.Generate(ds, opts)
	insightSvc.Print(report)

	exportReport(cfg, logger, report)
	if cfg.PostgresEnabled {
		exportPostgres(cfg, logger, ds)
	}

	fmt.Printf("  Done. Report → %s | Trend → %s\n\n", cfg.JSONOutputPath, cfg.CSVOutputPath)
}

// buildOptions overlays explicit config selections on the dataset defaults.
func buildOptions(cfg *config.Config, opts services.ReportOptions) (services.ReportOptions, error) {
	ranges := []struct {
		name       string
		target     *models.DateRange
		start, end string
	}{
		{"current range", &opts.Current, cfg.RangeStart, cfg.RangeEnd},
		{"compare range", &opts.Compare, cfg.CompareStart, cfg.CompareEnd},
		{"trend range", &opts.Trend, cfg.TrendStart, cfg.TrendEnd},
		{"insight range", &opts.Insight, cfg.InsightStart, cfg.InsightEnd},
	}
	for _, r := range ranges {
		if r.start == "" && r.end == "" {
			continue
		}
		dr, err := overrideRange(*r.target, r.start, r.end)
		if err != nil {
			return opts, fmt.Errorf("%s: %w", r.name, err)
		}
		*r.target = dr
	}

	opts.Granularity = models.Granularity(cfg.Granularity)
	opts.TrendGranularity = models.Granularity(cfg.TrendGranularity)
	for _, g := range []models.Granularity{opts.Granularity, opts.TrendGranularity} {
		if !g.Valid() {
			return opts, fmt.Errorf("granularity %q is not supported", g)
		}
	}

	opts.FunnelScope = services.FunnelScope(cfg.FunnelScope)
	opts.FunnelPeriod = cfg.FunnelPeriod
	opts.TopN = cfg.TopN
	opts.MonthlyTopN = cfg.MonthlyTopN
	if cfg.MonthA != "" {
		opts.MonthA = cfg.MonthA
	}
	if cfg.MonthB != "" {
		opts.MonthB = cfg.MonthB
	}
	if cfg.VideoMonth != "" {
		opts.VideoMonth = cfg.VideoMonth
	}
	return opts, nil
}

func overrideRange(def models.DateRange, start, end string) (models.DateRange, error) {
	if start == "" {
		start = def.Start.Format(services.DateKeyLayout)
	}
	if end == "" {
		end = def.End.Format(services.DateKeyLayout)
	}
	return services.NewDateRange(start, end)
}

func exportReport(cfg *config.Config, logger *utils.Logger, report *models.Report) {
	jsonWriter, err := storage.NewJSONWriter(cfg.JSONOutputPath)
	if err != nil {
		logger.Error("Failed to create JSON writer: %v", err)
	} else {
		defer jsonWriter.Close()
		if err := jsonWriter.WriteReport(report); err != nil {
			logger.Error("JSON write failed: %v", err)
		} else {
			logger.Info("Report saved to %s", cfg.JSONOutputPath)
		}
	}

	csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
		return
	}
	defer csvWriter.Close()
	if err := csvWriter.WriteTrend(report.DetailTrend); err != nil {
		logger.Error("CSV write failed: %v", err)
	} else {
		logger.Info("Detail trend saved to %s", cfg.CSVOutputPath)
	}
}

func exportPostgres(cfg *config.Config, logger *utils.Logger, ds *services.Dataset) {
	pgWriter, err := storage.NewPostgresWriter(cfg.DSN(), utils.RetryConfig{
		MaxAttempts: cfg.MaxRetries,
		Logger:      logger,
	})
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		return
	}
	defer pgWriter.Close()

	if err := pgWriter.WriteRecords(ds.ID(), ds.Records()); err != nil {
		logger.Error("PostgreSQL record write failed: %v", err)
		return
	}

	if bounds, ok := ds.Bounds(); ok {
		daily := services.Aggregate(ds.Records(), bounds, models.Daily)
		if err := pgWriter.WriteBuckets(ds.ID(), daily); err != nil {
			logger.Error("PostgreSQL bucket write failed: %v", err)
			return
		}
	}
	logger.Info("Dataset %s stored in PostgreSQL (video_records, daily_buckets)", ds.ID())
}
