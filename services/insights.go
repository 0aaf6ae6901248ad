package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"video-analytics/models"
	"video-analytics/utils"
)

// ReportOptions are the view selections a report is computed for.
type ReportOptions struct {
	Current      models.DateRange
	Compare      models.DateRange
	Granularity  models.Granularity

	// Trend is the standalone whole-period chart; Insight scopes the summary.
	Trend            models.DateRange
	TrendGranularity models.Granularity
	Insight          models.DateRange

	FunnelScope  FunnelScope
	FunnelPeriod string
	MonthA       string
	MonthB       string
	VideoMonth   string
	TopN         int
	MonthlyTopN  int
}

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// DefaultOptions returns the selections a fresh dataset starts with: comparison
// ranges split at the median date, trend and summary over all data, and the
// first and last month compared.
func (s *InsightService) DefaultOptions(ds *Dataset) ReportOptions {
	opts := ReportOptions{
		Granularity:      models.Daily,
		TrendGranularity: models.Daily,
		FunnelScope:      ScopeAll,
		TopN:             10,
		MonthlyTopN:      5,
	}
	if cur, cmp, ok := ds.DefaultRanges(); ok {
		opts.Current, opts.Compare = cur, cmp
	}
	if bounds, ok := ds.Bounds(); ok {
		opts.Trend, opts.Insight = bounds, bounds
	}
	if months := ds.Months(); len(months) > 0 {
		opts.MonthA = months[0]
		opts.MonthB = months[len(months)-1]
		opts.VideoMonth = months[0]
	}
	return opts
}

// Generate computes every derived view of ds for opts.
func (s *InsightService) Generate(ds *Dataset, opts ReportOptions) *models.Report {
	records := ds.Records()
	opts.Granularity = s.granularity(opts.Granularity)
	opts.TrendGranularity = s.granularity(opts.TrendGranularity)

	report := &models.Report{
		DatasetID:        ds.ID(),
		GeneratedAt:      time.Now(),
		Records:          len(records),
		Current:          opts.Current,
		Compare:          opts.Compare,
		Granularity:      opts.Granularity,
		TrendRange:       opts.Trend,
		TrendGranularity: opts.TrendGranularity,
		InsightRange:     opts.Insight,
		FunnelScope:      string(opts.FunnelScope),
		Months:           ds.Months(),
	}
	if bounds, ok := ds.Bounds(); ok {
		report.DataRange = bounds
	}

	currentData := FilterRange(records, opts.Current)
	compareData := FilterRange(records, opts.Compare)

	report.CurrentKPIs = SumKPIs(currentData)
	report.CompareKPIs = SumKPIs(compareData)
	report.KPIComparison = CompareKPIs(report.CurrentKPIs, report.CompareKPIs)

	report.Trend = Aggregate(records, opts.Trend, opts.TrendGranularity)

	report.DetailTrend = DetailTrend(records, opts.Current, opts.Compare, opts.Granularity)
	report.AverageInteractionRate = round2(AverageInteractionRate(report.DetailTrend))
	report.Correlation = CorrelationMatrix(report.DetailTrend)
	report.FanHealth, report.AverageHealthRate = FanHealth(report.DetailTrend)

	period := opts.FunnelPeriod
	if period == "" {
		quarters, months := AvailablePeriods(records)
		switch {
		case opts.FunnelScope == ScopeQuarterly && len(quarters) > 0:
			period = quarters[0]
		case opts.FunnelScope == ScopeMonthly && len(months) > 0:
			period = months[0]
		}
	}
	if opts.FunnelScope == ScopeQuarterly || opts.FunnelScope == ScopeMonthly {
		report.FunnelPeriod = period
	}
	report.Funnel = Funnel(FilterPeriod(records, opts.FunnelScope, period))

	report.ExplosiveVideos = TopByViews(currentData, opts.TopN)
	report.MonthComparison = CompareMonths(MonthlyTotals(records), opts.MonthA, opts.MonthB)
	report.MonthlyTopVideos = MonthlyTopVideos(records, opts.VideoMonth, opts.MonthlyTopN)

	report.Summary = Summarize(FilterRange(records, opts.Insight))

	s.logger.Info("[insights] Report for dataset %s: %d records, %d %s buckets, %d in current range",
		report.DatasetID, report.Records, len(report.DetailTrend), opts.Granularity, len(currentData))
	return report
}

func (s *InsightService) Print(r *models.Report) {
	sep := strings.Repeat("═", 64)
	thin := strings.Repeat("─", 64)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 SHORT-VIDEO PERFORMANCE REPORT\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Records        : \033[1m%d\033[0m\n", r.Records)
	fmt.Printf("  Data range     : %s\n", formatRange(r.DataRange))
	fmt.Printf("  Current range  : %s\n", formatRange(r.Current))
	fmt.Printf("  Compare range  : %s\n", formatRange(r.Compare))
	fmt.Println()

	// KPI cards
	fmt.Printf("\033[1;33m  Current vs Comparison\033[0m\n")
	fmt.Printf("  %s\n", thin)
	for _, k := range r.KPIComparison {
		color := "32"
		if k.Delta < 0 {
			color = "31"
		}
		fmt.Printf("  %-10s %12d  vs %12d   \033[1;%sm%+.1f%%\033[0m\n",
			k.Name, k.Current, k.Compare, color, k.PercentChange)
	}
	fmt.Println()

	// Detail trend
	fmt.Printf("\033[1;33m  %s Trend (current | comparison)\033[0m\n", titleGranularity(r.Granularity))
	fmt.Printf("  %s\n", thin)
	if len(r.DetailTrend) == 0 {
		fmt.Printf("  No data in this range\n")
	}
	for _, p := range r.DetailTrend {
		fmt.Printf("  %-28s views %8d | %-28s views %8d\n",
			truncate(p.Label, 28), p.Views, truncate(p.CompareLabel, 28), p.CompareViews)
	}
	fmt.Printf("  Avg interaction rate: %.2f%%   Avg fan health: %.2f%%\n",
		r.AverageInteractionRate, r.AverageHealthRate)
	fmt.Println()

	// Funnel
	fmt.Printf("\033[1;33m  Lifecycle Funnel (%s %s)\033[0m\n", r.FunnelScope, r.FunnelPeriod)
	fmt.Printf("  %s\n", thin)
	if len(r.Funnel) == 0 {
		fmt.Printf("  No data for this period\n")
	}
	for _, st := range r.Funnel {
		fmt.Printf("  %-15s %12d   step %7s%%   of views %7s%%\n",
			st.Name, st.Value, st.ConversionRate, st.PercentOfViews)
	}
	fmt.Println()

	// Top videos
	fmt.Printf("\033[1;33m  Top Videos by Views\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.ExplosiveVideos) == 0 {
		fmt.Printf("  No videos in this range\n")
	}
	for i, v := range r.ExplosiveVideos {
		fmt.Printf("  \033[1m%2d.\033[0m %s %-36s \033[1;32m%d\033[0m\n",
			i+1, v.DateKey, truncate(v.Title, 36), v.Views)
	}
	fmt.Println()

	// Month comparison
	a, b := r.MonthComparison.A, r.MonthComparison.B
	fmt.Printf("\033[1;33m  Month Comparison (%s vs %s)\033[0m\n", a.Month, b.Month)
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  views    %12d  vs %12d\n", a.Views, b.Views)
	fmt.Printf("  likes    %12d  vs %12d\n", a.Likes, b.Likes)
	fmt.Printf("  net fans %12d  vs %12d\n", a.NetFans, b.NetFans)
	fmt.Println()

	// Summary + diagnosis
	sum := r.Summary
	fmt.Printf("\033[1;33m  Health Check (%s)\033[0m\n", formatRange(r.InsightRange))
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Net fans %d (%s%%)  avg views %d  completion %s%%  interaction %s%%\n",
		sum.TotalNetFans, sum.GrowthRate, sum.AvgViews, sum.AvgCompletion, sum.AvgInteraction)
	for _, sc := range sum.Diagnosis.Scores {
		fmt.Printf("  %-12s %s %-10s (%.2f)\n", sc.Stage, strings.Repeat("★", sc.Score), sc.Level, sc.Rate)
	}
	for _, f := range sum.Diagnosis.Risks {
		fmt.Printf("  \033[1;31m! %s\033[0m %.2f\n", f.Code, f.Value)
	}
	for _, f := range sum.Diagnosis.Opportunities {
		date := ""
		if f.Record != nil {
			date = f.Record.DateKey
		}
		fmt.Printf("  \033[1;32m+ %s\033[0m %.2f %s\n", f.Code, f.Value, date)
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

// granularity falls back to daily for values outside the supported set.
func (s *InsightService) granularity(g models.Granularity) models.Granularity {
	if g.Valid() {
		return g
	}
	if g != "" {
		s.logger.Warn("[insights] Unknown granularity %q, using daily", g)
	}
	return models.Daily
}

func formatRange(r models.DateRange) string {
	if r.Start.IsZero() && r.End.IsZero() {
		return "-"
	}
	return r.Start.Format(DateKeyLayout) + " → " + r.End.Format(DateKeyLayout)
}

func titleGranularity(g models.Granularity) string {
	if g == "" {
		return "Daily"
	}
	return strings.ToUpper(string(g[:1])) + string(g[1:])
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
