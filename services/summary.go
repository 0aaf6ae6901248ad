package services

import (
	"math"
	"sort"
	"strconv"

	"video-analytics/models"
)

// TopByViews returns up to n records with the most views, ties in input order.
func TopByViews(records []*models.Record, n int) []*models.Record {
	sorted := make([]*models.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Views > sorted[j].Views
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// MonthlyTopVideos returns the top n records by views within month (yyyy-MM).
func MonthlyTopVideos(records []*models.Record, month string, n int) []*models.Record {
	return TopByViews(FilterPeriod(records, ScopeMonthly, month), n)
}

// MonthlyTotals rolls views, likes and net fans up per month, oldest first.
func MonthlyTotals(records []*models.Record) []models.MonthTotal {
	byMonth := make(map[string]*models.MonthTotal)
	for _, r := range records {
		m := r.Date.Format("2006-01")
		t, ok := byMonth[m]
		if !ok {
			t = &models.MonthTotal{Month: m}
			byMonth[m] = t
		}
		t.Views += r.Views
		t.Likes += r.Likes
		t.NetFans += r.NetFans
	}

	out := make([]models.MonthTotal, 0, len(byMonth))
	for _, t := range byMonth {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// CompareMonths picks months a and b from totals. A month without data is zero.
func CompareMonths(totals []models.MonthTotal, a, b string) models.MonthComparison {
	find := func(month string) models.MonthTotal {
		for _, t := range totals {
			if t.Month == month {
				return t
			}
		}
		return models.MonthTotal{Month: month}
	}
	return models.MonthComparison{A: find(a), B: find(b)}
}

// Summarize computes the scalar growth and content figures for records and
// runs the threshold diagnosis over them.
// When several records share the peak, the later one in date order wins.
func Summarize(records []*models.Record) models.Summary {
	s := models.Summary{GrowthRate: "0", AvgCompletion: "0", AvgInteraction: "0"}
	if len(records) == 0 {
		return s
	}

	sorted := make([]*models.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	first, last := sorted[0], sorted[len(sorted)-1]
	s.Start, s.End = first.DateKey, last.DateKey
	s.Days = len(sorted)
	s.StartFans, s.EndFans = first.Fans, last.Fans

	var completion, interaction float64
	peak, top := sorted[0], sorted[0]
	for _, r := range sorted {
		s.TotalNetFans += r.NetFans
		s.TotalViews += r.Views
		completion += ParsePercent(r.CompletionRate)
		interaction += r.InteractionRate
		if r.NetFans >= peak.NetFans {
			peak = r
		}
		if r.Views >= top.Views {
			top = r
		}
	}
	s.PeakFanDay, s.TopVideo = peak, top

	days := float64(s.Days)
	if s.StartFans > 0 {
		s.GrowthRate = strconv.FormatFloat(float64(s.TotalNetFans)/float64(s.StartFans)*100, 'f', 1, 64)
	}
	s.DailyAvgFans = roundHalfUp(float64(s.TotalNetFans) / days)
	s.AvgViews = roundHalfUp(float64(s.TotalViews) / days)
	s.AvgCompletion = strconv.FormatFloat(completion/days, 'f', 2, 64)
	s.AvgInteraction = strconv.FormatFloat(interaction/days, 'f', 2, 64)
	s.Diagnosis = diagnose(sorted, s)
	return s
}

// roundHalfUp rounds .5 towards positive infinity.
func roundHalfUp(f float64) int64 {
	return int64(math.Floor(f + 0.5))
}
