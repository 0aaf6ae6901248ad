package services

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"video-analytics/models"
)

// Pearson returns the product-moment correlation of a and b over their common
// length. It is 0 when that length is 0 or either series is constant.
func Pearson(a, b []float64) float64 {
	n := min(len(a), len(b))
	if n == 0 {
		return 0
	}
	a, b = a[:n], b[:n]
	if constant(a) || constant(b) {
		return 0
	}
	r := stat.Correlation(a, b, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return math.Max(-1, math.Min(1, r))
}

func constant(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}

// Metric is a named numeric series extracted from aligned buckets.
type Metric struct {
	Name  string
	Value func(models.Bucket) float64
}

// CorrelationMetrics are the series compared in the correlation matrix.
var CorrelationMetrics = []Metric{
	{"views", func(b models.Bucket) float64 { return float64(b.Views) }},
	{"interactions", func(b models.Bucket) float64 { return float64(b.Interactions) }},
	{"likes", func(b models.Bucket) float64 { return float64(b.Likes) }},
	{"netFans", func(b models.Bucket) float64 { return float64(b.NetFans) }},
	{"completionRate", func(b models.Bucket) float64 { return b.CompletionRate }},
	{"interactionRate", func(b models.Bucket) float64 { return b.InteractionRate }},
}

// CorrelationMatrix computes every metric pair, diagonal included, row-major.
func CorrelationMatrix(pairs []models.ComparisonPair) []models.CorrelationCell {
	series := make([][]float64, len(CorrelationMetrics))
	for i, m := range CorrelationMetrics {
		series[i] = make([]float64, len(pairs))
		for j, p := range pairs {
			series[i][j] = m.Value(p.Bucket)
		}
	}

	cells := make([]models.CorrelationCell, 0, len(CorrelationMetrics)*len(CorrelationMetrics))
	for i, x := range CorrelationMetrics {
		for j, y := range CorrelationMetrics {
			cells = append(cells, models.CorrelationCell{
				X:     x.Name,
				Y:     y.Name,
				Value: Pearson(series[i], series[j]),
			})
		}
	}
	return cells
}

// SumKPIs totals the flow metrics of records.
func SumKPIs(records []*models.Record) models.KPIs {
	var k models.KPIs
	for _, r := range records {
		if r == nil {
			continue
		}
		k.Views += r.Views
		k.Likes += r.Likes
		k.Comments += r.Comments
		k.Shares += r.Shares
		k.NetFans += r.NetFans
		k.Favorites += r.Favorites
		k.Recommendations += r.Recommendations
	}
	return k
}

// CompareKPIs builds the headline cards for the current and comparison totals.
func CompareKPIs(current, compare models.KPIs) []models.KPIComparison {
	rows := []struct {
		name string
		cur  int64
		cmp  int64
	}{
		{"views", current.Views, compare.Views},
		{"likes", current.Likes, compare.Likes},
		{"netFans", current.NetFans, compare.NetFans},
		{"comments", current.Comments, compare.Comments},
		{"shares", current.Shares, compare.Shares},
	}

	out := make([]models.KPIComparison, 0, len(rows))
	for _, r := range rows {
		delta := r.cur - r.cmp
		var pct float64
		if r.cmp != 0 {
			pct = round1(float64(delta) / float64(r.cmp) * 100)
		}
		out = append(out, models.KPIComparison{
			Name:          r.name,
			Current:       r.cur,
			Compare:       r.cmp,
			Delta:         delta,
			PercentChange: pct,
		})
	}
	return out
}

// FanHealth returns likes/fans*100 per aligned bucket for both sides, and the
// average of the current-side rates.
func FanHealth(pairs []models.ComparisonPair) ([]models.FanHealthPoint, float64) {
	points := make([]models.FanHealthPoint, 0, len(pairs))
	var sum float64
	for _, p := range pairs {
		pt := models.FanHealthPoint{
			Label:             p.Label,
			HealthRate:        healthRate(p.Likes, p.Fans),
			CompareHealthRate: healthRate(p.CompareLikes, p.CompareFans),
		}
		sum += pt.HealthRate
		points = append(points, pt)
	}
	if len(points) == 0 {
		return points, 0
	}
	return points, round2(sum / float64(len(points)))
}

func healthRate(likes, fans int64) float64 {
	if fans <= 0 {
		return 0
	}
	return round2(float64(likes) / float64(fans) * 100)
}

// AverageInteractionRate is the mean bucket interaction rate, 0 for no buckets.
func AverageInteractionRate(pairs []models.ComparisonPair) float64 {
	if len(pairs) == 0 {
		return 0
	}
	var sum float64
	for _, p := range pairs {
		sum += p.InteractionRate
	}
	return sum / float64(len(pairs))
}
