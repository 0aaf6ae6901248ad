package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"video-analytics/models"
)

func TestPearsonProperties(t *testing.T) {
	series := [][]float64{
		{1, 2, 3, 4, 5},
		{2, 4, 5, 4, 5},
		{10, 3, 8, 1, 0},
		{0.1, 0.5, 0.2, 0.9, 0.3},
	}
	for i, a := range series {
		assert.InDelta(t, 1.0, Pearson(a, a), 1e-12, "self correlation %d", i)
		for _, b := range series {
			r := Pearson(a, b)
			assert.InDelta(t, r, Pearson(b, a), 1e-12)
			assert.GreaterOrEqual(t, r, -1.0)
			assert.LessOrEqual(t, r, 1.0)
		}
	}
}

func TestPearsonKnownValues(t *testing.T) {
	assert.InDelta(t, 1.0, Pearson([]float64{1, 2, 3}, []float64{2, 4, 6}), 1e-12)
	assert.InDelta(t, -1.0, Pearson([]float64{1, 2, 3}, []float64{3, 2, 1}), 1e-12)
	// Longer series are truncated to the common prefix.
	assert.InDelta(t, 1.0, Pearson([]float64{1, 2, 3}, []float64{2, 4, 6, -100}), 1e-12)
}

func TestPearsonDegenerate(t *testing.T) {
	assert.Zero(t, Pearson(nil, nil))
	assert.Zero(t, Pearson([]float64{1}, []float64{2}))
	assert.Zero(t, Pearson([]float64{5, 5, 5}, []float64{1, 2, 3}))
	assert.Zero(t, Pearson([]float64{1, 2, 3}, []float64{0.1, 0.1, 0.1}))
}

func TestCorrelationMatrix(t *testing.T) {
	pairs := []models.ComparisonPair{
		{Bucket: models.Bucket{Views: 100, Likes: 10, Interactions: 12, NetFans: 1, CompletionRate: 30, InteractionRate: 12}},
		{Bucket: models.Bucket{Views: 200, Likes: 25, Interactions: 30, NetFans: 4, CompletionRate: 35, InteractionRate: 15}},
		{Bucket: models.Bucket{Views: 150, Likes: 12, Interactions: 20, NetFans: 2, CompletionRate: 28, InteractionRate: 13.3}},
	}

	cells := CorrelationMatrix(pairs)
	n := len(CorrelationMetrics)
	require.Len(t, cells, n*n)

	assert.Equal(t, "views", cells[0].X)
	assert.Equal(t, "views", cells[0].Y)
	assert.Equal(t, "interactions", cells[1].Y)
	for i := 0; i < n; i++ {
		assert.InDelta(t, 1.0, cells[i*n+i].Value, 1e-12)
		for j := 0; j < n; j++ {
			assert.InDelta(t, cells[i*n+j].Value, cells[j*n+i].Value, 1e-12)
		}
	}

	empty := CorrelationMatrix(nil)
	require.Len(t, empty, n*n)
	for _, c := range empty {
		assert.Zero(t, c.Value)
	}
}

func TestSumAndCompareKPIs(t *testing.T) {
	current := SumKPIs([]*models.Record{
		rec(t, "2024-01-01", 100, func(r *models.Record) { r.Likes = 10; r.NetFans = -3 }),
		rec(t, "2024-01-02", 50, func(r *models.Record) { r.Likes = 5; r.Comments = 2 }),
		nil,
	})
	assert.Equal(t, int64(150), current.Views)
	assert.Equal(t, int64(15), current.Likes)
	assert.Equal(t, int64(-3), current.NetFans)

	compare := models.KPIs{Views: 120, Likes: 15}
	rows := CompareKPIs(current, compare)
	require.Len(t, rows, 5)

	assert.Equal(t, "views", rows[0].Name)
	assert.Equal(t, int64(30), rows[0].Delta)
	assert.Equal(t, 25.0, rows[0].PercentChange)

	assert.Equal(t, "likes", rows[1].Name)
	assert.Zero(t, rows[1].PercentChange)

	assert.Equal(t, "netFans", rows[2].Name)
	assert.Equal(t, int64(-3), rows[2].Delta)
	assert.Zero(t, rows[2].PercentChange, "zero comparison base")
}

func TestCompareKPIsRoundsToOneDecimal(t *testing.T) {
	rows := CompareKPIs(models.KPIs{Views: 1}, models.KPIs{Views: 3})
	assert.Equal(t, -66.7, rows[0].PercentChange)
}

func TestFanHealth(t *testing.T) {
	pairs := []models.ComparisonPair{
		{Bucket: models.Bucket{Label: "a", Likes: 30, Fans: 150}, CompareLikes: 10, CompareFans: 400},
		{Bucket: models.Bucket{Label: "b", Likes: 5, Fans: 0}, CompareLikes: 10, CompareFans: 0},
	}

	points, avg := FanHealth(pairs)
	require.Len(t, points, 2)
	assert.Equal(t, "a", points[0].Label)
	assert.Equal(t, 20.0, points[0].HealthRate)
	assert.Equal(t, 2.5, points[0].CompareHealthRate)
	assert.Zero(t, points[1].HealthRate)
	assert.Zero(t, points[1].CompareHealthRate)
	assert.Equal(t, 10.0, avg)

	points, avg = FanHealth(nil)
	assert.Empty(t, points)
	assert.Zero(t, avg)
}

func TestAverageInteractionRate(t *testing.T) {
	pairs := []models.ComparisonPair{
		{Bucket: models.Bucket{InteractionRate: 10}},
		{Bucket: models.Bucket{InteractionRate: 20}},
	}
	assert.Equal(t, 15.0, AverageInteractionRate(pairs))
	assert.Zero(t, AverageInteractionRate(nil))
}
