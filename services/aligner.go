package services

import "video-analytics/models"

// Align pairs current[i] with compare[i] by position only; calendar dates and
// labels are not matched. The result always has len(current) pairs, and pairs
// past the end of compare carry "N/A" and zeros.
func Align(current, compare []models.Bucket) []models.ComparisonPair {
	pairs := make([]models.ComparisonPair, len(current))
	for i, b := range current {
		p := models.ComparisonPair{Bucket: b, CompareLabel: "N/A"}
		if i < len(compare) {
			c := compare[i]
			p.CompareLabel = c.Label
			p.CompareViews = c.Views
			p.CompareLikes = c.Likes
			p.CompareNetFans = c.NetFans
			p.CompareFans = c.Fans
			p.CompareInteractions = c.Interactions
			p.CompareCompletionRate = c.CompletionRate
			p.CompareInteractionRate = c.InteractionRate
		}
		pairs[i] = p
	}
	return pairs
}

// DetailTrend aggregates both ranges at granularity g and aligns them.
func DetailTrend(records []*models.Record, current, compare models.DateRange, g models.Granularity) []models.ComparisonPair {
	return Align(Aggregate(records, current, g), Aggregate(records, compare, g))
}
