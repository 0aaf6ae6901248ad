package services

import (
	"fmt"
	"sort"
	"time"

	"video-analytics/models"
)

type accumulator struct {
	bucket         models.Bucket
	completionSum  float64
	interactionSum float64
}

func (a *accumulator) add(rec *models.Record) {
	b := &a.bucket
	b.Views += rec.Views
	b.Likes += rec.Likes
	b.Comments += rec.Comments
	b.Shares += rec.Shares
	b.Favorites += rec.Favorites
	b.NetFans += rec.NetFans
	b.Recommendations += rec.Recommendations
	b.Interactions += rec.Interactions()
	if rec.Fans > b.Fans {
		b.Fans = rec.Fans
	}
	a.completionSum += ParsePercent(rec.CompletionRate)
	a.interactionSum += rec.InteractionRate
	b.Count++
}

func (a *accumulator) finalize() models.Bucket {
	b := a.bucket
	if b.Count > 0 {
		b.CompletionRate = round2(a.completionSum / float64(b.Count))
		b.InteractionRate = round2(a.interactionSum / float64(b.Count))
	}
	return b
}

// Aggregate filters records to r and groups them into buckets of granularity g,
// ordered by period. Flow metrics are summed, Fans keeps the maximum, and the
// two rates are averaged per contributing record. Weekly output contains every
// week overlapping r, including empty ones. Unknown granularities bucket daily.
func Aggregate(records []*models.Record, r models.DateRange, g models.Granularity) []models.Bucket {
	filtered := FilterRange(records, r)

	groups := make(map[string]*accumulator)
	if g == models.Weekly {
		seedWeeks(groups, r)
	}

	for _, rec := range filtered {
		key, label := bucketKey(rec.Date, g)
		acc, ok := groups[key]
		if !ok {
			acc = &accumulator{bucket: models.Bucket{Label: label, SortKey: key, Fans: rec.Fans}}
			groups[key] = acc
		}
		acc.add(rec)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buckets := make([]models.Bucket, 0, len(keys))
	for _, k := range keys {
		buckets = append(buckets, groups[k].finalize())
	}
	return buckets
}

// bucketKey returns the sort key and display label of the bucket containing d.
func bucketKey(d time.Time, g models.Granularity) (key, label string) {
	switch g {
	case models.Weekly:
		monday := weekStart(d)
		return monday.Format(DateKeyLayout), weekLabel(monday)
	case models.Monthly:
		key = d.Format("2006-01")
	case models.Quarterly:
		key = quarterKey(d)
	default:
		key = d.Format(DateKeyLayout)
	}
	return key, key
}

// seedWeeks creates an empty bucket for each Monday-based week overlapping r.
func seedWeeks(groups map[string]*accumulator, r models.DateRange) {
	start := calendarDate(r.Start)
	end := calendarDate(r.End)
	if start.After(end) {
		return
	}
	for w := weekStart(start); !w.After(end); w = w.AddDate(0, 0, 7) {
		key := w.Format(DateKeyLayout)
		groups[key] = &accumulator{bucket: models.Bucket{Label: weekLabel(w), SortKey: key}}
	}
}

// weekStart returns the Monday on or before d.
func weekStart(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7
	return calendarDate(d).AddDate(0, 0, -offset)
}

// weekLabel renders e.g. "2024 第01周 (01.01-01.07)".
func weekLabel(monday time.Time) string {
	year, week := monday.ISOWeek()
	sunday := monday.AddDate(0, 0, 6)
	return fmt.Sprintf("%d 第%02d周 (%s-%s)", year, week, monday.Format("01.02"), sunday.Format("01.02"))
}

func quarterKey(d time.Time) string {
	return fmt.Sprintf("%04d-Q%d", d.Year(), quarterOf(d))
}

func quarterOf(d time.Time) int {
	return (int(d.Month())-1)/3 + 1
}
