package services

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"video-analytics/models"
)

// Dataset is the immutable record set of one upload. A new upload replaces it.
type Dataset struct {
	id      string
	records []*models.Record
}

// NewDataset wraps records under a fresh id. The slice is copied; callers must
// not mutate the records afterwards.
func NewDataset(records []*models.Record) *Dataset {
	own := make([]*models.Record, len(records))
	copy(own, records)
	return &Dataset{id: uuid.NewString(), records: own}
}

func (d *Dataset) ID() string { return d.id }

func (d *Dataset) Len() int { return len(d.records) }

// Records returns the records in upload order.
func (d *Dataset) Records() []*models.Record {
	out := make([]*models.Record, len(d.records))
	copy(out, d.records)
	return out
}

// Bounds returns the earliest and latest record dates. ok is false when empty.
func (d *Dataset) Bounds() (r models.DateRange, ok bool) {
	if len(d.records) == 0 {
		return r, false
	}
	r.Start, r.End = d.records[0].Date, d.records[0].Date
	for _, rec := range d.records[1:] {
		if rec.Date.Before(r.Start) {
			r.Start = rec.Date
		}
		if rec.Date.After(r.End) {
			r.End = rec.Date
		}
	}
	return r, true
}

// DefaultRanges splits the data at its median record date: current covers
// [first, median] and compare covers [median+1 day, last].
func (d *Dataset) DefaultRanges() (current, compare models.DateRange, ok bool) {
	if len(d.records) == 0 {
		return current, compare, false
	}
	dates := make([]time.Time, len(d.records))
	for i, rec := range d.records {
		dates[i] = rec.Date
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	mid := dates[len(dates)/2]

	current = models.DateRange{Start: dates[0], End: mid}
	compare = models.DateRange{Start: mid.AddDate(0, 0, 1), End: dates[len(dates)-1]}
	return current, compare, true
}

// Months lists the distinct record months (yyyy-MM), oldest first.
func (d *Dataset) Months() []string {
	totals := MonthlyTotals(d.records)
	out := make([]string, len(totals))
	for i, t := range totals {
		out[i] = t.Month
	}
	return out
}
