package services

import (
	"fmt"
	"time"

	"video-analytics/models"
)

// endOfDay is the offset from midnight to the last millisecond of a day.
const endOfDay = 24*time.Hour - time.Millisecond

// NewDateRange builds a range from two yyyy-MM-dd strings. Start after end is
// accepted and simply matches nothing.
func NewDateRange(start, end string) (models.DateRange, error) {
	s, err := ParseDateKey(start)
	if err != nil {
		return models.DateRange{}, fmt.Errorf("range start: %w", err)
	}
	e, err := ParseDateKey(end)
	if err != nil {
		return models.DateRange{}, fmt.Errorf("range end: %w", err)
	}
	return models.DateRange{Start: s, End: e}, nil
}

// FilterRange returns the records dated within r, both ends inclusive.
// The end bound extends through 23:59:59.999 of its calendar day.
func FilterRange(records []*models.Record, r models.DateRange) []*models.Record {
	start := calendarDate(r.Start)
	end := calendarDate(r.End).Add(endOfDay)

	out := make([]*models.Record, 0, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}
		if rec.Date.Before(start) || rec.Date.After(end) {
			continue
		}
		out = append(out, rec)
	}
	return out
}
