package services

import (
	"testing"
	"time"

	"video-analytics/models"
)

func day(t *testing.T, key string) time.Time {
	t.Helper()
	d, err := ParseDateKey(key)
	if err != nil {
		t.Fatalf("bad test date %q: %v", key, err)
	}
	return d
}

func rangeOf(t *testing.T, start, end string) models.DateRange {
	t.Helper()
	return models.DateRange{Start: day(t, start), End: day(t, end)}
}

// rec builds a record on date key with the given views; opts tweak the rest.
func rec(t *testing.T, key string, views int64, opts ...func(*models.Record)) *models.Record {
	t.Helper()
	r := &models.Record{Date: day(t, key), DateKey: key, Views: views}
	for _, o := range opts {
		o(r)
	}
	return r
}
