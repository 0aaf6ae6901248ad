package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"video-analytics/models"
)

func TestFilterRangeInclusive(t *testing.T) {
	records := []*models.Record{
		rec(t, "2023-12-31", 1),
		rec(t, "2024-01-01", 2),
		rec(t, "2024-01-03", 3),
		rec(t, "2024-01-05", 4),
		rec(t, "2024-01-06", 5),
		nil,
	}

	got := FilterRange(records, rangeOf(t, "2024-01-01", "2024-01-05"))
	require.Len(t, got, 3)
	assert.Equal(t, int64(2), got[0].Views)
	assert.Equal(t, int64(4), got[2].Views)
}

func TestFilterRangeEndCoversWholeDay(t *testing.T) {
	late := &models.Record{Date: time.Date(2024, 1, 5, 23, 59, 59, 0, time.UTC), Views: 1}
	got := FilterRange([]*models.Record{late}, rangeOf(t, "2024-01-01", "2024-01-05"))
	assert.Len(t, got, 1)
}

func TestFilterRangeInvertedIsEmpty(t *testing.T) {
	records := []*models.Record{rec(t, "2024-01-03", 1)}
	assert.Empty(t, FilterRange(records, rangeOf(t, "2024-01-05", "2024-01-01")))
	assert.Empty(t, FilterRange(nil, rangeOf(t, "2024-01-01", "2024-01-05")))
}

func TestNewDateRange(t *testing.T) {
	r, err := NewDateRange("2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-31", r.End.Format(DateKeyLayout))

	_, err = NewDateRange("2024-01-01", "31/01/2024")
	assert.ErrorIs(t, err, ErrDateParse)
}
