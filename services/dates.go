package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/text/width"
)

// ErrDateParse is returned when a raw value cannot be resolved to a calendar date.
var ErrDateParse = errors.New("unparseable date")

// serialEpochOffset is the number of days between the spreadsheet epoch
// (1899-12-30) and the Unix epoch (1970-01-01).
const serialEpochOffset = 25569

const (
	minSerial = -693593 // 0001-01-01
	maxSerial = 2958466 // 10000-01-01
)

// DateKeyLayout is the canonical yyyy-MM-dd key format.
const DateKeyLayout = "2006-01-02"

// dateLayouts are tried in order; the first that parses wins.
var dateLayouts = []string{
	"2006/1/2",
	"2006-1-2",
	"2006.1.2",
	"2006年1月2日",
	"1/2/2006",
	"2-Jan-2006",
}

// NormalizeDate converts a raw cell value to a calendar date at UTC midnight.
// Numeric values (and strings that are entirely numeric) are spreadsheet serials.
func NormalizeDate(v any) (time.Time, error) {
	switch val := v.(type) {
	case nil:
		return time.Time{}, fmt.Errorf("%w: missing value", ErrDateParse)
	case string:
		return normalizeDateString(val)
	case time.Time:
		return calendarDate(val), nil
	}

	serial, ok := toFloat(v)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: unsupported type %T", ErrDateParse, v)
	}
	return fromSerial(serial)
}

func normalizeDateString(raw string) (time.Time, error) {
	s := strings.TrimSpace(width.Fold.String(raw))
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty string", ErrDateParse)
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return fromSerial(serial)
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrDateParse, raw)
	}
	return checkYear(calendarDate(t))
}

func fromSerial(serial float64) (time.Time, error) {
	// Serials outside years 1..9999 cannot be represented.
	if math.IsNaN(serial) || serial < minSerial || serial >= maxSerial {
		return time.Time{}, fmt.Errorf("%w: serial %v", ErrDateParse, serial)
	}
	days := int(math.Floor(serial)) - serialEpochOffset
	t := time.Unix(0, 0).UTC().AddDate(0, 0, days)
	return checkYear(t)
}

func checkYear(t time.Time) (time.Time, error) {
	if t.Year() < 1 || t.Year() > 9999 {
		return time.Time{}, fmt.Errorf("%w: year %d out of range", ErrDateParse, t.Year())
	}
	return t, nil
}

// calendarDate drops the time of day, keeping the wall-clock date of t.
func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDateKey parses a yyyy-MM-dd string into a calendar date.
func ParseDateKey(s string) (time.Time, error) {
	t, err := time.Parse(DateKeyLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrDateParse, err)
	}
	return t, nil
}
