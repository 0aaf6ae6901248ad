package models

import "time"

// RawRow is one spreadsheet row keyed by its column header exactly as exported.
// Values are float64 for numeric cells and string otherwise.
type RawRow map[string]any

// Record is the canonical, typed representation of one video row.
type Record struct {
	Date    time.Time `json:"-"`
	DateKey string    `json:"date"`

	Lawyer    string `json:"lawyer"`
	Account   string `json:"account"`
	VideoType string `json:"type"`
	Title     string `json:"title"`

	Views           int64 `json:"views"`
	Likes           int64 `json:"likes"`
	Comments        int64 `json:"comments"`
	Favorites       int64 `json:"favorites"`
	Shares          int64 `json:"shares"`
	NetFans         int64 `json:"netFans"`
	Fans            int64 `json:"fans"`
	Recommendations int64 `json:"recommendations"`

	FanLikeRatio    string  `json:"fanLikeRatio"`
	CompletionRate  string  `json:"completionRate"`
	InteractionRate float64 `json:"interactionRate"`
}

// Interactions is likes + comments + shares.
func (r *Record) Interactions() int64 {
	return r.Likes + r.Comments + r.Shares
}

// DateRange is an inclusive calendar window. End covers its whole day.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Granularity selects the bucketing strategy.
type Granularity string

const (
	Daily     Granularity = "daily"
	Weekly    Granularity = "weekly"
	Monthly   Granularity = "monthly"
	Quarterly Granularity = "quarterly"
)

// Valid reports whether g is one of the supported granularities.
func (g Granularity) Valid() bool {
	switch g {
	case Daily, Weekly, Monthly, Quarterly:
		return true
	}
	return false
}
