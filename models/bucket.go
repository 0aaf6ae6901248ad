package models

// Bucket is one time-grouped aggregate row.
type Bucket struct {
	Label   string `json:"date"`
	SortKey string `json:"sortKey"`

	Views           int64 `json:"views"`
	Likes           int64 `json:"likes"`
	Comments        int64 `json:"comments"`
	Shares          int64 `json:"shares"`
	Favorites       int64 `json:"favorites"`
	NetFans         int64 `json:"netFans"`
	Recommendations int64 `json:"recommendations"`
	Interactions    int64 `json:"interactions"`

	// Fans is the largest cumulative fan count seen in the bucket.
	Fans int64 `json:"fans"`

	CompletionRate  float64 `json:"completionRate"`
	InteractionRate float64 `json:"interactionRate"`
	Count           int     `json:"count"`
}

// ComparisonPair is a current bucket joined by index with a comparison bucket.
type ComparisonPair struct {
	Bucket

	CompareLabel           string  `json:"compareDate"`
	CompareViews           int64   `json:"compareViews"`
	CompareLikes           int64   `json:"compareLikes"`
	CompareNetFans         int64   `json:"compareNetFans"`
	CompareFans            int64   `json:"compareFans"`
	CompareInteractions    int64   `json:"compareInteractions"`
	CompareCompletionRate  float64 `json:"compareCompletionRate"`
	CompareInteractionRate float64 `json:"compareInteractionRate"`
}

// CorrelationCell is one entry of a metric correlation matrix.
type CorrelationCell struct {
	X     string  `json:"xName"`
	Y     string  `json:"yName"`
	Value float64 `json:"value"`
}

// FanHealthPoint is the likes-per-fan ratio of one aligned bucket.
type FanHealthPoint struct {
	Label             string  `json:"date"`
	HealthRate        float64 `json:"healthRate"`
	CompareHealthRate float64 `json:"compareHealthRate"`
}
