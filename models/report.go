package models

import "time"

// KPIs holds flow-metric totals over a record set.
type KPIs struct {
	Views           int64 `json:"views"`
	Likes           int64 `json:"likes"`
	Comments        int64 `json:"comments"`
	Shares          int64 `json:"shares"`
	NetFans         int64 `json:"netFans"`
	Favorites       int64 `json:"favorites"`
	Recommendations int64 `json:"recommendations"`
}

// KPIComparison is one headline card: a KPI in the current and comparison range.
type KPIComparison struct {
	Name          string  `json:"name"`
	Current       int64   `json:"current"`
	Compare       int64   `json:"compare"`
	Delta         int64   `json:"delta"`
	PercentChange float64 `json:"percentChange"`
}

// FunnelStage is one step of the acquisition → referral lifecycle funnel.
type FunnelStage struct {
	Name           string `json:"name"`
	Label          string `json:"label"`
	Metric         string `json:"metric"`
	Value          int64  `json:"value"`
	ConversionRate string `json:"conversionRate"`
	PercentOfViews string `json:"percentOfViews"`
}

// MonthTotal is the per-month rollup used for month-vs-month comparison.
type MonthTotal struct {
	Month   string `json:"month"`
	Views   int64  `json:"views"`
	Likes   int64  `json:"likes"`
	NetFans int64  `json:"netFans"`
}

// MonthComparison pairs two selected months.
type MonthComparison struct {
	A MonthTotal `json:"a"`
	B MonthTotal `json:"b"`
}

// Summary holds the scalar KPIs handed to the insight generator.
type Summary struct {
	Start          string  `json:"start"`
	End            string  `json:"end"`
	Days           int     `json:"days"`
	TotalNetFans   int64   `json:"totalNetFans"`
	StartFans      int64   `json:"startFans"`
	EndFans        int64   `json:"endFans"`
	GrowthRate     string  `json:"growthRate"`
	DailyAvgFans   int64   `json:"dailyAvgFans"`
	PeakFanDay     *Record `json:"peakFanDay,omitempty"`
	TotalViews     int64   `json:"totalViews"`
	AvgViews       int64   `json:"avgViews"`
	AvgCompletion  string  `json:"avgCompletion"`
	AvgInteraction string  `json:"avgInteraction"`
	TopVideo       *Record `json:"topVideo,omitempty"`

	Diagnosis Diagnosis `json:"diagnosis"`
}

// Risk and opportunity codes raised by the threshold diagnosis.
const (
	RiskLowCompletion  = "low_completion"
	RiskLowInteraction = "low_interaction"
	RiskStalledGrowth  = "stalled_growth"

	OpportunityHighInteraction = "high_interaction"
	OpportunityHighCompletion  = "high_completion"
	OpportunityFanBurst        = "fan_burst"
)

// Finding is one flagged risk or opportunity. Value is the metric that tripped
// the threshold; Record is the video it points at, if any.
type Finding struct {
	Code   string  `json:"code"`
	Value  float64 `json:"value"`
	Record *Record `json:"record,omitempty"`
}

// StageScore grades one lifecycle stage from 1 (weak) to 5 (strong).
type StageScore struct {
	Stage string  `json:"stage"`
	Rate  float64 `json:"rate"`
	Score int     `json:"score"`
	Level string  `json:"level"`
}

// Diagnosis is the rule-based health check of a record set. At most two risks
// and two opportunities are kept, in rule order.
type Diagnosis struct {
	Risks         []Finding    `json:"risks"`
	Opportunities []Finding    `json:"opportunities"`
	Scores        []StageScore `json:"scores"`
}

// Report is everything the presentation layer consumes for one dataset.
type Report struct {
	DatasetID   string      `json:"datasetId"`
	GeneratedAt time.Time   `json:"generatedAt"`
	Records     int         `json:"records"`
	DataRange   DateRange   `json:"dataRange"`
	Current     DateRange   `json:"current"`
	Compare     DateRange   `json:"compare"`
	Granularity Granularity `json:"granularity"`

	CurrentKPIs   KPIs            `json:"currentKpis"`
	CompareKPIs   KPIs            `json:"compareKpis"`
	KPIComparison []KPIComparison `json:"kpiComparison"`

	TrendRange       DateRange   `json:"trendRange"`
	TrendGranularity Granularity `json:"trendGranularity"`
	Trend            []Bucket    `json:"trend"`

	DetailTrend            []ComparisonPair  `json:"detailTrend"`
	AverageInteractionRate float64           `json:"avgInteractionRate"`
	Correlation            []CorrelationCell `json:"correlation"`
	FanHealth              []FanHealthPoint  `json:"fanHealth"`
	AverageHealthRate      float64           `json:"avgHealthRate"`

	FunnelScope  string        `json:"funnelScope"`
	FunnelPeriod string        `json:"funnelPeriod,omitempty"`
	Funnel       []FunnelStage `json:"funnel"`

	ExplosiveVideos  []*Record       `json:"explosiveVideos"`
	Months           []string        `json:"months"`
	MonthComparison  MonthComparison `json:"monthComparison"`
	MonthlyTopVideos []*Record       `json:"monthlyTopVideos"`

	InsightRange DateRange `json:"insightRange"`
	Summary      Summary   `json:"summary"`
}
