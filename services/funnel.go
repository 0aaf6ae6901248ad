package services

import (
	"sort"
	"strconv"

	"video-analytics/models"
)

// Funnel stage names.
const (
	StageAcquisition    = "Acquisition"
	StageActivation     = "Activation"
	StageRetention      = "Retention"
	StageRevenue        = "Revenue"
	StageRecommendation = "Recommendation"
	StageReferral       = "Referral"
)

// FunnelScope narrows the records a funnel is computed over.
type FunnelScope string

const (
	ScopeAll       FunnelScope = "all"
	ScopeQuarterly FunnelScope = "quarterly"
	ScopeMonthly   FunnelScope = "monthly"
)

// Funnel derives the five-stage lifecycle funnel from records. The fourth stage
// counts recommendations only when favorites total exactly 0 and recommendations
// are present; otherwise it counts favorites. No records yields no funnel.
func Funnel(records []*models.Record) []models.FunnelStage {
	if len(records) == 0 {
		return nil
	}
	k := SumKPIs(records)

	fourth := models.FunnelStage{Name: StageRevenue, Label: "变现潜力", Metric: "收藏量", Value: k.Favorites}
	if k.Favorites == 0 && k.Recommendations > 0 {
		fourth = models.FunnelStage{Name: StageRecommendation, Label: "系统推荐", Metric: "推荐量", Value: k.Recommendations}
	}

	stages := []models.FunnelStage{
		{Name: StageAcquisition, Label: "用户获取", Metric: "播放量", Value: k.Views},
		{Name: StageActivation, Label: "用户活跃", Metric: "赞评互动", Value: k.Likes + k.Comments},
		{Name: StageRetention, Label: "用户留存", Metric: "粉丝净增", Value: k.NetFans},
		fourth,
		{Name: StageReferral, Label: "自传播", Metric: "转发量", Value: k.Shares},
	}

	for i := range stages {
		prev := stages[i].Value
		if i > 0 {
			prev = stages[i-1].Value
		}
		stages[i].ConversionRate = percentString(stages[i].Value, prev)
		stages[i].PercentOfViews = percentString(stages[i].Value, k.Views)
	}
	return stages
}

func percentString(value, base int64) string {
	if base <= 0 {
		return "0"
	}
	return strconv.FormatFloat(float64(value)/float64(base)*100, 'f', 2, 64)
}

// AvailablePeriods lists the quarters ("2024 Q1") and months ("2024-01") present
// in records, newest first.
func AvailablePeriods(records []*models.Record) (quarters, months []string) {
	qs := make(map[string]struct{})
	ms := make(map[string]struct{})
	for _, r := range records {
		qs[quarterLabel(r)] = struct{}{}
		ms[r.Date.Format("2006-01")] = struct{}{}
	}
	return sortedDesc(qs), sortedDesc(ms)
}

// FilterPeriod keeps records in the given quarter or month. ScopeAll, or an
// unknown scope, returns records unchanged.
func FilterPeriod(records []*models.Record, scope FunnelScope, period string) []*models.Record {
	if scope != ScopeQuarterly && scope != ScopeMonthly {
		return records
	}
	out := make([]*models.Record, 0, len(records))
	for _, r := range records {
		var key string
		if scope == ScopeQuarterly {
			key = quarterLabel(r)
		} else {
			key = r.Date.Format("2006-01")
		}
		if key == period {
			out = append(out, r)
		}
	}
	return out
}

func quarterLabel(r *models.Record) string {
	return strconv.Itoa(r.Date.Year()) + " Q" + strconv.Itoa(quarterOf(r.Date))
}

func sortedDesc(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}
