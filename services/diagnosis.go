package services

import (
	"strconv"

	"video-analytics/models"
)

// Diagnosis thresholds. Rates are percentages; retention is net fans per 1000 views.
const (
	minAvgCompletion  = 15.0
	minAvgInteraction = 2.0
	minGrowthRate     = 0.5

	highInteraction    = 3.0
	highCompletion     = 20.0
	standoutMultiplier = 1.5
	burstMultiplier    = 2.0
	minBurstFans       = 10

	maxFindings = 2
)

// diagnose flags risks and opportunities in records (sorted by date) using the
// averages already computed in s, and grades the lifecycle stages.
func diagnose(records []*models.Record, s models.Summary) models.Diagnosis {
	d := models.Diagnosis{
		Risks:         make([]models.Finding, 0, maxFindings),
		Opportunities: make([]models.Finding, 0, maxFindings),
	}
	if len(records) == 0 {
		return d
	}

	avgCompletion := parseFixed(s.AvgCompletion)
	avgInteraction := parseFixed(s.AvgInteraction)
	growth := parseFixed(s.GrowthRate)

	if avgCompletion < minAvgCompletion {
		d.Risks = append(d.Risks, models.Finding{Code: models.RiskLowCompletion, Value: avgCompletion})
	}
	if avgInteraction < minAvgInteraction {
		d.Risks = append(d.Risks, models.Finding{Code: models.RiskLowInteraction, Value: avgInteraction})
	}
	if growth < minGrowthRate {
		d.Risks = append(d.Risks, models.Finding{Code: models.RiskStalledGrowth, Value: growth})
	}

	// Later records win ties.
	engaging, complete := records[0], records[0]
	for _, r := range records {
		if r.InteractionRate >= engaging.InteractionRate {
			engaging = r
		}
		if ParsePercent(r.CompletionRate) >= ParsePercent(complete.CompletionRate) {
			complete = r
		}
	}

	if v := engaging.InteractionRate; v > highInteraction || v > avgInteraction*standoutMultiplier {
		d.Opportunities = append(d.Opportunities, models.Finding{
			Code: models.OpportunityHighInteraction, Value: round2(v), Record: engaging,
		})
	}
	if v := ParsePercent(complete.CompletionRate); v > highCompletion || v > avgCompletion*standoutMultiplier {
		d.Opportunities = append(d.Opportunities, models.Finding{
			Code: models.OpportunityHighCompletion, Value: v, Record: complete,
		})
	}
	if peak := s.PeakFanDay; peak != nil &&
		float64(peak.NetFans) > float64(s.DailyAvgFans)*burstMultiplier && peak.NetFans > minBurstFans {
		d.Opportunities = append(d.Opportunities, models.Finding{
			Code: models.OpportunityFanBurst, Value: float64(peak.NetFans), Record: peak,
		})
	}

	if len(d.Risks) > maxFindings {
		d.Risks = d.Risks[:maxFindings]
	}
	if len(d.Opportunities) > maxFindings {
		d.Opportunities = d.Opportunities[:maxFindings]
	}

	d.Scores = scoreStages(SumKPIs(records))
	return d
}

// scoreStages grades activation, retention and revenue against views.
func scoreStages(k models.KPIs) []models.StageScore {
	var activation, retention, revenue float64
	if k.Views > 0 {
		views := float64(k.Views)
		activation = float64(k.Likes+k.Comments) / views * 100
		retention = float64(k.NetFans) / views * 1000
		revenue = float64(k.Favorites) / views * 100
	}

	act := models.StageScore{Stage: StageActivation, Rate: round2(activation), Score: 1, Level: "needs_work"}
	switch {
	case activation > 3:
		act.Score, act.Level = 5, "excellent"
	case activation > 1:
		act.Score, act.Level = 3, "good"
	}

	ret := models.StageScore{Stage: StageRetention, Rate: round2(retention), Score: 1, Level: "churning"}
	switch {
	case retention > 2:
		ret.Score, ret.Level = 5, "strong"
	case retention > 0.5:
		ret.Score, ret.Level = 3, "stable"
	}

	rev := models.StageScore{Stage: StageRevenue, Rate: round2(revenue), Score: 3, Level: "average"}
	if revenue > 0.5 {
		rev.Score, rev.Level = 5, "high"
	}

	return []models.StageScore{act, ret, rev}
}

func parseFixed(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
