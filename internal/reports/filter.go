// Package reports projects intelligence reports onto plan-appropriate views.
package reports

import (
	"github.com/careerlens/careerlens/internal/types"
)

// Truncation limits for the free-tier view.
const (
	freeMaxGaps         = 2
	freeMaxRoadmapItems = 5
)

// FilterForPlan returns the plan-appropriate view of a report. Pro tier sees
// the full report; free tier sees a strict subset by truncation. New content
// is never synthesized here.
func FilterForPlan(report *types.IntelligenceReport, planType types.PlanType) any {
	if report == nil {
		return nil
	}
	if planType == types.PlanPro {
		return report
	}
	return FreeView(report)
}

// FreeView truncates a full report to the free-tier subset: the positioning
// summary, the first two strategic gaps, and the first five 30-day items.
func FreeView(report *types.IntelligenceReport) *types.FreeReport {
	return &types.FreeReport{
		MarketPositioningSummary: report.MarketPositioningSummary,
		StrategicGaps:            truncate(report.StrategicGaps, freeMaxGaps),
		Roadmap30Days:            truncate(report.Roadmap30Days, freeMaxRoadmapItems),
	}
}

func truncate[T any](items []T, limit int) []T {
	if len(items) <= limit {
		return items
	}
	return items[:limit]
}
