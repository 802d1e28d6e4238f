package scoring

import (
	"strings"

	"github.com/careerlens/careerlens/internal/types"
)

// Signal defaults for unset or unrecognized enum answers. The engine always
// produces a score; gaps in the input degrade to mid-range signals instead
// of failing.
const (
	defaultAISignal       = 40.0
	defaultRiskTolerance  = 55.0
	defaultStartupSignal  = 50.0
	defaultSalaryPressure = 50.0
)

// experienceSignal buckets years of experience into a 0-100 signal.
func experienceSignal(years float64) float64 {
	switch {
	case years <= 2:
		return 35
	case years <= 5:
		return 55
	case years <= 10:
		return 75
	default:
		return 90
	}
}

// aiFamiliaritySignal maps the self-reported AI familiarity enum.
func aiFamiliaritySignal(familiarity string) float64 {
	switch familiarity {
	case types.AIFamiliarityBeginner:
		return 30
	case types.AIFamiliarityIntermediate:
		return 65
	case types.AIFamiliarityAdvanced:
		return 90
	default:
		return defaultAISignal
	}
}

// skillDepthSignal derives a signal from the primary/secondary skill lists.
// Primary skills count 1.8x relative to secondary ones.
func skillDepthSignal(primary, secondary string) float64 {
	p := float64(countSkills(primary))
	s := float64(countSkills(secondary))
	return clamp(20+(1.8*p+s)*8, 0, 100)
}

// countSkills splits comma-delimited free text and discards blanks.
func countSkills(raw string) int {
	if strings.TrimSpace(raw) == "" {
		return 0
	}
	count := 0
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) != "" {
			count++
		}
	}
	return count
}

// ratingSignal converts a 1-10 self-rating into a 0-100 signal.
func ratingSignal(rating int) float64 {
	return clamp(float64(rating)*10, 0, 100)
}

// riskToleranceSignal maps the risk tolerance enum.
func riskToleranceSignal(tolerance string) float64 {
	switch tolerance {
	case types.RiskToleranceLow:
		return 40
	case types.RiskToleranceMedium:
		return 60
	case types.RiskToleranceHigh:
		return 80
	default:
		return defaultRiskTolerance
	}
}

// startupInterestSignal maps the entrepreneurship interest enum.
func startupInterestSignal(interest string) float64 {
	switch interest {
	case types.EntrepreneurshipYes:
		return 75
	case types.EntrepreneurshipNo:
		return 45
	default:
		return defaultStartupSignal
	}
}

// salaryPressure is a fixed lookup by salary band. Higher bands carry more
// pressure to justify compensation against market leverage.
func salaryPressure(band string) float64 {
	switch band {
	case types.SalaryBandUnder75k:
		return 20
	case types.SalaryBand75to100k:
		return 35
	case types.SalaryBand100to140k:
		return 55
	case types.SalaryBand140to200k:
		return 75
	case types.SalaryBand200kPlus:
		return 90
	default:
		return defaultSalaryPressure
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
