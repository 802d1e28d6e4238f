// Package scoring derives leverage and risk scores from assessment answers.
// CalculateScores is pure and total: given well-typed input it always
// produces integer scores in [0,100], with missing enum answers degrading to
// mid-range default signals rather than erroring.
package scoring

import (
	"math"

	"github.com/careerlens/careerlens/internal/types"
)

// Leverage score weights.
const (
	experienceWeight    = 0.20
	aiFamiliarityWeight = 0.20
	skillDepthWeight    = 0.20
	leadershipWeight    = 0.20
	riskToleranceWeight = 0.10
	startupWeight       = 0.10
)

// Risk score weights.
const (
	aiRiskWeight              = 0.30
	differentiationRiskWeight = 0.25
	salaryMismatchWeight      = 0.25
	technicalRiskWeight       = 0.20
)

// CalculateScores maps assessment answers to leverage/risk scores with
// per-factor breakdowns. The risk score's salary-mismatch term depends on
// the leverage score, so leverage is always computed first.
func CalculateScores(answers types.AssessmentAnswers) types.ScoreResult {
	leverage, leverageBreakdown := leverageScore(answers)
	risk, riskBreakdown := riskScore(answers, leverage)

	return types.ScoreResult{
		LeverageScore:     leverage,
		RiskScore:         risk,
		LeverageBreakdown: leverageBreakdown,
		RiskBreakdown:     riskBreakdown,
	}
}

func leverageScore(answers types.AssessmentAnswers) (int, map[string]float64) {
	breakdown := map[string]float64{
		"experience":     experienceSignal(answers.YearsExperience),
		"ai_familiarity": aiFamiliaritySignal(answers.AIFamiliarity),
		"skill_depth":    skillDepthSignal(answers.PrimarySkills, answers.SecondarySkills),
		"leadership":     ratingSignal(answers.LeadershipVisibility),
		"risk_tolerance": riskToleranceSignal(answers.RiskTolerance),
		"startup":        startupInterestSignal(answers.EntrepreneurshipInterest),
	}

	weighted := breakdown["experience"]*experienceWeight +
		breakdown["ai_familiarity"]*aiFamiliarityWeight +
		breakdown["skill_depth"]*skillDepthWeight +
		breakdown["leadership"]*leadershipWeight +
		breakdown["risk_tolerance"]*riskToleranceWeight +
		breakdown["startup"]*startupWeight

	return roundScore(weighted), breakdown
}

func riskScore(answers types.AssessmentAnswers, leverage int) (int, map[string]float64) {
	breakdown := map[string]float64{
		"ai_risk":              100 - aiFamiliaritySignal(answers.AIFamiliarity),
		"differentiation_risk": 100 - ratingSignal(answers.MarketDifferentiation),
		"salary_mismatch":      clamp(10+(salaryPressure(answers.SalaryBand)-float64(leverage))*1.5, 0, 100),
		"technical_risk":       100 - ratingSignal(answers.TechnicalRelevance),
	}

	weighted := breakdown["ai_risk"]*aiRiskWeight +
		breakdown["differentiation_risk"]*differentiationRiskWeight +
		breakdown["salary_mismatch"]*salaryMismatchWeight +
		breakdown["technical_risk"]*technicalRiskWeight

	return roundScore(weighted), breakdown
}

// roundScore rounds a weighted sum and clamps it to the [0,100] score range.
func roundScore(v float64) int {
	return int(clamp(math.Round(v), 0, 100))
}
