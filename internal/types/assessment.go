// Package types provides type definitions for structured data used throughout the careerlens system.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// AI familiarity levels a user can self-report.
const (
	AIFamiliarityBeginner     = "Beginner"
	AIFamiliarityIntermediate = "Intermediate"
	AIFamiliarityAdvanced     = "Advanced"
)

// Risk tolerance levels.
const (
	RiskToleranceLow    = "Low"
	RiskToleranceMedium = "Medium"
	RiskToleranceHigh   = "High"
)

// Entrepreneurship interest answers.
const (
	EntrepreneurshipYes = "Yes"
	EntrepreneurshipNo  = "No"
)

// Salary bands offered on the assessment form.
const (
	SalaryBandUnder75k  = "Under $75k"
	SalaryBand75to100k  = "$75k-$100k"
	SalaryBand100to140k = "$100k-$140k"
	SalaryBand140to200k = "$140k-$200k"
	SalaryBand200kPlus  = "$200k+"
)

// AssessmentAnswers is a user-submitted self-assessment. Enum fields are
// either a recognized literal or empty string; the scoring engine maps
// empty/unknown values to mid-range defaults rather than rejecting them.
type AssessmentAnswers struct {
	// Profile
	RoleTitle       string  `json:"role_title" validate:"required,min=1"`
	YearsExperience float64 `json:"years_experience" validate:"gte=0"`
	Industry        string  `json:"industry,omitempty"`
	Location        string  `json:"location,omitempty"`
	SalaryBand      string  `json:"salary_band,omitempty" validate:"omitempty,oneof='Under $75k' '$75k-$100k' '$100k-$140k' '$140k-$200k' '$200k+'"`

	// Skills
	PrimarySkills   string `json:"primary_skills,omitempty"`   // comma-delimited free text
	SecondarySkills string `json:"secondary_skills,omitempty"` // comma-delimited free text
	AIFamiliarity   string `json:"ai_familiarity,omitempty" validate:"omitempty,oneof=Beginner Intermediate Advanced"`

	// Positioning
	CareerGoal               string `json:"career_goal,omitempty" validate:"omitempty,oneof=Promotion 'Role change' 'Industry change' Entrepreneurship Stability"`
	RiskTolerance            string `json:"risk_tolerance,omitempty" validate:"omitempty,oneof=Low Medium High"`
	EntrepreneurshipInterest string `json:"entrepreneurship_interest,omitempty" validate:"omitempty,oneof=Yes No"`

	// Self-evaluation, 1-10
	LeadershipVisibility  int `json:"leadership_visibility" validate:"min=1,max=10"`
	MarketDifferentiation int `json:"market_differentiation" validate:"min=1,max=10"`
	TechnicalRelevance    int `json:"technical_relevance" validate:"min=1,max=10"`
	NetworkStrength       int `json:"network_strength" validate:"min=1,max=10"`
}

// Validate validates the answers using the validator.
func (a *AssessmentAnswers) Validate() error {
	validate := validator.New()
	return validate.Struct(a)
}

// ScoreResult holds the derived leverage/risk scores plus per-factor
// breakdowns. Recomputed deterministically from AssessmentAnswers; never
// hand-edited or stored independently of its assessment.
type ScoreResult struct {
	LeverageScore     int                `json:"leverage_score"`
	RiskScore         int                `json:"risk_score"`
	LeverageBreakdown map[string]float64 `json:"leverage_breakdown"`
	RiskBreakdown     map[string]float64 `json:"risk_breakdown"`
}

// Assessment is one immutable version in a user's assessment chain.
// Resubmission appends a new version; it never mutates a prior one.
type Assessment struct {
	ID        uuid.UUID         `json:"id"`
	UserID    uuid.UUID         `json:"user_id"`
	Version   int               `json:"version"`
	Active    bool              `json:"active"`
	Answers   AssessmentAnswers `json:"answers"`
	Scores    ScoreResult       `json:"scores"`
	CreatedAt time.Time         `json:"created_at"`
}
