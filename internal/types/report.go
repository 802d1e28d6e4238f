package types

import (
	"time"

	"github.com/google/uuid"
)

// Report statuses.
const (
	ReportStatusPending = "pending"
	ReportStatusReady   = "ready"
	ReportStatusFailed  = "failed"
)

// SkillRecommendation is a single skill the model suggests investing in.
type SkillRecommendation struct {
	Skill     string `json:"skill"`
	Rationale string `json:"rationale"`
	Priority  string `json:"priority"` // high, medium, low
}

// RoadmapItem is one prioritized action in a 30/90 day roadmap.
type RoadmapItem struct {
	Title    string `json:"title"`
	Detail   string `json:"detail"`
	Priority int    `json:"priority"`
}

// SideProject is an entrepreneurial side-project suggestion.
type SideProject struct {
	Name       string `json:"name"`
	Pitch      string `json:"pitch"`
	FirstSteps string `json:"first_steps"`
}

// IntelligenceReport is the structured career-intelligence document produced
// by the LLM for one assessment. It is owned by that assessment and is
// superseded, not merged, on recalibration.
type IntelligenceReport struct {
	MarketPositioningSummary string                `json:"market_positioning_summary"`
	StrategicGaps            []string              `json:"strategic_gaps"`
	Roadmap30Days            []RoadmapItem         `json:"roadmap_30_days"`
	Roadmap90Days            []RoadmapItem         `json:"roadmap_90_days"`
	SkillRecommendations     []SkillRecommendation `json:"skill_recommendations"`
	ResumeInsights           []string              `json:"resume_insights"`
	SideProjects             []SideProject         `json:"side_projects"`
}

// FreeReport is the free-tier projection of an IntelligenceReport: a strict
// subset by truncation, never independently generated content.
type FreeReport struct {
	MarketPositioningSummary string        `json:"market_positioning_summary"`
	StrategicGaps            []string      `json:"strategic_gaps"`
	Roadmap30Days            []RoadmapItem `json:"roadmap_30_days"`
}

// StoredReport is an intelligence report row as persisted: one per
// assessment, with generation status tracked alongside the document.
type StoredReport struct {
	ID           uuid.UUID           `json:"id"`
	AssessmentID uuid.UUID           `json:"assessment_id"`
	UserID       uuid.UUID           `json:"user_id"`
	Status       string              `json:"status"`
	Report       *IntelligenceReport `json:"report,omitempty"`
	Model        string              `json:"model,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

// Recalibration reasons.
const (
	RecalReasonAllowed     = "allowed"
	RecalReasonFreeExpired = "free_expired"
	RecalReasonProWaiting  = "pro_waiting"
)

// RecalibrationStatus is an ephemeral computed value, never persisted.
// It is recomputed on every access from the latest assessment's creation
// timestamp and the plan tier.
type RecalibrationStatus struct {
	CanRecalibrate bool   `json:"can_recalibrate"`
	RemainingDays  int    `json:"remaining_days"`
	Reason         string `json:"reason"`
}
