package db

import (
	"time"

	"github.com/careerlens/careerlens/internal/types"
	"github.com/google/uuid"
)

// User represents a user account row. Plan markers live in the metadata
// bags and are resolved by the plan package, never read directly here.
type User struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"-"` // never serialized
	PasswordSet  bool           `json:"password_set"`
	UserMetadata types.Metadata `json:"user_metadata,omitempty"`
	AppMetadata  types.Metadata `json:"app_metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// AssessmentRow is an assessment version as stored. Answers and score
// breakdowns are JSONB columns decoded into their typed shapes on read.
type AssessmentRow struct {
	ID        uuid.UUID               `json:"id"`
	UserID    uuid.UUID               `json:"user_id"`
	Version   int                     `json:"version"`
	Active    bool                    `json:"active"`
	Answers   types.AssessmentAnswers `json:"answers"`
	Scores    types.ScoreResult       `json:"scores"`
	CreatedAt time.Time               `json:"created_at"`
}

// ToAssessment converts a row to its API shape.
func (r *AssessmentRow) ToAssessment() *types.Assessment {
	if r == nil {
		return nil
	}
	return &types.Assessment{
		ID:        r.ID,
		UserID:    r.UserID,
		Version:   r.Version,
		Active:    r.Active,
		Answers:   r.Answers,
		Scores:    r.Scores,
		CreatedAt: r.CreatedAt,
	}
}
