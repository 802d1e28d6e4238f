package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/careerlens/careerlens/internal/types"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateAssessment appends a new assessment version for a user. The prior
// head is deactivated and the new row inserted in one transaction, keeping
// exactly one active assessment per user at all times.
func (db *DB) CreateAssessment(ctx context.Context, userID uuid.UUID, answers types.AssessmentAnswers, scores types.ScoreResult) (*AssessmentRow, error) {
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal answers: %w", err)
	}
	scoresJSON, err := json.Marshal(scores)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal scores: %w", err)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		`UPDATE assessments SET active = FALSE WHERE user_id = $1 AND active`,
		userID,
	); err != nil {
		return nil, fmt.Errorf("failed to deactivate prior assessment: %w", err)
	}

	row := AssessmentRow{
		UserID:  userID,
		Active:  true,
		Answers: answers,
		Scores:  scores,
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO assessments (user_id, version, active, answers, scores)
		 VALUES ($1,
		         COALESCE((SELECT MAX(version) FROM assessments WHERE user_id = $1), 0) + 1,
		         TRUE, $2, $3)
		 RETURNING id, version, created_at`,
		userID, answersJSON, scoresJSON,
	).Scan(&row.ID, &row.Version, &row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert assessment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit assessment: %w", err)
	}
	return &row, nil
}

// GetActiveAssessment retrieves the head of a user's assessment chain.
// Returns (nil, nil) when the user has no assessments.
func (db *DB) GetActiveAssessment(ctx context.Context, userID uuid.UUID) (*AssessmentRow, error) {
	var row AssessmentRow
	var answersJSON, scoresJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, version, active, answers, scores, created_at
		 FROM assessments WHERE user_id = $1 AND active`,
		userID,
	).Scan(&row.ID, &row.UserID, &row.Version, &row.Active, &answersJSON, &scoresJSON, &row.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active assessment: %w", err)
	}

	if err := json.Unmarshal(answersJSON, &row.Answers); err != nil {
		return nil, fmt.Errorf("failed to decode answers: %w", err)
	}
	if err := json.Unmarshal(scoresJSON, &row.Scores); err != nil {
		return nil, fmt.Errorf("failed to decode scores: %w", err)
	}

	return &row, nil
}

// ListAssessments retrieves a user's assessment history, newest first.
func (db *DB) ListAssessments(ctx context.Context, userID uuid.UUID, limit int) ([]AssessmentRow, error) {
	if limit == 0 {
		limit = 20
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, version, active, answers, scores, created_at
		 FROM assessments WHERE user_id = $1
		 ORDER BY version DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	var result []AssessmentRow
	for rows.Next() {
		var row AssessmentRow
		var answersJSON, scoresJSON []byte
		if err := rows.Scan(&row.ID, &row.UserID, &row.Version, &row.Active,
			&answersJSON, &scoresJSON, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		if err := json.Unmarshal(answersJSON, &row.Answers); err != nil {
			return nil, fmt.Errorf("failed to decode answers: %w", err)
		}
		if err := json.Unmarshal(scoresJSON, &row.Scores); err != nil {
			return nil, fmt.Errorf("failed to decode scores: %w", err)
		}
		result = append(result, row)
	}
	return result, nil
}
