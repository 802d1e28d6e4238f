package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/careerlens/careerlens/internal/types"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateReport inserts a pending report row for an assessment and returns
// its ID. One report per assessment: recalibration produces a new assessment
// and therefore a new report row, superseding rather than merging.
func (db *DB) CreateReport(ctx context.Context, assessmentID, userID uuid.UUID) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO intelligence_reports (assessment_id, user_id, status)
		 VALUES ($1, $2, 'pending')
		 RETURNING id`,
		assessmentID, userID,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create report: %w", err)
	}
	return id, nil
}

// CompleteReport stores the generated document and marks the row ready.
func (db *DB) CompleteReport(ctx context.Context, reportID uuid.UUID, report *types.IntelligenceReport, model string) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`UPDATE intelligence_reports SET status = 'ready', report = $1, model = $2 WHERE id = $3`,
		reportJSON, model, reportID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete report: %w", err)
	}
	return nil
}

// FailReport marks a report row failed after generation did not produce a
// valid document.
func (db *DB) FailReport(ctx context.Context, reportID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE intelligence_reports SET status = 'failed' WHERE id = $1`,
		reportID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark report failed: %w", err)
	}
	return nil
}

// GetLatestReport retrieves the report owned by the user's active
// assessment. Returns (nil, nil) when none exists.
func (db *DB) GetLatestReport(ctx context.Context, userID uuid.UUID) (*types.StoredReport, error) {
	var r types.StoredReport
	var reportJSON []byte
	var model *string

	err := db.pool.QueryRow(ctx,
		`SELECT ir.id, ir.assessment_id, ir.user_id, ir.status, ir.report, ir.model, ir.created_at
		 FROM intelligence_reports ir
		 JOIN assessments a ON a.id = ir.assessment_id
		 WHERE ir.user_id = $1 AND a.active`,
		userID,
	).Scan(&r.ID, &r.AssessmentID, &r.UserID, &r.Status, &reportJSON, &model, &r.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest report: %w", err)
	}

	if model != nil {
		r.Model = *model
	}
	if len(reportJSON) > 0 {
		var doc types.IntelligenceReport
		if err := json.Unmarshal(reportJSON, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode report: %w", err)
		}
		r.Report = &doc
	}

	return &r, nil
}
