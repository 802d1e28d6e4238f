package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/careerlens/careerlens/internal/db"
	"github.com/careerlens/careerlens/internal/recalibration"
	"github.com/careerlens/careerlens/internal/scoring"
	"github.com/careerlens/careerlens/internal/types"
)

// SubmitAssessmentResponse is the response for POST /v1/assessments. The
// intelligence report is generated in the background; clients poll
// /v1/reports/latest for it.
type SubmitAssessmentResponse struct {
	Assessment   *types.Assessment `json:"assessment"`
	ReportStatus string            `json:"report_status"`
}

// handleSubmitAssessment scores and stores a new assessment version, then
// kicks off report generation.
func (s *Server) handleSubmitAssessment(w http.ResponseWriter, r *http.Request) {
	user, userPlan, err := s.currentUser(r)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if user == nil {
		s.errorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	var answers types.AssessmentAnswers
	if err := json.NewDecoder(r.Body).Decode(&answers); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(answers); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	// Resubmission is gated by the plan's recalibration policy, computed
	// from the current active assessment. First submissions always pass.
	active, err := s.store.GetActiveAssessment(r.Context(), user.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if active != nil {
		status := recalibration.Status(userPlan, &active.CreatedAt, time.Now())
		if !status.CanRecalibrate {
			lockErr := &ErrRecalibrationLocked{Status: status}
			s.jsonResponse(w, HTTPStatus(lockErr), map[string]any{
				"error":         "recalibration_locked",
				"message":       lockErr.Error(),
				"recalibration": status,
			})
			return
		}
	}

	scores := scoring.CalculateScores(answers)

	row, err := s.store.CreateAssessment(r.Context(), user.ID, answers, scores)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	reportID, err := s.store.CreateReport(r.Context(), row.ID, user.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	// Generation outlives the request; it reports completion through the
	// report row and a notification, never through this response.
	go s.generateReport(reportID, user.ID, userPlan, row)

	s.jsonResponse(w, http.StatusCreated, SubmitAssessmentResponse{
		Assessment:   row.ToAssessment(),
		ReportStatus: types.ReportStatusPending,
	})
}

// generateReport runs one full report generation and records the outcome.
// Failures mark the report failed and are logged; the submission already
// succeeded from the client's point of view.
func (s *Server) generateReport(reportID, userID uuid.UUID, userPlan types.PlanType, row *db.AssessmentRow) {
	ctx := context.Background()

	report, err := s.generator.Generate(ctx, row.Answers, row.Scores)
	if err != nil {
		log.Printf("[intelligence] generation failed for report %s: %v", reportID, err)
		if failErr := s.store.FailReport(ctx, reportID); failErr != nil {
			log.Printf("[intelligence] failed to mark report %s failed: %v", reportID, failErr)
		}
		return
	}

	if err := s.store.CompleteReport(ctx, reportID, report, s.generator.Model()); err != nil {
		log.Printf("[intelligence] failed to store report %s: %v", reportID, err)
		return
	}

	s.dispatcher.DispatchAsync(userID, userPlan, types.NotifIntelligenceReady,
		"Your career intelligence report is ready",
		"Your latest assessment has been analyzed. Open your report to see the results.")
}

// handleLatestAssessment returns the active assessment with its scores.
func (s *Server) handleLatestAssessment(w http.ResponseWriter, r *http.Request) {
	user, _, err := s.currentUser(r)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if user == nil {
		s.errorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	active, err := s.store.GetActiveAssessment(r.Context(), user.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if active == nil {
		noneErr := &ErrNoAssessment{}
		s.errorResponse(w, HTTPStatus(noneErr), noneErr.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, active.ToAssessment())
}

// handleRecalibrationStatus reports whether the user may submit a new
// assessment right now. The status is computed fresh on every call.
func (s *Server) handleRecalibrationStatus(w http.ResponseWriter, r *http.Request) {
	user, userPlan, err := s.currentUser(r)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if user == nil {
		s.errorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	active, err := s.store.GetActiveAssessment(r.Context(), user.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	var lastAt *time.Time
	if active != nil {
		lastAt = &active.CreatedAt
	}

	s.jsonResponse(w, http.StatusOK, recalibration.Status(userPlan, lastAt, time.Now()))
}
