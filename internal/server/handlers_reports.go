package server

import (
	"net/http"

	"github.com/careerlens/careerlens/internal/reports"
	"github.com/careerlens/careerlens/internal/types"
)

// ReportResponse wraps the latest report with its generation status. The
// report payload is plan-filtered: pro accounts get the full document, free
// accounts get the truncated view.
type ReportResponse struct {
	ID           string         `json:"id"`
	AssessmentID string         `json:"assessment_id"`
	Status       string         `json:"status"`
	Plan         types.PlanType `json:"plan"`
	Model        string         `json:"model,omitempty"`
	Report       any            `json:"report,omitempty"`
}

// handleLatestReport returns the report for the active assessment.
func (s *Server) handleLatestReport(w http.ResponseWriter, r *http.Request) {
	user, userPlan, err := s.currentUser(r)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if user == nil {
		s.errorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	stored, err := s.store.GetLatestReport(r.Context(), user.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if stored == nil {
		s.errorResponse(w, http.StatusNotFound, "No report on record")
		return
	}

	resp := ReportResponse{
		ID:           stored.ID.String(),
		AssessmentID: stored.AssessmentID.String(),
		Status:       stored.Status,
		Plan:         userPlan,
	}
	if stored.Status == types.ReportStatusReady {
		resp.Model = stored.Model
		resp.Report = reports.FilterForPlan(stored.Report, userPlan)
	}

	s.jsonResponse(w, http.StatusOK, resp)
}
