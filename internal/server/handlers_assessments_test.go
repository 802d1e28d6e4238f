package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerlens/careerlens/internal/types"
)

func validAnswers() types.AssessmentAnswers {
	return types.AssessmentAnswers{
		RoleTitle:       "Backend Engineer",
		YearsExperience: 7,
		Industry:        "fintech",
		SalaryBand:      types.SalaryBand100to140k,
		PrimarySkills:   "Go, PostgreSQL, Kubernetes",
		AIFamiliarity:   types.AIFamiliarityIntermediate,
		RiskTolerance:   types.RiskToleranceMedium,

		LeadershipVisibility:  5,
		MarketDifferentiation: 7,
		TechnicalRelevance:    6,
		NetworkStrength:       4,
	}
}

func TestSubmitAssessment_FirstSubmission(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(store)
	user := store.addUser(types.PlanFree)

	req := authedRequest(http.MethodPost, "/v1/assessments", user.ID, validAnswers())
	rec := httptest.NewRecorder()
	srv.handleSubmitAssessment(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp SubmitAssessmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Assessment)
	assert.Equal(t, 1, resp.Assessment.Version)
	assert.True(t, resp.Assessment.Active)
	assert.Equal(t, types.ReportStatusPending, resp.ReportStatus)

	// Scores are computed synchronously on submit.
	assert.Greater(t, resp.Assessment.Scores.LeverageScore, 0)
	assert.Greater(t, resp.Assessment.Scores.RiskScore, 0)
}

func TestSubmitAssessment_FreeLockedAfterFirstDay(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(store)
	user := store.addUser(types.PlanFree)
	store.seedAssessment(user.ID, time.Now().Add(-48*time.Hour))

	req := authedRequest(http.MethodPost, "/v1/assessments", user.ID, validAnswers())
	rec := httptest.NewRecorder()
	srv.handleSubmitAssessment(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)

	var resp struct {
		Error         string                    `json:"error"`
		Recalibration types.RecalibrationStatus `json:"recalibration"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "recalibration_locked", resp.Error)
	assert.Equal(t, types.RecalReasonFreeExpired, resp.Recalibration.Reason)
	assert.False(t, resp.Recalibration.CanRecalibrate)
}

func TestSubmitAssessment_FreeCorrectionWindow(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(store)
	user := store.addUser(types.PlanFree)
	store.seedAssessment(user.ID, time.Now().Add(-2*time.Hour))

	req := authedRequest(http.MethodPost, "/v1/assessments", user.ID, validAnswers())
	rec := httptest.NewRecorder()
	srv.handleSubmitAssessment(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp SubmitAssessmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Assessment.Version)
}

func TestSubmitAssessment_ProCooldown(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(store)
	user := store.addUser(types.PlanPro)
	store.seedAssessment(user.ID, time.Now().Add(-30*24*time.Hour))

	req := authedRequest(http.MethodPost, "/v1/assessments", user.ID, validAnswers())
	rec := httptest.NewRecorder()
	srv.handleSubmitAssessment(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), types.RecalReasonProWaiting)
}

func TestSubmitAssessment_ProAfterCooldown(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(store)
	user := store.addUser(types.PlanPro)
	store.seedAssessment(user.ID, time.Now().Add(-91*24*time.Hour))

	req := authedRequest(http.MethodPost, "/v1/assessments", user.ID, validAnswers())
	rec := httptest.NewRecorder()
	srv.handleSubmitAssessment(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestSubmitAssessment_InvalidBody(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(store)
	user := store.addUser(types.PlanFree)

	req := authedRequest(http.MethodPost, "/v1/assessments", user.ID, "not json")
	rec := httptest.NewRecorder()
	srv.handleSubmitAssessment(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitAssessment_InvalidEnum(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(store)
	user := store.addUser(types.PlanFree)

	answers := validAnswers()
	answers.AIFamiliarity = "wizard"

	req := authedRequest(http.MethodPost, "/v1/assessments", user.ID, answers)
	rec := httptest.NewRecorder()
	srv.handleSubmitAssessment(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation error")
}

func TestSubmitAssessment_UnknownUser(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(store)

	req := authedRequest(http.MethodPost, "/v1/assessments", uuid.New(), validAnswers())
	rec := httptest.NewRecorder()
	srv.handleSubmitAssessment(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitAssessment_StoreError(t *testing.T) {
	store := newFakeStore()
	store.failGetActive = true
	srv := newTestServer(store)
	user := store.addUser(types.PlanFree)

	req := authedRequest(http.MethodPost, "/v1/assessments", user.ID, validAnswers())
	rec := httptest.NewRecorder()
	srv.handleSubmitAssessment(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGenerateReport_Success(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(store)
	user := store.addUser(types.PlanPro)

	row, err := store.CreateAssessment(t.Context(), user.ID, validAnswers(), types.ScoreResult{LeverageScore: 70, RiskScore: 40})
	require.NoError(t, err)
	reportID, err := store.CreateReport(t.Context(), row.ID, user.ID)
	require.NoError(t, err)

	srv.generateReport(reportID, user.ID, types.PlanPro, row)

	stored, err := store.GetLatestReport(t.Context(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, types.ReportStatusReady, stored.Status)
	require.NotNil(t, stored.Report)
	assert.NotEmpty(t, stored.Report.MarketPositioningSummary)
	assert.Equal(t, "fake-model", stored.Model)

	// Dispatch is asynchronous; give it a moment.
	assert.Eventually(t, func() bool {
		return store.notificationCount(user.ID) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestGenerateReport_FailureMarksFailed(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(store)
	srv.generator = newFailingGenerator()

	user := store.addUser(types.PlanPro)
	row, err := store.CreateAssessment(t.Context(), user.ID, validAnswers(), types.ScoreResult{})
	require.NoError(t, err)
	reportID, err := store.CreateReport(t.Context(), row.ID, user.ID)
	require.NoError(t, err)

	srv.generateReport(reportID, user.ID, types.PlanPro, row)

	stored, err := store.GetLatestReport(t.Context(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, types.ReportStatusFailed, stored.Status)
	assert.Equal(t, 0, store.notificationCount(user.ID))
}

func TestLatestAssessment(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(store)
	user := store.addUser(types.PlanFree)

	rec := httptest.NewRecorder()
	srv.handleLatestAssessment(rec, authedRequest(http.MethodGet, "/v1/assessments/latest", user.ID, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	store.seedAssessment(user.ID, time.Now())

	rec = httptest.NewRecorder()
	srv.handleLatestAssessment(rec, authedRequest(http.MethodGet, "/v1/assessments/latest", user.ID, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var assessment types.Assessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &assessment))
	assert.True(t, assessment.Active)
}

func TestRecalibrationStatusEndpoint(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(store)
	user := store.addUser(types.PlanFree)

	// No assessment yet: always allowed.
	rec := httptest.NewRecorder()
	srv.handleRecalibrationStatus(rec, authedRequest(http.MethodGet, "/v1/assessments/recalibration", user.ID, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var status types.RecalibrationStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.True(t, status.CanRecalibrate)
	assert.Equal(t, types.RecalReasonAllowed, status.Reason)

	// Locked after the free correction window closes.
	store.seedAssessment(user.ID, time.Now().Add(-48*time.Hour))

	rec = httptest.NewRecorder()
	srv.handleRecalibrationStatus(rec, authedRequest(http.MethodGet, "/v1/assessments/recalibration", user.ID, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.False(t, status.CanRecalibrate)
	assert.Equal(t, types.RecalReasonFreeExpired, status.Reason)
}
