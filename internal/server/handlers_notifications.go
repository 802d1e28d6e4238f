package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/careerlens/careerlens/internal/notifications"
	"github.com/careerlens/careerlens/internal/types"
)

const defaultNotificationLimit = 50

// handleGetPreferences returns the user's notification preferences, clamped
// to what the plan allows. Users with no stored record get the plan
// defaults.
func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	user, userPlan, err := s.currentUser(r)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if user == nil {
		s.errorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	prefs, err := s.store.GetNotificationPreferences(r.Context(), user.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if prefs == nil {
		defaults := notifications.DefaultPreferences(userPlan)
		prefs = &defaults
	}

	// Clamp on read too: a stored pro record must not leak pro settings
	// after a downgrade.
	s.jsonResponse(w, http.StatusOK, notifications.SanitizeForPlan(userPlan, *prefs))
}

// handleUpdatePreferences stores new notification preferences. Requested
// values outside the plan's range are clamped, not rejected; the stored and
// returned record is the effective one.
func (s *Server) handleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	user, userPlan, err := s.currentUser(r)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if user == nil {
		s.errorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	var prefs types.NotificationPreferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(prefs); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	effective := notifications.SanitizeForPlan(userPlan, prefs)
	if err := s.store.UpsertNotificationPreferences(r.Context(), user.ID, effective); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, effective)
}

// handleListNotifications returns the user's most recent notifications.
func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	user, _, err := s.currentUser(r)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if user == nil {
		s.errorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	limit := defaultNotificationLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 200 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	items, err := s.store.ListNotifications(r.Context(), user.ID, limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if items == nil {
		items = []types.Notification{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"notifications": items})
}
