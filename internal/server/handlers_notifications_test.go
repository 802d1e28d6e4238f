package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerlens/careerlens/internal/types"
)

func TestGetPreferences_DefaultsWhenUnset(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(store)
	user := store.addUser(types.PlanFree)

	rec := httptest.NewRecorder()
	srv.handleGetPreferences(rec, authedRequest(http.MethodGet, "/v1/notifications/preferences", user.ID, nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var prefs types.NotificationPreferences
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &prefs))
	assert.False(t, prefs.EmailEnabled)
	assert.True(t, prefs.InAppEnabled)
	assert.Equal(t, types.DigestDaily, prefs.DigestMode)
	assert.False(t, prefs.TaskReminders)
}

func TestGetPreferences_StoredProRecordClampedAfterDowngrade(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(store)
	user := store.addUser(types.PlanFree)

	// A record written while the user was pro.
	require.NoError(t, store.UpsertNotificationPreferences(t.Context(), user.ID, types.NotificationPreferences{
		EmailEnabled:  true,
		InAppEnabled:  true,
		DigestMode:    types.DigestInstant,
		ReportReady:   true,
		TaskReminders: true,
	}))

	rec := httptest.NewRecorder()
	srv.handleGetPreferences(rec, authedRequest(http.MethodGet, "/v1/notifications/preferences", user.ID, nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var prefs types.NotificationPreferences
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &prefs))
	assert.False(t, prefs.EmailEnabled)
	assert.Equal(t, types.DigestDaily, prefs.DigestMode)
	assert.False(t, prefs.TaskReminders)
	assert.True(t, prefs.ReportReady)
}

func TestUpdatePreferences_FreeRequestsClampedNotRejected(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(store)
	user := store.addUser(types.PlanFree)

	body := types.NotificationPreferences{
		EmailEnabled:  true,
		InAppEnabled:  true,
		DigestMode:    types.DigestInstant,
		ReportReady:   true,
		TaskReminders: true,
		Security:      true,
	}
	rec := httptest.NewRecorder()
	srv.handleUpdatePreferences(rec, authedRequest(http.MethodPut, "/v1/notifications/preferences", user.ID, body))

	require.Equal(t, http.StatusOK, rec.Code)

	var prefs types.NotificationPreferences
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &prefs))
	assert.False(t, prefs.EmailEnabled)
	assert.Equal(t, types.DigestDaily, prefs.DigestMode)
	assert.False(t, prefs.TaskReminders)
	assert.True(t, prefs.Security)

	// The stored record is the clamped one, not the requested one.
	stored, err := store.GetNotificationPreferences(t.Context(), user.ID)
	require.NoError(t, err)
	assert.False(t, stored.EmailEnabled)
	assert.Equal(t, types.DigestDaily, stored.DigestMode)
}

func TestUpdatePreferences_ProKeepsRequestedValues(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(store)
	user := store.addUser(types.PlanPro)

	body := types.NotificationPreferences{
		EmailEnabled:  true,
		InAppEnabled:  true,
		DigestMode:    types.DigestInstant,
		ReportReady:   true,
		TaskReminders: true,
	}
	rec := httptest.NewRecorder()
	srv.handleUpdatePreferences(rec, authedRequest(http.MethodPut, "/v1/notifications/preferences", user.ID, body))

	require.Equal(t, http.StatusOK, rec.Code)

	var prefs types.NotificationPreferences
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &prefs))
	assert.True(t, prefs.EmailEnabled)
	assert.Equal(t, types.DigestInstant, prefs.DigestMode)
	assert.True(t, prefs.TaskReminders)
}

func TestUpdatePreferences_InvalidDigestMode(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(store)
	user := store.addUser(types.PlanPro)

	rec := httptest.NewRecorder()
	srv.handleUpdatePreferences(rec, authedRequest(http.MethodPut, "/v1/notifications/preferences", user.ID,
		`{"digest_mode": "hourly"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListNotifications(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(store)
	user := store.addUser(types.PlanFree)

	rec := httptest.NewRecorder()
	srv.handleListNotifications(rec, authedRequest(http.MethodGet, "/v1/notifications", user.ID, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Notifications []types.Notification `json:"notifications"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Notifications)

	_, err := store.CreateNotification(t.Context(), user.ID, types.NotifIntelligenceReady, "Report ready", "")
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	srv.handleListNotifications(rec, authedRequest(http.MethodGet, "/v1/notifications", user.ID, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Notifications, 1)
	assert.Equal(t, types.NotifIntelligenceReady, resp.Notifications[0].Type)
}

func TestListNotifications_InvalidLimit(t *testing.T) {
	store := newFakeStore()
	srv := newTestServer(store)
	user := store.addUser(types.PlanFree)

	rec := httptest.NewRecorder()
	srv.handleListNotifications(rec, authedRequest(http.MethodGet, "/v1/notifications?limit=0", user.ID, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	srv.handleListNotifications(rec, authedRequest(http.MethodGet, "/v1/notifications?limit=nope", user.ID, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
