package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/careerlens/careerlens/internal/config"
	"github.com/careerlens/careerlens/internal/db"
	"github.com/careerlens/careerlens/internal/intelligence"
	"github.com/careerlens/careerlens/internal/llm"
	"github.com/careerlens/careerlens/internal/notifications"
	"github.com/careerlens/careerlens/internal/server/middleware"
	"github.com/careerlens/careerlens/internal/types"
)

// fakeStore is an in-memory Store for handler tests.
type fakeStore struct {
	mu            sync.Mutex
	users         map[uuid.UUID]*db.User
	usersByEmail  map[string]*db.User
	assessments   map[uuid.UUID][]*db.AssessmentRow
	reports       map[uuid.UUID]*types.StoredReport // keyed by report ID
	latestReport  map[uuid.UUID]uuid.UUID           // user ID -> report ID
	prefs         map[uuid.UUID]*types.NotificationPreferences
	notifications map[uuid.UUID][]types.Notification

	failGetActive bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:         make(map[uuid.UUID]*db.User),
		usersByEmail:  make(map[string]*db.User),
		assessments:   make(map[uuid.UUID][]*db.AssessmentRow),
		reports:       make(map[uuid.UUID]*types.StoredReport),
		latestReport:  make(map[uuid.UUID]uuid.UUID),
		prefs:         make(map[uuid.UUID]*types.NotificationPreferences),
		notifications: make(map[uuid.UUID][]types.Notification),
	}
}

func (f *fakeStore) addUser(userPlan types.PlanType) *db.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	user := &db.User{
		ID:          uuid.New(),
		Name:        "Test User",
		Email:       uuid.NewString() + "@example.com",
		PasswordSet: true,
		AppMetadata: types.Metadata{types.MetadataPlanKey: string(userPlan)},
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	f.users[user.ID] = user
	f.usersByEmail[user.Email] = user
	return user
}

func (f *fakeStore) CreateUser(_ context.Context, name, email string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user := &db.User{ID: uuid.New(), Name: name, Email: email, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	f.users[user.ID] = user
	f.usersByEmail[email] = user
	return user.ID, nil
}

func (f *fakeStore) GetUser(_ context.Context, userID uuid.UUID) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[userID], nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.usersByEmail[email], nil
}

func (f *fakeStore) CheckEmailExists(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.usersByEmail[email]
	return ok, nil
}

func (f *fakeStore) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[userID]; ok {
		user.PasswordHash = passwordHash
		user.PasswordSet = true
	}
	return nil
}

func (f *fakeStore) CreateAssessment(_ context.Context, userID uuid.UUID, answers types.AssessmentAnswers, scores types.ScoreResult) (*db.AssessmentRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.assessments[userID] {
		row.Active = false
	}
	row := &db.AssessmentRow{
		ID:        uuid.New(),
		UserID:    userID,
		Version:   len(f.assessments[userID]) + 1,
		Active:    true,
		Answers:   answers,
		Scores:    scores,
		CreatedAt: time.Now(),
	}
	f.assessments[userID] = append(f.assessments[userID], row)
	return row, nil
}

func (f *fakeStore) GetActiveAssessment(_ context.Context, userID uuid.UUID) (*db.AssessmentRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGetActive {
		return nil, context.DeadlineExceeded
	}
	for _, row := range f.assessments[userID] {
		if row.Active {
			return row, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) seedAssessment(userID uuid.UUID, createdAt time.Time) *db.AssessmentRow {
	f.mu.Lock()
	defer f.mu.Unlock()
	row := &db.AssessmentRow{
		ID:        uuid.New(),
		UserID:    userID,
		Version:   len(f.assessments[userID]) + 1,
		Active:    true,
		CreatedAt: createdAt,
	}
	f.assessments[userID] = append(f.assessments[userID], row)
	return row
}

func (f *fakeStore) CreateReport(_ context.Context, assessmentID, userID uuid.UUID) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	f.reports[id] = &types.StoredReport{
		ID:           id,
		AssessmentID: assessmentID,
		UserID:       userID,
		Status:       types.ReportStatusPending,
		CreatedAt:    time.Now(),
	}
	f.latestReport[userID] = id
	return id, nil
}

func (f *fakeStore) CompleteReport(_ context.Context, reportID uuid.UUID, report *types.IntelligenceReport, model string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := f.reports[reportID]
	stored.Status = types.ReportStatusReady
	stored.Report = report
	stored.Model = model
	return nil
}

func (f *fakeStore) FailReport(_ context.Context, reportID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports[reportID].Status = types.ReportStatusFailed
	return nil
}

func (f *fakeStore) GetLatestReport(_ context.Context, userID uuid.UUID) (*types.StoredReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.latestReport[userID]
	if !ok {
		return nil, nil
	}
	return f.reports[id], nil
}

func (f *fakeStore) GetNotificationPreferences(_ context.Context, userID uuid.UUID) (*types.NotificationPreferences, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prefs[userID], nil
}

func (f *fakeStore) UpsertNotificationPreferences(_ context.Context, userID uuid.UUID, prefs types.NotificationPreferences) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prefs[userID] = &prefs
	return nil
}

func (f *fakeStore) CreateNotification(_ context.Context, userID uuid.UUID, notifType types.NotificationType, title, body string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := types.Notification{ID: uuid.New(), UserID: userID, Type: notifType, Title: title, Body: body, CreatedAt: time.Now()}
	f.notifications[userID] = append(f.notifications[userID], n)
	return n.ID, nil
}

func (f *fakeStore) ListNotifications(_ context.Context, userID uuid.UUID, limit int) ([]types.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := f.notifications[userID]
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (f *fakeStore) notificationCount(userID uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.notifications[userID])
}

// fakeLLMClient answers each prompt with canned JSON keyed off a marker
// phrase in the prompt text.
type fakeLLMClient struct{}

func (fakeLLMClient) GenerateContent(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return fakeLLMClient{}.GenerateJSON(context.Background(), prompt, tier)
}

func (fakeLLMClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	switch {
	case strings.Contains(prompt, "career strategy analyst"):
		return `{
			"market_positioning_summary": "Holding steady in a shifting market.",
			"strategic_gaps": ["gap one", "gap two", "gap three"],
			"roadmap_30_days": [{"title": "a", "detail": "b", "priority": 1}],
			"roadmap_90_days": [{"title": "c", "detail": "d", "priority": 1}],
			"skill_recommendations": [{"skill": "Go", "rationale": "r", "priority": "high"}]
		}`, nil
	case strings.Contains(prompt, "resume reviewer"):
		return `{"resume_insights": ["lead with outcomes"]}`, nil
	case strings.Contains(prompt, "startup advisor"):
		return `{"side_projects": [{"name": "n", "pitch": "p", "first_steps": "f"}]}`, nil
	}
	return "", context.Canceled
}

func (fakeLLMClient) GetModel(tier llm.ModelTier) string { return "fake-model" }
func (fakeLLMClient) Close() error                       { return nil }

// failingLLMClient errors on every call.
type failingLLMClient struct{}

func (failingLLMClient) GenerateContent(context.Context, string, llm.ModelTier) (string, error) {
	return "", errors.New("model unavailable")
}

func (failingLLMClient) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	return "", errors.New("model unavailable")
}

func (failingLLMClient) GetModel(llm.ModelTier) string { return "fake-model" }
func (failingLLMClient) Close() error                  { return nil }

func newFailingGenerator() *intelligence.Generator {
	return intelligence.NewGenerator(failingLLMClient{})
}

// newTestServer builds a Server over fakes; no database or network.
func newTestServer(store *fakeStore) *Server {
	passwordConfig := &config.PasswordConfig{BcryptCost: 10}
	jwtService := NewJWTService(&config.JWTConfig{
		Secret:          "test-secret-key-for-jwt-signing-minimum-32-bytes",
		ExpirationHours: 24,
	})
	userService := NewUserService(store, passwordConfig)

	return &Server{
		store:       store,
		llmClient:   fakeLLMClient{},
		generator:   intelligence.NewGenerator(fakeLLMClient{}),
		dispatcher:  notifications.NewDispatcher(store),
		jwtService:  jwtService,
		userService: userService,
		authHandler: NewAuthHandler(userService, jwtService),
		validator:   validator.New(),
	}
}

// authedRequest builds a request whose context carries the user ID, as the
// auth middleware would have left it.
func authedRequest(method, target string, userID uuid.UUID, body any) *http.Request {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}
