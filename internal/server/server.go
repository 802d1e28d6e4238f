package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/careerlens/careerlens/internal/config"
	"github.com/careerlens/careerlens/internal/db"
	"github.com/careerlens/careerlens/internal/intelligence"
	"github.com/careerlens/careerlens/internal/llm"
	"github.com/careerlens/careerlens/internal/notifications"
	"github.com/careerlens/careerlens/internal/plan"
	"github.com/careerlens/careerlens/internal/server/middleware"
	"github.com/careerlens/careerlens/internal/server/ratelimit"
	"github.com/careerlens/careerlens/internal/types"
)

// Store is the database surface the handlers use. *db.DB satisfies it;
// handler tests substitute fakes.
type Store interface {
	UserStore
	CreateAssessment(ctx context.Context, userID uuid.UUID, answers types.AssessmentAnswers, scores types.ScoreResult) (*db.AssessmentRow, error)
	GetActiveAssessment(ctx context.Context, userID uuid.UUID) (*db.AssessmentRow, error)
	CreateReport(ctx context.Context, assessmentID, userID uuid.UUID) (uuid.UUID, error)
	CompleteReport(ctx context.Context, reportID uuid.UUID, report *types.IntelligenceReport, model string) error
	FailReport(ctx context.Context, reportID uuid.UUID) error
	GetLatestReport(ctx context.Context, userID uuid.UUID) (*types.StoredReport, error)
	GetNotificationPreferences(ctx context.Context, userID uuid.UUID) (*types.NotificationPreferences, error)
	UpsertNotificationPreferences(ctx context.Context, userID uuid.UUID, prefs types.NotificationPreferences) error
	CreateNotification(ctx context.Context, userID uuid.UUID, notifType types.NotificationType, title, body string) (uuid.UUID, error)
	ListNotifications(ctx context.Context, userID uuid.UUID, limit int) ([]types.Notification, error)
}

// Server represents the HTTP server.
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	store       Store
	llmClient   llm.Client
	generator   *intelligence.Generator
	dispatcher  *notifications.Dispatcher
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	validator   *validator.Validate
}

// New creates a new server instance. All collaborators are constructed here
// and injected; nothing is reached through package-level state.
func New(cfg *config.AppConfig) (*Server, error) {
	ctx := context.Background()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	llmClient, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.GeminiKey)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	s := &Server{
		db:          database,
		store:       database,
		llmClient:   llmClient,
		generator:   intelligence.NewGenerator(llmClient),
		dispatcher:  notifications.NewDispatcher(database),
		rateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfigFromEnv()),
		validator:   validator.New(),
	}

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request mux. Everything under /v1 requires a valid
// bearer token.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)

	authed := middleware.Auth(s.jwtService.AsTokenValidator())
	protect := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, authed(h))
	}

	protect("PUT /v1/auth/password", s.handleUpdatePassword)

	protect("POST /v1/assessments", s.handleSubmitAssessment)
	protect("GET /v1/assessments/latest", s.handleLatestAssessment)
	protect("GET /v1/assessments/recalibration", s.handleRecalibrationStatus)

	protect("GET /v1/reports/latest", s.handleLatestReport)

	protect("GET /v1/notifications", s.handleListNotifications)
	protect("GET /v1/notifications/preferences", s.handleGetPreferences)
	protect("PUT /v1/notifications/preferences", s.handleUpdatePreferences)

	return mux
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.llmClient != nil {
		if err := s.llmClient.Close(); err != nil {
			log.Printf("Error closing LLM client: %v", err)
		}
	}
	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	s.authHandler.Register(w, r)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.authHandler.Login(w, r)
}

func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	s.authHandler.UpdatePasswordWithUserID(w, r, userID)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier (IP address) from the
// request. X-Forwarded-For is deliberately ignored; it is spoofable unless
// the proxy chain is trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// currentUser loads the authenticated user and resolves the effective plan.
// Returns a nil user with no error if the account no longer exists.
func (s *Server) currentUser(r *http.Request) (*db.User, types.PlanType, error) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		return nil, types.PlanFree, err
	}

	user, err := s.store.GetUser(r.Context(), userID)
	if err != nil {
		return nil, types.PlanFree, err
	}
	if user == nil {
		return nil, types.PlanFree, nil
	}
	return user, plan.Resolve(user.UserMetadata, user.AppMetadata), nil
}
