// Package server provides the HTTP REST API for the career portal.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/career-portal/internal/fetch"
	"github.com/jonathan/career-portal/internal/recommend"
	"github.com/jonathan/career-portal/internal/server/middleware"
	"github.com/jonathan/career-portal/internal/server/ratelimit"
	"github.com/jonathan/career-portal/internal/types"
)

// DefaultMaxUploadBytes bounds resume uploads when no limit is configured.
const DefaultMaxUploadBytes = 5 << 20

// Recommender recomputes one student's recommendations synchronously.
type Recommender interface {
	Refresh(ctx context.Context, userID uuid.UUID) (*types.Recommendations, error)
}

// JobFetcher loads a job posting page for import.
type JobFetcher func(ctx context.Context, url string) (*fetch.JobPage, error)

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	store          Store
	recommender    Recommender
	trigger        recommend.Trigger
	fetchJob       JobFetcher
	rateLimiter    *ratelimit.Limiter
	log            logrus.FieldLogger
	maxUploadBytes int64
	handler        http.Handler
}

// Config holds server configuration and collaborators
type Config struct {
	Port           int
	Store          Store
	Recommender    Recommender
	Trigger        recommend.Trigger
	FetchJob       JobFetcher
	RateLimit      *ratelimit.Config
	Logger         logrus.FieldLogger
	MaxUploadBytes int64
	FetchTimeout   time.Duration
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Recommender == nil {
		return nil, fmt.Errorf("recommender is required")
	}

	s := &Server{
		store:          cfg.Store,
		recommender:    cfg.Recommender,
		trigger:        cfg.Trigger,
		fetchJob:       cfg.FetchJob,
		log:            cfg.Logger,
		maxUploadBytes: cfg.MaxUploadBytes,
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	if s.maxUploadBytes <= 0 {
		s.maxUploadBytes = DefaultMaxUploadBytes
	}
	if s.fetchJob == nil {
		opts := fetch.DefaultOptions()
		if cfg.FetchTimeout > 0 {
			opts.Timeout = cfg.FetchTimeout
		}
		s.fetchJob = func(ctx context.Context, url string) (*fetch.JobPage, error) {
			return fetch.JobPosting(ctx, url, opts)
		}
	}
	s.rateLimiter = ratelimit.NewLimiter(cfg.RateLimit)

	mux := http.NewServeMux()
	s.routes(mux)

	s.handler = s.withRateLimit(
		middleware.RequestLogger(s.log)(
			middleware.Recover(s.log)(
				s.withCORS(mux))))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)

	// Users
	mux.HandleFunc("POST /users", s.handleCreateUser)
	mux.HandleFunc("GET /users", s.handleListUsers)
	mux.HandleFunc("GET /users/{id}", s.handleGetUser)
	mux.HandleFunc("DELETE /users/{id}", s.handleDeleteUser)

	// Student profile
	mux.HandleFunc("GET /users/{id}/profile", s.handleGetProfile)
	mux.HandleFunc("PUT /users/{id}/profile", s.handlePutProfile)
	mux.HandleFunc("DELETE /users/{id}/profile", s.handleDeleteProfile)
	mux.HandleFunc("POST /users/{id}/resume", s.handleUploadResume)

	// Recommendations and dashboard
	mux.HandleFunc("GET /users/{id}/recommendations", s.handleListRecommendations)
	mux.HandleFunc("POST /users/{id}/recommendations/refresh", s.handleRefreshRecommendations)
	mux.HandleFunc("GET /users/{id}/dashboard", s.handleDashboard)

	// Job postings
	mux.HandleFunc("GET /jobs", s.handleListJobs)
	mux.HandleFunc("POST /jobs", s.handleCreateJob)
	mux.HandleFunc("POST /jobs/import", s.handleImportJob)
	mux.HandleFunc("GET /jobs/{id}", s.handleGetJob)
	mux.HandleFunc("PUT /jobs/{id}", s.handleUpdateJob)
	mux.HandleFunc("DELETE /jobs/{id}", s.handleDeleteJob)

	// Learning content and market trends
	mux.HandleFunc("GET /courses", s.handleListCourses)
	mux.HandleFunc("POST /courses", s.handleCreateCourse)
	mux.HandleFunc("PUT /courses/{id}", s.handleUpdateCourse)
	mux.HandleFunc("DELETE /courses/{id}", s.handleDeleteCourse)
	mux.HandleFunc("GET /videos", s.handleListVideos)
	mux.HandleFunc("POST /videos", s.handleCreateVideo)
	mux.HandleFunc("DELETE /videos/{id}", s.handleDeleteVideo)
	mux.HandleFunc("GET /trends", s.handleListTrends)
	mux.HandleFunc("POST /trends", s.handleCreateTrend)
	mux.HandleFunc("DELETE /trends/{id}", s.handleDeleteTrend)

	// Stateless helpers
	mux.HandleFunc("POST /score", s.handleScore)
	mux.HandleFunc("POST /chat", s.handleChat)
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.httpServer.Addr).Info("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}
	s.log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.rateLimiter.Stop()
	s.log.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-Id")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects requests over their tier's budget with 429
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.Method, r.URL.Path)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.log.WithError(err).Warn("health check: database unreachable")
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.WithError(err).Error("failed to encode JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// clientID identifies the caller by remote IP.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"tier":      info.Tier,
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		secs := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = secs
		w.Header().Set("Retry-After", fmt.Sprintf("%d", secs))
	}

	s.log.WithFields(logrus.Fields{
		"client": clientID(r),
		"path":   r.URL.Path,
		"tier":   info.Tier,
	}).Warn("rate limit exceeded")

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
