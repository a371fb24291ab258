// Package server exposes the SkillMorph catalog assistant over HTTP with
// lifecycle management.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/skillmorph/assistant-go/internal/llm"
	"github.com/skillmorph/assistant-go/internal/metrics"
	"github.com/skillmorph/assistant-go/internal/models"
)

// Querier answers one conversational catalog question. internal/agent
// provides the real implementation.
type Querier interface {
	Run(ctx context.Context, query string, history []models.Message) (string, error)
}

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server wraps the HTTP listener with dependencies and lifecycle management.
type Server struct {
	agent     Querier
	db        Pinger
	collector *metrics.Collector
	logger    *slog.Logger
	http      *http.Server
}

// New creates a server listening on the given port. Collector may be nil;
// /stats then reports 404.
func New(port int, agent Querier, db Pinger, collector *metrics.Collector, logger *slog.Logger) *Server {
	s := &Server{
		agent:     agent,
		db:        db,
		collector: collector,
		logger:    logger,
	}
	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler builds the route table. Exposed for tests.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware(s.logger))

	r.Post("/chat/query", s.handleChatQuery)
	r.Get("/healthz", s.handleHealthz)
	if s.collector != nil {
		r.Get("/stats", s.handleStats)
	}

	return enableCORS(r)
}

// Run starts the listener and blocks until the context is cancelled or the
// listener fails. On cancellation in-flight requests get a grace period.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return <-errCh
	}
}

type chatQueryRequest struct {
	Query    string           `json:"query"`
	Messages []models.Message `json:"messages"`
}

type chatQueryResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
}

type errorResponse struct {
	Success *bool  `json:"success,omitempty"`
	Error   string `json:"error"`
}

func (s *Server) handleChatQuery(w http.ResponseWriter, r *http.Request) {
	var req chatQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("malformed chat request body", "error", err)
		writeJSON(w, s.logger, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeJSON(w, s.logger, http.StatusBadRequest, errorResponse{Error: "Query is required"})
		return
	}

	answer, err := s.agent.Run(r.Context(), req.Query, req.Messages)
	if err != nil {
		// Internal detail stays in the log; callers get a generic message.
		if errors.Is(err, llm.ErrFatalAPI) {
			s.logger.Error("chat agent failed: non-retryable provider error, check API key and quota", "error", err)
		} else {
			s.logger.Error("chat agent failed", "error", err)
		}
		failed := false
		writeJSON(w, s.logger, http.StatusInternalServerError, errorResponse{
			Success: &failed,
			Error:   "Failed to communicate with the AI agent.",
		})
		return
	}

	writeJSON(w, s.logger, http.StatusOK, chatQueryResponse{Success: true, Response: answer})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		s.logger.Error("health check failed", "error", err)
		writeJSON(w, s.logger, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, s.logger, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, s.collector.Snapshot())
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}
