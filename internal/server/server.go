// Package server exposes the analysis pipeline as a small JSON API
// for presentation layers. The core itself has no timeout contract;
// bounding request latency is this layer's job.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/proofmap/proofmap/internal/model"
)

// Analyzer is the pipeline surface the server needs
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*model.Result, error)
}

// Server serves proof analyses over HTTP
type Server struct {
	analyzer Analyzer
	limiter  *Limiter
	cfg      model.ServerConfig
}

// New creates a new server
func New(analyzer Analyzer, cfg model.ServerConfig) *Server {
	return &Server{
		analyzer: analyzer,
		limiter:  NewLimiter(cfg.RequestsPerSecond, cfg.BurstSize),
		cfg:      cfg,
	}
}

// Handler returns the HTTP handler for the API
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/analyze", s.handleAnalyze)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// ListenAndServe runs the server until the context is canceled
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

type analyzeRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	if !s.limiter.Allow(r.RemoteAddr) {
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}

	var req analyzeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), req.Text)
	if err != nil {
		if errors.Is(err, model.ErrEmptyInput) {
			writeError(w, http.StatusBadRequest, "proof text is empty")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result.ToMap())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		fmt.Printf("write response: %v\n", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}
