// Package server exposes the command engine over HTTP: POST /command runs a
// command, /captures serves generated and captured images, and /health
// answers liveness probes.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"echo/internal/config"
	"echo/internal/engine"
)

// Executor runs one assistant command. Satisfied by *engine.Engine.
type Executor interface {
	Execute(ctx context.Context, command string) engine.Response
}

// Server is the HTTP front end.
type Server struct {
	httpServer *http.Server
	log        *slog.Logger
	cfg        config.ServerConfig
}

type commandRequest struct {
	Command string `json:"command"`
}

// New builds the HTTP front end around exec, serving captured images from
// capturesDir.
func New(cfg config.ServerConfig, exec Executor, capturesDir string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		log: log.With("component", "server"),
		cfg: cfg,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /command", s.handleCommand(exec))
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /captures/", http.StripPrefix("/captures/",
		http.FileServer(http.Dir(capturesDir))))

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Run serves until ctx is canceled, then shuts down gracefully within the
// configured timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.log.Info("Shutting down HTTP server")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) handleCommand(exec Executor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req commandRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}
		if strings.TrimSpace(req.Command) == "" {
			s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "command is required"})
			return
		}

		resp := exec.Execute(r.Context(), req.Command)
		s.writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("Failed to encode response", "error", err)
	}
}
