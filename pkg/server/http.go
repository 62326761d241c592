// Copyright 2026 EdgarLab
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/a2aproject/a2a-go/a2asrv"

	"github.com/edgarlab/analyst/pkg/config"
)

// HTTPServer serves the agent over HTTP using a2a-go native handlers.
//
// Routes:
//   - POST /                             -> A2A JSON-RPC
//   - GET  /                             -> agent card
//   - GET  /.well-known/agent-card.json  -> agent card
//   - GET  /health                       -> health check
type HTTPServer struct {
	cfg    *config.Config
	server *http.Server

	jsonRPC http.Handler
	card    http.Handler

	// taskStore for persistent task storage (nil = a2a-go in-memory store)
	taskStore a2asrv.TaskStore
}

// HTTPServerOption configures the HTTP server.
type HTTPServerOption func(*HTTPServer)

// WithTaskStore sets the task store for persistent task storage.
// If not set, a2a-go uses its internal in-memory store.
func WithTaskStore(store a2asrv.TaskStore) HTTPServerOption {
	return func(s *HTTPServer) {
		s.taskStore = store
	}
}

// NewHTTPServer creates the HTTP server for a single agent executor.
func NewHTTPServer(cfg *config.Config, executor *Executor, opts ...HTTPServerOption) *HTTPServer {
	s := &HTTPServer{cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}

	var handlerOpts []a2asrv.RequestHandlerOption
	if s.taskStore != nil {
		handlerOpts = append(handlerOpts, a2asrv.WithTaskStore(s.taskStore))
	}

	requestHandler := a2asrv.NewHandler(executor, handlerOpts...)
	s.jsonRPC = a2asrv.NewJSONRPCHandler(requestHandler)
	s.card = a2asrv.NewStaticAgentCardHandler(NewAgentCard("http://" + cfg.Address() + "/"))

	return s
}

// Start starts the HTTP server and blocks until ctx is cancelled or the
// listener fails.
func (s *HTTPServer) Start(ctx context.Context) error {
	var handler http.Handler = s.setupRoutes()
	handler = corsMiddleware(handler)
	handler = loggingMiddleware(handler)

	s.server = &http.Server{
		Addr:         s.cfg.Address(),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	slog.Info("HTTP server starting", "address", s.cfg.Address())

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	slog.Info("HTTP server shutting down")
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP shutdown error: %w", err)
	}
	return nil
}

// Address returns the HTTP server address.
func (s *HTTPServer) Address() string {
	return s.cfg.Address()
}

func (s *HTTPServer) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle(a2asrv.WellKnownAgentCardPath, s.card)
	return mux
}

// handleRoot serves the JSON-RPC endpoint for POST and the agent card for GET.
func (s *HTTPServer) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodPost:
		s.jsonRPC.ServeHTTP(w, r)
	case http.MethodGet, http.MethodOptions:
		s.card.ServeHTTP(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// corsMiddleware adds permissive CORS headers.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs requests. The ResponseWriter is not wrapped so
// http.Flusher keeps working for SSE responses.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}
