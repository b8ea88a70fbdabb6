package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// ServerConfig holds the server configuration.
type ServerConfig struct {
	Host           string        // Host to bind to (default "localhost")
	Port           int           // Port to listen on (default 8080)
	ReadTimeout    time.Duration // Read timeout (default 30s)
	WriteTimeout   time.Duration // Write timeout (default 30s)
	IdleTimeout    time.Duration // Idle timeout (default 60s)
	MaxFastWorkers int           // Max concurrent session operations (default 100)
	MaxSlowWorkers int           // Max concurrent shuffle streams (default 4)
	MaxSessions    int           // Max live puzzle sessions (default 1000, 0 = unlimited)
}

// DefaultConfig returns a ServerConfig with sensible defaults.
func DefaultConfig() ServerConfig {
	return ServerConfig{
		Host:           "localhost",
		Port:           8080,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxFastWorkers: 100,
		MaxSlowWorkers: 4,
		MaxSessions:    1000,
	}
}

// Server is the HTTP API server.
type Server struct {
	config   ServerConfig
	store    *SessionStore
	handlers *Handlers
	server   *http.Server
	pool     *WorkerPool
	version  string
}

// NewServer creates a new API server.
func NewServer(config ServerConfig, version string) *Server {
	pool := NewWorkerPool(PoolConfig{
		MaxFastWorkers: config.MaxFastWorkers,
		MaxSlowWorkers: config.MaxSlowWorkers,
	})
	store := NewSessionStore(config.MaxSessions)
	handlers := NewHandlersWithPool(store, version, pool)

	return &Server{
		config:   config,
		store:    store,
		handlers: handlers,
		pool:     pool,
		version:  version,
	}
}

// Pool returns the worker pool for monitoring.
func (s *Server) Pool() *WorkerPool {
	return s.pool
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs all requests.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	// API routes
	mux.HandleFunc("GET /api/health", s.handlers.Health)
	mux.HandleFunc("POST /api/puzzle", s.handlers.NewPuzzle)
	mux.HandleFunc("DELETE /api/puzzle", s.handlers.CloseSession)
	mux.HandleFunc("GET /api/puzzle/state", s.handlers.State)
	mux.HandleFunc("POST /api/puzzle/move", s.handlers.Move)
	mux.HandleFunc("POST /api/puzzle/predict", s.handlers.Prediction)
	mux.HandleFunc("GET /api/puzzle/solution", s.handlers.Solution)
	mux.HandleFunc("GET /api/shuffle/stream", s.handlers.ShuffleSSE)
	mux.HandleFunc("/api/ws", s.handlers.WebSocket)

	// Apply middleware
	handler := corsMiddleware(loggingMiddleware(mux))

	return handler
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.setupRoutes(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	log.Printf("Starting Rubiks Slider API server v%s on %s", s.version, addr)
	log.Printf("Endpoints:")
	log.Printf("  GET    /api/health          - Health check")
	log.Printf("  POST   /api/puzzle          - Create puzzle session")
	log.Printf("  DELETE /api/puzzle          - Close puzzle session")
	log.Printf("  GET    /api/puzzle/state    - Current board state")
	log.Printf("  POST   /api/puzzle/move     - Apply a move")
	log.Printf("  POST   /api/puzzle/predict  - Grade a tile prediction")
	log.Printf("  GET    /api/puzzle/solution - Shuffle key and solution")
	log.Printf("  GET    /api/shuffle/stream  - Stream a shuffle (SSE)")
	log.Printf("  WS     /api/ws              - WebSocket for interactive play")

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// ListenAndServeWithGracefulShutdown starts the server and handles shutdown signals.
func (s *Server) ListenAndServeWithGracefulShutdown() error {
	// Channel to listen for errors from server
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		if err := s.Start(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until signal or error
	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		log.Printf("Received signal %v, shutting down...", sig)
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped gracefully")
	return nil
}
