package transporthttp

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"dialboard/internal/dials"
)

// Server exposes the latest dial snapshot over HTTP. The snapshot is
// replaced atomically per run; readers never see a partial dial set.
type Server struct {
	engine *dials.Engine

	mu     sync.RWMutex
	latest dials.Snapshot
	ready  bool
}

// NewServer wraps the engine.
func NewServer(engine *dials.Engine) *Server {
	return &Server{engine: engine}
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.health)
	mux.HandleFunc("/indicators", s.handleIndicators)
	mux.HandleFunc("/refresh", s.handleRefresh)
	return mux
}

// Refresh runs the engine and stores the resulting snapshot.
func (s *Server) Refresh(ctx context.Context) dials.Snapshot {
	snap := s.engine.Run(ctx)

	s.mu.Lock()
	s.latest = snap
	s.ready = true
	s.mu.Unlock()

	return snap
}

// Latest returns the current snapshot, if one has been built.
func (s *Server) Latest() (dials.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.ready
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleIndicators(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	snap, ok := s.Latest()
	if !ok {
		s.writeError(w, http.StatusServiceUnavailable, "no snapshot yet")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		// nothing we can do; connection likely closed
	}
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	snap := s.Refresh(ctx)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status": "ok",
		"asOf":   snap.AsOf,
		"cards":  len(snap.Cards),
	})
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
