package presenter

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/UnknownOlympus/citymap/internal/category"
	"github.com/UnknownOlympus/citymap/internal/metrics"
)

// Store keeps one presenter per browser session.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Presenter
	sequence *Sequence
	registry *category.Registry
	fetcher  Fetcher
	log      *slog.Logger
	metrics  *metrics.Metrics
}

// NewStore creates an empty session store.
func NewStore(registry *category.Registry, fetcher Fetcher, log *slog.Logger, metrics *metrics.Metrics) *Store {
	return &Store{
		sessions: map[string]*Presenter{},
		sequence: NewSequence(),
		registry: registry,
		fetcher:  fetcher,
		log:      log,
		metrics:  metrics,
	}
}

// Get returns the presenter of the session, creating it on first use.
func (s *Store) Get(sessionID string) *Presenter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.sessions[sessionID]; ok {
		return p
	}

	p := New(s.registry, s.fetcher, s.log, s.metrics, s.sequence)
	s.sessions[sessionID] = p
	s.metrics.Sessions.Set(float64(len(s.sessions)))

	return p
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

// Sweep drops sessions idle for longer than ttl and returns how many were removed.
func (s *Store) Sweep(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-ttl)
	removed := 0
	for id, p := range s.sessions {
		if p.LastSeen().Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	s.metrics.Sessions.Set(float64(len(s.sessions)))

	return removed
}

// Run sweeps idle sessions every interval until the context is canceled.
func (s *Store) Run(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.InfoContext(ctx, "Session sweeper started...", "interval", interval, "ttl", ttl)

	for {
		select {
		case <-ctx.Done():
			s.log.InfoContext(ctx, "Session sweeper stopped.")
			return
		case <-ticker.C:
			if removed := s.Sweep(ttl); removed > 0 {
				s.log.InfoContext(ctx, "Expired idle sessions", "removed", removed, "remaining", s.Len())
			}
		}
	}
}
