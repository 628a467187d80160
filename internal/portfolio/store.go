package portfolio

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kurihiro0119/github-portfolio/internal/domain"
)

// Store holds the snapshot of the latest successful load cycle.
// Snapshots are replaced wholesale, never modified.
type Store struct {
	source Source
	user   string
	logger logrus.FieldLogger

	mu      sync.RWMutex
	current *domain.Portfolio

	// loadMu serializes load cycles so concurrent callers share one
	loadMu sync.Mutex
}

// NewStore creates a new Store for user
func NewStore(source Source, user string, logger logrus.FieldLogger) *Store {
	return &Store{
		source: source,
		user:   user,
		logger: logger,
	}
}

// User returns the GitHub user the store loads
func (s *Store) User() string {
	return s.user
}

// Current returns the current snapshot, running a load cycle when there is none.
// A failed cycle is not remembered: the next call starts a fresh one.
func (s *Store) Current(ctx context.Context) (*domain.Portfolio, error) {
	if p := s.snapshot(); p != nil {
		return p, nil
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	// Another caller may have finished a cycle while we waited
	if p := s.snapshot(); p != nil {
		return p, nil
	}
	return s.load(ctx)
}

// Refresh runs a new load cycle and replaces the snapshot on success
func (s *Store) Refresh(ctx context.Context) (*domain.Portfolio, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	return s.load(ctx)
}

// RunRefresh refreshes the snapshot every interval until ctx is done.
// A failed refresh keeps serving the previous snapshot.
func (s *Store) RunRefresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Refresh(ctx); err != nil {
				s.logger.WithError(err).Warn("background refresh failed, keeping previous snapshot")
			}
		}
	}
}

func (s *Store) snapshot() *domain.Portfolio {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) load(ctx context.Context) (*domain.Portfolio, error) {
	p, err := s.source.Load(ctx, s.user)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = p
	s.mu.Unlock()
	return p, nil
}
