package session

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/weave/pkg/errors"
	"github.com/matzehuels/weave/pkg/rng"
	"github.com/matzehuels/weave/pkg/scene"
	"github.com/matzehuels/weave/pkg/weave"
)

// Store holds sessions in memory.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	logger   *log.Logger
	now      func() time.Time
}

// NewStore creates an empty store. A nil logger discards.
func NewStore(ttl time.Duration, logger *log.Logger) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

// Create starts a new session. A zero seed picks a random one.
func (st *Store) Create(p Params) (*Session, error) {
	if p.Seed == 0 {
		p.Seed = rng.RandomSeed()
	}
	m, err := weave.New(p.Config, rng.New(p.Seed), weave.WithLogger(st.logger))
	if err != nil {
		return nil, err
	}
	h := scene.New(m, nil)
	if p.Width > 0 && p.Height > 0 {
		h.OnResize(p.PixelRatio, p.Width, p.Height)
	}

	now := st.now()
	s := &Session{
		ID:        NewID(),
		Seed:      p.Seed,
		Preset:    p.Config.Preset,
		Config:    p.Config,
		CreatedAt: now,
		harness:   h,
		expiresAt: now.Add(st.ttl),
	}

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	st.logger.Info("session created", "id", s.ID, "seed", s.Seed, "preset", s.Preset)
	return s, nil
}

// Get returns a live session and extends its expiry.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()

	now := st.now()
	if !ok || s.expired(now) {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
	}
	s.touch(now, st.ttl)
	return s, nil
}

// Delete tears a session down. Deleting an unknown id is an error.
func (st *Store) Delete(id string) error {
	st.mu.Lock()
	s, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()

	if !ok {
		return errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
	}
	st.logger.Info("session deleted", "id", id)
	return s.close()
}

// Len is the number of stored sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// List returns a snapshot of every session.
func (st *Store) List() []Info {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]Info, 0, len(st.sessions))
	for _, s := range st.sessions {
		out = append(out, s.Info())
	}
	return out
}

// Cleanup removes expired sessions and returns how many were dropped.
func (st *Store) Cleanup() int {
	now := st.now()
	var expired []*Session

	st.mu.Lock()
	for id, s := range st.sessions {
		if s.expired(now) {
			expired = append(expired, s)
			delete(st.sessions, id)
		}
	}
	st.mu.Unlock()

	for _, s := range expired {
		if err := s.close(); err != nil {
			st.logger.Warn("session teardown failed", "id", s.ID, "error", err)
		}
		st.logger.Debug("session expired", "id", s.ID)
	}
	return len(expired)
}

// Janitor runs Cleanup every interval until ctx is done.
func (st *Store) Janitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Cleanup(); n > 0 {
				st.logger.Info("reaped idle sessions", "count", n)
			}
		}
	}
}

// Close tears down every session.
func (st *Store) Close() error {
	st.mu.Lock()
	sessions := st.sessions
	st.sessions = make(map[string]*Session)
	st.mu.Unlock()

	var first error
	for _, s := range sessions {
		if err := s.close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
