// Package session keeps live weave animations for the HTTP server.
//
// A [Session] owns one manager and its harness. Clients advance it by
// requesting frames at increasing times; the session serializes those
// requests. Sessions expire after a period without requests and are reaped
// by [Store.Cleanup] or [Store.Janitor].
//
// # Usage
//
//	store := session.NewStore(session.DefaultTTL, logger)
//	sess, err := store.Create(session.Params{Config: cfg, Seed: 678975})
//	frame, err := sess.Frame(1.5)
//	store.Delete(sess.ID)
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/weave/pkg/config"
	"github.com/matzehuels/weave/pkg/errors"
	"github.com/matzehuels/weave/pkg/scene"
	"github.com/matzehuels/weave/pkg/weave"
)

// Default durations.
const (
	// DefaultTTL is how long an idle session is kept.
	DefaultTTL = 15 * time.Minute

	// DefaultCleanupInterval is how often the janitor reaps idle sessions.
	DefaultCleanupInterval = time.Minute
)

// Params configures a new session.
type Params struct {
	Config     config.Config
	Seed       uint64
	Width      int
	Height     int
	PixelRatio float64
}

// Session is one live animation.
type Session struct {
	ID        string        `json:"id"`
	Seed      uint64        `json:"seed"`
	Preset    string        `json:"preset"`
	Config    config.Config `json:"config"`
	CreatedAt time.Time     `json:"created_at"`

	mu        sync.Mutex
	harness   *scene.Harness
	expiresAt time.Time
	lastT     float64
	frames    int
	last      weave.Frame
	hasFrame  bool
	closed    bool
}

// NewID returns a random session identifier.
func NewID() string { return uuid.NewString() }

// Frame advances the animation to t and returns the frame.
func (s *Session) Frame(t float64) (weave.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return weave.Frame{}, errors.New(errors.ErrCodeSessionNotFound, "session %s is closed", s.ID)
	}
	f, err := s.harness.OnFrame(t)
	if err != nil {
		return weave.Frame{}, err
	}
	s.lastT = t
	s.frames++
	s.last, s.hasFrame = f, true
	return f, nil
}

// LastFrame returns the most recent frame without advancing the animation.
// It reports false before the first frame and after the session is closed.
func (s *Session) LastFrame() (weave.Frame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.hasFrame {
		return weave.Frame{}, false
	}
	return s.last, true
}

// Info is a snapshot of the session state.
type Info struct {
	ID        string    `json:"id"`
	Seed      uint64    `json:"seed"`
	Preset    string    `json:"preset"`
	Time      float64   `json:"time"`
	Frames    int       `json:"frames"`
	Lines     int       `json:"lines"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Info returns the current state.
func (s *Session) Info() Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	info := Info{
		ID:        s.ID,
		Seed:      s.Seed,
		Preset:    s.Preset,
		Time:      s.lastT,
		Frames:    s.frames,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.expiresAt,
	}
	if !s.closed {
		info.Lines = len(s.harness.Manager().Lines())
	}
	return info
}

func (s *Session) touch(now time.Time, ttl time.Duration) {
	s.mu.Lock()
	s.expiresAt = now.Add(ttl)
	s.mu.Unlock()
}

func (s *Session) expired(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.After(s.expiresAt)
}

func (s *Session) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.last, s.hasFrame = weave.Frame{}, false
	return s.harness.OnTeardown()
}
