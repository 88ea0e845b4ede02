package api

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Alia5/inputtrack/apitypes"
	"github.com/Alia5/inputtrack/input"
)

// Session is one tracking session: a tracker fed by a single stream connection.
type Session struct {
	ID      uuid.UUID
	Started time.Time
	Tracker *input.Tracker

	// mu serialises feeding the tracker with snapshot queries.
	mu sync.Mutex
}

// Snapshot returns the current state of the session.
func (s *Session) Snapshot() apitypes.SessionStateResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := s.Tracker.KeysDown()
	buttons := s.Tracker.ButtonsDown()
	stats := s.Tracker.Stats()
	out := apitypes.SessionStateResponse{
		SessionID:   s.ID.String(),
		KeysDown:    make([]string, 0, len(keys)),
		ButtonsDown: make([]string, 0, len(buttons)),
		Pointer:     [2]float64(s.Tracker.Pointer()),
		ThresholdMs: s.Tracker.Threshold().Milliseconds(),
		Dropped:     stats.Dropped,
		Published:   stats.Bus.Published,
	}
	for _, k := range keys {
		out.KeysDown = append(out.KeysDown, k.String())
	}
	for _, b := range buttons {
		out.ButtonsDown = append(out.ButtonsDown, b.String())
	}
	return out
}

// Sessions is the registry of open sessions.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewSessions() *Sessions {
	return &Sessions{sessions: map[uuid.UUID]*Session{}}
}

// Open creates and registers a session with a fresh tracker.
func (r *Sessions) Open(threshold time.Duration, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.New()
	s := &Session{
		ID:      id,
		Started: time.Now(),
		Tracker: input.New(&input.Options{
			Threshold: threshold,
			Logger:    logger.With("session", id.String()),
		}),
	}
	// Options treats zero as "use the default"; a zero threshold is valid here.
	s.Tracker.SetThreshold(threshold)
	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()
	return s
}

// Remove unregisters a session. It reports whether the session existed.
func (r *Sessions) Remove(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}

// Get looks a session up by its textual ID.
func (r *Sessions) Get(id string) (*Session, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[u]
	return s, ok
}

// List returns session IDs, oldest first.
func (r *Sessions) List() []string {
	r.mu.RLock()
	all := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		all = append(all, s)
	}
	r.mu.RUnlock()

	slices.SortFunc(all, func(a, b *Session) int { return a.Started.Compare(b.Started) })
	ids := make([]string, len(all))
	for i, s := range all {
		ids[i] = s.ID.String()
	}
	return ids
}

// Len returns the number of open sessions.
func (r *Sessions) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// SetThreshold applies d to every open session.
func (r *Sessions) SetThreshold(d time.Duration) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sessions {
		s.Tracker.SetThreshold(d)
	}
}
