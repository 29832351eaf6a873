package intent

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTTL is how long an idle session's context is kept.
const DefaultSessionTTL = 30 * time.Minute

// Session holds the conversation context for one user session.
type Session struct {
	ID        string    `json:"id"`
	Messages  []string  `json:"messages"`
	Intents   []Intent  `json:"intents"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SessionStore keeps per-session intent-parsing context with TTL eviction.
// The store is owned by its creator and passed to collaborators as a
// capability; Close stops the eviction sweep.
type SessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*Session
	done     chan struct{}
	once     sync.Once
}

// NewSessionStore creates a store that evicts sessions idle longer than ttl.
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	s := &SessionStore{
		ttl:      ttl,
		sessions: make(map[string]*Session),
		done:     make(chan struct{}),
	}
	go s.sweep()
	return s
}

// Record appends a message and its parsed intent to the session, creating
// the session when id is empty or unknown. The session id is returned so
// callers can continue the conversation.
func (s *SessionStore) Record(id, message string, parsed *Intent) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		id = uuid.NewString()
	}

	session, ok := s.sessions[id]
	if !ok {
		session = &Session{ID: id}
		s.sessions[id] = session
	}

	session.Messages = append(session.Messages, message)
	if parsed != nil {
		session.Intents = append(session.Intents, *parsed)
	}
	session.UpdatedAt = time.Now()

	return session
}

// Get returns the session for id, or false when it is unknown or expired.
func (s *SessionStore) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok || time.Since(session.UpdatedAt) > s.ttl {
		return nil, false
	}
	return session, true
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close stops the eviction sweep.
func (s *SessionStore) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *SessionStore) sweep() {
	interval := s.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.evictExpired()
		}
	}
}

func (s *SessionStore) evictExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, session := range s.sessions {
		if now.Sub(session.UpdatedAt) > s.ttl {
			delete(s.sessions, id)
		}
	}
}
