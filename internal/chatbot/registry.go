package chatbot

import (
	"sync"
	"time"
)

// Registry keeps live sessions in memory. When full, creating a session
// evicts the one idle the longest.
type Registry struct {
	max int
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(max int, now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	return &Registry{max: max, now: now, sessions: make(map[string]*Session)}
}

func (r *Registry) Create() *Session {
	s := NewSession(r.now)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.max > 0 && len(r.sessions) >= r.max {
		r.evictIdlest()
	}
	r.sessions[s.ID()] = s
	return s
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	return ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) evictIdlest() {
	var (
		victim string
		oldest time.Time
	)
	for id, s := range r.sessions {
		t := s.LastActive()
		if victim == "" || t.Before(oldest) {
			victim, oldest = id, t
		}
	}
	delete(r.sessions, victim)
}
