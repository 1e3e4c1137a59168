package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/Uguee/accessvc/domain"
)

// SessionRepositoryImpl implements domain.SessionRepository with an
// in-process map. Sessions deliberately never touch durable storage:
// a process restart forces every client to re-authenticate.
type SessionRepositoryImpl struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	ttl      time.Duration
}

// NewSessionRepository creates a new in-memory session repository
func NewSessionRepository(ttl time.Duration) domain.SessionRepository {
	return &SessionRepositoryImpl{
		sessions: make(map[string]*domain.Session),
		ttl:      ttl,
	}
}

// Create implements domain.SessionRepository
func (r *SessionRepositoryImpl) Create(ctx context.Context, session *domain.Session) error {
	if session.ExpiresAt.IsZero() {
		session.ExpiresAt = time.Now().Add(r.ttl)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *session
	r.sessions[session.ID] = &cp
	return nil
}

// FindByID implements domain.SessionRepository. Expired sessions are
// reaped on access rather than left dangling.
func (r *SessionRepositoryImpl) FindByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	r.mu.RLock()
	session, ok := r.sessions[sessionID]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	if session.ExpiresAt.Before(time.Now()) {
		r.mu.Lock()
		delete(r.sessions, sessionID)
		r.mu.Unlock()
		return nil, domain.ErrSessionExpired
	}

	cp := *session
	return &cp, nil
}

// Delete implements domain.SessionRepository
func (r *SessionRepositoryImpl) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
	return nil
}

// DeleteByUser implements domain.SessionRepository. Used on failed
// re-authentication so a stale valid session never outlives a rejected
// credential.
func (r *SessionRepositoryImpl) DeleteByUser(ctx context.Context, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, id)
		}
	}
	return nil
}
