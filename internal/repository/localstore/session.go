package localstore

import (
	"context"
	"time"
)

// SessionRepository implements repository.SessionRepository over the local
// snapshot store. Expired tokens are pruned lazily on each access.
type SessionRepository struct {
	store *Store
	now   func() time.Time
}

// NewSessionRepository creates a new localstore session repository.
func NewSessionRepository(store *Store) *SessionRepository {
	return &SessionRepository{store: store, now: time.Now}
}

// Save stores a session token for the given duration.
func (r *SessionRepository) Save(ctx context.Context, token string, ttl time.Duration) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	sessions, err := loadMap[time.Time](r.store.backend, keySessions)
	if err != nil {
		return err
	}
	r.prune(sessions)
	sessions[token] = r.now().UTC().Add(ttl)
	return saveMap(r.store.backend, keySessions, sessions)
}

// Exists reports whether the token is present and unexpired.
func (r *SessionRepository) Exists(ctx context.Context, token string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	sessions, err := loadMap[time.Time](r.store.backend, keySessions)
	if err != nil {
		return false, err
	}
	expiry, ok := sessions[token]
	if !ok {
		return false, nil
	}
	return r.now().UTC().Before(expiry), nil
}

// Delete removes a session token.
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	sessions, err := loadMap[time.Time](r.store.backend, keySessions)
	if err != nil {
		return err
	}
	if _, ok := sessions[token]; !ok {
		return nil
	}
	delete(sessions, token)
	return saveMap(r.store.backend, keySessions, sessions)
}

func (r *SessionRepository) prune(sessions map[string]time.Time) {
	now := r.now().UTC()
	for token, expiry := range sessions {
		if now.After(expiry) {
			delete(sessions, token)
		}
	}
}
