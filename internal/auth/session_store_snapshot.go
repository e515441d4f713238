package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

const sessionsKey = "sessions"

// KV is the subset of the snapshot key-value area sessions persist into.
type KV interface {
	Put(key string, value []byte) error
	Get(key string) ([]byte, error)
}

// SnapshotSessionStore keeps sessions in memory and rewrites the full
// session list to the snapshot area on every change, the same way the
// store collections persist. Session writes go straight to the KV rather
// than through the background writer: they are rare and small, and a lost
// session only forces a re-login.
type SnapshotSessionStore struct {
	kv KV

	mu        sync.Mutex
	byRefresh map[string]Session
	byAccess  map[string]string
}

// NewSnapshotSessionStore loads any persisted sessions from kv.
func NewSnapshotSessionStore(kv KV) (*SnapshotSessionStore, error) {
	s := &SnapshotSessionStore{
		kv:        kv,
		byRefresh: make(map[string]Session),
		byAccess:  make(map[string]string),
	}

	data, err := kv.Get(sessionsKey)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	if len(data) > 0 {
		var sessions []Session
		if err := json.Unmarshal(data, &sessions); err == nil {
			for _, session := range sessions {
				s.byRefresh[session.RefreshToken] = session
				s.byAccess[session.AccessToken] = session.RefreshToken
			}
		}
	}

	return s, nil
}

// Save stores or updates a session record.
func (s *SnapshotSessionStore) Save(_ context.Context, session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byRefresh[session.RefreshToken] = session
	s.byAccess[session.AccessToken] = session.RefreshToken
	return s.persistLocked()
}

// Find loads a session by its refresh token.
func (s *SnapshotSessionStore) Find(_ context.Context, refreshToken string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.byRefresh[refreshToken]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return session, nil
}

// FindByAccess loads a session by its access token.
func (s *SnapshotSessionStore) FindByAccess(_ context.Context, accessToken string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	refreshToken, ok := s.byAccess[accessToken]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	session, ok := s.byRefresh[refreshToken]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return session, nil
}

// Delete removes a session by its refresh token.
func (s *SnapshotSessionStore) Delete(_ context.Context, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.byRefresh[refreshToken]
	if !ok {
		return ErrSessionNotFound
	}
	delete(s.byAccess, session.AccessToken)
	delete(s.byRefresh, refreshToken)
	return s.persistLocked()
}

func (s *SnapshotSessionStore) persistLocked() error {
	sessions := make([]Session, 0, len(s.byRefresh))
	for _, session := range s.byRefresh {
		sessions = append(sessions, session)
	}

	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("marshal sessions: %w", err)
	}
	if err := s.kv.Put(sessionsKey, data); err != nil {
		return fmt.Errorf("persist sessions: %w", err)
	}
	return nil
}

var _ SessionStore = (*SnapshotSessionStore)(nil)
var _ SessionStore = (*InMemorySessionStore)(nil)
