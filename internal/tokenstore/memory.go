package tokenstore

import (
	"context"
	"sync"

	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/apperrors"
	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/models"
)

// MemoryStore keeps credentials in process memory. Used for tests and for
// sessions that should not outlive the process.
type MemoryStore struct {
	mu    sync.RWMutex
	creds models.Credentials
	held  bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Set(_ context.Context, creds models.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = creds
	s.held = true
	return nil
}

func (s *MemoryStore) Get(_ context.Context) (models.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.held {
		return models.Credentials{}, apperrors.ErrNoCredentials
	}
	return s.creds, nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = models.Credentials{}
	s.held = false
	return nil
}
