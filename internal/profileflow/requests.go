package profileflow

import (
	"context"
	"sync"

	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/api"
	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/apperrors"
	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/logger"
	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/models"
)

type requestsBackend interface {
	PendingRequests(ctx context.Context) ([]models.FollowRequest, error)
	RespondRequest(ctx context.Context, requesterID string, action api.RequestAction) error
}

// RequestsFlow holds the local working copy of pending follow requests.
// Accept and reject remove optimistically and restore the captured list on
// failure.
type RequestsFlow struct {
	backend requestsBackend
	logger  logger.Logger

	mu       sync.Mutex
	requests []models.FollowRequest
}

func NewRequestsFlow(backend requestsBackend, log logger.Logger) *RequestsFlow {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &RequestsFlow{backend: backend, logger: log}
}

// Load refreshes the local list from the backend.
func (f *RequestsFlow) Load(ctx context.Context) error {
	requests, err := f.backend.PendingRequests(ctx)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.requests = requests
	f.mu.Unlock()
	return nil
}

// List returns a copy of the locally visible pending requests.
func (f *RequestsFlow) List() []models.FollowRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.FollowRequest(nil), f.requests...)
}

// Respond accepts or rejects one request. The entry disappears from the
// local list immediately and reappears if the backend rejects the action.
func (f *RequestsFlow) Respond(ctx context.Context, requesterID string, action api.RequestAction) *Result {
	result := newPending()

	f.mu.Lock()
	previous := append([]models.FollowRequest(nil), f.requests...)

	found := false
	kept := f.requests[:0:0]
	for _, req := range f.requests {
		if req.RequesterID == requesterID {
			found = true
			continue
		}
		kept = append(kept, req)
	}
	if !found {
		f.mu.Unlock()
		result.rollback(apperrors.ErrRequestNotFound)
		return result
	}
	f.requests = kept
	f.mu.Unlock()

	if err := f.backend.RespondRequest(ctx, requesterID, action); err != nil {
		f.logger.Warn("Follow request action rejected, restoring list", "requester_id", requesterID, "error", err)
		f.mu.Lock()
		f.requests = previous
		f.mu.Unlock()
		result.rollback(err)
		return result
	}

	result.commit()
	return result
}
