package profileflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/api"
	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/apperrors"
	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/models"
)

type requestsStub struct {
	pending    []models.FollowRequest
	pendingErr error

	respondErr  error
	respondedTo []string
	actions     []api.RequestAction
}

func (s *requestsStub) PendingRequests(_ context.Context) ([]models.FollowRequest, error) {
	return s.pending, s.pendingErr
}

func (s *requestsStub) RespondRequest(_ context.Context, requesterID string, action api.RequestAction) error {
	s.respondedTo = append(s.respondedTo, requesterID)
	s.actions = append(s.actions, action)
	return s.respondErr
}

func somePending() []models.FollowRequest {
	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return []models.FollowRequest{
		{RequesterID: "u1", Username: "first", Name: "First", RequestedAt: at},
		{RequesterID: "u2", Username: "second", Name: "Second", RequestedAt: at.Add(time.Hour)},
		{RequesterID: "u3", Username: "third", Name: "Third", RequestedAt: at.Add(2 * time.Hour)},
	}
}

func Test_RequestsFlow(t *testing.T) {
	t.Parallel()

	t.Run("load replaces the local list", func(t *testing.T) {
		stub := &requestsStub{pending: somePending()}
		flow := NewRequestsFlow(stub, nil)

		require.NoError(t, flow.Load(context.Background()))

		require.Len(t, flow.List(), 3)
	})

	t.Run("accept removes optimistically and commits", func(t *testing.T) {
		stub := &requestsStub{pending: somePending()}
		flow := NewRequestsFlow(stub, nil)
		require.NoError(t, flow.Load(context.Background()))

		result := flow.Respond(context.Background(), "u2", api.ActionAccept)

		require.Equal(t, Committed, result.State())
		assert.Equal(t, []string{"u1", "u3"}, requesterIDs(flow.List()))
		assert.Equal(t, []string{"u2"}, stub.respondedTo)
		assert.Equal(t, []api.RequestAction{api.ActionAccept}, stub.actions)
	})

	t.Run("rejected action restores the captured list", func(t *testing.T) {
		stub := &requestsStub{pending: somePending(), respondErr: errors.New("backend down")}
		flow := NewRequestsFlow(stub, nil)
		require.NoError(t, flow.Load(context.Background()))

		result := flow.Respond(context.Background(), "u2", api.ActionReject)

		require.Equal(t, RolledBack, result.State())
		require.Error(t, result.Err())
		assert.Equal(t, []string{"u1", "u2", "u3"}, requesterIDs(flow.List()),
			"failed action must restore the entry")
	})

	t.Run("unknown requester short-circuits", func(t *testing.T) {
		stub := &requestsStub{pending: somePending()}
		flow := NewRequestsFlow(stub, nil)
		require.NoError(t, flow.Load(context.Background()))

		result := flow.Respond(context.Background(), "nobody", api.ActionAccept)

		require.Equal(t, RolledBack, result.State())
		require.ErrorIs(t, result.Err(), apperrors.ErrRequestNotFound)
		assert.Empty(t, stub.respondedTo, "no network call for a request not in the list")
	})

	t.Run("load failure keeps previous list", func(t *testing.T) {
		stub := &requestsStub{pending: somePending()}
		flow := NewRequestsFlow(stub, nil)
		require.NoError(t, flow.Load(context.Background()))

		stub.pendingErr = errors.New("network")
		require.Error(t, flow.Load(context.Background()))

		assert.Len(t, flow.List(), 3, "failed refresh must not wipe the working copy")
	})
}

func requesterIDs(requests []models.FollowRequest) []string {
	ids := make([]string, 0, len(requests))
	for _, req := range requests {
		ids = append(ids, req.RequesterID)
	}
	return ids
}
