package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/models"
)

func Test_Client_PendingRequests(t *testing.T) {
	t.Parallel()

	t.Run("array response", func(t *testing.T) {
		c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/profile/requests/pending", r.URL.Path)
			_, _ = w.Write([]byte(`[
				{"requester_id": "u1", "username": "first", "name": "First", "requested_at": "2025-06-01T10:00:00Z"},
				{"requester_id": "u2", "username": "second", "name": "Second", "requested_at": "2025-06-02T10:00:00Z"}
			]`))
		}))

		requests, err := c.PendingRequests(context.Background())

		require.NoError(t, err)
		require.Len(t, requests, 2)
		assert.Equal(t, "u1", requests[0].RequesterID)
		assert.Equal(t, "second", requests[1].Username)
	})

	t.Run("empty object response treated as empty list", func(t *testing.T) {
		c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))

		requests, err := c.PendingRequests(context.Background())

		require.NoError(t, err, "a non-array body is not an error")
		require.NotNil(t, requests)
		assert.Empty(t, requests)
	})

	t.Run("null response treated as empty list", func(t *testing.T) {
		c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`null`))
		}))

		requests, err := c.PendingRequests(context.Background())

		require.NoError(t, err)
		require.NotNil(t, requests)
		assert.Empty(t, requests)
	})
}

func Test_Client_RespondRequest(t *testing.T) {
	t.Parallel()

	var gotPath, gotAction string
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAction = r.URL.Query().Get("action")
		_, _ = w.Write([]byte(`{}`))
	}))

	err := c.RespondRequest(context.Background(), "requester-7", ActionReject)

	require.NoError(t, err)
	assert.Equal(t, "/profile/requests/requester-7", gotPath)
	assert.Equal(t, "reject", gotAction)
}

func Test_Client_ChangeAccountType(t *testing.T) {
	t.Parallel()

	var gotPath string
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{}`))
	}))

	err := c.ChangeAccountType(context.Background(), models.AccountPrivate)

	require.NoError(t, err)
	assert.Equal(t, "/profile/change-account-type/private", gotPath)
}

func Test_Client_UploadTicket(t *testing.T) {
	t.Parallel()

	t.Run("full descriptor", func(t *testing.T) {
		var gotType string
		c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotType = r.URL.Query().Get("type")
			_, _ = w.Write([]byte(`{
				"cloud_name": "demo-cloud",
				"api_key": "key-1",
				"timestamp": 1717240000,
				"signature": "sig",
				"folder": "banners"
			}`))
		}))

		ticket, err := c.UploadTicket(context.Background(), ImageBanner)

		require.NoError(t, err)
		assert.Equal(t, "banner", gotType)
		assert.Equal(t, "demo-cloud", ticket.CloudName)
		assert.Equal(t, int64(1717240000), ticket.Timestamp)
	})

	t.Run("missing cloud name fails", func(t *testing.T) {
		c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"api_key": "key-1"}`))
		}))

		_, err := c.UploadTicket(context.Background(), ImageProfile)

		require.Error(t, err, "a ticket without cloud_name cannot address the upload target")
	})
}

func Test_Client_Me(t *testing.T) {
	t.Parallel()

	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"username": "someone",
			"name": "Some One",
			"bio": "hello",
			"account_type": "private",
			"profile_pic_url": "https://cdn/p.png",
			"banner_pic_url": "https://cdn/b.png",
			"social_stats": {"followers": 10, "following": 3, "posts": 42},
			"created_at": "2024-11-05T08:00:00Z"
		}`))
	}))

	profile, err := c.Me(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "someone", profile.Username)
	assert.True(t, profile.AccountType.IsPrivate())
	assert.Equal(t, 42, profile.SocialStats.Posts)
}
