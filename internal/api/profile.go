package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/models"
)

// RequestAction is the decision on a pending follow request.
type RequestAction string

const (
	ActionAccept RequestAction = "accept"
	ActionReject RequestAction = "reject"
)

// ImageKind selects which signed-upload descriptor the backend issues.
type ImageKind string

const (
	ImageProfile ImageKind = "profile"
	ImageBanner  ImageKind = "banner"
)

// Me fetches the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (models.Profile, error) {
	var profile models.Profile
	if err := c.do(ctx, http.MethodGet, "/profile/me", nil, &profile); err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}

// UpdateProfile submits the full profile payload.
func (c *Client) UpdateProfile(ctx context.Context, update models.ProfileUpdate) error {
	return c.do(ctx, http.MethodPost, "/profile/update", update, nil)
}

// UploadTicket obtains a one-time signed descriptor for a direct image upload.
func (c *Client) UploadTicket(ctx context.Context, kind ImageKind) (models.UploadTicket, error) {
	var ticket models.UploadTicket
	path := "/profile/get-upload-token?type=" + url.QueryEscape(string(kind))
	if err := c.do(ctx, http.MethodGet, path, nil, &ticket); err != nil {
		return models.UploadTicket{}, err
	}
	if ticket.CloudName == "" {
		return models.UploadTicket{}, fmt.Errorf("upload ticket is missing cloud name")
	}
	return ticket, nil
}

// PendingRequests lists pending follow requests. The backend sometimes
// responds with '{}' instead of an empty array; that is treated as no
// requests rather than an error.
func (c *Client) PendingRequests(ctx context.Context) ([]models.FollowRequest, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/profile/requests/pending", nil, &raw); err != nil {
		return nil, err
	}

	var requests []models.FollowRequest
	if err := json.Unmarshal(raw, &requests); err != nil {
		return []models.FollowRequest{}, nil
	}
	if requests == nil {
		requests = []models.FollowRequest{}
	}
	return requests, nil
}

// RespondRequest accepts or rejects a pending follow request.
func (c *Client) RespondRequest(ctx context.Context, requesterID string, action RequestAction) error {
	path := fmt.Sprintf("/profile/requests/%s?action=%s", url.PathEscape(requesterID), url.QueryEscape(string(action)))
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

// ChangeAccountType switches the account between public and private.
func (c *Client) ChangeAccountType(ctx context.Context, accountType models.AccountType) error {
	path := "/profile/change-account-type/" + url.PathEscape(string(accountType))
	return c.do(ctx, http.MethodPost, path, nil, nil)
}
