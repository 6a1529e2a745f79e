package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/models"
)

type LoginInput struct {
	Identifier string
	Password   string
	DeviceInfo string
	IPAddress  string
}

type LoginResult struct {
	Credentials models.Credentials

	// Success message from the backend, surfaced to the user as-is
	Message string
}

// Login authenticates and persists the returned token pair in the store.
func (c *Client) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	payload := struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
		DeviceInfo string `json:"device_info"`
		IPAddress  string `json:"ip_address"`
	}{in.Identifier, in.Password, in.DeviceInfo, in.IPAddress}

	var resp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		Message      string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", payload, &resp); err != nil {
		return LoginResult{}, err
	}

	creds := models.Credentials{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}
	if err := c.store.Set(ctx, creds); err != nil {
		return LoginResult{}, fmt.Errorf("failed to persist credentials: %w", err)
	}

	return LoginResult{Credentials: creds, Message: resp.Message}, nil
}

// Logout drops the local session. The backend holds no client-visible session
// state to invalidate.
func (c *Client) Logout(ctx context.Context) error {
	return c.store.Clear(ctx)
}

// RegisterInitiate starts the sign-up flow and returns the assigned user id.
func (c *Client) RegisterInitiate(ctx context.Context, email, phone string) (string, error) {
	payload := struct {
		Email       string `json:"email"`
		PhoneNumber string `json:"phone_number"`
	}{email, phone}

	var resp struct {
		UserID string `json:"user_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/register/initiate", payload, &resp); err != nil {
		return "", err
	}
	if resp.UserID == "" {
		return "", fmt.Errorf("backend returned no user id")
	}
	return resp.UserID, nil
}

// VerifyOTP confirms both one-time codes and returns the first temp token.
func (c *Client) VerifyOTP(ctx context.Context, userID, emailOTP, phoneOTP string) (string, error) {
	payload := struct {
		UserID   string `json:"user_id"`
		EmailOTP string `json:"email_otp"`
		PhoneOTP string `json:"phone_otp"`
	}{userID, emailOTP, phoneOTP}

	var resp struct {
		TempToken string `json:"temp_token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/register/verify-otp", payload, &resp); err != nil {
		return "", err
	}
	if resp.TempToken == "" {
		return "", fmt.Errorf("backend returned no temp token")
	}
	return resp.TempToken, nil
}

// SetUsername claims the username, authenticated with the current temp token.
// Returns the rotated temp token scoped to the final step.
func (c *Client) SetUsername(ctx context.Context, username, tempToken string) (string, error) {
	payload := struct {
		Username string `json:"username"`
	}{username}

	var resp struct {
		TempToken string `json:"temp_token"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/register/set-username", payload, &resp, WithBearer(tempToken))
	if err != nil {
		return "", err
	}
	if resp.TempToken == "" {
		return "", fmt.Errorf("backend returned no temp token")
	}
	return resp.TempToken, nil
}

// SetPassword completes registration, authenticated with the current temp token.
func (c *Client) SetPassword(ctx context.Context, password, tempToken string) error {
	payload := struct {
		Password string `json:"password"`
	}{password}

	return c.do(ctx, http.MethodPost, "/auth/register/set-password", payload, nil, WithBearer(tempToken))
}
