// Package cloudinary uploads raw image bytes directly to the external media
// storage using a one-time signed descriptor obtained from the backend. The
// upload deliberately bypasses the API client so no session Authorization
// header leaks to the storage provider.
package cloudinary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/apperrors"
	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/models"
)

const (
	defaultBaseURL       = "https://api.cloudinary.com/v1_1"
	defaultUploadTimeout = 30 * time.Second
)

type Uploader struct {
	baseURL string
	client  *http.Client
}

type Option func(*Uploader)

// WithBaseURL points the uploader at a different storage endpoint. Tests use
// it to substitute a local server.
func WithBaseURL(url string) Option {
	return func(u *Uploader) { u.baseURL = url }
}

func WithHTTPClient(client *http.Client) Option {
	return func(u *Uploader) { u.client = client }
}

func NewUploader(opts ...Option) *Uploader {
	u := &Uploader{
		baseURL: defaultBaseURL,
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Upload sends the file under the signed descriptor and returns the public
// URL of the stored image.
func (u *Uploader) Upload(ctx context.Context, ticket models.UploadTicket, filename string, file io.Reader) (string, error) {
	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)

	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	fields := map[string]string{
		"api_key":   ticket.APIKey,
		"timestamp": strconv.FormatInt(ticket.Timestamp, 10),
		"signature": ticket.Signature,
		"folder":    ticket.Folder,
	}
	for name, value := range fields {
		if err := form.WriteField(name, value); err != nil {
			return "", fmt.Errorf("failed to build upload form: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultUploadTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/%s/image/upload", u.baseURL, ticket.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send upload: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: storage responded %d", apperrors.ErrUploadFailed, resp.StatusCode)
	}

	var result struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("%w: no secure_url in response", apperrors.ErrUploadFailed)
	}

	return result.SecureURL, nil
}
