package cloudinary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/apperrors"
	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/models"
)

func testTicket() models.UploadTicket {
	return models.UploadTicket{
		CloudName: "demo-cloud",
		APIKey:    "key-1",
		Timestamp: 1717240000,
		Signature: "sig-abc",
		Folder:    "avatars",
	}
}

func Test_Uploader(t *testing.T) {
	t.Parallel()

	t.Run("sends signed form and returns secure url", func(t *testing.T) {
		var gotPath string
		var gotFields map[string]string
		var gotFile string

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			require.NoError(t, r.ParseMultipartForm(1<<20))

			gotFields = map[string]string{}
			for name, values := range r.MultipartForm.Value {
				gotFields[name] = values[0]
			}

			file, _, err := r.FormFile("file")
			require.NoError(t, err)
			defer func() { _ = file.Close() }()
			buf := make([]byte, 16)
			n, _ := file.Read(buf)
			gotFile = string(buf[:n])

			_, _ = w.Write([]byte(`{"secure_url": "https://cdn.example/avatars/pic.png"}`))
		}))
		t.Cleanup(srv.Close)

		u := NewUploader(WithBaseURL(srv.URL))

		url, err := u.Upload(context.Background(), testTicket(), "pic.png", strings.NewReader("image-bytes"))

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example/avatars/pic.png", url)
		assert.Equal(t, "/demo-cloud/image/upload", gotPath)
		assert.Equal(t, "key-1", gotFields["api_key"])
		assert.Equal(t, "1717240000", gotFields["timestamp"])
		assert.Equal(t, "sig-abc", gotFields["signature"])
		assert.Equal(t, "avatars", gotFields["folder"])
		assert.Equal(t, "image-bytes", gotFile)
	})

	t.Run("storage rejection", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		t.Cleanup(srv.Close)

		u := NewUploader(WithBaseURL(srv.URL))

		_, err := u.Upload(context.Background(), testTicket(), "pic.png", strings.NewReader("x"))

		require.ErrorIs(t, err, apperrors.ErrUploadFailed)
	})

	t.Run("response without secure url", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		t.Cleanup(srv.Close)

		u := NewUploader(WithBaseURL(srv.URL))

		_, err := u.Upload(context.Background(), testTicket(), "pic.png", strings.NewReader("x"))

		require.ErrorIs(t, err, apperrors.ErrUploadFailed)
	})
}
