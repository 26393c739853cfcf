// internal/github/client_test.go
package github

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "mosaic-service/internal/errors"
)

// setupTestClient creates a httptest server and a Client pointing to it. The
// enterprise base URL gets an /api/v3 prefix, so handlers register under it.
func setupTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	client := NewClient("", logger)
	require.NoError(t, client.SetBaseURL(server.URL))

	return client, server
}

func TestClient_ListUserRepositories(t *testing.T) {
	t.Run("translates repositories to the internal model", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v3/user/repos", r.URL.Path)
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`[
				{"id": 1, "name": "alpha", "full_name": "owner/alpha", "html_url": "https://example.com/alpha", "description": "first", "fork": false, "archived": false},
				{"id": 2, "name": "beta", "full_name": "owner/beta", "html_url": "https://example.com/beta", "fork": true, "archived": true}
			]`))
		})
		client, _ := setupTestClient(t, handler)

		repos, err := client.ListUserRepositories(context.Background())

		require.NoError(t, err)
		require.Len(t, repos, 2)
		assert.Equal(t, int64(1), repos[0].GithubID)
		assert.Equal(t, "owner/alpha", repos[0].NameWithOwner)
		require.NotNil(t, repos[0].Description)
		assert.Equal(t, "first", *repos[0].Description)
		assert.False(t, repos[0].IsFork)
		assert.True(t, repos[1].IsFork)
		assert.True(t, repos[1].IsArchived)
		assert.Nil(t, repos[1].Description)
	})

	t.Run("wraps failures in a FetchError", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		client, _ := setupTestClient(t, handler)

		_, err := client.ListUserRepositories(context.Background())

		var fetchErr *apperrors.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, "repository list", fetchErr.Resource)
	})
}

func TestClient_FetchContent(t *testing.T) {
	t.Run("strips whitespace from the base64 payload before decoding", func(t *testing.T) {
		// "[project]\nname = \"x\"" encoded, then broken up with the
		// whitespace the contents API inserts.
		encoded := base64.StdEncoding.EncodeToString([]byte("[project]\nname = \"x\""))
		wrapped := encoded[:8] + "\\n" + encoded[8:12] + " \\t" + encoded[12:]

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v3/repos/owner/alpha/contents/.github/mosaic.toml", r.URL.Path)
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"type": "file", "name": "mosaic.toml", "path": ".github/mosaic.toml", "encoding": "base64", "content": "` + wrapped + `"}`))
		})
		client, _ := setupTestClient(t, handler)

		content, err := client.FetchContent(context.Background(), "owner", "alpha", ".github/mosaic.toml")

		require.NoError(t, err)
		assert.Equal(t, "[project]\nname = \"x\"", content)
	})

	t.Run("replaces invalid UTF-8 sequences instead of failing", func(t *testing.T) {
		encoded := base64.StdEncoding.EncodeToString([]byte{0xff, 'o', 'k'})
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"type": "file", "name": "f", "path": "f", "encoding": "base64", "content": "` + encoded + `"}`))
		})
		client, _ := setupTestClient(t, handler)

		content, err := client.FetchContent(context.Background(), "owner", "alpha", "f")

		require.NoError(t, err)
		assert.Equal(t, "�ok", content)
	})

	t.Run("maps a 404 to ErrNotFound", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message": "Not Found"}`))
		})
		client, _ := setupTestClient(t, handler)

		_, err := client.FetchContent(context.Background(), "owner", "alpha", "missing.toml")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestClient_ListLanguages(t *testing.T) {
	t.Run("returns language byte counts", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v3/repos/owner/alpha/languages", r.URL.Path)
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"Go": 12345, "Makefile": 120}`))
		})
		client, _ := setupTestClient(t, handler)

		languages, err := client.ListLanguages(context.Background(), "owner", "alpha")

		require.NoError(t, err)
		assert.Equal(t, map[string]int{"Go": 12345, "Makefile": 120}, languages)
	})

	t.Run("maps a 404 to ErrNotFound", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message": "Not Found"}`))
		})
		client, _ := setupTestClient(t, handler)

		_, err := client.ListLanguages(context.Background(), "owner", "gone")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}
