package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPath = "src/data/content.json"

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("nijanthan", "portfolio-website", "ghp_test", WithBaseURL(srv.URL))
}

func TestGetFile(t *testing.T) {
	// GitHub wraps base64 content with newlines; the client must cope.
	raw := `{"PROFILE": {"name": "Nijanthan"}}`
	encoded := base64.StdEncoding.EncodeToString([]byte(raw))
	wrapped := encoded[:10] + "\n" + encoded[10:] + "\n"

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/repos/nijanthan/portfolio-website/contents/"+testPath, r.URL.Path)
		assert.Equal(t, "Bearer ghp_test", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(map[string]string{
			"path":     testPath,
			"sha":      "abc123",
			"content":  wrapped,
			"encoding": "base64",
		})
	})

	file, err := c.GetFile(context.Background(), testPath)
	require.NoError(t, err)
	assert.Equal(t, "abc123", file.SHA)
	assert.Equal(t, raw, string(file.Content))
}

func TestGetFile_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Not Found"}`))
	})

	_, err := c.GetFile(context.Background(), testPath)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetFile_AuthRejected(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"message": "Bad credentials"}`))
		})

		_, err := c.GetFile(context.Background(), testPath)
		assert.ErrorIs(t, err, ErrAuth)
		assert.Contains(t, err.Error(), "Bad credentials")
	}
}

func TestPutFile(t *testing.T) {
	newContent := []byte(`{"PROFILE": {"summary": "précis — 日本語"}}` + "\n")

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)

		var req struct {
			Message string `json:"message"`
			Content string `json:"content"`
			SHA     string `json:"sha"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "chore: update bio", req.Message)
		assert.Equal(t, "abc123", req.SHA)

		// The payload must round-trip multi-byte text exactly.
		decoded, err := base64.StdEncoding.DecodeString(req.Content)
		require.NoError(t, err)
		assert.Equal(t, newContent, decoded)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": map[string]string{"path": testPath, "sha": "def456"},
		})
	})

	file, err := c.PutFile(context.Background(), testPath, newContent, "abc123", "chore: update bio")
	require.NoError(t, err)
	assert.Equal(t, "def456", file.SHA)
}

func TestPutFile_StaleToken(t *testing.T) {
	for _, status := range []int{http.StatusConflict, http.StatusUnprocessableEntity} {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"message": "is at deadbeef but expected abc123"}`))
		})

		_, err := c.PutFile(context.Background(), testPath, []byte("{}"), "abc123", "")
		assert.ErrorIs(t, err, ErrConflict)
	}
}

func TestPutFile_DefaultCommitMessage(t *testing.T) {
	var gotMessage string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotMessage = req.Message
		_ = json.NewEncoder(w).Encode(map[string]any{"content": map[string]string{"sha": "x"}})
	})

	_, err := c.PutFile(context.Background(), testPath, []byte("{}"), "abc123", "")
	require.NoError(t, err)
	assert.Equal(t, "chore: update content via CMS", gotMessage)
}

func TestPutFile_InvalidUTF8(t *testing.T) {
	c := NewClient("o", "r", "t")
	_, err := c.PutFile(context.Background(), testPath, []byte{0xff, 0xfe}, "abc123", "")
	assert.ErrorIs(t, err, ErrEncoding)
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on

	c := NewClient("o", "r", "t", WithBaseURL(srv.URL))
	_, err := c.GetFile(context.Background(), testPath)
	require.Error(t, err)

	var reqErr *RequestError
	assert.ErrorAs(t, err, &reqErr)
	assert.NotNil(t, reqErr.Unwrap())
}
