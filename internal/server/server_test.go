package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nijanthan/portfolio-cms/internal/config"
	"github.com/nijanthan/portfolio-cms/internal/content"
)

func testDocument() *content.Document {
	doc := &content.Document{
		Profile: content.Profile{
			Name:    "Jane Doe",
			Roles:   []string{"Technical Writer"},
			Summary: "I turn complex systems into clear words.",
			Email:   "jane@example.com",
		},
		Links: content.Links{Resume: "#"},
		Experience: []content.Experience{
			{Company: "Acme Corp", Title: "Senior Writer", Range: "2022 — Present", Bullets: []string{"Owned the docs pipeline"}},
		},
		Projects: []content.Project{
			{Title: "Docs Portal", Blurb: "A searchable docs portal.", Meta: []string{"Docs"}},
			{Title: "Style Guide", Blurb: "A living style guide.", Meta: []string{"Writing"}},
		},
		Latest: []content.LatestItem{
			{Kind: content.KindArticle, Title: "Writing for Engineers", Href: "https://example.com/post", Meta: "Blog · 2025"},
		},
		Clients:   []content.Client{{Name: "Globex", Href: "https://globex.example", Blurb: "Platform docs."}},
		Education: []content.Education{{School: "State University", Degree: "B.A. English", Year: "2018"}},
		Certs:     []content.Cert{{Issuer: "Coursera", Name: "Technical Writing"}},
		Skills:    []string{"API docs"},
		Community: content.Community{Name: "Write the Docs", Href: "https://writethedocs.org", Note: "Organizer"},
	}
	doc.ResolveDefaults()
	return doc
}

// githubStub is a minimal contents-API double that enforces the
// conditional-write contract.
type githubStub struct {
	server  *httptest.Server
	sha     string
	remote  []byte
	lastPut []byte
	puts    int
	failPut int // status to return on PUT, 0 means success
}

func newGitHubStub(t *testing.T, remote []byte) *githubStub {
	t.Helper()
	g := &githubStub{sha: "sha-1", remote: remote}
	g.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"path":     "src/content.json",
				"sha":      g.sha,
				"content":  base64.StdEncoding.EncodeToString(g.remote),
				"encoding": "base64",
			})
		case http.MethodPut:
			if g.failPut != 0 {
				w.WriteHeader(g.failPut)
				_, _ = w.Write([]byte(`{"message":"simulated failure"}`))
				return
			}
			var req struct {
				Content string `json:"content"`
				SHA     string `json:"sha"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			if req.SHA != g.sha {
				w.WriteHeader(http.StatusConflict)
				_, _ = w.Write([]byte(`{"message":"is at a different sha"}`))
				return
			}
			decoded, err := base64.StdEncoding.DecodeString(req.Content)
			require.NoError(t, err)
			g.lastPut = decoded
			g.puts++
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"content": map[string]any{"sha": "sha-2"},
			})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	t.Cleanup(g.server.Close)
	return g
}

func newTestServer(t *testing.T, githubURL string) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	contentPath := filepath.Join(dir, "content.json")
	require.NoError(t, testDocument().Save(contentPath))

	cfg := &config.Config{
		Port:            8080,
		ContentPath:     contentPath,
		GitHubOwner:     "nijanthan",
		GitHubRepo:      "portfolio",
		RepoPath:        "src/content.json",
		GitHubBaseURL:   githubURL,
		SessionSecret:   "test-secret",
		SessionTTLHours: 1,
		CredentialPath:  filepath.Join(dir, "credential"),
	}

	s, err := New(cfg)
	require.NoError(t, err)
	return s, contentPath
}

func doRequest(s *Server, method, target string, body any, sessionToken string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	if sessionToken != "" {
		req.Header.Set("Authorization", "Bearer "+sessionToken)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, s *Server) string {
	t.Helper()
	rec := doRequest(s, http.MethodPost, "/admin/login", LoginRequest{Token: "ghp_testtoken"}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, "ready", resp.State)
	return resp.Token
}

func TestPublicRoutes(t *testing.T) {
	s, _ := newTestServer(t, "")

	t.Run("page renders", func(t *testing.T) {
		rec := doRequest(s, http.MethodGet, "/", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Jane Doe")
		assert.Contains(t, rec.Body.String(), `data-theme="light"`)
	})

	t.Run("theme toggle sets cookie", func(t *testing.T) {
		rec := doRequest(s, http.MethodPost, "/theme/toggle", nil, "")
		require.Equal(t, http.StatusSeeOther, rec.Code)

		var themeValue string
		for _, c := range rec.Result().Cookies() {
			if c.Name == "theme" {
				themeValue = c.Value
			}
		}
		assert.Equal(t, "dark", themeValue)
	})

	t.Run("full content", func(t *testing.T) {
		rec := doRequest(s, http.MethodGet, "/content", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var doc content.Document
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
		assert.Equal(t, "Jane Doe", doc.Profile.Name)
	})

	t.Run("single section", func(t *testing.T) {
		rec := doRequest(s, http.MethodGet, "/content/profile", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var profile content.Profile
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
		assert.Equal(t, "Jane Doe", profile.Name)
	})

	t.Run("unknown section", func(t *testing.T) {
		rec := doRequest(s, http.MethodGet, "/content/bogus", nil, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("health", func(t *testing.T) {
		rec := doRequest(s, http.MethodGet, "/health", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})
}

func TestAdminRequiresSession(t *testing.T) {
	s, _ := newTestServer(t, "")

	for _, tc := range []struct {
		method string
		target string
	}{
		{http.MethodGet, "/admin/state"},
		{http.MethodGet, "/admin/content"},
		{http.MethodPut, "/admin/profile"},
		{http.MethodPost, "/admin/publish"},
	} {
		rec := doRequest(s, tc.method, tc.target, nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.target)
	}

	rec := doRequest(s, http.MethodGet, "/admin/state", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginValidation(t *testing.T) {
	s, _ := newTestServer(t, "")

	rec := doRequest(s, http.MethodPost, "/admin/login", map[string]string{}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation error")
}

func TestLoginThrottle(t *testing.T) {
	s, _ := newTestServer(t, "")

	var lastCode int
	for i := 0; i < 10; i++ {
		rec := doRequest(s, http.MethodPost, "/admin/login", LoginRequest{Token: "ghp_x"}, "")
		lastCode = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}

func TestMutationEndpoints(t *testing.T) {
	s, _ := newTestServer(t, "")
	token := login(t, s)

	t.Run("set profile field", func(t *testing.T) {
		rec := doRequest(s, http.MethodPut, "/admin/profile",
			SectionUpdateRequest{Field: "name", Value: "Nijanthan Elangovan"}, token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec = doRequest(s, http.MethodGet, "/admin/content", nil, token)
		var doc content.Document
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
		assert.Equal(t, "Nijanthan Elangovan", doc.Profile.Name)
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		rec := doRequest(s, http.MethodPut, "/admin/profile",
			SectionUpdateRequest{Field: "bogus", Value: "x"}, token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("set entry field", func(t *testing.T) {
		rec := doRequest(s, http.MethodPut, "/admin/experience/0",
			EntryUpdateRequest{Field: "company", Value: "Globex"}, token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("out of range index", func(t *testing.T) {
		rec := doRequest(s, http.MethodPut, "/admin/experience/99",
			EntryUpdateRequest{Field: "company", Value: "Globex"}, token)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("toggle featured", func(t *testing.T) {
		featured := false
		rec := doRequest(s, http.MethodPut, "/admin/projects/0",
			EntryUpdateRequest{Featured: &featured}, token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec = doRequest(s, http.MethodGet, "/content/projects", nil, "")
		var projects []content.Project
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &projects))
		require.NotNil(t, projects[0].Featured)
		assert.False(t, *projects[0].Featured)
	})

	t.Run("append entry", func(t *testing.T) {
		rec := doRequest(s, http.MethodPost, "/admin/latest",
			map[string]string{"title": "New Post", "href": "https://example.com/new"}, token)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var resp struct {
			Index int `json:"index"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Index)

		rec = doRequest(s, http.MethodGet, "/content/latest", nil, "")
		var latest []content.LatestItem
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &latest))
		require.Len(t, latest, 2)
		assert.Equal(t, "New Post", latest[1].Title)
		assert.Equal(t, content.KindArticle, latest[1].Kind)
	})

	t.Run("list sections require items", func(t *testing.T) {
		for _, section := range []string{"hero", "skills"} {
			rec := doRequest(s, http.MethodPut, "/admin/"+section,
				SectionUpdateRequest{}, token)
			assert.Equal(t, http.StatusBadRequest, rec.Code, section)
			assert.Contains(t, rec.Body.String(), "items is required")
		}
	})

	t.Run("explicit empty items clears the list", func(t *testing.T) {
		rec := doRequest(s, http.MethodPut, "/admin/skills",
			map[string][]string{"items": {}}, token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec = doRequest(s, http.MethodGet, "/content/skills", nil, "")
		var skills []string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &skills))
		assert.Empty(t, skills)
	})

	t.Run("delete requires confirmation", func(t *testing.T) {
		rec := doRequest(s, http.MethodDelete, "/admin/projects/1", nil, token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "confirm=true")

		rec = doRequest(s, http.MethodDelete, "/admin/projects/1?confirm=true", nil, token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec = doRequest(s, http.MethodGet, "/content/projects", nil, "")
		var projects []content.Project
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &projects))
		assert.Len(t, projects, 1)
	})

	t.Run("unknown section", func(t *testing.T) {
		rec := doRequest(s, http.MethodPut, "/admin/bogus",
			SectionUpdateRequest{Field: "x", Value: "y"}, token)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPublishFlow(t *testing.T) {
	remote, err := testDocument().Canonical()
	require.NoError(t, err)
	stub := newGitHubStub(t, remote)

	s, contentPath := newTestServer(t, stub.server.URL)
	token := login(t, s)

	rec := doRequest(s, http.MethodPut, "/admin/profile",
		SectionUpdateRequest{Field: "name", Value: "Nijanthan Elangovan"}, token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(s, http.MethodPost, "/admin/publish",
		PublishRequest{Message: "content: update profile"}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Content updated successfully")

	// The stub received the edited document, conditioned on the fetched SHA
	require.Equal(t, 1, stub.puts)
	assert.Contains(t, string(stub.lastPut), "Nijanthan Elangovan")

	// The bundled copy was refreshed with the published bytes
	bundled, err := os.ReadFile(contentPath)
	require.NoError(t, err)
	assert.Equal(t, stub.lastPut, bundled)

	// The session reports the success status
	rec = doRequest(s, http.MethodGet, "/admin/state", nil, token)
	var state StateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, "ready", state.State)
	assert.Equal(t, "success", state.Status.Kind)
}

func TestPublishConflictKeepsEdits(t *testing.T) {
	remote, err := testDocument().Canonical()
	require.NoError(t, err)
	stub := newGitHubStub(t, remote)
	stub.failPut = http.StatusConflict

	s, _ := newTestServer(t, stub.server.URL)
	token := login(t, s)

	rec := doRequest(s, http.MethodPut, "/admin/profile",
		SectionUpdateRequest{Field: "summary", Value: "Updated summary."}, token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(s, http.MethodPost, "/admin/publish", nil, token)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "changed since it was loaded")

	// Edits survive the failed publish
	rec = doRequest(s, http.MethodGet, "/admin/content", nil, token)
	var doc content.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "Updated summary.", doc.Profile.Summary)
}

func TestLogoutKeepsWorkingCopy(t *testing.T) {
	s, _ := newTestServer(t, "")
	token := login(t, s)

	rec := doRequest(s, http.MethodPut, "/admin/profile",
		SectionUpdateRequest{Field: "name", Value: "Edited Name"}, token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(s, http.MethodPost, "/admin/logout", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthenticated")

	// The public page still serves the edited working copy
	rec = doRequest(s, http.MethodGet, "/content/profile", nil, "")
	var profile content.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "Edited Name", profile.Name)
}
