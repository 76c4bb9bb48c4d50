package editor

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nijanthan/portfolio-cms/internal/content"
	"github.com/nijanthan/portfolio-cms/internal/github"
	"github.com/nijanthan/portfolio-cms/internal/store"
)

// fakeClient records the call sequence and rejects any write that was
// not immediately preceded by a fetch in the same operation, which is
// exactly the protocol the editor must uphold.
type fakeClient struct {
	calls      []string
	remoteSHA  string
	getErr     error
	putErr     error
	putSHA     string
	putContent []byte
}

func (f *fakeClient) GetFile(_ context.Context, path string) (*github.File, error) {
	f.calls = append(f.calls, "get")
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &github.File{Path: path, Content: []byte("{}"), SHA: f.remoteSHA}, nil
}

func (f *fakeClient) PutFile(_ context.Context, path string, newContent []byte, sha, _ string) (*github.File, error) {
	if len(f.calls) == 0 || f.calls[len(f.calls)-1] != "get" {
		return nil, errors.New("protocol violation: PutFile not preceded by GetFile")
	}
	f.calls = append(f.calls, "put")
	if f.putErr != nil {
		return nil, f.putErr
	}
	if sha != f.remoteSHA {
		return nil, github.ErrConflict
	}
	f.putSHA = sha
	f.putContent = newContent
	return &github.File{Path: path, Content: newContent, SHA: "new-sha"}, nil
}

func testDocument() *content.Document {
	doc := &content.Document{
		Profile: content.Profile{Name: "Nijanthan", Roles: []string{"Writer"}},
		Links:   content.Links{Resume: "#"},
		Skills:  []string{"Docs"},
	}
	doc.ResolveDefaults()
	return doc
}

func newTestEditor(t *testing.T, client *fakeClient) *Editor {
	t.Helper()
	st := store.New(testDocument())
	factory := func(string) RepoClient { return client }
	bundle := filepath.Join(t.TempDir(), "content.json")
	return New(st, factory, &MemoryCredentialStore{}, "src/data/content.json", bundle)
}

func TestEditor_LoginTransitions(t *testing.T) {
	e := newTestEditor(t, &fakeClient{remoteSHA: "abc123"})
	assert.Equal(t, StateUnauthenticated, e.State())

	assert.ErrorIs(t, e.Login(""), ErrEmptyToken)
	assert.Equal(t, StateUnauthenticated, e.State())

	require.NoError(t, e.Login("ghp_abc123"))
	assert.Equal(t, StateReady, e.State())
}

func TestEditor_LoginDoesNotContactRemote(t *testing.T) {
	client := &fakeClient{remoteSHA: "abc123", getErr: github.ErrAuth}
	e := newTestEditor(t, client)

	// A bad token still logs in; validation is lazy.
	require.NoError(t, e.Login("bad-token"))
	assert.Equal(t, StateReady, e.State())
	assert.Empty(t, client.calls)
}

func TestEditor_RestoresPersistedCredential(t *testing.T) {
	creds := &MemoryCredentialStore{}
	require.NoError(t, creds.Save("ghp_saved"))

	st := store.New(testDocument())
	e := New(st, func(string) RepoClient { return &fakeClient{} }, creds, "p", "")
	assert.Equal(t, StateReady, e.State())
}

func TestEditor_PublishFetchesBeforeWrite(t *testing.T) {
	client := &fakeClient{remoteSHA: "abc123"}
	e := newTestEditor(t, client)
	require.NoError(t, e.Login("ghp_abc123"))

	require.NoError(t, e.Publish(context.Background(), "chore: test"))
	assert.Equal(t, []string{"get", "put"}, client.calls)
	assert.Equal(t, "abc123", client.putSHA)
	assert.Equal(t, StateReady, e.State())
	assert.Equal(t, "success", e.Status().Kind)

	// A second publish re-fetches; the token is never reused.
	client.remoteSHA = "def456"
	require.NoError(t, e.Publish(context.Background(), ""))
	assert.Equal(t, []string{"get", "put", "get", "put"}, client.calls)
	assert.Equal(t, "def456", client.putSHA)
}

func TestEditor_PublishRequiresLogin(t *testing.T) {
	e := newTestEditor(t, &fakeClient{})
	err := e.Publish(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestEditor_ConflictKeepsEdits(t *testing.T) {
	client := &fakeClient{remoteSHA: "abc123", putErr: github.ErrConflict}
	e := newTestEditor(t, client)

	require.NoError(t, e.Login("abc123"))
	require.NoError(t, e.Store().SetProfileField(store.ProfileName, "Jane Doe"))

	err := e.Publish(context.Background(), "")
	require.ErrorIs(t, err, github.ErrConflict)

	// Back in Ready with the unsaved edit intact and an error surfaced.
	assert.Equal(t, StateReady, e.State())
	assert.Equal(t, "Jane Doe", e.Store().Document().Profile.Name)
	status := e.Status()
	assert.Equal(t, "error", status.Kind)
	assert.Contains(t, status.Message, "changed since it was loaded")
}

func TestEditor_AuthFailureMessage(t *testing.T) {
	client := &fakeClient{getErr: github.ErrAuth}
	e := newTestEditor(t, client)
	require.NoError(t, e.Login("bad"))

	err := e.Publish(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, e.Status().Message, "'repo' scope")
}

func TestEditor_NetworkFailureMessage(t *testing.T) {
	client := &fakeClient{getErr: &github.RequestError{Path: "p", Message: "HTTP request failed"}}
	e := newTestEditor(t, client)
	require.NoError(t, e.Login("tok"))

	err := e.Publish(context.Background(), "")
	require.Error(t, err)
	status := e.Status()
	assert.Equal(t, "error", status.Kind)
	assert.Contains(t, status.Message, "try again")
}

func TestEditor_PublishUpdatesBundledCopy(t *testing.T) {
	client := &fakeClient{remoteSHA: "abc123"}
	st := store.New(testDocument())
	bundle := filepath.Join(t.TempDir(), "content.json")
	e := New(st, func(string) RepoClient { return client }, &MemoryCredentialStore{}, "src/data/content.json", bundle)

	require.NoError(t, e.Login("tok"))
	require.NoError(t, st.SetProfileField(store.ProfileName, "Published Name"))
	require.NoError(t, e.Publish(context.Background(), ""))

	saved, err := content.Load(bundle)
	require.NoError(t, err)
	assert.Equal(t, "Published Name", saved.Profile.Name)

	// And the bytes sent remotely equal the canonical form.
	canonical, err := st.Document().Canonical()
	require.NoError(t, err)
	assert.Equal(t, canonical, client.putContent)
}

func TestEditor_LogoutKeepsWorkingCopy(t *testing.T) {
	e := newTestEditor(t, &fakeClient{})
	require.NoError(t, e.Login("tok"))
	require.NoError(t, e.Store().SetProfileField(store.ProfileName, "Edited"))

	e.Logout()
	assert.Equal(t, StateUnauthenticated, e.State())
	assert.Equal(t, "Edited", e.Store().Document().Profile.Name)

	// Publishing after logout fails until a new login.
	assert.ErrorIs(t, e.Publish(context.Background(), ""), ErrNotAuthenticated)
}

func TestEditor_ScenarioConflictAfterEdit(t *testing.T) {
	// Full walk: login, edit, publish hits a conflict, edits and
	// error message survive.
	client := &fakeClient{remoteSHA: "other-sha"}
	e := newTestEditor(t, client)

	require.NoError(t, e.Login("abc123"))
	require.NoError(t, e.Store().SetProfileField(store.ProfileName, "Jane Doe"))

	// The fake only rejects writes whose SHA mismatches its stored
	// one; force the rejection directly.
	client.putErr = github.ErrConflict
	err := e.Publish(context.Background(), "")
	require.ErrorIs(t, err, github.ErrConflict)

	assert.Equal(t, StateReady, e.State())
	assert.Equal(t, "Jane Doe", e.Store().Document().Profile.Name)
	assert.NotEmpty(t, e.Status().Message)
}

func TestFileCredentialStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")
	s := NewFileCredentialStore(path)

	token, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, s.Save("ghp_secret"))
	token, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, "ghp_secret", token)

	require.NoError(t, s.Clear())
	token, err = s.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	// Clearing twice is fine.
	require.NoError(t, s.Clear())
}
