// Package editor orchestrates the content-editing session: credential
// handling, working-copy mutations via the store, and the publish
// workflow against the remote repository.
package editor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/nijanthan/portfolio-cms/internal/github"
	"github.com/nijanthan/portfolio-cms/internal/store"
)

// State of the editing session.
type State string

// Session states. Authenticating is transient: storing the credential
// always succeeds locally, so Login lands in Ready without a server
// round trip. The credential is only validated on first publish.
const (
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticating  State = "authenticating"
	StateReady           State = "ready"
	StatePublishing      State = "publishing"
)

// Session errors.
var (
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrPublishInProgress = errors.New("publish already in progress")
	ErrEmptyToken        = errors.New("token must not be empty")
)

// RepoClient is the slice of the remote repository client the editor
// needs. *github.Client satisfies it; tests substitute a double.
type RepoClient interface {
	GetFile(ctx context.Context, path string) (*github.File, error)
	PutFile(ctx context.Context, path string, newContent []byte, sha, message string) (*github.File, error)
}

// ClientFactory builds a repository client for a credential. The editor
// constructs a fresh client per session so a re-login with a different
// token takes effect immediately.
type ClientFactory func(token string) RepoClient

// Status is the outcome indicator surfaced after a publish attempt.
type Status struct {
	Kind    string `json:"kind,omitempty"` // "success" or "error"
	Message string `json:"message,omitempty"`
}

// Editor is the single-user editing session.
type Editor struct {
	mu         sync.Mutex
	state      State
	token      string
	status     Status
	store      *store.Store
	newClient  ClientFactory
	creds      CredentialStore
	remotePath string
	bundlePath string
}

// New creates an editor over st. remotePath is the repository path of
// the content file; bundlePath is the local bundled copy updated after
// a successful publish. A credential persisted from an earlier session
// is restored, reproducing the remembered login.
func New(st *store.Store, factory ClientFactory, creds CredentialStore, remotePath, bundlePath string) *Editor {
	e := &Editor{
		state:      StateUnauthenticated,
		store:      st,
		newClient:  factory,
		creds:      creds,
		remotePath: remotePath,
		bundlePath: bundlePath,
	}
	if creds != nil {
		if token, err := creds.Load(); err == nil && token != "" {
			e.token = token
			e.state = StateReady
		}
	}
	return e
}

// Store exposes the working copy for mutation operations.
func (e *Editor) Store() *store.Store {
	return e.store
}

// State returns the current session state.
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Status returns the last publish outcome.
func (e *Editor) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Login stores the credential and moves to Ready. The token is not
// validated against the remote API here; a bad token surfaces on the
// first publish attempt.
func (e *Editor) Login(token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StatePublishing {
		return ErrPublishInProgress
	}

	e.state = StateAuthenticating
	e.token = token
	if e.creds != nil {
		if err := e.creds.Save(token); err != nil {
			log.Printf("Failed to persist credential: %v", err)
		}
	}
	e.state = StateReady
	e.status = Status{}
	return nil
}

// Logout discards the held credential and any persisted copy. The
// working copy is left alone: unsaved edits survive until the process
// exits.
func (e *Editor) Logout() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.token = ""
	e.state = StateUnauthenticated
	e.status = Status{}
	if e.creds != nil {
		if err := e.creds.Clear(); err != nil {
			log.Printf("Failed to clear persisted credential: %v", err)
		}
	}
}

// Publish pushes the working copy to the remote repository: fetch the
// current version token, then write conditioned on it. The token used
// for the write always comes from the fetch inside the same call, never
// from an earlier operation, so a concurrent edit made through any
// other path is detected as a conflict instead of overwritten.
//
// On success the published document becomes the new bundled copy. On
// any failure the working copy is left untouched so the user can retry.
func (e *Editor) Publish(ctx context.Context, message string) error {
	e.mu.Lock()
	switch e.state {
	case StateUnauthenticated, StateAuthenticating:
		e.mu.Unlock()
		return ErrNotAuthenticated
	case StatePublishing:
		e.mu.Unlock()
		return ErrPublishInProgress
	}
	e.state = StatePublishing
	e.status = Status{}
	token := e.token
	e.mu.Unlock()

	err := e.publish(ctx, token, message)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = StateReady
	if err != nil {
		e.status = Status{Kind: "error", Message: humanMessage(err)}
		return err
	}
	e.status = Status{Kind: "success", Message: "Content updated successfully! Changes will be live in a few minutes."}
	return nil
}

func (e *Editor) publish(ctx context.Context, token, message string) error {
	doc := e.store.Document()
	data, err := doc.Canonical()
	if err != nil {
		return fmt.Errorf("%w: %v", github.ErrEncoding, err)
	}

	client := e.newClient(token)

	current, err := client.GetFile(ctx, e.remotePath)
	if err != nil {
		return err
	}

	if _, err := client.PutFile(ctx, e.remotePath, data, current.SHA, message); err != nil {
		return err
	}

	if e.bundlePath != "" {
		if err := doc.Save(e.bundlePath); err != nil {
			log.Printf("Published but failed to update bundled copy: %v", err)
		}
	}
	return nil
}

// humanMessage converts a publish failure into the inline message shown
// to the user. None of the underlying errors propagate past the editing
// surface.
func humanMessage(err error) string {
	switch {
	case errors.Is(err, github.ErrAuth):
		return "GitHub rejected the token. Make sure it has 'repo' scope."
	case errors.Is(err, github.ErrConflict):
		return "The remote content changed since it was loaded. Pull the latest version and retry."
	case errors.Is(err, github.ErrNotFound):
		return "The content file was not found in the repository. Check the configured path."
	case errors.Is(err, github.ErrEncoding):
		return "The content could not be encoded for upload."
	default:
		return fmt.Sprintf("Error: %v. Your edits are still here; try again.", err)
	}
}
