// Package github is a thin client over the GitHub Contents API for one
// fixed repository. It exposes exactly the two operations the publish
// workflow needs: read the current file with its blob SHA, and write a
// new version conditioned on that SHA.
package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultBaseURL is the public GitHub API endpoint.
const DefaultBaseURL = "https://api.github.com"

// DefaultTimeout bounds one contents-API round trip.
const DefaultTimeout = 30 * time.Second

// Client talks to the contents API of a single owner/repo.
type Client struct {
	baseURL    string
	owner      string
	repo       string
	token      string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API endpoint (GitHub
// Enterprise, or a test server).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a contents-API client for owner/repo authenticated
// with a personal access token holding repo-write scope.
func NewClient(owner, repo, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		owner:      owner,
		repo:       repo,
		token:      token,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// File is one stored file: its decoded content and the blob SHA that
// acts as the version token for conditional writes.
type File struct {
	Path    string
	Content []byte
	SHA     string
}

type contentsResponse struct {
	Path     string `json:"path"`
	SHA      string `json:"sha"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

type updateRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
}

type updateResponse struct {
	Content *contentsResponse `json:"content"`
}

// GetFile fetches the current content and version token at path.
func (c *Client) GetFile(ctx context.Context, path string) (*File, error) {
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var resp contentsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &RequestError{Path: path, Message: "failed to parse contents response", Cause: err}
	}

	content, err := decodeContent(resp.Content, resp.Encoding)
	if err != nil {
		return nil, &RequestError{Path: path, Message: "failed to decode file content", Cause: err}
	}

	return &File{Path: path, Content: content, SHA: resp.SHA}, nil
}

// PutFile submits newContent conditioned on sha: the API rejects the
// write if the stored blob SHA no longer matches, which is how a
// concurrent edit through any other path is detected instead of
// silently overwritten. Content is carried as standard base64 over the
// raw bytes, so multi-byte text survives intact.
func (c *Client) PutFile(ctx context.Context, path string, newContent []byte, sha, message string) (*File, error) {
	if !utf8.Valid(newContent) {
		return nil, fmt.Errorf("%w: content is not valid UTF-8", ErrEncoding)
	}
	if message == "" {
		message = "chore: update content via CMS"
	}

	reqBody, err := json.Marshal(updateRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(newContent),
		SHA:     sha,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}

	body, err := c.do(ctx, http.MethodPut, path, reqBody)
	if err != nil {
		return nil, err
	}

	var resp updateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &RequestError{Path: path, Message: "failed to parse update response", Cause: err}
	}
	if resp.Content == nil {
		return &File{Path: path, Content: newContent}, nil
	}
	return &File{Path: path, Content: newContent, SHA: resp.Content.SHA}, nil
}

// do executes one contents-API request and maps non-2xx statuses onto
// the error taxonomy.
func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.baseURL, c.owner, c.repo, path)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, &RequestError{Path: path, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{Path: path, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Path: path, Message: "failed to read response body", Cause: err}
	}

	if err := statusError(resp.StatusCode, path, respBody); err != nil {
		return nil, err
	}
	return respBody, nil
}

// decodeContent decodes the base64 payload the contents API returns.
// GitHub wraps the base64 with newlines, so strip whitespace first.
func decodeContent(encoded, encoding string) ([]byte, error) {
	if encoding != "" && encoding != "base64" {
		return nil, fmt.Errorf("unsupported content encoding %q", encoding)
	}
	cleaned := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == ' ' {
			return -1
		}
		return r
	}, encoded)
	return base64.StdEncoding.DecodeString(cleaned)
}
