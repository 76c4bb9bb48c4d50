package github

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error taxonomy for the publish workflow. Callers match with
// errors.Is; the editing surface translates each into a human-readable
// message.
var (
	// ErrAuth means the credential was rejected or lacks repo scope.
	ErrAuth = errors.New("credential rejected")
	// ErrNotFound means the path does not exist in the repository.
	ErrNotFound = errors.New("path not found")
	// ErrConflict means the version token no longer matches: the file
	// changed since it was read.
	ErrConflict = errors.New("version token mismatch")
	// ErrEncoding means the content could not be safely serialized for
	// transport.
	ErrEncoding = errors.New("content encoding failed")
)

// RequestError is a transport-level failure (connection refused, DNS,
// malformed response). It wraps the underlying cause.
type RequestError struct {
	Path    string
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("github request for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("github request for %s: %s", e.Path, e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

type apiErrorBody struct {
	Message string `json:"message"`
}

// statusError maps a contents-API status code onto the taxonomy.
// 409 is a plain conflict; 422 is how the API reports a stale SHA on
// conditional writes.
func statusError(status int, path string, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}

	var apiErr apiErrorBody
	_ = json.Unmarshal(body, &apiErr)
	detail := apiErr.Message
	if detail == "" {
		detail = http.StatusText(status)
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s (HTTP %d)", ErrAuth, detail, status)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s: %s", ErrNotFound, path, detail)
	case http.StatusConflict, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s (HTTP %d)", ErrConflict, detail, status)
	default:
		return &RequestError{Path: path, Message: fmt.Sprintf("HTTP %d: %s", status, detail)}
	}
}
