package core

import (
	"fmt"
	"net/http"
)

// ErrInvalidInput indicates a domain-level input validation failure.
type ErrInvalidInput struct {
	Field   string
	Message string
}

func (e *ErrInvalidInput) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ErrAuthentication indicates that the token endpoint refused to issue
// an access token for the supplied offline token. Body holds the raw
// response and Fields its decoded JSON object, if any.
type ErrAuthentication struct {
	StatusCode int
	Body       []byte
	Fields     map[string]any
}

func (e *ErrAuthentication) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("access token exchange failed: %s", e.Body)
	}
	return fmt.Sprintf("access token exchange failed: %d %s: %s",
		e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

// ErrUpload indicates that the assisted installer answered the manifest
// upload with an error document (a body carrying a "code" field).
type ErrUpload struct {
	StatusCode int
	Body       []byte
	Fields     map[string]any
}

func (e *ErrUpload) Error() string {
	return fmt.Sprintf("manifest upload rejected with status %d: %s", e.StatusCode, e.Body)
}

// ErrTransport indicates a connection-level failure that survived the
// transport's automatic retries.
type ErrTransport struct {
	Op  string
	Err error
}

func (e *ErrTransport) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ErrTransport) Unwrap() error {
	return e.Err
}
