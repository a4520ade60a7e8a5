package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Sentinel errors
var (
	// ErrNotAuthenticated is returned before any request is sent when no session token is held.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrUnauthorized matches backend 401 responses.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden matches backend 403 responses.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound matches backend 404 responses.
	ErrNotFound = errors.New("not found")

	// ErrMissingCredentials is returned by Login, without a request, for an empty rut or password.
	ErrMissingCredentials = errors.New("rut and password are required")

	// ErrNoRole is returned when a login succeeds for a user without a cargo.
	ErrNoRole = errors.New("user has no cargo assigned")
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// Is maps status codes onto the sentinel errors.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// Temporary reports whether retrying the request may succeed.
func (e *APIError) Temporary() bool {
	return e.Status >= http.StatusInternalServerError
}

// errorBody is the backend's failure payload. Validation failures from the
// serializers arrive as "detail" instead of "error".
type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func decodeError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil || len(data) == 0 {
		return apiErr
	}

	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		apiErr.Message = strings.TrimSpace(string(data))
		if len(apiErr.Message) > 200 {
			apiErr.Message = apiErr.Message[:200]
		}
		return apiErr
	}

	apiErr.Message = body.Error
	if apiErr.Message == "" {
		apiErr.Message = body.Detail
	}

	return apiErr
}
