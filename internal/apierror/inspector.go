package apierror

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sirseerhq/dolthub-pr/dolthub"
)

// Inspector classifies errors returned by DoltHub API operations.
type Inspector interface {
	// IsAuthError checks if the error indicates an authentication or
	// authorization failure.
	IsAuthError(err error) bool

	// IsNotFoundError checks if the error indicates a missing
	// repository, pull request, or comment.
	IsNotFoundError(err error) bool

	// IsMergeBlockedError checks if the error indicates a merge the
	// server refused, e.g. an already-merged or closed pull request.
	IsMergeBlockedError(err error) bool

	// IsUpstreamTimeout checks if the error is the API's plain-text
	// "upstream request timeout" response.
	IsUpstreamTimeout(err error) bool

	// IsNetworkError checks if the error is a connectivity failure
	// that never produced a server response.
	IsNetworkError(err error) bool
}

// APIErrorInspector implements Inspector by examining error messages.
// The API has no machine-readable error codes, so the messages are the
// only signal available for errors that lost their type on the way up.
type APIErrorInspector struct{}

// NewInspector creates the default inspector: typed inspection of
// *dolthub.ServerError with message matching as the fallback.
func NewInspector() Inspector {
	return &ServerErrorInspector{base: &APIErrorInspector{}}
}

// IsAuthError checks if the error is an authentication or authorization error.
func (i *APIErrorInspector) IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "401") ||
		strings.Contains(errStr, "403") ||
		strings.Contains(errStr, "unauthorized") ||
		strings.Contains(errStr, "forbidden") ||
		strings.Contains(errStr, "must be logged in") ||
		strings.Contains(errStr, "not authorized") ||
		strings.Contains(errStr, "invalid token")
}

// IsNotFoundError checks if the error is a not found error.
func (i *APIErrorInspector) IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "404") ||
		strings.Contains(errStr, "not found") ||
		strings.Contains(errStr, "does not exist") ||
		strings.Contains(errStr, "error getting pull")
}

// IsMergeBlockedError checks if the error is a merge the server refused.
func (i *APIErrorInspector) IsMergeBlockedError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "already been merged") ||
		strings.Contains(errStr, "already merged") ||
		strings.Contains(errStr, "merge conflict") ||
		strings.Contains(errStr, "cannot merge") ||
		strings.Contains(errStr, "error merging")
}

// IsUpstreamTimeout checks if the error is the API's upstream timeout
// response.
func (i *APIErrorInspector) IsUpstreamTimeout(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "upstream request timeout")
}

// IsNetworkError checks if the error is a network connectivity error.
func (i *APIErrorInspector) IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "temporary failure") ||
		strings.Contains(errStr, "dial tcp") ||
		strings.Contains(errStr, "tls handshake") ||
		strings.Contains(errStr, "network is unreachable")
}

// ServerErrorInspector wraps a base inspector and classifies the typed
// *dolthub.ServerError in the error chain before falling back to
// message matching.
type ServerErrorInspector struct {
	base Inspector
}

// NewServerErrorInspector creates an inspector that checks the error
// chain first, then falls back to base.
func NewServerErrorInspector(base Inspector) Inspector {
	return &ServerErrorInspector{base: base}
}

// IsAuthError checks the error chain first, then falls back to the base inspector.
func (e *ServerErrorInspector) IsAuthError(err error) bool {
	var serverErr *dolthub.ServerError
	if errors.As(err, &serverErr) {
		if serverErr.StatusCode == http.StatusUnauthorized || serverErr.StatusCode == http.StatusForbidden {
			return true
		}
	}
	return e.base.IsAuthError(err)
}

// IsNotFoundError checks the error chain first, then falls back to the base inspector.
func (e *ServerErrorInspector) IsNotFoundError(err error) bool {
	if errors.Is(err, dolthub.ErrNotFound) {
		return true
	}
	return e.base.IsNotFoundError(err)
}

// IsMergeBlockedError checks the error chain first, then falls back to the base inspector.
func (e *ServerErrorInspector) IsMergeBlockedError(err error) bool {
	var serverErr *dolthub.ServerError
	if errors.As(err, &serverErr) {
		if serverErr.Op == "MergePull" && len(serverErr.Messages) > 0 {
			return true
		}
	}
	return e.base.IsMergeBlockedError(err)
}

// IsUpstreamTimeout checks the error chain first, then falls back to the base inspector.
func (e *ServerErrorInspector) IsUpstreamTimeout(err error) bool {
	var serverErr *dolthub.ServerError
	if errors.As(err, &serverErr) {
		for _, msg := range serverErr.Messages {
			if strings.EqualFold(strings.TrimSpace(msg), "upstream request timeout") {
				return true
			}
		}
		return false
	}
	return e.base.IsUpstreamTimeout(err)
}

// IsNetworkError reports false for any error the server answered; a
// *ServerError means the request made it there and back.
func (e *ServerErrorInspector) IsNetworkError(err error) bool {
	var serverErr *dolthub.ServerError
	if errors.As(err, &serverErr) {
		return false
	}
	return e.base.IsNetworkError(err)
}
