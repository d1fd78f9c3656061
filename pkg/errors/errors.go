package errors

import (
	"fmt"
	"net/http"
)

// ErrTransport is returned when the Storefront API could not be reached or
// answered with a non-OK HTTP status. Status defaults to 500 when the failure
// happened before a response was received.
type ErrTransport struct {
	Status int
	Query  string
	Err    error
}

func (e *ErrTransport) Error() string {
	status := e.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	if e.Err != nil {
		return fmt.Sprintf("storefront request failed: status %d: %v", status, e.Err)
	}
	return fmt.Sprintf("storefront request failed: status %d", status)
}

func (e *ErrTransport) Unwrap() error {
	return e.Err
}

// ErrUpstreamQuery is returned when the Storefront API was reachable but the
// response carried a GraphQL errors array. Only the first reported error is
// surfaced; the query text is kept for diagnostics.
type ErrUpstreamQuery struct {
	Message string
	Query   string
}

func (e *ErrUpstreamQuery) Error() string {
	return fmt.Sprintf("storefront query error: %s", e.Message)
}

// ErrMissingCart is returned when a cart-scoped operation is attempted with no
// resolvable cart identifier in the session
type ErrMissingCart struct{}

func (e *ErrMissingCart) Error() string {
	return "no cart found for this session"
}

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when authentication fails
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}
