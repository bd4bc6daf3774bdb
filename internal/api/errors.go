package api

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated is returned before any network I/O when no bearer
// token is available for an authenticated call.
var ErrNotAuthenticated = errors.New("not authenticated: run 'gridcal login' first")

// RemoteError is a non-success HTTP response from the backend. It records
// which logical operation failed; no retry is attempted.
type RemoteError struct {
	Op         string
	StatusCode int
	Status     string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Op, e.Status)
}
