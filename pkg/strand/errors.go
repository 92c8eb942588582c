package strand

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned before any network call when an operation
// needs an authenticated identity and the token store holds none.
var ErrUnauthenticated = errors.New("not authenticated")

// AuthError is the service's invalid-session signal. The dispatcher handles
// it with at most one refresh-and-retry; when it escapes to the caller the
// session has already been cleared.
type AuthError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed (%d %s): %s", e.StatusCode, e.Code, e.Message)
}

// ServiceError is any other structured non-2xx response, surfaced to the
// caller unchanged.
type ServiceError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *ServiceError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("service error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("service error (%d %s): %s", e.StatusCode, e.Code, e.Message)
}

type errorBody struct {
	Error     string `json:"error"`
	ErrorCode string `json:"error_code"`
}
