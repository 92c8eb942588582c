package strand

import (
	"net/http"
	"net/url"
)

// RequestOptions configures one dispatched request. Build it with
// NewRequestOptions: the zero value disables the automatic
// refresh-and-retry that callers almost always want.
type RequestOptions struct {
	// Headers are merged over the client defaults.
	Headers http.Header
	// Query is appended to the resource URL.
	Query url.Values
	// Body is JSON-encoded unless it is a []byte, string or io.Reader.
	Body any
	// UseRefreshToken sends the refresh token as the bearer credential
	// instead of the access token.
	UseRefreshToken bool
	// RefreshOnFailure permits exactly one refresh-and-retry when the
	// service reports an invalid session.
	RefreshOnFailure bool
	// NoAuth skips all credential logic. Used by the authentication
	// endpoints themselves.
	NoAuth bool
}

func NewRequestOptions() RequestOptions {
	return RequestOptions{
		RefreshOnFailure: true,
	}
}
