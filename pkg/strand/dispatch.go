package strand

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/strandplatform/strand-go/pkg/auth"
)

// Do dispatches one request against the service. The resource is resolved
// against the configured base URL unless it is already absolute.
//
// Unless opts.NoAuth is set, Do requires an authenticated session and keeps
// it usable: an access token already past its expiry claim is refreshed
// before the call, and an invalid-session response triggers one refresh and
// one retried call. Either way the retried call runs with RefreshOnFailure
// off, so a second failure surfaces instead of looping.
func (c *Client) Do(ctx context.Context, method, resource string, opts RequestOptions) (*Response, error) {
	if !opts.NoAuth {
		session, ok, err := c.tokens.Get(ctx)
		if err != nil {
			return nil, err
		}
		if !ok || !session.Authenticated() {
			return nil, ErrUnauthenticated
		}

		if !opts.UseRefreshToken && auth.TokenExpired(session.AccessToken, time.Now()) {
			c.logger.Debug(ctx, "access token expired, refreshing proactively")
			if err := c.refreshAccessToken(ctx); err != nil {
				return nil, err
			}
			// The freshly minted token is trusted once.
			opts.RefreshOnFailure = false
		}
	}

	// At most two passes: the second runs only after a reactive refresh,
	// with RefreshOnFailure already forced off.
	for {
		resp, err := c.send(ctx, method, resource, opts)

		var authErr *AuthError
		if err == nil || !errors.As(err, &authErr) {
			return resp, err
		}
		if opts.NoAuth {
			return nil, err
		}
		if !opts.RefreshOnFailure {
			if clearErr := c.tokens.Clear(ctx); clearErr != nil {
				c.logger.WithError(clearErr).Warn(ctx, "failed to clear invalid session")
			}
			return nil, err
		}

		c.logger.Debug(ctx, "session reported invalid, refreshing and retrying once")
		if err := c.refreshAccessToken(ctx); err != nil {
			return nil, err
		}
		opts.RefreshOnFailure = false
	}
}

func (c *Client) send(ctx context.Context, method, resource string, opts RequestOptions) (*Response, error) {
	req := c.http.NewRequest(ctx)
	for name, values := range opts.Headers {
		for _, value := range values {
			req.Header.Add(name, value)
		}
	}
	if len(opts.Query) > 0 {
		req.SetQueryParamsFromValues(opts.Query)
	}
	if opts.Body != nil {
		req.SetBody(opts.Body)
	}

	if !opts.NoAuth {
		session, ok, err := c.tokens.Get(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrUnauthenticated
		}

		token := session.AccessToken
		if opts.UseRefreshToken {
			token = session.RefreshToken
		}
		req.SetAuthToken(token)
	}

	resp, err := req.Execute(method, resource)
	if err != nil {
		// Transport failures are terminal, never retried.
		return nil, fmt.Errorf("%s %s: %w", method, resource, err)
	}

	return c.classify(resp)
}

func (c *Client) classify(resp *resty.Response) (*Response, error) {
	status := resp.StatusCode()
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return &Response{
			status: status,
			header: resp.Header(),
			body:   resp.Body(),
		}, nil
	}

	if isJSONContent(resp.Header().Get("Content-Type")) {
		var body errorBody
		if err := json.Unmarshal(resp.Body(), &body); err == nil && (body.Error != "" || body.ErrorCode != "") {
			if body.ErrorCode != "" && body.ErrorCode == c.config.Generation.InvalidSessionCode {
				return nil, &AuthError{StatusCode: status, Code: body.ErrorCode, Message: body.Error}
			}
			return nil, &ServiceError{StatusCode: status, Code: body.ErrorCode, Message: body.Error}
		}
	}

	return nil, &ServiceError{StatusCode: status, Message: resp.Status()}
}

type refreshCall struct {
	done chan struct{}
	err  error
}

// refreshAccessToken de-duplicates concurrent refreshes: callers arriving
// while one is in flight wait for its result instead of issuing their own.
func (c *Client) refreshAccessToken(ctx context.Context) error {
	c.refreshMu.Lock()
	if call := c.refreshInFlight; call != nil {
		c.refreshMu.Unlock()
		select {
		case <-call.done:
			return call.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	call := &refreshCall{done: make(chan struct{})}
	c.refreshInFlight = call
	c.refreshMu.Unlock()

	call.err = c.renewAccessToken(ctx)

	c.refreshMu.Lock()
	c.refreshInFlight = nil
	c.refreshMu.Unlock()
	close(call.done)

	return call.err
}

// renewAccessToken is the base case every refresh funnels into: a dedicated
// refresh-token-authenticated call that never retries itself. Only the
// access token of the stored session is replaced.
func (c *Client) renewAccessToken(ctx context.Context) error {
	opts := RequestOptions{UseRefreshToken: true}

	resp, err := c.send(ctx, http.MethodPost, c.config.renewalURL(), opts)
	if err != nil {
		var authErr *AuthError
		if errors.As(err, &authErr) {
			if clearErr := c.tokens.Clear(ctx); clearErr != nil {
				c.logger.WithError(clearErr).Warn(ctx, "failed to clear invalid session")
			}
		}
		return fmt.Errorf("renew access token: %w", err)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := resp.DecodeJSON(&body); err != nil {
		return fmt.Errorf("renew access token: %w", err)
	}
	if body.AccessToken == "" {
		return fmt.Errorf("renew access token: service returned no token")
	}

	return c.tokens.SetAccessToken(ctx, body.AccessToken)
}

func isJSONContent(contentType string) bool {
	return strings.Contains(contentType, "application/json")
}
