package strand

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/strandplatform/strand-go/pkg/auth"
)

// Authentication provider names recognized by the service.
const (
	ProviderAnonymous    = "anon-user"
	ProviderUserPassword = "local-userpass"
	ProviderAPIKey       = "api-key"
)

type UserPasswordCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type APIKeyCredentials struct {
	Key string `json:"key"`
}

type UserProfile struct {
	ID   string         `json:"_id"`
	Type string         `json:"type,omitempty"`
	Data map[string]any `json:"data,omitempty"`
}

// Authenticate logs in with the named provider and stores the returned
// session. This is the separate credential-issuing path: it replaces the
// whole session rather than going through the dispatcher's refresh logic.
func (c *Client) Authenticate(ctx context.Context, provider string, credentials any) (auth.Session, error) {
	opts := NewRequestOptions()
	opts.NoAuth = true
	opts.Body = credentials

	resource := fmt.Sprintf("%s/providers/%s/login", c.config.authURL(), url.PathEscape(provider))
	resp, err := c.Do(ctx, http.MethodPost, resource, opts)
	if err != nil {
		return auth.Session{}, fmt.Errorf("authenticate with %s: %w", provider, err)
	}

	var body struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		UserID       string `json:"user_id"`
	}
	if err := resp.DecodeJSON(&body); err != nil {
		return auth.Session{}, fmt.Errorf("authenticate with %s: %w", provider, err)
	}

	session := auth.Session{
		AccessToken:  body.AccessToken,
		RefreshToken: body.RefreshToken,
		UserID:       body.UserID,
	}
	if err := c.tokens.Set(ctx, session); err != nil {
		return auth.Session{}, err
	}

	return session, nil
}

// Logout revokes the session server-side and clears the local store. The
// local session is cleared even when revocation fails: a client must never
// stay logged in against its will.
func (c *Client) Logout(ctx context.Context) error {
	opts := NewRequestOptions()
	opts.UseRefreshToken = true
	opts.RefreshOnFailure = false

	_, err := c.Do(ctx, http.MethodDelete, c.config.authURL()+"/session", opts)

	var authErr *AuthError
	if err != nil && errors.As(err, &authErr) {
		// Session already invalid server-side; the dispatcher cleared the
		// store, nothing left to revoke.
		return nil
	}

	if clearErr := c.tokens.Clear(ctx); clearErr != nil && err == nil {
		err = clearErr
	}
	return err
}

// Profile fetches the authenticated user's document.
func (c *Client) Profile(ctx context.Context) (UserProfile, error) {
	resp, err := c.Do(ctx, http.MethodGet, "/auth/me", NewRequestOptions())
	if err != nil {
		return UserProfile{}, fmt.Errorf("fetch profile: %w", err)
	}

	var profile UserProfile
	if err := resp.DecodeJSON(&profile); err != nil {
		return UserProfile{}, fmt.Errorf("fetch profile: %w", err)
	}

	return profile, nil
}
