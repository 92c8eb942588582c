package strand

import (
	"errors"
	"strings"
)

// Generation pins the wire constants the two deployed service generations
// disagree on: the invalid-session error-code spelling and the route that
// mints new access tokens. Deployments pick a preset; nothing tries to
// unify them.
type Generation struct {
	// InvalidSessionCode is the structured error code the service returns
	// for a stale or revoked credential.
	InvalidSessionCode string
	// RenewalPath is POSTed with the refresh token to obtain a new access
	// token.
	RenewalPath string
	// RenewalFromAuthURL selects whether RenewalPath is joined onto the
	// auth root or the app root.
	RenewalFromAuthURL bool
}

var (
	GenerationApp = Generation{
		InvalidSessionCode: "InvalidSession",
		RenewalPath:        "/session",
		RenewalFromAuthURL: true,
	}

	GenerationLegacy = Generation{
		InvalidSessionCode: "invalid_session",
		RenewalPath:        "/auth/newAccessToken",
		RenewalFromAuthURL: false,
	}
)

type Config struct {
	// AppID identifies the application on the platform.
	AppID string
	// BaseURL is the app API root, e.g.
	// https://strand.example.com/api/client/v1.0/app/<appID>.
	BaseURL string
	// AuthURL overrides the auth root. Defaults to BaseURL + "/auth".
	AuthURL string
	// Generation defaults to GenerationApp.
	Generation Generation
}

func (c *Config) validate() error {
	if c.BaseURL == "" {
		return errors.New("config: base URL is required")
	}
	if c.Generation.InvalidSessionCode == "" {
		c.Generation = GenerationApp
	}
	return nil
}

func (c Config) authURL() string {
	if c.AuthURL != "" {
		return strings.TrimSuffix(c.AuthURL, "/")
	}
	return strings.TrimSuffix(c.BaseURL, "/") + "/auth"
}

func (c Config) renewalURL() string {
	if c.Generation.RenewalFromAuthURL {
		return c.authURL() + c.Generation.RenewalPath
	}
	return strings.TrimSuffix(c.BaseURL, "/") + c.Generation.RenewalPath
}
