package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpirySkew is subtracted from the token's expiry claim so that a
// token about to lapse mid-request is refreshed proactively instead.
const TokenExpirySkew = 10 * time.Second

// TokenExpired reports whether the access token's embedded expiry claim has
// passed. The token is decoded without signature verification: the client
// holds no service keys, and the check only gates a proactive refresh.
// An empty or undecodable token, or one without an expiry claim, counts as
// expired.
func TokenExpired(token string, now time.Time) bool {
	if token == "" {
		return true
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return true
	}

	expiry, err := parsed.Claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return true
	}

	return !now.Before(expiry.Time.Add(-TokenExpirySkew))
}
