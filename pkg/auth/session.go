package auth

import (
	"errors"
)

var ErrNoSession = errors.New("no stored session")

// Session holds the credentials of one authenticated principal.
//
// AccessToken may be empty while UserID is set: that is the transient state
// between losing an access token and the next refresh. A RefreshToken
// without a UserID is never valid.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       string `json:"user_id"`
}

func (s Session) Validate() error {
	if s.RefreshToken != "" && s.UserID == "" {
		return errors.New("session has a refresh token but no user identity")
	}
	return nil
}

func (s Session) Authenticated() bool {
	return s.UserID != ""
}
