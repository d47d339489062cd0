package domain

import "time"

// User is the identity-provider-issued principal. The application never
// creates or deletes users; it only attaches a Profile to them.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// Session is the opaque proof of authentication issued by the identity
// provider. A Session copied from a cookie is not trustworthy until it has
// been re-validated against the provider within the current request.
type Session struct {
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         *User     `json:"user,omitempty"`
}

// Expired reports whether the session's access token is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
