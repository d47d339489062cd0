package ports

import (
	"context"
	"fmt"

	"github.com/inkwell/publishing-platform/internal/core/domain"
)

// Cookie is a provider-owned cookie to be read from the request or rotated
// onto the response. Writers must force Path=/ so the session stays visible
// across all routes.
type Cookie struct {
	Name     string
	Value    string
	Path     string
	MaxAge   int
	Secure   bool
	HTTPOnly bool
}

// CookieReader exposes the cookies of the inbound request to the identity
// client.
type CookieReader interface {
	GetAll() []Cookie
}

// CookieWriter receives cookies the provider wants rotated. Implementations
// write them onto the outgoing response.
type CookieWriter interface {
	SetAll(cookies []Cookie)
}

// IdentityClient is a request-bound client for the external identity provider.
// GetUser re-validates the bearer token against the provider; it is the only
// call that establishes a trustworthy identity.
type IdentityClient interface {
	GetUser(ctx context.Context) (*domain.User, error)
	GetSession(ctx context.Context) (*domain.Session, error)
	VerifyOTP(ctx context.Context, tokenHash, otpType string) error
	SignOut(ctx context.Context, scope string) error
}

// IdentityClientFactory binds a per-request IdentityClient to the request's
// cookie state. The factory itself is constructed once at startup and injected
// wherever a client is needed; it is never rebuilt per call.
type IdentityClientFactory interface {
	Bind(r CookieReader, w CookieWriter) IdentityClient
	// Health reports provider reachability for readiness probes.
	Health(ctx context.Context) error
}

// ProviderError is a typed failure from the identity provider, carrying the
// provider's machine-readable error code (e.g. "otp_expired").
type ProviderError struct {
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("identity provider: %s (%s)", e.Message, e.Code)
}
