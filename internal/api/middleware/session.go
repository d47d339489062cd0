package middleware

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inkwell/publishing-platform/internal/api/metrics"
	"github.com/inkwell/publishing-platform/internal/core/domain"
	"github.com/inkwell/publishing-platform/internal/core/ports"
	"github.com/inkwell/publishing-platform/internal/core/service"
)

const identityContextKey = "identity"

// Identity is the request-scoped resolved identity: the validated (session,
// user) pair plus a lazily loaded profile. It lives exactly one request and
// is never shared across requests.
type Identity struct {
	Session *domain.Session
	User    *domain.User
	// Client is the identity-provider client bound to this request's cookies,
	// for handlers that need provider operations (OTP verify, sign-out).
	Client ports.IdentityClient

	profiles ports.ProfileRepository
	log      zerolog.Logger

	profileOnce sync.Once
	profile     *domain.Profile
}

// UserID returns the verified user id, or "" for anonymous requests.
func (i *Identity) UserID() string {
	if i == nil || i.User == nil {
		return ""
	}
	return i.User.ID
}

// Profile returns the user's application profile, memoized for the request
// lifetime. Returns nil when absent, for anonymous requests, or when the
// lookup fails (failures are logged, not propagated).
func (i *Identity) Profile(ctx context.Context) *domain.Profile {
	i.profileOnce.Do(func() {
		userID := i.UserID()
		if userID == "" || i.profiles == nil {
			return
		}
		profile, err := i.profiles.FindByUserID(ctx, userID)
		if err != nil {
			if !errors.Is(err, domain.ErrProfileNotFound) {
				i.log.Warn().Err(err).Str("user_id", userID).Msg("profile lookup failed")
			}
			return
		}
		i.profile = profile
	})
	return i.profile
}

// Role returns the profile role, defaulting to READER when no profile exists.
func (i *Identity) Role(ctx context.Context) domain.Role {
	if p := i.Profile(ctx); p != nil {
		return p.Role
	}
	return domain.RoleReader
}

// Session resolves the request's identity once, before any route logic runs.
// It binds a per-request identity-provider client to the request cookies (any
// cookies the provider rotates are written back onto the response with
// Path=/), resolves the validated (session, user) pair, and stores the
// Identity in the echo context.
func Session(
	factory ports.IdentityClientFactory,
	resolver *service.SessionResolver,
	profiles ports.ProfileRepository,
	log zerolog.Logger,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			client := factory.Bind(cookieReader{c}, cookieWriter{c})
			session, user := resolver.Resolve(c.Request().Context(), client)

			outcome := "anonymous"
			if session != nil {
				outcome = "authenticated"
			}
			metrics.SessionsResolvedTotal.WithLabelValues(outcome).Inc()

			c.Set(identityContextKey, &Identity{
				Session:  session,
				User:     user,
				Client:   client,
				profiles: profiles,
				log:      log,
			})
			return next(c)
		}
	}
}

// IdentityFrom returns the Identity resolved by the Session middleware, or
// nil when the middleware did not run.
func IdentityFrom(c echo.Context) *Identity {
	identity, _ := c.Get(identityContextKey).(*Identity)
	return identity
}

// cookieReader adapts echo's request cookies to the provider's cookie hook.
type cookieReader struct {
	c echo.Context
}

func (r cookieReader) GetAll() []ports.Cookie {
	raw := r.c.Cookies()
	cookies := make([]ports.Cookie, 0, len(raw))
	for _, ck := range raw {
		cookies = append(cookies, ports.Cookie{Name: ck.Name, Value: ck.Value})
	}
	return cookies
}

// cookieWriter writes rotated provider cookies onto the response. Path is
// forced to "/"; anything narrower breaks session visibility across routes.
type cookieWriter struct {
	c echo.Context
}

func (w cookieWriter) SetAll(cookies []ports.Cookie) {
	for _, ck := range cookies {
		w.c.SetCookie(&http.Cookie{
			Name:     ck.Name,
			Value:    ck.Value,
			Path:     "/",
			MaxAge:   ck.MaxAge,
			Secure:   ck.Secure,
			HttpOnly: ck.HTTPOnly,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
