package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inkwell/publishing-platform/internal/core/ports"
)

// AuthHandler handles the authentication bootstrap endpoints: the email
// confirmation callback and sign-out. Both operate through the per-request
// identity client bound by the Session middleware.
type AuthHandler struct {
	log zerolog.Logger
}

func NewAuthHandler(log zerolog.Logger) *AuthHandler {
	return &AuthHandler{log: log}
}

// safeReasons is the allowlist of provider error codes that may be echoed to
// the error page. Anything else is collapsed to "unknown" so provider
// internals never leak into a redirect URL.
var safeReasons = map[string]struct{}{
	"otp_expired":     {},
	"invalid_grant":   {},
	"token_not_found": {},
}

// Confirm handles GET /confirm — the email-confirmation callback. On success
// the provider session cookies are already written by the identity client;
// the user lands on `next`.
//
// @Summary      Email confirmation callback
// @Tags         auth
// @Param        token_hash  query  string  true   "OTP token hash"
// @Param        type        query  string  false  "OTP type (default email)"
// @Param        next        query  string  false  "Redirect target after confirmation"
// @Success      303
// @Router       /confirm [get]
func (h *AuthHandler) Confirm(c echo.Context) error {
	tokenHash := c.QueryParam("token_hash")
	otpType := c.QueryParam("type")
	if otpType == "" {
		otpType = "email"
	}
	next := c.QueryParam("next")
	// Relative targets only; an absolute URL here would be an open redirect.
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		next = "/user"
	}

	if tokenHash == "" {
		return c.Redirect(http.StatusSeeOther, "/auth/error")
	}

	identity := identityFrom(c)
	if identity == nil || identity.Client == nil {
		return c.Redirect(http.StatusSeeOther, "/auth/error?reason=unknown")
	}

	if err := identity.Client.VerifyOTP(c.Request().Context(), tokenHash, otpType); err != nil {
		reason := "unknown"
		var pe *ports.ProviderError
		if errors.As(err, &pe) {
			if _, ok := safeReasons[pe.Code]; ok {
				reason = pe.Code
			}
		}
		h.log.Warn().Err(err).Str("reason", reason).Msg("otp verification failed")
		return c.Redirect(http.StatusSeeOther, "/auth/error?reason="+reason)
	}

	return c.Redirect(http.StatusSeeOther, next)
}

// SignOut handles POST /signout — revokes the provider session (local scope
// clears this browser's cookies) and redirects to the login page.
//
// @Summary      Sign out
// @Tags         auth
// @Success      303
// @Router       /signout [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	identity := identityFrom(c)
	if identity != nil && identity.Client != nil {
		if err := identity.Client.SignOut(c.Request().Context(), "local"); err != nil {
			// Cookies are cleared regardless; a provider error here must not
			// trap the user in a signed-in state.
			h.log.Warn().Err(err).Msg("provider sign-out failed")
		}
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}
