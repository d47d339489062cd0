package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/inkwell/publishing-platform/internal/api/middleware"
)

// actorID extracts the verified user id resolved by the Session middleware.
// Returns "" for anonymous requests; services translate that into
// ErrUnauthorized, so handlers don't need a separate fast-fail check.
func actorID(c echo.Context) string {
	return middleware.IdentityFrom(c).UserID()
}

// identityFrom is a local alias so handlers that need the full Identity
// (provider client, memoized profile) read naturally.
func identityFrom(c echo.Context) *middleware.Identity {
	return middleware.IdentityFrom(c)
}
