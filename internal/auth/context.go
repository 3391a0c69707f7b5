package auth

import (
	"github.com/labstack/echo/v4"

	"taskdesk/internal/model"
)

const (
	claimsContextKey = "auth.claims"
	userContextKey   = "auth.user"
)

// CurrentUser returns the authenticated user attached to the request, or nil
// when the request did not pass through the auth middleware.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}

// SetCurrentUser attaches the authenticated user to the request context.
// Exported for handler tests.
func SetCurrentUser(c echo.Context, user *model.User) {
	c.Set(userContextKey, user)
}
