package auth

import (
	"context"
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "taskdesk/internal/errors"
	"taskdesk/internal/model"
)

// UserLoader resolves a user id to the current user record.
type UserLoader interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
}

// Middleware authenticates requests: bearer token verification followed by a
// lookup of the current user record, so role and email changes take effect
// immediately regardless of what the token was issued with.
type Middleware struct {
	tokens *TokenService
	users  UserLoader
}

// NewMiddleware builds the auth middleware.
func NewMiddleware(tokens *TokenService, users UserLoader) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

// Authenticate extracts the `Authorization: Bearer` credential and verifies
// it with the token service. Verified claims land in the request context for
// LoadUser to resolve.
func (m *Middleware) Authenticate() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: claimsContextKey,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return m.tokens.Verify(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var extractionErr *echojwt.TokenExtractionError
			if errors.As(err, &extractionErr) {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Message: "No token provided",
				})
			}
			detail := err.Error()
			if unwrapped := errors.Unwrap(err); unwrapped != nil {
				detail = unwrapped.Error()
			}
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Message: "Not authorized",
				Detail:  detail,
			})
		},
	})
}

// LoadUser resolves the verified claims to the current user record and
// attaches it to the request. An id that no longer resolves is treated the
// same as a bad token.
func (m *Middleware) LoadUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(claimsContextKey).(*Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Message: "Not authorized",
				})
			}
			user, err := m.users.GetUser(c.Request().Context(), claims.UserID)
			if err != nil || user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Message: "Not authorized",
					Detail:  "User not found",
				})
			}
			SetCurrentUser(c, user)
			return next(c)
		}
	}
}

// RequireAdmin allows only admin users past. It must run after LoadUser.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
				Message: "Admin access required",
			})
		}
		return next(c)
	}
}
