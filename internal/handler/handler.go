package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskdesk/internal/errors"
)

// MessageResponse is the body for plain confirmation replies.
type MessageResponse struct {
	Message string `json:"message"`
}

// fail converts a service error into the API error shape. Domain errors keep
// their own message; anything else becomes a 500 carrying the given message
// plus the underlying error, which is also logged server-side.
func fail(c echo.Context, err error, message string) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode == http.StatusInternalServerError {
		c.Logger().Errorf("%s: %v", message, err)
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Message: message,
			Detail:  err.Error(),
		})
	}
	return echo.NewHTTPError(httpErr.StatusCode, errors.ErrorResponse{
		Message: httpErr.Message,
	})
}
