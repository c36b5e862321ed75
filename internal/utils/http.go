package utils

import (
	"net/http"

	"github.com/jmlagera/coop-kiosk/internal/pkg/apperr"
	"github.com/labstack/echo/v4"
)

// SuccessResponse sends a success envelope with the payload keys inlined:
// {"success": true, "member": {...}}
func SuccessResponse(c echo.Context, statusCode int, payload echo.Map) error {
	body := echo.Map{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	setNoCacheHeaders(c)
	return c.JSON(statusCode, body)
}

// ErrorResponseHandler sends an error envelope
func ErrorResponseHandler(c echo.Context, statusCode int, errorMessage string) error {
	setNoCacheHeaders(c)
	return c.JSON(statusCode, echo.Map{
		"success": false,
		"error":   errorMessage,
	})
}

// AppErrorResponse maps an application error to its HTTP status. Validation,
// not-found, balance and OTP errors surface verbatim; everything else is
// masked as a generic failure.
func AppErrorResponse(c echo.Context, err error) error {
	status := apperr.HTTPStatus(err)
	msg := err.Error()
	if status >= 500 {
		msg = "An unexpected error occurred. Please try again later."
	}
	return ErrorResponseHandler(c, status, msg)
}

// BadRequestResponse sends a 400 Bad Request response
func BadRequestResponse(c echo.Context, errorMessage string) error {
	return ErrorResponseHandler(c, http.StatusBadRequest, errorMessage)
}

// UnauthorizedResponse sends a 401 Unauthorized response
func UnauthorizedResponse(c echo.Context, errorMessage string) error {
	if errorMessage == "" {
		errorMessage = "Unauthorized"
	}
	return ErrorResponseHandler(c, http.StatusUnauthorized, errorMessage)
}

// Mobile clients must never cache API responses
func setNoCacheHeaders(c echo.Context) {
	h := c.Response().Header()
	h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	h.Set("Pragma", "no-cache")
	h.Set("Expires", "0")
}
