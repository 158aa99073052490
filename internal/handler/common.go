package handler // handler defines the HTTP surface of the back office

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Category is the typed discriminator carried by every error response
// so clients can branch on failure class without string-matching
// messages.
type Category string

const (
	CategoryUnauthorized Category = "unauthorized"
	CategoryForbidden    Category = "forbidden"
	CategoryNotFound     Category = "not-found"
	CategoryValidation   Category = "validation"
	CategoryServer       Category = "server"
	CategoryUnknown      Category = "unknown"
)

// CategoryForStatus derives the error category from an HTTP status.
func CategoryForStatus(status int) Category {
	switch {
	case status == http.StatusUnauthorized:
		return CategoryUnauthorized
	case status == http.StatusForbidden:
		return CategoryForbidden
	case status == http.StatusNotFound:
		return CategoryNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return CategoryValidation
	case status >= 500:
		return CategoryServer
	}
	return CategoryUnknown
}

// fail writes the uniform error envelope {error, category}.
func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"error": msg, "category": CategoryForStatus(status)})
}

// getUserID extracts the user_id placed in context by the JWT
// middleware and converts it to uint64.  Tokens come from an external
// identity service, so the claim may arrive in several numeric shapes.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses a numeric :id path parameter.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
