// Package handler contains the HTTP handlers.  Handlers do request
// binding and status-code mapping only; all business rules live in the
// inventory engine and the directory.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is the liveness endpoint used by load balancers and monitoring.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
