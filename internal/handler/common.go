package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-reservation/internal/directory"
	"github.com/iliyamo/ticket-reservation/internal/inventory"
)

// engineError maps inventory engine errors onto HTTP responses: 400 for
// validation, 404 for unknown entities, 409 for business-rule conflicts.
func engineError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, inventory.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, inventory.ErrUnknownEvent),
		errors.Is(err, inventory.ErrUnknownTier),
		errors.Is(err, inventory.ErrUnknownHold):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, inventory.ErrInsufficientInventory),
		errors.Is(err, inventory.ErrHoldNotActive),
		errors.Is(err, inventory.ErrHoldMismatch),
		errors.Is(err, inventory.ErrDuplicateTier):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

// directoryError does the same for catalog errors.
func directoryError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, directory.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, directory.ErrUnknownVenue),
		errors.Is(err, directory.ErrUnknownEvent):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, directory.ErrDuplicateVenue),
		errors.Is(err, directory.ErrDuplicateEvent):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
