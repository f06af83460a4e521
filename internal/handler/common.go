package handler // handler package contains the administrative HTTP handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"computer-club/internal/repository"
	"computer-club/internal/service"
	"computer-club/internal/validation"
)

// dbTimeout bounds every repository call made from a handler.
const dbTimeout = 5 * time.Second

// getAdminID extracts the authenticated administrator's UUID from the
// Echo context.  JWTAuth stores the subject claim under "admin_id".
func getAdminID(c echo.Context) (uuid.UUID, error) {
	v, ok := c.Get("admin_id").(string)
	if !ok || v == "" {
		return uuid.Nil, errors.New("no admin in context")
	}
	return uuid.Parse(v)
}

// pathID parses the :id route parameter as a UUID.
func pathID(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}

// writeError maps domain errors to HTTP responses.  Validation failures
// carry their per-field messages; repository and service sentinels map
// to the usual 4xx codes; anything else is a 500 with a generic body so
// internals never leak to clients.
func writeError(c echo.Context, err error) error {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": verr.Errors})
	}
	switch {
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrSessionNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, repository.ErrConflict),
		errors.Is(err, service.ErrComputerInUse),
		errors.Is(err, service.ErrSessionClosed):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrComputerUnavailable),
		errors.Is(err, service.ErrComputerNotBusy),
		errors.Is(err, service.ErrNoCurrentTariff):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
