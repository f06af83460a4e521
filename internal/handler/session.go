package handler // session.go exposes the session lifecycle endpoints

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"computer-club/internal/service"
)

// SessionHandler bundles dependencies for session endpoints.
type SessionHandler struct {
	Sessions *service.SessionService
}

func NewSessionHandler(sessions *service.SessionService) *SessionHandler {
	return &SessionHandler{Sessions: sessions}
}

type startSessionReq struct {
	ClientID   string `json:"client_id"`
	ComputerID string `json:"computer_id"`
	TariffID   string `json:"tariff_id"` // optional, resolves the current window when empty
}

// Start handles POST /v1/sessions.
func (h *SessionHandler) Start(c echo.Context) error {
	var req startSessionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	clientID, err := uuid.Parse(strings.TrimSpace(req.ClientID))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid client_id"})
	}
	computerID, err := uuid.Parse(strings.TrimSpace(req.ComputerID))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid computer_id"})
	}
	tariffID := uuid.Nil
	if raw := strings.TrimSpace(req.TariffID); raw != "" {
		tariffID, err = uuid.Parse(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tariff_id"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	sess, err := h.Sessions.StartSession(ctx, clientID, computerID, tariffID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, sess)
}

type endSessionReq struct {
	EndTime *time.Time `json:"end_time"` // optional, defaults to now
}

// End handles POST /v1/sessions/:id/end.  The bill is settled against
// the client's balance and a payment record is written.
func (h *SessionHandler) End(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req endSessionReq
	_ = c.Bind(&req) // empty body means "end now"
	endTime := time.Now().UTC()
	if req.EndTime != nil {
		endTime = req.EndTime.UTC()
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	sess, err := h.Sessions.EndSession(ctx, id, endTime)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, sess)
}

// ForceEnd handles POST /v1/sessions/:id/force-end.  The acting
// administrator is taken from the token and recorded in the audit log.
func (h *SessionHandler) ForceEnd(c echo.Context) error {
	adminID, err := getAdminID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	sess, err := h.Sessions.ForceEndSession(ctx, adminID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, sess)
}

// List handles GET /v1/sessions with optional ?client_id=, ?computer_id=
// and ?from=/&to= (RFC 3339) filters.
func (h *SessionHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if raw := strings.TrimSpace(c.QueryParam("client_id")); raw != "" {
		clientID, err := uuid.Parse(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid client_id"})
		}
		items, err := h.Sessions.FindByClient(ctx, clientID)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"items": items})
	}
	if raw := strings.TrimSpace(c.QueryParam("computer_id")); raw != "" {
		computerID, err := uuid.Parse(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid computer_id"})
		}
		items, err := h.Sessions.FindByComputer(ctx, computerID)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"items": items})
	}
	if from, to := strings.TrimSpace(c.QueryParam("from")), strings.TrimSpace(c.QueryParam("to")); from != "" && to != "" {
		start, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid from"})
		}
		end, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid to"})
		}
		items, err := h.Sessions.FindBetween(ctx, start, end)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"items": items})
	}
	items, err := h.Sessions.List(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Active handles GET /v1/sessions/active.
func (h *SessionHandler) Active(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	items, err := h.Sessions.ActiveSessions(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/sessions/:id.
func (h *SessionHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	sess, err := h.Sessions.Get(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, sess)
}
