package handler // computer.go exposes workstation management endpoints

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"computer-club/internal/model"
	"computer-club/internal/service"
)

// ComputerHandler bundles dependencies for workstation endpoints.
type ComputerHandler struct {
	Computers *service.ComputerService
}

func NewComputerHandler(computers *service.ComputerService) *ComputerHandler {
	return &ComputerHandler{Computers: computers}
}

type createComputerReq struct {
	Number int    `json:"number"`
	Type   string `json:"type"` // STANDARD | VIP
}

// Create handles POST /v1/computers.
func (h *ComputerHandler) Create(c echo.Context) error {
	var req createComputerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	typ := model.ComputerType(strings.ToUpper(strings.TrimSpace(req.Type)))
	if typ != model.TypeVIP {
		typ = model.TypeStandard
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	comp, err := h.Computers.Create(ctx, req.Number, typ)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, comp)
}

// List handles GET /v1/computers with an optional ?status= filter.
func (h *ComputerHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if raw := strings.TrimSpace(c.QueryParam("status")); raw != "" {
		status := model.ComputerStatus(strings.ToUpper(raw))
		items, err := h.Computers.ListByStatus(ctx, status)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"items": items})
	}
	items, err := h.Computers.List(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/computers/:id.
func (h *ComputerHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	comp, err := h.Computers.Get(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, comp)
}

type statusReq struct {
	Status string `json:"status"` // FREE | BUSY | OFFLINE
}

// UpdateStatus handles PATCH /v1/computers/:id/status.  It is the
// operator's switch for taking a machine offline for maintenance and
// bringing it back.
func (h *ComputerHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := model.ComputerStatus(strings.ToUpper(strings.TrimSpace(req.Status)))

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Computers.UpdateStatus(ctx, id, status); err != nil {
		return writeError(c, err)
	}
	comp, err := h.Computers.Get(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, comp)
}

// Delete handles DELETE /v1/computers/:id.  Busy machines are refused.
func (h *ComputerHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Computers.Delete(ctx, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
