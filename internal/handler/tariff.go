package handler // tariff.go exposes tariff management endpoints

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"computer-club/internal/service"
)

// TariffHandler bundles dependencies for tariff endpoints.
type TariffHandler struct {
	Tariffs *service.TariffService
}

func NewTariffHandler(tariffs *service.TariffService) *TariffHandler {
	return &TariffHandler{Tariffs: tariffs}
}

type createTariffReq struct {
	Name         string          `json:"name"`
	PricePerHour decimal.Decimal `json:"price_per_hour"`
	StartHour    int             `json:"start_hour"`
	EndHour      int             `json:"end_hour"`
	IsNight      bool            `json:"is_night"`
}

// Create handles POST /v1/tariffs.
func (h *TariffHandler) Create(c echo.Context) error {
	var req createTariffReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	tariff, err := h.Tariffs.Create(ctx, strings.TrimSpace(req.Name), req.PricePerHour, req.StartHour, req.EndHour, req.IsNight)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, tariff)
}

// List handles GET /v1/tariffs.
func (h *TariffHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	items, err := h.Tariffs.List(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Current handles GET /v1/tariffs/current, resolving the tariff whose
// window covers the current wall-clock time.
func (h *TariffHandler) Current(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	tariff, err := h.Tariffs.CurrentTariff(ctx, time.Now().UTC())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, tariff)
}

// Get handles GET /v1/tariffs/:id.
func (h *TariffHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	tariff, err := h.Tariffs.Get(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, tariff)
}

// Delete handles DELETE /v1/tariffs/:id.
func (h *TariffHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Tariffs.Delete(ctx, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
