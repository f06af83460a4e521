package handler // payment.go exposes settlement reporting endpoints

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"computer-club/internal/service"
)

var (
	errInvalidFrom = errors.New("invalid from, want RFC 3339")
	errInvalidTo   = errors.New("invalid to, want RFC 3339")
)

// PaymentHandler bundles dependencies for payment endpoints.
type PaymentHandler struct {
	Payments *service.PaymentService
}

func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{Payments: payments}
}

// List handles GET /v1/payments with optional ?session_id= and
// ?from=/&to= (RFC 3339) filters.
func (h *PaymentHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if raw := strings.TrimSpace(c.QueryParam("session_id")); raw != "" {
		sessionID, err := uuid.Parse(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session_id"})
		}
		payment, err := h.Payments.FindBySession(ctx, sessionID)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"items": []any{payment}})
	}

	start, end, err := parseRange(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	items, err := h.Payments.FindBetween(ctx, start, end)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Stats handles GET /v1/payments/stats?from=&to=, returning the count
// and the total, cash and card amounts over the period.
func (h *PaymentHandler) Stats(c echo.Context) error {
	start, end, err := parseRange(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	stats, err := h.Payments.GetStatistics(ctx, start, end)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// Revenue handles GET /v1/payments/revenue?date=YYYY-MM-DD, returning
// the revenue collected on that calendar day (UTC).  Defaults to today.
func (h *PaymentHandler) Revenue(c echo.Context) error {
	day := time.Now().UTC()
	if raw := strings.TrimSpace(c.QueryParam("date")); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, want YYYY-MM-DD"})
		}
		day = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	total, err := h.Payments.DailyRevenue(ctx, day)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date":    day.Format("2006-01-02"),
		"revenue": total,
	})
}

// parseRange reads the from/to query parameters.  Missing bounds default
// to the last 24 hours ending now.
func parseRange(c echo.Context) (time.Time, time.Time, error) {
	end := time.Now().UTC()
	start := end.Add(-24 * time.Hour)
	if raw := strings.TrimSpace(c.QueryParam("from")); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, time.Time{}, errInvalidFrom
		}
		start = t
	}
	if raw := strings.TrimSpace(c.QueryParam("to")); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, time.Time{}, errInvalidTo
		}
		end = t
	}
	return start, end, nil
}
