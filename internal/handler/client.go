package handler // client.go exposes client account endpoints

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"computer-club/internal/service"
)

// ClientHandler bundles dependencies for client endpoints.
type ClientHandler struct {
	Clients *service.ClientService
}

func NewClientHandler(clients *service.ClientService) *ClientHandler {
	return &ClientHandler{Clients: clients}
}

type createClientReq struct {
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

// Create handles POST /v1/clients.  New clients start with a zero
// balance, zero visits and no discount.
func (h *ClientHandler) Create(c echo.Context) error {
	var req createClientReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	client, err := h.Clients.Create(ctx, strings.TrimSpace(req.Nickname), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, client)
}

// List handles GET /v1/clients with optional ?name= and ?email= filters.
func (h *ClientHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if email := strings.TrimSpace(c.QueryParam("email")); email != "" {
		client, err := h.Clients.FindByEmail(ctx, strings.ToLower(email))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"items": []any{client}})
	}
	if name := strings.TrimSpace(c.QueryParam("name")); name != "" {
		items, err := h.Clients.FindByName(ctx, name)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"items": items})
	}
	items, err := h.Clients.List(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/clients/:id.
func (h *ClientHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	client, err := h.Clients.Get(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, client)
}

type balanceReq struct {
	Amount    decimal.Decimal `json:"amount"`
	Direction string          `json:"direction"` // deposit (default) | deduct
}

// Balance handles POST /v1/clients/:id/balance.  Deposits must fall in
// the accepted range; deductions are refused when funds are short.
func (h *ClientHandler) Balance(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req balanceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	var client any
	switch strings.ToLower(strings.TrimSpace(req.Direction)) {
	case "", "deposit":
		client, err = h.Clients.AddBalance(ctx, id, req.Amount)
	case "deduct":
		client, err = h.Clients.DeductBalance(ctx, id, req.Amount)
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "direction must be deposit or deduct"})
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, client)
}

type discountReq struct {
	Discount decimal.Decimal `json:"discount"`
}

// Discount handles PATCH /v1/clients/:id/discount, overriding the
// loyalty tier with a custom percentage.
func (h *ClientHandler) Discount(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req discountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	client, err := h.Clients.SetCustomDiscount(ctx, id, req.Discount)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, client)
}

// VIP handles GET /v1/clients/vip, returning clients whose discount has
// reached the VIP tier.
func (h *ClientHandler) VIP(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	items, err := h.Clients.FindVIP(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// New handles GET /v1/clients/new?days=N, listing clients registered in
// the last N days (default 7).
func (h *ClientHandler) New(c echo.Context) error {
	days := 7
	if raw := strings.TrimSpace(c.QueryParam("days")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid days"})
		}
		days = n
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	items, err := h.Clients.FindNew(ctx, days)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
