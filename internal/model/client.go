package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Client is a registered customer of the club.  The balance is charged
// when a session closes and the discount percent is recomputed from the
// visit count on every registered visit.
//
// Fields:
//  ID              – identity of the record.
//  Nickname        – unique display name, 3–50 word characters.
//  Email           – unique contact address.
//  Balance         – prepaid funds; settlement may overdraw it.
//  VisitCount      – number of completed visits.
//  DiscountPercent – loyalty discount in [0,100].
//  RegisteredAt    – when the client signed up, never in the future.
type Client struct {
	ID              uuid.UUID       `json:"id"`
	Nickname        string          `json:"nickname"`
	Email           string          `json:"email"`
	Balance         decimal.Decimal `json:"balance"`
	VisitCount      int             `json:"visit_count"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	RegisteredAt    time.Time       `json:"registered_at"`
}

// NewClient builds a client with a fresh identity, zero balance, zero
// visits and no discount, registered now.
func NewClient(nickname, email string) Client {
	return Client{
		ID:              uuid.New(),
		Nickname:        nickname,
		Email:           email,
		Balance:         decimal.Zero,
		VisitCount:      0,
		DiscountPercent: decimal.Zero,
		RegisteredAt:    time.Now().UTC(),
	}
}

// EntityID returns the record identity.
func (c Client) EntityID() uuid.UUID { return c.ID }
