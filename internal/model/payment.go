package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentType enumerates how a payment was made.
type PaymentType string

const (
	PaymentCash PaymentType = "CASH"
	PaymentCard PaymentType = "CARD"
)

// Payment records the settlement of a closed session.  Exactly one
// payment is materialized per closed session in the base flow.
//
// Fields:
//  ID          – identity of the record.
//  SessionID   – the session being settled.
//  Amount      – amount paid, in (0, 1000000].
//  PaymentTime – when the payment was taken, never in the future.
//  Type        – CASH or CARD.
type Payment struct {
	ID          uuid.UUID       `json:"id"`
	SessionID   uuid.UUID       `json:"session_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentTime time.Time       `json:"payment_time"`
	Type        PaymentType     `json:"type"`
}

// NewPayment builds a payment taken now for the given session.
func NewPayment(sessionID uuid.UUID, amount decimal.Decimal, typ PaymentType) Payment {
	return Payment{
		ID:          uuid.New(),
		SessionID:   sessionID,
		Amount:      amount,
		PaymentTime: time.Now().UTC(),
		Type:        typ,
	}
}

// EntityID returns the record identity.
func (p Payment) EntityID() uuid.UUID { return p.ID }
