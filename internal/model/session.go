package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Session is the aggregate root of one billing transaction.  It is
// created active and mutated exactly once, at close, after which it is
// terminal.  Client, computer and tariff are referenced by identity and
// resolved through their repositories.
//
// Invariants:
//  - TotalCost is nil while EndTime is nil and set once EndTime is set.
//  - EndTime is strictly after StartTime.
//  - At most one session with a nil EndTime exists per client and per
//    computer at any time.
type Session struct {
	ID         uuid.UUID        `json:"id"`
	ClientID   uuid.UUID        `json:"client_id"`
	ComputerID uuid.UUID        `json:"computer_id"`
	TariffID   uuid.UUID        `json:"tariff_id"`
	StartTime  time.Time        `json:"start_time"`
	EndTime    *time.Time       `json:"end_time,omitempty"`
	TotalCost  *decimal.Decimal `json:"total_cost,omitempty"`
	IsActive   bool             `json:"is_active"`
}

// NewSession builds an active session starting now.
func NewSession(clientID, computerID, tariffID uuid.UUID) Session {
	return Session{
		ID:         uuid.New(),
		ClientID:   clientID,
		ComputerID: computerID,
		TariffID:   tariffID,
		StartTime:  time.Now().UTC(),
		IsActive:   true,
	}
}

// Closed returns a copy of the session with the end time and total cost
// set and the active flag dropped.  The receiver is not modified.
func (s Session) Closed(endTime time.Time, totalCost decimal.Decimal) Session {
	s.EndTime = &endTime
	s.TotalCost = &totalCost
	s.IsActive = false
	return s
}

// EntityID returns the record identity.
func (s Session) EntityID() uuid.UUID { return s.ID }
