package model

import "github.com/google/uuid"

// ComputerStatus enumerates the availability states of a club computer.
// Status is the only mutable field on a Computer and acts as the
// admission gate for new sessions: only a FREE computer can be occupied.
type ComputerStatus string

const (
	StatusFree    ComputerStatus = "FREE"    // available for a new session
	StatusBusy    ComputerStatus = "BUSY"    // currently occupied by a session
	StatusOffline ComputerStatus = "OFFLINE" // under maintenance, not bookable
)

// ComputerType distinguishes ordinary workstations from VIP ones.
type ComputerType string

const (
	TypeStandard ComputerType = "STANDARD"
	TypeVIP      ComputerType = "VIP"
)

// Computer represents a single workstation in the club.
//
// Fields:
//  ID     – identity of the record.
//  Number – human-facing station number, unique across the club.
//  Type   – STANDARD or VIP.
//  Status – FREE, BUSY or OFFLINE.
type Computer struct {
	ID     uuid.UUID      `json:"id"`
	Number int            `json:"number"`
	Type   ComputerType   `json:"type"`
	Status ComputerStatus `json:"status"`
}

// NewComputer builds a computer with a fresh identity in the FREE state.
func NewComputer(number int, typ ComputerType) Computer {
	return Computer{
		ID:     uuid.New(),
		Number: number,
		Type:   typ,
		Status: StatusFree,
	}
}

// EntityID returns the record identity.
func (c Computer) EntityID() uuid.UUID { return c.ID }
