// Package queue defines message payloads exchanged over the message
// broker and the background consumer that processes them.
package queue

// SessionClosedEvent is published when a session is closed and settled.
// It carries enough information for downstream consumers to log,
// notify, or feed analytics without querying the primary database.
type SessionClosedEvent struct {
	SessionID      string `json:"session_id"`
	ClientID       string `json:"client_id"`
	ClientNickname string `json:"client_nickname"`
	ComputerNumber int    `json:"computer_number"`
	TariffName     string `json:"tariff_name"`
	Minutes        int64  `json:"minutes"`
	TotalCost      string `json:"total_cost"`
	PaymentType    string `json:"payment_type"`
	ClosedAt       string `json:"closed_at"`
}
