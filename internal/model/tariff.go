package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tariff is a named hourly rate active during a window of the day.
// A night tariff is allowed to wrap past midnight (start after end);
// a day tariff must start strictly before it ends.
//
// Fields:
//  ID           – identity of the record.
//  Name         – unique tariff name.
//  PricePerHour – hourly rate, bounded [5.00, 500.00].
//  StartHour    – time of day the tariff becomes active.
//  EndHour      – time of day the tariff stops being active (exclusive).
//  IsNight      – permits the [start, end) window to wrap midnight.
type Tariff struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	PricePerHour decimal.Decimal `json:"price_per_hour"`
	StartHour    int             `json:"start_hour"`
	EndHour      int             `json:"end_hour"`
	IsNight      bool            `json:"is_night"`
}

// NewTariff builds a tariff with a fresh identity.
func NewTariff(name string, pricePerHour decimal.Decimal, startHour, endHour int, isNight bool) Tariff {
	return Tariff{
		ID:           uuid.New(),
		Name:         name,
		PricePerHour: pricePerHour,
		StartHour:    startHour,
		EndHour:      endHour,
		IsNight:      isNight,
	}
}

// EntityID returns the record identity.
func (t Tariff) EntityID() uuid.UUID { return t.ID }

// ActiveAt reports whether the tariff window covers the given moment's
// hour of day.  Night tariffs wrap past midnight, so the window
// [22, 6) matches 23:00 as well as 03:00.
func (t Tariff) ActiveAt(now time.Time) bool {
	h := now.Hour()
	if t.IsNight && t.StartHour > t.EndHour {
		return h >= t.StartHour || h < t.EndHour
	}
	return h >= t.StartHour && h < t.EndHour
}
