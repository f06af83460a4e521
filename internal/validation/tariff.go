package validation

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"computer-club/internal/model"
	"computer-club/internal/repository"
)

var (
	minPricePerHour = decimal.RequireFromString("5.00")
	maxPricePerHour = decimal.RequireFromString("500.00")
)

// TariffValidator checks tariff records: name presence and uniqueness,
// the hourly price bounds and the active-window ordering rule.  A night
// tariff may wrap past midnight; a day tariff must start strictly
// before it ends.
type TariffValidator struct {
	tariffs repository.TariffRepository
}

// NewTariffValidator returns a validator backed by the given repository.
func NewTariffValidator(tariffs repository.TariffRepository) *TariffValidator {
	return &TariffValidator{tariffs: tariffs}
}

// Validate runs every tariff rule and returns the collected report.
func (v *TariffValidator) Validate(ctx context.Context, t model.Tariff) Result {
	errs := Result{}

	if t.Name == "" {
		errs.Add("name", "tariff name is required")
	}
	if t.PricePerHour.LessThan(minPricePerHour) {
		errs.Add("pricePerHour", "minimum price is "+minPricePerHour.StringFixed(2)+" per hour")
	}
	if t.PricePerHour.GreaterThan(maxPricePerHour) {
		errs.Add("pricePerHour", "maximum price is "+maxPricePerHour.StringFixed(2)+" per hour")
	}
	v.validateWindow(t, errs)
	v.validateNameUniqueness(ctx, t, errs)

	return errs
}

func (v *TariffValidator) validateWindow(t model.Tariff, errs Result) {
	if t.StartHour < 0 || t.StartHour > 23 || t.EndHour < 0 || t.EndHour > 23 {
		errs.Add("time", "hours must be in the range 0 to 23")
		return
	}
	if !t.IsNight && t.StartHour >= t.EndHour {
		errs.Add("time", "start hour must be before end hour for a day tariff")
	}
}

func (v *TariffValidator) validateNameUniqueness(ctx context.Context, t model.Tariff, errs Result) {
	existing, err := v.tariffs.FindByName(ctx, t.Name)
	if errors.Is(err, repository.ErrNotFound) {
		return
	}
	if err == nil && existing.ID != t.ID {
		errs.Add("name", "tariff with name '"+t.Name+"' already exists")
	}
}
