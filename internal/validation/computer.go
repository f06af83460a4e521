package validation

import (
	"context"
	"errors"
	"fmt"

	"computer-club/internal/model"
	"computer-club/internal/repository"
)

const (
	minComputerNumber = 1
	maxComputerNumber = 9999
)

// ComputerValidator checks workstation records, including the station
// number uniqueness constraint.
type ComputerValidator struct {
	computers repository.ComputerRepository
}

// NewComputerValidator returns a validator backed by the given repository.
func NewComputerValidator(computers repository.ComputerRepository) *ComputerValidator {
	return &ComputerValidator{computers: computers}
}

// Validate runs every computer rule and returns the collected report.
func (v *ComputerValidator) Validate(ctx context.Context, c model.Computer) Result {
	errs := Result{}

	if c.Number < minComputerNumber {
		errs.Add("number", fmt.Sprintf("computer number must be at least %d", minComputerNumber))
	}
	if c.Number > maxComputerNumber {
		errs.Add("number", fmt.Sprintf("computer number must be at most %d", maxComputerNumber))
	}
	switch c.Type {
	case model.TypeStandard, model.TypeVIP:
	default:
		errs.Add("type", "computer type must be STANDARD or VIP")
	}
	switch c.Status {
	case model.StatusFree, model.StatusBusy, model.StatusOffline:
	default:
		errs.Add("status", "computer status must be FREE, BUSY or OFFLINE")
	}

	v.validateNumberUniqueness(ctx, c, errs)

	return errs
}

func (v *ComputerValidator) validateNumberUniqueness(ctx context.Context, c model.Computer, errs Result) {
	existing, err := v.computers.FindByNumber(ctx, c.Number)
	if errors.Is(err, repository.ErrNotFound) {
		return
	}
	if err == nil && existing.ID != c.ID {
		errs.Add("number", fmt.Sprintf("computer with number %d already exists", c.Number))
	}
}
