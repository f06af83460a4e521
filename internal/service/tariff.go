package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"computer-club/internal/model"
	"computer-club/internal/repository"
	"computer-club/internal/uow"
	"computer-club/internal/validation"
)

var (
	sixty    = decimal.NewFromInt(60)
	oneHundred = decimal.NewFromInt(100)
	costFloor  = decimal.RequireFromString("1.00")
)

// TariffService manages tariffs and implements the cost engine used by
// the session orchestrator.
type TariffService struct {
	tariffs   repository.TariffRepository
	validator *validation.TariffValidator
	uow       *uow.UnitOfWork[model.Tariff]
}

// NewTariffService builds a service over the given repository.
func NewTariffService(tariffs repository.TariffRepository) *TariffService {
	return &TariffService{
		tariffs:   tariffs,
		validator: validation.NewTariffValidator(tariffs),
		uow:       uow.New(tariffs, model.Tariff.EntityID),
	}
}

// Create validates and stores a new tariff.
func (s *TariffService) Create(ctx context.Context, name string, pricePerHour decimal.Decimal, startHour, endHour int, isNight bool) (model.Tariff, error) {
	tariff := model.NewTariff(name, pricePerHour, startHour, endHour, isNight)
	if err := s.validator.Validate(ctx, tariff).AsError(); err != nil {
		return model.Tariff{}, err
	}
	s.uow.RegisterNew(tariff)
	if err := s.uow.Commit(ctx); err != nil {
		return model.Tariff{}, err
	}
	return tariff, nil
}

// Delete removes a tariff by id.
func (s *TariffService) Delete(ctx context.Context, id uuid.UUID) error {
	tariff, err := s.tariffs.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete tariff: %w", err)
	}
	s.uow.RegisterDeleted(tariff)
	return s.uow.Commit(ctx)
}

// Get returns a tariff by id.
func (s *TariffService) Get(ctx context.Context, id uuid.UUID) (model.Tariff, error) {
	return s.tariffs.FindByID(ctx, id)
}

// List returns every tariff.
func (s *TariffService) List(ctx context.Context) ([]model.Tariff, error) {
	return s.tariffs.FindAll(ctx)
}

// CurrentTariff resolves the tariff whose window covers the given
// moment, used when a session is started without an explicit tariff.
func (s *TariffService) CurrentTariff(ctx context.Context, now time.Time) (model.Tariff, error) {
	tariff, err := s.tariffs.FindCurrentTariff(ctx, now)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Tariff{}, ErrNoCurrentTariff
	}
	return tariff, err
}

// CalculateCost computes the amount owed for a session.  Elapsed time
// is converted to hours rounded up to two decimal places, so any
// partial minute consumes a full billing increment.  The discount is
// rounded half-up to two decimal places before subtraction, and the
// final cost never drops below the 1.00 floor; a session always costs
// at least the minimum unit.  Elapsed time under one minute bills as
// exactly one minute.
func (s *TariffService) CalculateCost(tariff model.Tariff, minutes int64, discountPercent decimal.Decimal) decimal.Decimal {
	if minutes < 1 {
		minutes = 1
	}
	hours := decimal.NewFromInt(minutes).Div(sixty).RoundCeil(2)
	baseCost := tariff.PricePerHour.Mul(hours)
	discount := baseCost.Mul(discountPercent).DivRound(oneHundred, 2)
	finalCost := baseCost.Sub(discount)
	if finalCost.LessThan(costFloor) {
		finalCost = costFloor
	}
	return finalCost
}
