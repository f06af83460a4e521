package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"computer-club/internal/logger"
	"computer-club/internal/model"
	"computer-club/internal/repository"
	"computer-club/internal/uow"
	"computer-club/internal/validation"
)

// Loyalty tier thresholds: the discount percent is recomputed from the
// total visit count on every registered visit, never accumulated.
const (
	visitsFor5Percent  = 10
	visitsFor10Percent = 25
	visitsFor15Percent = 50
	visitsFor20Percent = 100
)

var vipDiscountFloor = decimal.NewFromInt(15)

// ClientService manages client accounts: registration, balance
// movements, visit registration and the loyalty discount tiers.
type ClientService struct {
	clients   repository.ClientRepository
	validator *validation.ClientValidator
	uow       *uow.UnitOfWork[model.Client]
}

// NewClientService builds a service over the given repository.
func NewClientService(clients repository.ClientRepository) *ClientService {
	return &ClientService{
		clients:   clients,
		validator: validation.NewClientValidator(clients),
		uow:       uow.New(clients, model.Client.EntityID),
	}
}

// Create validates and stores a new client with zero balance, zero
// visits and no discount.
func (s *ClientService) Create(ctx context.Context, nickname, email string) (model.Client, error) {
	client := model.NewClient(nickname, email)
	if err := s.validator.Validate(ctx, client).AsError(); err != nil {
		return model.Client{}, err
	}
	s.uow.RegisterNew(client)
	if err := s.uow.Commit(ctx); err != nil {
		return model.Client{}, err
	}
	return client, nil
}

// AddBalance tops up a client's balance.  The amount must fall within
// the deposit bounds.
func (s *ClientService) AddBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (model.Client, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return model.Client{}, fmt.Errorf("add balance: %w", err)
	}
	if err := s.validator.ValidateDeposit(amount).AsError(); err != nil {
		return model.Client{}, err
	}
	client.Balance = client.Balance.Add(amount)
	s.uow.RegisterDirty(client)
	if err := s.uow.Commit(ctx); err != nil {
		return model.Client{}, err
	}
	return client, nil
}

// DeductBalance withdraws from a client's balance.  The deduction is
// refused when the amount is not positive or exceeds the balance; the
// session settlement path uses Charge instead.
func (s *ClientService) DeductBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (model.Client, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return model.Client{}, fmt.Errorf("deduct balance: %w", err)
	}
	if err := s.validator.ValidateDeduction(client, amount).AsError(); err != nil {
		return model.Client{}, err
	}
	client.Balance = client.Balance.Sub(amount)
	s.uow.RegisterDirty(client)
	if err := s.uow.Commit(ctx); err != nil {
		return model.Client{}, err
	}
	return client, nil
}

// Charge deducts a session cost from the client's balance without the
// sufficient-funds check.  Settlement is allowed to overdraw; the debt
// is surfaced on the account rather than blocking the close.
func (s *ClientService) Charge(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (model.Client, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return model.Client{}, fmt.Errorf("charge client: %w", err)
	}
	client.Balance = client.Balance.Sub(amount)
	if client.Balance.IsNegative() {
		logger.Warn("client balance overdrawn",
			zap.String("client_id", id.String()),
			zap.String("balance", client.Balance.StringFixed(2)))
	}
	s.uow.RegisterDirty(client)
	if err := s.uow.Commit(ctx); err != nil {
		return model.Client{}, err
	}
	return client, nil
}

// RegisterVisit increments the client's visit count and recomputes the
// loyalty discount tier from the new total.
func (s *ClientService) RegisterVisit(ctx context.Context, id uuid.UUID) (model.Client, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return model.Client{}, fmt.Errorf("register visit: %w", err)
	}
	client.VisitCount++
	client.DiscountPercent = loyaltyDiscount(client.VisitCount)
	if err := s.validator.ValidateVisit(client).AsError(); err != nil {
		return model.Client{}, err
	}
	s.uow.RegisterDirty(client)
	if err := s.uow.Commit(ctx); err != nil {
		return model.Client{}, err
	}
	return client, nil
}

// SetCustomDiscount overrides the client's discount percent.
func (s *ClientService) SetCustomDiscount(ctx context.Context, id uuid.UUID, discount decimal.Decimal) (model.Client, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return model.Client{}, fmt.Errorf("set discount: %w", err)
	}
	client.DiscountPercent = discount
	if err := s.validator.Validate(ctx, client).AsError(); err != nil {
		return model.Client{}, err
	}
	s.uow.RegisterDirty(client)
	if err := s.uow.Commit(ctx); err != nil {
		return model.Client{}, err
	}
	return client, nil
}

// Get returns a client by id.
func (s *ClientService) Get(ctx context.Context, id uuid.UUID) (model.Client, error) {
	return s.clients.FindByID(ctx, id)
}

// List returns every client.
func (s *ClientService) List(ctx context.Context) ([]model.Client, error) {
	return s.clients.FindAll(ctx)
}

// FindVIP returns clients with a discount of 15 percent or more.
func (s *ClientService) FindVIP(ctx context.Context) ([]model.Client, error) {
	all, err := s.clients.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	vip := make([]model.Client, 0)
	for _, c := range all {
		if c.DiscountPercent.GreaterThanOrEqual(vipDiscountFloor) {
			vip = append(vip, c)
		}
	}
	return vip, nil
}

// FindNew returns clients registered within the last given number of days.
func (s *ClientService) FindNew(ctx context.Context, days int) ([]model.Client, error) {
	all, err := s.clients.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	threshold := time.Now().UTC().AddDate(0, 0, -days)
	recent := make([]model.Client, 0)
	for _, c := range all {
		if c.RegisteredAt.After(threshold) {
			recent = append(recent, c)
		}
	}
	return recent, nil
}

// FindByEmail returns the client with the given email.
func (s *ClientService) FindByEmail(ctx context.Context, email string) (model.Client, error) {
	return s.clients.FindByEmail(ctx, email)
}

// FindByName returns clients whose nickname contains the fragment.
func (s *ClientService) FindByName(ctx context.Context, fragment string) ([]model.Client, error) {
	return s.clients.FindByNameContaining(ctx, fragment)
}

// loyaltyDiscount maps a total visit count to its discount tier.
func loyaltyDiscount(visitCount int) decimal.Decimal {
	switch {
	case visitCount >= visitsFor20Percent:
		return decimal.NewFromInt(20)
	case visitCount >= visitsFor15Percent:
		return decimal.NewFromInt(15)
	case visitCount >= visitsFor10Percent:
		return decimal.NewFromInt(10)
	case visitCount >= visitsFor5Percent:
		return decimal.NewFromInt(5)
	default:
		return decimal.Zero
	}
}
