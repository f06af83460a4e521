package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"computer-club/internal/model"
	"computer-club/internal/repository"
	"computer-club/internal/uow"
	"computer-club/internal/validation"
)

// Statistics aggregates payments over a period.
type Statistics struct {
	TotalPayments int             `json:"total_payments"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	CashAmount    decimal.Decimal `json:"cash_amount"`
	CardAmount    decimal.Decimal `json:"card_amount"`
}

// PaymentService records settlements and produces revenue reports.
type PaymentService struct {
	payments  repository.PaymentRepository
	validator *validation.PaymentValidator
	uow       *uow.UnitOfWork[model.Payment]
}

// NewPaymentService builds a service over the given repository.
func NewPaymentService(payments repository.PaymentRepository) *PaymentService {
	return &PaymentService{
		payments:  payments,
		validator: validation.NewPaymentValidator(),
		uow:       uow.New(payments, model.Payment.EntityID),
	}
}

// Register validates and stores a payment for a session.
func (s *PaymentService) Register(ctx context.Context, sessionID uuid.UUID, amount decimal.Decimal, typ model.PaymentType) (model.Payment, error) {
	payment := model.NewPayment(sessionID, amount, typ)
	if err := s.validator.Validate(ctx, payment).AsError(); err != nil {
		return model.Payment{}, err
	}
	s.uow.RegisterNew(payment)
	if err := s.uow.Commit(ctx); err != nil {
		return model.Payment{}, err
	}
	return payment, nil
}

// FindBySession returns the payment settling the given session.
func (s *PaymentService) FindBySession(ctx context.Context, sessionID uuid.UUID) (model.Payment, error) {
	return s.payments.FindBySessionID(ctx, sessionID)
}

// FindBetween returns payments taken in [start, end].
func (s *PaymentService) FindBetween(ctx context.Context, start, end time.Time) ([]model.Payment, error) {
	return s.payments.FindBetween(ctx, start, end)
}

// GetStatistics aggregates the payments taken in [start, end] into a
// total along with per-type breakdowns.
func (s *PaymentService) GetStatistics(ctx context.Context, start, end time.Time) (Statistics, error) {
	payments, err := s.payments.FindBetween(ctx, start, end)
	if err != nil {
		return Statistics{}, err
	}
	stats := Statistics{
		TotalAmount: decimal.Zero,
		CashAmount:  decimal.Zero,
		CardAmount:  decimal.Zero,
	}
	for _, p := range payments {
		stats.TotalPayments++
		stats.TotalAmount = stats.TotalAmount.Add(p.Amount)
		switch p.Type {
		case model.PaymentCash:
			stats.CashAmount = stats.CashAmount.Add(p.Amount)
		case model.PaymentCard:
			stats.CardAmount = stats.CardAmount.Add(p.Amount)
		}
	}
	return stats, nil
}

// DailyRevenue sums all payments taken on the given calendar day.
func (s *PaymentService) DailyRevenue(ctx context.Context, day time.Time) (decimal.Decimal, error) {
	return s.payments.TotalRevenue(ctx, day)
}
