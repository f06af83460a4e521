package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"computer-club/internal/model"
)

func TestGetStatistics(t *testing.T) {
	svc := NewPaymentService(newMemPaymentRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, uuid.New(), decimal.RequireFromString("150.00"), model.PaymentCash); err != nil {
		t.Fatalf("register cash payment: %v", err)
	}
	if _, err := svc.Register(ctx, uuid.New(), decimal.RequireFromString("45.50"), model.PaymentCard); err != nil {
		t.Fatalf("register card payment: %v", err)
	}
	if _, err := svc.Register(ctx, uuid.New(), decimal.RequireFromString("4.50"), model.PaymentCash); err != nil {
		t.Fatalf("register cash payment: %v", err)
	}

	now := time.Now().UTC()
	stats, err := svc.GetStatistics(ctx, now.Add(-time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if stats.TotalPayments != 3 {
		t.Errorf("total payments: got %d, want 3", stats.TotalPayments)
	}
	if got := stats.TotalAmount.StringFixed(2); got != "200.00" {
		t.Errorf("total amount: got %s, want 200.00", got)
	}
	if got := stats.CashAmount.StringFixed(2); got != "154.50" {
		t.Errorf("cash amount: got %s, want 154.50", got)
	}
	if got := stats.CardAmount.StringFixed(2); got != "45.50" {
		t.Errorf("card amount: got %s, want 45.50", got)
	}
}

func TestRegisterPaymentBounds(t *testing.T) {
	svc := NewPaymentService(newMemPaymentRepo())
	ctx := context.Background()

	for _, amount := range []string{"0.00", "-5.00", "1000000.01"} {
		if _, err := svc.Register(ctx, uuid.New(), decimal.RequireFromString(amount), model.PaymentCash); err == nil {
			t.Errorf("payment of %s should be rejected", amount)
		}
	}
	if _, err := svc.Register(ctx, uuid.New(), decimal.RequireFromString("0.01"), model.PaymentCash); err != nil {
		t.Errorf("minimum payment rejected: %v", err)
	}
}

func TestDailyRevenue(t *testing.T) {
	repo := newMemPaymentRepo()
	svc := NewPaymentService(repo)
	ctx := context.Background()

	today, err := svc.Register(ctx, uuid.New(), decimal.RequireFromString("100.00"), model.PaymentCash)
	if err != nil {
		t.Fatalf("register payment: %v", err)
	}
	// A payment from yesterday must not count toward today.
	old := model.NewPayment(uuid.New(), decimal.RequireFromString("77.00"), model.PaymentCard)
	old.PaymentTime = old.PaymentTime.AddDate(0, 0, -1)
	repo.items[old.ID] = old

	total, err := svc.DailyRevenue(ctx, today.PaymentTime)
	if err != nil {
		t.Fatalf("daily revenue: %v", err)
	}
	if got := total.StringFixed(2); got != "100.00" {
		t.Errorf("daily revenue: got %s, want 100.00", got)
	}

	yesterday, err := svc.DailyRevenue(ctx, old.PaymentTime)
	if err != nil {
		t.Fatalf("daily revenue yesterday: %v", err)
	}
	if got := yesterday.StringFixed(2); got != "77.00" {
		t.Errorf("yesterday revenue: got %s, want 77.00", got)
	}
}
