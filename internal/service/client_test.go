package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"computer-club/internal/validation"
)

func TestLoyaltyDiscount(t *testing.T) {
	tests := []struct {
		visits int
		want   string
	}{
		{0, "0"},
		{9, "0"},
		{10, "5"},
		{24, "5"},
		{25, "10"},
		{49, "10"},
		{50, "15"},
		{99, "15"},
		{100, "20"},
		{500, "20"},
	}
	for _, tt := range tests {
		if got := loyaltyDiscount(tt.visits); got.String() != tt.want {
			t.Errorf("loyaltyDiscount(%d): got %s, want %s", tt.visits, got, tt.want)
		}
	}
}

func TestRegisterVisitCrossesTier(t *testing.T) {
	repo := newMemClientRepo()
	svc := NewClientService(repo)
	ctx := context.Background()

	client, err := svc.Create(ctx, "regular", "regular@club.test")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	// The ninth visit stays below the first tier, the tenth crosses it.
	stored := repo.items[client.ID]
	stored.VisitCount = 8
	repo.items[client.ID] = stored

	c, err := svc.RegisterVisit(ctx, client.ID)
	if err != nil {
		t.Fatalf("register ninth visit: %v", err)
	}
	if !c.DiscountPercent.IsZero() {
		t.Errorf("after 9 visits: got %s%%, want 0%%", c.DiscountPercent)
	}

	c, err = svc.RegisterVisit(ctx, client.ID)
	if err != nil {
		t.Fatalf("register tenth visit: %v", err)
	}
	if c.DiscountPercent.String() != "5" {
		t.Errorf("after 10 visits: got %s%%, want 5%%", c.DiscountPercent)
	}
}

func TestDeductBalanceRequiresFunds(t *testing.T) {
	svc := NewClientService(newMemClientRepo())
	ctx := context.Background()

	client, err := svc.Create(ctx, "careful", "careful@club.test")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	if _, err := svc.AddBalance(ctx, client.ID, decimal.RequireFromString("50.00")); err != nil {
		t.Fatalf("top up: %v", err)
	}

	if _, err := svc.DeductBalance(ctx, client.ID, decimal.RequireFromString("60.00")); err == nil {
		t.Fatal("expected deduction above the balance to fail")
	}
	c, err := svc.DeductBalance(ctx, client.ID, decimal.RequireFromString("20.00"))
	if err != nil {
		t.Fatalf("valid deduction: %v", err)
	}
	if got := c.Balance.StringFixed(2); got != "30.00" {
		t.Errorf("balance: got %s, want 30.00", got)
	}
}

func TestAddBalanceBounds(t *testing.T) {
	svc := NewClientService(newMemClientRepo())
	ctx := context.Background()

	client, err := svc.Create(ctx, "depositer", "deposit@club.test")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	for _, amount := range []string{"5.00", "10000.01", "-1.00"} {
		if _, err := svc.AddBalance(ctx, client.ID, decimal.RequireFromString(amount)); err == nil {
			t.Errorf("deposit of %s should be rejected", amount)
		}
	}
	if _, err := svc.AddBalance(ctx, client.ID, decimal.RequireFromString("10.00")); err != nil {
		t.Errorf("minimum deposit rejected: %v", err)
	}
}

func TestCreateClientRejectsDuplicates(t *testing.T) {
	svc := NewClientService(newMemClientRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, "taken", "taken@club.test"); err != nil {
		t.Fatalf("create client: %v", err)
	}

	var verr *validation.Error
	_, err := svc.Create(ctx, "taken", "other@club.test")
	if !errors.As(err, &verr) || len(verr.Errors.Field("nickname")) == 0 {
		t.Errorf("duplicate nickname: got %v, want a nickname violation", err)
	}
	_, err = svc.Create(ctx, "someone_else", "taken@club.test")
	if !errors.As(err, &verr) || len(verr.Errors.Field("email")) == 0 {
		t.Errorf("duplicate email: got %v, want an email violation", err)
	}
}

func TestFindVIP(t *testing.T) {
	svc := NewClientService(newMemClientRepo())
	ctx := context.Background()

	plain, err := svc.Create(ctx, "plain_user", "plain@club.test")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	vip, err := svc.Create(ctx, "vip_user", "vip@club.test")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	if _, err := svc.SetCustomDiscount(ctx, vip.ID, decimal.NewFromInt(15)); err != nil {
		t.Fatalf("set discount: %v", err)
	}
	if _, err := svc.SetCustomDiscount(ctx, plain.ID, decimal.NewFromInt(10)); err != nil {
		t.Fatalf("set discount: %v", err)
	}

	vips, err := svc.FindVIP(ctx)
	if err != nil {
		t.Fatalf("find vip: %v", err)
	}
	if len(vips) != 1 || vips[0].ID != vip.ID {
		t.Errorf("vip list: got %d entries, want just %q", len(vips), "vip_user")
	}
}
