package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"computer-club/internal/model"
)

func TestCalculateCost(t *testing.T) {
	svc := NewTariffService(newMemTariffRepo())

	tests := []struct {
		desc     string
		price    string
		minutes  int64
		discount string
		want     string
	}{
		{"90 min at 100/hr", "100.00", 90, "0", "150.00"},
		{"30 min at 100/hr with 10% discount", "100.00", 30, "10", "45.00"},
		{"exactly one hour", "100.00", 60, "0", "100.00"},
		{"heavy discount clamps to the floor", "5.00", 1, "95", "1.00"},
		{"zero minutes billed as one", "100.00", 0, "0", "2.00"},
		{"negative minutes billed as one", "100.00", -30, "0", "2.00"},
		{"partial hour rounds up", "100.00", 61, "0", "102.00"},
		{"full discount clamps to the floor", "100.00", 60, "100", "1.00"},
	}

	for _, tt := range tests {
		tariff := model.NewTariff("day", decimal.RequireFromString(tt.price), 8, 22, false)
		got := svc.CalculateCost(tariff, tt.minutes, decimal.RequireFromString(tt.discount))
		if got.StringFixed(2) != tt.want {
			t.Errorf("%s: got %s, want %s", tt.desc, got.StringFixed(2), tt.want)
		}
	}
}

func TestCurrentTariff(t *testing.T) {
	repo := newMemTariffRepo()
	svc := NewTariffService(repo)
	ctx := context.Background()

	day, err := svc.Create(ctx, "day", decimal.RequireFromString("100.00"), 8, 22, false)
	if err != nil {
		t.Fatalf("create day tariff: %v", err)
	}
	night, err := svc.Create(ctx, "night", decimal.RequireFromString("50.00"), 22, 8, true)
	if err != nil {
		t.Fatalf("create night tariff: %v", err)
	}

	noon := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	got, err := svc.CurrentTariff(ctx, noon)
	if err != nil {
		t.Fatalf("current tariff at noon: %v", err)
	}
	if got.ID != day.ID {
		t.Errorf("at noon: got %q, want %q", got.Name, day.Name)
	}

	// The night window wraps midnight, so both sides must match.
	for _, hour := range []int{23, 3} {
		at := time.Date(2026, 3, 10, hour, 30, 0, 0, time.UTC)
		got, err := svc.CurrentTariff(ctx, at)
		if err != nil {
			t.Fatalf("current tariff at %02d:30: %v", hour, err)
		}
		if got.ID != night.ID {
			t.Errorf("at %02d:30: got %q, want %q", hour, got.Name, night.Name)
		}
	}
}

func TestCurrentTariffNoWindow(t *testing.T) {
	svc := NewTariffService(newMemTariffRepo())
	if _, err := svc.CurrentTariff(context.Background(), time.Now().UTC()); err == nil {
		t.Fatal("expected an error when no tariff window covers the time")
	}
}
