package validation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"computer-club/internal/model"
	"computer-club/internal/repository"
)

// emptyClientRepo satisfies ClientRepository with no stored clients, so
// the uniqueness checks always pass and the format rules can be tested
// in isolation.
type emptyClientRepo struct{}

func (emptyClientRepo) Save(context.Context, model.Client) error   { return nil }
func (emptyClientRepo) Update(context.Context, model.Client) error { return nil }
func (emptyClientRepo) Delete(context.Context, uuid.UUID) error    { return nil }
func (emptyClientRepo) FindByID(context.Context, uuid.UUID) (model.Client, error) {
	return model.Client{}, repository.ErrNotFound
}
func (emptyClientRepo) FindAll(context.Context) ([]model.Client, error) { return nil, nil }
func (emptyClientRepo) FindByEmail(context.Context, string) (model.Client, error) {
	return model.Client{}, repository.ErrNotFound
}
func (emptyClientRepo) FindByNameContaining(context.Context, string) ([]model.Client, error) {
	return nil, nil
}

type emptyTariffRepo struct{}

func (emptyTariffRepo) Save(context.Context, model.Tariff) error   { return nil }
func (emptyTariffRepo) Update(context.Context, model.Tariff) error { return nil }
func (emptyTariffRepo) Delete(context.Context, uuid.UUID) error    { return nil }
func (emptyTariffRepo) FindByID(context.Context, uuid.UUID) (model.Tariff, error) {
	return model.Tariff{}, repository.ErrNotFound
}
func (emptyTariffRepo) FindAll(context.Context) ([]model.Tariff, error) { return nil, nil }
func (emptyTariffRepo) FindByName(context.Context, string) (model.Tariff, error) {
	return model.Tariff{}, repository.ErrNotFound
}
func (emptyTariffRepo) FindCurrentTariff(context.Context, time.Time) (model.Tariff, error) {
	return model.Tariff{}, repository.ErrNotFound
}
func (emptyTariffRepo) FindNightTariffs(context.Context) ([]model.Tariff, error) { return nil, nil }

func TestClientValidatorNickname(t *testing.T) {
	v := NewClientValidator(emptyClientRepo{})
	ctx := context.Background()

	tests := []struct {
		nickname string
		valid    bool
	}{
		{"abc", true},
		{"player_one", true},
		{"A1_b2_C3", true},
		{"ab", false},               // too short
		{"", false},                 // empty
		{"has space", false},        // whitespace
		{"ümlaut", false},           // non-ascii
		{"dash-name", false},        // dash not allowed
		{strings.Repeat("a", 51), false}, // too long
	}
	for _, tt := range tests {
		c := model.NewClient(tt.nickname, "valid@club.test")
		errs := v.Validate(ctx, c)
		if got := len(errs.Field("nickname")) == 0; got != tt.valid {
			t.Errorf("nickname %q: valid=%v, want %v (%v)", tt.nickname, got, tt.valid, errs.Field("nickname"))
		}
	}
}

func TestClientValidatorEmail(t *testing.T) {
	v := NewClientValidator(emptyClientRepo{})
	ctx := context.Background()

	tests := []struct {
		email string
		valid bool
	}{
		{"user@club.test", true},
		{"first.last+tag@sub.domain.io", true},
		{"", false},
		{"not-an-email", false},
		{"missing@tld", false},
		{"@club.test", false},
	}
	for _, tt := range tests {
		c := model.NewClient("valid_nick", tt.email)
		errs := v.Validate(ctx, c)
		if got := len(errs.Field("email")) == 0; got != tt.valid {
			t.Errorf("email %q: valid=%v, want %v", tt.email, got, tt.valid)
		}
	}
}

func TestTariffValidatorWindow(t *testing.T) {
	v := NewTariffValidator(emptyTariffRepo{})
	ctx := context.Background()

	tests := []struct {
		desc       string
		start, end int
		isNight    bool
		valid      bool
	}{
		{"ordinary day window", 8, 22, false, true},
		{"night window wrapping midnight", 22, 6, true, true},
		{"day window with start after end", 22, 6, false, false},
		{"day window with start equal to end", 10, 10, false, false},
		{"hour above 23", 8, 24, false, false},
		{"negative hour", -1, 8, false, false},
	}
	for _, tt := range tests {
		tariff := model.NewTariff("t_"+tt.desc, decimal.RequireFromString("100.00"), tt.start, tt.end, tt.isNight)
		errs := v.Validate(ctx, tariff)
		if got := len(errs.Field("time")) == 0; got != tt.valid {
			t.Errorf("%s: valid=%v, want %v (%v)", tt.desc, got, tt.valid, errs.Field("time"))
		}
	}
}

func TestTariffValidatorPriceBounds(t *testing.T) {
	v := NewTariffValidator(emptyTariffRepo{})
	ctx := context.Background()

	for _, price := range []string{"4.99", "500.01", "0.00"} {
		tariff := model.NewTariff("priced", decimal.RequireFromString(price), 8, 22, false)
		if errs := v.Validate(ctx, tariff); len(errs.Field("pricePerHour")) == 0 {
			t.Errorf("price %s should be rejected", price)
		}
	}
	tariff := model.NewTariff("priced", decimal.RequireFromString("5.00"), 8, 22, false)
	if errs := v.Validate(ctx, tariff); !errs.Valid() {
		t.Errorf("minimum price rejected: %v", errs)
	}
}

func TestPaymentValidator(t *testing.T) {
	v := NewPaymentValidator()
	ctx := context.Background()

	good := model.NewPayment(uuid.New(), decimal.RequireFromString("25.00"), model.PaymentCard)
	if errs := v.Validate(ctx, good); !errs.Valid() {
		t.Errorf("valid payment rejected: %v", errs)
	}

	missingSession := model.NewPayment(uuid.Nil, decimal.RequireFromString("25.00"), model.PaymentCash)
	if errs := v.Validate(ctx, missingSession); len(errs.Field("sessionId")) == 0 {
		t.Error("expected a sessionId violation")
	}

	badType := model.NewPayment(uuid.New(), decimal.RequireFromString("25.00"), model.PaymentType("CRYPTO"))
	if errs := v.Validate(ctx, badType); len(errs.Field("type")) == 0 {
		t.Error("expected a type violation")
	}

	future := model.NewPayment(uuid.New(), decimal.RequireFromString("25.00"), model.PaymentCash)
	future.PaymentTime = time.Now().UTC().Add(time.Hour)
	if errs := v.Validate(ctx, future); len(errs.Field("paymentTime")) == 0 {
		t.Error("expected a paymentTime violation for a future payment")
	}

	// Within the clock-skew tolerance a slightly fast clock still passes.
	skewed := model.NewPayment(uuid.New(), decimal.RequireFromString("25.00"), model.PaymentCash)
	skewed.PaymentTime = time.Now().UTC().Add(2 * time.Minute)
	if errs := v.Validate(ctx, skewed); len(errs.Field("paymentTime")) != 0 {
		t.Errorf("payment within clock skew rejected: %v", errs.Field("paymentTime"))
	}
}

func TestResultRendering(t *testing.T) {
	r := Result{}
	if !r.Valid() || r.AsError() != nil {
		t.Fatal("empty result must be valid with a nil error")
	}

	r.Add("nickname", "too short")
	r.Add("email", "bad format")
	r.Add("email", "already exists")

	if r.Valid() {
		t.Fatal("populated result must be invalid")
	}
	msg := r.Message()
	// Fields render in sorted order, so email comes before nickname.
	if want := "email:\n  - bad format\n  - already exists\nnickname:\n  - too short\n"; msg != want {
		t.Errorf("message:\n%q\nwant:\n%q", msg, want)
	}

	err := r.AsError()
	if err == nil {
		t.Fatal("expected an error for an invalid result")
	}
	var verr *Error
	if !errors.As(err, &verr) || len(verr.Errors.Field("email")) != 2 {
		t.Errorf("wrapped result mismatch: %v", err)
	}
}
