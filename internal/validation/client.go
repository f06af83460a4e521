package validation

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"computer-club/internal/model"
	"computer-club/internal/repository"
)

var (
	emailPattern    = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	nicknamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,50}$`)
)

var (
	minDeposit  = decimal.RequireFromString("10.00")
	maxDeposit  = decimal.RequireFromString("10000.00")
	maxDiscount = decimal.NewFromInt(100)
)

const (
	minNicknameLen = 3
	maxNicknameLen = 50
)

// ClientValidator checks client records against format rules and the
// nickname/email uniqueness constraints.
type ClientValidator struct {
	clients repository.ClientRepository
}

// NewClientValidator returns a validator backed by the given repository.
func NewClientValidator(clients repository.ClientRepository) *ClientValidator {
	return &ClientValidator{clients: clients}
}

// Validate runs every client rule and returns the collected report.
func (v *ClientValidator) Validate(ctx context.Context, c model.Client) Result {
	errs := Result{}

	v.validateNickname(c.Nickname, errs)
	v.validateEmail(c.Email, errs)
	if c.Balance.IsNegative() {
		errs.Add("balance", "balance cannot be negative")
	}
	if c.VisitCount < 0 {
		errs.Add("visitCount", "visit count cannot be negative")
	}
	v.validateDiscount(c.DiscountPercent, errs)
	if c.RegisteredAt.IsZero() {
		errs.Add("registeredAt", "registration date is required")
	} else if c.RegisteredAt.After(time.Now().UTC()) {
		errs.Add("registeredAt", "registration date cannot be in the future")
	}

	v.validateEmailUniqueness(ctx, c, errs)
	v.validateNicknameUniqueness(ctx, c, errs)

	return errs
}

// ValidateDeposit checks a balance top-up amount against the deposit
// bounds.
func (v *ClientValidator) ValidateDeposit(amount decimal.Decimal) Result {
	errs := Result{}
	if amount.LessThan(minDeposit) {
		errs.Add("balance", "minimum deposit is "+minDeposit.StringFixed(2))
	}
	if amount.GreaterThan(maxDeposit) {
		errs.Add("balance", "maximum deposit is "+maxDeposit.StringFixed(2))
	}
	return errs
}

// ValidateDeduction checks that a charge is positive and covered by the
// client's balance.
func (v *ClientValidator) ValidateDeduction(c model.Client, amount decimal.Decimal) Result {
	errs := Result{}
	if !amount.IsPositive() {
		errs.Add("balance", "deduction amount must be positive")
	}
	if c.Balance.LessThan(amount) {
		errs.Add("balance", "insufficient funds: balance "+c.Balance.StringFixed(2)+", required "+amount.StringFixed(2))
	}
	return errs
}

// ValidateVisit checks the fields touched by a visit registration.
func (v *ClientValidator) ValidateVisit(c model.Client) Result {
	errs := Result{}
	if c.VisitCount < 0 {
		errs.Add("visitCount", "visit count cannot be negative")
	}
	v.validateDiscount(c.DiscountPercent, errs)
	return errs
}

func (v *ClientValidator) validateNickname(nickname string, errs Result) {
	if nickname == "" {
		errs.Add("nickname", "nickname is required")
		return
	}
	if len(nickname) < minNicknameLen {
		errs.Add("nickname", "nickname must be at least 3 characters")
	}
	if len(nickname) > maxNicknameLen {
		errs.Add("nickname", "nickname must be at most 50 characters")
	}
	if !nicknamePattern.MatchString(nickname) {
		errs.Add("nickname", "nickname may contain only letters, digits and underscores")
	}
}

func (v *ClientValidator) validateEmail(email string, errs Result) {
	if email == "" {
		errs.Add("email", "email is required")
		return
	}
	if !emailPattern.MatchString(email) {
		errs.Add("email", "invalid email format")
	}
}

func (v *ClientValidator) validateDiscount(discount decimal.Decimal, errs Result) {
	if discount.IsNegative() {
		errs.Add("discountPercent", "discount cannot be negative")
	}
	if discount.GreaterThan(maxDiscount) {
		errs.Add("discountPercent", "discount cannot exceed 100%")
	}
}

func (v *ClientValidator) validateEmailUniqueness(ctx context.Context, c model.Client, errs Result) {
	existing, err := v.clients.FindByEmail(ctx, c.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return
	}
	if err == nil && existing.ID != c.ID {
		errs.Add("email", "client with email '"+c.Email+"' already exists")
	}
}

func (v *ClientValidator) validateNicknameUniqueness(ctx context.Context, c model.Client, errs Result) {
	matches, err := v.clients.FindByNameContaining(ctx, c.Nickname)
	if err != nil {
		return
	}
	for _, existing := range matches {
		if existing.Nickname == c.Nickname && existing.ID != c.ID {
			errs.Add("nickname", "client with nickname '"+c.Nickname+"' already exists")
			return
		}
	}
}
