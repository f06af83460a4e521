package validation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"computer-club/internal/model"
)

var (
	minPaymentAmount = decimal.RequireFromString("0.01")
	maxPaymentAmount = decimal.RequireFromString("1000000.00")
)

// clockSkew is the tolerance applied to "not in the future" checks so
// that records written by a slightly fast clock still validate.
const clockSkew = 5 * time.Minute

// PaymentValidator checks payment records.
type PaymentValidator struct{}

// NewPaymentValidator returns a payment validator.
func NewPaymentValidator() *PaymentValidator { return &PaymentValidator{} }

// Validate runs every payment rule and returns the collected report.
func (v *PaymentValidator) Validate(_ context.Context, p model.Payment) Result {
	errs := Result{}

	if p.SessionID == uuid.Nil {
		errs.Add("sessionId", "session id is required")
	}
	if p.Amount.LessThan(minPaymentAmount) {
		errs.Add("amount", "minimum payment amount is "+minPaymentAmount.StringFixed(2))
	}
	if p.Amount.GreaterThan(maxPaymentAmount) {
		errs.Add("amount", "maximum payment amount is "+maxPaymentAmount.StringFixed(2))
	}
	switch p.Type {
	case model.PaymentCash, model.PaymentCard:
	default:
		errs.Add("type", "payment type must be CASH or CARD")
	}
	if p.PaymentTime.IsZero() {
		errs.Add("paymentTime", "payment time is required")
	} else if p.PaymentTime.After(time.Now().UTC().Add(clockSkew)) {
		errs.Add("paymentTime", "payment time cannot be in the future")
	}

	return errs
}
