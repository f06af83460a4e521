package validation

import (
	"context"

	"computer-club/internal/model"
	"computer-club/internal/repository"
)

const minLoginLen = 3

// AdminValidator checks operator accounts before they are stored.
type AdminValidator struct {
	admins repository.AdminRepository
}

// NewAdminValidator returns a validator backed by the given repository.
func NewAdminValidator(admins repository.AdminRepository) *AdminValidator {
	return &AdminValidator{admins: admins}
}

// Validate runs every admin rule and returns the collected report.
func (v *AdminValidator) Validate(ctx context.Context, a model.Admin) Result {
	errs := Result{}

	if len(a.Login) < minLoginLen {
		errs.Add("login", "login must be at least 3 characters")
	}
	if a.PasswordHash == "" {
		errs.Add("password", "password is required")
	}
	if a.Email != "" && !emailPattern.MatchString(a.Email) {
		errs.Add("email", "invalid email format")
	}

	existing, err := v.admins.FindByLogin(ctx, a.Login)
	if err == nil && existing.ID != a.ID {
		errs.Add("login", "admin with login '"+a.Login+"' already exists")
	}

	return errs
}
