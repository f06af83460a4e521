package model

import "github.com/google/uuid"

// Admin is an operator account for the administrative API.  Only the
// bcrypt hash of the password is ever stored.
type Admin struct {
	ID           uuid.UUID `json:"id"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"`
	Email        string    `json:"email"`
}

// NewAdmin builds an admin with a fresh identity.  The caller supplies
// an already hashed password.
func NewAdmin(login, passwordHash, email string) Admin {
	return Admin{
		ID:           uuid.New(),
		Login:        login,
		PasswordHash: passwordHash,
		Email:        email,
	}
}

// EntityID returns the record identity.
func (a Admin) EntityID() uuid.UUID { return a.ID }
