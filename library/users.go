package library

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// UserRegistry is a placeholder account registry keyed by email. It is held
// in memory only and is never consulted by store operations; no library
// operation requires a login.
type UserRegistry struct {
	users map[string][]byte
	cost  int
}

// NewUserRegistry builds an empty registry hashing passwords at the given
// bcrypt cost.
func NewUserRegistry(cost int) *UserRegistry {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &UserRegistry{users: make(map[string][]byte), cost: cost}
}

// Register creates an account for email.
func (r *UserRegistry) Register(email, password string) error {
	if _, ok := r.users[email]; ok {
		return fmt.Errorf("user %s: %w", email, ErrUserExists)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), r.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	r.users[email] = hash
	return nil
}

// Login verifies the credentials for email.
func (r *UserRegistry) Login(email, password string) error {
	hash, ok := r.users[email]
	if !ok {
		return fmt.Errorf("user %s: %w", email, ErrInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return fmt.Errorf("user %s: %w", email, ErrInvalidCredentials)
	}
	return nil
}

// ResetPassword replaces the password for an existing account.
func (r *UserRegistry) ResetPassword(email, newPassword string) error {
	if _, ok := r.users[email]; !ok {
		return fmt.Errorf("user %s: %w", email, ErrUnknownUser)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), r.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	r.users[email] = hash
	return nil
}
