package users

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Renu-telugu/user-management-app/internal/auth"
)

// Service enforces the business rules around user records. It holds no
// state of its own; every operation is a sequence of store calls plus
// credential checks on the data passed in.
type Service struct {
	store Store
}

// NewService creates a user service on top of the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns all users in storage order.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.store.List(ctx)
}

// Count returns the total number of users.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// Get looks a user up by id, returning ErrNotFound when absent.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.store.Get(ctx, id)
}

// Create validates the submitted fields, hashes the password, and
// inserts a new user with a generated id. The returned user carries
// the hash, never the plaintext. No uniqueness check is performed on
// username or email.
func (s *Service) Create(ctx context.Context, username, email, password string) (*User, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return nil, &ValidationError{Reason: "All fields are required"}
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:       uuid.NewString(),
		Username: username,
		Email:    email,
		Password: hash,
	}

	if err := s.store.Insert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Rename changes a user's username after verifying the submitted
// password against the stored hash. No write happens unless the
// password verifies; the new username itself is not validated.
func (s *Service) Rename(ctx context.Context, id, password, newUsername string) error {
	user, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(password, user.Password) {
		return &AuthError{Reason: "Incorrect password"}
	}

	return s.store.UpdateUsername(ctx, id, newUsername)
}

// Delete removes a user after a dual credential check: the submitted
// password must verify against the stored hash, and the submitted
// email must equal the stored email exactly (case-sensitive, no
// normalization). Password is checked first. Deletion is physical and
// immediate.
func (s *Service) Delete(ctx context.Context, id, password, email string) error {
	user, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(password, user.Password) {
		return &AuthError{Reason: "Incorrect password"}
	}
	if email != user.Email {
		return &AuthError{Reason: "Incorrect email"}
	}

	return s.store.Delete(ctx, id)
}
