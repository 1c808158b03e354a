// Package service orchestrates validation, calculation, and persistence for
// the ledger. Services accept primitive inputs already parsed by the
// transport layer, enforce domain policy, and return typed views for
// rendering. Failures are either models.ErrInvalidInput or
// storage.ErrNotFound wrapped with context; nothing is logged or retried
// here.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

const maxNameLen = 255

var mobileNumberRe = regexp.MustCompile(`^\+?1?\d{9,15}$`)
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// UserService handles user registration and lookup.
type UserService struct {
	store storage.Store
}

// NewUserService creates a UserService with the given storage backend.
func NewUserService(store storage.Store) *UserService {
	return &UserService{store: store}
}

// CreateUserInput carries the fields for user registration.
type CreateUserInput struct {
	Name         string
	Email        string
	MobileNumber string
}

// CreateUser validates and registers a new user, returning it with the
// assigned ID.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if in.Name == "" || len(in.Name) > maxNameLen {
		return nil, fmt.Errorf("%w: invalid name", models.ErrInvalidInput)
	}
	if !emailRe.MatchString(in.Email) {
		return nil, fmt.Errorf("%w: invalid email", models.ErrInvalidInput)
	}
	if !mobileNumberRe.MatchString(in.MobileNumber) {
		return nil, fmt.Errorf("%w: invalid mobile number", models.ErrInvalidInput)
	}

	existing, err := s.store.GetUserByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email already exists", models.ErrInvalidInput)
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		MobileNumber: in.MobileNumber,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUser returns the user with the given ID.
func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("user %s: %w", userID, storage.ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}
