// Package user handles registration, credential checks and per-user
// preferences.
package user

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/gab-8323/crypto-portfolio-manager/types"
)

var (
	// ErrInvalidCredentials covers both an unknown name and a wrong
	// password so login failures do not reveal which field was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidInput is returned for a blank name or password.
	ErrInvalidInput = errors.New("name and password are required")
)

const defaultCurrency = "USD"

// Store is the persistence boundary for user records.
type Store interface {
	CreateUser(ctx context.Context, u types.User) (types.User, error)
	GetUserByName(ctx context.Context, name string) (types.User, error)
	GetUserByID(ctx context.Context, id int) (types.User, error)
	UpdateUserCurrency(ctx context.Context, userID int, currency string) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Register creates an account with a bcrypt password hash and the default
// display currency. A taken phone number surfaces as
// repository.ErrDuplicateUser.
func (s *Service) Register(ctx context.Context, name, phone, password string) (types.User, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" || password == "" {
		return types.User{}, ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return types.User{}, err
	}
	return s.store.CreateUser(ctx, types.User{
		Name:         name,
		Phone:        phone,
		PasswordHash: string(hash),
		Currency:     defaultCurrency,
	})
}

// Login verifies the password against the stored hash and returns the user.
func (s *Service) Login(ctx context.Context, name, password string) (types.User, error) {
	u, err := s.store.GetUserByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return types.User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return types.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// Get returns a user by id.
func (s *Service) Get(ctx context.Context, id int) (types.User, error) {
	return s.store.GetUserByID(ctx, id)
}

// SetCurrency updates the user's preferred display currency.
func (s *Service) SetCurrency(ctx context.Context, userID int, currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return ErrInvalidInput
	}
	return s.store.UpdateUserCurrency(ctx, userID, currency)
}
