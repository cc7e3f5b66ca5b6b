package user

import (
	"context"
	"errors"
	"testing"

	"github.com/gab-8323/crypto-portfolio-manager/internal/repository"
)

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewService(repository.NewMemory())

	u, err := svc.Register(ctx, "alice", "555-0100", "hunter2")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.ID == 0 {
		t.Error("registered user has no id")
	}
	if u.Currency != "USD" {
		t.Errorf("currency = %q, want USD", u.Currency)
	}
	if u.PasswordHash == "hunter2" {
		t.Error("password stored in clear")
	}

	got, err := svc.Login(ctx, "alice", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("login returned user %d, want %d", got.ID, u.ID)
	}

	if _, err := svc.Login(ctx, "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, "nobody", "hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterDuplicatePhone(t *testing.T) {
	ctx := context.Background()
	svc := NewService(repository.NewMemory())

	if _, err := svc.Register(ctx, "alice", "555-0100", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := svc.Register(ctx, "bob", "555-0100", "pw")
	if !errors.Is(err, repository.ErrDuplicateUser) {
		t.Errorf("duplicate phone err = %v, want ErrDuplicateUser", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(repository.NewMemory())

	if _, err := svc.Register(ctx, "  ", "555-0100", "pw"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("blank name err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.Register(ctx, "alice", "555-0100", ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("blank password err = %v, want ErrInvalidInput", err)
	}
}

func TestSetCurrency(t *testing.T) {
	ctx := context.Background()
	svc := NewService(repository.NewMemory())

	u, err := svc.Register(ctx, "alice", "555-0100", "pw")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.SetCurrency(ctx, u.ID, "eur"); err != nil {
		t.Fatalf("set currency: %v", err)
	}
	got, err := svc.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Currency != "EUR" {
		t.Errorf("currency = %q, want EUR", got.Currency)
	}
	if err := svc.SetCurrency(ctx, u.ID, " "); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("blank currency err = %v, want ErrInvalidInput", err)
	}
}
