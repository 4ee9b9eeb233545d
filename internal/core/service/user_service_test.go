package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pecc/timetracking/internal/core/domain"
	"github.com/pecc/timetracking/internal/core/ports"
)

func TestUserService_Create_TemporaryPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil, zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.CreateUserInput{Name: "Frank", Role: domain.RoleEmployee})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !created.ForcePasswordChange {
		t.Fatalf("new accounts must start with a forced password change")
	}
	if !strings.HasPrefix(created.Password, "temp") {
		t.Fatalf("expected a generated temporary password, got %q", created.Password)
	}
	if created.ID == 0 {
		t.Fatalf("expected a server-assigned id")
	}
}

func TestUserService_Create_InvalidRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil, zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.CreateUserInput{Name: "Frank", Role: "superuser"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil, zerolog.Nop())

	_, err := svc.Update(context.Background(), domain.User{ID: 99, Name: "Ghost", Role: domain.RoleEmployee, Password: "x"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	repo := newStubUserRepo(domain.SeedUsers()...)
	svc := NewUserService(repo, nil, zerolog.Nop())

	if err := svc.Delete(context.Background(), 2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	users, _ := repo.List(context.Background())
	for _, u := range users {
		if u.ID == 2 {
			t.Fatalf("user 2 still present after delete")
		}
	}
}
