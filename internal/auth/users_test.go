package auth_test

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/vaughan-dsouza/rentwheels/internal/apperrors"
	"github.com/vaughan-dsouza/rentwheels/internal/auth"
	"github.com/vaughan-dsouza/rentwheels/internal/models"
	"github.com/vaughan-dsouza/rentwheels/internal/repository"
	"github.com/vaughan-dsouza/rentwheels/internal/testutil"
)

func principal(u *models.User) *auth.Principal {
	return &auth.Principal{User: u, TokenID: "tok"}
}

func TestListUsers(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	admin := testutil.CreateUser(t, store, "Admin", "admin@example.com", models.RoleAdmin)
	renter := testutil.CreateUser(t, store, "Renter", "renter@example.com", models.RoleRenter)

	users, err := svc.ListUsers(ctx, principal(admin))
	if err != nil || len(users) != 2 {
		t.Fatalf("list as admin: %v len=%d", err, len(users))
	}

	_, err = svc.ListUsers(ctx, principal(renter))
	var ae *apperrors.Error
	if !errors.As(err, &ae) || ae.Kind != apperrors.KindForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if ae.Message != "You are not authorized to view all users." {
		t.Fatalf("unexpected message %q", ae.Message)
	}
}

func TestUpdateUser(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, store, "Alice", "alice@example.com", models.RoleRenter)
	bob := testutil.CreateUser(t, store, "Bob", "bob@example.com", models.RoleOwner)

	updated, err := svc.UpdateUser(ctx, principal(alice), alice.ID, auth.UpdateUserInput{
		Name:  "Alice Smith",
		Email: "alice.smith@example.com",
	})
	if err != nil {
		t.Fatalf("update self: %v", err)
	}
	if updated.Name != "Alice Smith" || updated.Email != "alice.smith@example.com" {
		t.Fatalf("unexpected update: %+v", updated)
	}

	stored, _ := store.Users.GetByID(ctx, alice.ID)
	if bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("password")) != nil {
		t.Fatal("password changed without being provided")
	}

	if _, err := svc.UpdateUser(ctx, principal(alice), alice.ID, auth.UpdateUserInput{
		Name: "Alice Smith", Email: "alice.smith@example.com", Password: "newsecret",
	}); err != nil {
		t.Fatalf("update password: %v", err)
	}
	stored, _ = store.Users.GetByID(ctx, alice.ID)
	if bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("newsecret")) != nil {
		t.Fatal("password not rehashed")
	}

	_, err = svc.UpdateUser(ctx, principal(alice), bob.ID, auth.UpdateUserInput{Name: "x", Email: "x@example.com"})
	if apperrors.KindOf(err) != apperrors.KindForbidden {
		t.Fatalf("expected forbidden updating another user, got %v", err)
	}

	_, err = svc.UpdateUser(ctx, principal(alice), alice.ID, auth.UpdateUserInput{Name: "Alice", Email: "bob@example.com"})
	var ae *apperrors.Error
	if !errors.As(err, &ae) || ae.Fields["email"] != "The email has already been taken." {
		t.Fatalf("expected email taken, got %v", err)
	}

	_, err = svc.UpdateUser(ctx, principal(alice), alice.ID, auth.UpdateUserInput{Name: "Alice", Email: "alice@example.com", Password: "123"})
	if !errors.As(err, &ae) || ae.Kind != apperrors.KindValidation || ae.Fields["password"] == "" {
		t.Fatalf("expected password validation error, got %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	admin := testutil.CreateUser(t, store, "Admin", "admin@example.com", models.RoleAdmin)
	owner := testutil.CreateUser(t, store, "Owner", "owner@example.com", models.RoleOwner)

	if err := svc.DeleteUser(ctx, principal(owner), admin.ID); apperrors.KindOf(err) != apperrors.KindForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}

	if err := svc.DeleteUser(ctx, principal(admin), owner.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Users.GetByID(ctx, owner.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected user gone, got %v", err)
	}

	if err := svc.DeleteUser(ctx, principal(admin), owner.ID); apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
