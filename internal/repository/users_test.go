package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vaughan-dsouza/rentwheels/internal/models"
	"github.com/vaughan-dsouza/rentwheels/internal/repository"
	"github.com/vaughan-dsouza/rentwheels/internal/testutil"
)

func TestUserRepository_CRUD(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	u := &models.User{Name: "Alice", Email: "alice@example.com", Password: "hash", Role: models.RoleRenter}
	if err := store.Users.Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == 0 || u.CreatedAt.IsZero() {
		t.Fatalf("unexpected created user: %+v", u)
	}

	g, err := store.Users.GetByID(ctx, u.ID)
	if err != nil || g.Email != "alice@example.com" || g.Role != models.RoleRenter {
		t.Fatalf("get by id: %v %+v", err, g)
	}

	g2, err := store.Users.GetByEmail(ctx, "alice@example.com")
	if err != nil || g2.ID != u.ID {
		t.Fatalf("get by email: %v %+v", err, g2)
	}

	g.Name = "Alice B."
	g.Email = "aliceb@example.com"
	if err := store.Users.Update(ctx, g); err != nil {
		t.Fatalf("update: %v", err)
	}
	g3, _ := store.Users.GetByID(ctx, u.ID)
	if g3.Name != "Alice B." || g3.Email != "aliceb@example.com" {
		t.Fatalf("update not persisted: %+v", g3)
	}

	list, err := store.Users.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v len=%d", err, len(list))
	}

	if err := store.Users.Delete(ctx, u.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Users.GetByID(ctx, u.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Users.Delete(ctx, u.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	a := testutil.CreateUser(t, store, "A", "dup@example.com", models.RoleOwner)
	err := store.Users.Create(ctx, &models.User{Name: "B", Email: "dup@example.com", Password: "x", Role: models.RoleRenter})
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	taken, err := store.Users.EmailTaken(ctx, "dup@example.com", 0)
	if err != nil || !taken {
		t.Fatalf("expected email taken: %v %v", taken, err)
	}
	taken, err = store.Users.EmailTaken(ctx, "dup@example.com", a.ID)
	if err != nil || taken {
		t.Fatalf("expected email free when excluding owner: %v %v", taken, err)
	}
}

func TestUserRepository_DeleteCascadesTokens(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	u := testutil.CreateUser(t, store, "Carl", "carl@example.com", models.RoleRenter)
	tok := &models.AccessToken{ID: "tok-1", UserID: u.ID, Name: "auth_token", ExpiresAt: time.Now().Add(time.Hour)}
	if err := store.Tokens.Create(ctx, tok); err != nil {
		t.Fatalf("create token: %v", err)
	}
	if err := store.Users.Delete(ctx, u.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Tokens.Get(ctx, "tok-1"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected token to cascade, got %v", err)
	}
}
