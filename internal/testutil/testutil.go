package testutil

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/vaughan-dsouza/rentwheels/internal/config"
	"github.com/vaughan-dsouza/rentwheels/internal/db"
	"github.com/vaughan-dsouza/rentwheels/internal/models"
	"github.com/vaughan-dsouza/rentwheels/internal/repository"
)

// Secret is a signing secret long enough to pass config validation.
const Secret = "test-access-secret-0123456789"

// OpenInMemoryDB opens a migrated in-memory SQLite database closed on test cleanup.
func OpenInMemoryDB(t *testing.T) *sqlx.DB {
	t.Helper()
	d, err := db.Connect(config.DatabaseConfig{Driver: "sqlite", URL: ":memory:"})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// NewStore returns repositories over a fresh in-memory database.
func NewStore(t *testing.T) *repository.Store {
	t.Helper()
	return repository.New(OpenInMemoryDB(t))
}

// CreateUser inserts a user whose password is "password".
func CreateUser(t *testing.T, store *repository.Store, name, email string, role models.Role) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &models.User{Name: name, Email: email, Password: string(hash), Role: role}
	if err := store.Users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u
}

// CreateVehicle inserts an available vehicle owned by ownerID.
func CreateVehicle(t *testing.T, store *repository.Store, ownerID int64) *models.Vehicle {
	t.Helper()
	v := &models.Vehicle{
		OwnerID:   ownerID,
		Make:      "Toyota",
		Model:     "Corolla",
		Year:      2021,
		DailyRate: 4500,
		Location:  "Lisbon",
		Available: true,
	}
	if err := store.Vehicles.Create(context.Background(), v); err != nil {
		t.Fatalf("create vehicle: %v", err)
	}
	return v
}
