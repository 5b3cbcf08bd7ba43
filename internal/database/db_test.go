package database

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"
)

// testDB creates a temporary in-memory database for testing.
func testDB(t *testing.T) *DB {
	t.Helper()

	// Use in-memory database for tests
	cfg := Config{
		Path:            ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}

	// Quiet logger for tests
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	db, err := Open(cfg, logger)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	// Run migrations
	ctx := context.Background()
	if _, err := db.Migrate(ctx); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	// Second run should apply nothing
	n, err := db.Migrate(ctx)
	if err != nil {
		t.Fatalf("second Migrate(): %v", err)
	}
	if n != 0 {
		t.Errorf("second Migrate() applied %d migrations, want 0", n)
	}
}

func TestHealth(t *testing.T) {
	db := testDB(t)
	if err := db.Health(context.Background()); err != nil {
		t.Errorf("Health() = %v, want nil", err)
	}
}

func TestCreateUser(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	u, err := db.CreateUser(ctx, "Test User", "test@example.com")
	if err != nil {
		t.Fatalf("CreateUser(): %v", err)
	}
	if u.ID == 0 {
		t.Error("CreateUser() returned zero ID")
	}
	if u.Name != "Test User" || u.Email != "test@example.com" {
		t.Errorf("CreateUser() = %+v", u)
	}

	// Duplicate email must fail
	if _, err := db.CreateUser(ctx, "Other", "test@example.com"); err == nil {
		t.Error("CreateUser() with duplicate email succeeded, want error")
	}
}

func TestGetUser_NotFound(t *testing.T) {
	db := testDB(t)
	if _, err := db.GetUser(context.Background(), 999); !IsNotFound(err) {
		t.Errorf("GetUser(999) error = %v, want ErrNotFound", err)
	}
}

func TestAPIKeyLifecycle(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	u, err := db.CreateUser(ctx, "Key Owner", "owner@example.com")
	if err != nil {
		t.Fatalf("CreateUser(): %v", err)
	}

	key, plaintext, err := db.CreateAPIKey(ctx, u.ID, "ci")
	if err != nil {
		t.Fatalf("CreateAPIKey(): %v", err)
	}
	if plaintext == "" {
		t.Fatal("CreateAPIKey() returned empty plaintext")
	}
	if key.KeyHash != HashKey(plaintext) {
		t.Error("stored hash does not match plaintext key")
	}
	if key.Revoked() {
		t.Error("new key is revoked")
	}

	// Lookup by plaintext
	got, err := db.GetAPIKey(ctx, plaintext)
	if err != nil {
		t.Fatalf("GetAPIKey(): %v", err)
	}
	if got.ID != key.ID || got.UserID != u.ID {
		t.Errorf("GetAPIKey() = %+v, want id %d user %d", got, key.ID, u.ID)
	}

	// Usage tracking
	if err := db.TouchAPIKey(ctx, key.ID); err != nil {
		t.Fatalf("TouchAPIKey(): %v", err)
	}
	got, err = db.GetAPIKey(ctx, plaintext)
	if err != nil {
		t.Fatalf("GetAPIKey() after touch: %v", err)
	}
	if got.RequestCount != 1 {
		t.Errorf("RequestCount = %d, want 1", got.RequestCount)
	}
	if got.LastUsedAt == nil {
		t.Error("LastUsedAt not set after touch")
	}

	// Revocation
	if err := db.RevokeAPIKey(ctx, u.ID, key.ID); err != nil {
		t.Fatalf("RevokeAPIKey(): %v", err)
	}
	if _, err := db.GetAPIKey(ctx, plaintext); !IsNotFound(err) {
		t.Errorf("GetAPIKey() after revoke error = %v, want ErrNotFound", err)
	}

	// Double revoke
	if err := db.RevokeAPIKey(ctx, u.ID, key.ID); !IsNotFound(err) {
		t.Errorf("second RevokeAPIKey() error = %v, want ErrNotFound", err)
	}

	// Revoked keys still listed
	keys, err := db.ListAPIKeys(ctx, u.ID)
	if err != nil {
		t.Fatalf("ListAPIKeys(): %v", err)
	}
	if len(keys) != 1 || !keys[0].Revoked() {
		t.Errorf("ListAPIKeys() = %+v, want one revoked key", keys)
	}
}

func TestCreateAPIKey_UnknownUser(t *testing.T) {
	db := testDB(t)
	if _, _, err := db.CreateAPIKey(context.Background(), 42, "x"); !IsNotFound(err) {
		t.Errorf("CreateAPIKey(unknown user) error = %v, want ErrNotFound", err)
	}
}
