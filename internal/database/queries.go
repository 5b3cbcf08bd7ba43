package database

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// ErrNotFound is returned when a requested record doesn't exist
	ErrNotFound = errors.New("not found")
)

// IsNotFound checks if an error is a not-found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// =============================================================================
// Helper Functions
// =============================================================================

// parseTimestamp parses a timestamp from SQLite TEXT format.
// Tries multiple formats and returns nil if parsing fails.
func parseTimestamp(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}

	// Try RFC3339 format first (with timezone)
	t, err := time.Parse(time.RFC3339, ns.String)
	if err == nil {
		return &t
	}

	// Try SQLite datetime format (no timezone)
	t, err = time.Parse("2006-01-02 15:04:05", ns.String)
	if err == nil {
		return &t
	}

	return nil
}

// HashKey returns the SHA-256 hex digest of a plaintext API key.
func HashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// newPlaintextKey generates a fresh random API key.
func newPlaintextKey() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	return "luach_" + hex.EncodeToString(buf), nil
}

// =============================================================================
// User Queries
// =============================================================================

// CreateUser inserts a new user and returns it.
func (db *DB) CreateUser(ctx context.Context, name, email string) (*User, error) {
	res, err := db.ExecContext(ctx,
		"INSERT INTO users (name, email) VALUES (?, ?)",
		name, email,
	)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("user id: %w", err)
	}

	return db.GetUser(ctx, id)
}

// GetUser retrieves a user by ID.
// Returns ErrNotFound if no such user exists.
func (db *DB) GetUser(ctx context.Context, id int64) (*User, error) {
	var u User
	var createdAt string
	err := db.QueryRowContext(ctx,
		"SELECT id, name, email, created_at FROM users WHERE id = ?",
		id,
	).Scan(&u.ID, &u.Name, &u.Email, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}

	if ts := parseTimestamp(sql.NullString{String: createdAt, Valid: true}); ts != nil {
		u.CreatedAt = *ts
	}
	return &u, nil
}

// ListUsers returns all users in creation order.
func (db *DB) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT id, name, email, created_at FROM users ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		var createdAt string
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &createdAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		if ts := parseTimestamp(sql.NullString{String: createdAt, Valid: true}); ts != nil {
			u.CreatedAt = *ts
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// =============================================================================
// API Key Queries
// =============================================================================

// CreateAPIKey issues a new key for a user and returns the record along
// with the plaintext key. The plaintext is not stored and cannot be
// recovered later.
func (db *DB) CreateAPIKey(ctx context.Context, userID int64, label string) (*APIKey, string, error) {
	// Ensure the user exists so the error is ErrNotFound, not a
	// foreign key violation.
	if _, err := db.GetUser(ctx, userID); err != nil {
		return nil, "", err
	}

	plaintext, err := newPlaintextKey()
	if err != nil {
		return nil, "", err
	}

	res, err := db.ExecContext(ctx,
		"INSERT INTO api_keys (user_id, key_hash, label) VALUES (?, ?, ?)",
		userID, HashKey(plaintext), label,
	)
	if err != nil {
		return nil, "", fmt.Errorf("insert api key: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, "", fmt.Errorf("api key id: %w", err)
	}

	key, err := db.getAPIKeyByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return key, plaintext, nil
}

// GetAPIKey looks up an active key by its plaintext value.
// Returns ErrNotFound for unknown or revoked keys.
func (db *DB) GetAPIKey(ctx context.Context, plaintext string) (*APIKey, error) {
	return db.getAPIKey(ctx, "key_hash = ? AND revoked_at IS NULL", HashKey(plaintext))
}

// getAPIKeyByID looks a key up by row ID, revoked or not.
func (db *DB) getAPIKeyByID(ctx context.Context, id int64) (*APIKey, error) {
	return db.getAPIKey(ctx, "id = ?", id)
}

func (db *DB) getAPIKey(ctx context.Context, where string, arg any) (*APIKey, error) {
	query := `
		SELECT id, user_id, key_hash, label, request_count,
		       created_at, last_used_at, revoked_at
		FROM api_keys
		WHERE ` + where

	var k APIKey
	var createdAt string
	var lastUsed, revoked sql.NullString
	err := db.QueryRowContext(ctx, query, arg).Scan(
		&k.ID, &k.UserID, &k.KeyHash, &k.Label, &k.RequestCount,
		&createdAt, &lastUsed, &revoked,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query api key: %w", err)
	}

	if ts := parseTimestamp(sql.NullString{String: createdAt, Valid: true}); ts != nil {
		k.CreatedAt = *ts
	}
	k.LastUsedAt = parseTimestamp(lastUsed)
	k.RevokedAt = parseTimestamp(revoked)
	return &k, nil
}

// ListAPIKeys returns all keys issued to a user, including revoked ones.
func (db *DB) ListAPIKeys(ctx context.Context, userID int64) ([]APIKey, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, user_id, key_hash, label, request_count,
		       created_at, last_used_at, revoked_at
		FROM api_keys
		WHERE user_id = ?
		ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query api keys: %w", err)
	}
	defer rows.Close()

	var keys []APIKey
	for rows.Next() {
		var k APIKey
		var createdAt string
		var lastUsed, revoked sql.NullString
		if err := rows.Scan(
			&k.ID, &k.UserID, &k.KeyHash, &k.Label, &k.RequestCount,
			&createdAt, &lastUsed, &revoked,
		); err != nil {
			return nil, fmt.Errorf("scan api key: %w", err)
		}
		if ts := parseTimestamp(sql.NullString{String: createdAt, Valid: true}); ts != nil {
			k.CreatedAt = *ts
		}
		k.LastUsedAt = parseTimestamp(lastUsed)
		k.RevokedAt = parseTimestamp(revoked)
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate api keys: %w", err)
	}
	return keys, nil
}

// RevokeAPIKey revokes a key belonging to the given user.
// Returns ErrNotFound if the key doesn't exist, belongs to someone
// else, or is already revoked.
func (db *DB) RevokeAPIKey(ctx context.Context, userID, keyID int64) error {
	res, err := db.ExecContext(ctx, `
		UPDATE api_keys
		SET revoked_at = datetime('now')
		WHERE id = ? AND user_id = ? AND revoked_at IS NULL`,
		keyID, userID,
	)
	if err != nil {
		return fmt.Errorf("revoke api key: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("revoke api key: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// TouchAPIKey records a use of the key: bumps the request count and the
// last-used timestamp. Failures here are logged by callers, not
// surfaced; losing a count is not worth failing a request.
func (db *DB) TouchAPIKey(ctx context.Context, keyID int64) error {
	_, err := db.ExecContext(ctx, `
		UPDATE api_keys
		SET request_count = request_count + 1,
		    last_used_at = datetime('now')
		WHERE id = ?`,
		keyID,
	)
	if err != nil {
		return fmt.Errorf("touch api key: %w", err)
	}
	return nil
}
