package database

// migrationsSQL contains all database migrations.
// Migrations are applied in order by version number.
// Each migration should be idempotent (safe to run multiple times).
var migrationsSQL = map[int]string{
	1: migrationV1KeyStore,
}

// migrationV1KeyStore creates the API-key store.
//
// Key design decisions:
//
// 1. NO CALENDAR DATA
//   - Conversions are computed, never stored, so there is nothing
//     calendar-shaped to migrate. These tables exist only to manage
//     access to the authenticated endpoints.
//
// 2. HASHED KEYS
//   - api_keys stores a SHA-256 hex digest, never the key itself. The
//     plaintext key is shown once, at creation.
//
// 3. SOFT REVOCATION
//   - Keys are revoked by setting revoked_at rather than deleting the
//     row, so usage history stays attributable.
const migrationV1KeyStore = `
-- Migration 001: users and API keys

CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS api_keys (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    key_hash TEXT NOT NULL UNIQUE,
    label TEXT NOT NULL DEFAULT '',
    request_count INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    last_used_at TEXT,
    revoked_at TEXT
);

CREATE INDEX IF NOT EXISTS idx_api_keys_user ON api_keys(user_id);
`
