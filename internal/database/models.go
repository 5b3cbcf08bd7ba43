package database

import "time"

// User is an account that API keys are issued to.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// APIKey is an issued key. KeyHash is the SHA-256 hex digest of the
// plaintext key; the plaintext is only ever returned once, from
// CreateAPIKey.
type APIKey struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"user_id"`
	Label        string     `json:"label"`
	RequestCount int64      `json:"request_count"`
	CreatedAt    time.Time  `json:"created_at"`
	LastUsedAt   *time.Time `json:"last_used_at,omitempty"`
	RevokedAt    *time.Time `json:"revoked_at,omitempty"`

	KeyHash string `json:"-"`
}

// Revoked reports whether the key has been revoked.
func (k *APIKey) Revoked() bool {
	return k.RevokedAt != nil
}
