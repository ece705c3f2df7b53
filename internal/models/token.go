package models

import "time"

// BlacklistedToken marks a specific token value as invalid prior to its
// natural expiry. Rows past expires_at are dead weight but are never purged.
type BlacklistedToken struct {
	Token     string    `db:"token" json:"token"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
