package repository

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type TokenBlacklistRepository interface {
	Add(token string, expiresAt time.Time) error
	IsBlacklisted(token string) (bool, error)
}

type tokenBlacklistRepository struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func NewTokenBlacklistRepository(db *sqlx.DB, log *logrus.Logger) TokenBlacklistRepository {
	return &tokenBlacklistRepository{db: db, log: log}
}

// Add records a token as invalidated. Re-inserting the same token is a
// no-op, which makes logout idempotent.
func (r *tokenBlacklistRepository) Add(token string, expiresAt time.Time) error {
	query := `INSERT INTO token_blacklist (token, expires_at) VALUES ($1, $2) ON CONFLICT (token) DO NOTHING`
	_, err := r.db.Exec(query, token, expiresAt)
	return err
}

func (r *tokenBlacklistRepository) IsBlacklisted(token string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM token_blacklist WHERE token = $1)`
	err := r.db.Get(&exists, query, token)
	if err != nil {
		return false, err
	}
	return exists, nil
}
