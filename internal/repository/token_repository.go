package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/madiyara/file-vault/internal/model"
)

// TokenRepo is the refresh-token ledger. The signed token string is
// stored verbatim so a presented token can be compared byte-for-byte.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// ReplaceRefresh supersedes the user's refresh token: delete every
// existing refresh row for the user, then insert the new one, inside a
// single transaction. This is the enforcement point for the at-most-one
// live refresh token invariant. If the transaction fails after the
// delete, the user simply has no refresh row and must sign in again.
func (r *TokenRepo) ReplaceRefresh(ctx context.Context, userID, token string, expiresAt time.Time) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM tokens WHERE user_id=? AND token_type=?",
		userID, string(model.TokenTypeRefresh)); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO tokens (user_id, token_type, token, is_valid, expires_at) VALUES (?,?,?,?,?)",
		userID, string(model.TokenTypeRefresh), token, true, expiresAt); err != nil {
		return err
	}
	return tx.Commit()
}

// FindValidRefresh returns the user's live refresh record. Rows past
// their stored expiry are treated as absent; nothing sweeps them, expiry
// is only ever checked here. Should the single-row invariant be violated
// the newest row wins.
func (r *TokenRepo) FindValidRefresh(ctx context.Context, userID string) (model.RefreshToken, error) {
	var (
		t         model.RefreshToken
		tokenType string
	)
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, user_id, token_type, token, is_valid, created_at, expires_at
		 FROM tokens WHERE user_id=? AND token_type=? AND is_valid=TRUE
		 ORDER BY created_at DESC LIMIT 1`,
		userID, string(model.TokenTypeRefresh)).
		Scan(&t.ID, &t.UserID, &tokenType, &t.Token, &t.IsValid, &t.CreatedAt, &t.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.RefreshToken{}, ErrNotFound
	}
	if err != nil {
		return model.RefreshToken{}, err
	}
	t.Type = model.TokenType(tokenType)
	if time.Now().UTC().After(t.ExpiresAt) {
		return model.RefreshToken{}, ErrNotFound
	}
	return t, nil
}

// RevokeAll deletes every token row for the user, regardless of type,
// and returns how many rows were removed.
func (r *TokenRepo) RevokeAll(ctx context.Context, userID string) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM tokens WHERE user_id=?", userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
