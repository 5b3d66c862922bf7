package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/madiyara/file-vault/internal/model"
)

// ErrUserExists is returned when an insert collides with an existing id.
var ErrUserExists = errors.New("user already exists")

// UserRepo persists users keyed by their caller-supplied id.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user with an already-hashed password. A duplicate
// primary key maps to ErrUserExists, so the handler-level existence
// pre-check is only a fast path and a check-then-insert race still
// surfaces as a duplicate rather than a torn row.
func (r *UserRepo) Create(ctx context.Context, id, passwordHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (id, password) VALUES (?,?)",
		id, passwordHash)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrUserExists
		}
		return err
	}
	return nil
}

// GetByID fetches a user by exact id match.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, password FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// Exists reports whether a user with the given id is already stored.
func (r *UserRepo) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE id=? LIMIT 1", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
