package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestReplaceRefresh_DeleteThenInsertInOneTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewTokenRepo(db)

	exp := time.Now().UTC().Add(7 * 24 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM tokens").
		WithArgs("alice", "refresh").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO tokens").
		WithArgs("alice", "refresh", "signed.jwt.string", true, exp).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.ReplaceRefresh(context.Background(), "alice", "signed.jwt.string", exp))
	require.NoError(t, mock.ExpectationsWereMet())
}

// When the insert fails the delete must not stick: the transaction rolls
// back and the prior row survives, instead of leaving a half-rotated
// ledger.
func TestReplaceRefresh_RollbackOnInsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewTokenRepo(db)

	exp := time.Now().UTC().Add(7 * 24 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM tokens").
		WithArgs("alice", "refresh").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO tokens").
		WithArgs("alice", "refresh", "signed.jwt.string", true, exp).
		WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	err = repo.ReplaceRefresh(context.Background(), "alice", "signed.jwt.string", exp)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindValidRefresh_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewTokenRepo(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "user_id", "token_type", "token", "is_valid", "created_at", "expires_at"}).
		AddRow(7, "alice", "refresh", "signed.jwt.string", true, now, now.Add(time.Hour))
	mock.ExpectQuery("SELECT id, user_id, token_type, token, is_valid, created_at, expires_at").
		WithArgs("alice", "refresh").
		WillReturnRows(rows)

	rec, err := repo.FindValidRefresh(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, "signed.jwt.string", rec.Token)
	require.Equal(t, "alice", rec.UserID)
	require.True(t, rec.IsValid)
}

func TestFindValidRefresh_NoRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewTokenRepo(db)

	mock.ExpectQuery("SELECT id, user_id, token_type, token, is_valid, created_at, expires_at").
		WithArgs("alice", "refresh").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "token_type", "token", "is_valid", "created_at", "expires_at"}))

	_, err = repo.FindValidRefresh(context.Background(), "alice")
	require.ErrorIs(t, err, ErrNotFound)
}

// Rows past their stored expiry count as absent; nothing sweeps them.
func TestFindValidRefresh_ExpiredRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewTokenRepo(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "user_id", "token_type", "token", "is_valid", "created_at", "expires_at"}).
		AddRow(7, "alice", "refresh", "signed.jwt.string", true, now.Add(-8*24*time.Hour), now.Add(-time.Second))
	mock.ExpectQuery("SELECT id, user_id, token_type, token, is_valid, created_at, expires_at").
		WithArgs("alice", "refresh").
		WillReturnRows(rows)

	_, err = repo.FindValidRefresh(context.Background(), "alice")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRevokeAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewTokenRepo(db)

	mock.ExpectExec("DELETE FROM tokens").
		WithArgs("alice").
		WillReturnResult(sqlmock.NewResult(0, 2))
	n, err := repo.RevokeAll(context.Background(), "alice")
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	mock.ExpectExec("DELETE FROM tokens").
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	n, err = repo.RevokeAll(context.Background(), "ghost")
	require.NoError(t, err)
	require.EqualValues(t, 0, n)
}
