package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/madiyara/file-vault/internal/model"
)

func TestFileRepoInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewFileRepo(db)

	now := time.Now().UTC()
	f := model.File{
		Filename:     "0b2e9f.pdf",
		Ext:          "pdf",
		MimeType:     "application/pdf",
		Size:         1024,
		UploadedAt:   now,
		OriginalName: "report.pdf",
	}
	mock.ExpectExec("INSERT INTO files").
		WithArgs(f.Filename, f.Ext, f.MimeType, f.Size, f.UploadedAt, f.OriginalName).
		WillReturnResult(sqlmock.NewResult(3, 1))

	id, err := repo.Insert(context.Background(), f)
	require.NoError(t, err)
	require.EqualValues(t, 3, id)
}

func TestFileRepoList_Pagination(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewFileRepo(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "filename", "ext", "mimetype", "size", "date", "original_name"}).
		AddRow(11, "a.png", "png", "image/png", 10, now, "cat.png").
		AddRow(12, "b.png", "png", "image/png", 20, now, "dog.png")
	mock.ExpectQuery("SELECT id, filename, ext, mimetype, size, date, original_name FROM files").
		WithArgs(10, 10).
		WillReturnRows(rows)

	files, err := repo.List(context.Background(), 10, 10)
	require.NoError(t, err)
	require.Len(t, files, 2)
	require.EqualValues(t, 11, files[0].ID)
	require.Equal(t, "dog.png", files[1].OriginalName)
}

func TestFileRepoGetByID_Missing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewFileRepo(db)

	mock.ExpectQuery("SELECT id, filename, ext, mimetype, size, date, original_name FROM files").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id", "filename", "ext", "mimetype", "size", "date", "original_name"}))

	_, err = repo.GetByID(context.Background(), 99)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFileRepoDelete_Missing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewFileRepo(db)

	mock.ExpectExec("DELETE FROM files").
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, repo.Delete(context.Background(), 99), ErrNotFound)
}
