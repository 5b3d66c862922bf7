package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/madiyara/file-vault/internal/model"
)

// FileRepo persists metadata of uploaded files.
type FileRepo struct{ DB *sql.DB }

func NewFileRepo(db *sql.DB) *FileRepo { return &FileRepo{DB: db} }

// Insert stores a metadata row and returns the generated id.
func (r *FileRepo) Insert(ctx context.Context, f model.File) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO files (filename, ext, mimetype, size, date, original_name) VALUES (?,?,?,?,?,?)",
		f.Filename, f.Ext, f.MimeType, f.Size, f.UploadedAt, f.OriginalName)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// List returns one page of metadata rows ordered by id.
func (r *FileRepo) List(ctx context.Context, limit, offset int) ([]model.File, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, filename, ext, mimetype, size, date, original_name FROM files ORDER BY id LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.File
	for rows.Next() {
		var f model.File
		if err := rows.Scan(&f.ID, &f.Filename, &f.Ext, &f.MimeType, &f.Size, &f.UploadedAt, &f.OriginalName); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// GetByID fetches one metadata row.
func (r *FileRepo) GetByID(ctx context.Context, id uint64) (model.File, error) {
	var f model.File
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, filename, ext, mimetype, size, date, original_name FROM files WHERE id=? LIMIT 1",
		id).Scan(&f.ID, &f.Filename, &f.Ext, &f.MimeType, &f.Size, &f.UploadedAt, &f.OriginalName)
	if errors.Is(err, sql.ErrNoRows) {
		return model.File{}, ErrNotFound
	}
	return f, err
}

// Delete removes a metadata row.
func (r *FileRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM files WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Update replaces the metadata columns of an existing row.
func (r *FileRepo) Update(ctx context.Context, id uint64, f model.File) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE files SET filename=?, ext=?, mimetype=?, size=?, date=?, original_name=? WHERE id=?",
		f.Filename, f.Ext, f.MimeType, f.Size, f.UploadedAt, f.OriginalName, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
