package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/madiyara/file-vault/internal/middleware"
	"github.com/madiyara/file-vault/internal/model"
	"github.com/madiyara/file-vault/internal/queue"
	"github.com/madiyara/file-vault/internal/repository"
	"github.com/madiyara/file-vault/internal/service"
	"github.com/madiyara/file-vault/internal/storage"
)

// FileStore is the metadata store consumed by the file handler.
type FileStore interface {
	Insert(ctx context.Context, f model.File) (uint64, error)
	List(ctx context.Context, limit, offset int) ([]model.File, error)
	GetByID(ctx context.Context, id uint64) (model.File, error)
	Delete(ctx context.Context, id uint64) error
	Update(ctx context.Context, id uint64, f model.File) error
}

// FileHandler implements the upload/list/get/delete/download/update
// endpoints. All routes sit behind the access guard.
type FileHandler struct {
	Files FileStore
	Disk  *storage.Disk
	Log   *slog.Logger

	publish func(context.Context, *slog.Logger, queue.FileUploadedEvent) error
}

func NewFileHandler(files FileStore, disk *storage.Disk, log *slog.Logger) *FileHandler {
	return &FileHandler{Files: files, Disk: disk, Log: log, publish: service.PublishFileUploaded}
}

type fileResp struct {
	ID           uint64    `json:"id"`
	Filename     string    `json:"filename"`
	Ext          string    `json:"ext"`
	MimeType     string    `json:"mimetype"`
	Size         int64     `json:"size"`
	Date         time.Time `json:"date"`
	OriginalName string    `json:"original_name"`
}

func toFileResp(f model.File) fileResp {
	return fileResp{
		ID:           f.ID,
		Filename:     f.Filename,
		Ext:          f.Ext,
		MimeType:     f.MimeType,
		Size:         f.Size,
		Date:         f.UploadedAt,
		OriginalName: f.OriginalName,
	}
}

// Upload stores the multipart "file" part on disk under a randomized
// name and records its metadata. The uploaded event is published best
// effort; a broker outage never fails the upload.
func (h *FileHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "no file"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}
	defer src.Close()

	saved, err := h.Disk.Save(src, fh.Filename)
	if err != nil {
		h.Log.Error("file upload: disk save failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}

	f := model.File{
		Filename:     saved.Filename,
		Ext:          saved.Ext,
		MimeType:     fh.Header.Get("Content-Type"),
		Size:         saved.Size,
		UploadedAt:   time.Now().UTC(),
		OriginalName: fh.Filename,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	id, err := h.Files.Insert(ctx, f)
	if err != nil {
		if rmErr := h.Disk.Remove(saved.Ext, saved.Filename); rmErr != nil {
			h.Log.Warn("file upload: orphan cleanup failed", "err", rmErr)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}

	// Capture the id before the goroutine: the echo context is pooled
	// and must not be touched after the handler returns.
	uploader := middleware.UserID(c)
	go func() {
		_ = h.publish(context.Background(), h.Log, queue.FileUploadedEvent{
			FileID:       id,
			UserID:       uploader,
			OriginalName: f.OriginalName,
			MimeType:     f.MimeType,
			Size:         f.Size,
			UploadedAt:   f.UploadedAt.Format(time.RFC3339),
		})
	}()

	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// List returns one page of metadata. Page size comes from list_size
// (default 10) and the 1-based page number from page.
func (h *FileHandler) List(c echo.Context) error {
	listSize := 10
	if s := c.QueryParam("list_size"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			listSize = n
		}
	}
	page := 1
	if s := c.QueryParam("page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			page = n
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	files, err := h.Files.List(ctx, listSize, (page-1)*listSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}
	out := make([]fileResp, 0, len(files))
	for _, f := range files {
		out = append(out, toFileResp(f))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns the metadata of a single file.
func (h *FileHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid file id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	f, err := h.Files.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "file is not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}
	return c.JSON(http.StatusOK, toFileResp(f))
}

// Delete removes the metadata row first and then unlinks the file from
// disk best effort; a leftover blob is preferable to a metadata row
// pointing at nothing.
func (h *FileHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid file id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	f, err := h.Files.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "file is not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}
	if err := h.Files.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "file is not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}
	if err := h.Disk.Remove(f.Ext, f.Filename); err != nil {
		h.Log.Warn("file delete: unlink failed", "err", err)
	}
	return c.NoContent(http.StatusOK)
}

// Download streams the stored file under its original name.
func (h *FileHandler) Download(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid file id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	f, err := h.Files.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "file is not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}
	return c.Attachment(h.Disk.Path(f.Ext, f.Filename), f.OriginalName)
}

// Update replaces both the stored blob and the metadata row with a new
// upload. When the id does not exist the freshly written blob is removed
// again so no orphan is left behind.
func (h *FileHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid file id"})
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "no file"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}
	defer src.Close()

	saved, err := h.Disk.Save(src, fh.Filename)
	if err != nil {
		h.Log.Error("file update: disk save failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	old, err := h.Files.GetByID(ctx, id)
	if err != nil {
		if rmErr := h.Disk.Remove(saved.Ext, saved.Filename); rmErr != nil {
			h.Log.Warn("file update: orphan cleanup failed", "err", rmErr)
		}
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "file is not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}

	f := model.File{
		Filename:     saved.Filename,
		Ext:          saved.Ext,
		MimeType:     fh.Header.Get("Content-Type"),
		Size:         saved.Size,
		UploadedAt:   time.Now().UTC(),
		OriginalName: fh.Filename,
	}
	if err := h.Files.Update(ctx, id, f); err != nil {
		if rmErr := h.Disk.Remove(saved.Ext, saved.Filename); rmErr != nil {
			h.Log.Warn("file update: orphan cleanup failed", "err", rmErr)
		}
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "file is not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "server error"})
	}

	if err := h.Disk.Remove(old.Ext, old.Filename); err != nil {
		h.Log.Warn("file update: old blob unlink failed", "err", err)
	}
	return c.NoContent(http.StatusOK)
}
