// Package storage writes uploaded files to local disk. Files are
// bucketed by extension and renamed to a random UUID so the stored name
// never reflects client input: <root>/<ext>/<uuid><ext>.
package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Disk is a file store rooted at a single directory.
type Disk struct{ Root string }

func NewDisk(root string) *Disk { return &Disk{Root: root} }

// Saved describes where an upload landed on disk.
type Saved struct {
	Filename string // randomized name, extension included
	Ext      string // extension bucket without the leading dot
	Size     int64  // bytes written
}

// Save streams src into the bucket derived from the original filename's
// extension. Files without an extension land directly under Root with an
// empty bucket.
func (d *Disk) Save(src io.Reader, originalName string) (Saved, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	bucket := strings.TrimPrefix(ext, ".")

	dir := filepath.Join(d.Root, bucket)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Saved{}, err
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return Saved{}, err
	}
	defer dst.Close()

	n, err := io.Copy(dst, src)
	if err != nil {
		return Saved{}, err
	}
	return Saved{Filename: name, Ext: bucket, Size: n}, nil
}

// Path returns the on-disk location of a stored file.
func (d *Disk) Path(ext, filename string) string {
	return filepath.Join(d.Root, ext, filename)
}

// Remove deletes a stored file from disk.
func (d *Disk) Remove(ext, filename string) error {
	return os.Remove(d.Path(ext, filename))
}
