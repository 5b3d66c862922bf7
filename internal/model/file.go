package model

import "time"

// File represents a row in the `files` table, the metadata of one
// uploaded binary. The stored name is randomized on upload; the
// original client-side name is kept for downloads.
//
// Fields:
//  ID           – primary key identifier (auto increment).
//  Filename     – randomized name on disk, including extension.
//  Ext          – extension bucket without the leading dot (e.g. "pdf").
//  MimeType     – content type reported by the client.
//  Size         – file size in bytes.
//  UploadedAt   – server timestamp of the upload.
//  OriginalName – filename as submitted by the client.
type File struct {
	ID           uint64    // files.id
	Filename     string    // files.filename
	Ext          string    // files.ext
	MimeType     string    // files.mimetype
	Size         int64     // files.size
	UploadedAt   time.Time // files.date
	OriginalName string    // files.original_name
}
