// Package queue defines message payloads exchanged over the message
// broker and the background consumer that drains them.
package queue

// FileUploadedEvent is published after a file upload has been stored and
// its metadata row written. It carries enough information for downstream
// consumers to log or trigger processing without querying the database.
type FileUploadedEvent struct {
	FileID       uint64 `json:"file_id"`
	UserID       string `json:"user_id"`
	OriginalName string `json:"original_name"`
	MimeType     string `json:"mimetype"`
	Size         int64  `json:"size"`
	UploadedAt   string `json:"uploaded_at"`
}
