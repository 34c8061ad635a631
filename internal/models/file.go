package models

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
)

// File is an uploaded deliverable. The payload lives in object storage and
// is immutable once registered; only Notes may change afterwards.
type File struct {
	ID           uuid.UUID
	OrderID      uuid.UUID
	FileName     string
	OriginalName string
	FileSize     sql.NullInt64
	MimeType     string
	DownloadURL  string
	FolderPath   sql.NullString
	Notes        sql.NullString
	UploadedAt   time.Time
}

// IsDeliverable reports whether the file may be shown to the end client.
// Dot-prefixed names mark files that are staged but not ready, and a file
// without a resolvable download URL has nothing to deliver yet.
func (f *File) IsDeliverable() bool {
	return !strings.HasPrefix(f.FileName, ".") && strings.TrimSpace(f.DownloadURL) != ""
}
