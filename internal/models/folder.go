package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Folder is one node of a job's deliverable hierarchy. FolderPath is the
// immutable identity used for file association; renames only ever touch
// PartnerFolderName.
type Folder struct {
	ID                uuid.UUID
	JobID             uuid.UUID
	FolderPath        string
	EditorFolderName  string
	PartnerFolderName sql.NullString
	IsVisible         bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DisplayName prefers the partner's rename over the editor's original name.
func (f *Folder) DisplayName() string {
	if f.PartnerFolderName.Valid && f.PartnerFolderName.String != "" {
		return f.PartnerFolderName.String
	}
	return f.EditorFolderName
}
