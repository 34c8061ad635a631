package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Comment author roles.
const (
	AuthorRoleClient       = "client"
	AuthorRolePhotographer = "photographer"
	AuthorRoleEditor       = "editor"
)

func IsValidAuthorRole(role string) bool {
	switch role {
	case AuthorRoleClient, AuthorRolePhotographer, AuthorRoleEditor:
		return true
	}
	return false
}

// Comment statuses. Status is optional; an unset status counts as open
// when computing unresolved indicators.
const (
	CommentStatusOpen       = "open"
	CommentStatusInProgress = "in_progress"
	CommentStatusResolved   = "resolved"
)

func IsValidCommentStatus(status string) bool {
	switch status {
	case CommentStatusOpen, CommentStatusInProgress, CommentStatusResolved:
		return true
	}
	return false
}

// FileComment is one entry of a file's append-only discussion thread.
type FileComment struct {
	ID         uuid.UUID
	FileID     uuid.UUID
	AuthorID   string
	AuthorName string
	AuthorRole string
	Message    string
	Status     sql.NullString
	CreatedAt  time.Time
}

// IsResolved treats a missing status as unresolved.
func (c *FileComment) IsResolved() bool {
	return c.Status.Valid && c.Status.String == CommentStatusResolved
}

// ClientReview is the single rating+text review a client leaves on a job.
// Resubmitting replaces rating, text and timestamp; it never duplicates.
type ClientReview struct {
	JobID            uuid.UUID
	Rating           int
	Review           sql.NullString
	SubmittedBy      string
	SubmittedByEmail sql.NullString
	SubmittedAt      time.Time
}

// MaxReviewLength caps the optional review text.
const MaxReviewLength = 2000
