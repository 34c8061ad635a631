package models

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	JobID              uuid.NullUUID
	Status             string
	MaxRevisionRounds  int
	UsedRevisionRounds int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// RemainingRevisionRounds clamps at zero so a maximum lowered below the
// consumed count never yields a negative remainder.
func (o *Order) RemainingRevisionRounds() int {
	remaining := o.MaxRevisionRounds - o.UsedRevisionRounds
	if remaining < 0 {
		return 0
	}
	return remaining
}

type RevisionRequest struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	FileIDs   []uuid.UUID
	Comments  string
	CreatedAt time.Time
}

// MinRevisionCommentLength is the shortest comment accepted on a revision
// request; anything shorter is not actionable feedback for the editor.
const MinRevisionCommentLength = 10
