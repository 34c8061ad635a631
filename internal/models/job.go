package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Job statuses. A job becomes delivered when its delivery email is sent.
const (
	JobStatusBooked    = "booked"
	JobStatusPending   = "pending"
	JobStatusOnHold    = "on_hold"
	JobStatusDelivered = "delivered"
	JobStatusCancelled = "cancelled"
)

func IsValidJobStatus(status string) bool {
	switch status {
	case JobStatusBooked, JobStatusPending, JobStatusOnHold, JobStatusDelivered, JobStatusCancelled:
		return true
	}
	return false
}

type Job struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Address       string
	Status        string
	CustomerName  string
	CustomerEmail sql.NullString
	DeliveryToken sql.NullString
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PartnerSettings carries per-partner defaults applied at order creation.
type PartnerSettings struct {
	UserID                uuid.UUID
	DefaultRevisionRounds int
	UpdatedAt             time.Time
}
