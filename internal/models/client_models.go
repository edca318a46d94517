package models

import (
	"time"

	"github.com/google/uuid"
)

// Client statuses. Independent of package status: a client can be inactive
// while still holding an active package row.
const (
	ClientStatusActive   = "active"
	ClientStatusInactive = "inactive"
)

// Client represents a member of an organization.
type Client struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	OrgID     uuid.UUID  `json:"org_id" db:"org_id"`
	FullName  string     `json:"full_name" db:"full_name" binding:"required"`
	Age       *int       `json:"age,omitempty" db:"age"`
	Phone     *string    `json:"phone,omitempty" db:"phone"`
	Email     *string    `json:"email,omitempty" db:"email"`
	Address   *string    `json:"address,omitempty" db:"address"`
	Status    string     `json:"status" db:"status"`
	JoinDate  *time.Time `json:"join_date,omitempty" db:"join_date"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}
