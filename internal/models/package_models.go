package models

import (
	"time"

	"github.com/google/uuid"
)

// PackageCatalogEntry is a sellable service definition: a duration in whole
// days plus an optional price. Edits mutate in place; no version history.
type PackageCatalogEntry struct {
	ID           uuid.UUID `json:"id" db:"id"`
	OrgID        uuid.UUID `json:"org_id" db:"org_id"`
	Name         string    `json:"name" db:"name" binding:"required"`
	DurationDays int       `json:"duration_days" db:"duration_days" binding:"required"`
	Price        *float64  `json:"price,omitempty" db:"price"`
	Description  *string   `json:"description,omitempty" db:"description"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// ClientPackage is one instance of a client holding a package over a date
// range. Status is denormalized state owned by the lifecycle synchronizer;
// rows are never deleted automatically, so expired assignments remain as
// history.
type ClientPackage struct {
	ID        uuid.UUID     `json:"id" db:"id"`
	ClientID  uuid.UUID     `json:"client_id" db:"client_id"`
	PackageID uuid.UUID     `json:"package_id" db:"package_id"`
	StartDate time.Time     `json:"start_date" db:"start_date"`
	EndDate   time.Time     `json:"end_date" db:"end_date"`
	Status    PackageStatus `json:"status" db:"status"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}
