package models

import (
	"time"

	"github.com/google/uuid"
)

// Check-in methods recorded on attendance entries.
const (
	CheckInMethodManual = "manual"
	CheckInMethodQR     = "qr"
)

// AttendanceLog is one check-in event for a client. Entries are append-only:
// never updated or deleted once written.
type AttendanceLog struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ClientID  uuid.UUID `json:"client_id" db:"client_id"`
	Method    string    `json:"method" db:"method"`
	CheckinAt time.Time `json:"checkin_at" db:"checkin_at"`
}

// CheckInRecord is an attendance entry joined with the client's name for
// recent-check-in listings.
type CheckInRecord struct {
	AttendanceLog
	ClientFullName string `json:"client_full_name" db:"client_full_name"`
}
