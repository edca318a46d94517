package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fitclub_backend/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// AttendanceRepository defines the interface for attendance-log database
// operations. The log is append-only: there is deliberately no update or
// delete method.
type AttendanceRepository interface {
	AppendAttendance(executor SQLExecutor, entry *models.AttendanceLog) (uuid.UUID, error)
	GetRecentCheckIns(orgID uuid.UUID, limit int) ([]models.CheckInRecord, error)
}

type attendanceRepository struct {
	db *sql.DB
}

// NewAttendanceRepository creates a new instance of AttendanceRepository.
func NewAttendanceRepository(db *sql.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

// AppendAttendance writes one check-in event.
func (r *attendanceRepository) AppendAttendance(executor SQLExecutor, entry *models.AttendanceLog) (uuid.UUID, error) {
	query := `INSERT INTO attendance_logs (id, client_id, method, checkin_at)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CheckinAt.IsZero() {
		entry.CheckinAt = time.Now()
	}

	err := executor.QueryRow(query, entry.ID, entry.ClientID, entry.Method, entry.CheckinAt).Scan(&entry.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
			return uuid.Nil, fmt.Errorf("%w: appending attendance: unknown client (constraint: %s)", ErrNotFound, pqErr.Constraint)
		}
		return uuid.Nil, fmt.Errorf("%w: appending attendance: %v", ErrDatabaseError, err)
	}
	return entry.ID, nil
}

// GetRecentCheckIns lists an organization's latest check-ins, newest first,
// joined with the client's name for display.
func (r *attendanceRepository) GetRecentCheckIns(orgID uuid.UUID, limit int) ([]models.CheckInRecord, error) {
	query := `SELECT al.id, al.client_id, al.method, al.checkin_at, c.full_name
	          FROM attendance_logs al
	          JOIN clients c ON al.client_id = c.id
	          WHERE c.org_id = $1
	          ORDER BY al.checkin_at DESC
	          LIMIT $2`

	rows, err := r.db.Query(query, orgID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: querying recent check-ins: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	records := []models.CheckInRecord{}
	for rows.Next() {
		var rec models.CheckInRecord
		if err := rows.Scan(&rec.ID, &rec.ClientID, &rec.Method, &rec.CheckinAt, &rec.ClientFullName); err != nil {
			return nil, fmt.Errorf("%w: scanning check-in record: %v", ErrDatabaseError, err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating check-in records: %v", ErrDatabaseError, err)
	}
	return records, nil
}
