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

// ClientPackageRepository defines the interface for package-assignment database
// operations. Status writes go through UpdateClientPackageStatus, a single-row
// blind UPDATE: concurrent synchronizers converge on the same derived value
// instead of racing a read-modify-write.
type ClientPackageRepository interface {
	AssignPackage(executor SQLExecutor, cp *models.ClientPackage) (uuid.UUID, error)
	GetClientPackageByID(id uuid.UUID) (*models.ClientPackage, error)
	GetClientPackagesByOrg(orgID uuid.UUID, status *models.PackageStatus) ([]models.ClientPackage, error)
	GetClientPackagesByClient(clientID uuid.UUID) ([]models.ClientPackage, error)
	UpdateClientPackageStatus(executor SQLExecutor, id uuid.UUID, status models.PackageStatus) error
}

type clientPackageRepository struct {
	db *sql.DB
}

// NewClientPackageRepository creates a new instance of ClientPackageRepository.
func NewClientPackageRepository(db *sql.DB) ClientPackageRepository {
	return &clientPackageRepository{db: db}
}

const clientPackageColumns = `id, client_id, package_id, start_date, end_date, status, created_at, updated_at`

func scanClientPackage(s interface{ Scan(dest ...interface{}) error }, cp *models.ClientPackage) error {
	return s.Scan(
		&cp.ID, &cp.ClientID, &cp.PackageID, &cp.StartDate, &cp.EndDate, &cp.Status,
		&cp.CreatedAt, &cp.UpdatedAt,
	)
}

// AssignPackage inserts a new package assignment.
func (r *clientPackageRepository) AssignPackage(executor SQLExecutor, cp *models.ClientPackage) (uuid.UUID, error) {
	query := `INSERT INTO client_packages (id, client_id, package_id, start_date, end_date, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`

	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	currentTime := time.Now()
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = currentTime
	}
	if cp.UpdatedAt.IsZero() {
		cp.UpdatedAt = currentTime
	}

	err := executor.QueryRow(query,
		cp.ID, cp.ClientID, cp.PackageID, cp.StartDate, cp.EndDate, cp.Status,
		cp.CreatedAt, cp.UpdatedAt,
	).Scan(&cp.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
			return uuid.Nil, fmt.Errorf("%w: assigning package: unknown client or package (constraint: %s)", ErrNotFound, pqErr.Constraint)
		}
		return uuid.Nil, fmt.Errorf("%w: assigning package: %v", ErrDatabaseError, err)
	}
	return cp.ID, nil
}

// GetClientPackageByID retrieves a single package assignment.
func (r *clientPackageRepository) GetClientPackageByID(id uuid.UUID) (*models.ClientPackage, error) {
	cp := &models.ClientPackage{}
	query := `SELECT ` + clientPackageColumns + ` FROM client_packages WHERE id = $1`
	err := scanClientPackage(r.db.QueryRow(query, id), cp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting client package by ID %s: %v", ErrDatabaseError, id, err)
	}
	return cp, nil
}

// GetClientPackagesByOrg lists every package assignment under an organization,
// optionally filtered by persisted status. Org scope is implicit through the
// owning client.
func (r *clientPackageRepository) GetClientPackagesByOrg(orgID uuid.UUID, status *models.PackageStatus) ([]models.ClientPackage, error) {
	query := `SELECT cp.id, cp.client_id, cp.package_id, cp.start_date, cp.end_date, cp.status, cp.created_at, cp.updated_at
	          FROM client_packages cp
	          JOIN clients c ON cp.client_id = c.id
	          WHERE c.org_id = $1`
	args := []interface{}{orgID}
	if status != nil {
		query += ` AND cp.status = $2`
		args = append(args, *status)
	}
	query += ` ORDER BY cp.created_at DESC`
	return r.queryClientPackages(query, args...)
}

// GetClientPackagesByClient lists a client's assignment history, newest first.
func (r *clientPackageRepository) GetClientPackagesByClient(clientID uuid.UUID) ([]models.ClientPackage, error) {
	query := `SELECT ` + clientPackageColumns + ` FROM client_packages WHERE client_id = $1 ORDER BY created_at DESC`
	return r.queryClientPackages(query, clientID)
}

func (r *clientPackageRepository) queryClientPackages(query string, args ...interface{}) ([]models.ClientPackage, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying client packages: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	assignments := []models.ClientPackage{}
	for rows.Next() {
		var cp models.ClientPackage
		if err := scanClientPackage(rows, &cp); err != nil {
			return nil, fmt.Errorf("%w: scanning client package: %v", ErrDatabaseError, err)
		}
		assignments = append(assignments, cp)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating client packages: %v", ErrDatabaseError, err)
	}
	return assignments, nil
}

// UpdateClientPackageStatus persists a derived status for one assignment.
func (r *clientPackageRepository) UpdateClientPackageStatus(executor SQLExecutor, id uuid.UUID, status models.PackageStatus) error {
	query := `UPDATE client_packages SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := executor.Exec(query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: updating status for client package ID %s: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for client package ID %s: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
