package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fitclub_backend/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq" // For pq.Error
)

// OrganizationRepository defines the interface for organization-related database operations.
type OrganizationRepository interface {
	CreateOrganization(executor SQLExecutor, org *models.Organization) (uuid.UUID, error)
	GetOrganizationByID(id uuid.UUID) (*models.Organization, error)
	GetOrganizationByOwner(userID uuid.UUID) (*models.Organization, error)
	GetOrganizationIDs() ([]uuid.UUID, error)
	UpdateOrganization(executor SQLExecutor, org *models.Organization) error
}

type organizationRepository struct {
	db *sql.DB
}

// NewOrganizationRepository creates a new instance of OrganizationRepository.
func NewOrganizationRepository(db *sql.DB) OrganizationRepository {
	return &organizationRepository{db: db}
}

const organizationColumns = `id, user_id, name, timezone, phone, email, address, created_at, updated_at`

func scanOrganization(row *sql.Row) (*models.Organization, error) {
	org := &models.Organization{}
	err := row.Scan(
		&org.ID, &org.UserID, &org.Name, &org.Timezone,
		&org.Phone, &org.Email, &org.Address, &org.CreatedAt, &org.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return org, nil
}

// CreateOrganization inserts a new organization. The unique constraint on
// user_id enforces the one-organization-per-owner invariant.
func (r *organizationRepository) CreateOrganization(executor SQLExecutor, org *models.Organization) (uuid.UUID, error) {
	query := `INSERT INTO organizations (id, user_id, name, timezone, phone, email, address, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`

	if org.ID == uuid.Nil {
		org.ID = uuid.New()
	}
	currentTime := time.Now()
	if org.CreatedAt.IsZero() {
		org.CreatedAt = currentTime
	}
	if org.UpdatedAt.IsZero() {
		org.UpdatedAt = currentTime
	}

	err := executor.QueryRow(query,
		org.ID, org.UserID, org.Name, org.Timezone,
		org.Phone, org.Email, org.Address, org.CreatedAt, org.UpdatedAt,
	).Scan(&org.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return uuid.Nil, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return uuid.Nil, fmt.Errorf("%w: creating organization: %v", ErrDatabaseError, err)
	}
	return org.ID, nil
}

// GetOrganizationByID retrieves an organization by its ID.
func (r *organizationRepository) GetOrganizationByID(id uuid.UUID) (*models.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE id = $1`
	org, err := scanOrganization(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting organization by ID %s: %v", ErrDatabaseError, id, err)
	}
	return org, nil
}

// GetOrganizationByOwner retrieves the organization owned by the given user.
func (r *organizationRepository) GetOrganizationByOwner(userID uuid.UUID) (*models.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE user_id = $1`
	org, err := scanOrganization(r.db.QueryRow(query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting organization by owner %s: %v", ErrDatabaseError, userID, err)
	}
	return org, nil
}

// GetOrganizationIDs lists every organization id. Used by the global status sweep.
func (r *organizationRepository) GetOrganizationIDs() ([]uuid.UUID, error) {
	rows, err := r.db.Query(`SELECT id FROM organizations ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying organization ids: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: scanning organization id: %v", ErrDatabaseError, err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating organization ids: %v", ErrDatabaseError, err)
	}
	return ids, nil
}

// UpdateOrganization updates an existing organization.
func (r *organizationRepository) UpdateOrganization(executor SQLExecutor, org *models.Organization) error {
	query := `UPDATE organizations SET
	            name = $1, timezone = $2, phone = $3, email = $4, address = $5, updated_at = $6
	          WHERE id = $7`

	org.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		org.Name, org.Timezone, org.Phone, org.Email, org.Address, org.UpdatedAt, org.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating organization ID %s: %v", ErrDatabaseError, org.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating organization ID %s: %v", ErrDatabaseError, org.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
