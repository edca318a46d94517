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

// PackageCatalogRepository defines the interface for package-catalog database operations.
type PackageCatalogRepository interface {
	CreatePackage(executor SQLExecutor, pkg *models.PackageCatalogEntry) (uuid.UUID, error)
	GetPackageByID(id uuid.UUID) (*models.PackageCatalogEntry, error)
	GetPackagesByOrg(orgID uuid.UUID) ([]models.PackageCatalogEntry, error)
	UpdatePackage(executor SQLExecutor, pkg *models.PackageCatalogEntry) error
	DeletePackage(executor SQLExecutor, id uuid.UUID) error
}

type packageCatalogRepository struct {
	db *sql.DB
}

// NewPackageCatalogRepository creates a new instance of PackageCatalogRepository.
func NewPackageCatalogRepository(db *sql.DB) PackageCatalogRepository {
	return &packageCatalogRepository{db: db}
}

const packageColumns = `id, org_id, name, duration_days, price, description, created_at, updated_at`

func (r *packageCatalogRepository) CreatePackage(executor SQLExecutor, pkg *models.PackageCatalogEntry) (uuid.UUID, error) {
	query := `INSERT INTO packages_catalog (id, org_id, name, duration_days, price, description, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`

	if pkg.ID == uuid.Nil {
		pkg.ID = uuid.New()
	}
	currentTime := time.Now()
	if pkg.CreatedAt.IsZero() {
		pkg.CreatedAt = currentTime
	}
	if pkg.UpdatedAt.IsZero() {
		pkg.UpdatedAt = currentTime
	}

	err := executor.QueryRow(query,
		pkg.ID, pkg.OrgID, pkg.Name, pkg.DurationDays, pkg.Price, pkg.Description,
		pkg.CreatedAt, pkg.UpdatedAt,
	).Scan(&pkg.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return uuid.Nil, fmt.Errorf("%w: package name '%s' already exists (constraint: %s)", ErrDuplicateKey, pkg.Name, pqErr.Constraint)
		}
		return uuid.Nil, fmt.Errorf("%w: creating catalog package: %v", ErrDatabaseError, err)
	}
	return pkg.ID, nil
}

func (r *packageCatalogRepository) GetPackageByID(id uuid.UUID) (*models.PackageCatalogEntry, error) {
	pkg := &models.PackageCatalogEntry{}
	query := `SELECT ` + packageColumns + ` FROM packages_catalog WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&pkg.ID, &pkg.OrgID, &pkg.Name, &pkg.DurationDays, &pkg.Price, &pkg.Description,
		&pkg.CreatedAt, &pkg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting catalog package by ID %s: %v", ErrDatabaseError, id, err)
	}
	return pkg, nil
}

// GetPackagesByOrg lists an organization's catalog, newest first.
func (r *packageCatalogRepository) GetPackagesByOrg(orgID uuid.UUID) ([]models.PackageCatalogEntry, error) {
	query := `SELECT ` + packageColumns + ` FROM packages_catalog WHERE org_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(query, orgID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying catalog packages: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	packages := []models.PackageCatalogEntry{}
	for rows.Next() {
		var pkg models.PackageCatalogEntry
		if err := rows.Scan(
			&pkg.ID, &pkg.OrgID, &pkg.Name, &pkg.DurationDays, &pkg.Price, &pkg.Description,
			&pkg.CreatedAt, &pkg.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning catalog package: %v", ErrDatabaseError, err)
		}
		packages = append(packages, pkg)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating catalog packages: %v", ErrDatabaseError, err)
	}
	return packages, nil
}

func (r *packageCatalogRepository) UpdatePackage(executor SQLExecutor, pkg *models.PackageCatalogEntry) error {
	query := `UPDATE packages_catalog SET
	            name = $1, duration_days = $2, price = $3, description = $4, updated_at = $5
	          WHERE id = $6`

	pkg.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		pkg.Name, pkg.DurationDays, pkg.Price, pkg.Description, pkg.UpdatedAt, pkg.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating catalog package ID %s: %v", ErrDatabaseError, pkg.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating catalog package ID %s: %v", ErrDatabaseError, pkg.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *packageCatalogRepository) DeletePackage(executor SQLExecutor, id uuid.UUID) error {
	query := `DELETE FROM packages_catalog WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("%w: catalog package ID %s cannot be deleted as it is assigned to clients (constraint: %s)", ErrDatabaseError, id, pqErr.Constraint)
		}
		return fmt.Errorf("%w: deleting catalog package ID %s: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting catalog package ID %s: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
