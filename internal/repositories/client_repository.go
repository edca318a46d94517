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

// ClientRepository defines the interface for client-related database operations.
// GetClientsByOrg is the client directory: its created_at DESC ordering is the
// "directory order" the check-in resolver relies on for tie-breaking.
type ClientRepository interface {
	CreateClient(executor SQLExecutor, client *models.Client) (uuid.UUID, error)
	GetClientByID(id uuid.UUID) (*models.Client, error)
	GetClientsByOrg(orgID uuid.UUID) ([]models.Client, error)
	GetRecentClients(orgID uuid.UUID, limit int) ([]models.Client, error)
	UpdateClient(executor SQLExecutor, client *models.Client) error
	DeleteClient(executor SQLExecutor, id uuid.UUID) error
}

type clientRepository struct {
	db *sql.DB
}

// NewClientRepository creates a new instance of ClientRepository.
func NewClientRepository(db *sql.DB) ClientRepository {
	return &clientRepository{db: db}
}

const clientColumns = `id, org_id, full_name, age, phone, email, address, status, join_date, created_at, updated_at`

func scanClientRow(s interface{ Scan(dest ...interface{}) error }, client *models.Client) error {
	var joinDate sql.NullTime
	err := s.Scan(
		&client.ID, &client.OrgID, &client.FullName, &client.Age, &client.Phone,
		&client.Email, &client.Address, &client.Status, &joinDate,
		&client.CreatedAt, &client.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if joinDate.Valid {
		client.JoinDate = &joinDate.Time
	}
	return nil
}

// CreateClient inserts a new client into the database.
func (r *clientRepository) CreateClient(executor SQLExecutor, client *models.Client) (uuid.UUID, error) {
	query := `INSERT INTO clients (id, org_id, full_name, age, phone, email, address, status, join_date, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          RETURNING id`

	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	currentTime := time.Now()
	if client.CreatedAt.IsZero() {
		client.CreatedAt = currentTime
	}
	if client.UpdatedAt.IsZero() {
		client.UpdatedAt = currentTime
	}
	if client.Status == "" {
		client.Status = models.ClientStatusActive
	}

	var joinDate sql.NullTime
	if client.JoinDate != nil && !client.JoinDate.IsZero() {
		joinDate = sql.NullTime{Time: *client.JoinDate, Valid: true}
	}

	err := executor.QueryRow(query,
		client.ID, client.OrgID, client.FullName, client.Age, client.Phone,
		client.Email, client.Address, client.Status, joinDate,
		client.CreatedAt, client.UpdatedAt,
	).Scan(&client.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return uuid.Nil, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return uuid.Nil, fmt.Errorf("%w: creating client: %v", ErrDatabaseError, err)
	}
	return client.ID, nil
}

// GetClientByID retrieves a client by their ID.
func (r *clientRepository) GetClientByID(id uuid.UUID) (*models.Client, error) {
	client := &models.Client{}
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	err := scanClientRow(r.db.QueryRow(query, id), client)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting client by ID %s: %v", ErrDatabaseError, id, err)
	}
	return client, nil
}

// GetClientsByOrg retrieves the full client directory of an organization,
// newest first.
func (r *clientRepository) GetClientsByOrg(orgID uuid.UUID) ([]models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE org_id = $1 ORDER BY created_at DESC`
	return r.queryClients(query, orgID)
}

// GetRecentClients retrieves the most recently created clients of an
// organization, strictly newest first, truncated to limit.
func (r *clientRepository) GetRecentClients(orgID uuid.UUID, limit int) ([]models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE org_id = $1 ORDER BY created_at DESC LIMIT $2`
	return r.queryClients(query, orgID, limit)
}

func (r *clientRepository) queryClients(query string, args ...interface{}) ([]models.Client, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying clients: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		var client models.Client
		if err := scanClientRow(rows, &client); err != nil {
			return nil, fmt.Errorf("%w: scanning client: %v", ErrDatabaseError, err)
		}
		clients = append(clients, client)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating client rows: %v", ErrDatabaseError, err)
	}
	return clients, nil
}

// UpdateClient updates an existing client in the database.
func (r *clientRepository) UpdateClient(executor SQLExecutor, client *models.Client) error {
	query := `UPDATE clients SET
	            full_name = $1, age = $2, phone = $3, email = $4, address = $5,
	            status = $6, join_date = $7, updated_at = $8
	          WHERE id = $9`

	client.UpdatedAt = time.Now()
	var joinDate sql.NullTime
	if client.JoinDate != nil && !client.JoinDate.IsZero() {
		joinDate = sql.NullTime{Time: *client.JoinDate, Valid: true}
	}

	result, err := executor.Exec(query,
		client.FullName, client.Age, client.Phone, client.Email, client.Address,
		client.Status, joinDate, client.UpdatedAt, client.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return fmt.Errorf("%w: updating client ID %s: %v", ErrDatabaseError, client.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating client ID %s: %v", ErrDatabaseError, client.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteClient removes a client from the database.
func (r *clientRepository) DeleteClient(executor SQLExecutor, id uuid.UUID) error {
	query := `DELETE FROM clients WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("%w: client ID %s cannot be deleted as it is referenced by other records (constraint: %s)", ErrDatabaseError, id, pqErr.Constraint)
		}
		return fmt.Errorf("%w: deleting client ID %s: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting client ID %s: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
