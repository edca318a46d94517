package services

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"fitclub_backend/internal/models"
	"fitclub_backend/internal/repositories"
	"fitclub_backend/pkg/utils"

	"github.com/google/uuid"
)

// --- Custom Service Errors for Client ---
var (
	ErrClientNotFound   = errors.New("client not found")
	ErrClientValidation = errors.New("client data validation error")
	ErrDateFormat       = errors.New("invalid date format, please use YYYY-MM-DD")
	ErrClientInUse      = errors.New("client cannot be deleted as they are referenced in other records")
)

// --- Client DTOs ---
type CreateClientRequest struct {
	FullName string  `json:"full_name" binding:"required"`
	Age      *int    `json:"age"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Address  *string `json:"address"`
	Status   *string `json:"status"`
	JoinDate *string `json:"join_date"` // Format YYYY-MM-DD
}

type UpdateClientRequest struct {
	FullName *string `json:"full_name"`
	Age      *int    `json:"age"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Address  *string `json:"address"`
	Status   *string `json:"status"`
	JoinDate *string `json:"join_date"` // Format YYYY-MM-DD
}

// --- ClientService Interface ---
type ClientService interface {
	CreateClient(orgID uuid.UUID, req CreateClientRequest) (*models.Client, error)
	GetClientByID(clientID uuid.UUID) (*models.Client, error)
	GetClientsByOrg(orgID uuid.UUID) ([]models.Client, error)
	UpdateClient(clientID uuid.UUID, req UpdateClientRequest) (*models.Client, error)
	DeleteClient(clientID uuid.UUID) error
}

// --- clientService Implementation ---
type clientService struct {
	clientRepo repositories.ClientRepository
	db         *sql.DB
}

// NewClientService creates a new instance of ClientService.
func NewClientService(repo repositories.ClientRepository, db *sql.DB) ClientService {
	return &clientService{
		clientRepo: repo,
		db:         db,
	}
}

var emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`)

func validateClientData(fullName string, email *string, age *int, status *string) error {
	if strings.TrimSpace(fullName) == "" {
		return fmt.Errorf("%w: full name cannot be empty", ErrClientValidation)
	}
	if email != nil && strings.TrimSpace(*email) != "" {
		em := strings.ToLower(strings.TrimSpace(*email))
		if !emailRegex.MatchString(em) {
			return fmt.Errorf("%w: email format is invalid", ErrClientValidation)
		}
	}
	if age != nil && (*age < 0 || *age > 150) {
		return fmt.Errorf("%w: age is out of range", ErrClientValidation)
	}
	if status != nil && *status != models.ClientStatusActive && *status != models.ClientStatusInactive {
		return fmt.Errorf("%w: status must be %q or %q", ErrClientValidation, models.ClientStatusActive, models.ClientStatusInactive)
	}
	return nil
}

func parseDate(dateStr *string) (*time.Time, error) {
	if dateStr == nil || strings.TrimSpace(*dateStr) == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", *dateStr)
	if err != nil {
		return nil, ErrDateFormat
	}
	return &d, nil
}

func (s *clientService) CreateClient(orgID uuid.UUID, req CreateClientRequest) (*models.Client, error) {
	if err := validateClientData(req.FullName, req.Email, req.Age, req.Status); err != nil {
		return nil, err
	}

	joinDate, err := parseDate(req.JoinDate)
	if err != nil {
		return nil, err
	}

	status := models.ClientStatusActive
	if req.Status != nil {
		status = *req.Status
	}

	client := &models.Client{
		OrgID:    orgID,
		FullName: req.FullName,
		Age:      req.Age,
		Phone:    utils.NormalizeOptional(req.Phone),
		Email:    utils.NormalizeOptional(req.Email),
		Address:  utils.NormalizeOptional(req.Address),
		Status:   status,
		JoinDate: joinDate,
	}

	id, err := s.clientRepo.CreateClient(s.db, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create client in repository: %w", err)
	}
	return s.clientRepo.GetClientByID(id)
}

func (s *clientService) GetClientByID(clientID uuid.UUID) (*models.Client, error) {
	client, err := s.clientRepo.GetClientByID(clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client by ID: %w", err)
	}
	return client, nil
}

func (s *clientService) GetClientsByOrg(orgID uuid.UUID) ([]models.Client, error) {
	clients, err := s.clientRepo.GetClientsByOrg(orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to get clients: %w", err)
	}
	return clients, nil
}

func (s *clientService) UpdateClient(clientID uuid.UUID, req UpdateClientRequest) (*models.Client, error) {
	client, err := s.clientRepo.GetClientByID(clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to find client for update: %w", err)
	}

	fullNameToValidate := client.FullName
	if req.FullName != nil {
		fullNameToValidate = *req.FullName
	}
	emailToValidate := client.Email
	if req.Email != nil {
		emailToValidate = req.Email
	}
	if err := validateClientData(fullNameToValidate, emailToValidate, req.Age, req.Status); err != nil {
		return nil, err
	}

	if req.FullName != nil {
		client.FullName = *req.FullName
	}
	if req.Age != nil {
		client.Age = req.Age
	}
	if req.Phone != nil {
		client.Phone = utils.NormalizeOptional(req.Phone)
	}
	if req.Email != nil {
		client.Email = utils.NormalizeOptional(req.Email)
	}
	if req.Address != nil {
		client.Address = utils.NormalizeOptional(req.Address)
	}
	if req.Status != nil {
		client.Status = *req.Status
	}
	if req.JoinDate != nil {
		joinDate, parseErr := parseDate(req.JoinDate)
		if parseErr != nil {
			return nil, parseErr
		}
		client.JoinDate = joinDate
	}

	if err := s.clientRepo.UpdateClient(s.db, client); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to update client in repository: %w", err)
	}
	return s.clientRepo.GetClientByID(clientID)
}

func (s *clientService) DeleteClient(clientID uuid.UUID) error {
	if _, err := s.clientRepo.GetClientByID(clientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to find client for deletion: %w", err)
	}

	if err := s.clientRepo.DeleteClient(s.db, clientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrClientNotFound
		}
		if strings.Contains(err.Error(), "referenced by other records") {
			return ErrClientInUse
		}
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}
