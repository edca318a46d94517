package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"fitclub_backend/internal/models"
	"fitclub_backend/internal/repositories"
	"fitclub_backend/pkg/utils"

	"github.com/google/uuid"
)

var (
	ErrOrganizationNotFound   = errors.New("organization not found")
	ErrOrganizationExists     = errors.New("user already owns an organization")
	ErrOrganizationValidation = errors.New("organization data validation error")
)

// --- Organization DTOs ---
type CreateOrganizationRequest struct {
	Name     string  `json:"name" binding:"required"`
	Timezone string  `json:"timezone"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Address  *string `json:"address"`
}

type UpdateOrganizationRequest struct {
	Name     *string `json:"name"`
	Timezone *string `json:"timezone"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Address  *string `json:"address"`
}

// --- OrganizationService Interface ---
type OrganizationService interface {
	CreateOrganization(userID uuid.UUID, req CreateOrganizationRequest) (*models.Organization, error)
	GetOrganizationByOwner(userID uuid.UUID) (*models.Organization, error)
	UpdateOrganization(userID uuid.UUID, req UpdateOrganizationRequest) (*models.Organization, error)
}

type organizationService struct {
	orgRepo repositories.OrganizationRepository
	db      *sql.DB
}

// NewOrganizationService creates a new instance of OrganizationService.
func NewOrganizationService(repo repositories.OrganizationRepository, db *sql.DB) OrganizationService {
	return &organizationService{orgRepo: repo, db: db}
}

func validateTimezone(tz string) error {
	if tz == "" {
		return nil
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrOrganizationValidation, tz)
	}
	return nil
}

// CreateOrganization registers the owner's single organization. A second
// create for the same user is rejected.
func (s *organizationService) CreateOrganization(userID uuid.UUID, req CreateOrganizationRequest) (*models.Organization, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrOrganizationValidation)
	}
	if err := validateTimezone(req.Timezone); err != nil {
		return nil, err
	}

	org := &models.Organization{
		UserID:   userID,
		Name:     req.Name,
		Timezone: req.Timezone,
		Phone:    utils.NormalizeOptional(req.Phone),
		Email:    utils.NormalizeOptional(req.Email),
		Address:  utils.NormalizeOptional(req.Address),
	}

	id, err := s.orgRepo.CreateOrganization(s.db, org)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrOrganizationExists
		}
		return nil, fmt.Errorf("failed to create organization in repository: %w", err)
	}
	return s.orgRepo.GetOrganizationByID(id)
}

func (s *organizationService) GetOrganizationByOwner(userID uuid.UUID) (*models.Organization, error) {
	org, err := s.orgRepo.GetOrganizationByOwner(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to get organization by owner: %w", err)
	}
	return org, nil
}

func (s *organizationService) UpdateOrganization(userID uuid.UUID, req UpdateOrganizationRequest) (*models.Organization, error) {
	org, err := s.GetOrganizationByOwner(userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrOrganizationValidation)
		}
		org.Name = *req.Name
	}
	if req.Timezone != nil {
		if err := validateTimezone(*req.Timezone); err != nil {
			return nil, err
		}
		org.Timezone = *req.Timezone
	}
	if req.Phone != nil {
		org.Phone = utils.NormalizeOptional(req.Phone)
	}
	if req.Email != nil {
		org.Email = utils.NormalizeOptional(req.Email)
	}
	if req.Address != nil {
		org.Address = utils.NormalizeOptional(req.Address)
	}

	if err := s.orgRepo.UpdateOrganization(s.db, org); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to update organization in repository: %w", err)
	}
	return s.orgRepo.GetOrganizationByID(org.ID)
}
