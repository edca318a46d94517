package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"fitclub_backend/internal/models"
	"fitclub_backend/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrPackageNotFound   = errors.New("catalog package not found")
	ErrPackageValidation = errors.New("package data validation error")
	ErrPackageInUse      = errors.New("catalog package cannot be deleted as it is assigned to clients")
)

// --- Package DTOs ---
type CreatePackageRequest struct {
	Name         string   `json:"name" binding:"required"`
	DurationDays int      `json:"duration_days" binding:"required"`
	Price        *float64 `json:"price"`
	Description  *string  `json:"description"`
}

type UpdatePackageRequest struct {
	Name         *string  `json:"name"`
	DurationDays *int     `json:"duration_days"`
	Price        *float64 `json:"price"`
	Description  *string  `json:"description"`
}

// --- PackageService Interface ---
type PackageService interface {
	CreatePackage(orgID uuid.UUID, req CreatePackageRequest) (*models.PackageCatalogEntry, error)
	GetPackageByID(packageID uuid.UUID) (*models.PackageCatalogEntry, error)
	GetPackagesByOrg(orgID uuid.UUID) ([]models.PackageCatalogEntry, error)
	UpdatePackage(packageID uuid.UUID, req UpdatePackageRequest) (*models.PackageCatalogEntry, error)
	DeletePackage(packageID uuid.UUID) error
}

type packageService struct {
	packageRepo repositories.PackageCatalogRepository
	db          *sql.DB
}

// NewPackageService creates a new instance of PackageService.
func NewPackageService(repo repositories.PackageCatalogRepository, db *sql.DB) PackageService {
	return &packageService{packageRepo: repo, db: db}
}

func validatePackageData(name string, durationDays int, price *float64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrPackageValidation)
	}
	if durationDays <= 0 {
		return fmt.Errorf("%w: duration_days must be positive", ErrPackageValidation)
	}
	if price != nil && *price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrPackageValidation)
	}
	return nil
}

func (s *packageService) CreatePackage(orgID uuid.UUID, req CreatePackageRequest) (*models.PackageCatalogEntry, error) {
	if err := validatePackageData(req.Name, req.DurationDays, req.Price); err != nil {
		return nil, err
	}

	pkg := &models.PackageCatalogEntry{
		OrgID:        orgID,
		Name:         req.Name,
		DurationDays: req.DurationDays,
		Price:        req.Price,
		Description:  req.Description,
	}

	id, err := s.packageRepo.CreatePackage(s.db, pkg)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog package in repository: %w", err)
	}
	return s.packageRepo.GetPackageByID(id)
}

func (s *packageService) GetPackageByID(packageID uuid.UUID) (*models.PackageCatalogEntry, error) {
	pkg, err := s.packageRepo.GetPackageByID(packageID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to get catalog package by ID: %w", err)
	}
	return pkg, nil
}

func (s *packageService) GetPackagesByOrg(orgID uuid.UUID) ([]models.PackageCatalogEntry, error) {
	packages, err := s.packageRepo.GetPackagesByOrg(orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog packages: %w", err)
	}
	return packages, nil
}

func (s *packageService) UpdatePackage(packageID uuid.UUID, req UpdatePackageRequest) (*models.PackageCatalogEntry, error) {
	pkg, err := s.packageRepo.GetPackageByID(packageID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to find catalog package for update: %w", err)
	}

	if req.Name != nil {
		pkg.Name = *req.Name
	}
	if req.DurationDays != nil {
		pkg.DurationDays = *req.DurationDays
	}
	if req.Price != nil {
		pkg.Price = req.Price
	}
	if req.Description != nil {
		pkg.Description = req.Description
	}
	if err := validatePackageData(pkg.Name, pkg.DurationDays, pkg.Price); err != nil {
		return nil, err
	}

	if err := s.packageRepo.UpdatePackage(s.db, pkg); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to update catalog package in repository: %w", err)
	}
	return s.packageRepo.GetPackageByID(packageID)
}

func (s *packageService) DeletePackage(packageID uuid.UUID) error {
	if _, err := s.packageRepo.GetPackageByID(packageID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPackageNotFound
		}
		return fmt.Errorf("failed to find catalog package for deletion: %w", err)
	}

	if err := s.packageRepo.DeletePackage(s.db, packageID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPackageNotFound
		}
		if strings.Contains(err.Error(), "assigned to clients") {
			return ErrPackageInUse
		}
		return fmt.Errorf("failed to delete catalog package: %w", err)
	}
	return nil
}
