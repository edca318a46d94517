package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fitclub_backend/internal/models"
	"fitclub_backend/internal/repositories"
	"fitclub_backend/pkg/utils"

	"github.com/google/uuid"
)

var (
	ErrAssignmentValidation   = errors.New("package assignment validation error")
	ErrAssignedPackageMissing = errors.New("catalog package not found for assignment")
)

// --- Membership DTOs ---

type AssignPackageRequest struct {
	ClientID  uuid.UUID `json:"client_id" binding:"required"`
	PackageID uuid.UUID `json:"package_id" binding:"required"`
	StartDate string    `json:"start_date" binding:"required"` // Format YYYY-MM-DD
	EndDate   *string   `json:"end_date"`                      // Optional; derived from duration when omitted
}

// --- MembershipService Interface ---

// MembershipService owns package assignments and the lifecycle synchronizer
// that keeps their persisted status in line with the calendar.
type MembershipService interface {
	AssignPackage(req AssignPackageRequest) (*models.ClientPackage, error)
	GetClientPackagesByOrg(orgID uuid.UUID, status *models.PackageStatus) ([]models.ClientPackage, error)
	GetClientPackagesByClient(clientID uuid.UUID) ([]models.ClientPackage, error)
	SyncPackageStatuses(orgID uuid.UUID) (int, error)
	SyncAllPackageStatuses() (int, error)
}

type membershipService struct {
	clientPackageRepo repositories.ClientPackageRepository
	packageRepo       repositories.PackageCatalogRepository
	clientRepo        repositories.ClientRepository
	orgRepo           repositories.OrganizationRepository
	db                *sql.DB
	warningDays       int
	now               func() time.Time
}

// NewMembershipService creates a new instance of MembershipService.
func NewMembershipService(
	cpRepo repositories.ClientPackageRepository,
	pkgRepo repositories.PackageCatalogRepository,
	clientRepo repositories.ClientRepository,
	orgRepo repositories.OrganizationRepository,
	db *sql.DB,
) MembershipService {
	return &membershipService{
		clientPackageRepo: cpRepo,
		packageRepo:       pkgRepo,
		clientRepo:        clientRepo,
		orgRepo:           orgRepo,
		db:                db,
		warningDays:       models.DefaultWarningDays,
		now:               time.Now,
	}
}

const assignmentDateLayout = "2006-01-02"

// AssignPackage creates a ClientPackage for a client. When no end date is
// supplied it is derived as start_date + duration_days from the catalog entry.
// The initial status comes straight from the resolver, so a backdated
// assignment lands in the right state immediately.
func (s *membershipService) AssignPackage(req AssignPackageRequest) (*models.ClientPackage, error) {
	client, err := s.clientRepo.GetClientByID(req.ClientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to find client for assignment: %w", err)
	}

	pkg, err := s.packageRepo.GetPackageByID(req.PackageID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAssignedPackageMissing
		}
		return nil, fmt.Errorf("failed to find catalog package for assignment: %w", err)
	}
	if pkg.OrgID != client.OrgID {
		return nil, fmt.Errorf("%w: package belongs to a different organization", ErrAssignmentValidation)
	}

	startDate, err := time.Parse(assignmentDateLayout, req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start_date, use YYYY-MM-DD", ErrAssignmentValidation)
	}

	var endDate time.Time
	if req.EndDate != nil && *req.EndDate != "" {
		endDate, err = time.Parse(assignmentDateLayout, *req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid end_date, use YYYY-MM-DD", ErrAssignmentValidation)
		}
	} else {
		endDate = startDate.AddDate(0, 0, pkg.DurationDays)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: end_date precedes start_date", ErrAssignmentValidation)
	}

	cp := &models.ClientPackage{
		ClientID:  client.ID,
		PackageID: pkg.ID,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    models.ResolvePackageStatus(startDate, endDate, s.now(), s.warningDays),
	}

	id, err := s.clientPackageRepo.AssignPackage(s.db, cp)
	if err != nil {
		return nil, fmt.Errorf("failed to assign package in repository: %w", err)
	}
	return s.clientPackageRepo.GetClientPackageByID(id)
}

func (s *membershipService) GetClientPackagesByOrg(orgID uuid.UUID, status *models.PackageStatus) ([]models.ClientPackage, error) {
	if status != nil && !models.IsValidPackageStatus(*status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrAssignmentValidation, *status)
	}
	assignments, err := s.clientPackageRepo.GetClientPackagesByOrg(orgID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to get client packages: %w", err)
	}
	return assignments, nil
}

func (s *membershipService) GetClientPackagesByClient(clientID uuid.UUID) ([]models.ClientPackage, error) {
	assignments, err := s.clientPackageRepo.GetClientPackagesByClient(clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get client package history: %w", err)
	}
	return assignments, nil
}

// SyncPackageStatuses re-evaluates every assignment under the organization and
// persists only the rows whose stored status differs from the derived one.
// Each row update is independently atomic, so a failure mid-batch leaves the
// earlier writes correct and the next invocation picks up the rest. Re-running
// with no date change writes nothing and reports 0.
func (s *membershipService) SyncPackageStatuses(orgID uuid.UUID) (int, error) {
	assignments, err := s.clientPackageRepo.GetClientPackagesByOrg(orgID, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to load client packages for sync: %w", err)
	}

	now := s.now()
	updated := 0
	for _, cp := range assignments {
		derived := models.ResolvePackageStatus(cp.StartDate, cp.EndDate, now, s.warningDays)
		if derived == cp.Status {
			continue
		}
		if err := s.clientPackageRepo.UpdateClientPackageStatus(s.db, cp.ID, derived); err != nil {
			return updated, fmt.Errorf("failed to persist status for assignment %s: %w", cp.ID, err)
		}
		updated++
	}
	return updated, nil
}

// SyncAllPackageStatuses runs the synchronizer for every organization.
// Intended for the periodic sweep.
func (s *membershipService) SyncAllPackageStatuses() (int, error) {
	orgIDs, err := s.orgRepo.GetOrganizationIDs()
	if err != nil {
		return 0, fmt.Errorf("failed to list organizations for sweep: %w", err)
	}

	total := 0
	for _, orgID := range orgIDs {
		updated, err := s.SyncPackageStatuses(orgID)
		total += updated
		if err != nil {
			return total, err
		}
		if updated > 0 {
			utils.LogInfo("Package statuses synchronized", map[string]interface{}{
				"org_id": orgID.String(), "rows_updated": updated,
			})
		}
	}
	return total, nil
}
