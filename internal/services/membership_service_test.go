package services

import (
	"errors"
	"testing"
	"time"

	"fitclub_backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestMembershipService(cpRepo *fakeClientPackageRepo, pkgRepo *fakePackageRepo, clientRepo *fakeClientRepo, orgRepo *fakeOrgRepo, now time.Time) *membershipService {
	return &membershipService{
		clientPackageRepo: cpRepo,
		packageRepo:       pkgRepo,
		clientRepo:        clientRepo,
		orgRepo:           orgRepo,
		warningDays:       models.DefaultWarningDays,
		now:               func() time.Time { return now },
	}
}

func seedClientAndPackage(clientRepo *fakeClientRepo, pkgRepo *fakePackageRepo, orgID uuid.UUID, durationDays int) (uuid.UUID, uuid.UUID) {
	clientID := uuid.New()
	clientRepo.clients = append(clientRepo.clients, models.Client{
		ID: clientID, OrgID: orgID, FullName: "Marat Esenov", Status: models.ClientStatusActive,
	})
	pkgID := uuid.New()
	pkgRepo.packages = append(pkgRepo.packages, models.PackageCatalogEntry{
		ID: pkgID, OrgID: orgID, Name: "Monthly", DurationDays: durationDays,
	})
	return clientID, pkgID
}

func TestAssignPackageDerivesEndDateFromDuration(t *testing.T) {
	cpRepo := &fakeClientPackageRepo{}
	pkgRepo := &fakePackageRepo{}
	clientRepo := &fakeClientRepo{}
	orgID := uuid.New()
	clientID, pkgID := seedClientAndPackage(clientRepo, pkgRepo, orgID, 30)

	svc := newTestMembershipService(cpRepo, pkgRepo, clientRepo, &fakeOrgRepo{}, date(2026, time.March, 10))

	cp, err := svc.AssignPackage(AssignPackageRequest{
		ClientID:  clientID,
		PackageID: pkgID,
		StartDate: "2026-03-01",
	})
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.March, 1), cp.StartDate)
	assert.Equal(t, date(2026, time.March, 31), cp.EndDate)
	assert.Equal(t, models.StatusActive, cp.Status)
}

func TestAssignPackageBackdatedLandsExpired(t *testing.T) {
	cpRepo := &fakeClientPackageRepo{}
	pkgRepo := &fakePackageRepo{}
	clientRepo := &fakeClientRepo{}
	orgID := uuid.New()
	clientID, pkgID := seedClientAndPackage(clientRepo, pkgRepo, orgID, 30)

	svc := newTestMembershipService(cpRepo, pkgRepo, clientRepo, &fakeOrgRepo{}, date(2026, time.June, 1))

	cp, err := svc.AssignPackage(AssignPackageRequest{
		ClientID:  clientID,
		PackageID: pkgID,
		StartDate: "2026-01-01",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusExpired, cp.Status)
}

func TestAssignPackageFutureStartLandsUpcoming(t *testing.T) {
	cpRepo := &fakeClientPackageRepo{}
	pkgRepo := &fakePackageRepo{}
	clientRepo := &fakeClientRepo{}
	orgID := uuid.New()
	clientID, pkgID := seedClientAndPackage(clientRepo, pkgRepo, orgID, 30)

	svc := newTestMembershipService(cpRepo, pkgRepo, clientRepo, &fakeOrgRepo{}, date(2026, time.March, 10))

	cp, err := svc.AssignPackage(AssignPackageRequest{
		ClientID:  clientID,
		PackageID: pkgID,
		StartDate: "2026-04-01",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusUpcoming, cp.Status)
}

func TestAssignPackageRejectsCrossOrgPackage(t *testing.T) {
	cpRepo := &fakeClientPackageRepo{}
	pkgRepo := &fakePackageRepo{}
	clientRepo := &fakeClientRepo{}
	clientID, _ := seedClientAndPackage(clientRepo, pkgRepo, uuid.New(), 30)

	otherPkgID := uuid.New()
	pkgRepo.packages = append(pkgRepo.packages, models.PackageCatalogEntry{
		ID: otherPkgID, OrgID: uuid.New(), Name: "Foreign", DurationDays: 30,
	})

	svc := newTestMembershipService(cpRepo, pkgRepo, clientRepo, &fakeOrgRepo{}, date(2026, time.March, 10))

	_, err := svc.AssignPackage(AssignPackageRequest{
		ClientID:  clientID,
		PackageID: otherPkgID,
		StartDate: "2026-03-01",
	})
	assert.ErrorIs(t, err, ErrAssignmentValidation)
	assert.Empty(t, cpRepo.assignments)
}

func TestAssignPackageRejectsEndBeforeStart(t *testing.T) {
	cpRepo := &fakeClientPackageRepo{}
	pkgRepo := &fakePackageRepo{}
	clientRepo := &fakeClientRepo{}
	orgID := uuid.New()
	clientID, pkgID := seedClientAndPackage(clientRepo, pkgRepo, orgID, 30)

	svc := newTestMembershipService(cpRepo, pkgRepo, clientRepo, &fakeOrgRepo{}, date(2026, time.March, 10))

	end := "2026-02-01"
	_, err := svc.AssignPackage(AssignPackageRequest{
		ClientID:  clientID,
		PackageID: pkgID,
		StartDate: "2026-03-01",
		EndDate:   &end,
	})
	assert.ErrorIs(t, err, ErrAssignmentValidation)
}

func seedAssignment(cpRepo *fakeClientPackageRepo, start, end time.Time, stored models.PackageStatus) uuid.UUID {
	id := uuid.New()
	cpRepo.assignments = append(cpRepo.assignments, models.ClientPackage{
		ID: id, ClientID: uuid.New(), PackageID: uuid.New(),
		StartDate: start, EndDate: end, Status: stored,
	})
	return id
}

func TestSyncPackageStatusesWritesOnlyChangedRows(t *testing.T) {
	cpRepo := &fakeClientPackageRepo{}
	now := date(2026, time.June, 15)

	// Stored active but the calendar says expired.
	staleID := seedAssignment(cpRepo, date(2026, time.January, 1), date(2026, time.February, 1), models.StatusActive)
	// Stored active and still active.
	seedAssignment(cpRepo, date(2026, time.June, 1), date(2026, time.July, 30), models.StatusActive)

	svc := newTestMembershipService(cpRepo, &fakePackageRepo{}, &fakeClientRepo{}, &fakeOrgRepo{}, now)

	updated, err := svc.SyncPackageStatuses(uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	stale, err := cpRepo.GetClientPackageByID(staleID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusExpired, stale.Status)

	// Second run with nothing changed writes nothing.
	updated, err = svc.SyncPackageStatuses(uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 0, updated)
}

func TestSyncPackageStatusesResumesAfterMidBatchFailure(t *testing.T) {
	cpRepo := &fakeClientPackageRepo{}
	now := date(2026, time.June, 15)

	firstID := seedAssignment(cpRepo, date(2026, time.January, 1), date(2026, time.February, 1), models.StatusActive)
	secondID := seedAssignment(cpRepo, date(2026, time.January, 1), date(2026, time.March, 1), models.StatusActive)
	thirdID := seedAssignment(cpRepo, date(2026, time.January, 1), date(2026, time.April, 1), models.StatusActive)

	cpRepo.failOnID = secondID
	cpRepo.failErr = errors.New("connection reset")

	svc := newTestMembershipService(cpRepo, &fakePackageRepo{}, &fakeClientRepo{}, &fakeOrgRepo{}, now)

	updated, err := svc.SyncPackageStatuses(uuid.New())
	require.Error(t, err)
	assert.Equal(t, 1, updated)

	// The row written before the failure stays written.
	first, _ := cpRepo.GetClientPackageByID(firstID)
	assert.Equal(t, models.StatusExpired, first.Status)

	// Next invocation picks up the remainder.
	cpRepo.failOnID = uuid.Nil
	updated, err = svc.SyncPackageStatuses(uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 2, updated)

	second, _ := cpRepo.GetClientPackageByID(secondID)
	third, _ := cpRepo.GetClientPackageByID(thirdID)
	assert.Equal(t, models.StatusExpired, second.Status)
	assert.Equal(t, models.StatusExpired, third.Status)
}

func TestSyncPackageStatusesMovesActiveIntoWarningWindow(t *testing.T) {
	cpRepo := &fakeClientPackageRepo{}
	now := date(2026, time.June, 15)

	// Ends in two days: inside the warning window.
	id := seedAssignment(cpRepo, date(2026, time.June, 1), date(2026, time.June, 17), models.StatusActive)

	svc := newTestMembershipService(cpRepo, &fakePackageRepo{}, &fakeClientRepo{}, &fakeOrgRepo{}, now)

	updated, err := svc.SyncPackageStatuses(uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	cp, _ := cpRepo.GetClientPackageByID(id)
	assert.Equal(t, models.StatusExpiringSoon, cp.Status)
}

func TestSyncAllPackageStatusesSweepsEveryOrganization(t *testing.T) {
	cpRepo := &fakeClientPackageRepo{}
	orgRepo := &fakeOrgRepo{orgs: []models.Organization{
		{ID: uuid.New(), UserID: uuid.New(), Name: "Studio A"},
		{ID: uuid.New(), UserID: uuid.New(), Name: "Studio B"},
	}}
	now := date(2026, time.June, 15)

	seedAssignment(cpRepo, date(2026, time.January, 1), date(2026, time.February, 1), models.StatusActive)

	svc := newTestMembershipService(cpRepo, &fakePackageRepo{}, &fakeClientRepo{}, orgRepo, now)

	// The fake ignores the org filter, so the stale row is visible to the
	// first org's pass and already converged for the second.
	total, err := svc.SyncAllPackageStatuses()
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestGetClientPackagesByOrgRejectsUnknownStatusFilter(t *testing.T) {
	svc := newTestMembershipService(&fakeClientPackageRepo{}, &fakePackageRepo{}, &fakeClientRepo{}, &fakeOrgRepo{}, time.Now())

	bogus := models.PackageStatus("paused")
	_, err := svc.GetClientPackagesByOrg(uuid.New(), &bogus)
	assert.ErrorIs(t, err, ErrAssignmentValidation)
}
