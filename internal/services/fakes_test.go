package services

import (
	"fitclub_backend/internal/models"
	"fitclub_backend/internal/repositories"
	"time"

	"github.com/google/uuid"
)

// In-memory repository fakes. Each one keeps its rows in a slice so directory
// order is exactly insertion order, and exposes err fields to simulate storage
// failures.

type fakeClientRepo struct {
	clients   []models.Client
	err       error
	deleteErr error
}

func (f *fakeClientRepo) CreateClient(_ repositories.SQLExecutor, client *models.Client) (uuid.UUID, error) {
	if f.err != nil {
		return uuid.Nil, f.err
	}
	client.ID = uuid.New()
	f.clients = append(f.clients, *client)
	return client.ID, nil
}

func (f *fakeClientRepo) GetClientByID(id uuid.UUID) (*models.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.clients {
		if f.clients[i].ID == id {
			c := f.clients[i]
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeClientRepo) GetClientsByOrg(orgID uuid.UUID) ([]models.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Client, 0, len(f.clients))
	for _, c := range f.clients {
		if c.OrgID == orgID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeClientRepo) GetRecentClients(orgID uuid.UUID, limit int) ([]models.Client, error) {
	clients, err := f.GetClientsByOrg(orgID)
	if err != nil {
		return nil, err
	}
	if len(clients) > limit {
		clients = clients[:limit]
	}
	return clients, nil
}

func (f *fakeClientRepo) UpdateClient(_ repositories.SQLExecutor, client *models.Client) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.clients {
		if f.clients[i].ID == client.ID {
			f.clients[i] = *client
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeClientRepo) DeleteClient(_ repositories.SQLExecutor, id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if f.err != nil {
		return f.err
	}
	for i := range f.clients {
		if f.clients[i].ID == id {
			f.clients = append(f.clients[:i], f.clients[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

type fakePackageRepo struct {
	packages []models.PackageCatalogEntry
	err      error
}

func (f *fakePackageRepo) CreatePackage(_ repositories.SQLExecutor, pkg *models.PackageCatalogEntry) (uuid.UUID, error) {
	if f.err != nil {
		return uuid.Nil, f.err
	}
	pkg.ID = uuid.New()
	f.packages = append(f.packages, *pkg)
	return pkg.ID, nil
}

func (f *fakePackageRepo) GetPackageByID(id uuid.UUID) (*models.PackageCatalogEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.packages {
		if f.packages[i].ID == id {
			p := f.packages[i]
			return &p, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakePackageRepo) GetPackagesByOrg(orgID uuid.UUID) ([]models.PackageCatalogEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.PackageCatalogEntry, 0, len(f.packages))
	for _, p := range f.packages {
		if p.OrgID == orgID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePackageRepo) UpdatePackage(_ repositories.SQLExecutor, pkg *models.PackageCatalogEntry) error {
	for i := range f.packages {
		if f.packages[i].ID == pkg.ID {
			f.packages[i] = *pkg
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakePackageRepo) DeletePackage(_ repositories.SQLExecutor, id uuid.UUID) error {
	for i := range f.packages {
		if f.packages[i].ID == id {
			f.packages = append(f.packages[:i], f.packages[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

type fakeOrgRepo struct {
	orgs []models.Organization
	err  error
}

func (f *fakeOrgRepo) CreateOrganization(_ repositories.SQLExecutor, org *models.Organization) (uuid.UUID, error) {
	if f.err != nil {
		return uuid.Nil, f.err
	}
	for _, existing := range f.orgs {
		if existing.UserID == org.UserID {
			return uuid.Nil, repositories.ErrDuplicateKey
		}
	}
	org.ID = uuid.New()
	f.orgs = append(f.orgs, *org)
	return org.ID, nil
}

func (f *fakeOrgRepo) GetOrganizationByID(id uuid.UUID) (*models.Organization, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.orgs {
		if f.orgs[i].ID == id {
			o := f.orgs[i]
			return &o, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeOrgRepo) GetOrganizationByOwner(userID uuid.UUID) (*models.Organization, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.orgs {
		if f.orgs[i].UserID == userID {
			o := f.orgs[i]
			return &o, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeOrgRepo) GetOrganizationIDs() ([]uuid.UUID, error) {
	if f.err != nil {
		return nil, f.err
	}
	ids := make([]uuid.UUID, 0, len(f.orgs))
	for _, o := range f.orgs {
		ids = append(ids, o.ID)
	}
	return ids, nil
}

func (f *fakeOrgRepo) UpdateOrganization(_ repositories.SQLExecutor, org *models.Organization) error {
	for i := range f.orgs {
		if f.orgs[i].ID == org.ID {
			f.orgs[i] = *org
			return nil
		}
	}
	return repositories.ErrNotFound
}

type fakeClientPackageRepo struct {
	assignments []models.ClientPackage
	loadErr     error
	failOnID    uuid.UUID
	failErr     error
}

func (f *fakeClientPackageRepo) AssignPackage(_ repositories.SQLExecutor, cp *models.ClientPackage) (uuid.UUID, error) {
	cp.ID = uuid.New()
	f.assignments = append(f.assignments, *cp)
	return cp.ID, nil
}

func (f *fakeClientPackageRepo) GetClientPackageByID(id uuid.UUID) (*models.ClientPackage, error) {
	for i := range f.assignments {
		if f.assignments[i].ID == id {
			cp := f.assignments[i]
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeClientPackageRepo) GetClientPackagesByOrg(_ uuid.UUID, status *models.PackageStatus) ([]models.ClientPackage, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	out := make([]models.ClientPackage, 0, len(f.assignments))
	for _, cp := range f.assignments {
		if status == nil || cp.Status == *status {
			out = append(out, cp)
		}
	}
	return out, nil
}

func (f *fakeClientPackageRepo) GetClientPackagesByClient(clientID uuid.UUID) ([]models.ClientPackage, error) {
	out := make([]models.ClientPackage, 0, len(f.assignments))
	for _, cp := range f.assignments {
		if cp.ClientID == clientID {
			out = append(out, cp)
		}
	}
	return out, nil
}

func (f *fakeClientPackageRepo) UpdateClientPackageStatus(_ repositories.SQLExecutor, id uuid.UUID, status models.PackageStatus) error {
	if f.failOnID != uuid.Nil && f.failOnID == id {
		return f.failErr
	}
	for i := range f.assignments {
		if f.assignments[i].ID == id {
			f.assignments[i].Status = status
			return nil
		}
	}
	return repositories.ErrNotFound
}

type fakeAttendanceRepo struct {
	entries   []models.AttendanceLog
	records   []models.CheckInRecord
	appendErr error
}

func (f *fakeAttendanceRepo) AppendAttendance(_ repositories.SQLExecutor, entry *models.AttendanceLog) (uuid.UUID, error) {
	if f.appendErr != nil {
		return uuid.Nil, f.appendErr
	}
	entry.ID = uuid.New()
	f.entries = append(f.entries, *entry)
	return entry.ID, nil
}

func (f *fakeAttendanceRepo) GetRecentCheckIns(_ uuid.UUID, limit int) ([]models.CheckInRecord, error) {
	records := f.records
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

type fakeStatsRepo struct {
	stats   *models.DashboardStats
	revenue *models.RevenueStats
	err     error

	lastMonthStart time.Time
	lastMonthEnd   time.Time
	lastFrom       time.Time
	lastTo         time.Time
}

func (f *fakeStatsRepo) GetDashboardCounts(_ uuid.UUID, monthStart, monthEnd time.Time) (*models.DashboardStats, error) {
	f.lastMonthStart = monthStart
	f.lastMonthEnd = monthEnd
	if f.err != nil {
		return nil, f.err
	}
	return f.stats, nil
}

func (f *fakeStatsRepo) GetRevenueSums(_ uuid.UUID, from, to time.Time) (*models.RevenueStats, error) {
	f.lastFrom = from
	f.lastTo = to
	if f.err != nil {
		return nil, f.err
	}
	return f.revenue, nil
}
