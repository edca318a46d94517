package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"fitclub_backend/internal/models"

	"github.com/google/uuid"
)

// StatsRepository defines the read-only aggregate queries behind the dashboard
// and reports. It counts persisted statuses as-is; it never re-derives them.
type StatsRepository interface {
	GetDashboardCounts(orgID uuid.UUID, monthStart, monthEnd time.Time) (*models.DashboardStats, error)
	GetRevenueSums(orgID uuid.UUID, from, to time.Time) (*models.RevenueStats, error)
}

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new instance of StatsRepository.
func NewStatsRepository(db *sql.DB) StatsRepository {
	return &statsRepository{db: db}
}

const countPackagesByStatusQuery = `SELECT COUNT(*)
	FROM client_packages cp
	JOIN clients c ON cp.client_id = c.id
	WHERE c.org_id = $1 AND cp.status = $2`

// GetDashboardCounts gathers the five dashboard counts for one organization.
// The month window is computed by the caller in the organization's timezone.
func (r *statsRepository) GetDashboardCounts(orgID uuid.UUID, monthStart, monthEnd time.Time) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	err := r.db.QueryRow(`SELECT COUNT(*) FROM clients WHERE org_id = $1`, orgID).Scan(&stats.TotalClients)
	if err != nil {
		return nil, fmt.Errorf("%w: counting clients: %v", ErrDatabaseError, err)
	}

	statusCounts := []struct {
		status models.PackageStatus
		dest   *int
	}{
		{models.StatusActive, &stats.ActivePackages},
		{models.StatusExpiringSoon, &stats.ExpiringPackages},
		{models.StatusExpired, &stats.ExpiredPackages},
	}
	for _, sc := range statusCounts {
		if err := r.db.QueryRow(countPackagesByStatusQuery, orgID, sc.status).Scan(sc.dest); err != nil {
			return nil, fmt.Errorf("%w: counting %s packages: %v", ErrDatabaseError, sc.status, err)
		}
	}

	err = r.db.QueryRow(
		`SELECT COUNT(*) FROM clients WHERE org_id = $1 AND created_at >= $2 AND created_at < $3`,
		orgID, monthStart, monthEnd,
	).Scan(&stats.NewClientsThisMonth)
	if err != nil {
		return nil, fmt.Errorf("%w: counting new clients this month: %v", ErrDatabaseError, err)
	}

	return stats, nil
}

// GetRevenueSums totals catalog prices over package assignments whose client
// was created within [from, to). The LEFT JOIN makes an assignment whose
// catalog entry has been deleted (or has no price) contribute 0 rather than
// fail.
func (r *statsRepository) GetRevenueSums(orgID uuid.UUID, from, to time.Time) (*models.RevenueStats, error) {
	query := `SELECT
	            COALESCE(SUM(COALESCE(p.price, 0)), 0) AS total_revenue,
	            COALESCE(SUM(CASE WHEN cp.status = $4 THEN COALESCE(p.price, 0) ELSE 0 END), 0) AS active_revenue
	          FROM client_packages cp
	          JOIN clients c ON cp.client_id = c.id
	          LEFT JOIN packages_catalog p ON cp.package_id = p.id
	          WHERE c.org_id = $1 AND c.created_at >= $2 AND c.created_at < $3`

	revenue := &models.RevenueStats{}
	err := r.db.QueryRow(query, orgID, from, to, models.StatusActive).Scan(&revenue.TotalRevenue, &revenue.ActiveRevenue)
	if err != nil {
		return nil, fmt.Errorf("%w: summing revenue: %v", ErrDatabaseError, err)
	}
	return revenue, nil
}
