package services

import (
	"fmt"
	"iter"
	"time"

	"fitclub_backend/internal/models"
	"fitclub_backend/internal/repositories"
	"fitclub_backend/pkg/utils"

	"github.com/google/uuid"
)

// StatsErrorPolicy controls how the aggregation engine reacts to storage
// failures. The historical behavior is fail-soft: dashboards render zeros
// instead of crashing. Callers that need strict diagnostics opt into
// StatsFailStrict. This policy lives here and only here.
type StatsErrorPolicy int

const (
	StatsFailSoft StatsErrorPolicy = iota
	StatsFailStrict
)

// StatsService is the aggregation engine. It reads persisted package statuses
// as-is; callers needing strict freshness run the lifecycle synchronizer
// first.
type StatsService interface {
	GetDashboardStats(orgID uuid.UUID) (*models.DashboardStats, error)
	GetRevenueStats(orgID uuid.UUID, from, to time.Time) (*models.RevenueStats, error)
	RecentClients(orgID uuid.UUID, limit int) iter.Seq[models.Client]
}

type statsService struct {
	statsRepo  repositories.StatsRepository
	clientRepo repositories.ClientRepository
	orgRepo    repositories.OrganizationRepository
	policy     StatsErrorPolicy
	now        func() time.Time
}

// NewStatsService creates a new instance of StatsService.
func NewStatsService(
	statsRepo repositories.StatsRepository,
	clientRepo repositories.ClientRepository,
	orgRepo repositories.OrganizationRepository,
	policy StatsErrorPolicy,
) StatsService {
	return &statsService{
		statsRepo:  statsRepo,
		clientRepo: clientRepo,
		orgRepo:    orgRepo,
		policy:     policy,
		now:        time.Now,
	}
}

// GetDashboardStats returns the five dashboard counts. Under StatsFailSoft any
// storage failure yields the all-zero struct and a log line, never an error.
// The calendar-month window for new clients is computed in the organization's
// timezone.
func (s *statsService) GetDashboardStats(orgID uuid.UUID) (*models.DashboardStats, error) {
	loc := time.UTC
	org, err := s.orgRepo.GetOrganizationByID(orgID)
	if err == nil {
		loc = org.Location()
	} else if s.policy == StatsFailStrict {
		return nil, fmt.Errorf("failed to load organization for stats: %w", err)
	}

	now := s.now().In(loc)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	monthEnd := monthStart.AddDate(0, 1, 0)

	stats, err := s.statsRepo.GetDashboardCounts(orgID, monthStart, monthEnd)
	if err != nil {
		if s.policy == StatsFailStrict {
			return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
		}
		utils.LogError(err, "Dashboard stats unavailable, serving zero defaults")
		return &models.DashboardStats{}, nil
	}
	return stats, nil
}

// GetRevenueStats sums catalog prices over assignments whose client was
// created within [from, to). Assignments pointing at a deleted or unpriced
// catalog entry contribute 0. Same error policy as the dashboard counts.
func (s *statsService) GetRevenueStats(orgID uuid.UUID, from, to time.Time) (*models.RevenueStats, error) {
	revenue, err := s.statsRepo.GetRevenueSums(orgID, from, to)
	if err != nil {
		if s.policy == StatsFailStrict {
			return nil, fmt.Errorf("failed to compute revenue stats: %w", err)
		}
		utils.LogError(err, "Revenue stats unavailable, serving zero defaults")
		return &models.RevenueStats{}, nil
	}
	return revenue, nil
}

// RecentClients yields the organization's most recently created clients,
// strictly descending by creation time, at most limit of them. The sequence
// re-queries on every range, so it is restartable; a storage failure yields an
// empty sequence under the fail-soft policy.
func (s *statsService) RecentClients(orgID uuid.UUID, limit int) iter.Seq[models.Client] {
	return func(yield func(models.Client) bool) {
		clients, err := s.clientRepo.GetRecentClients(orgID, limit)
		if err != nil {
			utils.LogError(err, "Recent clients unavailable, serving empty listing")
			return
		}
		for _, client := range clients {
			if !yield(client) {
				return
			}
		}
	}
}
