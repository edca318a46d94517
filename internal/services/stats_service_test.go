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

func newTestStatsService(statsRepo *fakeStatsRepo, clientRepo *fakeClientRepo, orgRepo *fakeOrgRepo, policy StatsErrorPolicy, now time.Time) *statsService {
	return &statsService{
		statsRepo:  statsRepo,
		clientRepo: clientRepo,
		orgRepo:    orgRepo,
		policy:     policy,
		now:        func() time.Time { return now },
	}
}

func TestGetDashboardStatsFailSoftServesZeros(t *testing.T) {
	statsRepo := &fakeStatsRepo{err: errors.New("connection refused")}
	orgRepo := &fakeOrgRepo{err: errors.New("connection refused")}
	svc := newTestStatsService(statsRepo, &fakeClientRepo{}, orgRepo, StatsFailSoft, time.Now())

	stats, err := svc.GetDashboardStats(uuid.New())
	require.NoError(t, err)
	assert.Equal(t, &models.DashboardStats{}, stats)
}

func TestGetDashboardStatsStrictPropagatesFailure(t *testing.T) {
	orgID := uuid.New()
	statsRepo := &fakeStatsRepo{err: errors.New("connection refused")}
	orgRepo := &fakeOrgRepo{orgs: []models.Organization{{ID: orgID, UserID: uuid.New(), Name: "Studio"}}}
	svc := newTestStatsService(statsRepo, &fakeClientRepo{}, orgRepo, StatsFailStrict, time.Now())

	_, err := svc.GetDashboardStats(orgID)
	assert.Error(t, err)
}

func TestGetDashboardStatsMonthWindowUsesOrgTimezone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	orgID := uuid.New()
	statsRepo := &fakeStatsRepo{stats: &models.DashboardStats{TotalClients: 7}}
	orgRepo := &fakeOrgRepo{orgs: []models.Organization{
		{ID: orgID, UserID: uuid.New(), Name: "Studio", Timezone: "America/New_York"},
	}}

	// 02:00 UTC on March 1st is still the evening of February 28th in New
	// York, so the month window must be February.
	now := time.Date(2026, time.March, 1, 2, 0, 0, 0, time.UTC)
	svc := newTestStatsService(statsRepo, &fakeClientRepo{}, orgRepo, StatsFailSoft, now)

	stats, err := svc.GetDashboardStats(orgID)
	require.NoError(t, err)
	assert.Equal(t, 7, stats.TotalClients)
	assert.True(t, statsRepo.lastMonthStart.Equal(time.Date(2026, time.February, 1, 0, 0, 0, 0, ny)))
	assert.True(t, statsRepo.lastMonthEnd.Equal(time.Date(2026, time.March, 1, 0, 0, 0, 0, ny)))
}

func TestGetRevenueStatsFailSoftServesZeros(t *testing.T) {
	statsRepo := &fakeStatsRepo{err: errors.New("timeout")}
	svc := newTestStatsService(statsRepo, &fakeClientRepo{}, &fakeOrgRepo{}, StatsFailSoft, time.Now())

	revenue, err := svc.GetRevenueStats(uuid.New(), time.Now().AddDate(0, -1, 0), time.Now())
	require.NoError(t, err)
	assert.Equal(t, &models.RevenueStats{}, revenue)
}

func TestGetRevenueStatsStrictPropagatesFailure(t *testing.T) {
	statsRepo := &fakeStatsRepo{err: errors.New("timeout")}
	svc := newTestStatsService(statsRepo, &fakeClientRepo{}, &fakeOrgRepo{}, StatsFailStrict, time.Now())

	_, err := svc.GetRevenueStats(uuid.New(), time.Now().AddDate(0, -1, 0), time.Now())
	assert.Error(t, err)
}

func TestGetRevenueStatsPassesWindowThrough(t *testing.T) {
	statsRepo := &fakeStatsRepo{revenue: &models.RevenueStats{TotalRevenue: 1500, ActiveRevenue: 900}}
	svc := newTestStatsService(statsRepo, &fakeClientRepo{}, &fakeOrgRepo{}, StatsFailSoft, time.Now())

	from := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	revenue, err := svc.GetRevenueStats(uuid.New(), from, to)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, revenue.TotalRevenue)
	assert.Equal(t, 900.0, revenue.ActiveRevenue)
	assert.True(t, statsRepo.lastFrom.Equal(from))
	assert.True(t, statsRepo.lastTo.Equal(to))
}

func TestRecentClientsIsRestartable(t *testing.T) {
	orgID := uuid.New()
	clientRepo := seedDirectory(orgID,
		models.Client{FullName: "Ana Maria"},
		models.Client{FullName: "Ryan Cole"},
		models.Client{FullName: "Dana Whitfield"},
	)
	svc := newTestStatsService(&fakeStatsRepo{}, clientRepo, &fakeOrgRepo{}, StatsFailSoft, time.Now())

	seq := svc.RecentClients(orgID, 2)

	var firstPass []string
	for c := range seq {
		firstPass = append(firstPass, c.FullName)
	}
	assert.Equal(t, []string{"Ana Maria", "Ryan Cole"}, firstPass)

	// Breaking early and ranging again starts over from a fresh query.
	for range seq {
		break
	}
	var secondPass []string
	for c := range seq {
		secondPass = append(secondPass, c.FullName)
	}
	assert.Equal(t, firstPass, secondPass)
}

func TestRecentClientsFailSoftYieldsNothing(t *testing.T) {
	clientRepo := &fakeClientRepo{err: errors.New("connection refused")}
	svc := newTestStatsService(&fakeStatsRepo{}, clientRepo, &fakeOrgRepo{}, StatsFailSoft, time.Now())

	count := 0
	for range svc.RecentClients(uuid.New(), 5) {
		count++
	}
	assert.Zero(t, count)
}
