package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolvePackageStatus(t *testing.T) {
	start := day(2024, time.March, 1)
	end := day(2024, time.March, 31)

	tests := []struct {
		name        string
		now         time.Time
		warningDays int
		want        PackageStatus
	}{
		{"before start", day(2024, time.February, 28), 3, StatusUpcoming},
		{"day before start", day(2024, time.February, 29), 3, StatusUpcoming},
		{"on start date", start, 3, StatusActive},
		{"mid range", day(2024, time.March, 15), 3, StatusActive},
		{"strictly between start and warning window", day(2024, time.March, 27), 3, StatusActive},
		{"exactly warning_days before end", day(2024, time.March, 28), 3, StatusExpiringSoon},
		{"inside warning window", day(2024, time.March, 30), 3, StatusExpiringSoon},
		{"on end date", end, 3, StatusExpiringSoon},
		{"one day past end", day(2024, time.April, 1), 3, StatusExpired},
		{"long past end", day(2024, time.June, 1), 3, StatusExpired},
		{"on end date with zero warning window", end, 0, StatusExpiringSoon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolvePackageStatus(start, end, tt.now, tt.warningDays)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Every instant maps to exactly one of the four statuses.
func TestResolvePackageStatusTotal(t *testing.T) {
	start := day(2024, time.March, 10)
	end := day(2024, time.March, 20)

	for now := day(2024, time.March, 1); now.Before(day(2024, time.April, 1)); now = now.AddDate(0, 0, 1) {
		got := ResolvePackageStatus(start, end, now, DefaultWarningDays)
		assert.True(t, IsValidPackageStatus(got), "now=%s produced %q", now, got)
	}
}

// Sub-day precision must not leak into the result: every evaluation on the
// same calendar day resolves to the same status.
func TestResolvePackageStatusDayGranularity(t *testing.T) {
	start := day(2024, time.March, 1)
	end := day(2024, time.March, 31)

	morning := time.Date(2024, time.March, 31, 0, 30, 0, 0, time.UTC)
	night := time.Date(2024, time.March, 31, 23, 45, 0, 0, time.UTC)

	assert.Equal(t, ResolvePackageStatus(start, end, morning, 3), ResolvePackageStatus(start, end, night, 3))
	assert.Equal(t, StatusExpiringSoon, ResolvePackageStatus(start, end, night, 3))
}

func TestDaysUntil(t *testing.T) {
	assert.Equal(t, 3, DaysUntil(day(2024, time.March, 31), day(2024, time.March, 28)))
	assert.Equal(t, 0, DaysUntil(day(2024, time.March, 31), day(2024, time.March, 31)))
	assert.Equal(t, -1, DaysUntil(day(2024, time.March, 31), day(2024, time.April, 1)))
	// Time of day is ignored in both operands.
	assert.Equal(t, 1, DaysUntil(
		time.Date(2024, time.March, 31, 1, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 30, 23, 0, 0, 0, time.UTC),
	))
}

// Scenario from the dashboard: a package starting today and ending in two days
// sits inside the default warning window.
func TestResolvePackageStatusExpiringScenario(t *testing.T) {
	today := day(2024, time.May, 6)
	assert.Equal(t, StatusExpiringSoon, ResolvePackageStatus(today, today.AddDate(0, 0, 2), today, DefaultWarningDays))
}
