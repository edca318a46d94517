package models

import "time"

// PackageStatus is the lifecycle state of a ClientPackage, derived purely from
// its start/end dates and a reference time.
type PackageStatus string

const (
	StatusUpcoming     PackageStatus = "upcoming"
	StatusActive       PackageStatus = "active"
	StatusExpiringSoon PackageStatus = "expiring_soon"
	StatusExpired      PackageStatus = "expired"
)

// DefaultWarningDays is the number of days before end_date during which a
// package is reported as expiring_soon.
const DefaultWarningDays = 3

// IsValidPackageStatus reports whether s is one of the four known statuses.
func IsValidPackageStatus(s PackageStatus) bool {
	switch s {
	case StatusUpcoming, StatusActive, StatusExpiringSoon, StatusExpired:
		return true
	}
	return false
}

// dateOnly truncates t to midnight UTC of its calendar day. All status
// comparisons happen at whole-day granularity so that every evaluation on the
// same calendar day yields the same status.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysUntil returns the whole-day difference from now to end (floored).
// Negative when end is in the past.
func DaysUntil(end, now time.Time) int {
	return int(dateOnly(end).Sub(dateOnly(now)).Hours() / 24)
}

// ResolvePackageStatus maps a package's date range and a reference time to a
// status. Precedence, first match wins:
//  1. now before start_date        -> upcoming
//  2. now after end_date           -> expired
//  3. within warningDays of end    -> expiring_soon
//  4. otherwise                    -> active
//
// The reference time is an explicit parameter rather than an ambient clock so
// the function stays pure. Callers are responsible for start <= end.
func ResolvePackageStatus(startDate, endDate, now time.Time, warningDays int) PackageStatus {
	day := dateOnly(now)
	switch {
	case day.Before(dateOnly(startDate)):
		return StatusUpcoming
	case day.After(dateOnly(endDate)):
		return StatusExpired
	}
	if remaining := DaysUntil(endDate, now); remaining >= 0 && remaining <= warningDays {
		return StatusExpiringSoon
	}
	return StatusActive
}
