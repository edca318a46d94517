package models

// DashboardStats is the per-organization dashboard summary. Counts of package
// rows reflect the persisted status values; freshness is the lifecycle
// synchronizer's responsibility.
type DashboardStats struct {
	TotalClients        int `json:"total_clients"`
	ActivePackages      int `json:"active_packages"`
	ExpiringPackages    int `json:"expiring_packages"`
	ExpiredPackages     int `json:"expired_packages"`
	NewClientsThisMonth int `json:"new_clients_this_month"`
}

// RevenueStats sums catalog prices across package assignments whose client was
// created within the requested range. ActiveRevenue restricts the sum to rows
// with status active.
type RevenueStats struct {
	TotalRevenue  float64 `json:"total_revenue"`
	ActiveRevenue float64 `json:"active_revenue"`
}
