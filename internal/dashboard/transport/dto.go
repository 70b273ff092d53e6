package transport

// AssetSummary counts assets in the current snapshot.
type AssetSummary struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"byStatus"`
	ByCategory map[string]int `json:"byCategory"`
	// Utilization is the leased share per category in percent.
	Utilization map[string]float64 `json:"utilization"`
	TotalArea   float64            `json:"totalArea"`
	LeasedArea  float64            `json:"leasedArea"`
}

// LeaseSummary aggregates leases.
type LeaseSummary struct {
	ByStatus              map[string]int `json:"byStatus"`
	ActiveMonthlyRevenue  float64        `json:"activeMonthlyRevenue"`
	PendingMonthlyRevenue float64        `json:"pendingMonthlyRevenue"`
}

// ApplicationSummary counts applications.
type ApplicationSummary struct {
	ByStatus map[string]int `json:"byStatus"`
	Pending  int            `json:"pending"`
}

// DashboardResponse is the admin overview.
type DashboardResponse struct {
	Assets       AssetSummary       `json:"assets"`
	Leases       LeaseSummary       `json:"leases"`
	Applications ApplicationSummary `json:"applications"`
}
