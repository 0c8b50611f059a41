package model

import (
	"time"
)

// DashboardResponse aggregates the headline numbers shown on the admin dashboard.
type DashboardResponse struct {
	TotalProjects      int64   `json:"total_projects"`
	ActiveProjects     int64   `json:"active_projects"`
	CompletedProjects  int64   `json:"completed_projects"`
	TotalQuotations    int64   `json:"total_quotations"`
	QuotationValue     float64 `json:"quotation_value"` // sum of grand totals in range
	TotalPayments      float64 `json:"total_payments"`
	PendingLeaves      int64   `json:"pending_leaves"`
	ExpiringHosting    int64   `json:"expiring_hosting"` // expiring within 30 days
	TimeRangeStartDate time.Time `json:"time_range_start_date"`
	TimeRangeEndDate   time.Time `json:"time_range_end_date"`
}

// ProjectRevenue represents a project ranked by the payments received against it.
type ProjectRevenue struct {
	ProjectID   string  `json:"project_id"`
	ProjectName string  `json:"project_name"`
	ClientName  string  `json:"client_name"`
	TotalPaid   float64 `json:"total_paid"`
}
