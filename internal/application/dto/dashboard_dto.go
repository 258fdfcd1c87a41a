package dto

import "time"

// DashboardStatsResponse GET /api/v1/dashboard/stats. The common counters
// are always present; the role-specific blocks stay nil for other roles.
type DashboardStatsResponse struct {
	TotalTenders      int `json:"total_tenders"`
	PublishedTenders  int `json:"published_tenders"`
	InProgressTenders int `json:"in_progress_tenders"`

	// supplier only
	MyApplications     *int `json:"my_applications,omitempty"`
	ActiveApplications *int `json:"active_applications,omitempty"`
	WonApplications    *int `json:"won_applications,omitempty"`

	// staff only
	DraftTenders      *int `json:"draft_tenders,omitempty"`
	CompletedTenders  *int `json:"completed_tenders,omitempty"`
	CancelledTenders  *int `json:"cancelled_tenders,omitempty"`
	TotalApplications *int `json:"total_applications,omitempty"`
	TotalSuppliers    *int `json:"total_suppliers,omitempty"`

	// contract manager only
	MyTenders       *int `json:"my_tenders,omitempty"`
	MyActiveTenders *int `json:"my_active_tenders,omitempty"`
}

// RecentActivityItem one feed entry: a recent application for suppliers,
// a recent tender for staff.
type RecentActivityItem struct {
	Type              string    `json:"type"`
	ID                int64     `json:"id"`
	TenderID          int64     `json:"tender_id,omitempty"`
	Title             string    `json:"title"`
	Status            string    `json:"status"`
	ApplicationsCount *int      `json:"applications_count,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

type RecentActivityResponse struct {
	Items []RecentActivityItem `json:"items"`
}
