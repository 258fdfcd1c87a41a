package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TendersSummaryResponse GET /api/v1/analytics/tenders-summary.
type TendersSummaryResponse struct {
	StatusCounts     map[string]int  `json:"status_counts"`
	TotalProposals   int             `json:"total_proposals"`
	UniqueSuppliers  int             `json:"unique_suppliers"`
	AvgProposalPrice decimal.Decimal `json:"avg_proposal_price"`
	RecentTenders    int             `json:"recent_tenders_30_days"`
}

// SupplierPerformanceItem one leaderboard row. SuccessRate is
// accepted/total*100, rounded to two decimals, zero when the supplier has
// no proposals.
type SupplierPerformanceItem struct {
	SupplierID        int64           `json:"supplier_id"`
	SupplierName      string          `json:"supplier_name"`
	SupplierEmail     string          `json:"supplier_email"`
	ProposalsCount    int             `json:"proposals_count"`
	AcceptedProposals int             `json:"accepted_proposals"`
	SuccessRate       decimal.Decimal `json:"success_rate"`
	AvgPrice          decimal.Decimal `json:"avg_price"`
	FirstProposal     *time.Time      `json:"first_proposal"`
	LastProposal      *time.Time      `json:"last_proposal"`
}

type SupplierPerformanceResponse struct {
	Items []SupplierPerformanceItem `json:"items"`
	Total int                       `json:"total"`
	Page  int                       `json:"page"`
	Size  int                       `json:"size"`
	Pages int                       `json:"pages"`
}

// TenderProposalAnalyticsItem one proposal with its derived totals.
// TotalPrice sums price_per_unit over priced, available items.
type TenderProposalAnalyticsItem struct {
	ProposalID     int64           `json:"proposal_id"`
	SupplierID     int64           `json:"supplier_id"`
	SupplierName   string          `json:"supplier_name"`
	Status         string          `json:"status"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	AvailableItems int             `json:"available_items"`
	AnalogItems    int             `json:"analog_items"`
	TotalItems     int             `json:"total_items"`
	CreatedAt      time.Time       `json:"created_at"`
}

// TenderProposalsAnalyticsResponse GET /api/v1/analytics/tender/:id/proposals.
type TenderProposalsAnalyticsResponse struct {
	TenderID       int64                         `json:"tender_id"`
	TenderTitle    string                        `json:"tender_title"`
	ProposalsCount int                           `json:"proposals_count"`
	Proposals      []TenderProposalAnalyticsItem `json:"proposals"`
}

// ProductPriceAnalysisItem price statistics over priced, available
// proposal items of one product.
type ProductPriceAnalysisItem struct {
	ProductID      int64           `json:"product_id"`
	ProductName    string          `json:"product_name"`
	PositionNumber int             `json:"position_number"`
	ProposalsCount int             `json:"proposals_count"`
	AvgPrice       decimal.Decimal `json:"avg_price"`
	MinPrice       decimal.Decimal `json:"min_price"`
	MaxPrice       decimal.Decimal `json:"max_price"`
	PriceStddev    decimal.Decimal `json:"price_stddev"`
	PriceRange     decimal.Decimal `json:"price_range"`
}

type ProductPriceAnalysisResponse struct {
	Items []ProductPriceAnalysisItem `json:"items"`
	Total int                        `json:"total"`
}

type SupplierPriceStats struct {
	AvgPrice   decimal.Decimal `json:"avg_price"`
	MinPrice   decimal.Decimal `json:"min_price"`
	MaxPrice   decimal.Decimal `json:"max_price"`
	TotalItems int             `json:"total_items"`
}

type SupplierDeliveryStats struct {
	AvgDays decimal.Decimal `json:"avg_days"`
	MinDays int             `json:"min_days"`
	MaxDays int             `json:"max_days"`
}

type SupplierRecentProposal struct {
	ProposalID  int64     `json:"proposal_id"`
	TenderID    int64     `json:"tender_id"`
	TenderTitle string    `json:"tender_title"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// SupplierStatisticsResponse GET /api/v1/analytics/supplier/:id/statistics.
type SupplierStatisticsResponse struct {
	SupplierID        int64                    `json:"supplier_id"`
	SupplierName      string                   `json:"supplier_name"`
	TotalProposals    int                      `json:"total_proposals"`
	AcceptedProposals int                      `json:"accepted_proposals"`
	SuccessRate       decimal.Decimal          `json:"success_rate"`
	PriceStats        SupplierPriceStats       `json:"price_stats"`
	DeliveryStats     SupplierDeliveryStats    `json:"delivery_stats"`
	AnalogPercentage  decimal.Decimal          `json:"analog_percentage"`
	RecentProposals   []SupplierRecentProposal `json:"recent_proposals"`
}
