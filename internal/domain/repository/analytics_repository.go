package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TendersSummary is the global tender/proposal snapshot.
type TendersSummary struct {
	StatusCounts     map[string]int
	TotalProposals   int
	UniqueSuppliers  int
	AvgProposalPrice decimal.Decimal
	RecentTenders    int // created within the last 30 days
}

// SupplierPerformanceRow is one leaderboard entry, raw from the DB; the use
// case derives the success rate.
type SupplierPerformanceRow struct {
	SupplierID        int64
	SupplierName      string
	SupplierEmail     string
	ProposalsCount    int
	AcceptedProposals int
	AvgPrice          decimal.Decimal
	FirstProposal     *time.Time
	LastProposal      *time.Time
}

// ProductPriceRow is the per-product price statistics row. Only products
// with at least two priced, available proposal items are produced.
type ProductPriceRow struct {
	ProductID      int64
	ProductName    string
	PositionNumber int
	ProposalsCount int
	AvgPrice       decimal.Decimal
	MinPrice       decimal.Decimal
	MaxPrice       decimal.Decimal
	PriceStddev    decimal.Decimal
	PriceRange     decimal.Decimal
}

// SupplierStats aggregates one supplier's proposal history.
type SupplierStats struct {
	TotalProposals    int
	AcceptedProposals int
	AvgPrice          decimal.Decimal
	MinPrice          decimal.Decimal
	MaxPrice          decimal.Decimal
	PricedItems       int
	AvgDeliveryDays   decimal.Decimal
	MinDeliveryDays   int
	MaxDeliveryDays   int
	AnalogItems       int
	TotalItems        int
}

// AnalyticsRepository defines the read-only aggregate queries.
type AnalyticsRepository interface {
	GetTendersSummary(ctx context.Context, recentSince time.Time) (*TendersSummary, error)
	// GetSupplierPerformance returns one page of the leaderboard plus the
	// total number of suppliers with proposals. sortBy is one of
	// proposals_count|avg_price|success_rate, sortOrder asc|desc.
	GetSupplierPerformance(ctx context.Context, sortBy, sortOrder string, page, size int) ([]SupplierPerformanceRow, int, error)
	// GetProductPriceAnalysis restricts to priced+available items and
	// applies the two-item minimum per product.
	GetProductPriceAnalysis(ctx context.Context, productName string, limit int) ([]ProductPriceRow, error)
	GetSupplierStats(ctx context.Context, supplierID int64) (*SupplierStats, error)
}

// DashboardRepository defines the count queries behind the dashboard.
type DashboardRepository interface {
	CountTenders(ctx context.Context) (int, error)
	CountTendersByStatus(ctx context.Context, status string) (int, error)
	CountTendersByCreator(ctx context.Context, userID int64, activeOnly bool) (int, error)
	CountApplications(ctx context.Context) (int, error)
	CountApplicationsBySupplier(ctx context.Context, supplierID int64) (int, error)
	CountActiveApplicationsBySupplier(ctx context.Context, supplierID int64) (int, error)
	CountApplicationsBySupplierAndStatus(ctx context.Context, supplierID int64, status string) (int, error)
	CountUsersByRole(ctx context.Context, role string) (int, error)
}
