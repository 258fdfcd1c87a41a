package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/almazgeobur/etp-api/internal/application/dto"
	"github.com/almazgeobur/etp-api/internal/domain"
	"github.com/almazgeobur/etp-api/internal/domain/entity"
	"github.com/almazgeobur/etp-api/internal/domain/repository"
)

const (
	recentProposalsLimit     = 5
	productAnalysisMaxLimit  = 200
	productAnalysisDefLimit  = 50
	tendersSummaryRecentDays = 30
)

// AnalyticsUseCase serves the staff analytics endpoints. Ratios are
// derived here from the raw counts so all rounding lives in one place.
type AnalyticsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	proposalRepo  repository.ProposalRepository
	tenderRepo    repository.TenderRepository
	userRepo      repository.UserRepository
}

// NewAnalyticsUseCase builds the use case with its ports.
func NewAnalyticsUseCase(
	analyticsRepo repository.AnalyticsRepository,
	proposalRepo repository.ProposalRepository,
	tenderRepo repository.TenderRepository,
	userRepo repository.UserRepository,
) *AnalyticsUseCase {
	return &AnalyticsUseCase{
		analyticsRepo: analyticsRepo,
		proposalRepo:  proposalRepo,
		tenderRepo:    tenderRepo,
		userRepo:      userRepo,
	}
}

var hundred = decimal.NewFromInt(100)

// percentage returns part/total*100 rounded to two decimals, zero when
// total is zero.
func percentage(part, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).Mul(hundred).Div(decimal.NewFromInt(int64(total))).Round(2)
}

// TendersSummary returns the global tender/proposal snapshot.
func (uc *AnalyticsUseCase) TendersSummary(ctx context.Context) (*dto.TendersSummaryResponse, error) {
	since := time.Now().AddDate(0, 0, -tendersSummaryRecentDays)
	s, err := uc.analyticsRepo.GetTendersSummary(ctx, since)
	if err != nil {
		return nil, err
	}
	return &dto.TendersSummaryResponse{
		StatusCounts:     s.StatusCounts,
		TotalProposals:   s.TotalProposals,
		UniqueSuppliers:  s.UniqueSuppliers,
		AvgProposalPrice: s.AvgProposalPrice,
		RecentTenders:    s.RecentTenders,
	}, nil
}

// SupplierPerformance returns one page of the supplier leaderboard.
func (uc *AnalyticsUseCase) SupplierPerformance(ctx context.Context, sortBy, sortOrder string, page dto.PageQuery) (*dto.SupplierPerformanceResponse, error) {
	switch sortBy {
	case "":
		sortBy = "proposals_count"
	case "proposals_count", "avg_price", "success_rate":
	default:
		return nil, domain.ErrInvalidInput
	}
	switch sortOrder {
	case "":
		sortOrder = "desc"
	case "asc", "desc":
	default:
		return nil, domain.ErrInvalidInput
	}
	page.Normalize()

	rows, total, err := uc.analyticsRepo.GetSupplierPerformance(ctx, sortBy, sortOrder, page.Page, page.Size)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierPerformanceItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.SupplierPerformanceItem{
			SupplierID:        r.SupplierID,
			SupplierName:      r.SupplierName,
			SupplierEmail:     r.SupplierEmail,
			ProposalsCount:    r.ProposalsCount,
			AcceptedProposals: r.AcceptedProposals,
			SuccessRate:       percentage(r.AcceptedProposals, r.ProposalsCount),
			AvgPrice:          r.AvgPrice,
			FirstProposal:     r.FirstProposal,
			LastProposal:      r.LastProposal,
		})
	}
	return &dto.SupplierPerformanceResponse{
		Items: items,
		Total: total,
		Page:  page.Page,
		Size:  page.Size,
		Pages: dto.Pages(total, page.Size),
	}, nil
}

// TenderProposals compares every proposal on one tender by total price
// over priced, available items, best offers first.
func (uc *AnalyticsUseCase) TenderProposals(ctx context.Context, tenderID int64) (*dto.TenderProposalsAnalyticsResponse, error) {
	tender, err := uc.tenderRepo.GetByID(ctx, tenderID)
	if err != nil {
		return nil, err
	}
	if tender == nil {
		return nil, domain.ErrNotFound
	}
	proposals, err := uc.proposalRepo.List(ctx, repository.ProposalFilter{TenderID: &tenderID})
	if err != nil {
		return nil, err
	}

	items := make([]dto.TenderProposalAnalyticsItem, 0, len(proposals))
	for _, p := range proposals {
		if err := uc.proposalRepo.LoadItems(ctx, p); err != nil {
			return nil, err
		}
		item := dto.TenderProposalAnalyticsItem{
			ProposalID: p.ID,
			SupplierID: p.SupplierID,
			Status:     p.Status,
			TotalItems: len(p.Items),
			CreatedAt:  p.CreatedAt,
		}
		for _, it := range p.Items {
			if it.IsAvailable {
				item.AvailableItems++
				if it.PricePerUnit.Valid {
					item.TotalPrice = item.TotalPrice.Add(it.PricePerUnit.Decimal)
				}
			}
			if it.IsAnalog {
				item.AnalogItems++
			}
		}
		supplier, err := uc.userRepo.GetByID(ctx, p.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier != nil {
			item.SupplierName = supplier.FullName
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].TotalPrice.GreaterThan(items[j].TotalPrice)
	})

	return &dto.TenderProposalsAnalyticsResponse{
		TenderID:       tender.ID,
		TenderTitle:    tender.Title,
		ProposalsCount: len(items),
		Proposals:      items,
	}, nil
}

// ProductPriceAnalysis returns price statistics per product across all
// proposals, optionally filtered by product name.
func (uc *AnalyticsUseCase) ProductPriceAnalysis(ctx context.Context, productName string, limit int) (*dto.ProductPriceAnalysisResponse, error) {
	if limit <= 0 {
		limit = productAnalysisDefLimit
	}
	if limit > productAnalysisMaxLimit {
		limit = productAnalysisMaxLimit
	}
	rows, err := uc.analyticsRepo.GetProductPriceAnalysis(ctx, productName, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductPriceAnalysisItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.ProductPriceAnalysisItem{
			ProductID:      r.ProductID,
			ProductName:    r.ProductName,
			PositionNumber: r.PositionNumber,
			ProposalsCount: r.ProposalsCount,
			AvgPrice:       r.AvgPrice,
			MinPrice:       r.MinPrice,
			MaxPrice:       r.MaxPrice,
			PriceStddev:    r.PriceStddev,
			PriceRange:     r.PriceRange,
		})
	}
	return &dto.ProductPriceAnalysisResponse{Items: items, Total: len(items)}, nil
}

// SupplierStatistics returns one supplier's aggregated proposal history.
func (uc *AnalyticsUseCase) SupplierStatistics(ctx context.Context, supplierID int64) (*dto.SupplierStatisticsResponse, error) {
	supplier, err := uc.userRepo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrUserNotFound
	}
	if supplier.Role != entity.RoleSupplier {
		return nil, domain.ErrInvalidInput
	}
	stats, err := uc.analyticsRepo.GetSupplierStats(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	recent, err := uc.proposalRepo.ListRecentBySupplier(ctx, supplierID, recentProposalsLimit)
	if err != nil {
		return nil, err
	}
	recentItems := make([]dto.SupplierRecentProposal, 0, len(recent))
	for _, p := range recent {
		item := dto.SupplierRecentProposal{
			ProposalID: p.ID,
			TenderID:   p.TenderID,
			Status:     p.Status,
			CreatedAt:  p.CreatedAt,
		}
		tender, err := uc.tenderRepo.GetByID(ctx, p.TenderID)
		if err != nil {
			return nil, err
		}
		if tender != nil {
			item.TenderTitle = tender.Title
		}
		recentItems = append(recentItems, item)
	}

	return &dto.SupplierStatisticsResponse{
		SupplierID:        supplier.ID,
		SupplierName:      supplier.FullName,
		TotalProposals:    stats.TotalProposals,
		AcceptedProposals: stats.AcceptedProposals,
		SuccessRate:       percentage(stats.AcceptedProposals, stats.TotalProposals),
		PriceStats: dto.SupplierPriceStats{
			AvgPrice:   stats.AvgPrice,
			MinPrice:   stats.MinPrice,
			MaxPrice:   stats.MaxPrice,
			TotalItems: stats.PricedItems,
		},
		DeliveryStats: dto.SupplierDeliveryStats{
			AvgDays: stats.AvgDeliveryDays,
			MinDays: stats.MinDeliveryDays,
			MaxDays: stats.MaxDeliveryDays,
		},
		AnalogPercentage: percentage(stats.AnalogItems, stats.TotalItems),
		RecentProposals:  recentItems,
	}, nil
}
