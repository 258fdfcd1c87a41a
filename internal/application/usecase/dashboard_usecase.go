package usecase

import (
	"context"

	"github.com/almazgeobur/etp-api/internal/application/dto"
	"github.com/almazgeobur/etp-api/internal/domain/access"
	"github.com/almazgeobur/etp-api/internal/domain/entity"
	"github.com/almazgeobur/etp-api/internal/domain/repository"
)

const recentActivityLimit = 5

// DashboardUseCase assembles the role-dependent dashboard counters and
// the recent activity feed.
type DashboardUseCase struct {
	dashboardRepo   repository.DashboardRepository
	applicationRepo repository.ApplicationRepository
	tenderRepo      repository.TenderRepository
}

// NewDashboardUseCase builds the use case with its ports.
func NewDashboardUseCase(
	dashboardRepo repository.DashboardRepository,
	applicationRepo repository.ApplicationRepository,
	tenderRepo repository.TenderRepository,
) *DashboardUseCase {
	return &DashboardUseCase{dashboardRepo: dashboardRepo, applicationRepo: applicationRepo, tenderRepo: tenderRepo}
}

// GetStats returns the counters visible to the caller's role.
func (uc *DashboardUseCase) GetStats(ctx context.Context, userID int64, role string) (*dto.DashboardStatsResponse, error) {
	resp := &dto.DashboardStatsResponse{}

	var err error
	if resp.TotalTenders, err = uc.dashboardRepo.CountTenders(ctx); err != nil {
		return nil, err
	}
	if resp.PublishedTenders, err = uc.dashboardRepo.CountTendersByStatus(ctx, entity.TenderStatusPublished); err != nil {
		return nil, err
	}
	if resp.InProgressTenders, err = uc.dashboardRepo.CountTendersByStatus(ctx, entity.TenderStatusInProgress); err != nil {
		return nil, err
	}

	if role == entity.RoleSupplier {
		return uc.supplierStats(ctx, userID, resp)
	}
	if access.IsStaff(role) {
		if err := uc.staffStats(ctx, resp); err != nil {
			return nil, err
		}
		if role == entity.RoleContractManager {
			if err := uc.contractManagerStats(ctx, userID, resp); err != nil {
				return nil, err
			}
		}
	}
	return resp, nil
}

func (uc *DashboardUseCase) supplierStats(ctx context.Context, supplierID int64, resp *dto.DashboardStatsResponse) (*dto.DashboardStatsResponse, error) {
	my, err := uc.dashboardRepo.CountApplicationsBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	active, err := uc.dashboardRepo.CountActiveApplicationsBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	won, err := uc.dashboardRepo.CountApplicationsBySupplierAndStatus(ctx, supplierID, entity.ApplicationStatusWon)
	if err != nil {
		return nil, err
	}
	resp.MyApplications = &my
	resp.ActiveApplications = &active
	resp.WonApplications = &won
	return resp, nil
}

func (uc *DashboardUseCase) staffStats(ctx context.Context, resp *dto.DashboardStatsResponse) error {
	draft, err := uc.dashboardRepo.CountTendersByStatus(ctx, entity.TenderStatusDraft)
	if err != nil {
		return err
	}
	completed, err := uc.dashboardRepo.CountTendersByStatus(ctx, entity.TenderStatusCompleted)
	if err != nil {
		return err
	}
	cancelled, err := uc.dashboardRepo.CountTendersByStatus(ctx, entity.TenderStatusCancelled)
	if err != nil {
		return err
	}
	applications, err := uc.dashboardRepo.CountApplications(ctx)
	if err != nil {
		return err
	}
	suppliers, err := uc.dashboardRepo.CountUsersByRole(ctx, entity.RoleSupplier)
	if err != nil {
		return err
	}
	resp.DraftTenders = &draft
	resp.CompletedTenders = &completed
	resp.CancelledTenders = &cancelled
	resp.TotalApplications = &applications
	resp.TotalSuppliers = &suppliers
	return nil
}

func (uc *DashboardUseCase) contractManagerStats(ctx context.Context, userID int64, resp *dto.DashboardStatsResponse) error {
	mine, err := uc.dashboardRepo.CountTendersByCreator(ctx, userID, false)
	if err != nil {
		return err
	}
	activeMine, err := uc.dashboardRepo.CountTendersByCreator(ctx, userID, true)
	if err != nil {
		return err
	}
	resp.MyTenders = &mine
	resp.MyActiveTenders = &activeMine
	return nil
}

// GetRecentActivity returns the last five applications for a supplier or
// the last five tenders for staff.
func (uc *DashboardUseCase) GetRecentActivity(ctx context.Context, userID int64, role string) (*dto.RecentActivityResponse, error) {
	if role == entity.RoleSupplier {
		rows, err := uc.applicationRepo.ListRecentBySupplier(ctx, userID, recentActivityLimit)
		if err != nil {
			return nil, err
		}
		items := make([]dto.RecentActivityItem, 0, len(rows))
		for _, r := range rows {
			items = append(items, dto.RecentActivityItem{
				Type:      "application",
				ID:        r.ID,
				TenderID:  r.TenderID,
				Title:     r.TenderTitle,
				Status:    r.Status,
				CreatedAt: r.CreatedAt,
			})
		}
		return &dto.RecentActivityResponse{Items: items}, nil
	}

	tenders, err := uc.tenderRepo.ListRecent(ctx, recentActivityLimit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RecentActivityItem, 0, len(tenders))
	for _, t := range tenders {
		count, err := uc.applicationRepo.CountByTender(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, dto.RecentActivityItem{
			Type:              "tender",
			ID:                t.ID,
			TenderID:          t.ID,
			Title:             t.Title,
			Status:            t.Status,
			ApplicationsCount: &count,
			CreatedAt:         t.CreatedAt,
		})
	}
	return &dto.RecentActivityResponse{Items: items}, nil
}
