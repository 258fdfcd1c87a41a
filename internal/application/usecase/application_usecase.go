package usecase

import (
	"context"
	"time"

	"github.com/almazgeobur/etp-api/internal/application/dto"
	"github.com/almazgeobur/etp-api/internal/domain"
	"github.com/almazgeobur/etp-api/internal/domain/access"
	"github.com/almazgeobur/etp-api/internal/domain/entity"
	"github.com/almazgeobur/etp-api/internal/domain/repository"
)

// ApplicationUseCase handles lot applications: supplier submission and
// the staff review flow.
type ApplicationUseCase struct {
	applicationRepo repository.ApplicationRepository
	tenderRepo      repository.TenderRepository
	userRepo        repository.UserRepository
	profileRepo     repository.SupplierProfileRepository
}

// NewApplicationUseCase builds the use case with its ports.
func NewApplicationUseCase(
	applicationRepo repository.ApplicationRepository,
	tenderRepo repository.TenderRepository,
	userRepo repository.UserRepository,
	profileRepo repository.SupplierProfileRepository,
) *ApplicationUseCase {
	return &ApplicationUseCase{
		applicationRepo: applicationRepo,
		tenderRepo:      tenderRepo,
		userRepo:        userRepo,
		profileRepo:     profileRepo,
	}
}

// Create submits an application on a lot of a published tender. The
// uniqueness constraint on (lot, supplier) surfaces as a conflict.
func (uc *ApplicationUseCase) Create(ctx context.Context, supplierID int64, in dto.CreateApplicationRequest) (*dto.ApplicationResponse, error) {
	lot, err := uc.tenderRepo.GetLotByID(ctx, in.LotID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, domain.ErrNotFound
	}
	tender, err := uc.tenderRepo.GetByID(ctx, lot.TenderID)
	if err != nil {
		return nil, err
	}
	if tender == nil {
		return nil, domain.ErrNotFound
	}
	if tender.Status != entity.TenderStatusPublished {
		return nil, domain.ErrConflict
	}

	now := time.Now()
	a := &entity.Application{
		TenderID:      tender.ID,
		LotID:         in.LotID,
		SupplierID:    supplierID,
		ProposedPrice: in.ProposedPrice,
		Comment:       in.Comment,
		Status:        entity.ApplicationStatusSubmitted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.applicationRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	resp := dto.NewApplicationResponse(a)
	return &resp, nil
}

// ListMy returns the supplier's own applications, newest first.
func (uc *ApplicationUseCase) ListMy(ctx context.Context, supplierID int64) (*dto.ApplicationListResponse, error) {
	apps, err := uc.applicationRepo.ListBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	return applicationList(apps), nil
}

// ListByTender returns every application on a tender for staff review.
// A contract_manager sees only tenders they created.
func (uc *ApplicationUseCase) ListByTender(ctx context.Context, tenderID, callerID int64, callerRole string) (*dto.ApplicationListResponse, error) {
	tender, err := uc.tenderRepo.GetByID(ctx, tenderID)
	if err != nil {
		return nil, err
	}
	if tender == nil {
		return nil, domain.ErrNotFound
	}
	if !access.IsStaff(callerRole) {
		return nil, domain.ErrForbidden
	}
	if callerRole == entity.RoleContractManager && callerID != tender.CreatedBy {
		return nil, domain.ErrForbidden
	}
	apps, err := uc.applicationRepo.ListByTender(ctx, tenderID)
	if err != nil {
		return nil, err
	}
	return applicationList(apps), nil
}

func applicationList(apps []*entity.Application) *dto.ApplicationListResponse {
	items := make([]dto.ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		items = append(items, dto.NewApplicationResponse(a))
	}
	return &dto.ApplicationListResponse{Items: items, Total: len(items)}
}

// GetDetail returns one application with supplier and tender context.
func (uc *ApplicationUseCase) GetDetail(ctx context.Context, id, callerID int64, callerRole string) (*dto.ApplicationDetailResponse, error) {
	a, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	tender, err := uc.tenderRepo.GetByID(ctx, a.TenderID)
	if err != nil {
		return nil, err
	}
	var tenderCreatedBy int64
	if tender != nil {
		tenderCreatedBy = tender.CreatedBy
	}
	if !access.CanViewApplication(callerRole, callerID, a.SupplierID, tenderCreatedBy) {
		return nil, domain.ErrForbidden
	}

	detail := &dto.ApplicationDetailResponse{ApplicationResponse: dto.NewApplicationResponse(a)}

	supplier, err := uc.userRepo.GetByID(ctx, a.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier != nil {
		info := &dto.ApplicationSupplierInfo{
			ID:       supplier.ID,
			FullName: supplier.FullName,
			Email:    supplier.Email,
			Phone:    supplier.Phone,
		}
		profile, err := uc.profileRepo.GetByUserID(ctx, supplier.ID)
		if err != nil {
			return nil, err
		}
		if profile != nil {
			p := dto.NewSupplierProfileResponse(profile)
			info.Profile = &p
		}
		detail.Supplier = info
	}

	if tender != nil {
		if err := uc.tenderRepo.LoadGraph(ctx, tender); err != nil {
			return nil, err
		}
		t := dto.NewTenderResponse(tender)
		detail.Tender = &t
	}
	return detail, nil
}

// Update applies the review decision. Admins act on any application, a
// contract_manager only on applications of tenders they created.
func (uc *ApplicationUseCase) Update(ctx context.Context, id, callerID int64, callerRole string, in dto.UpdateApplicationRequest) (*dto.ApplicationResponse, error) {
	a, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	tender, err := uc.tenderRepo.GetByID(ctx, a.TenderID)
	if err != nil {
		return nil, err
	}
	var tenderCreatedBy int64
	if tender != nil {
		tenderCreatedBy = tender.CreatedBy
	}
	if !access.CanEditTender(callerRole, callerID, tenderCreatedBy) {
		return nil, domain.ErrForbidden
	}
	if in.Status != nil {
		if !entity.ValidApplicationStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		a.Status = *in.Status
	}
	if in.ProposedPrice != nil {
		a.ProposedPrice = *in.ProposedPrice
	}
	if in.Comment != nil {
		a.Comment = *in.Comment
	}
	a.UpdatedAt = time.Now()
	if err := uc.applicationRepo.Update(ctx, a); err != nil {
		return nil, err
	}
	resp := dto.NewApplicationResponse(a)
	return &resp, nil
}
