package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/almazgeobur/etp-api/internal/application/dto"
	"github.com/almazgeobur/etp-api/internal/domain"
	"github.com/almazgeobur/etp-api/internal/domain/access"
	"github.com/almazgeobur/etp-api/internal/domain/entity"
	"github.com/almazgeobur/etp-api/internal/domain/repository"
)

// ProposalUseCase drives the proposal lifecycle:
// draft -> submitted -> accepted/rejected.
type ProposalUseCase struct {
	proposalRepo repository.ProposalRepository
	tenderRepo   repository.TenderRepository
	userRepo     repository.UserRepository
	tx           TxRunner
}

// NewProposalUseCase builds the use case with its ports.
func NewProposalUseCase(
	proposalRepo repository.ProposalRepository,
	tenderRepo repository.TenderRepository,
	userRepo repository.UserRepository,
	tx TxRunner,
) *ProposalUseCase {
	return &ProposalUseCase{proposalRepo: proposalRepo, tenderRepo: tenderRepo, userRepo: userRepo, tx: tx}
}

var defaultVAT = decimal.NewFromInt(20)

// Create opens a draft proposal on a published tender. One proposal per
// supplier per tender; every item must reference an existing product.
func (uc *ProposalUseCase) Create(ctx context.Context, supplierID int64, in dto.CreateProposalRequest) (*dto.ProposalResponse, error) {
	tender, err := uc.tenderRepo.GetByID(ctx, in.TenderID)
	if err != nil {
		return nil, err
	}
	if tender == nil {
		return nil, domain.ErrNotFound
	}
	if tender.Status != entity.TenderStatusPublished {
		return nil, domain.ErrConflict
	}
	items, err := uc.itemsFromPayload(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	vat := in.VATPercent
	if vat.IsZero() {
		vat = defaultVAT
	}
	p := &entity.Proposal{
		TenderID:          in.TenderID,
		SupplierID:        supplierID,
		PrepaymentPercent: in.PrepaymentPercent,
		Currency:          defaultCurrency(in.Currency),
		VATPercent:        vat,
		GeneralComment:    in.GeneralComment,
		Status:            entity.ProposalStatusDraft,
		CreatedAt:         now,
		UpdatedAt:         now,
		Items:             items,
	}
	err = uc.tx.Run(ctx, func(_ repository.TenderRepository, proposalRepo repository.ProposalRepository) error {
		return proposalRepo.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return uc.respond(ctx, p)
}

func (uc *ProposalUseCase) itemsFromPayload(ctx context.Context, in []dto.ProposalItemPayload) ([]entity.ProposalItem, error) {
	now := time.Now()
	items := make([]entity.ProposalItem, 0, len(in))
	for _, it := range in {
		exists, err := uc.tenderRepo.ProductExists(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, domain.ErrInvalidInput
		}
		items = append(items, entity.ProposalItem{
			ProductID:    it.ProductID,
			IsAvailable:  it.IsAvailable,
			IsAnalog:     it.IsAnalog,
			PricePerUnit: it.PricePerUnit,
			DeliveryDays: it.DeliveryDays,
			Comment:      it.Comment,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	return items, nil
}

// respond loads items and product names into the response.
func (uc *ProposalUseCase) respond(ctx context.Context, p *entity.Proposal) (*dto.ProposalResponse, error) {
	if err := uc.proposalRepo.LoadItems(ctx, p); err != nil {
		return nil, err
	}
	resp := dto.NewProposalResponse(p)

	products, err := uc.tenderRepo.ListProducts(ctx, p.TenderID)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(products))
	for _, prod := range products {
		names[prod.ID] = prod.Name
	}
	for i := range resp.Items {
		resp.Items[i].ProductName = names[resp.Items[i].ProductID]
	}
	return &resp, nil
}

// ListMy returns the supplier's proposals with items.
func (uc *ProposalUseCase) ListMy(ctx context.Context, supplierID int64) (*dto.ProposalListResponse, error) {
	return uc.list(ctx, repository.ProposalFilter{SupplierID: &supplierID}, false)
}

// ListAll returns proposals for staff review, with tender and supplier
// context attached.
func (uc *ProposalUseCase) ListAll(ctx context.Context, f repository.ProposalFilter) (*dto.ProposalListResponse, error) {
	if f.Status != "" && !entity.ValidProposalStatus(f.Status) {
		return nil, domain.ErrInvalidInput
	}
	return uc.list(ctx, f, true)
}

func (uc *ProposalUseCase) list(ctx context.Context, f repository.ProposalFilter, withContext bool) (*dto.ProposalListResponse, error) {
	proposals, err := uc.proposalRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProposalListItem, 0, len(proposals))
	for _, p := range proposals {
		resp, err := uc.respond(ctx, p)
		if err != nil {
			return nil, err
		}
		item := dto.ProposalListItem{ProposalResponse: *resp}
		if withContext {
			tender, err := uc.tenderRepo.GetByID(ctx, p.TenderID)
			if err != nil {
				return nil, err
			}
			if tender != nil {
				item.Tender = &dto.ProposalTenderInfo{ID: tender.ID, Title: tender.Title, Status: tender.Status}
			}
			supplier, err := uc.userRepo.GetByID(ctx, p.SupplierID)
			if err != nil {
				return nil, err
			}
			if supplier != nil {
				item.Supplier = &dto.ProposalSupplierInfo{ID: supplier.ID, FullName: supplier.FullName, Email: supplier.Email}
			}
		}
		items = append(items, item)
	}
	return &dto.ProposalListResponse{Items: items, Total: len(items)}, nil
}

// Get returns one proposal. Suppliers see only their own.
func (uc *ProposalUseCase) Get(ctx context.Context, id, callerID int64, callerRole string) (*dto.ProposalResponse, error) {
	p, err := uc.proposalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if !access.IsStaff(callerRole) && p.SupplierID != callerID {
		return nil, domain.ErrForbidden
	}
	return uc.respond(ctx, p)
}

// Update edits a draft. A submitted proposal can no longer change. When
// the request carries items they replace the stored set entirely.
func (uc *ProposalUseCase) Update(ctx context.Context, id, supplierID int64, in dto.UpdateProposalRequest) (*dto.ProposalResponse, error) {
	p, err := uc.proposalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.SupplierID != supplierID {
		return nil, domain.ErrForbidden
	}
	if p.Status != entity.ProposalStatusDraft {
		return nil, domain.ErrConflict
	}

	if in.PrepaymentPercent != nil {
		p.PrepaymentPercent = *in.PrepaymentPercent
	}
	if in.Currency != nil {
		p.Currency = defaultCurrency(*in.Currency)
	}
	if in.VATPercent != nil {
		p.VATPercent = *in.VATPercent
	}
	if in.GeneralComment != nil {
		p.GeneralComment = *in.GeneralComment
	}
	replaceItems := in.Items != nil
	if replaceItems {
		items, err := uc.itemsFromPayload(ctx, *in.Items)
		if err != nil {
			return nil, err
		}
		p.Items = items
	}
	p.UpdatedAt = time.Now()

	err = uc.tx.Run(ctx, func(_ repository.TenderRepository, proposalRepo repository.ProposalRepository) error {
		return proposalRepo.Update(ctx, p, replaceItems)
	})
	if err != nil {
		return nil, err
	}
	return uc.respond(ctx, p)
}

// Submit moves a draft with at least one item to submitted.
func (uc *ProposalUseCase) Submit(ctx context.Context, id, supplierID int64) (*dto.ProposalResponse, error) {
	p, err := uc.proposalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.SupplierID != supplierID {
		return nil, domain.ErrForbidden
	}
	if p.Status != entity.ProposalStatusDraft {
		return nil, domain.ErrConflict
	}
	count, err := uc.proposalRepo.CountItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.proposalRepo.UpdateStatus(ctx, id, entity.ProposalStatusSubmitted); err != nil {
		return nil, err
	}
	p.Status = entity.ProposalStatusSubmitted
	return uc.respond(ctx, p)
}

// UpdateStatus is the staff decision on a submitted proposal.
func (uc *ProposalUseCase) UpdateStatus(ctx context.Context, id int64, in dto.UpdateProposalStatusRequest) (*dto.ProposalResponse, error) {
	if in.Status != entity.ProposalStatusAccepted && in.Status != entity.ProposalStatusRejected {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.proposalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.Status != entity.ProposalStatusSubmitted {
		return nil, domain.ErrConflict
	}
	if err := uc.proposalRepo.UpdateStatus(ctx, id, in.Status); err != nil {
		return nil, err
	}
	p.Status = in.Status
	return uc.respond(ctx, p)
}
