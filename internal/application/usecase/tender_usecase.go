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

// TenderUseCase tender listing, graph reads and lifecycle writes.
type TenderUseCase struct {
	tenderRepo   repository.TenderRepository
	proposalRepo repository.ProposalRepository
	tx           TxRunner
}

// NewTenderUseCase builds the use case with its ports.
func NewTenderUseCase(tenderRepo repository.TenderRepository, proposalRepo repository.ProposalRepository, tx TxRunner) *TenderUseCase {
	return &TenderUseCase{tenderRepo: tenderRepo, proposalRepo: proposalRepo, tx: tx}
}

func validateFilter(f *repository.TenderFilter) error {
	if f.Status != "" && !entity.ValidTenderStatus(f.Status) {
		return domain.ErrInvalidInput
	}
	if f.Sort != "" && !repository.ValidTenderSort(f.Sort) {
		return domain.ErrInvalidInput
	}
	return nil
}

// List returns one page of tenders with lot summaries. Non-staff callers
// only ever see published and later statuses.
func (uc *TenderUseCase) List(ctx context.Context, f repository.TenderFilter, callerRole string) (*dto.TenderListResponse, error) {
	if err := validateFilter(&f); err != nil {
		return nil, err
	}
	if !access.IsStaff(callerRole) && (f.Status == "" || f.Status == entity.TenderStatusDraft) {
		f.Status = entity.TenderStatusPublished
	}
	tenders, total, err := uc.tenderRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TenderListItem, 0, len(tenders))
	for _, t := range tenders {
		item, err := uc.listItem(ctx, t)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return &dto.TenderListResponse{
		Items: items,
		Total: total,
		Page:  f.Page,
		Size:  f.Size,
		Pages: dto.Pages(total, f.Size),
	}, nil
}

// ListForSupplier extends the listing with the caller's participation
// state. Defaults: published tenders, nearest deadline first.
func (uc *TenderUseCase) ListForSupplier(ctx context.Context, f repository.TenderFilter, supplierID int64) (*dto.SupplierTenderListResponse, error) {
	if f.Status == "" {
		f.Status = entity.TenderStatusPublished
	}
	if f.Sort == "" {
		f.Sort = repository.SortByDeadlineAsc
	}
	if err := validateFilter(&f); err != nil {
		return nil, err
	}
	if f.Status == entity.TenderStatusDraft {
		return nil, domain.ErrForbidden
	}
	tenders, total, err := uc.tenderRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierTenderListItem, 0, len(tenders))
	for _, t := range tenders {
		base, err := uc.listItem(ctx, t)
		if err != nil {
			return nil, err
		}
		item := dto.SupplierTenderListItem{TenderListItem: base}

		proposal, err := uc.proposalRepo.GetByTenderAndSupplier(ctx, t.ID, supplierID)
		if err != nil {
			return nil, err
		}
		if proposal != nil {
			item.HasProposal = true
			status := proposal.Status
			item.ProposalStatus = &status
		}
		if item.ProposalsCount, err = uc.proposalRepo.CountByTender(ctx, t.ID); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return &dto.SupplierTenderListResponse{
		Items: items,
		Total: total,
		Page:  f.Page,
		Size:  f.Size,
		Pages: dto.Pages(total, f.Size),
	}, nil
}

func (uc *TenderUseCase) listItem(ctx context.Context, t *entity.Tender) (dto.TenderListItem, error) {
	if err := uc.tenderRepo.LoadGraph(ctx, t); err != nil {
		return dto.TenderListItem{}, err
	}
	full := dto.NewTenderResponse(t)
	lots := make([]dto.LotSummary, 0, len(t.Lots))
	for _, l := range t.Lots {
		lots = append(lots, dto.LotSummary{
			ID:            l.ID,
			LotNumber:     l.LotNumber,
			Title:         l.Title,
			InitialPrice:  l.InitialPrice,
			Currency:      l.Currency,
			DeliveryPlace: l.DeliveryPlace,
			ProductsCount: len(l.Products),
		})
	}
	return dto.TenderListItem{
		ID:                t.ID,
		Title:             t.Title,
		Description:       t.Description,
		NoticeNumber:      t.NoticeNumber,
		InitialPrice:      t.InitialPrice,
		Currency:          t.Currency,
		Status:            t.Status,
		PublicationDate:   t.PublicationDate,
		Deadline:          t.Deadline,
		Region:            t.Region,
		ProcurementMethod: t.ProcurementMethod,
		CreatedBy:         t.CreatedBy,
		CreatedAt:         t.CreatedAt,
		Organizers:        full.Organizers,
		Lots:              lots,
		DocumentsCount:    len(t.Documents),
	}, nil
}

// Get returns the full tender graph. Drafts are visible to staff only.
func (uc *TenderUseCase) Get(ctx context.Context, id int64, callerRole string) (*dto.TenderResponse, error) {
	t, err := uc.tenderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if t.Status == entity.TenderStatusDraft && !access.IsStaff(callerRole) {
		return nil, domain.ErrNotFound
	}
	if err := uc.tenderRepo.LoadGraph(ctx, t); err != nil {
		return nil, err
	}
	resp := dto.NewTenderResponse(t)
	return &resp, nil
}

// GetEntity returns the loaded tender graph for exports.
func (uc *TenderUseCase) GetEntity(ctx context.Context, id int64) (*entity.Tender, error) {
	t, err := uc.tenderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.tenderRepo.LoadGraph(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ListProducts flattens the tender's products with lot context.
func (uc *TenderUseCase) ListProducts(ctx context.Context, tenderID int64) (*dto.TenderProductListResponse, error) {
	t, err := uc.tenderRepo.GetByID(ctx, tenderID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	rows, err := uc.tenderRepo.ListProducts(ctx, tenderID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TenderProductItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.TenderProductItem{
			ID:             r.ID,
			LotID:          r.LotID,
			LotNumber:      r.LotNumber,
			LotTitle:       r.LotTitle,
			PositionNumber: r.PositionNumber,
			Name:           r.Name,
			Quantity:       r.Quantity,
			UnitOfMeasure:  r.UnitOfMeasure,
		})
	}
	return &dto.TenderProductListResponse{Items: items, Total: len(items)}, nil
}

// Create persists a new tender with its full graph atomically. At least
// one organizer, one lot and one document are required.
func (uc *TenderUseCase) Create(ctx context.Context, callerID int64, in dto.CreateTenderRequest) (*dto.TenderResponse, error) {
	if in.Title == "" || in.Description == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Organizers) == 0 || len(in.Lots) == 0 || len(in.Documents) == 0 {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.TenderStatusDraft
	}
	if !entity.ValidTenderStatus(status) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	t := &entity.Tender{
		Title:             in.Title,
		Description:       in.Description,
		InitialPrice:      in.InitialPrice,
		Currency:          defaultCurrency(in.Currency),
		Status:            status,
		Deadline:          in.Deadline,
		OKPDCode:          in.OKPDCode,
		OKVEDCode:         in.OKVEDCode,
		Region:            in.Region,
		ProcurementMethod: in.ProcurementMethod,
		CreatedBy:         callerID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if status == entity.TenderStatusPublished {
		t.PublicationDate = &now
	}
	t.Organizers = organizersFromPayload(in.Organizers)
	t.Lots = lotsFromPayload(in.Lots)
	t.Documents = documentsFromPayload(in.Documents)
	t.Stages = stagesFromPayload(in.Stages)

	err := uc.tx.Run(ctx, func(tenderRepo repository.TenderRepository, _ repository.ProposalRepository) error {
		return tenderRepo.CreateWithGraph(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	resp := dto.NewTenderResponse(t)
	return &resp, nil
}

// Update applies the set base fields and replaces each nested collection
// that is present in the request, atomically. The resulting graph must
// still have at least one organizer, lot and document.
func (uc *TenderUseCase) Update(ctx context.Context, id, callerID int64, callerRole string, in dto.UpdateTenderRequest) (*dto.TenderResponse, error) {
	t, err := uc.tenderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if !access.CanEditTender(callerRole, callerID, t.CreatedBy) {
		return nil, domain.ErrForbidden
	}
	if err := uc.tenderRepo.LoadGraph(ctx, t); err != nil {
		return nil, err
	}

	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.InitialPrice != nil {
		t.InitialPrice = *in.InitialPrice
	}
	if in.Currency != nil {
		t.Currency = defaultCurrency(*in.Currency)
	}
	if in.Status != nil {
		if !entity.ValidTenderStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		if *in.Status == entity.TenderStatusPublished && t.PublicationDate == nil {
			now := time.Now()
			t.PublicationDate = &now
		}
		t.Status = *in.Status
	}
	if in.Deadline != nil {
		t.Deadline = in.Deadline
	}
	if in.OKPDCode != nil {
		t.OKPDCode = *in.OKPDCode
	}
	if in.OKVEDCode != nil {
		t.OKVEDCode = *in.OKVEDCode
	}
	if in.Region != nil {
		t.Region = *in.Region
	}
	if in.ProcurementMethod != nil {
		t.ProcurementMethod = *in.ProcurementMethod
	}
	if in.Organizers != nil {
		t.Organizers = organizersFromPayload(in.Organizers)
	}
	if in.Lots != nil {
		t.Lots = lotsFromPayload(in.Lots)
	}
	if in.Documents != nil {
		t.Documents = documentsFromPayload(in.Documents)
	}
	if in.Stages != nil {
		t.Stages = stagesFromPayload(in.Stages)
	}
	if len(t.Organizers) == 0 || len(t.Lots) == 0 || len(t.Documents) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if t.Title == "" || t.Description == "" {
		return nil, domain.ErrInvalidInput
	}
	t.UpdatedAt = time.Now()

	err = uc.tx.Run(ctx, func(tenderRepo repository.TenderRepository, _ repository.ProposalRepository) error {
		return tenderRepo.UpdateWithGraph(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	resp := dto.NewTenderResponse(t)
	return &resp, nil
}

// Publish moves a draft to published. Only drafts can be published.
func (uc *TenderUseCase) Publish(ctx context.Context, id, callerID int64, callerRole string) (*dto.TenderResponse, error) {
	t, err := uc.tenderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if !access.CanEditTender(callerRole, callerID, t.CreatedBy) {
		return nil, domain.ErrForbidden
	}
	if t.Status != entity.TenderStatusDraft {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	if err := uc.tenderRepo.Publish(ctx, id, now); err != nil {
		return nil, err
	}
	return uc.Get(ctx, id, callerRole)
}

// CreateImported persists tenders parsed from a workbook or CSV, each with
// its own graph, in one transaction.
func (uc *TenderUseCase) CreateImported(ctx context.Context, callerID int64, tenders []*entity.Tender) ([]int64, error) {
	now := time.Now()
	for _, t := range tenders {
		t.CreatedBy = callerID
		t.CreatedAt = now
		t.UpdatedAt = now
		if t.Currency == "" {
			t.Currency = "RUB"
		}
	}
	err := uc.tx.Run(ctx, func(tenderRepo repository.TenderRepository, _ repository.ProposalRepository) error {
		for _, t := range tenders {
			if err := tenderRepo.CreateWithGraph(ctx, t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(tenders))
	for _, t := range tenders {
		ids = append(ids, t.ID)
	}
	return ids, nil
}

func defaultCurrency(c string) string {
	if c == "" {
		return "RUB"
	}
	return c
}

func organizersFromPayload(in []dto.OrganizerPayload) []entity.Organizer {
	out := make([]entity.Organizer, 0, len(in))
	for _, o := range in {
		out = append(out, entity.Organizer{
			OrganizationName: o.OrganizationName,
			LegalAddress:     o.LegalAddress,
			PostalAddress:    o.PostalAddress,
			Email:            o.Email,
			Phone:            o.Phone,
			ContactPerson:    o.ContactPerson,
			INN:              o.INN,
			KPP:              o.KPP,
			OGRN:             o.OGRN,
		})
	}
	return out
}

func lotsFromPayload(in []dto.LotPayload) []entity.Lot {
	out := make([]entity.Lot, 0, len(in))
	for i, l := range in {
		lot := entity.Lot{
			LotNumber:      l.LotNumber,
			Title:          l.Title,
			Description:    l.Description,
			InitialPrice:   l.InitialPrice,
			Currency:       defaultCurrency(l.Currency),
			SecurityAmount: l.SecurityAmount,
			DeliveryPlace:  l.DeliveryPlace,
			PaymentTerms:   l.PaymentTerms,
			Quantity:       l.Quantity,
			UnitOfMeasure:  l.UnitOfMeasure,
			OKPDCode:       l.OKPDCode,
			OKVEDCode:      l.OKVEDCode,
		}
		if lot.LotNumber == 0 {
			lot.LotNumber = i + 1
		}
		for j, p := range l.Products {
			prod := entity.Product{
				PositionNumber: p.PositionNumber,
				Name:           p.Name,
				Quantity:       p.Quantity,
				UnitOfMeasure:  p.UnitOfMeasure,
			}
			if prod.PositionNumber == 0 {
				prod.PositionNumber = j + 1
			}
			lot.Products = append(lot.Products, prod)
		}
		out = append(out, lot)
	}
	return out
}

func documentsFromPayload(in []dto.DocumentPayload) []entity.Document {
	out := make([]entity.Document, 0, len(in))
	for _, d := range in {
		out = append(out, entity.Document{
			Title:    d.Title,
			FilePath: d.FilePath,
			FileSize: d.FileSize,
			FileType: d.FileType,
		})
	}
	return out
}

func stagesFromPayload(in []dto.StagePayload) []entity.ProcedureStage {
	out := make([]entity.ProcedureStage, 0, len(in))
	for _, s := range in {
		out = append(out, entity.ProcedureStage{
			StageName:   s.StageName,
			StageDate:   s.StageDate,
			Description: s.Description,
		})
	}
	return out
}
