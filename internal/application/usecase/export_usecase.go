package usecase

import (
	"context"
	"fmt"

	"github.com/almazgeobur/etp-api/internal/domain"
	"github.com/almazgeobur/etp-api/internal/domain/access"
	"github.com/almazgeobur/etp-api/internal/domain/entity"
	"github.com/almazgeobur/etp-api/internal/domain/repository"
	"github.com/almazgeobur/etp-api/internal/infrastructure/excel"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

// ExportFile is a generated download: name, MIME type and content.
type ExportFile struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ExportUseCase builds the tender and application downloads (xlsx, pdf).
type ExportUseCase struct {
	tenderRepo      repository.TenderRepository
	applicationRepo repository.ApplicationRepository
	pdfGen          TenderPDFGenerator
}

// NewExportUseCase builds the use case with its ports.
func NewExportUseCase(
	tenderRepo repository.TenderRepository,
	applicationRepo repository.ApplicationRepository,
	pdfGen TenderPDFGenerator,
) *ExportUseCase {
	return &ExportUseCase{tenderRepo: tenderRepo, applicationRepo: applicationRepo, pdfGen: pdfGen}
}

func (uc *ExportUseCase) loadTender(ctx context.Context, id int64) (*entity.Tender, error) {
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

// ExportTender renders one tender with all its collections as a workbook.
func (uc *ExportUseCase) ExportTender(ctx context.Context, tenderID int64) (*ExportFile, error) {
	t, err := uc.loadTender(ctx, tenderID)
	if err != nil {
		return nil, err
	}
	buf, err := excel.BuildTenderWorkbook(t)
	if err != nil {
		return nil, err
	}
	return &ExportFile{
		FileName:    fmt.Sprintf("tender_%d.xlsx", t.ID),
		ContentType: contentTypeXLSX,
		Content:     buf.Bytes(),
	}, nil
}

// ExportTenders renders every tender matching the filter into a listing
// workbook. A contract_manager exports only tenders they created.
func (uc *ExportUseCase) ExportTenders(ctx context.Context, f repository.TenderFilter, callerID int64, callerRole string) (*ExportFile, error) {
	if f.Status != "" && !entity.ValidTenderStatus(f.Status) {
		return nil, domain.ErrInvalidInput
	}
	if callerRole == entity.RoleContractManager {
		f.CreatedBy = &callerID
	}
	tenders, err := uc.tenderRepo.ListAll(ctx, f)
	if err != nil {
		return nil, err
	}
	buf, err := excel.BuildTendersWorkbook(tenders)
	if err != nil {
		return nil, err
	}
	return &ExportFile{
		FileName:    "tenders.xlsx",
		ContentType: contentTypeXLSX,
		Content:     buf.Bytes(),
	}, nil
}

// ExportApplications renders the applications of one tender with supplier
// identity columns. A contract_manager exports only their own tenders.
func (uc *ExportUseCase) ExportApplications(ctx context.Context, tenderID, callerID int64, callerRole string) (*ExportFile, error) {
	t, err := uc.tenderRepo.GetByID(ctx, tenderID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if callerRole == entity.RoleContractManager && !access.CanEditTender(callerRole, callerID, t.CreatedBy) {
		return nil, domain.ErrForbidden
	}
	rows, err := uc.applicationRepo.ListExportRows(ctx, tenderID)
	if err != nil {
		return nil, err
	}
	buf, err := excel.BuildApplicationsWorkbook(rows)
	if err != nil {
		return nil, err
	}
	return &ExportFile{
		FileName:    fmt.Sprintf("tender_%d_applications.xlsx", tenderID),
		ContentType: contentTypeXLSX,
		Content:     buf.Bytes(),
	}, nil
}

// ExportTenderPDF renders the tender card as a PDF document.
func (uc *ExportUseCase) ExportTenderPDF(ctx context.Context, tenderID int64) (*ExportFile, error) {
	t, err := uc.loadTender(ctx, tenderID)
	if err != nil {
		return nil, err
	}
	content, err := uc.pdfGen.GenerateTenderPDF(ctx, t)
	if err != nil {
		return nil, err
	}
	return &ExportFile{
		FileName:    fmt.Sprintf("tender_%d.pdf", t.ID),
		ContentType: contentTypePDF,
		Content:     content,
	}, nil
}
