package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/almazgeobur/etp-api/internal/application/dto"
	"github.com/almazgeobur/etp-api/internal/domain/entity"
	"github.com/almazgeobur/etp-api/internal/infrastructure/excel"
)

// ImportUseCase parses uploaded spreadsheets into tenders. Every imported
// tender is created as a draft owned by the caller.
type ImportUseCase struct {
	tenders *TenderUseCase
}

// NewImportUseCase builds the use case over the tender use case.
func NewImportUseCase(tenders *TenderUseCase) *ImportUseCase {
	return &ImportUseCase{tenders: tenders}
}

// ImportTenderXLSX imports one tender from a multi-sheet workbook.
func (uc *ImportUseCase) ImportTenderXLSX(ctx context.Context, callerID int64, r io.Reader) (*dto.ImportResultResponse, error) {
	t, err := excel.ParseTenderWorkbook(r)
	if err != nil {
		return nil, err
	}
	ids, err := uc.tenders.CreateImported(ctx, callerID, []*entity.Tender{t})
	if err != nil {
		return nil, err
	}
	return &dto.ImportResultResponse{
		Message:  "tender imported",
		TenderID: ids[0],
	}, nil
}

// ImportTendersXLSX imports many tenders from a flat listing sheet.
func (uc *ImportUseCase) ImportTendersXLSX(ctx context.Context, callerID int64, r io.Reader) (*dto.ImportResultResponse, error) {
	tenders, err := excel.ParseTendersWorkbook(r)
	if err != nil {
		return nil, err
	}
	ids, err := uc.tenders.CreateImported(ctx, callerID, tenders)
	if err != nil {
		return nil, err
	}
	return &dto.ImportResultResponse{
		Message:   fmt.Sprintf("%d tenders imported", len(ids)),
		TenderIDs: ids,
	}, nil
}

// ImportTendersCSV imports tenders from a CSV export. Column presence
// decides which collections are attached to each row.
func (uc *ImportUseCase) ImportTendersCSV(ctx context.Context, callerID int64, r io.Reader) (*dto.ImportResultResponse, error) {
	tenders, err := excel.ParseTendersCSV(r)
	if err != nil {
		return nil, err
	}
	ids, err := uc.tenders.CreateImported(ctx, callerID, tenders)
	if err != nil {
		return nil, err
	}
	return &dto.ImportResultResponse{
		Message:   fmt.Sprintf("%d tenders imported", len(ids)),
		TenderIDs: ids,
	}, nil
}
