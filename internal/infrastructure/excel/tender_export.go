package excel

import (
	"bytes"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/almazgeobur/etp-api/internal/domain/entity"
	"github.com/almazgeobur/etp-api/internal/domain/repository"
)

// BuildTenderWorkbook renders a single tender with its full graph into a
// five-sheet workbook.
func BuildTenderWorkbook(t *entity.Tender) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeMainSheet(f, t); err != nil {
		return nil, err
	}
	if err := writeOrganizersSheet(f, t.Organizers); err != nil {
		return nil, err
	}
	if err := writeLotsSheet(f, t.Lots); err != nil {
		return nil, err
	}
	if err := writeProductsSheet(f, t.Lots); err != nil {
		return nil, err
	}
	if err := writeDocumentsSheet(f, t.Documents); err != nil {
		return nil, err
	}
	// excelize always creates "Sheet1"; the main sheet replaces it
	f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}

func writeMainSheet(f *excelize.File, t *entity.Tender) error {
	if _, err := f.NewSheet(SheetMain); err != nil {
		return fmt.Errorf("create sheet %q: %w", SheetMain, err)
	}
	rows := [][]any{
		{"Поле", "Значение"},
		{labelTenderID, t.ID},
		{labelTitle, t.Title},
		{labelDescription, t.Description},
		{labelInitialPrice, nullDecimalCell(t.InitialPrice)},
		{labelCurrency, t.Currency},
		{labelStatus, t.Status},
		{labelPublicationDate, timeCell(t.PublicationDate)},
		{labelDeadline, timeCell(t.Deadline)},
		{labelOKPD, t.OKPDCode},
		{labelOKVED, t.OKVEDCode},
		{labelRegion, t.Region},
		{labelProcurementMethod, t.ProcurementMethod},
		{labelCreatedAt, t.CreatedAt.Format(dateTimeLayout)},
	}
	return writeRows(f, SheetMain, rows)
}

func writeOrganizersSheet(f *excelize.File, organizers []entity.Organizer) error {
	if _, err := f.NewSheet(SheetOrganizers); err != nil {
		return fmt.Errorf("create sheet %q: %w", SheetOrganizers, err)
	}
	rows := [][]any{organizerHeader}
	for _, o := range organizers {
		rows = append(rows, []any{
			o.ID, o.OrganizationName, o.LegalAddress, o.PostalAddress,
			o.Email, o.Phone, o.ContactPerson, o.INN, o.KPP, o.OGRN,
		})
	}
	return writeRows(f, SheetOrganizers, rows)
}

func writeLotsSheet(f *excelize.File, lots []entity.Lot) error {
	if _, err := f.NewSheet(SheetLots); err != nil {
		return fmt.Errorf("create sheet %q: %w", SheetLots, err)
	}
	rows := [][]any{lotHeader}
	for _, l := range lots {
		rows = append(rows, []any{
			l.ID, l.LotNumber, l.Title, l.Description, nullDecimalCell(l.InitialPrice), l.Currency,
			nullDecimalCell(l.SecurityAmount), l.DeliveryPlace, l.PaymentTerms, l.Quantity,
			l.UnitOfMeasure, l.OKPDCode, l.OKVEDCode,
		})
	}
	return writeRows(f, SheetLots, rows)
}

func writeProductsSheet(f *excelize.File, lots []entity.Lot) error {
	if _, err := f.NewSheet(SheetProducts); err != nil {
		return fmt.Errorf("create sheet %q: %w", SheetProducts, err)
	}
	rows := [][]any{productHeader}
	for _, l := range lots {
		for _, p := range l.Products {
			rows = append(rows, []any{
				l.ID, l.LotNumber, p.ID, p.PositionNumber, p.Name,
				p.Quantity, p.UnitOfMeasure,
			})
		}
	}
	return writeRows(f, SheetProducts, rows)
}

func writeDocumentsSheet(f *excelize.File, docs []entity.Document) error {
	if _, err := f.NewSheet(SheetDocuments); err != nil {
		return fmt.Errorf("create sheet %q: %w", SheetDocuments, err)
	}
	rows := [][]any{documentHeader}
	for _, d := range docs {
		rows = append(rows, []any{
			d.ID, d.Title, d.FilePath, d.FileSize, d.FileType,
			d.UploadedAt.Format(dateTimeLayout),
		})
	}
	return writeRows(f, SheetDocuments, rows)
}

// BuildTendersWorkbook renders many tenders, one row each, into a single
// listing sheet.
func BuildTendersWorkbook(tenders []*entity.Tender) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(SheetTenders); err != nil {
		return nil, fmt.Errorf("create sheet %q: %w", SheetTenders, err)
	}
	rows := [][]any{tendersHeader}
	for _, t := range tenders {
		rows = append(rows, []any{
			t.ID, t.Title, t.Description, nullDecimalCell(t.InitialPrice), t.Currency, t.Status,
			timeCell(t.PublicationDate), timeCell(t.Deadline), t.OKPDCode, t.OKVEDCode,
			t.Region, t.ProcurementMethod,
		})
	}
	if err := writeRows(f, SheetTenders, rows); err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}

// BuildApplicationsWorkbook renders the applications of one tender.
func BuildApplicationsWorkbook(apps []repository.ApplicationExportRow) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(SheetApplications); err != nil {
		return nil, fmt.Errorf("create sheet %q: %w", SheetApplications, err)
	}
	rows := [][]any{applicationsHeader}
	for _, a := range apps {
		rows = append(rows, []any{
			a.ID, a.SupplierName, a.SupplierEmail, a.CompanyName, a.INN,
			nullDecimalCell(a.ProposedPrice), a.Comment, a.Status,
			a.CreatedAt.Format(dateTimeLayout),
		})
	}
	if err := writeRows(f, SheetApplications, rows); err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("set row %d on %q: %w", i+1, sheet, err)
		}
	}
	return nil
}

func timeCell(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateTimeLayout)
}

func nullDecimalCell(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}
