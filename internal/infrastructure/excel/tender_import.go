package excel

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/almazgeobur/etp-api/internal/domain"
	"github.com/almazgeobur/etp-api/internal/domain/entity"
)

// ParseTenderWorkbook reads one tender graph from a workbook produced by
// BuildTenderWorkbook (or an equivalent hand-made file). Only the main
// sheet is mandatory; organizers, lots, products and documents are picked
// up when their sheets exist. Imported tenders always start as drafts.
func ParseTenderWorkbook(r io.Reader) (*entity.Tender, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read workbook", domain.ErrInvalidInput)
	}
	defer f.Close()

	t, err := parseMainSheet(f)
	if err != nil {
		return nil, err
	}

	t.Organizers = parseOrganizersSheet(f)
	lots, lotBySheetID := parseLotsSheet(f)
	attachProducts(f, lots, lotBySheetID)
	t.Lots = lots
	t.Documents = parseDocumentsSheet(f)

	return t, nil
}

func parseMainSheet(f *excelize.File) (*entity.Tender, error) {
	rows, err := f.GetRows(SheetMain)
	if err != nil || len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q is missing", domain.ErrInvalidInput, SheetMain)
	}

	kv := map[string]string{}
	for _, row := range rows {
		if len(row) >= 2 {
			kv[strings.TrimSpace(row[0])] = strings.TrimSpace(row[1])
		}
	}
	title := kv[labelTitle]
	if title == "" {
		return nil, fmt.Errorf("%w: %q is required", domain.ErrInvalidInput, labelTitle)
	}

	t := &entity.Tender{
		Title:             title,
		Description:       kv[labelDescription],
		InitialPrice:      parsePrice(kv[labelInitialPrice]),
		Currency:          defaultStr(kv[labelCurrency], "RUB"),
		Status:            entity.TenderStatusDraft,
		Deadline:          parseTime(kv[labelDeadline]),
		OKPDCode:          kv[labelOKPD],
		OKVEDCode:         kv[labelOKVED],
		Region:            kv[labelRegion],
		ProcurementMethod: kv[labelProcurementMethod],
	}
	return t, nil
}

func parseOrganizersSheet(f *excelize.File) []entity.Organizer {
	rows, err := f.GetRows(SheetOrganizers)
	if err != nil || len(rows) < 2 {
		return nil
	}
	idx := headerIndex(rows[0])
	var organizers []entity.Organizer
	for _, row := range rows[1:] {
		name := cellAt(row, idx.col("Название организации"))
		if name == "" {
			continue
		}
		organizers = append(organizers, entity.Organizer{
			OrganizationName: name,
			LegalAddress:     cellAt(row, idx.col("Юридический адрес")),
			PostalAddress:    cellAt(row, idx.col("Почтовый адрес")),
			Email:            cellAt(row, idx.col("Email")),
			Phone:            cellAt(row, idx.col("Телефон")),
			ContactPerson:    cellAt(row, idx.col("Контактное лицо")),
			INN:              cellAt(row, idx.col("ИНН")),
			KPP:              cellAt(row, idx.col("КПП")),
			OGRN:             cellAt(row, idx.col("ОГРН")),
		})
	}
	return organizers
}

// parseLotsSheet returns the lots plus a mapping from the sheet's own lot
// IDs to positions in the slice, used to link products.
func parseLotsSheet(f *excelize.File) ([]entity.Lot, map[string]int) {
	rows, err := f.GetRows(SheetLots)
	if err != nil || len(rows) < 2 {
		return nil, nil
	}
	idx := headerIndex(rows[0])
	var lots []entity.Lot
	bySheetID := map[string]int{}
	for _, row := range rows[1:] {
		title := cellAt(row, idx.col("Название"))
		if title == "" {
			continue
		}
		lot := entity.Lot{
			LotNumber:      parseIntDefault(cellAt(row, idx.col("Номер лота")), len(lots)+1),
			Title:          title,
			Description:    cellAt(row, idx.col("Описание")),
			InitialPrice:   parsePrice(cellAt(row, idx.col("Начальная цена"))),
			Currency:       defaultStr(cellAt(row, idx.col("Валюта")), "RUB"),
			SecurityAmount: parsePrice(cellAt(row, idx.col("Обеспечение заявки"))),
			DeliveryPlace:  cellAt(row, idx.col("Место поставки")),
			PaymentTerms:   cellAt(row, idx.col("Условия оплаты")),
			Quantity:       cellAt(row, idx.col("Количество")),
			UnitOfMeasure:  cellAt(row, idx.col("Единица измерения")),
			OKPDCode:       cellAt(row, idx.col("Код ОКПД2")),
			OKVEDCode:      cellAt(row, idx.col("Код ОКВЭД2")),
		}
		if sheetID := cellAt(row, idx.col("ID лота")); sheetID != "" {
			bySheetID[sheetID] = len(lots)
		}
		lots = append(lots, lot)
	}
	return lots, bySheetID
}

func attachProducts(f *excelize.File, lots []entity.Lot, lotBySheetID map[string]int) {
	if len(lots) == 0 {
		return
	}
	rows, err := f.GetRows(SheetProducts)
	if err != nil || len(rows) < 2 {
		return
	}
	idx := headerIndex(rows[0])
	for _, row := range rows[1:] {
		name := cellAt(row, idx.col("Наименование"))
		if name == "" {
			continue
		}
		lotPos := 0 // unmatched products land in the first lot
		if sheetID := cellAt(row, idx.col("ID лота")); sheetID != "" {
			if pos, ok := lotBySheetID[sheetID]; ok {
				lotPos = pos
			}
		}
		lots[lotPos].Products = append(lots[lotPos].Products, entity.Product{
			PositionNumber: parseIntDefault(cellAt(row, idx.col("Номер позиции")), len(lots[lotPos].Products)+1),
			Name:           name,
			Quantity:       cellAt(row, idx.col("Количество")),
			UnitOfMeasure:  cellAt(row, idx.col("Единица измерения")),
		})
	}
}

func parseDocumentsSheet(f *excelize.File) []entity.Document {
	rows, err := f.GetRows(SheetDocuments)
	if err != nil || len(rows) < 2 {
		return nil
	}
	idx := headerIndex(rows[0])
	var docs []entity.Document
	for _, row := range rows[1:] {
		title := cellAt(row, idx.col("Название"))
		if title == "" {
			continue
		}
		size, _ := strconv.ParseInt(cellAt(row, idx.col("Размер файла")), 10, 64)
		docs = append(docs, entity.Document{
			Title:    title,
			FilePath: cellAt(row, idx.col("Путь к файлу")),
			FileSize: size,
			FileType: cellAt(row, idx.col("Тип файла")),
		})
	}
	return docs
}

// ParseTendersWorkbook reads the bulk listing sheet, one tender per row.
// Rows without a title are skipped; imported tenders start as drafts.
func ParseTendersWorkbook(r io.Reader) ([]*entity.Tender, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read workbook", domain.ErrInvalidInput)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetTenders)
	if err != nil || len(rows) < 2 {
		return nil, fmt.Errorf("%w: sheet %q is missing or empty", domain.ErrInvalidInput, SheetTenders)
	}
	idx := headerIndex(rows[0])

	var tenders []*entity.Tender
	for _, row := range rows[1:] {
		title := cellAt(row, idx.col("Название"))
		if title == "" {
			continue
		}
		tenders = append(tenders, &entity.Tender{
			Title:             title,
			Description:       cellAt(row, idx.col("Описание")),
			InitialPrice:      parsePrice(cellAt(row, idx.col("Начальная цена"))),
			Currency:          defaultStr(cellAt(row, idx.col("Валюта")), "RUB"),
			Status:            entity.TenderStatusDraft,
			Deadline:          parseTime(cellAt(row, idx.col("Срок подачи заявок"))),
			OKPDCode:          cellAt(row, idx.col("Код ОКПД2")),
			OKVEDCode:         cellAt(row, idx.col("Код ОКВЭД2")),
			Region:            cellAt(row, idx.col("Регион")),
			ProcurementMethod: cellAt(row, idx.col("Способ закупки")),
		})
	}
	if len(tenders) == 0 {
		return nil, fmt.Errorf("%w: no tenders found in workbook", domain.ErrInvalidInput)
	}
	return tenders, nil
}

type headerIdx map[string]int

func headerIndex(header []string) headerIdx {
	idx := make(headerIdx, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

// col returns the column of a header name, -1 when the sheet lacks it so
// cellAt yields "" instead of reading an unrelated column.
func (idx headerIdx) col(name string) int {
	i, ok := idx[name]
	if !ok {
		return -1
	}
	return i
}

// cellAt returns the trimmed cell value, tolerating short rows and missing
// columns (excelize trims trailing empty cells).
func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parsePrice(s string) decimal.NullDecimal {
	s = strings.ReplaceAll(strings.ReplaceAll(s, " ", ""), ",", ".")
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{dateTimeLayout, dateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func parseIntDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func defaultStr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
