package excel

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/almazgeobur/etp-api/internal/domain"
	"github.com/almazgeobur/etp-api/internal/domain/entity"
)

// CSV column names. Which optional blocks get created is driven purely by
// column presence: a file with organizer columns yields one organizer per
// row, and so on.
const (
	csvTitle       = "Название"
	csvDescription = "Описание"

	csvInitialPrice      = "Начальная цена"
	csvCurrency          = "Валюта"
	csvDeadline          = "Срок подачи заявок"
	csvOKPD              = "Код ОКПД2"
	csvOKVED             = "Код ОКВЭД2"
	csvRegion            = "Регион"
	csvProcurementMethod = "Способ закупки"

	csvOrganizerName    = "Организатор"
	csvOrganizerAddress = "Юридический адрес"
	csvOrganizerEmail   = "Email организатора"
	csvOrganizerPhone   = "Телефон организатора"
	csvOrganizerContact = "Контактное лицо"
	csvOrganizerINN     = "ИНН организатора"

	csvLotNumber        = "Номер лота"
	csvLotTitle         = "Название лота"
	csvLotDescription   = "Описание лота"
	csvLotInitialPrice  = "Начальная цена лота"
	csvLotCurrency      = "Валюта лота"
	csvLotDeliveryPlace = "Место поставки"
	csvLotPaymentTerms  = "Условия оплаты"
	csvLotQuantity      = "Количество"
	csvLotUnit          = "Единица измерения"

	csvProductName     = "Наименование товара"
	csvProductPosition = "Номер позиции"
	csvProductQuantity = "Количество товара"
	csvProductUnit     = "Единица измерения товара"
)

// ParseTendersCSV reads a comma-separated file, one tender per row. The
// header must carry at least the title and description columns.
func ParseTendersCSV(r io.Reader) ([]*entity.Tender, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // rows may be shorter than the header

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read CSV header", domain.ErrInvalidInput)
	}
	idx := map[string]int{}
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	if _, ok := idx[csvTitle]; !ok {
		return nil, fmt.Errorf("%w: column %q is required", domain.ErrInvalidInput, csvTitle)
	}
	if _, ok := idx[csvDescription]; !ok {
		return nil, fmt.Errorf("%w: column %q is required", domain.ErrInvalidInput, csvDescription)
	}

	col := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	hasCol := func(name string) bool {
		_, ok := idx[name]
		return ok
	}

	var tenders []*entity.Tender
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: malformed CSV row", domain.ErrInvalidInput)
		}
		title := col(row, csvTitle)
		if title == "" {
			continue
		}

		t := &entity.Tender{
			Title:             title,
			Description:       col(row, csvDescription),
			InitialPrice:      parsePrice(col(row, csvInitialPrice)),
			Currency:          defaultStr(col(row, csvCurrency), "RUB"),
			Status:            entity.TenderStatusDraft,
			Deadline:          parseTime(col(row, csvDeadline)),
			OKPDCode:          col(row, csvOKPD),
			OKVEDCode:         col(row, csvOKVED),
			Region:            col(row, csvRegion),
			ProcurementMethod: col(row, csvProcurementMethod),
		}

		if hasCol(csvOrganizerName) {
			if name := col(row, csvOrganizerName); name != "" {
				t.Organizers = append(t.Organizers, entity.Organizer{
					OrganizationName: name,
					LegalAddress:     col(row, csvOrganizerAddress),
					Email:            col(row, csvOrganizerEmail),
					Phone:            col(row, csvOrganizerPhone),
					ContactPerson:    col(row, csvOrganizerContact),
					INN:              col(row, csvOrganizerINN),
				})
			}
		}

		if hasCol(csvLotNumber) || hasCol(csvLotTitle) {
			lotTitle := defaultStr(col(row, csvLotTitle), title)
			lot := entity.Lot{
				LotNumber:     parseIntDefault(col(row, csvLotNumber), 1),
				Title:         lotTitle,
				Description:   col(row, csvLotDescription),
				InitialPrice:  parsePrice(col(row, csvLotInitialPrice)),
				Currency:      defaultStr(col(row, csvLotCurrency), t.Currency),
				DeliveryPlace: col(row, csvLotDeliveryPlace),
				PaymentTerms:  col(row, csvLotPaymentTerms),
				Quantity:      col(row, csvLotQuantity),
				UnitOfMeasure: col(row, csvLotUnit),
			}
			if hasCol(csvProductName) {
				if name := col(row, csvProductName); name != "" {
					lot.Products = append(lot.Products, entity.Product{
						PositionNumber: parseIntDefault(col(row, csvProductPosition), 1),
						Name:           name,
						Quantity:       col(row, csvProductQuantity),
						UnitOfMeasure:  col(row, csvProductUnit),
					})
				}
			}
			t.Lots = append(t.Lots, lot)
		}

		tenders = append(tenders, t)
	}
	if len(tenders) == 0 {
		return nil, fmt.Errorf("%w: no tenders found in CSV", domain.ErrInvalidInput)
	}
	return tenders, nil
}
