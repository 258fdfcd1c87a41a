package excel

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almazgeobur/etp-api/internal/domain"
	"github.com/almazgeobur/etp-api/internal/domain/entity"
)

func price(s string) decimal.NullDecimal {
	d, _ := decimal.NewFromString(s)
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

func fixtureTender() *entity.Tender {
	deadline := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	published := time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC)
	return &entity.Tender{
		ID:                7,
		Title:             "Поставка бурового оборудования",
		Description:       "Запасные части для буровых установок",
		InitialPrice:      price("1500000.50"),
		Currency:          "RUB",
		Status:            entity.TenderStatusPublished,
		PublicationDate:   &published,
		Deadline:          &deadline,
		OKPDCode:          "28.92",
		OKVEDCode:         "09.90",
		Region:            "Красноярский край",
		ProcurementMethod: "Запрос предложений",
		CreatedAt:         published,
		Organizers: []entity.Organizer{{
			ID:               1,
			OrganizationName: "АО Алмазгеобур",
			LegalAddress:     "г. Москва, ул. Полярная, д. 1",
			Email:            "tender@example.com",
			Phone:            "+7 495 000-00-00",
			ContactPerson:    "Иванов И.И.",
			INN:              "7701234567",
			KPP:              "770101001",
		}},
		Lots: []entity.Lot{
			{
				ID:            10,
				LotNumber:     1,
				Title:         "Лот 1: Коронки буровые",
				InitialPrice:  price("900000"),
				Currency:      "RUB",
				DeliveryPlace: "г. Норильск",
				PaymentTerms:  "30 дней после поставки",
				Quantity:      "120",
				UnitOfMeasure: "шт",
				Products: []entity.Product{
					{ID: 100, PositionNumber: 1, Name: "Коронка NQ", Quantity: "80", UnitOfMeasure: "шт"},
					{ID: 101, PositionNumber: 2, Name: "Коронка HQ", Quantity: "40", UnitOfMeasure: "шт"},
				},
			},
			{
				ID:            20,
				LotNumber:     2,
				Title:         "Лот 2: Трубы обсадные",
				InitialPrice:  price("600000"),
				Currency:      "RUB",
				Quantity:      "500",
				UnitOfMeasure: "м",
				Products: []entity.Product{
					{ID: 200, PositionNumber: 1, Name: "Труба обсадная 89мм", Quantity: "500", UnitOfMeasure: "м"},
				},
			},
		},
		Documents: []entity.Document{{
			ID:         5,
			Title:      "Техническое задание",
			FilePath:   "uploads/tz.pdf",
			FileSize:   2048,
			FileType:   "pdf",
			UploadedAt: published,
		}},
	}
}

func TestTenderWorkbookRoundTrip(t *testing.T) {
	src := fixtureTender()
	buf, err := BuildTenderWorkbook(src)
	require.NoError(t, err, "export must produce a workbook")

	got, err := ParseTenderWorkbook(buf)
	require.NoError(t, err, "the exported workbook must parse back")

	assert.Equal(t, src.Title, got.Title)
	assert.Equal(t, src.Description, got.Description)
	assert.Equal(t, entity.TenderStatusDraft, got.Status, "imported tenders always start as drafts")
	assert.Equal(t, src.Currency, got.Currency)
	assert.Equal(t, src.OKPDCode, got.OKPDCode)
	assert.Equal(t, src.OKVEDCode, got.OKVEDCode)
	assert.Equal(t, src.Region, got.Region)
	assert.Equal(t, src.ProcurementMethod, got.ProcurementMethod)
	require.True(t, got.InitialPrice.Valid)
	assert.True(t, src.InitialPrice.Decimal.Equal(got.InitialPrice.Decimal),
		"initial price must survive the round trip")
	require.NotNil(t, got.Deadline)
	assert.Equal(t, "15.10.2026 12:00", got.Deadline.Format("02.01.2006 15:04"))

	require.Len(t, got.Organizers, 1)
	assert.Equal(t, "АО Алмазгеобур", got.Organizers[0].OrganizationName)
	assert.Equal(t, "7701234567", got.Organizers[0].INN)

	require.Len(t, got.Lots, 2)
	assert.Equal(t, 1, got.Lots[0].LotNumber)
	assert.Equal(t, "г. Норильск", got.Lots[0].DeliveryPlace)
	require.Len(t, got.Lots[0].Products, 2, "products must land in their own lot")
	require.Len(t, got.Lots[1].Products, 1)
	assert.Equal(t, "Труба обсадная 89мм", got.Lots[1].Products[0].Name)

	require.Len(t, got.Documents, 1)
	assert.Equal(t, "Техническое задание", got.Documents[0].Title)
	assert.Equal(t, int64(2048), got.Documents[0].FileSize)
}

func TestParseTenderWorkbook_MissingMainSheet(t *testing.T) {
	// a bulk listing workbook has no main sheet
	buf, err := BuildTendersWorkbook([]*entity.Tender{fixtureTender()})
	require.NoError(t, err)

	_, err = ParseTenderWorkbook(buf)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTendersWorkbookRoundTrip(t *testing.T) {
	first := fixtureTender()
	second := fixtureTender()
	second.Title = "Поставка ГСМ"
	second.InitialPrice = decimal.NullDecimal{}

	buf, err := BuildTendersWorkbook([]*entity.Tender{first, second})
	require.NoError(t, err)

	got, err := ParseTendersWorkbook(buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, first.Title, got[0].Title)
	assert.Equal(t, entity.TenderStatusDraft, got[0].Status)
	assert.Equal(t, "Поставка ГСМ", got[1].Title)
	assert.False(t, got[1].InitialPrice.Valid, "an empty price cell must stay null")
}

func TestParsePrice(t *testing.T) {
	assert.False(t, parsePrice("").Valid)
	assert.False(t, parsePrice("not a number").Valid)

	d := parsePrice("1 500 000,50")
	require.True(t, d.Valid, "spaces and decimal comma must be tolerated")
	want, _ := decimal.NewFromString("1500000.5")
	assert.True(t, d.Decimal.Equal(want))
}
