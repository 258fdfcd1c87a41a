// Package pdf renders the printable tender notice form.
//
// A4 layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Название тендера  │  Номер извещения + Статус      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ОБЩИЕ СВЕДЕНИЯ: цена / сроки / регион / способ закупки     │
//	│  ОРГАНИЗАТОРЫ: название + ИНН + контакты                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ТАБЛИЦА ЛОТОВ: № | Название | Цена | Кол-во | Поставка     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: документация + дата формирования                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/almazgeobur/etp-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const dateTimeLayout = "02.01.2006 15:04"

// MarotoPDFGenerator renders tender notices with Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator builds the generator.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateTenderPDF renders the notice and returns its bytes.
func (g *MarotoPDFGenerator) GenerateTenderPDF(_ context.Context, t *entity.Tender) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Извещение о закупке", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(t))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(generalInfoRows(t)...)
	if len(t.Organizers) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(organizerRows(t.Organizers)...)
	}
	if len(t.Lots) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(lotsHeaderRow())
		for _, r := range lotRows(t.Lots) {
			m.AddRows(r)
		}
	}
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(t))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: tender title (left), notice number + status (right).
func headerRow(t *entity.Tender) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(t.Title, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("Извещение о проведении закупки", props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(nonEmpty(t.NoticeNumber, fmt.Sprintf("№ %d", t.ID)), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New("Статус: "+statusLabel(t.Status), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
			text.New("Публикация: "+timeLabel(t.PublicationDate), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func generalInfoRows(t *entity.Tender) []core.Row {
	info := func(label, value string) core.Row {
		return row.New(6).Add(
			col.New(4).Add(text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 1,
			})),
			col.New(8).Add(text.New(nonEmpty(value, "—"), props.Text{
				Size: 8, Top: 1, Color: colorGray,
			})),
		)
	}
	return []core.Row{
		row.New(7).Add(col.New(12).Add(text.New("ОБЩИЕ СВЕДЕНИЯ", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		}))),
		info("Начальная цена:", priceLabel(t.InitialPrice, t.Currency)),
		info("Срок подачи заявок:", timeLabel(t.Deadline)),
		info("Регион:", t.Region),
		info("Способ закупки:", t.ProcurementMethod),
		info("Код ОКПД2:", t.OKPDCode),
		info("Код ОКВЭД2:", t.OKVEDCode),
	}
}

func organizerRows(organizers []entity.Organizer) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(text.New("ОРГАНИЗАТОРЫ", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		}))),
	}
	for _, o := range organizers {
		rows = append(rows, row.New(12).Add(col.New(12).Add(
			text.New(o.OrganizationName, props.Text{Style: fontstyle.Bold, Size: 9, Top: 1}),
			text.New(fmt.Sprintf("ИНН: %s   |   Контакт: %s   |   Email: %s   |   Тел: %s",
				nonEmpty(o.INN, "—"),
				nonEmpty(o.ContactPerson, "—"),
				nonEmpty(o.Email, "—"),
				nonEmpty(o.Phone, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		)))
	}
	return rows
}

func lotsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("№", 1, align.Center),
		h("Наименование лота", 5, align.Left),
		h("Начальная цена", 3, align.Right),
		h("Кол-во", 1, align.Center),
		h("Место поставки", 2, align.Left),
	)
}

func lotRows(lots []entity.Lot) []core.Row {
	result := make([]core.Row, 0, len(lots))
	for _, l := range lots {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", l.LotNumber),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				l.Title,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				priceLabel(l.InitialPrice, l.Currency),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				nonEmpty(l.Quantity, "—"),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				nonEmpty(l.DeliveryPlace, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
		))
	}
	return result
}

func footerRow(t *entity.Tender) core.Row {
	return row.New(10).Add(
		col.New(6).Add(text.New(
			fmt.Sprintf("Документов в составе извещения: %d", len(t.Documents)),
			props.Text{Size: 7, Color: colorGray, Top: 2},
		)),
		col.New(6).Add(text.New(
			"Сформировано: "+time.Now().Format(dateTimeLayout),
			props.Text{Size: 7, Align: align.Right, Color: colorGray, Top: 2},
		)),
	)
}

func statusLabel(status string) string {
	switch status {
	case entity.TenderStatusDraft:
		return "Черновик"
	case entity.TenderStatusPublished:
		return "Опубликован"
	case entity.TenderStatusInProgress:
		return "Идет прием заявок"
	case entity.TenderStatusCompleted:
		return "Завершен"
	case entity.TenderStatusCancelled:
		return "Отменен"
	}
	return status
}

func priceLabel(d decimal.NullDecimal, currency string) string {
	if !d.Valid {
		return "—"
	}
	return d.Decimal.StringFixed(2) + " " + nonEmpty(currency, "RUB")
}

func timeLabel(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.Format(dateTimeLayout)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
