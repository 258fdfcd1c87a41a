package excel

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almazgeobur/etp-api/internal/domain"
	"github.com/almazgeobur/etp-api/internal/domain/entity"
)

func TestParseTendersCSV_FullColumns(t *testing.T) {
	csv := strings.Join([]string{
		"Название,Описание,Начальная цена,Валюта,Регион,Организатор,ИНН организатора,Номер лота,Название лота,Наименование товара,Количество товара",
		"Поставка труб,Обсадные трубы,\"1 200 000,00\",RUB,Красноярский край,АО Алмазгеобур,7701234567,1,Лот 1,Труба 89мм,500",
		"Поставка ГСМ,Дизельное топливо,,,,,,2,,Дизель зимний,100",
	}, "\n")

	got, err := ParseTendersCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, got, 2)

	first := got[0]
	assert.Equal(t, "Поставка труб", first.Title)
	assert.Equal(t, entity.TenderStatusDraft, first.Status)
	require.True(t, first.InitialPrice.Valid)
	assert.True(t, first.InitialPrice.Decimal.Equal(decimal.NewFromInt(1200000)),
		"spaces and decimal comma must be tolerated in prices")
	require.Len(t, first.Organizers, 1, "organizer columns must yield an organizer")
	assert.Equal(t, "7701234567", first.Organizers[0].INN)
	require.Len(t, first.Lots, 1)
	assert.Equal(t, 1, first.Lots[0].LotNumber)
	assert.Equal(t, "Лот 1", first.Lots[0].Title)
	require.Len(t, first.Lots[0].Products, 1)
	assert.Equal(t, "Труба 89мм", first.Lots[0].Products[0].Name)

	second := got[1]
	assert.Equal(t, "RUB", second.Currency, "currency must default to RUB")
	assert.False(t, second.InitialPrice.Valid)
	assert.Empty(t, second.Organizers, "empty organizer cell must not create an organizer")
	require.Len(t, second.Lots, 1)
	assert.Equal(t, second.Title, second.Lots[0].Title,
		"lot title must default to the tender title")
}

func TestParseTendersCSV_MinimalColumns(t *testing.T) {
	csv := "Название,Описание\nПоставка реагентов,Буровые растворы\n"

	got, err := ParseTendersCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Empty(t, got[0].Organizers, "no organizer columns, no organizers")
	assert.Empty(t, got[0].Lots, "no lot columns, no lots")
}

func TestParseTendersCSV_MissingTitleColumn(t *testing.T) {
	csv := "Описание,Регион\nчто-то,где-то\n"

	_, err := ParseTendersCSV(strings.NewReader(csv))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseTendersCSV_RowsWithoutTitleSkipped(t *testing.T) {
	csv := strings.Join([]string{
		"Название,Описание",
		",пустая строка",
		"Поставка кабеля,Кабель силовой",
	}, "\n")

	got, err := ParseTendersCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, got, 1, "rows without a title must be skipped")
	assert.Equal(t, "Поставка кабеля", got[0].Title)
}

func TestParseTendersCSV_NoDataRows(t *testing.T) {
	_, err := ParseTendersCSV(strings.NewReader("Название,Описание\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
