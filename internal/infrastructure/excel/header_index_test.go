package excel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestHeaderIndexMissingColumn(t *testing.T) {
	idx := headerIndex([]string{"Название", " Начальная цена "})

	assert.Equal(t, 0, idx.col("Название"))
	assert.Equal(t, 1, idx.col("Начальная цена"), "headers are trimmed")
	assert.Equal(t, -1, idx.col("Обеспечение заявки"),
		"an absent header must not resolve to column 0")
}

// Sheets missing optional columns must leave the matching fields empty
// instead of filling them from whatever sits in the first column.
func TestParseTenderWorkbook_PartialHeaders(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", SheetMain))
	require.NoError(t, f.SetSheetRow(SheetMain, "A1", &[]string{labelTitle, "Поставка реагентов"}))

	_, err := f.NewSheet(SheetLots)
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow(SheetLots, "A1", &[]string{"Начальная цена", "Название"}))
	require.NoError(t, f.SetSheetRow(SheetLots, "A2", &[]string{"500000", "Лот 1"}))
	require.NoError(t, f.SetSheetRow(SheetLots, "A3", &[]string{"250000", "Лот 2"}))

	_, err = f.NewSheet(SheetProducts)
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow(SheetProducts, "A1", &[]string{"Наименование", "Количество"}))
	require.NoError(t, f.SetSheetRow(SheetProducts, "A2", &[]string{"Сода каустическая", "10"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	tender, perr := ParseTenderWorkbook(&buf)
	require.NoError(t, perr)
	require.Len(t, tender.Lots, 2)

	first := tender.Lots[0]
	assert.Equal(t, "Лот 1", first.Title)
	require.True(t, first.InitialPrice.Valid)
	assert.False(t, first.SecurityAmount.Valid,
		"a sheet without the security column must not borrow the price column")
	assert.Empty(t, first.DeliveryPlace)

	// without an "ID лота" column products attach to the first lot
	require.Len(t, first.Products, 1)
	assert.Equal(t, "Сода каустическая", first.Products[0].Name)
	assert.Empty(t, tender.Lots[1].Products)
}
