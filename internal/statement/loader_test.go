package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTable_Fixture(t *testing.T) {
	lines := readFixture(t)
	tbl, err := LoadTable(lines, LocateRegion(lines, DefaultMarkers()))
	require.NoError(t, err)

	assert.Equal(t, []string{"Sl. No.", "Date", "Description", "Chq / Ref No.", "Dr / Cr", "Amount", "Balance"}, tbl.Columns)
	require.Equal(t, 8, tbl.Len())

	first := tbl.Records[0]
	assert.Equal(t, "1", first.Values[0])
	assert.Equal(t, "01/03/2024", first.Values[1])
	assert.Equal(t, `="50,000.00"`, first.Values[5])
	assert.Equal(t, "8", tbl.Records[7].Values[0])
}

func TestLoadTable_ExcludesRowsAfterRegion(t *testing.T) {
	lines := []string{
		"Sl. No.,Date,Amount",
		"1,01/01/2024,5",
		"2,02/01/2024,6",
		"Opening balance,,7",
		"3,03/01/2024,8",
	}
	tbl, err := LoadTable(lines, LocateRegion(lines, DefaultMarkers()))
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())
}

func TestLoadTable_SkipsBlankLines(t *testing.T) {
	lines := []string{"Sl. No.,Date", "", "1,01/01/2024", ""}
	tbl, err := LoadTable(lines, Region{Start: 0, End: 4, HeaderFound: true})
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Len())
}

func TestLoadTable_HeaderOnly(t *testing.T) {
	lines := []string{"Sl. No.,Date,Amount"}
	tbl, err := LoadTable(lines, Region{Start: 0, End: 1, HeaderFound: true})
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
	assert.Len(t, tbl.Columns, 3)
}

func TestLoadTable_FieldCountMismatch(t *testing.T) {
	lines := []string{"Sl. No.,Date,Amount", "1,01/01/2024,5,extra"}
	_, err := LoadTable(lines, Region{Start: 0, End: 2, HeaderFound: true})
	assert.ErrorIs(t, err, ErrMalformedCSV)
}

func TestLoadTable_EmptyRegion(t *testing.T) {
	_, err := LoadTable([]string{"Opening balance"}, Region{Start: 0, End: 0})
	assert.ErrorIs(t, err, ErrMalformedCSV)

	_, err = LoadTable(nil, Region{})
	assert.ErrorIs(t, err, ErrMalformedCSV)
}

func TestRequireColumns(t *testing.T) {
	lines := []string{" Date , Amount "}
	tbl, err := LoadTable(lines, Region{Start: 0, End: 1})
	require.NoError(t, err)

	assert.NoError(t, RequireColumns(tbl, "Date", "Amount"))

	err = RequireColumns(tbl, "Date", "Dr / Cr")
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), `"Dr / Cr"`)
}
