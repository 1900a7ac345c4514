package dataset

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLoadCSV_Basic(t *testing.T) {
	csv := "name,age,active\nalice,30,true\nbob,,false\n"
	tbl, err := LoadCSV("people.csv", strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "age", "active"}, tbl.Columns)
	assert.Equal(t, 2, tbl.NumRows())

	assert.Equal(t, KindText, tbl.Rows[0][0].Kind)
	assert.Equal(t, KindNumber, tbl.Rows[0][1].Kind)
	assert.Equal(t, 30.0, tbl.Rows[0][1].Num)
	assert.Equal(t, KindBool, tbl.Rows[0][2].Kind)
	assert.True(t, tbl.Rows[1][1].IsMissing())
}

func TestLoadCSV_Latin1Fallback(t *testing.T) {
	// "café,décor" in Latin-1: é is the single byte 0xE9, invalid UTF-8.
	data := []byte("ville\ncaf\xe9\n")
	tbl, err := LoadCSV("villes.csv", bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 1, tbl.NumRows())
	assert.Equal(t, "café", tbl.Rows[0][0].String())
}

func TestLoadCSV_ShortRecordsPadded(t *testing.T) {
	csv := "a,b,c\n1,2\n"
	tbl, err := LoadCSV("short.csv", strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, 1, tbl.NumRows())
	assert.True(t, tbl.Rows[0][2].IsMissing())
}

func TestLoadCSV_BOMStripped(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("id\n1\n")...)
	tbl, err := LoadCSV("bom.csv", bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, tbl.Columns)
}

func TestLoadCSV_Empty(t *testing.T) {
	_, err := LoadCSV("empty.csv", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	_, err := LoadFile("data.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestLoadXLSX_RoundTrip(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "name"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "score"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "alice"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", 12.5))
	require.NoError(t, f.SetCellValue("Sheet1", "A3", "bob"))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	tbl, err := LoadXLSX("scores.xlsx", &buf)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "score"}, tbl.Columns)
	require.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, KindNumber, tbl.Rows[0][1].Kind)
	assert.Equal(t, 12.5, tbl.Rows[0][1].Num)
	assert.True(t, tbl.Rows[1][1].IsMissing())
}

func TestCleanHeader(t *testing.T) {
	got := cleanHeader([]string{" a ", "", "a"})
	assert.Equal(t, "a", got[0])
	assert.Equal(t, "column_2", got[1])
	assert.NotEqual(t, got[0], got[2])
}

func TestColumnKinds(t *testing.T) {
	tbl := tableFromStrings([]string{"num", "cat", "flag", "sparse"}, [][]string{
		{"1", "red", "true", ""},
		{"2", "blue", "false", ""},
		{"3", "red", "true", "x"},
		{"bad", "green", "false", ""},
	})

	assert.Equal(t, ColumnNumeric, tbl.ColumnKindOf("num"))
	assert.Equal(t, ColumnCategorical, tbl.ColumnKindOf("cat"))
	assert.Equal(t, ColumnBoolean, tbl.ColumnKindOf("flag"))
	assert.Equal(t, ColumnMissingHeavy, tbl.ColumnKindOf("sparse"))
}

func TestLoadCSV_NonFiniteTokensAreMissing(t *testing.T) {
	tab, err := LoadCSV("t.csv", strings.NewReader("a\nNaN\nInf\n+Inf\n-Infinity\n1.5\n"))
	require.NoError(t, err)
	require.Equal(t, 5, tab.NumRows())

	for i := 0; i < 4; i++ {
		assert.True(t, tab.Rows[i][0].IsMissing(), "row %d", i)
	}
	assert.Equal(t, Number(1.5), tab.Rows[4][0])
}
