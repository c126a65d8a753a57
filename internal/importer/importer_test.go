package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseCSV(t *testing.T) {
	t.Parallel()

	csv := "cat,кот\n" +
		" dog , собака \n" +
		"only-one-column\n" +
		",пусто\n" +
		"bird,птица,extra\n"

	words, err := Parse("animals.csv", strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, words, 3)

	// trimmed and first letter upper-cased
	assert.Equal(t, "Cat", words[0].English)
	assert.Equal(t, "Кот", words[0].Translation)
	assert.Equal(t, "Dog", words[1].English)
	assert.Equal(t, "Собака", words[1].Translation)
	// extra columns beyond the pair are ignored
	assert.Equal(t, "Bird", words[2].English)
}

func TestParseCSVEmptyFile(t *testing.T) {
	t.Parallel()

	_, err := Parse("empty.csv", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoWords)
}

func TestParseCSVRowsWithoutPairs(t *testing.T) {
	t.Parallel()

	_, err := Parse("bad.csv", strings.NewReader("one\ntwo\nthree\n"))
	assert.ErrorIs(t, err, ErrNoWords)
}

func TestParseExcel(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "cat"))
	require.NoError(t, f.SetCellValue(sheet, "B1", "кот"))
	require.NoError(t, f.SetCellValue(sheet, "A2", "dog"))
	require.NoError(t, f.SetCellValue(sheet, "B2", "собака"))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	words, err := Parse("list.xlsx", buf)
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "Cat", words[0].English)
	assert.Equal(t, "Собака", words[1].Translation)
}

func TestParseUnknownExtensionFallsBackToCSV(t *testing.T) {
	t.Parallel()

	words, err := Parse("list.txt", strings.NewReader("cat,кот\n"))
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Equal(t, "Cat", words[0].English)
}
