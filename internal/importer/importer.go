package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/example/vocadrill/pkg/models"
)

// ErrNoWords is returned when a file yields no usable word pairs
var ErrNoWords = errors.New("empty or invalid file")

// Parse reads an uploaded word list. Excel files are detected by extension,
// anything else is treated as CSV. The first column is the English word,
// the second its translation; both are trimmed and get their first letter
// upper-cased, matching how lists are displayed during practice.
func Parse(filename string, r io.Reader) ([]models.Word, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".xlsx" || ext == ".xlsm" {
		return parseExcel(r)
	}
	return parseCSV(r)
}

// parseCSV reads rows from a CSV file
func parseCSV(r io.Reader) ([]models.Word, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // rows may be ragged
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	return buildWords(rows)
}

// parseExcel reads rows from the first sheet of an Excel file
func parseExcel(r io.Reader) ([]models.Word, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoWords
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	return buildWords(rows)
}

// buildWords turns raw rows into word pairs, skipping rows without at least
// an English word and a translation.
func buildWords(rows [][]string) ([]models.Word, error) {
	words := make([]models.Word, 0, len(rows))

	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		en := strings.TrimSpace(row[0])
		ru := strings.TrimSpace(row[1])
		if en == "" || ru == "" {
			continue
		}

		words = append(words, models.Word{
			English:     capitalizeFirst(en),
			Translation: capitalizeFirst(ru),
		})
	}

	if len(words) == 0 {
		return nil, ErrNoWords
	}
	return words, nil
}

// capitalizeFirst upper-cases the first letter, leaving the rest unchanged
func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
