package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"datacheck/pkg/contracts/domain"
)

// ErrUnsupportedFormat is returned when a source file's type cannot be
// determined from its extension.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// missingTokens are cell texts treated as missing values, matching the
// conventions of common tabular tools. Comparison is case-insensitive.
var missingTokens = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"nan":  {},
	"null": {},
}

// timeLayouts are the date formats recognized during cell type inference.
var timeLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Load reads a tabular source into a dataset, detecting the format from the
// file extension: .csv for delimited text, .xlsx or .xls for workbooks.
func Load(path string) (*domain.Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".xlsx", ".xls":
		return LoadExcel(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Supported reports whether a path has a loadable extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".xlsx", ".xls":
		return true
	}
	return false
}

// sheetNameFor derives the single-sheet name for a delimited source: the base
// name of the file with the extension stripped.
func sheetNameFor(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ParseCell converts raw cell text into a typed cell. Empty and NA-like
// tokens become missing; otherwise numbers, booleans and dates are inferred
// in that order, with text as the fallback.
func ParseCell(raw string) domain.Cell {
	trimmed := strings.TrimSpace(raw)
	if _, missing := missingTokens[strings.ToLower(trimmed)]; missing {
		return domain.Missing()
	}
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return domain.Number(v)
	}
	switch strings.ToLower(trimmed) {
	case "true":
		return domain.Bool(true)
	case "false":
		return domain.Bool(false)
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return domain.Time(t)
		}
	}
	return domain.Text(trimmed)
}

// tableFromRows builds a table from a header row and data rows. Short rows
// are padded with missing cells; cells beyond the header width are dropped.
func tableFromRows(header []string, rows [][]string) (*domain.Table, error) {
	columns := make([]domain.Column, len(header))
	for j, name := range header {
		columns[j] = domain.Column{
			Name:  strings.TrimSpace(name),
			Cells: make([]domain.Cell, len(rows)),
		}
	}
	for i, row := range rows {
		for j := range columns {
			if j < len(row) {
				columns[j].Cells[i] = ParseCell(row[j])
			} else {
				columns[j].Cells[i] = domain.Missing()
			}
		}
	}
	return domain.NewTable(columns)
}
