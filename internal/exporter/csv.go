package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"datacheck/pkg/contracts/domain"
)

// WriteSummaryCSV writes a flat per-column summary of the report: one row per
// sheet/column pair with the headline counts and ratios of all three checks.
// Sheets and columns are emitted in sorted order so the output is
// deterministic. A UTF-8 BOM is prepended so spreadsheet tools pick up the
// encoding.
func (w *ReportWriter) WriteSummaryCSV(ctx context.Context, path string, report domain.Report) error {
	w.logger.InfoContext(ctx, "writing summary CSV",
		slog.String("path", path),
		slog.Int("sheet_count", len(report)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"Sheet", "Column",
		"NullCount", "NullRatio",
		"DuplicateCount", "DuplicateRatio",
		"OutlierCount", "OutlierRatio", "OutlierNote",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, sheetName := range sortedKeys(report) {
		checks := report[sheetName]
		for _, colName := range sortedKeys(checks.NullCheck) {
			row := summaryRow(sheetName, colName, checks)
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write row for %s/%s: %w", sheetName, colName, err)
			}
		}
	}
	return writer.Error()
}

func summaryRow(sheetName, colName string, checks *domain.SheetChecks) []string {
	null := checks.NullCheck[colName]
	dup := checks.DuplicateCheck[colName]
	out := checks.OutlierCheck[colName]

	row := []string{
		sheetName, colName,
		formatInt(null.NullCount), formatRatio(null.NullRatio),
		formatInt(dup.DuplicateCount), formatRatio(dup.DuplicateRatio),
	}
	if out.Skipped {
		row = append(row, "", "", out.Note)
	} else {
		row = append(row, formatInt(out.OutlierCount), formatRatio(out.OutlierRatio), out.Note)
	}
	return row
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// formatRatio formats a ratio with fixed precision so values like 0.4 appear
// consistently as 0.4000 in CSV.
func formatRatio(f float64) string {
	return fmt.Sprintf("%.4f", f)
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
