package loader

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"datacheck/pkg/contracts/domain"
)

// LoadExcel reads every worksheet of a workbook into a dataset, one sheet per
// worksheet in workbook order. The first row of each worksheet is the header.
func LoadExcel(path string) (*domain.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	ds := &domain.Dataset{}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}

		var header []string
		var data [][]string
		if len(rows) > 0 {
			header = rows[0]
			data = rows[1:]
		}

		table, err := tableFromRows(header, data)
		if err != nil {
			return nil, fmt.Errorf("failed to build table from sheet %q: %w", name, err)
		}

		slog.Debug("loaded worksheet",
			slog.String("path", path),
			slog.String("sheet", name),
			slog.Int("columns", len(header)),
			slog.Int("rows", len(data)))

		if err := ds.AddSheet(name, table); err != nil {
			return nil, err
		}
	}
	return ds, nil
}
