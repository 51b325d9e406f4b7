package loader

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"

	"datacheck/pkg/contracts/domain"
)

// LoadCSV reads a delimited text file into a single-sheet dataset keyed by
// the file's base name with the extension stripped. The first row is the
// header; every following row is data.
func LoadCSV(path string) (*domain.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	var header []string
	var rows [][]string
	if len(records) > 0 {
		header = records[0]
		rows = records[1:]
	}

	table, err := tableFromRows(header, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to build table from %s: %w", path, err)
	}

	slog.Debug("loaded csv file",
		slog.String("path", path),
		slog.Int("columns", len(header)),
		slog.Int("rows", len(rows)))

	ds := &domain.Dataset{}
	if err := ds.AddSheet(sheetNameFor(path), table); err != nil {
		return nil, err
	}
	return ds, nil
}
