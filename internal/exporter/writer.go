package exporter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"datacheck/pkg/contracts/domain"
)

// ReportWriter writes check reports to disk.
type ReportWriter struct {
	logger *slog.Logger
}

// NewReportWriter creates a report writer.
func NewReportWriter(logger *slog.Logger) *ReportWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportWriter{logger: logger}
}

// DefaultOutputPath derives the report path from the input path: the input's
// stem with a _check_result.json suffix, in the input's directory.
func DefaultOutputPath(inputPath string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(inputPath), stem+"_check_result.json")
}

// WriteJSON writes the full nested report as indented JSON, creating parent
// directories as needed.
func (w *ReportWriter) WriteJSON(ctx context.Context, path string, report domain.Report) error {
	w.logger.InfoContext(ctx, "writing check report",
		slog.String("path", path),
		slog.Int("sheet_count", len(report)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
