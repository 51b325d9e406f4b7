package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"datacheck/internal/checks"
	"datacheck/internal/config"
	"datacheck/internal/exporter"
	"datacheck/internal/files"
	"datacheck/internal/infrastructure"
	"datacheck/internal/loader"
)

func main() {
	inPath := flag.String("in", "", "input file (.csv, .xlsx, .xls) or directory of such files")
	outPath := flag.String("out", "", "output report path (single-file mode only; defaults to <input>_check_result.json)")
	threshold := flag.Float64("threshold", 0, "z-score threshold for outlier detection (defaults to config value)")
	summaryCSV := flag.Bool("summary", false, "also write a per-column summary CSV next to each report")
	configFile := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "usage: datachecker -in <file-or-dir> [-out <report.json>] [-threshold 3.0] [-summary]")
		os.Exit(2)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	if *threshold == 0 {
		*threshold = cfg.Checks.Threshold
	}
	if err := checks.ValidateThreshold(*threshold); err != nil {
		logger.Error("Invalid threshold", slog.Float64("threshold", *threshold), slog.String("error", err.Error()))
		os.Exit(1)
	}

	inputs, err := files.Discover(*inPath)
	if err != nil {
		logger.Error("Failed to collect inputs", slog.String("path", *inPath), slog.String("error", err.Error()))
		os.Exit(1)
	}
	if len(inputs) == 0 {
		logger.Warn("No supported files found", slog.String("path", *inPath))
		fmt.Println("No supported files found")
		return
	}
	if *outPath != "" && len(inputs) > 1 {
		logger.Error("-out is only valid when checking a single file",
			slog.Int("input_count", len(inputs)))
		os.Exit(2)
	}

	logger.Info("Starting data quality checks",
		slog.Int("file_count", len(inputs)),
		slog.Float64("threshold", *threshold))
	fmt.Printf("Found %d file(s) to check\n", len(inputs))

	runner := checks.NewRunner(logger, checks.Options{
		Threshold: *threshold,
		ReportCap: cfg.Checks.ReportCap,
	})
	writer := exporter.NewReportWriter(logger)
	ctx := context.Background()

	failed := 0
	for i, input := range inputs {
		fmt.Printf("Checking file %d of %d: %s\n", i+1, len(inputs), filepath.Base(input))

		if err := checkFile(ctx, runner, writer, input, *outPath, *summaryCSV); err != nil {
			logger.Error("Check failed",
				slog.String("file", input),
				slog.String("error", err.Error()))
			failed++
		}
	}

	fmt.Printf("Checks complete: %d of %d file(s) succeeded\n", len(inputs)-failed, len(inputs))
	if failed > 0 {
		os.Exit(1)
	}
}

// checkFile loads one input, runs all checks and writes the report.
func checkFile(ctx context.Context, runner *checks.Runner, writer *exporter.ReportWriter, input, out string, summary bool) error {
	dataset, err := loader.Load(input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	report, err := runner.Run(ctx, dataset)
	if err != nil {
		return fmt.Errorf("run checks on %s: %w", input, err)
	}

	if out == "" {
		out = exporter.DefaultOutputPath(input)
	}
	if err := writer.WriteJSON(ctx, out, report); err != nil {
		return fmt.Errorf("write report for %s: %w", input, err)
	}
	fmt.Printf("Report written to %s\n", out)

	if summary {
		summaryPath := strings.TrimSuffix(out, filepath.Ext(out)) + "_summary.csv"
		if err := writer.WriteSummaryCSV(ctx, summaryPath, report); err != nil {
			return fmt.Errorf("write summary for %s: %w", input, err)
		}
		fmt.Printf("Summary written to %s\n", summaryPath)
	}
	return nil
}
