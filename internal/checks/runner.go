package checks

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"datacheck/pkg/contracts/domain"
)

// Defaults for the check run.
const (
	DefaultThreshold = 3.0
	DefaultReportCap = 100
)

// Options configures a check run.
type Options struct {
	// Threshold is the z-score above which a value counts as an outlier.
	Threshold float64
	// ReportCap bounds the length of list-valued result fields (indices,
	// duplicated values). Count and ratio fields always cover the full data.
	ReportCap int
}

// DefaultOptions returns the standard run configuration.
func DefaultOptions() Options {
	return Options{Threshold: DefaultThreshold, ReportCap: DefaultReportCap}
}

// Runner executes all three detectors over every column of every sheet and
// assembles the nested report.
type Runner struct {
	logger    *slog.Logger
	threshold float64
	reportCap int
}

// NewRunner creates a runner. Zero option values fall back to defaults.
func NewRunner(logger *slog.Logger, opts Options) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Threshold == 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.ReportCap <= 0 {
		opts.ReportCap = DefaultReportCap
	}
	return &Runner{
		logger:    logger,
		threshold: opts.Threshold,
		reportCap: opts.ReportCap,
	}
}

// Run checks every sheet of the dataset and returns the assembled report.
// The threshold is validated once before any scanning begins; per-column
// failures are converted into note-carrying results and never abort the run.
// Output is deterministic for identical inputs.
func (r *Runner) Run(ctx context.Context, ds *domain.Dataset) (domain.Report, error) {
	if err := ValidateThreshold(r.threshold); err != nil {
		return nil, err
	}

	sheets := ds.Sheets()
	r.logger.InfoContext(ctx, "starting data quality checks",
		slog.Int("sheet_count", len(sheets)),
		slog.Float64("threshold", r.threshold))

	report := make(domain.Report, len(sheets))
	for _, sheet := range sheets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report[sheet.Name] = r.checkSheet(ctx, sheet)
	}

	r.logger.InfoContext(ctx, "data quality checks complete",
		slog.Int("sheet_count", len(report)))
	return report, nil
}

type columnChecks struct {
	null *domain.NullResult
	dup  *domain.DuplicateResult
	out  *domain.OutlierResult
}

// checkSheet runs the detectors over every column of one sheet. Columns are
// independent, so they are checked concurrently; results land in a slice
// indexed by column position, which keeps the output identical to a
// sequential run.
func (r *Runner) checkSheet(ctx context.Context, sheet domain.Sheet) *domain.SheetChecks {
	columns := sheet.Table.Columns()
	results := make([]columnChecks, len(columns))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range columns {
		i := i
		g.Go(func() error {
			results[i] = r.checkColumn(gctx, sheet.Name, &columns[i])
			return nil
		})
	}
	// Column workers isolate their own failures and never return errors.
	_ = g.Wait()

	checks := &domain.SheetChecks{
		NullCheck:      make(map[string]*domain.NullResult, len(columns)),
		DuplicateCheck: make(map[string]*domain.DuplicateResult, len(columns)),
		OutlierCheck:   make(map[string]*domain.OutlierResult, len(columns)),
	}
	for i := range columns {
		checks.NullCheck[columns[i].Name] = results[i].null
		checks.DuplicateCheck[columns[i].Name] = results[i].dup
		checks.OutlierCheck[columns[i].Name] = results[i].out
	}
	return checks
}

// checkColumn runs the three detectors for one column. The detectors are
// independent and order-insensitive; a failure in one leaves the others
// untouched.
func (r *Runner) checkColumn(ctx context.Context, sheetName string, col *domain.Column) columnChecks {
	var cc columnChecks

	cc.null = r.guardedNulls(ctx, sheetName, col)
	cc.dup = r.guardedDuplicates(ctx, sheetName, col)
	cc.out = r.guardedOutliers(ctx, sheetName, col)

	return cc
}

func (r *Runner) guardedNulls(ctx context.Context, sheetName string, col *domain.Column) (result *domain.NullResult) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logColumnFailure(ctx, sheetName, col.Name, "null_check", rec)
			result = &domain.NullResult{Note: failureNote(rec)}
		}
	}()
	return CheckNulls(col, r.reportCap)
}

func (r *Runner) guardedDuplicates(ctx context.Context, sheetName string, col *domain.Column) (result *domain.DuplicateResult) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logColumnFailure(ctx, sheetName, col.Name, "duplicate_check", rec)
			result = &domain.DuplicateResult{Note: failureNote(rec), DuplicatedValues: []string{}}
		}
	}()
	return CheckDuplicates(col, r.reportCap)
}

func (r *Runner) guardedOutliers(ctx context.Context, sheetName string, col *domain.Column) (result *domain.OutlierResult) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logColumnFailure(ctx, sheetName, col.Name, "outlier_check", rec)
			result = &domain.OutlierResult{Note: failureNote(rec), Skipped: true}
		}
	}()
	res, err := CheckOutliers(col, r.threshold, r.reportCap)
	if err != nil {
		// Threshold was validated at run entry, so this only fires when the
		// runner is misused directly; keep the run alive regardless.
		r.logColumnFailure(ctx, sheetName, col.Name, "outlier_check", err)
		return &domain.OutlierResult{Note: failureNote(err), Skipped: true}
	}
	return res
}

func (r *Runner) logColumnFailure(ctx context.Context, sheetName, colName, check string, cause any) {
	r.logger.ErrorContext(ctx, "column check failed",
		slog.String("sheet", sheetName),
		slog.String("column", colName),
		slog.String("check", check),
		slog.Any("cause", cause))
}

func failureNote(cause any) string {
	return fmt.Sprintf("check failed: %v", cause)
}
