package checks

import (
	"errors"
	"fmt"
	"math"

	"datacheck/pkg/contracts/domain"
)

// ErrInvalidThreshold is returned when the z-score threshold is not a
// positive, finite number. It surfaces before any column is scanned.
var ErrInvalidThreshold = errors.New("outlier threshold must be a positive finite number")

// Notes attached to outlier results for columns that produce no statistics.
const (
	NoteNotNumeric   = "not numeric, skipped"
	NoteNoData       = "no data"
	NoteZeroVariance = "zero variance, no outliers"
	NoteNonFinite    = "cannot compute statistics: column contains non-finite values"
)

// ValidateThreshold checks that a z-score threshold is usable.
func ValidateThreshold(threshold float64) error {
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) || threshold <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidThreshold, threshold)
	}
	return nil
}

// CheckOutliers flags statistical outliers in a numeric column using the
// z-score method: a value is an outlier when |value-mean|/std strictly
// exceeds the threshold. The standard deviation is the sample standard
// deviation (n-1 denominator); a single value or identical values give zero
// variance and no outliers. Missing entries are excluded from the statistics
// but TotalCount stays the full row count of the table so ratios are
// comparable across columns. Non-numeric columns return a note-only result.
func CheckOutliers(col *domain.Column, threshold float64, reportCap int) (*domain.OutlierResult, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return nil, err
	}

	if !col.IsNumeric() {
		return &domain.OutlierResult{Note: NoteNotNumeric, Skipped: true}, nil
	}

	values := make([]float64, 0, len(col.Cells))
	rowIndex := make([]int, 0, len(col.Cells))
	for i, cell := range col.Cells {
		if v, ok := cell.Number(); ok {
			values = append(values, v)
			rowIndex = append(rowIndex, i)
		}
	}

	if len(values) == 0 {
		return &domain.OutlierResult{
			OutlierIndices: []int{},
			Note:           NoteNoData,
		}, nil
	}

	mean, std := sampleStats(values)
	if math.IsNaN(mean) || math.IsInf(mean, 0) || math.IsNaN(std) || math.IsInf(std, 0) {
		return &domain.OutlierResult{Note: NoteNonFinite, Skipped: true}, nil
	}

	result := &domain.OutlierResult{
		TotalCount:     len(col.Cells),
		OutlierIndices: []int{},
		Mean:           mean,
		Std:            std,
		Threshold:      threshold,
		HasStats:       true,
	}

	if std == 0 {
		result.Note = NoteZeroVariance
		return result, nil
	}

	for j, v := range values {
		if math.Abs(v-mean)/std > threshold {
			result.OutlierCount++
			if len(result.OutlierIndices) < reportCap {
				result.OutlierIndices = append(result.OutlierIndices, rowIndex[j])
			}
		}
	}
	if result.TotalCount > 0 {
		result.OutlierRatio = float64(result.OutlierCount) / float64(result.TotalCount)
	}
	return result, nil
}

// sampleStats returns the mean and sample standard deviation (n-1) of values.
// With fewer than two values the deviation is zero.
func sampleStats(values []float64) (mean, std float64) {
	n := float64(len(values))
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean = sum / n

	if len(values) < 2 {
		return mean, 0
	}
	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return mean, math.Sqrt(sumSq / (n - 1))
}
