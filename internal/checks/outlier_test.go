package checks

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datacheck/pkg/contracts/domain"
)

func numericColumn(values ...float64) *domain.Column {
	cells := make([]domain.Cell, len(values))
	for i, v := range values {
		cells[i] = domain.Number(v)
	}
	return &domain.Column{Name: "c", Cells: cells}
}

func TestValidateThreshold(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		wantErr   bool
	}{
		{name: "default", threshold: 3.0, wantErr: false},
		{name: "small positive", threshold: 0.001, wantErr: false},
		{name: "zero", threshold: 0, wantErr: true},
		{name: "negative", threshold: -1, wantErr: true},
		{name: "NaN", threshold: math.NaN(), wantErr: true},
		{name: "positive infinity", threshold: math.Inf(1), wantErr: true},
		{name: "negative infinity", threshold: math.Inf(-1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateThreshold(tt.threshold)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidThreshold)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckOutliersInvalidThresholdFailsFast(t *testing.T) {
	_, err := CheckOutliers(numericColumn(1, 2, 3), -2, DefaultReportCap)
	assert.ErrorIs(t, err, ErrInvalidThreshold)
}

func TestCheckOutliersNonNumericSkipped(t *testing.T) {
	col := &domain.Column{Name: "c", Cells: []domain.Cell{
		domain.Text("a"), domain.Text("b"), domain.Missing(),
	}}

	result, err := CheckOutliers(col, 3.0, DefaultReportCap)
	require.NoError(t, err)

	assert.True(t, result.Skipped)
	assert.Equal(t, NoteNotNumeric, result.Note)
	assert.False(t, result.HasStats, "skipped results carry no statistics")
}

func TestCheckOutliersNoData(t *testing.T) {
	tests := []struct {
		name  string
		cells []domain.Cell
	}{
		{name: "empty column", cells: nil},
		{name: "all missing", cells: []domain.Cell{domain.Missing(), domain.Missing()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := &domain.Column{Name: "c", Cells: tt.cells}
			result, err := CheckOutliers(col, 3.0, DefaultReportCap)
			require.NoError(t, err)

			assert.False(t, result.Skipped)
			assert.Equal(t, 0, result.OutlierCount)
			assert.Equal(t, 0, result.TotalCount)
			assert.Equal(t, 0.0, result.OutlierRatio)
			assert.Equal(t, []int{}, result.OutlierIndices)
			assert.Equal(t, NoteNoData, result.Note)
			assert.False(t, result.HasStats)
		})
	}
}

func TestCheckOutliersZeroVariance(t *testing.T) {
	tests := []struct {
		name  string
		cells []domain.Cell
	}{
		{
			name:  "identical values",
			cells: []domain.Cell{domain.Number(5), domain.Number(5), domain.Number(5)},
		},
		{
			name:  "single value has undefined deviation",
			cells: []domain.Cell{domain.Number(5)},
		},
		{
			name:  "single value among missing",
			cells: []domain.Cell{domain.Missing(), domain.Number(5), domain.Missing()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := &domain.Column{Name: "c", Cells: tt.cells}
			result, err := CheckOutliers(col, 3.0, DefaultReportCap)
			require.NoError(t, err)

			assert.Equal(t, 0, result.OutlierCount)
			assert.Equal(t, len(tt.cells), result.TotalCount, "total is the full row count")
			assert.Equal(t, 0.0, result.OutlierRatio)
			assert.Equal(t, []int{}, result.OutlierIndices)
			assert.Equal(t, 5.0, result.Mean)
			assert.Equal(t, 0.0, result.Std)
			assert.Equal(t, 3.0, result.Threshold)
			assert.Equal(t, NoteZeroVariance, result.Note)
			assert.True(t, result.HasStats)
		})
	}
}

func TestCheckOutliersReferenceScenarios(t *testing.T) {
	t.Run("no outliers at default threshold", func(t *testing.T) {
		col := &domain.Column{Name: "c", Cells: []domain.Cell{
			domain.Number(1), domain.Number(2), domain.Number(2),
			domain.Number(3), domain.Missing(),
		}}

		result, err := CheckOutliers(col, 3.0, DefaultReportCap)
		require.NoError(t, err)

		assert.Equal(t, 0, result.OutlierCount)
		assert.Equal(t, 5, result.TotalCount, "total includes missing rows")
		assert.InDelta(t, 2.0, result.Mean, 1e-12)
		assert.InDelta(t, 0.8165, result.Std, 1e-4, "sample standard deviation, n-1")
	})

	t.Run("extreme value flagged at original row index", func(t *testing.T) {
		col := numericColumn(10, 10, 10, 10, 1000)

		result, err := CheckOutliers(col, 1.0, DefaultReportCap)
		require.NoError(t, err)

		assert.Equal(t, 1, result.OutlierCount)
		assert.Equal(t, []int{4}, result.OutlierIndices)
		assert.InDelta(t, 208.0, result.Mean, 1e-12)
		assert.InDelta(t, 442.74, result.Std, 0.01)
		assert.InDelta(t, 0.2, result.OutlierRatio, 1e-12)
	})
}

func TestCheckOutliersValueExactlyAtThresholdNotFlagged(t *testing.T) {
	// Values 0 and 2: mean 1, sample std sqrt(2), so both have z = 1/sqrt(2).
	col := numericColumn(0, 2)
	z := 1 / math.Sqrt2

	at, err := CheckOutliers(col, z, DefaultReportCap)
	require.NoError(t, err)
	assert.Equal(t, 0, at.OutlierCount, "strict inequality: values at the threshold are not outliers")

	below, err := CheckOutliers(col, z-1e-9, DefaultReportCap)
	require.NoError(t, err)
	assert.Equal(t, 2, below.OutlierCount)
}

func TestCheckOutliersMissingRowsKeepOriginalIndices(t *testing.T) {
	col := &domain.Column{Name: "c", Cells: []domain.Cell{
		domain.Missing(), domain.Number(10), domain.Missing(),
		domain.Number(10), domain.Number(10), domain.Number(10),
		domain.Number(1000),
	}}

	result, err := CheckOutliers(col, 1.0, DefaultReportCap)
	require.NoError(t, err)

	assert.Equal(t, []int{6}, result.OutlierIndices, "indices refer to source rows, not the filtered sequence")
	assert.Equal(t, 7, result.TotalCount)
	assert.InDelta(t, float64(result.OutlierCount)/7.0, result.OutlierRatio, 1e-12,
		"ratio denominator is the full row count")
}

func TestCheckOutliersIdempotent(t *testing.T) {
	col := numericColumn(1, 5, 9, 2, 8, 300, 4, 7, 2, 1)

	first, err := CheckOutliers(col, 2.0, DefaultReportCap)
	require.NoError(t, err)
	second, err := CheckOutliers(col, 2.0, DefaultReportCap)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCheckOutliersThresholdMonotonicity(t *testing.T) {
	col := numericColumn(1, 2, 3, 4, 5, 100, -80, 6, 7, 8, 2000, 9)

	prev := math.MaxInt
	for _, threshold := range []float64{0.1, 0.5, 1.0, 1.5, 2.0, 3.0, 5.0} {
		result, err := CheckOutliers(col, threshold, DefaultReportCap)
		require.NoError(t, err)
		assert.LessOrEqual(t, result.OutlierCount, prev,
			"raising the threshold must never increase the outlier count")
		prev = result.OutlierCount
	}
}

func TestCheckOutliersNonFiniteValues(t *testing.T) {
	col := numericColumn(1, 2, math.Inf(1))

	result, err := CheckOutliers(col, 3.0, DefaultReportCap)
	require.NoError(t, err, "a malformed column must not abort the run")

	assert.True(t, result.Skipped)
	assert.Equal(t, NoteNonFinite, result.Note)
}

func TestSampleStats(t *testing.T) {
	mean, std := sampleStats([]float64{1, 2, 2, 3})
	assert.InDelta(t, 2.0, mean, 1e-12)
	assert.InDelta(t, math.Sqrt(2.0/3.0), std, 1e-12)

	mean, std = sampleStats([]float64{42})
	assert.Equal(t, 42.0, mean)
	assert.Equal(t, 0.0, std)
}
