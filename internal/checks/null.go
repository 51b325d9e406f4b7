package checks

import (
	"datacheck/pkg/contracts/domain"
)

// CheckNulls scans a column for missing entries. Every column is checked
// regardless of type. NullIndices is truncated to reportCap entries in
// row-index order; NullCount and NullRatio always cover the full column.
func CheckNulls(col *domain.Column, reportCap int) *domain.NullResult {
	result := &domain.NullResult{
		TotalCount:  len(col.Cells),
		NullIndices: []int{},
	}

	for i, cell := range col.Cells {
		if !cell.IsMissing() {
			continue
		}
		result.NullCount++
		if len(result.NullIndices) < reportCap {
			result.NullIndices = append(result.NullIndices, i)
		}
	}

	if result.TotalCount > 0 {
		result.NullRatio = float64(result.NullCount) / float64(result.TotalCount)
	}
	return result
}
