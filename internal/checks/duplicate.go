package checks

import (
	"datacheck/pkg/contracts/domain"
)

// CheckDuplicates scans a column for repeated values, ignoring missing
// entries. Equality follows the cell's value type: numeric equality for
// numbers, exact match for text. DuplicatedValues lists the distinct values
// that occur more than once, in first-occurrence order, truncated to
// reportCap; DuplicateCount counts excess rows over the distinct values.
func CheckDuplicates(col *domain.Column, reportCap int) *domain.DuplicateResult {
	counts := make(map[string]int)
	display := make(map[string]string)
	var order []string

	total := 0
	for _, cell := range col.Cells {
		if cell.IsMissing() {
			continue
		}
		total++
		key := cell.Key()
		if counts[key] == 0 {
			order = append(order, key)
			display[key] = cell.String()
		}
		counts[key]++
	}

	result := &domain.DuplicateResult{
		TotalCount:       total,
		UniqueCount:      len(counts),
		DuplicateCount:   total - len(counts),
		DuplicatedValues: []string{},
	}
	if total > 0 {
		result.DuplicateRatio = float64(result.DuplicateCount) / float64(total)
	}

	for _, key := range order {
		if counts[key] <= 1 {
			continue
		}
		if len(result.DuplicatedValues) >= reportCap {
			break
		}
		result.DuplicatedValues = append(result.DuplicatedValues, display[key])
	}
	return result
}
