package domain

import (
	"encoding/json"
)

// Report maps sheet name to the per-detector results for that sheet. Every
// leaf is a mapping of plain scalars and lists of integers or strings, so the
// whole structure serializes losslessly to JSON.
type Report map[string]*SheetChecks

// SheetChecks holds the per-column results of all three detectors for one
// sheet.
type SheetChecks struct {
	NullCheck      map[string]*NullResult      `json:"null_check"`
	DuplicateCheck map[string]*DuplicateResult `json:"duplicate_check"`
	OutlierCheck   map[string]*OutlierResult   `json:"outlier_check"`
}

// NullResult reports missing entries for one column. NullIndices is truncated
// to the report cap; NullCount and NullRatio always reflect the full data.
type NullResult struct {
	NullCount   int     `json:"null_count"`
	TotalCount  int     `json:"total_count"`
	NullRatio   float64 `json:"null_ratio"`
	NullIndices []int   `json:"null_indices"`
	Note        string  `json:"note,omitempty"`
}

// DuplicateResult reports repeated values for one column, missing entries
// excluded. DuplicatedValues holds the distinct offending values in
// first-occurrence order, truncated to the report cap; DuplicateCount counts
// excess rows, not distinct values. TotalCount is the non-missing count, so
// DuplicateRatio uses a different denominator than OutlierResult; the
// asymmetry is intentional and kept for parity with the reference output.
type DuplicateResult struct {
	TotalCount       int      `json:"total_count"`
	UniqueCount      int      `json:"unique_count"`
	DuplicateCount   int      `json:"duplicate_count"`
	DuplicateRatio   float64  `json:"duplicate_ratio"`
	DuplicatedValues []string `json:"duplicated_values"`
	Note             string   `json:"note,omitempty"`
}

// OutlierResult reports z-score outliers for one numeric column. TotalCount
// is the full row count of the table, including missing rows, so ratios stay
// comparable across columns. Skipped results (non-numeric columns, failed
// statistics) serialize with only the note; no-data results carry counts but
// no mean/std/threshold.
type OutlierResult struct {
	OutlierCount   int     `json:"outlier_count"`
	TotalCount     int     `json:"total_count"`
	OutlierRatio   float64 `json:"outlier_ratio"`
	OutlierIndices []int   `json:"outlier_indices"`
	Mean           float64 `json:"mean"`
	Std            float64 `json:"std"`
	Threshold      float64 `json:"threshold"`
	Note           string  `json:"note,omitempty"`

	// Skipped marks a result that carries only the note.
	Skipped bool `json:"-"`
	// HasStats marks a result whose Mean, Std and Threshold are meaningful.
	HasStats bool `json:"-"`
}

type outlierCounts struct {
	OutlierCount   int     `json:"outlier_count"`
	TotalCount     int     `json:"total_count"`
	OutlierRatio   float64 `json:"outlier_ratio"`
	OutlierIndices []int   `json:"outlier_indices"`
	Note           string  `json:"note,omitempty"`
}

type outlierFull struct {
	outlierCounts
	Mean      float64 `json:"mean"`
	Std       float64 `json:"std"`
	Threshold float64 `json:"threshold"`
}

// MarshalJSON emits only the fields that are meaningful for the result's
// shape: note-only for skipped columns, counts without statistics when the
// column had no data, everything otherwise.
func (r *OutlierResult) MarshalJSON() ([]byte, error) {
	if r.Skipped {
		return json.Marshal(struct {
			Note string `json:"note"`
		}{Note: r.Note})
	}
	indices := r.OutlierIndices
	if indices == nil {
		indices = []int{}
	}
	counts := outlierCounts{
		OutlierCount:   r.OutlierCount,
		TotalCount:     r.TotalCount,
		OutlierRatio:   r.OutlierRatio,
		OutlierIndices: indices,
		Note:           r.Note,
	}
	if !r.HasStats {
		return json.Marshal(counts)
	}
	return json.Marshal(outlierFull{
		outlierCounts: counts,
		Mean:          r.Mean,
		Std:           r.Std,
		Threshold:     r.Threshold,
	})
}
