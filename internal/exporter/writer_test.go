package exporter

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datacheck/pkg/contracts/domain"
)

func testWriter() *ReportWriter {
	return NewReportWriter(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func sampleReport() domain.Report {
	return domain.Report{
		"data": &domain.SheetChecks{
			NullCheck: map[string]*domain.NullResult{
				"values": {NullCount: 1, TotalCount: 5, NullRatio: 0.2, NullIndices: []int{4}},
				"labels": {NullCount: 0, TotalCount: 5, NullRatio: 0, NullIndices: []int{}},
			},
			DuplicateCheck: map[string]*domain.DuplicateResult{
				"values": {TotalCount: 4, UniqueCount: 3, DuplicateCount: 1, DuplicateRatio: 0.25, DuplicatedValues: []string{"2"}},
				"labels": {TotalCount: 5, UniqueCount: 5, DuplicatedValues: []string{}},
			},
			OutlierCheck: map[string]*domain.OutlierResult{
				"values": {
					OutlierCount: 1, TotalCount: 5, OutlierRatio: 0.2,
					OutlierIndices: []int{4}, Mean: 208, Std: 442.7, Threshold: 1.0,
					HasStats: true,
				},
				"labels": {Note: "not numeric, skipped", Skipped: true},
			},
		},
	}
}

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "data.csv", expected: "data_check_result.json"},
		{input: "/tmp/in/book.xlsx", expected: "/tmp/in/book_check_result.json"},
		{input: "report.v2.csv", expected: "report.v2_check_result.json"},
	}
	for _, tt := range tests {
		assert.Equal(t, filepath.FromSlash(tt.expected), DefaultOutputPath(filepath.FromSlash(tt.input)))
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.json")

	require.NoError(t, testWriter().WriteJSON(context.Background(), path, sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(data, []byte("  ")), "output is indented")

	var decoded map[string]map[string]map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	sheet := decoded["data"]
	require.NotNil(t, sheet)
	assert.Equal(t, float64(1), sheet["null_check"]["values"]["null_count"])
	assert.Equal(t, []any{"2"}, sheet["duplicate_check"]["values"]["duplicated_values"])
	assert.Equal(t, map[string]any{"note": "not numeric, skipped"}, sheet["outlier_check"]["labels"])
	assert.Equal(t, 1.0, sheet["outlier_check"]["values"]["threshold"])
}

func TestWriteSummaryCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.csv")

	require.NoError(t, testWriter().WriteSummaryCSV(context.Background(), path, sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}), "file starts with a UTF-8 BOM")

	records, err := csv.NewReader(bytes.NewReader(data[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus one row per column")

	assert.Equal(t, []string{
		"Sheet", "Column",
		"NullCount", "NullRatio",
		"DuplicateCount", "DuplicateRatio",
		"OutlierCount", "OutlierRatio", "OutlierNote",
	}, records[0])

	// Columns are sorted, so labels precedes values.
	labels := records[1]
	assert.Equal(t, "labels", labels[1])
	assert.Equal(t, "", labels[6], "skipped columns leave outlier numbers blank")
	assert.Equal(t, "not numeric, skipped", labels[8])

	values := records[2]
	assert.Equal(t, "values", values[1])
	assert.Equal(t, "1", values[2])
	assert.Equal(t, "0.2000", values[3])
	assert.Equal(t, "1", values[6])
	assert.Equal(t, "0.2000", values[7])
}

func TestWriteJSONBadPath(t *testing.T) {
	file := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	err := testWriter().WriteJSON(context.Background(), filepath.Join(file, "report.json"), sampleReport())
	assert.Error(t, err, "a file in the directory position must fail")
}
