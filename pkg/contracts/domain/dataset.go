package domain

import (
	"fmt"
)

// Column is the materialized sequence of cell values for one table column.
// Cell position is the zero-based row index; missing entries are explicit so
// detectors can report original row indices, not indices into a filtered
// subsequence.
type Column struct {
	Name  string
	Cells []Cell
}

// Kind infers the column's value type from its non-missing cells. A column is
// numeric only when every non-missing cell is numeric; a column with no
// non-missing cells at all counts as numeric, matching the behavior of
// tabular loaders that default empty columns to a numeric dtype. Mixed-type
// columns degrade to text.
func (c *Column) Kind() Kind {
	kind := KindMissing
	for _, cell := range c.Cells {
		if cell.IsMissing() {
			continue
		}
		if kind == KindMissing {
			kind = cell.Kind()
			continue
		}
		if cell.Kind() != kind {
			return KindText
		}
	}
	if kind == KindMissing {
		return KindNumber
	}
	return kind
}

// IsNumeric reports whether the column's inferred type is numeric.
func (c *Column) IsNumeric() bool {
	return c.Kind() == KindNumber
}

// Table is an ordered collection of equally sized named columns.
type Table struct {
	columns  []Column
	rowCount int
}

// NewTable builds a table from ordered columns. Column names must be unique
// and every column must have the same number of cells.
func NewTable(columns []Column) (*Table, error) {
	seen := make(map[string]struct{}, len(columns))
	rows := 0
	for i, col := range columns {
		if _, dup := seen[col.Name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", col.Name)
		}
		seen[col.Name] = struct{}{}
		if i == 0 {
			rows = len(col.Cells)
		} else if len(col.Cells) != rows {
			return nil, fmt.Errorf("column %q has %d rows, want %d", col.Name, len(col.Cells), rows)
		}
	}
	return &Table{columns: columns, rowCount: rows}, nil
}

// Columns returns the table's columns in declaration order.
func (t *Table) Columns() []Column {
	return t.columns
}

// Column returns the named column, if present.
func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.columns {
		if t.columns[i].Name == name {
			return &t.columns[i], true
		}
	}
	return nil, false
}

// RowCount returns the number of rows in the table.
func (t *Table) RowCount() int {
	return t.rowCount
}

// Sheet is one named table within a dataset.
type Sheet struct {
	Name  string
	Table *Table
}

// Dataset is an order-preserving collection of named sheets. A CSV source
// yields exactly one sheet keyed by the file's base name; a workbook source
// yields one sheet per worksheet in worksheet order.
type Dataset struct {
	sheets []Sheet
}

// AddSheet appends a named sheet. Sheet names must be unique.
func (d *Dataset) AddSheet(name string, table *Table) error {
	for _, s := range d.sheets {
		if s.Name == name {
			return fmt.Errorf("duplicate sheet name %q", name)
		}
	}
	d.sheets = append(d.sheets, Sheet{Name: name, Table: table})
	return nil
}

// Sheets returns the sheets in insertion order.
func (d *Dataset) Sheets() []Sheet {
	return d.sheets
}

// Sheet returns the named sheet's table, if present.
func (d *Dataset) Sheet(name string) (*Table, bool) {
	for _, s := range d.sheets {
		if s.Name == name {
			return s.Table, true
		}
	}
	return nil, false
}
