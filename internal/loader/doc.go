// Package loader reads delimited text files and Excel workbooks into
// in-memory datasets. The format is detected from the path's extension; row
// order, column order and worksheet order are preserved, and empty cells are
// represented as explicitly missing values.
package loader
