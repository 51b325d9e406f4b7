package domain

import (
	"strconv"
	"time"
)

// Kind identifies the type of a present cell value.
type Kind uint8

const (
	KindMissing Kind = iota
	KindNumber
	KindText
	KindBool
	KindTime
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	default:
		return "unknown"
	}
}

// Cell is a single table value: either a typed present value or explicitly
// missing. The zero value is a missing cell.
type Cell struct {
	kind Kind
	num  float64
	str  string
	b    bool
	t    time.Time
}

// Missing returns an explicitly missing cell.
func Missing() Cell {
	return Cell{kind: KindMissing}
}

// Number returns a numeric cell.
func Number(v float64) Cell {
	return Cell{kind: KindNumber, num: v}
}

// Text returns a text cell.
func Text(s string) Cell {
	return Cell{kind: KindText, str: s}
}

// Bool returns a boolean cell.
func Bool(v bool) Cell {
	return Cell{kind: KindBool, b: v}
}

// Time returns a temporal cell.
func Time(v time.Time) Cell {
	return Cell{kind: KindTime, t: v}
}

// Kind returns the cell's type.
func (c Cell) Kind() Kind {
	return c.kind
}

// IsMissing reports whether the cell holds no value.
func (c Cell) IsMissing() bool {
	return c.kind == KindMissing
}

// Number returns the numeric value and whether the cell is numeric.
func (c Cell) Number() (float64, bool) {
	return c.num, c.kind == KindNumber
}

// String returns the display form of the cell. Missing cells render as the
// empty string.
func (c Cell) String() string {
	switch c.kind {
	case KindNumber:
		return strconv.FormatFloat(c.num, 'g', -1, 64)
	case KindText:
		return c.str
	case KindBool:
		return strconv.FormatBool(c.b)
	case KindTime:
		return c.t.Format("2006-01-02T15:04:05Z07:00")
	default:
		return ""
	}
}

// Key returns a canonical value-equality key. Keys are prefixed by kind so
// that the number 1 and the text "1" never collide. Missing cells have no
// key; callers must exclude them before comparing values.
func (c Cell) Key() string {
	switch c.kind {
	case KindNumber:
		return "n:" + strconv.FormatFloat(c.num, 'g', -1, 64)
	case KindText:
		return "s:" + c.str
	case KindBool:
		return "b:" + strconv.FormatBool(c.b)
	case KindTime:
		return "t:" + c.t.UTC().Format(time.RFC3339Nano)
	default:
		return ""
	}
}
