// Package dataset provides the in-memory table model and the analysis
// operations that run against it: profiling, missing-value summaries and
// unique/duplicate row classification.
//
// A Table is created once per uploaded file and lives for the duration of
// one session. All operations are pure reads; nothing in this package
// mutates a loaded table.
package dataset

import (
	"math"
	"strconv"
	"strings"
)

// ValueKind identifies the dynamic type of a single cell.
type ValueKind int

const (
	KindMissing ValueKind = iota
	KindNumber
	KindBool
	KindText
)

// Value is one cell of a table. Exactly one of the payload fields is
// meaningful, selected by Kind.
type Value struct {
	Kind ValueKind
	Num  float64
	Bool bool
	Str  string
}

// Missing returns the null cell value.
func Missing() Value { return Value{Kind: KindMissing} }

// Number returns a numeric cell value.
func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }

// BoolValue returns a boolean cell value.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Text returns a text cell value.
func Text(s string) Value { return Value{Kind: KindText, Str: s} }

// ParseValue converts a raw field into a typed cell. Empty or
// whitespace-only fields become missing values. Numbers and booleans are
// recognized; everything else is text. NaN and infinity tokens become
// missing values, so a numeric cell always holds a finite float.
func ParseValue(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Missing()
	}
	switch strings.ToLower(s) {
	case "true", "false":
		return BoolValue(strings.EqualFold(s, "true"))
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Missing()
		}
		return Number(f)
	}
	return Text(s)
}

// IsMissing reports whether the cell holds no value.
func (v Value) IsMissing() bool { return v.Kind == KindMissing }

// String renders the cell for display. Missing cells render empty.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindText:
		return v.Str
	default:
		return ""
	}
}

// key returns the canonical equality key for the cell. Two cells compare
// equal iff their keys are equal; missing compares equal to missing.
func (v Value) key() string {
	switch v.Kind {
	case KindNumber:
		return "n:" + strconv.FormatFloat(v.Num, 'g', -1, 64)
	case KindBool:
		return "b:" + strconv.FormatBool(v.Bool)
	case KindText:
		return "t:" + v.Str
	default:
		return "\x00"
	}
}

// ColumnKind is the per-column type tag resolved once at load time.
type ColumnKind int

const (
	ColumnCategorical ColumnKind = iota
	ColumnNumeric
	ColumnBoolean
	ColumnMissingHeavy
)

// String returns the tag name used in API responses.
func (k ColumnKind) String() string {
	switch k {
	case ColumnNumeric:
		return "numeric"
	case ColumnBoolean:
		return "boolean"
	case ColumnMissingHeavy:
		return "missing-heavy"
	default:
		return "categorical"
	}
}

// Row is one record of a table, aligned with Table.Columns.
type Row []Value

// Table is an ordered sequence of rows with fixed, named columns.
type Table struct {
	Name    string // source filename
	Columns []string
	Rows    []Row

	kinds []ColumnKind
	index map[string]int
}

// NewTable builds a table from pre-parsed rows. Short rows are padded with
// missing values so every row has one cell per column.
func NewTable(name string, columns []string, rows []Row) *Table {
	t := &Table{Name: name, Columns: columns, Rows: rows}
	for i, r := range t.Rows {
		for len(r) < len(columns) {
			r = append(r, Missing())
		}
		t.Rows[i] = r[:len(columns)]
	}
	t.index = make(map[string]int, len(columns))
	for i, c := range columns {
		t.index[c] = i
	}
	t.kinds = resolveKinds(t)
	return t
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int { return len(t.Rows) }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.Columns) }

// ColumnIndex returns the position of a named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// ColumnKindOf returns the type tag for a named column. Unknown columns
// report categorical.
func (t *Table) ColumnKindOf(name string) ColumnKind {
	if i, ok := t.index[name]; ok {
		return t.kinds[i]
	}
	return ColumnCategorical
}

// ColumnValues returns all cells of a named column in row order.
func (t *Table) ColumnValues(name string) []Value {
	i, ok := t.index[name]
	if !ok {
		return nil
	}
	out := make([]Value, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = row[i]
	}
	return out
}

// Head returns up to n rows rendered as strings, for previews.
func (t *Table) Head(n int) [][]string {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	out := make([][]string, n)
	for i := 0; i < n; i++ {
		out[i] = renderRow(t.Rows[i])
	}
	return out
}

// Subset returns a new table containing the given rows, in the given
// order, with all original columns. Indices must be valid.
func (t *Table) Subset(name string, rowIdx []int) *Table {
	rows := make([]Row, len(rowIdx))
	for i, r := range rowIdx {
		rows[i] = t.Rows[r]
	}
	return NewTable(name, t.Columns, rows)
}

func renderRow(r Row) []string {
	out := make([]string, len(r))
	for i, v := range r {
		out[i] = v.String()
	}
	return out
}

// missingHeavyThreshold marks a column missing-heavy when at least half
// of its cells are null.
const missingHeavyThreshold = 0.5

// resolveKinds inspects every column once and assigns its type tag. The
// tag drives the numeric-vs-categorical chart branch so it is decided at
// load time, not per chart call.
func resolveKinds(t *Table) []ColumnKind {
	kinds := make([]ColumnKind, len(t.Columns))
	for c := range t.Columns {
		var num, boo, txt, miss int
		for _, row := range t.Rows {
			switch row[c].Kind {
			case KindNumber:
				num++
			case KindBool:
				boo++
			case KindText:
				txt++
			default:
				miss++
			}
		}
		total := len(t.Rows)
		switch {
		case total > 0 && float64(miss)/float64(total) >= missingHeavyThreshold:
			kinds[c] = ColumnMissingHeavy
		case num > 0 && num >= txt && num >= boo:
			kinds[c] = ColumnNumeric
		case boo > 0 && boo >= txt:
			kinds[c] = ColumnBoolean
		default:
			kinds[c] = ColumnCategorical
		}
	}
	return kinds
}
