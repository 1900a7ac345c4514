package dataset

import (
	"fmt"
	"math"
	"sort"
)

// ColumnInfo summarizes one column for the overview tab.
type ColumnInfo struct {
	Name       string  `json:"name"`
	Kind       string  `json:"kind"`
	NonNull    int     `json:"nonNull"`
	Missing    int     `json:"missing"`
	Unique     int     `json:"unique"`
	MissingPct float64 `json:"missingPct"`
}

// Overview is the general dataset summary shown after an upload.
type Overview struct {
	FileName      string       `json:"fileName"`
	Rows          int          `json:"rows"`
	Cols          int          `json:"cols"`
	MissingCells  int          `json:"missingCells"`
	DuplicateRows int          `json:"duplicateRows"`
	Columns       []ColumnInfo `json:"columns"`
	Head          [][]string   `json:"head"`
}

// Overview computes the dataset summary: shape, total missing cells,
// whole-row duplicate count, a head(10) preview and per-column details.
func (t *Table) Overview() Overview {
	ov := Overview{
		FileName: t.Name,
		Rows:     t.NumRows(),
		Cols:     t.NumCols(),
		Head:     t.Head(10),
	}
	for c, name := range t.Columns {
		var missing int
		distinct := make(map[string]struct{})
		for _, row := range t.Rows {
			if row[c].IsMissing() {
				missing++
				continue
			}
			distinct[row[c].key()] = struct{}{}
		}
		info := ColumnInfo{
			Name:    name,
			Kind:    t.kinds[c].String(),
			NonNull: len(t.Rows) - missing,
			Missing: missing,
			Unique:  len(distinct),
		}
		if len(t.Rows) > 0 {
			info.MissingPct = round2(float64(missing) * 100 / float64(len(t.Rows)))
		}
		ov.MissingCells += missing
		ov.Columns = append(ov.Columns, info)
	}
	ov.DuplicateRows = t.WholeRowDuplicates()
	return ov
}

// MissingColumn is one entry of the missing-values anomaly summary.
type MissingColumn struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Pct   float64 `json:"pct"`
}

// MissingByColumn returns the columns that have at least one missing
// value, sorted by missing count descending (ties by name for stability).
func (t *Table) MissingByColumn() []MissingColumn {
	var out []MissingColumn
	for c, name := range t.Columns {
		count := 0
		for _, row := range t.Rows {
			if row[c].IsMissing() {
				count++
			}
		}
		if count == 0 {
			continue
		}
		mc := MissingColumn{Name: name, Count: count}
		if len(t.Rows) > 0 {
			mc.Pct = round2(float64(count) * 100 / float64(len(t.Rows)))
		}
		out = append(out, mc)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Name < out[j].Name
		}
		return out[i].Count > out[j].Count
	})
	return out
}

// NumericStats is the describe() block for a numeric column.
type NumericStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
}

// NumericStats computes descriptive statistics over the numeric cells of
// a column. Missing and non-numeric cells are skipped.
func (t *Table) NumericStats(column string) (NumericStats, error) {
	c, ok := t.ColumnIndex(column)
	if !ok {
		return NumericStats{}, fmt.Errorf("%w: %s", ErrUnknownColumn, column)
	}
	var vals []float64
	var mean, m2 float64
	for _, row := range t.Rows {
		if row[c].Kind != KindNumber {
			continue
		}
		x := row[c].Num
		vals = append(vals, x)
		// Welford update
		delta := x - mean
		mean += delta / float64(len(vals))
		m2 += delta * (x - mean)
	}
	if len(vals) == 0 {
		return NumericStats{}, fmt.Errorf("column %s has no numeric values", column)
	}
	sort.Float64s(vals)
	s := NumericStats{
		Count:  len(vals),
		Mean:   mean,
		Min:    vals[0],
		Q25:    quantile(vals, 0.25),
		Median: quantile(vals, 0.5),
		Q75:    quantile(vals, 0.75),
		Max:    vals[len(vals)-1],
	}
	if len(vals) > 1 {
		s.Std = math.Sqrt(m2 / float64(len(vals)-1))
	}
	return s, nil
}

// ValueCount is one entry of a categorical distribution.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// ValueCounts returns the distribution of non-missing values in a column,
// sorted by count descending, ties by value ascending.
func (t *Table) ValueCounts(column string) []ValueCount {
	c, ok := t.ColumnIndex(column)
	if !ok {
		return nil
	}
	counts := make(map[string]int)
	for _, row := range t.Rows {
		if row[c].IsMissing() {
			continue
		}
		counts[row[c].String()]++
	}
	out := make([]ValueCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, ValueCount{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Value < out[j].Value
		}
		return out[i].Count > out[j].Count
	})
	return out
}

// NumericValues returns the numeric cells of a column in row order.
func (t *Table) NumericValues(column string) []float64 {
	c, ok := t.ColumnIndex(column)
	if !ok {
		return nil
	}
	var out []float64
	for _, row := range t.Rows {
		if row[c].Kind == KindNumber {
			out = append(out, row[c].Num)
		}
	}
	return out
}

// DistinctCount returns the number of distinct non-missing values.
func (t *Table) DistinctCount(column string) int {
	c, ok := t.ColumnIndex(column)
	if !ok {
		return 0
	}
	distinct := make(map[string]struct{})
	for _, row := range t.Rows {
		if !row[c].IsMissing() {
			distinct[row[c].key()] = struct{}{}
		}
	}
	return len(distinct)
}

// quantile interpolates linearly between the closest ranks of a sorted
// sample.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
