package dataset

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Selection errors are recoverable user-input conditions, reported to the
// user as a warning rather than a failure.
var (
	ErrEmptySelection = errors.New("no columns selected")
	ErrUnknownColumn  = errors.New("unknown column")
)

// Group is one value combination that occurs two or more times in the
// selected columns, with its occurrence count.
type Group struct {
	Values []Value
	Count  int
}

// Classification partitions a table's rows by the projection onto a
// column selection. Unique holds the indices of rows whose combination
// occurs exactly once; Duplicate holds the rows of every combination that
// occurs at least twice — all members of such a group, not just the
// repeats after the first. Both slices preserve original row order and
// together cover every row exactly once.
type Classification struct {
	Columns   []string
	Unique    []int
	Duplicate []int
	Groups    []Group // sorted by Count descending
}

// Classify partitions the table's rows by their projection onto columns.
// Missing values compare equal to other missing values, consistent with
// whole-row duplicate detection.
func (t *Table) Classify(columns []string) (*Classification, error) {
	if len(columns) == 0 {
		return nil, ErrEmptySelection
	}
	idx := make([]int, len(columns))
	for i, name := range columns {
		j, ok := t.ColumnIndex(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, name)
		}
		idx[i] = j
	}

	counts := make(map[string]int, len(t.Rows))
	keys := make([]string, len(t.Rows))
	for r, row := range t.Rows {
		k := projectionKey(row, idx)
		keys[r] = k
		counts[k]++
	}

	c := &Classification{Columns: append([]string(nil), columns...)}
	groupOrder := make(map[string]int)
	for r, row := range t.Rows {
		k := keys[r]
		if counts[k] == 1 {
			c.Unique = append(c.Unique, r)
			continue
		}
		c.Duplicate = append(c.Duplicate, r)
		if _, seen := groupOrder[k]; !seen {
			groupOrder[k] = len(c.Groups)
			vals := make([]Value, len(idx))
			for i, j := range idx {
				vals[i] = row[j]
			}
			c.Groups = append(c.Groups, Group{Values: vals, Count: counts[k]})
		}
	}
	sort.SliceStable(c.Groups, func(i, j int) bool {
		return c.Groups[i].Count > c.Groups[j].Count
	})
	return c, nil
}

// WholeRowDuplicates counts rows whose full projection onto all columns
// already appeared earlier in the table. This is the overview metric: the
// first occurrence of each combination is not counted.
func (t *Table) WholeRowDuplicates() int {
	idx := make([]int, len(t.Columns))
	for i := range idx {
		idx[i] = i
	}
	seen := make(map[string]bool, len(t.Rows))
	dups := 0
	for _, row := range t.Rows {
		k := projectionKey(row, idx)
		if seen[k] {
			dups++
		}
		seen[k] = true
	}
	return dups
}

// projectionKey builds the equality key for a row's projection onto the
// given column positions. Cell keys are typed so the text "1" never
// collides with the number 1, and each is length-prefixed so text
// containing another cell's key can never shift a field boundary.
func projectionKey(row Row, idx []int) string {
	var b strings.Builder
	for _, j := range idx {
		k := row[j].key()
		b.WriteString(strconv.Itoa(len(k)))
		b.WriteByte(':')
		b.WriteString(k)
	}
	return b.String()
}
