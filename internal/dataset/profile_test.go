package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverview(t *testing.T) {
	tbl := tableFromStrings([]string{"a", "b"}, [][]string{
		{"1", "x"},
		{"1", "x"},
		{"2", ""},
	})

	ov := tbl.Overview()
	assert.Equal(t, 3, ov.Rows)
	assert.Equal(t, 2, ov.Cols)
	assert.Equal(t, 1, ov.MissingCells)
	assert.Equal(t, 1, ov.DuplicateRows)
	require.Len(t, ov.Columns, 2)

	b := ov.Columns[1]
	assert.Equal(t, "b", b.Name)
	assert.Equal(t, 2, b.NonNull)
	assert.Equal(t, 1, b.Missing)
	assert.Equal(t, 1, b.Unique)
	assert.InDelta(t, 33.33, b.MissingPct, 0.01)

	assert.Len(t, ov.Head, 3)
}

func TestMissingByColumn_SortedDescending(t *testing.T) {
	tbl := tableFromStrings([]string{"full", "some", "most"}, [][]string{
		{"1", "", ""},
		{"2", "x", ""},
		{"3", "y", "z"},
	})

	got := tbl.MissingByColumn()
	require.Len(t, got, 2)
	assert.Equal(t, "most", got[0].Name)
	assert.Equal(t, 2, got[0].Count)
	assert.Equal(t, "some", got[1].Name)
	assert.Equal(t, 1, got[1].Count)
}

func TestNumericStats(t *testing.T) {
	tbl := tableFromStrings([]string{"v"}, [][]string{
		{"1"}, {"2"}, {"3"}, {"4"}, {"oops"}, {""},
	})

	s, err := tbl.NumericStats("v")
	require.NoError(t, err)

	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 4.0, s.Max)
	assert.InDelta(t, 2.5, s.Mean, 1e-9)
	assert.InDelta(t, 2.5, s.Median, 1e-9)
	assert.InDelta(t, 1.75, s.Q25, 1e-9)
	assert.InDelta(t, 3.25, s.Q75, 1e-9)
	assert.InDelta(t, math.Sqrt(5.0/3.0), s.Std, 1e-9)
}

func TestNumericStats_Errors(t *testing.T) {
	tbl := tableFromStrings([]string{"v"}, [][]string{{"x"}})

	_, err := tbl.NumericStats("missing")
	assert.ErrorIs(t, err, ErrUnknownColumn)

	_, err = tbl.NumericStats("v")
	assert.Error(t, err)
}

func TestValueCounts(t *testing.T) {
	tbl := tableFromStrings([]string{"c"}, [][]string{
		{"red"}, {"blue"}, {"red"}, {""}, {"green"}, {"red"}, {"blue"},
	})

	got := tbl.ValueCounts("c")
	require.Len(t, got, 3)
	assert.Equal(t, ValueCount{Value: "red", Count: 3}, got[0])
	assert.Equal(t, ValueCount{Value: "blue", Count: 2}, got[1])
	assert.Equal(t, ValueCount{Value: "green", Count: 1}, got[2])
}

func TestQuantile(t *testing.T) {
	vals := []float64{1, 2, 3, 4, 5}
	assert.Equal(t, 1.0, quantile(vals, 0))
	assert.Equal(t, 3.0, quantile(vals, 0.5))
	assert.Equal(t, 5.0, quantile(vals, 1))
	assert.InDelta(t, 2.0, quantile(vals, 0.25), 1e-9)
}
