// Package charts builds the visualization tab's charts as self-contained
// HTML documents rendered server-side with go-echarts. The page embeds
// each rendered chart in an iframe.
package charts

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Abdeldjalil-bch/anomal/internal/dataset"
)

// Chart type names accepted by the chart endpoint.
const (
	TypeHistogram = "histogram"
	TypeBox       = "box"
	TypeViolin    = "violin"
	TypeBar       = "bar"
	TypePie       = "pie"
)

const (
	minBins     = 5
	maxBins     = 100
	defaultBins = 20

	// Pie charts are truncated to the most frequent categories.
	maxPieSlices = 10
)

var (
	ErrUnknownChartType = errors.New("unknown chart type")
	ErrWrongBranch      = errors.New("chart type does not match column type")
)

// Request describes one chart to render over a single column.
type Request struct {
	Column  string
	Type    string
	Palette string
	// Color overrides the palette with a single custom color when set.
	Color string
	Title string
	Bins  int
}

// NumericBranch reports whether a column takes the numeric chart types
// (histogram/box/violin) rather than the categorical ones (bar/pie). A
// numeric column with few distinct values is still charted categorically.
func NumericBranch(t *dataset.Table, column string) bool {
	return t.ColumnKindOf(column) == dataset.ColumnNumeric && t.DistinctCount(column) > 10
}

// Render writes the requested chart for one column of the table as a
// standalone HTML document.
func Render(w io.Writer, t *dataset.Table, req Request) error {
	if _, ok := t.ColumnIndex(req.Column); !ok {
		return fmt.Errorf("%w: %s", dataset.ErrUnknownColumn, req.Column)
	}

	numeric := NumericBranch(t, req.Column)
	switch req.Type {
	case TypeHistogram, TypeBox, TypeViolin:
		if !numeric {
			return fmt.Errorf("%w: %s needs a numeric column", ErrWrongBranch, req.Type)
		}
	case TypeBar, TypePie:
		if numeric {
			return fmt.Errorf("%w: %s needs a categorical column", ErrWrongBranch, req.Type)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownChartType, req.Type)
	}

	colors := Palette(req.Palette)
	if req.Color != "" {
		colors = []string{req.Color}
	}
	title := req.Title
	if title == "" {
		title = defaultTitle(req.Type, req.Column)
	}

	switch req.Type {
	case TypeHistogram:
		return renderHistogram(w, t.NumericValues(req.Column), req.Bins, title, colors)
	case TypeBox:
		return renderBox(w, t, req.Column, title, colors, false)
	case TypeViolin:
		return renderBox(w, t, req.Column, title, colors, true)
	case TypeBar:
		return renderBar(w, t.ValueCounts(req.Column), req.Column, title, colors)
	default:
		return renderPie(w, t.ValueCounts(req.Column), title, colors)
	}
}

func defaultTitle(chartType, column string) string {
	switch chartType {
	case TypeHistogram:
		return "Histogramme de " + column
	case TypeBox:
		return "Box Plot de " + column
	case TypeViolin:
		return "Violin Plot de " + column
	case TypeBar:
		return "Bar Chart de " + column
	default:
		return "Pie Chart de " + column
	}
}

func renderHistogram(w io.Writer, vals []float64, bins int, title string, colors []string) error {
	if bins < minBins || bins > maxBins {
		bins = defaultBins
	}
	labels, counts := histogramBins(vals, bins)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithColorsOpts(opts.Colors(colors)),
	)
	data := make([]opts.BarData, len(counts))
	for i, c := range counts {
		data[i] = opts.BarData{Value: c}
	}
	bar.SetXAxis(labels).AddSeries("effectif", data)
	return bar.Render(w)
}

// histogramBins splits vals into equal-width bins and returns interval
// labels with per-bin counts. Non-finite values are dropped so the bin
// index stays in range; a constant sample collapses to one bin.
func histogramBins(vals []float64, bins int) ([]string, []int) {
	finite := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	vals = finite
	if len(vals) == 0 {
		return nil, nil
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		return []string{formatFloat(lo)}, []int{len(vals)}
	}
	width := (hi - lo) / float64(bins)
	counts := make([]int, bins)
	for _, v := range vals {
		i := int((v - lo) / width)
		if i >= bins { // hi lands in the last bin
			i = bins - 1
		}
		counts[i]++
	}
	labels := make([]string, bins)
	for i := range labels {
		labels[i] = fmt.Sprintf("[%s, %s)", formatFloat(lo+float64(i)*width), formatFloat(lo+float64(i+1)*width))
	}
	return labels, counts
}

func renderBox(w io.Writer, t *dataset.Table, column, title string, colors []string, withPoints bool) error {
	s, err := t.NumericStats(column)
	if err != nil {
		return err
	}

	box := charts.NewBoxPlot()
	box.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithColorsOpts(opts.Colors(colors)),
	)
	box.SetXAxis([]string{column}).AddSeries("distribution", []opts.BoxPlotData{
		{Value: []float64{s.Min, s.Q25, s.Median, s.Q75, s.Max}},
	})

	// Violin rendering approximated as box + all points, the closest
	// shape echarts offers.
	if withPoints {
		scatter := charts.NewScatter()
		points := make([]opts.ScatterData, 0, len(t.Rows))
		for _, v := range t.NumericValues(column) {
			points = append(points, opts.ScatterData{Value: []interface{}{0, v}, SymbolSize: 5})
		}
		scatter.SetXAxis([]string{column}).AddSeries("valeurs", points)
		box.Overlap(scatter)
	}
	return box.Render(w)
}

func renderBar(w io.Writer, counts []dataset.ValueCount, column, title string, colors []string) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithColorsOpts(opts.Colors(colors)),
	)
	labels := make([]string, len(counts))
	data := make([]opts.BarData, len(counts))
	for i, vc := range counts {
		labels[i] = vc.Value
		data[i] = opts.BarData{Value: vc.Count}
	}
	bar.SetXAxis(labels).AddSeries(column, data)
	return bar.Render(w)
}

func renderPie(w io.Writer, counts []dataset.ValueCount, title string, colors []string) error {
	truncated := len(counts) > maxPieSlices
	if truncated {
		counts = counts[:maxPieSlices]
	}
	sub := ""
	if truncated {
		sub = fmt.Sprintf("Affichage limité aux %d valeurs les plus fréquentes", maxPieSlices)
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: sub}),
		charts.WithColorsOpts(opts.Colors(colors)),
	)
	data := make([]opts.PieData, len(counts))
	for i, vc := range counts {
		data[i] = opts.PieData{Name: vc.Value, Value: vc.Count}
	}
	pie.AddSeries("répartition", data)
	return pie.Render(w)
}

// RenderGroupSizes charts the distribution of duplicate-group sizes after
// a combination analysis: how many groups have 2 occurrences, 3, and so
// on.
func RenderGroupSizes(w io.Writer, groups []dataset.Group, paletteName string) error {
	freq := make(map[int]int)
	for _, g := range groups {
		freq[g.Count]++
	}
	sizes := make([]int, 0, len(freq))
	for s := range freq {
		sizes = append(sizes, s)
	}
	sort.Ints(sizes)

	labels := make([]string, len(sizes))
	data := make([]opts.BarData, len(sizes))
	for i, s := range sizes {
		labels[i] = strconv.Itoa(s)
		data[i] = opts.BarData{Value: freq[s]}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Distribution du nombre de doublons par combinaison"}),
		charts.WithColorsOpts(opts.Colors(Palette(paletteName))),
	)
	bar.SetXAxis(labels).AddSeries("combinaisons", data)
	return bar.Render(w)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', 4, 64)
}
