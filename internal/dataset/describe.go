package dataset

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SummaryKind tells which statistics a Summary carries.
type SummaryKind string

// Summary kinds.
const (
	SummaryNumeric     SummaryKind = "numeric"
	SummaryCategorical SummaryKind = "categorical"
)

// NumericStats are the descriptive statistics of one numeric column.
type NumericStats struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Q50    float64
	Q75    float64
	Max    float64
}

// CategoricalStats describe a column of labels.
type CategoricalStats struct {
	Column string
	Count  int
	Unique int
	Top    string
	Freq   int
}

// SummaryRow is one statistic across the summarised columns.
type SummaryRow struct {
	Stat  string
	Cells []string
}

// Summary is a display-ready statistics table.
type Summary struct {
	Kind    SummaryKind
	Columns []string
	Rows    []SummaryRow
}

// Describe summarises the numeric columns of the table. When the table has
// no numeric column, the label columns are summarised instead.
func (t *Table) Describe() Summary {
	numeric := t.NumericStats()
	if len(numeric) > 0 {
		return numericSummary(numeric)
	}
	return categoricalSummary(t.CategoricalStats())
}

// NumericStats computes statistics for every numeric column in order.
func (t *Table) NumericStats() []NumericStats {
	out := make([]NumericStats, 0, len(t.Columns))
	for i, column := range t.Columns {
		values, ok := t.numericAt(i)
		if !ok {
			continue
		}
		out = append(out, describeValues(column, values))
	}
	return out
}

// CategoricalStats computes count/unique/top/freq for every column.
func (t *Table) CategoricalStats() []CategoricalStats {
	out := make([]CategoricalStats, 0, len(t.Columns))
	for i, column := range t.Columns {
		counts := make(map[string]int)
		order := make([]string, 0)
		total := 0
		for _, row := range t.Rows {
			cell := strings.TrimSpace(row[i])
			if isMissing(cell) {
				continue
			}
			if counts[cell] == 0 {
				order = append(order, cell)
			}
			counts[cell]++
			total++
		}
		cs := CategoricalStats{Column: column, Count: total, Unique: len(counts)}
		for _, value := range order {
			if counts[value] > cs.Freq {
				cs.Top, cs.Freq = value, counts[value]
			}
		}
		out = append(out, cs)
	}
	return out
}

func describeValues(column string, values []float64) NumericStats {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	s := NumericStats{
		Column: column,
		Count:  len(sorted),
		Mean:   stat.Mean(sorted, nil),
		Std:    math.NaN(),
		Min:    floats.Min(sorted),
		Max:    floats.Max(sorted),
		Q25:    linearQuantile(sorted, 0.25),
		Q50:    linearQuantile(sorted, 0.50),
		Q75:    linearQuantile(sorted, 0.75),
	}
	if len(sorted) > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	return s
}

// linearQuantile interpolates between the closest ranks at h = (n-1)p, the
// convention summary tables in notebooks use. sorted must be ascending.
func linearQuantile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	h := float64(len(sorted)-1) * p
	lo := math.Floor(h)
	hi := math.Ceil(h)
	return sorted[int(lo)] + (h-lo)*(sorted[int(hi)]-sorted[int(lo)])
}

func numericSummary(stats []NumericStats) Summary {
	s := Summary{Kind: SummaryNumeric}
	labels := []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}
	cells := make([][]string, len(labels))
	for _, ns := range stats {
		s.Columns = append(s.Columns, ns.Column)
		values := []float64{float64(ns.Count), ns.Mean, ns.Std, ns.Min, ns.Q25, ns.Q50, ns.Q75, ns.Max}
		for i, v := range values {
			cells[i] = append(cells[i], FormatStat(v))
		}
	}
	for i, label := range labels {
		s.Rows = append(s.Rows, SummaryRow{Stat: label, Cells: cells[i]})
	}
	return s
}

func categoricalSummary(stats []CategoricalStats) Summary {
	s := Summary{Kind: SummaryCategorical}
	rows := []SummaryRow{{Stat: "count"}, {Stat: "unique"}, {Stat: "top"}, {Stat: "freq"}}
	for _, cs := range stats {
		s.Columns = append(s.Columns, cs.Column)
		rows[0].Cells = append(rows[0].Cells, strconv.Itoa(cs.Count))
		rows[1].Cells = append(rows[1].Cells, strconv.Itoa(cs.Unique))
		top := cs.Top
		if cs.Count == 0 {
			top = "NaN"
		}
		rows[2].Cells = append(rows[2].Cells, top)
		rows[3].Cells = append(rows[3].Cells, strconv.Itoa(cs.Freq))
	}
	s.Rows = rows
	return s
}

// FormatStat prints a statistic with six decimals, or NaN.
func FormatStat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}
