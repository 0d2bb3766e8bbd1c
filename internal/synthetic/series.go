// Package synthetic generates the pseudo-random demo data shown on the
// dashboard and the interactive demo page.
package synthetic

import (
	"encoding/csv"
	"io"
	"math/rand/v2"
	"strconv"
	"time"

	"gonum.org/v1/gonum/stat/distuv"
)

// Parameters of the daily demo series.
const (
	Mean   = 100.0
	StdDev = 15.0
	// DateLayout formats the Date column.
	DateLayout = "2006-01-02"
)

var (
	// Start is the first day of the series.
	Start = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	// End is the last day of the series, inclusive.
	End = time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
	// Categories are drawn uniformly for every row.
	Categories = []string{"A", "B", "C"}
)

// Row is one day of the demo series.
type Row struct {
	Date     time.Time
	Value    float64
	Category string
}

// Day returns the zero-based offset of the row from Start.
func (r Row) Day() int {
	return int(r.Date.Sub(Start).Hours() / 24)
}

// Generate returns one row per calendar day from Start to End. The same seed
// always yields the same series.
func Generate(seed uint64) []Row {
	src := newSource(seed)
	values := distuv.Normal{Mu: Mean, Sigma: StdDev, Src: src}
	weights := make([]float64, len(Categories))
	for i := range weights {
		weights[i] = 1
	}
	picker := distuv.NewCategorical(weights, src)

	days := int(End.Sub(Start).Hours()/24) + 1
	rows := make([]Row, 0, days)
	for day := Start; !day.After(End); day = day.AddDate(0, 0, 1) {
		rows = append(rows, Row{
			Date:     day,
			Value:    values.Rand(),
			Category: Categories[int(picker.Rand())],
		})
	}
	return rows
}

// Points draws n standard-normal 2-D points.
func Points(seed uint64, n int) [][2]float64 {
	if n < 0 {
		n = 0
	}
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: newSource(seed)}
	points := make([][2]float64, n)
	for i := range points {
		points[i] = [2]float64{normal.Rand(), normal.Rand()}
	}
	return points
}

// WriteCSV serialises rows as Date,Value,Category.
func WriteCSV(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"Date", "Value", "Category"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write([]string{
			row.Date.Format(DateLayout),
			strconv.FormatFloat(row.Value, 'f', 6, 64),
			row.Category,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func newSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}
