package svg

import (
	"fmt"
	"html/template"
	"math"
	"strings"

	"github.com/rksiitd1/amazing-dashboard/internal/chart"
)

// Bars renders one bar per point, colored by series. Points of different
// series sharing an X position are stacked.
func Bars(fig chart.Figure, opts Opts) (template.HTML, error) {
	opts = opts.withDefaults(fig.Height)
	stacked := stack(fig)
	f, err := newFrame(stacked, opts, true)
	if err != nil {
		return "", err
	}
	slots := math.Max(float64(f.xSlots), 1)
	barWidth := math.Max(f.chartWidth/slots*0.8, 0.5)
	f.inset = barWidth / 2

	var b strings.Builder
	f.open(&b, fig, "bar")
	f.grid(&b)

	for i, s := range fig.Series {
		color := seriesColor(s, i)
		for j, p := range s.Points {
			top := stacked.Series[i].Points[j].Y
			bottom := top - p.Y
			y1, y2 := f.y(top), f.y(bottom)
			if y1 > y2 {
				y1, y2 = y2, y1
			}
			b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"%s\" aria-label=\"%s %s\"></rect>", f.x(p.X)-barWidth/2, y1, barWidth, y2-y1, color, template.HTMLEscapeString(s.Name), template.HTMLEscapeString(pointLabel(p))))
		}
	}
	f.xAxis(&b, fig)
	f.axisTitles(&b, fig)
	f.legend(&b, fig)
	return finish(&b), nil
}

// stack returns a copy of the figure whose Y values are cumulative tops per
// X position, in series order.
func stack(fig chart.Figure) chart.Figure {
	out := fig
	out.Series = make([]chart.Series, len(fig.Series))
	positive := make(map[float64]float64)
	negative := make(map[float64]float64)
	for i, s := range fig.Series {
		points := make([]chart.Point, len(s.Points))
		for j, p := range s.Points {
			acc := positive
			if p.Y < 0 {
				acc = negative
			}
			acc[p.X] += p.Y
			points[j] = chart.Point{X: p.X, Y: acc[p.X], Label: p.Label}
		}
		out.Series[i] = chart.Series{Name: s.Name, Color: s.Color, Points: points}
	}
	return out
}

func pointLabel(p chart.Point) string {
	if p.Label != "" {
		return p.Label
	}
	return formatTick(p.X)
}
