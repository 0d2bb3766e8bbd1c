package svg

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/rksiitd1/amazing-dashboard/internal/chart"
)

// Line renders one polyline per series.
func Line(fig chart.Figure, opts Opts) (template.HTML, error) {
	opts = opts.withDefaults(fig.Height)
	f, err := newFrame(fig, opts, false)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	f.open(&b, fig, "line")
	f.grid(&b)
	for i, s := range fig.Series {
		if len(s.Points) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("<path d=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"1.5\" stroke-linejoin=\"round\" stroke-linecap=\"round\" aria-label=\"%s\"></path>", f.path(s.Points), seriesColor(s, i), template.HTMLEscapeString(s.Name)))
	}
	f.xAxis(&b, fig)
	f.axisTitles(&b, fig)
	f.legend(&b, fig)
	return finish(&b), nil
}

func (f *frame) path(points []chart.Point) string {
	var path strings.Builder
	for i, p := range points {
		if i == 0 {
			path.WriteString(fmt.Sprintf("M%.2f %.2f", f.x(p.X), f.y(p.Y)))
			continue
		}
		path.WriteString(fmt.Sprintf(" L%.2f %.2f", f.x(p.X), f.y(p.Y)))
	}
	return path.String()
}
