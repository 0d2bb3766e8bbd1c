package svg

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/rksiitd1/amazing-dashboard/internal/chart"
)

// Scatter renders one circle per point.
func Scatter(fig chart.Figure, opts Opts) (template.HTML, error) {
	opts = opts.withDefaults(fig.Height)
	f, err := newFrame(fig, opts, false)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	f.open(&b, fig, "scatter")
	f.grid(&b)
	for i, s := range fig.Series {
		color := seriesColor(s, i)
		b.WriteString(fmt.Sprintf("<g fill=\"%s\" fill-opacity=\"0.8\" aria-label=\"%s\">", color, template.HTMLEscapeString(s.Name)))
		for _, p := range s.Points {
			if !p.Finite() {
				continue
			}
			b.WriteString(fmt.Sprintf("<circle cx=\"%.2f\" cy=\"%.2f\" r=\"4\"></circle>", f.x(p.X), f.y(p.Y)))
		}
		b.WriteString("</g>")
	}
	f.xAxis(&b, fig)
	f.axisTitles(&b, fig)
	f.legend(&b, fig)
	return finish(&b), nil
}
