package svg

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/rksiitd1/amazing-dashboard/internal/chart"
)

// Area renders each series as a translucent region down to the zero line.
func Area(fig chart.Figure, opts Opts) (template.HTML, error) {
	opts = opts.withDefaults(fig.Height)
	f, err := newFrame(fig, opts, true)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	f.open(&b, fig, "area")
	f.grid(&b)
	base := f.baseline()
	for i, s := range fig.Series {
		if len(s.Points) == 0 {
			continue
		}
		color := seriesColor(s, i)
		line := f.path(s.Points)
		first := f.x(s.Points[0].X)
		last := f.x(s.Points[len(s.Points)-1].X)
		area := fmt.Sprintf("%s L%.2f %.2f L%.2f %.2f Z", line, last, base, first, base)
		b.WriteString(fmt.Sprintf("<path d=\"%s\" fill=\"%s\" fill-opacity=\"0.35\" stroke=\"none\" aria-hidden=\"true\"></path>", area, color))
		b.WriteString(fmt.Sprintf("<path d=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"1\" aria-label=\"%s\"></path>", line, color, template.HTMLEscapeString(s.Name)))
	}
	f.xAxis(&b, fig)
	f.axisTitles(&b, fig)
	f.legend(&b, fig)
	return finish(&b), nil
}
