package svg

import (
	"fmt"
	"html/template"
	"math"
	"sort"
	"strings"

	"github.com/rksiitd1/amazing-dashboard/internal/chart"
)

// frame holds the plotting area and the data-to-pixel scales of one figure.
type frame struct {
	opts        Opts
	chartWidth  float64
	chartHeight float64
	minX, maxX  float64
	minY, maxY  float64
	xSlots      int
	// inset keeps bars centred on the outermost X positions inside the plot.
	inset float64
}

func newFrame(fig chart.Figure, opts Opts, includeZero bool) (*frame, error) {
	minX, maxX, minY, maxY, ok := fig.Bounds()
	if !ok {
		// An empty scatter still draws its axes.
		minX, maxX, minY, maxY = 0, 1, 0, 1
	}
	if includeZero {
		if minY > 0 {
			minY = 0
		}
		if maxY < 0 {
			maxY = 0
		}
	} else if ok {
		pad := (maxY - minY) * 0.05
		minY -= pad
		maxY += pad
	}
	if almostEqual(maxY, minY) {
		maxY = minY + 1
	}
	f := &frame{
		opts:        opts,
		chartWidth:  float64(opts.Width) - 2*opts.Padding,
		chartHeight: float64(opts.Height) - 2*opts.Padding,
		minX:        minX,
		maxX:        maxX,
		minY:        minY,
		maxY:        maxY,
		xSlots:      distinctX(fig),
	}
	if f.chartWidth <= 0 || f.chartHeight <= 0 {
		return nil, fmt.Errorf("svg: viewport too small")
	}
	return f, nil
}

func (f *frame) x(v float64) float64 {
	if almostEqual(f.maxX, f.minX) {
		return f.opts.Padding + f.chartWidth/2
	}
	return f.opts.Padding + f.inset + (v-f.minX)/(f.maxX-f.minX)*(f.chartWidth-2*f.inset)
}

func (f *frame) y(v float64) float64 {
	return f.opts.Padding + f.chartHeight - (v-f.minY)/(f.maxY-f.minY)*f.chartHeight
}

func (f *frame) bottom() float64 {
	return f.opts.Padding + f.chartHeight
}

// baseline is the pixel row of y=0 clamped into the plot area.
func (f *frame) baseline() float64 {
	return math.Min(math.Max(f.y(0), f.opts.Padding), f.bottom())
}

func (f *frame) open(b *strings.Builder, fig chart.Figure, kind string) {
	titleID := makeID(fig.Title, kind+"-title")
	descID := makeID(fig.Title, kind+"-desc")
	b.WriteString(fmt.Sprintf("<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" role=\"img\" aria-labelledby=\"%s %s\" data-kind=\"%s\" data-series=\"%d\">", f.opts.Width, f.opts.Height, titleID, descID, kind, len(fig.Series)))
	b.WriteString(fmt.Sprintf("<title id=\"%s\">%s</title>", titleID, template.HTMLEscapeString(fallback(fig.Title, "Chart"))))
	b.WriteString(fmt.Sprintf("<desc id=\"%s\">%s</desc>", descID, template.HTMLEscapeString(fallback(f.opts.Description, describe(fig)))))
}

func (f *frame) grid(b *strings.Builder) {
	p := f.opts.Padding
	for i := 0; i <= f.opts.TickCount; i++ {
		ratio := float64(i) / float64(f.opts.TickCount)
		value := f.minY + (f.maxY-f.minY)*ratio
		y := p + f.chartHeight - ratio*f.chartHeight
		b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"0.5\" stroke-dasharray=\"2,4\" aria-hidden=\"true\"></line>", p, y, p+f.chartWidth, y, f.opts.GridColor))
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"end\">%s</text>", p-6, y+4, f.opts.AxisColor, template.HTMLEscapeString(formatTick(value))))
	}

	b.WriteString(fmt.Sprintf("<g stroke=\"%s\" aria-label=\"Axes\">", f.opts.AxisColor))
	b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke-width=\"1\"></line>", p, p, p, f.bottom()))
	b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke-width=\"1\"></line>", p, f.bottom(), p+f.chartWidth, f.bottom()))
	b.WriteString("</g>")
}

// xAxis labels up to XTicks positions. Categorical labels come from the
// points themselves, numeric axes get evenly spaced ticks.
func (f *frame) xAxis(b *strings.Builder, fig chart.Figure) {
	labels := xLabels(fig)
	y := f.bottom() + 16
	if len(labels) > 0 {
		step := 1
		if len(labels) > f.opts.XTicks {
			step = int(math.Ceil(float64(len(labels)) / float64(f.opts.XTicks)))
		}
		for i := 0; i < len(labels); i += step {
			b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"middle\">%s</text>", f.x(labels[i].X), y, f.opts.AxisColor, template.HTMLEscapeString(labels[i].Label)))
		}
	} else {
		for i := 0; i <= f.opts.TickCount; i++ {
			value := f.minX + (f.maxX-f.minX)*float64(i)/float64(f.opts.TickCount)
			b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"middle\">%s</text>", f.x(value), y, f.opts.AxisColor, template.HTMLEscapeString(formatTick(value))))
		}
	}
}

func (f *frame) axisTitles(b *strings.Builder, fig chart.Figure) {
	p := f.opts.Padding
	if fig.XLabel != "" {
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"11\" text-anchor=\"middle\">%s</text>", p+f.chartWidth/2, float64(f.opts.Height)-8, f.opts.AxisColor, template.HTMLEscapeString(fig.XLabel)))
	}
	if fig.YLabel != "" {
		b.WriteString(fmt.Sprintf("<text x=\"12\" y=\"%.2f\" fill=\"%s\" font-size=\"11\" text-anchor=\"middle\" transform=\"rotate(-90 12 %.2f)\">%s</text>", p+f.chartHeight/2, f.opts.AxisColor, p+f.chartHeight/2, template.HTMLEscapeString(fig.YLabel)))
	}
}

func (f *frame) legend(b *strings.Builder, fig chart.Figure) {
	if len(fig.Series) < 2 {
		return
	}
	legendY := math.Max(f.opts.Padding-16, 12)
	legendX := f.opts.Padding
	for i, s := range fig.Series {
		color := seriesColor(s, i)
		b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"10\" height=\"10\" fill=\"%s\"></rect>", legendX, legendY-8, color))
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"start\">%s</text>", legendX+14, legendY, f.opts.AxisColor, template.HTMLEscapeString(s.Name)))
		legendX += 90
	}
}

func distinctX(fig chart.Figure) int {
	seen := make(map[float64]struct{})
	for _, s := range fig.Series {
		for _, p := range s.Points {
			seen[p.X] = struct{}{}
		}
	}
	return len(seen)
}

func xLabels(fig chart.Figure) []chart.Point {
	byX := make(map[float64]chart.Point)
	for _, s := range fig.Series {
		for _, p := range s.Points {
			if p.Label == "" {
				return nil
			}
			byX[p.X] = p
		}
	}
	labels := make([]chart.Point, 0, len(byX))
	for _, p := range byX {
		labels = append(labels, p)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i].X < labels[j].X })
	return labels
}

func seriesColor(s chart.Series, i int) string {
	return fallback(s.Color, chart.ColorAt(i))
}

func describe(fig chart.Figure) string {
	names := make([]string, 0, len(fig.Series))
	for _, s := range fig.Series {
		names = append(names, s.Name)
	}
	return fmt.Sprintf("%s chart of %s", fig.Kind.Label(), strings.Join(names, ", "))
}

func fallback(value, defaultValue string) string {
	if strings.TrimSpace(value) == "" {
		return defaultValue
	}
	return value
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func makeID(base, suffix string) string {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		if r == '-' || r == '_' {
			return r
		}
		return '-'
	}, strings.ToLower(strings.TrimSpace(base)))
	cleaned = strings.Trim(cleaned, "-")
	if cleaned == "" {
		cleaned = "chart"
	}
	return fmt.Sprintf("%s-%s", cleaned, suffix)
}

func formatTick(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", v/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fk", v/1_000)
	default:
		if almostEqual(v, math.Round(v)) {
			return fmt.Sprintf("%.0f", v)
		}
		return fmt.Sprintf("%.2f", v)
	}
}
