// Package raster renders chart figures to PNG using gonum/plot.
package raster

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/rksiitd1/amazing-dashboard/internal/chart"
)

// Renderer draws figures as PNG images.
type Renderer struct {
	Width  vg.Length
	Height vg.Length
	// MaxXTicks caps the labelled positions on categorical X axes.
	MaxXTicks int
}

// Render writes the figure as a PNG image.
func (r Renderer) Render(w io.Writer, fig chart.Figure) error {
	if err := fig.Validate(); err != nil {
		return err
	}
	p, err := r.build(fig)
	if err != nil {
		return err
	}
	width, height := r.Width, r.Height
	if width <= 0 {
		width = 12 * vg.Inch
	}
	if height <= 0 {
		height = vg.Length(heightOf(fig)) * vg.Inch / 96
	}
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("raster: encode png: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("raster: write png: %w", err)
	}
	return nil
}

func (r Renderer) build(fig chart.Figure) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fig.Title
	p.X.Label.Text = fig.XLabel
	p.Y.Label.Text = fig.YLabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	var err error
	switch fig.Kind {
	case chart.KindLine, chart.KindArea:
		err = addLines(p, fig)
	case chart.KindBar:
		err = addBars(p, fig)
	case chart.KindScatter:
		err = addScatter(p, fig)
	default:
		err = fmt.Errorf("raster: unsupported kind %q", fig.Kind)
	}
	if err != nil {
		return nil, err
	}
	if ticks := r.categoryTicks(fig); len(ticks) > 0 {
		p.X.Tick.Marker = plot.ConstantTicks(ticks)
	}
	return p, nil
}

func addLines(p *plot.Plot, fig chart.Figure) error {
	for i, s := range fig.Series {
		if len(s.Points) == 0 {
			continue
		}
		line, err := plotter.NewLine(xys(s.Points))
		if err != nil {
			return fmt.Errorf("raster: series %s: %w", s.Name, err)
		}
		c, err := seriesColor(s, i)
		if err != nil {
			return err
		}
		line.Color = c
		line.Width = vg.Points(1.2)
		if fig.Kind == chart.KindArea {
			line.FillColor = color.NRGBA{R: c.R, G: c.G, B: c.B, A: 90}
		}
		p.Add(line)
		p.Legend.Add(s.Name, line)
	}
	return nil
}

func addBars(p *plot.Plot, fig chart.Figure) error {
	minX, maxX, _, _, ok := fig.Bounds()
	if !ok {
		return nil
	}
	slots := int(math.Round(maxX-minX)) + 1
	var below *plotter.BarChart
	for i, s := range fig.Series {
		values := make(plotter.Values, slots)
		for _, pt := range s.Points {
			values[int(math.Round(pt.X-minX))] += pt.Y
		}
		bars, err := plotter.NewBarChart(values, vg.Points(math.Max(600/float64(slots), 1)))
		if err != nil {
			return fmt.Errorf("raster: series %s: %w", s.Name, err)
		}
		c, err := seriesColor(s, i)
		if err != nil {
			return err
		}
		bars.Color = c
		bars.LineStyle.Width = vg.Length(0)
		bars.XMin = minX
		if below != nil {
			bars.StackOn(below)
		}
		below = bars
		p.Add(bars)
		p.Legend.Add(s.Name, bars)
	}
	return nil
}

func addScatter(p *plot.Plot, fig chart.Figure) error {
	for i, s := range fig.Series {
		if len(s.Points) == 0 {
			continue
		}
		scatter, err := plotter.NewScatter(xys(s.Points))
		if err != nil {
			return fmt.Errorf("raster: series %s: %w", s.Name, err)
		}
		c, err := seriesColor(s, i)
		if err != nil {
			return err
		}
		scatter.GlyphStyle.Color = c
		scatter.GlyphStyle.Radius = vg.Points(3)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(scatter)
		if len(fig.Series) > 1 {
			p.Legend.Add(s.Name, scatter)
		}
	}
	return nil
}

// categoryTicks labels evenly spaced X positions when points carry labels.
func (r Renderer) categoryTicks(fig chart.Figure) []plot.Tick {
	byX := make(map[float64]string)
	for _, s := range fig.Series {
		for _, pt := range s.Points {
			if pt.Label == "" {
				return nil
			}
			byX[pt.X] = pt.Label
		}
	}
	xs := make([]float64, 0, len(byX))
	for x := range byX {
		xs = append(xs, x)
	}
	sort.Float64s(xs)
	maxTicks := r.MaxXTicks
	if maxTicks <= 0 {
		maxTicks = 12
	}
	step := 1
	if len(xs) > maxTicks {
		step = int(math.Ceil(float64(len(xs)) / float64(maxTicks)))
	}
	ticks := make([]plot.Tick, 0, maxTicks)
	for i := 0; i < len(xs); i += step {
		ticks = append(ticks, plot.Tick{Value: xs[i], Label: byX[xs[i]]})
	}
	return ticks
}

func xys(points []chart.Point) plotter.XYs {
	out := make(plotter.XYs, len(points))
	for i, pt := range points {
		out[i].X = pt.X
		out[i].Y = pt.Y
	}
	return out
}

func heightOf(fig chart.Figure) int {
	if fig.Height > 0 {
		return fig.Height
	}
	return chart.DefaultHeight
}

func seriesColor(s chart.Series, i int) (color.RGBA, error) {
	hex := s.Color
	if hex == "" {
		hex = chart.ColorAt(i)
	}
	return ParseHex(hex)
}

// ParseHex parses #rgb or #rrggbb into an opaque color.
func ParseHex(hex string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("raster: invalid color %q", hex)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("raster: invalid color %q: %w", hex, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
