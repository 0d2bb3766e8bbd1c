// Package echarts renders chart figures as standalone interactive HTML pages
// backed by Apache ECharts.
package echarts

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/rksiitd1/amazing-dashboard/internal/chart"
)

// missing is the ECharts placeholder for an absent value on a category axis.
const missing = "-"

// Renderer writes interactive chart pages.
type Renderer struct {
	// AssetsHost is the base URL the page loads echarts.min.js from.
	AssetsHost string
	Width      string
}

// Render writes a complete HTML document for the figure.
func (r Renderer) Render(w io.Writer, fig chart.Figure) error {
	if err := fig.Validate(); err != nil {
		return err
	}
	global := r.globalOptions(fig)
	switch fig.Kind {
	case chart.KindLine, chart.KindArea:
		return r.line(w, fig, global)
	case chart.KindBar:
		return r.bar(w, fig, global)
	case chart.KindScatter:
		return r.scatter(w, fig, global)
	}
	return fmt.Errorf("echarts: unsupported kind %q", fig.Kind)
}

func (r Renderer) globalOptions(fig chart.Figure) []charts.GlobalOpts {
	height := fig.Height
	if height <= 0 {
		height = chart.DefaultHeight
	}
	width := r.Width
	if width == "" {
		width = "1200px"
	}
	init := opts.Initialization{
		PageTitle: fig.Title,
		Width:     width,
		Height:    fmt.Sprintf("%dpx", height),
	}
	if r.AssetsHost != "" {
		init.AssetsHost = r.AssetsHost
	}
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(init),
		charts.WithTitleOpts(opts.Title{Title: fig.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(len(fig.Series) > 1), Top: "30"}),
		charts.WithYAxisOpts(opts.YAxis{Name: fig.YLabel, Scale: opts.Bool(fig.Kind != chart.KindBar)}),
	}
}

func (r Renderer) line(w io.Writer, fig chart.Figure, global []charts.GlobalOpts) error {
	labels, index := categories(fig)
	line := charts.NewLine()
	line.SetGlobalOptions(append(global,
		charts.WithXAxisOpts(opts.XAxis{Name: fig.XLabel}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
	)...)
	line.SetXAxis(labels)
	for i, s := range fig.Series {
		values := aligned(s, index, len(labels))
		data := make([]opts.LineData, len(values))
		for j, v := range values {
			data[j] = opts.LineData{Value: v}
		}
		color := seriesColor(s, i)
		seriesOpts := []charts.SeriesOpts{
			charts.WithLineChartOpts(opts.LineChart{ConnectNulls: opts.Bool(true), ShowSymbol: opts.Bool(false)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: color}),
		}
		if fig.Kind == chart.KindArea {
			seriesOpts = append(seriesOpts, charts.WithAreaStyleOpts(opts.AreaStyle{}))
		}
		line.AddSeries(s.Name, data, seriesOpts...)
	}
	return line.Render(w)
}

func (r Renderer) bar(w io.Writer, fig chart.Figure, global []charts.GlobalOpts) error {
	labels, index := categories(fig)
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(global,
		charts.WithXAxisOpts(opts.XAxis{Name: fig.XLabel}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
	)...)
	bar.SetXAxis(labels)
	for i, s := range fig.Series {
		values := aligned(s, index, len(labels))
		data := make([]opts.BarData, len(values))
		for j, v := range values {
			data[j] = opts.BarData{Value: v}
		}
		bar.AddSeries(s.Name, data,
			charts.WithBarChartOpts(opts.BarChart{Stack: "total"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: seriesColor(s, i)}),
		)
	}
	return bar.Render(w)
}

func (r Renderer) scatter(w io.Writer, fig chart.Figure, global []charts.GlobalOpts) error {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(append(global,
		charts.WithXAxisOpts(opts.XAxis{Name: fig.XLabel, Type: "value", Scale: opts.Bool(true)}),
	)...)
	for i, s := range fig.Series {
		data := make([]opts.ScatterData, len(s.Points))
		for j, p := range s.Points {
			data[j] = opts.ScatterData{Value: []float64{p.X, p.Y}}
		}
		scatter.AddSeries(s.Name, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: seriesColor(s, i)}))
	}
	return scatter.Render(w)
}

// categories returns the sorted distinct X labels of a figure and the slot
// of every X position.
func categories(fig chart.Figure) ([]string, map[float64]int) {
	byX := make(map[float64]string)
	for _, s := range fig.Series {
		for _, p := range s.Points {
			label := p.Label
			if label == "" {
				label = fmt.Sprintf("%g", p.X)
			}
			byX[p.X] = label
		}
	}
	xs := make([]float64, 0, len(byX))
	for x := range byX {
		xs = append(xs, x)
	}
	sort.Float64s(xs)
	labels := make([]string, len(xs))
	index := make(map[float64]int, len(xs))
	for i, x := range xs {
		labels[i] = byX[x]
		index[x] = i
	}
	return labels, index
}

func aligned(s chart.Series, index map[float64]int, size int) []any {
	values := make([]any, size)
	for i := range values {
		values[i] = missing
	}
	for _, p := range s.Points {
		values[index[p.X]] = p.Y
	}
	return values
}

func seriesColor(s chart.Series, i int) string {
	if s.Color != "" {
		return s.Color
	}
	return chart.ColorAt(i)
}
