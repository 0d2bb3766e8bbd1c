package showcase

import (
	"fmt"
	"sort"

	"github.com/rksiitd1/amazing-dashboard/internal/chart"
	"github.com/rksiitd1/amazing-dashboard/internal/synthetic"
)

// ChartTypes are the options of the dashboard chart picker.
var ChartTypes = []chart.Kind{chart.KindLine, chart.KindBar, chart.KindArea}

// DashboardView is the output of the dashboard routine.
type DashboardView struct {
	Pass      Pass
	ChartType chart.Kind
	Metrics   []Metric
	Rows      []synthetic.Row
	Figure    chart.Figure
}

// ParseChartType maps a picker value onto a dashboard chart kind. An empty
// value selects the first option.
func ParseChartType(value string) (chart.Kind, error) {
	if value == "" {
		return ChartTypes[0], nil
	}
	kind, err := chart.ParseKind(value)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownChart, value)
	}
	for _, allowed := range ChartTypes {
		if kind == allowed {
			return kind, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownChart, value)
}

// Dashboard generates the pass's synthetic series and charts it with the
// selected chart type.
func (s *Service) Dashboard(pass Pass, chartType string) (DashboardView, error) {
	kind, err := ParseChartType(chartType)
	if err != nil {
		return DashboardView{}, err
	}
	rows := synthetic.Generate(pass.Seed())
	return DashboardView{
		Pass:      pass,
		ChartType: kind,
		Metrics:   DashboardMetrics(s.locale),
		Rows:      rows,
		Figure:    SeriesFigure(kind, rows),
	}, nil
}

// SeriesFigure plots Value over Date with one series per category present in
// rows, ordered by category name.
func SeriesFigure(kind chart.Kind, rows []synthetic.Row) chart.Figure {
	byCategory := make(map[string][]chart.Point)
	for _, row := range rows {
		byCategory[row.Category] = append(byCategory[row.Category], chart.Point{
			X:     float64(row.Day()),
			Y:     row.Value,
			Label: row.Date.Format(synthetic.DateLayout),
		})
	}
	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Strings(names)

	fig := chart.Figure{
		Kind:   kind,
		Title:  "Interactive Chart",
		XLabel: "Date",
		YLabel: "Value",
		Height: chart.DefaultHeight,
	}
	for i, name := range names {
		fig.Series = append(fig.Series, chart.Series{Name: name, Color: chart.ColorAt(i), Points: byCategory[name]})
	}
	return fig
}
