package showcasehttp

import (
	"encoding/base64"
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"github.com/rksiitd1/amazing-dashboard/internal/dataset"
	"github.com/rksiitd1/amazing-dashboard/internal/showcase"
	"github.com/rksiitd1/amazing-dashboard/internal/view"
)

// balloonCount is the number of balloons released on a greeting.
const balloonCount = 7

type option struct {
	Value    string
	Selected bool
}

type dashboardPage struct {
	View           showcase.DashboardView
	Metrics        []showcase.Metric
	ChartTypes     []option
	ChartSVG       template.HTML
	PNGURL         string
	InteractiveURL string
	CSVURL         string
}

type analysisPage struct {
	View     showcase.AnalysisView
	Accept   string
	Payload  string
	Filename string
	XOptions []option
	YOptions []option
	ChartSVG template.HTML
}

type demoPage struct {
	View           showcase.DemoView
	Min            int
	Max            int
	Balloons       []int
	ChartSVG       template.HTML
	InteractiveURL string
}

func navItems(current showcase.Page) []view.NavItem {
	items := make([]view.NavItem, len(showcase.Pages))
	for i, p := range showcase.Pages {
		items[i] = view.NavItem{Label: string(p), Selected: p == current}
	}
	return items
}

func options(values []string, selected string) []option {
	out := make([]option, len(values))
	for i, v := range values {
		out[i] = option{Value: v, Selected: v == selected}
	}
	return out
}

func newDashboardPage(v showcase.DashboardView, svg template.HTML) dashboardPage {
	types := make([]string, len(showcase.ChartTypes))
	for i, kind := range showcase.ChartTypes {
		types[i] = kind.Label()
	}
	pass := v.Pass.ID.String()
	chartType := v.ChartType.Label()
	return dashboardPage{
		View:           v,
		Metrics:        v.Metrics,
		ChartTypes:     options(types, chartType),
		ChartSVG:       svg,
		PNGURL:         link("/dashboard/chart.png", "pass", pass, "chart", chartType),
		InteractiveURL: link("/dashboard/chart.html", "pass", pass, "chart", chartType),
		CSVURL:         link("/dashboard/data.csv", "pass", pass),
	}
}

func newAnalysisPage(v showcase.AnalysisView) analysisPage {
	page := analysisPage{View: v, Accept: strings.Join(dataset.Formats, ",")}
	if v.Upload != nil {
		page.Payload = base64.StdEncoding.EncodeToString(v.Upload.Data)
		page.Filename = v.Upload.Filename
	}
	if len(v.Columns) > 1 {
		page.XOptions = options(v.Columns, v.X)
		page.YOptions = options(v.Columns, v.Y)
	}
	return page
}

func newDemoPage(v showcase.DemoView) demoPage {
	page := demoPage{View: v, Min: showcase.NumberMin, Max: showcase.NumberMax}
	if v.Celebrate() {
		page.Balloons = make([]int, balloonCount)
		for i := range page.Balloons {
			page.Balloons[i] = i
		}
	}
	if v.Figure != nil {
		page.InteractiveURL = link("/demo/chart.html",
			"pass", v.Pass.ID.String(),
			"number", strconv.Itoa(v.Input.Number),
			"color", v.Input.Color,
		)
	}
	return page
}

// link builds a path with query pairs in the given order.
func link(path string, pairs ...string) string {
	values := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		values = append(values, url.QueryEscape(pairs[i])+"="+url.QueryEscape(pairs[i+1]))
	}
	if len(values) == 0 {
		return path
	}
	return path + "?" + strings.Join(values, "&")
}
