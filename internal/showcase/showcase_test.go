package showcase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/rksiitd1/amazing-dashboard/internal/chart"
	"github.com/rksiitd1/amazing-dashboard/internal/dataset"
)

var fixedNow = time.Date(2025, 2, 15, 10, 30, 0, 0, time.UTC)

func fixedPass(t *testing.T) Pass {
	t.Helper()
	pass, err := ReplayPass("6f1c1d4e-8a41-4a7c-9d55-3c2f6f0c9b10", fixedNow)
	require.NoError(t, err)
	return pass
}

func newService() *Service {
	return NewService(language.English)
}

func TestParsePage(t *testing.T) {
	cases := map[string]Page{
		"":                 PageDashboard,
		"Dashboard":        PageDashboard,
		"data analysis":    PageAnalysis,
		"analysis":         PageAnalysis,
		"Interactive Demo": PageDemo,
		"demo":             PageDemo,
	}
	for input, want := range cases {
		got, err := ParsePage(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
	_, err := ParsePage("Settings")
	assert.ErrorIs(t, err, ErrUnknownPage)
}

func TestPassReplayIsStable(t *testing.T) {
	a := fixedPass(t)
	b := fixedPass(t)
	assert.Equal(t, a.Seed(), b.Seed())

	fresh := NewPass(fixedNow)
	assert.NotEqual(t, uuid.Nil, fresh.ID)

	_, err := ReplayPass("nope", fixedNow)
	assert.ErrorIs(t, err, ErrInvalidPass)
}

func TestDashboardMetrics(t *testing.T) {
	metrics := DashboardMetrics(language.English)
	require.Len(t, metrics, 3)
	assert.Equal(t, Metric{Label: "Revenue", Value: "$12,345", Delta: "$1,234"}, metrics[0])
	assert.Equal(t, Metric{Label: "Users", Value: "1,234", Delta: "123"}, metrics[1])
	assert.Equal(t, Metric{Label: "Conversion", Value: "12.3%", Delta: "1.2%"}, metrics[2])
}

func TestDashboardOneFigurePerChartType(t *testing.T) {
	svc := newService()
	pass := fixedPass(t)
	for _, label := range []string{"Line", "Bar", "Area"} {
		view, err := svc.Dashboard(pass, label)
		require.NoError(t, err, label)
		kind, _ := chart.ParseKind(label)
		assert.Equal(t, kind, view.Figure.Kind)
		assert.Len(t, view.Figure.Series, 3, label)
		assert.Equal(t, 366, view.Figure.PointCount())
		assert.Len(t, view.Rows, 366)
		assert.Equal(t, []string{"A", "B", "C"}, seriesNames(view.Figure))
	}
}

func TestDashboardDefaultsToLine(t *testing.T) {
	view, err := newService().Dashboard(fixedPass(t), "")
	require.NoError(t, err)
	assert.Equal(t, chart.KindLine, view.ChartType)
}

func TestDashboardRejectsUnknownChart(t *testing.T) {
	_, err := newService().Dashboard(fixedPass(t), "Scatter")
	assert.ErrorIs(t, err, ErrUnknownChart)
	_, err = newService().Dashboard(fixedPass(t), "Pie")
	assert.ErrorIs(t, err, ErrUnknownChart)
}

func TestDashboardReplaysPassData(t *testing.T) {
	svc := newService()
	a, err := svc.Dashboard(fixedPass(t), "Line")
	require.NoError(t, err)
	b, err := svc.Dashboard(fixedPass(t), "Bar")
	require.NoError(t, err)
	assert.Equal(t, a.Rows, b.Rows)
}

func TestAnalyzeWithoutUpload(t *testing.T) {
	view, err := newService().Analyze(context.Background(), AnalysisRequest{})
	require.NoError(t, err)
	assert.False(t, view.HasData())
	assert.Nil(t, view.Summary)
	assert.Nil(t, view.Figure)
}

func TestAnalyzeTwoColumnCSV(t *testing.T) {
	csv := "x,y\n1,2\n2,4\n3,6\n4,8\n5,10\n6,12\n7,14\n"
	view, err := newService().Analyze(context.Background(), AnalysisRequest{
		Upload: &Upload{Filename: "data.csv", Data: []byte(csv)},
		X:      "x",
		Y:      "y",
	})
	require.NoError(t, err)
	require.True(t, view.HasData())
	assert.Equal(t, PreviewRows, view.Preview.Len())
	require.NotNil(t, view.Summary)
	assert.Equal(t, []string{"x", "y"}, view.Summary.Columns)
	require.NotNil(t, view.Figure)
	assert.Equal(t, chart.KindScatter, view.Figure.Kind)
	assert.Equal(t, "x", view.Figure.XLabel)
	assert.Equal(t, "y", view.Figure.YLabel)
	assert.Equal(t, 7, view.Figure.PointCount())
}

func TestAnalyzeDefaultsAxesToFirstColumn(t *testing.T) {
	view, err := newService().Analyze(context.Background(), AnalysisRequest{
		Upload: &Upload{Filename: "data.csv", Data: []byte("a,b\n1,2\n")},
	})
	require.NoError(t, err)
	assert.Equal(t, "a", view.X)
	assert.Equal(t, "a", view.Y)
}

func TestAnalyzeSingleColumnHasNoChart(t *testing.T) {
	view, err := newService().Analyze(context.Background(), AnalysisRequest{
		Upload: &Upload{Filename: "data.csv", Data: []byte("a\n1\n2\n")},
	})
	require.NoError(t, err)
	assert.True(t, view.HasData())
	assert.NotNil(t, view.Summary)
	assert.Nil(t, view.Figure)
	assert.Empty(t, view.Columns)
}

func TestAnalyzeNonNumericColumnKeepsPreview(t *testing.T) {
	view, err := newService().Analyze(context.Background(), AnalysisRequest{
		Upload: &Upload{Filename: "data.csv", Data: []byte("name,score\nann,1\nbob,2\n")},
		X:      "name",
		Y:      "score",
	})
	assert.ErrorIs(t, err, dataset.ErrNotNumeric)
	assert.True(t, view.HasData())
	assert.NotNil(t, view.Summary)
	assert.Nil(t, view.Figure)
}

func TestAnalyzeMalformedUpload(t *testing.T) {
	view, err := newService().Analyze(context.Background(), AnalysisRequest{
		Upload: &Upload{Filename: "data.csv", Data: []byte("a,b\n1,2,3\n")},
	})
	assert.ErrorIs(t, err, dataset.ErrMalformed)
	assert.False(t, view.HasData())
}

func TestDemoWithoutGenerate(t *testing.T) {
	view := newService().Demo(fixedPass(t), DemoInput{Name: "Ada", Number: 10})
	assert.Empty(t, view.Warning)
	assert.Empty(t, view.Greeting)
	assert.Nil(t, view.Figure)
}

func TestDemoEmptyNameWarns(t *testing.T) {
	view := newService().Demo(fixedPass(t), DemoInput{Name: "", Number: 10, Generate: true})
	assert.Equal(t, MissingNameWarning, view.Warning)
	assert.Nil(t, view.Figure)
	assert.False(t, view.Celebrate())
}

func TestDemoKeepsNameVerbatim(t *testing.T) {
	view := newService().Demo(fixedPass(t), DemoInput{Name: "   ", Number: 5, Generate: true})
	assert.Empty(t, view.Warning)
	require.NotNil(t, view.Figure)
	assert.Equal(t, 5, view.Figure.PointCount())
	assert.Equal(t, "Hello,    !", view.Greeting)

	view = newService().Demo(fixedPass(t), DemoInput{Name: " Ada ", Generate: true})
	assert.Equal(t, "Hello,  Ada !", view.Greeting)
}

func TestDemoScatterHasNumberPoints(t *testing.T) {
	for _, n := range []int{0, 1, 37, 100} {
		view := newService().Demo(fixedPass(t), DemoInput{Name: "Ada", Color: "#FF4B4B", Number: n, Generate: true})
		require.NotNil(t, view.Figure, n)
		assert.Equal(t, n, view.Figure.PointCount())
		assert.Equal(t, "#ff4b4b", view.Figure.Series[0].Color)
		assert.Equal(t, "Hello, Ada!", view.Greeting)
		assert.True(t, view.Celebrate())
	}
}

func TestDemoClampsNumber(t *testing.T) {
	view := newService().Demo(fixedPass(t), DemoInput{Name: "Ada", Number: 250, Generate: true})
	assert.Equal(t, NumberMax, view.Input.Number)
	assert.Equal(t, NumberMax, view.Figure.PointCount())
	assert.Contains(t, view.Message, "you picked the number 100")

	view = newService().Demo(fixedPass(t), DemoInput{Name: "Ada", Number: -5, Generate: true})
	assert.Equal(t, NumberMin, view.Input.Number)
	assert.Equal(t, 0, view.Figure.PointCount())
}

func TestClampNumber(t *testing.T) {
	for n := -300; n <= 300; n += 7 {
		got := ClampNumber(n)
		assert.GreaterOrEqual(t, got, NumberMin)
		assert.LessOrEqual(t, got, NumberMax)
	}
	assert.Equal(t, 42, ClampNumber(42))
}

func TestNormalizeColor(t *testing.T) {
	svc := newService()
	assert.Equal(t, "#00ff00", svc.NormalizeColor("#00FF00"))
	assert.Equal(t, "#abc", svc.NormalizeColor("#abc"))
	assert.Equal(t, DefaultColor, svc.NormalizeColor("green"))
	assert.Equal(t, DefaultColor, svc.NormalizeColor(""))
}

func seriesNames(fig chart.Figure) []string {
	names := make([]string, len(fig.Series))
	for i, s := range fig.Series {
		names[i] = s.Name
	}
	return names
}

func TestDemoChartMatchesPage(t *testing.T) {
	svc := newService()
	pass := fixedPass(t)
	view := svc.Demo(pass, DemoInput{Name: "Ada", Color: "#123456", Number: 12, Generate: true})
	require.NotNil(t, view.Figure)
	assert.Equal(t, *view.Figure, svc.DemoChart(pass, "#123456", 12))
	assert.Equal(t, DefaultColor, svc.DemoChart(pass, "red", 3).Series[0].Color)
}
