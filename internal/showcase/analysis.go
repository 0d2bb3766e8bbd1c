package showcase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rksiitd1/amazing-dashboard/internal/chart"
	"github.com/rksiitd1/amazing-dashboard/internal/dataset"
)

// PreviewRows is the number of rows shown in the data preview.
const PreviewRows = 5

// Upload is a file submitted on the analysis page.
type Upload struct {
	Filename string
	Data     []byte
}

// AnalysisRequest carries the analysis page inputs. Upload is nil until a
// file has been submitted.
type AnalysisRequest struct {
	Upload *Upload
	X      string
	Y      string
}

// AnalysisView is the output of the analysis routine. Fields stay empty for
// the steps that did not run.
type AnalysisView struct {
	Upload  *Upload
	Preview *dataset.Table
	Summary *dataset.Summary
	Columns []string
	X       string
	Y       string
	Figure  *chart.Figure
}

// HasData reports whether a table was parsed.
func (v AnalysisView) HasData() bool {
	return v.Preview != nil
}

// Analyze parses the upload, previews it, summarises it and, for tables with
// more than one column, plots the selected columns. The returned view holds
// whatever was produced before a failure.
func (s *Service) Analyze(ctx context.Context, req AnalysisRequest) (AnalysisView, error) {
	view := AnalysisView{Upload: req.Upload}
	if req.Upload == nil {
		return view, nil
	}
	table, err := dataset.Read(req.Upload.Filename, req.Upload.Data)
	if err != nil {
		return view, err
	}
	view.Preview = table.Head(PreviewRows)
	if err := ctx.Err(); err != nil {
		return view, err
	}

	var summary dataset.Summary
	var fig *chart.Figure
	var g errgroup.Group
	g.Go(func() error {
		summary = table.Describe()
		return nil
	})
	if len(table.Columns) > 1 {
		view.Columns = table.Columns
		view.X = pick(req.X, table.Columns)
		view.Y = pick(req.Y, table.Columns)
		g.Go(func() error {
			built, err := ScatterFigure(table, view.X, view.Y)
			if err != nil {
				return err
			}
			fig = &built
			return nil
		})
	}
	err = g.Wait()
	view.Summary = &summary
	view.Figure = fig
	return view, err
}

// ScatterFigure plots column y against column x.
func ScatterFigure(table *dataset.Table, x, y string) (chart.Figure, error) {
	xs, ys, err := table.XY(x, y)
	if err != nil {
		return chart.Figure{}, err
	}
	points := make([]chart.Point, len(xs))
	for i := range xs {
		points[i] = chart.Point{X: xs[i], Y: ys[i]}
	}
	return chart.Figure{
		Kind:   chart.KindScatter,
		Title:  fmt.Sprintf("%s vs %s", y, x),
		XLabel: x,
		YLabel: y,
		Height: chart.DefaultHeight,
		Series: []chart.Series{{Name: y, Color: chart.ColorAt(0), Points: points}},
	}, nil
}

// pick returns the selection, defaulting to the first column like a select
// box with no explicit choice.
func pick(selected string, columns []string) string {
	if selected == "" {
		return columns[0]
	}
	return selected
}
