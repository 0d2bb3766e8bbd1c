package showcase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rksiitd1/amazing-dashboard/internal/chart"
	"github.com/rksiitd1/amazing-dashboard/internal/synthetic"
)

// Slider bounds and defaults of the demo form.
const (
	NumberMin    = 0
	NumberMax    = 100
	DefaultColor = "#000000"
)

// MissingNameWarning is shown when Generate is pressed without a name.
const MissingNameWarning = "Please enter your name first!"

// DemoInput holds the demo form widgets.
type DemoInput struct {
	Name     string `validate:"required"`
	Color    string `validate:"hexcolor"`
	Number   int    `validate:"min=0,max=100"`
	Generate bool
}

// DemoView is the output of the demo routine.
type DemoView struct {
	Pass     Pass
	Input    DemoInput
	Warning  string
	Greeting string
	Message  string
	Figure   *chart.Figure
}

// Celebrate reports whether the greeting is shown.
func (v DemoView) Celebrate() bool {
	return v.Greeting != ""
}

// ClampNumber bounds a slider value to [NumberMin, NumberMax].
func ClampNumber(n int) int {
	return min(max(n, NumberMin), NumberMax)
}

// Demo runs the interactive demo. Nothing beyond the echoed form is produced
// until Generate is pressed.
func (s *Service) Demo(pass Pass, in DemoInput) DemoView {
	in = s.normalizeDemo(in)
	view := DemoView{Pass: pass, Input: in}
	if !in.Generate {
		return view
	}
	if err := s.validate.Struct(in); err != nil {
		view.Warning = demoWarning(err)
		return view
	}
	view.Greeting = fmt.Sprintf("Hello, %s!", in.Name)
	view.Message = fmt.Sprintf("Your favorite color is %s and you picked the number %d.", in.Color, in.Number)
	fig := DemoFigure(pass, in.Color, in.Number)
	view.Figure = &fig
	return view
}

// DemoFigure scatters number random 2-D points in color.
func DemoFigure(pass Pass, color string, number int) chart.Figure {
	draws := synthetic.Points(pass.Seed(), ClampNumber(number))
	points := make([]chart.Point, len(draws))
	for i, d := range draws {
		points[i] = chart.Point{X: d[0], Y: d[1]}
	}
	return chart.Figure{
		Kind:   chart.KindScatter,
		Title:  "Your custom visualization",
		XLabel: "x",
		YLabel: "y",
		Height: chart.DefaultHeight,
		Series: []chart.Series{{Name: "points", Color: color, Points: points}},
	}
}

// DemoChart rebuilds the demo scatter for a replayed pass from raw query
// values.
func (s *Service) DemoChart(pass Pass, color string, number int) chart.Figure {
	return DemoFigure(pass, s.NormalizeColor(color), number)
}

// NormalizeColor returns a lower-case hex color or DefaultColor.
func (s *Service) NormalizeColor(color string) string {
	color = strings.ToLower(strings.TrimSpace(color))
	if err := s.validate.Var(color, "required,hexcolor"); err != nil {
		return DefaultColor
	}
	return color
}

func (s *Service) normalizeDemo(in DemoInput) DemoInput {
	in.Color = s.NormalizeColor(in.Color)
	in.Number = ClampNumber(in.Number)
	return in
}

func demoWarning(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fieldErr := range fieldErrs {
			if fieldErr.Field() != "Name" {
				return fmt.Sprintf("Invalid %s.", strings.ToLower(fieldErr.Field()))
			}
		}
	}
	return MissingNameWarning
}
