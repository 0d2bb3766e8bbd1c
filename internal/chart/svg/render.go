// Package svg renders chart figures as inline, script-free SVG.
package svg

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/rksiitd1/amazing-dashboard/internal/chart"
)

// Render draws the figure according to its kind.
func Render(fig chart.Figure, opts Opts) (template.HTML, error) {
	if err := fig.Validate(); err != nil {
		return "", err
	}
	opts = opts.withDefaults(fig.Height)
	switch fig.Kind {
	case chart.KindLine:
		return Line(fig, opts)
	case chart.KindBar:
		return Bars(fig, opts)
	case chart.KindArea:
		return Area(fig, opts)
	case chart.KindScatter:
		return Scatter(fig, opts)
	}
	return "", fmt.Errorf("svg: unsupported kind %q", fig.Kind)
}

// Renderer adapts Render to the handler-facing renderer contract.
type Renderer struct {
	Opts Opts
}

// Render implements the inline chart renderer contract.
func (r Renderer) Render(fig chart.Figure) (template.HTML, error) {
	return Render(fig, r.Opts)
}

func finish(b *strings.Builder) template.HTML {
	b.WriteString("</svg>")
	return template.HTML(b.String())
}
