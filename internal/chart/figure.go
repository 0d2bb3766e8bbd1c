// Package chart describes renderer-independent figures shared by the SVG,
// interactive and PNG chart backends.
package chart

import (
	"fmt"
	"math"
	"strings"
)

// Kind identifies how a figure draws its series.
type Kind string

// Supported figure kinds.
const (
	KindLine    Kind = "line"
	KindBar     Kind = "bar"
	KindArea    Kind = "area"
	KindScatter Kind = "scatter"
)

// DefaultHeight mirrors the dashboard chart height in pixels.
const DefaultHeight = 500

// Palette is the qualitative color sequence assigned to series in order.
var Palette = []string{"#636efa", "#ef553b", "#00cc96", "#ab63fa", "#ffa15a", "#19d3f3"}

// Point is a single observation. Label carries the categorical X value
// (dates on the dashboard) and may be empty for numeric X axes.
type Point struct {
	X     float64
	Y     float64
	Label string
}

// Finite reports whether both coordinates can be placed on an axis.
func (p Point) Finite() bool {
	return !math.IsInf(p.X, 0) && !math.IsNaN(p.X) && !math.IsInf(p.Y, 0) && !math.IsNaN(p.Y)
}

// Series is a named, colored group of points.
type Series struct {
	Name   string
	Color  string
	Points []Point
}

// Figure is one chart ready to hand to a renderer.
type Figure struct {
	Kind   Kind
	Title  string
	XLabel string
	YLabel string
	Height int
	Series []Series
}

// ParseKind maps a chart picker label such as "Line" onto a Kind.
func ParseKind(label string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "line":
		return KindLine, nil
	case "bar":
		return KindBar, nil
	case "area":
		return KindArea, nil
	case "scatter":
		return KindScatter, nil
	default:
		return "", fmt.Errorf("chart: unsupported kind %q", label)
	}
}

// Label returns the picker label of the kind.
func (k Kind) Label() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// PointCount sums the points over every series.
func (f Figure) PointCount() int {
	total := 0
	for _, s := range f.Series {
		total += len(s.Points)
	}
	return total
}

// Validate reports structural problems that would make a renderer fail.
func (f Figure) Validate() error {
	if len(f.Series) == 0 {
		return fmt.Errorf("chart: figure %q has no series", f.Title)
	}
	switch f.Kind {
	case KindLine, KindBar, KindArea, KindScatter:
	default:
		return fmt.Errorf("chart: unsupported kind %q", f.Kind)
	}
	return nil
}

// ColorAt returns the palette color for the i-th series.
func ColorAt(i int) string {
	return Palette[i%len(Palette)]
}

// Bounds returns the min/max of X and Y across all series, skipping
// non-finite points. ok is false when no finite point remains.
func (f Figure) Bounds() (minX, maxX, minY, maxY float64, ok bool) {
	for _, s := range f.Series {
		for _, p := range s.Points {
			if !p.Finite() {
				continue
			}
			if !ok {
				minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
				ok = true
				continue
			}
			minX = min(minX, p.X)
			maxX = max(maxX, p.X)
			minY = min(minY, p.Y)
			maxY = max(maxY, p.Y)
		}
	}
	return minX, maxX, minY, maxY, ok
}
