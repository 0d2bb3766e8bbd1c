package svg

// Opts customises the SVG renderer.
type Opts struct {
	Width       int
	Height      int
	Description string
	AxisColor   string
	GridColor   string
	Padding     float64
	TickCount   int
	// XTicks caps the number of labelled positions on the X axis.
	XTicks int
}

// Defaults for the showcase charts.
const (
	DefaultWidth   = 960
	DefaultHeight  = 500
	DefaultPadding = 48.0
	DefaultTicks   = 6
	DefaultXTicks  = 12
)

func (o Opts) withDefaults(height int) Opts {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = height
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Padding <= 0 {
		o.Padding = DefaultPadding
	}
	if o.TickCount <= 0 {
		o.TickCount = DefaultTicks
	}
	if o.XTicks <= 0 {
		o.XTicks = DefaultXTicks
	}
	o.AxisColor = fallback(o.AxisColor, "#475569")
	o.GridColor = fallback(o.GridColor, "#cbd5f5")
	return o
}
