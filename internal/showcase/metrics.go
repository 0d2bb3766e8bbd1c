package showcase

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Metric is one headline number on the dashboard.
type Metric struct {
	Label string
	Value string
	Delta string
}

// DashboardMetrics returns the three headline metrics formatted for tag.
func DashboardMetrics(tag language.Tag) []Metric {
	p := message.NewPrinter(tag)
	return []Metric{
		{Label: "Revenue", Value: p.Sprintf("$%d", 12345), Delta: p.Sprintf("$%d", 1234)},
		{Label: "Users", Value: p.Sprintf("%d", 1234), Delta: p.Sprintf("%d", 123)},
		{Label: "Conversion", Value: p.Sprintf("%.1f%%", 12.3), Delta: p.Sprintf("%.1f%%", 1.2)},
	}
}
