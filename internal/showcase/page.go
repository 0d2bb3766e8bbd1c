package showcase

import (
	"fmt"
	"strings"
)

// Page is a navigation entry of the sidebar.
type Page string

// Pages of the showcase, in menu order.
const (
	PageDashboard Page = "Dashboard"
	PageAnalysis  Page = "Data Analysis"
	PageDemo      Page = "Interactive Demo"
)

// Pages lists the menu in display order. The first entry is the default.
var Pages = []Page{PageDashboard, PageAnalysis, PageDemo}

// ParsePage accepts a menu label or slug. An empty selection is the first
// menu entry.
func ParsePage(value string) (Page, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Pages[0], nil
	}
	for _, p := range Pages {
		if strings.EqualFold(value, string(p)) || strings.EqualFold(value, p.Slug()) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPage, value)
}

// Slug is the URL friendly name of the page.
func (p Page) Slug() string {
	switch p {
	case PageDashboard:
		return "dashboard"
	case PageAnalysis:
		return "analysis"
	case PageDemo:
		return "demo"
	}
	return strings.ToLower(strings.ReplaceAll(string(p), " ", "-"))
}
