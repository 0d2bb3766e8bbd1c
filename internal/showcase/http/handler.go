// Package showcasehttp serves the showcase pages and their chart downloads.
package showcasehttp

import (
	"bytes"
	"context"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rksiitd1/amazing-dashboard/internal/chart"
	"github.com/rksiitd1/amazing-dashboard/internal/showcase"
	"github.com/rksiitd1/amazing-dashboard/internal/view"
)

// ShowcaseService defines the display routines used by the handler.
type ShowcaseService interface {
	Dashboard(pass showcase.Pass, chartType string) (showcase.DashboardView, error)
	Analyze(ctx context.Context, req showcase.AnalysisRequest) (showcase.AnalysisView, error)
	Demo(pass showcase.Pass, in showcase.DemoInput) showcase.DemoView
	DemoChart(pass showcase.Pass, color string, number int) chart.Figure
}

// InlineRenderer draws a figure as markup embedded in a page.
type InlineRenderer interface {
	Render(fig chart.Figure) (template.HTML, error)
}

// StreamRenderer writes a figure as a standalone document.
type StreamRenderer interface {
	Render(w io.Writer, fig chart.Figure) error
}

// CSRFIssuer hands out the token embedded in the upload form.
type CSRFIssuer interface {
	EnsureToken(w http.ResponseWriter, r *http.Request) (string, error)
}

// Recorder receives chart and upload counters.
type Recorder interface {
	ChartRendered(kind, format string)
	UploadProcessed(result string)
}

// Renderers groups the three chart outputs.
type Renderers struct {
	Inline      InlineRenderer
	PNG         StreamRenderer
	Interactive StreamRenderer
}

// Options carries the page configuration.
type Options struct {
	PageTitle       string
	AppTitle        string
	UploadMaxBytes  int64
	DownloadsPerMin int
	// AssetsHost is where interactive chart pages load their scripts from.
	AssetsHost string
}

// Handler coordinates HTTP requests for the showcase pages.
type Handler struct {
	logger    *slog.Logger
	service   ShowcaseService
	templates *view.Engine
	csrf      CSRFIssuer
	renderers Renderers
	recorder  Recorder
	opts      Options
	chartCSP  string
	bufPool   sync.Pool
	now       func() time.Time
}

// NewHandler constructs the showcase HTTP handler.
func NewHandler(logger *slog.Logger, service ShowcaseService, templates *view.Engine, csrf CSRFIssuer, renderers Renderers, recorder Recorder, opts Options) *Handler {
	if opts.AppTitle == "" {
		opts.AppTitle = "Amazing Showcase App"
	}
	if opts.PageTitle == "" {
		opts.PageTitle = "Amazing Dashboard"
	}
	if opts.UploadMaxBytes <= 0 {
		opts.UploadMaxBytes = 10 << 20
	}
	if opts.DownloadsPerMin <= 0 {
		opts.DownloadsPerMin = 30
	}
	h := &Handler{
		logger:    logger,
		service:   service,
		templates: templates,
		csrf:      csrf,
		renderers: renderers,
		recorder:  recorder,
		opts:      opts,
		chartCSP:  chartPolicy(opts.AssetsHost),
		now:       time.Now,
	}
	h.bufPool.New = func() interface{} { return new(bytes.Buffer) }
	return h
}

// WithNow overrides the handler clock for testing.
func (h *Handler) WithNow(fn func() time.Time) {
	if fn != nil {
		h.now = fn
	}
}

func (h *Handler) chartRendered(kind chart.Kind, format string) {
	if h.recorder != nil {
		h.recorder.ChartRendered(string(kind), format)
	}
}

func (h *Handler) uploadProcessed(result string) {
	if h.recorder != nil {
		h.recorder.UploadProcessed(result)
	}
}

func (h *Handler) logError(context string, err error) {
	if h.logger != nil {
		h.logger.Error(context, slog.Any("error", err))
	}
}

func (h *Handler) logWarn(context string, err error) {
	if h.logger != nil {
		h.logger.Warn(context, slog.Any("error", err))
	}
}

// chartPolicy allows the interactive chart pages to run their inline
// bootstrap script and load the chart library from the assets host.
func chartPolicy(assetsHost string) string {
	scripts := "'self' 'unsafe-inline'"
	if u, err := url.Parse(assetsHost); err == nil && u.Scheme != "" && u.Host != "" {
		scripts += " " + u.Scheme + "://" + u.Host
	}
	return strings.Join([]string{
		"default-src 'self'",
		"script-src " + scripts,
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' data:",
	}, "; ")
}
