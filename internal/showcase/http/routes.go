package showcasehttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/rksiitd1/amazing-dashboard/internal/platform/httpx"
)

// MountRoutes registers the page router and chart downloads onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	limiter := httprate.Limit(h.opts.DownloadsPerMin, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			httpx.Problem(w, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests), "download limit reached, retry in a minute")
		}),
	)

	r.Get("/", h.handleIndex)
	r.Post("/", h.handleIndex)
	r.Group(func(gr chi.Router) {
		gr.Use(limiter)
		gr.Get("/dashboard/chart.png", h.handleDashboardPNG)
		gr.Get("/dashboard/chart.html", h.handleDashboardInteractive)
		gr.Get("/dashboard/data.csv", h.handleDashboardCSV)
		gr.Get("/demo/chart.html", h.handleDemoInteractive)
	})
}
