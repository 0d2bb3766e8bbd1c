package showcasehttp

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rksiitd1/amazing-dashboard/internal/chart"
	"github.com/rksiitd1/amazing-dashboard/internal/platform/httpx"
	"github.com/rksiitd1/amazing-dashboard/internal/showcase"
	"github.com/rksiitd1/amazing-dashboard/internal/synthetic"
)

// replayPass rebuilds the pass a page linked to. Without a pass ID the
// download starts a fresh pass.
func (h *Handler) replayPass(r *http.Request) (showcase.Pass, error) {
	id := strings.TrimSpace(r.URL.Query().Get("pass"))
	if id == "" {
		return showcase.NewPass(h.now()), nil
	}
	return showcase.ReplayPass(id, h.now())
}

func (h *Handler) dashboardForDownload(w http.ResponseWriter, r *http.Request) (showcase.DashboardView, bool) {
	pass, err := h.replayPass(r)
	if err != nil {
		httpx.RespondError(w, classify(err))
		return showcase.DashboardView{}, false
	}
	v, err := h.service.Dashboard(pass, r.URL.Query().Get("chart"))
	if err != nil {
		httpx.RespondError(w, classify(err))
		return showcase.DashboardView{}, false
	}
	return v, true
}

func (h *Handler) handleDashboardPNG(w http.ResponseWriter, r *http.Request) {
	v, ok := h.dashboardForDownload(w, r)
	if !ok {
		return
	}
	filename := fmt.Sprintf("dashboard-%s-%s.png", v.ChartType, v.Pass.ID)
	h.stream(w, h.renderers.PNG, v.Figure, "png", "image/png", attachment(filename))
}

func (h *Handler) handleDashboardInteractive(w http.ResponseWriter, r *http.Request) {
	v, ok := h.dashboardForDownload(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Security-Policy", h.chartCSP)
	h.stream(w, h.renderers.Interactive, v.Figure, "html", "text/html; charset=utf-8", "")
}

func (h *Handler) handleDashboardCSV(w http.ResponseWriter, r *http.Request) {
	v, ok := h.dashboardForDownload(w, r)
	if !ok {
		return
	}
	buf := h.getBuffer()
	defer h.putBuffer(buf)

	if err := synthetic.WriteCSV(buf, v.Rows); err != nil {
		h.logError("write synthetic csv", err)
		httpx.RespondError(w, err)
		return
	}
	filename := fmt.Sprintf("synthetic-%s.csv", v.Pass.ID)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", attachment(filename))
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logError("stream csv", err)
	}
}

func (h *Handler) handleDemoInteractive(w http.ResponseWriter, r *http.Request) {
	pass, err := h.replayPass(r)
	if err != nil {
		httpx.RespondError(w, classify(err))
		return
	}
	query := r.URL.Query()
	number := 0
	if raw := strings.TrimSpace(query.Get("number")); raw != "" {
		number, err = strconv.Atoi(raw)
		if err != nil {
			httpx.RespondError(w, classify(validationError{field: "number"}))
			return
		}
	}
	fig := h.service.DemoChart(pass, query.Get("color"), number)
	w.Header().Set("Content-Security-Policy", h.chartCSP)
	h.stream(w, h.renderers.Interactive, fig, "html", "text/html; charset=utf-8", "")
}

// stream renders fig into a pooled buffer so a failing renderer still
// produces a clean problem response.
func (h *Handler) stream(w http.ResponseWriter, renderer StreamRenderer, fig chart.Figure, format, contentType, disposition string) {
	if renderer == nil {
		h.logError("render "+format, fmt.Errorf("%s renderer not configured", format))
		httpx.RespondError(w, fmt.Errorf("%s renderer missing", format))
		return
	}
	buf := h.getBuffer()
	defer h.putBuffer(buf)

	if err := renderer.Render(buf, fig); err != nil {
		h.logError("render "+format, err)
		httpx.RespondError(w, err)
		return
	}
	h.chartRendered(fig.Kind, format)
	w.Header().Set("Content-Type", contentType)
	if disposition != "" {
		w.Header().Set("Content-Disposition", disposition)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logError("stream "+format, err)
	}
}

func (h *Handler) getBuffer() *bytes.Buffer {
	buf := h.bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func (h *Handler) putBuffer(buf *bytes.Buffer) {
	buf.Reset()
	h.bufPool.Put(buf)
}

func attachment(filename string) string {
	return fmt.Sprintf("attachment; filename=\"%s\"", filename)
}
