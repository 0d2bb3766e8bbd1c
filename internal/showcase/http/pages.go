package showcasehttp

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rksiitd1/amazing-dashboard/internal/observability"
	"github.com/rksiitd1/amazing-dashboard/internal/platform/httpx"
	"github.com/rksiitd1/amazing-dashboard/internal/showcase"
	"github.com/rksiitd1/amazing-dashboard/internal/view"
)

var formValidator = validator.New()

// analysisForm holds the text fields of the upload form.
type analysisForm struct {
	Filename string `validate:"omitempty,max=255,excludesall=/\\"`
	X        string `validate:"max=512"`
	Y        string `validate:"max=512"`
}

// handleIndex is the page router: it reads the menu selection and runs the
// matching display routine in a fresh render pass.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	pass := showcase.NewPass(h.now())
	if err := h.parseForm(r); err != nil {
		if r.Method == http.MethodPost {
			h.renderAnalysisFailure(w, r, pass, analysisPage{}, err)
			return
		}
		h.renderError(w, r, pass, validationError{field: "query"})
		return
	}

	page, err := showcase.ParsePage(r.FormValue("page"))
	if err != nil {
		h.renderError(w, r, pass, err)
		return
	}
	switch page {
	case showcase.PageDashboard:
		h.handleDashboard(w, r, pass)
	case showcase.PageAnalysis:
		h.handleAnalysis(w, r, pass)
	case showcase.PageDemo:
		h.handleDemo(w, r, pass)
	}
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request, pass showcase.Pass) {
	v, err := h.service.Dashboard(pass, r.FormValue("chart"))
	if err != nil {
		h.renderPage(w, r, pass, showcase.PageDashboard, "pages/dashboard.html", statusOf(err), nil, message(err))
		return
	}
	svg, err := h.renderers.Inline.Render(v.Figure)
	if err != nil {
		h.logError("render dashboard chart", err)
		h.renderPage(w, r, pass, showcase.PageDashboard, "pages/dashboard.html", http.StatusInternalServerError, nil, message(err))
		return
	}
	h.chartRendered(v.Figure.Kind, "svg")
	h.renderPage(w, r, pass, showcase.PageDashboard, "pages/dashboard.html", http.StatusOK, newDashboardPage(v, svg), "")
}

func (h *Handler) handleAnalysis(w http.ResponseWriter, r *http.Request, pass showcase.Pass) {
	req, err := h.analysisRequest(r)
	if err != nil {
		h.renderAnalysisFailure(w, r, pass, analysisPage{}, err)
		return
	}

	v, err := h.service.Analyze(r.Context(), req)
	page := newAnalysisPage(v)
	if err != nil {
		h.renderAnalysisFailure(w, r, pass, page, err)
		return
	}
	if v.Figure != nil {
		svg, err := h.renderers.Inline.Render(*v.Figure)
		if err != nil {
			h.logError("render analysis chart", err)
			h.renderAnalysisFailure(w, r, pass, page, err)
			return
		}
		page.ChartSVG = svg
		h.chartRendered(v.Figure.Kind, "svg")
	}
	if req.Upload != nil {
		h.uploadProcessed(observability.UploadAccepted)
	}
	h.renderPage(w, r, pass, showcase.PageAnalysis, "pages/analysis.html", http.StatusOK, page, "")
}

func (h *Handler) renderAnalysisFailure(w http.ResponseWriter, r *http.Request, pass showcase.Pass, page analysisPage, err error) {
	status := statusOf(err)
	switch {
	case status == http.StatusRequestEntityTooLarge:
		h.uploadProcessed(observability.UploadTooLarge)
	case status < http.StatusInternalServerError:
		h.uploadProcessed(observability.UploadRejected)
	}
	h.logWarn("analysis failed", err)
	if page.Accept == "" {
		page = newAnalysisPage(page.View)
	}
	h.renderPage(w, r, pass, showcase.PageAnalysis, "pages/analysis.html", status, page, message(err))
}

func (h *Handler) handleDemo(w http.ResponseWriter, r *http.Request, pass showcase.Pass) {
	in, err := parseDemoInput(r)
	if err != nil {
		page := newDemoPage(h.service.Demo(pass, showcase.DemoInput{}))
		h.renderPage(w, r, pass, showcase.PageDemo, "pages/demo.html", statusOf(err), page, message(err))
		return
	}
	v := h.service.Demo(pass, in)
	page := newDemoPage(v)
	if v.Figure != nil {
		svg, err := h.renderers.Inline.Render(*v.Figure)
		if err != nil {
			h.logError("render demo chart", err)
			h.renderPage(w, r, pass, showcase.PageDemo, "pages/demo.html", http.StatusInternalServerError, page, message(err))
			return
		}
		page.ChartSVG = svg
		h.chartRendered(v.Figure.Kind, "svg")
	}
	h.renderPage(w, r, pass, showcase.PageDemo, "pages/demo.html", http.StatusOK, page, "")
}

// parseForm reads the query and, for the upload form, the multipart body.
func (h *Handler) parseForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(h.opts.UploadMaxBytes)
	}
	return r.ParseForm()
}

// analysisRequest extracts the upload from either a freshly chosen file or
// the payload carried back by a previous render.
func (h *Handler) analysisRequest(r *http.Request) (showcase.AnalysisRequest, error) {
	form := analysisForm{
		Filename: strings.TrimSpace(r.FormValue("filename")),
		X:        r.FormValue("x"),
		Y:        r.FormValue("y"),
	}
	req := showcase.AnalysisRequest{X: form.X, Y: form.Y}

	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		defer file.Close()
		data, err := h.readUpload(file, header)
		if err != nil {
			return req, err
		}
		form.Filename = header.Filename
		// A new file invalidates the axis picks made for the previous one.
		req.X, req.Y = "", ""
		req.Upload = &showcase.Upload{Filename: header.Filename, Data: data}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		payload := r.FormValue("payload")
		if payload == "" {
			break
		}
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return req, validationError{field: "payload"}
		}
		if int64(len(data)) > h.opts.UploadMaxBytes {
			return req, httpx.ErrTooLarge
		}
		req.Upload = &showcase.Upload{Filename: form.Filename, Data: data}
	default:
		return req, err
	}

	if err := formValidator.Struct(form); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return showcase.AnalysisRequest{}, validationError{field: strings.ToLower(fieldErrs[0].Field())}
		}
		return showcase.AnalysisRequest{}, err
	}
	return req, nil
}

func (h *Handler) readUpload(file multipart.File, header *multipart.FileHeader) ([]byte, error) {
	if header.Size > h.opts.UploadMaxBytes {
		return nil, httpx.ErrTooLarge
	}
	data, err := io.ReadAll(io.LimitReader(file, h.opts.UploadMaxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > h.opts.UploadMaxBytes {
		return nil, httpx.ErrTooLarge
	}
	return data, nil
}

func parseDemoInput(r *http.Request) (showcase.DemoInput, error) {
	in := showcase.DemoInput{
		Name:     r.FormValue("name"),
		Color:    r.FormValue("color"),
		Generate: r.FormValue("generate") != "",
	}
	if raw := strings.TrimSpace(r.FormValue("number")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return showcase.DemoInput{}, validationError{field: "number"}
		}
		in.Number = n
	}
	return in, nil
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, pass showcase.Pass, err error) {
	h.logWarn("page router", err)
	h.renderPage(w, r, pass, "", "pages/error.html", statusOf(err), nil, message(err))
}

// RejectRequest renders the response for a POST refused before routing. An
// oversize body gets the analysis page with its error block; other refusals
// get the error page.
func (h *Handler) RejectRequest(w http.ResponseWriter, r *http.Request, status int, err error) {
	pass := showcase.NewPass(h.now())
	if status == http.StatusRequestEntityTooLarge {
		h.renderAnalysisFailure(w, r, pass, analysisPage{}, fmt.Errorf("%w: %w", httpx.ErrTooLarge, err))
		return
	}
	h.logWarn("request rejected", err)
	msg := http.StatusText(status)
	if status == http.StatusForbidden {
		msg = "The form has expired. Reload the page and try again."
	}
	h.renderPage(w, r, pass, "", "pages/error.html", status, nil, msg)
}

// renderPage wraps data in the shared layout.
func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, pass showcase.Pass, page showcase.Page, name string, status int, data any, errMsg string) {
	token := ""
	if h.csrf != nil {
		var err error
		token, err = h.csrf.EnsureToken(w, r)
		if err != nil {
			h.logError("issue csrf token", err)
		}
	}
	td := view.TemplateData{
		Title:       h.opts.PageTitle,
		AppTitle:    h.opts.AppTitle,
		CSRFToken:   token,
		CurrentPath: r.URL.Path,
		Nav:         navItems(page),
		PassID:      pass.ID.String(),
		RenderedAt:  pass.At,
		Error:       errMsg,
		Data:        data,
	}
	if err := h.templates.RenderStatus(w, status, name, td); err != nil {
		h.logError("render template", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
