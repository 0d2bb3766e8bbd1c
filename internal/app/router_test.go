package app

import (
	"bytes"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/rksiitd1/amazing-dashboard/internal/chart/svg"
	"github.com/rksiitd1/amazing-dashboard/internal/observability"
	"github.com/rksiitd1/amazing-dashboard/internal/shared"
	"github.com/rksiitd1/amazing-dashboard/internal/showcase"
	showcasehttp "github.com/rksiitd1/amazing-dashboard/internal/showcase/http"
	"github.com/rksiitd1/amazing-dashboard/internal/view"
	_ "github.com/rksiitd1/amazing-dashboard/testing"
)

type testServer struct {
	handler http.Handler
	csrf    *shared.CSRFManager
}

func newTestServer(t *testing.T, uploadMax int64) testServer {
	t.Helper()
	templates, err := view.NewEngine()
	require.NoError(t, err)
	cfg := &Config{AppEnv: "test", UploadMaxBytes: uploadMax, RateLimitPerMin: 1000}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	csrf := shared.NewCSRFManager("router-secret", false)
	metrics := observability.NewMetrics()
	handler := showcasehttp.NewHandler(logger, showcase.NewService(language.English), templates, csrf,
		showcasehttp.Renderers{Inline: svg.Renderer{}}, metrics,
		showcasehttp.Options{UploadMaxBytes: uploadMax, DownloadsPerMin: 1000})
	return testServer{
		handler: NewRouter(RouterParams{
			Logger:          logger,
			Config:          cfg,
			CSRFManager:     csrf,
			ShowcaseHandler: handler,
			Metrics:         metrics,
		}),
		csrf: csrf,
	}
}

func (s testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

// csrfCookie fetches a page to obtain the nonce cookie and form token.
func (s testServer) csrfCookie(t *testing.T) (*http.Cookie, string) {
	t.Helper()
	rr := s.do(httptest.NewRequest(http.MethodGet, "/?page=analysis", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	cookies := rr.Result().Cookies()
	require.NotEmpty(t, cookies)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	token, err := s.csrf.EnsureToken(httptest.NewRecorder(), req)
	require.NoError(t, err)
	assert.Contains(t, rr.Body.String(), `value="`+token+`"`)
	return cookies[0], token
}

func uploadRequest(t *testing.T, fields map[string]string, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, 1<<20)
	rr := s.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestIndexCarriesSecurityHeaders(t *testing.T) {
	s := newTestServer(t, 1<<20)
	rr := s.do(httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "default-src 'self'", rr.Header().Get("Content-Security-Policy"))
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, rr.Body.String(), "Dashboard Overview")
}

func TestStaticAssetsAreCached(t *testing.T) {
	s := newTestServer(t, 1<<20)
	rr := s.do(httptest.NewRequest(http.MethodGet, "/static/css/app.css", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "public, max-age=3600", rr.Header().Get("Cache-Control"))
	assert.True(t, strings.HasPrefix(rr.Header().Get("Content-Type"), "text/css"))
}

func TestUploadRequiresCSRFToken(t *testing.T) {
	s := newTestServer(t, 1<<20)
	req := uploadRequest(t, map[string]string{"page": "Data Analysis"}, "a.csv", []byte("a,b\n1,2\n"))
	rr := s.do(req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "The form has expired. Reload the page and try again.")
	assert.NotEmpty(t, rr.Result().Cookies())
}

func TestUploadWithCSRFToken(t *testing.T) {
	s := newTestServer(t, 1<<20)
	cookie, token := s.csrfCookie(t)

	req := uploadRequest(t, map[string]string{"page": "Data Analysis", "csrf_token": token}, "a.csv", []byte("a,b\n1,2\n3,4\n"))
	req.AddCookie(cookie)
	rr := s.do(req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Data Preview")

	metrics := s.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, metrics.Body.String(), `showcase_uploads_total{result="accepted"} 1`)
	assert.Contains(t, metrics.Body.String(), `showcase_charts_rendered_total{format="svg",kind="scatter"} 1`)
}

func TestOversizeBodyIsRejected(t *testing.T) {
	s := newTestServer(t, 16)
	cookie, token := s.csrfCookie(t)

	req := uploadRequest(t, map[string]string{"page": "Data Analysis", "csrf_token": token}, "a.csv", bytes.Repeat([]byte("1,2\n"), 64<<10))
	req.AddCookie(cookie)
	rr := s.do(req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `<div class="alert alert-error" role="alert">The uploaded file is too large.</div>`)
	assert.Contains(t, body, `enctype="multipart/form-data"`)

	metrics := s.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, metrics.Body.String(), `showcase_uploads_total{result="too_large"} 1`)
}

func TestMiddlewareWithoutRejectWritesStatusText(t *testing.T) {
	stack := MiddlewareStack(MiddlewareConfig{
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config:      &Config{UploadMaxBytes: 1 << 10, RateLimitPerMin: 1000},
		CSRFManager: shared.NewCSRFManager("bare-secret", false),
	})
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	for i := len(stack) - 1; i >= 0; i-- {
		handler = stack[i](handler)
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("page=analysis"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "Forbidden\n", rr.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, 1<<20)
	s.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	rr := s.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `showcase_http_requests_total{code="200",route="/healthz"} 1`)
}
