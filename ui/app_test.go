package ui

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"probcalc/adapters/memory"
	"probcalc/app"
	"probcalc/domain/distribution"
	"probcalc/internal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*App, *app.CalculatorService) {
	t.Helper()
	logger := internal.NewLoggerTo(&bytes.Buffer{}, internal.LogLevelError)
	service := app.NewCalculatorService(memory.NewHistoryRepository(5), logger)
	ui, err := NewApp(service, logger, Config{HistoryLimit: 5})
	require.NoError(t, err)
	return ui, service
}

func get(ui http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	ui.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func post(ui http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	ui.ServeHTTP(w, req)
	return w
}

func TestIndexRedirects(t *testing.T) {
	ui, _ := newTestApp(t)
	w := get(ui, "/")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/binomial", w.Header().Get("Location"))
}

func TestForm_ShowsDefaults(t *testing.T) {
	ui, _ := newTestApp(t)

	w := get(ui, "/hypergeometric")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `name="population" type="number" step="1" value="50"`)
	assert.Contains(t, body, "Successes in sample (x)")
	assert.NotContains(t, body, "banner")

	w = get(ui, "/normal?mode=between")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="a" type="number" step="any" value="65"`)
	assert.Contains(t, w.Body.String(), `<option value="between" selected>`)
}

func TestForm_UnknownKind(t *testing.T) {
	ui, _ := newTestApp(t)
	assert.Equal(t, http.StatusNotFound, get(ui, "/cauchy").Code)
}

func TestCalculate_Success(t *testing.T) {
	ui, _ := newTestApp(t)

	w := post(ui, "/binomial", url.Values{"n": {"10"}, "x": {"3"}, "p": {"0.5"}, "steps": {"on"}})
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "P(X = 3) = 0.11719")
	assert.Contains(t, body, `class="banner success"`)
	assert.Contains(t, body, "<h3>Steps</h3>")
	assert.Contains(t, body, "<svg")
	assert.Equal(t, 11, strings.Count(body, "<rect"))
}

func TestCalculate_StepsHiddenWhenUnchecked(t *testing.T) {
	ui, _ := newTestApp(t)

	w := post(ui, "/poisson", url.Values{"lambda": {"2"}, "x": {"3"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "<h3>Steps</h3>")
}

func TestCalculate_NormalShadesRegion(t *testing.T) {
	ui, _ := newTestApp(t)

	w := post(ui, "/normal", url.Values{"mode": {"at_least"}, "mu": {"50"}, "sigma": {"10"}, "b": {"60"}})
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "P(X ≥ 60) = 0.15866")
	assert.Equal(t, 1, strings.Count(body, "<polygon"))
	assert.Contains(t, body, "<polyline")
}

func TestCalculate_InvalidParameter(t *testing.T) {
	ui, service := newTestApp(t)

	w := post(ui, "/binomial", url.Values{"n": {"5"}, "x": {"7"}, "p": {"0.5"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `class="banner error"`)
	assert.Contains(t, body, "x exceeds n")
	assert.Contains(t, body, `name="x" type="number" step="1" value="7" class="invalid"`)

	w = post(ui, "/poisson", url.Values{"lambda": {"many"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "lambda must be a number")

	records, err := service.History(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestHistoryPage(t *testing.T) {
	ui, _ := newTestApp(t)

	post(ui, "/poisson", url.Values{"lambda": {"3"}, "x": {"2"}})
	w := get(ui, "/history")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "P(X = 2) = 0.22404")
}

func TestStaticAssets(t *testing.T) {
	ui, _ := newTestApp(t)
	w := get(ui, "/static/style.css")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), ".banner")
}

func TestPlotSVG(t *testing.T) {
	assert.Empty(t, PlotSVG(distribution.KindPoisson, nil))

	points := []distribution.SamplePoint{
		{X: 0, Density: 0.25},
		{X: 1, Density: 0.5, Shaded: true},
		{X: 2, Density: 0.25},
	}
	svg := PlotSVG(distribution.KindBinomial, points)
	assert.Equal(t, 3, strings.Count(svg, "<rect"))
	assert.Equal(t, 1, strings.Count(svg, shadedFill))
	assert.Contains(t, svg, "<title>P(X = 1) = 0.50000</title>")
}
