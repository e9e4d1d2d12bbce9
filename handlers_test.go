package main

import (
	"bytes"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"oelmerger/internal/report"
)

var testNow = time.Date(2026, 10, 17, 14, 30, 15, 0, time.UTC)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv, err := NewServer(DefaultConfig(), logger, prometheus.NewRegistry())
	require.NoError(t, err)
	srv.now = func() time.Time { return testNow }
	return srv
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestIndex(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	rec := get(t, h, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No OELs registered")
	assert.Contains(t, rec.Body.String(), "384 of 384 intervals free")

	assert.Equal(t, http.StatusNotFound, get(t, h, "/nope").Code)
}

func TestAddOEL(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	rec := postForm(t, h, "/add_oel", url.Values{"name": {"A"}, "passband": {"191.325-191.35"}})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Added OEL: A")
	assert.Contains(t, body, "2 of 384 intervals free")
	assert.Contains(t, body, `<td class="free">FREE</td>`)

	oels, _ := srv.snapshot()
	require.Len(t, oels, 1)
	assert.Equal(t, "191.325-191.35", oels[0].Ranges)
}

func TestAddOELValidation(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	rec := postForm(t, h, "/add_oel", url.Values{"name": {"  "}, "passband": {"191.325"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "OEL name must not be empty.")

	rec = postForm(t, h, "/add_oel", url.Values{"name": {"A"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Passband must not be empty.")

	oels, _ := srv.snapshot()
	assert.Empty(t, oels)
}

func TestAddOELGetRedirects(t *testing.T) {
	srv := newTestServer(t)

	rec := get(t, srv.Handler(), "/add_oel")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestReset(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()
	postForm(t, h, "/add_oel", url.Values{"name": {"A"}, "passband": {"191.325-191.35"}})

	rec := get(t, h, "/reset")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "OEL list cleared.")

	oels, m := srv.snapshot()
	assert.Empty(t, oels)
	for _, free := range m.Summary {
		assert.True(t, free)
	}
}

func TestSummaryAndCalculate(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()
	postForm(t, h, "/add_oel", url.Values{"name": {"A"}, "passband": {"191.325-191.35"}})

	rec := get(t, h, "/summary")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="free_ghz"`)
	assert.Contains(t, rec.Body.String(), "Summary (ALL)")

	rec = postForm(t, h, "/calculate", url.Values{"cols": {"0", "1", "9"}, "operation": {"free_ghz"}})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "free ghz")
	assert.Contains(t, body, "<td>A</td><td>25.00</td>")
	assert.Contains(t, body, "<td>Summary (ALL)</td><td>25.00</td>")
	assert.Contains(t, body, "October 17, 2026 at 2:30 PM")

	rec = postForm(t, h, "/calculate", url.Values{"cols": {"0"}, "operation": {"median"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postForm(t, h, "/calculate", url.Values{"operation": {"free_count"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChart(t *testing.T) {
	srv := newTestServer(t)

	rec := get(t, srv.Handler(), "/chart")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "echarts")
}

func TestDownloadExcel(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()
	postForm(t, h, "/add_oel", url.Values{"name": {"A"}, "passband": {"191.325-191.35"}})
	postForm(t, h, "/add_oel", url.Values{"name": {"B"}, "passband": {"191.3375-196.125"}})

	rec := get(t, h, "/download_excel")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, report.ContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="oel_20261017_143015.xlsx"`, rec.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("oel_merged")
	require.NoError(t, err)
	require.Len(t, rows, 385)
	assert.Equal(t, []string{"Edge Freq (THz)", "Central Freq (THz)", "Edge Freq (THz)", "A", "B", "Summary (ALL)"}, rows[0])
	assert.Equal(t, []string{"191.32500", "191.33125", "191.33750", "FREE", "IN USED", "IN USED"}, rows[1])
	assert.Equal(t, []string{"191.33750", "191.34375", "191.35000", "FREE", "FREE", "FREE"}, rows[2])
}

func multipartUpload(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestImport(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	csv := "name,passband\nA,191.325-191.35\n,192\nB,191.3375-191.35\n"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, multipartUpload(t, "oels.csv", []byte(csv)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Imported 2 OELs, skipped 1")

	oels, m := srv.snapshot()
	require.Len(t, oels, 2)
	assert.Equal(t, []string{"A", "B"}, m.Names)
}

func TestImportRejectsUnknownType(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, multipartUpload(t, "oels.txt", []byte("A,1")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Import of oels.txt failed")
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()
	postForm(t, h, "/add_oel", url.Values{"name": {"A"}, "passband": {"191.325"}})
	postForm(t, h, "/add_oel", url.Values{"name": {""}, "passband": {"191.325"}})

	rec := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "oelmerger_oels_registered_total 1")
	assert.Contains(t, body, `oelmerger_oels_rejected_total{reason="empty_name"} 1`)
	assert.Contains(t, body, "oelmerger_oels 1")
}
