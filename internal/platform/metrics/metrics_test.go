package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordSnapshot(t *testing.T) {
	before := testutil.ToFloat64(snapshotsComputed.WithLabelValues("memory", "ok"))
	RecordSnapshot("memory", 7, 2*time.Millisecond, nil)

	if got := testutil.ToFloat64(snapshotsComputed.WithLabelValues("memory", "ok")); got != before+1 {
		t.Errorf("expected ok counter %v, got %v", before+1, got)
	}
	if got := testutil.ToFloat64(recordsInSnapshot); got != 7 {
		t.Errorf("expected records gauge 7, got %v", got)
	}
}

func TestRecordSnapshot_Error(t *testing.T) {
	RecordSnapshot("memory", 3, time.Millisecond, nil)
	before := testutil.ToFloat64(snapshotsComputed.WithLabelValues("redis", "error"))
	RecordSnapshot("redis", 0, time.Millisecond, errors.New("down"))

	if got := testutil.ToFloat64(snapshotsComputed.WithLabelValues("redis", "error")); got != before+1 {
		t.Errorf("expected error counter %v, got %v", before+1, got)
	}
	if got := testutil.ToFloat64(recordsInSnapshot); got != 3 {
		t.Errorf("expected gauge to keep last good value 3, got %v", got)
	}
}

func TestRecordInsightAndReload(t *testing.T) {
	before := testutil.ToFloat64(insightsFired.WithLabelValues("diabetes"))
	RecordInsight("diabetes")
	if got := testutil.ToFloat64(insightsFired.WithLabelValues("diabetes")); got != before+1 {
		t.Errorf("expected insight counter %v, got %v", before+1, got)
	}

	reloads := testutil.ToFloat64(storeReloads)
	RecordReload()
	if got := testutil.ToFloat64(storeReloads); got != reloads+1 {
		t.Errorf("expected reload counter %v, got %v", reloads+1, got)
	}
}

func TestMiddleware_CountsRoute(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/api/v1/dashboard/charts/:name", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "chart not found")
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/dashboard/charts/:name", "404"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/charts/unknown", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/dashboard/charts/:name", "404"))
	if got != before+1 {
		t.Errorf("expected route counter %v, got %v", before+1, got)
	}
}

func TestHandler_Exposition(t *testing.T) {
	RecordReload()
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "dashboard_store_reloads_total") {
		t.Error("expected dashboard_store_reloads_total in exposition")
	}
}
